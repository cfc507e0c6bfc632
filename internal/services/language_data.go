package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	StopwordsFile      = "corpora/stopwords/english"
	NounIndexFile      = "corpora/wordnet/index.noun"
	NounExceptionsFile = "corpora/wordnet/noun.exc"
)

// LanguageData is the stopword set and lemmatizer shared by every normalizer.
// Never mutated after construction.
type LanguageData struct {
	stopwords  map[string]struct{}
	lemmatizer *Lemmatizer
}

func NewLanguageData(stopwords []string, lemmatizer *Lemmatizer) *LanguageData {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[w] = struct{}{}
	}
	if lemmatizer == nil {
		lemmatizer = NewLemmatizer(nil, nil)
	}
	return &LanguageData{stopwords: set, lemmatizer: lemmatizer}
}

func (d *LanguageData) IsStopword(word string) bool {
	_, ok := d.stopwords[word]
	return ok
}

func (d *LanguageData) Lemmatize(word string) string {
	return d.lemmatizer.Lemmatize(word)
}

func (d *LanguageData) StopwordCount() int {
	return len(d.stopwords)
}

// ParseStopwords reads one lowercase word per line.
func ParseStopwords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords: %w", err)
	}
	return words, nil
}

// LoadLanguageData builds LanguageData from an already populated cache.
func LoadLanguageData(storage CacheStorage) (*LanguageData, error) {
	stopwords, err := readCached(storage, StopwordsFile, ParseStopwords)
	if err != nil {
		return nil, err
	}
	index, err := readCached(storage, NounIndexFile, ParseNounIndex)
	if err != nil {
		return nil, err
	}
	exceptions, err := readCached(storage, NounExceptionsFile, ParseNounExceptions)
	if err != nil {
		return nil, err
	}
	if len(stopwords) == 0 || len(index) == 0 {
		return nil, errors.New("language data files are empty")
	}

	return NewLanguageData(stopwords, NewLemmatizer(index, exceptions)), nil
}

func readCached[T any](storage CacheStorage, name string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(storage.Path(name))
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	return parse(f)
}

type LanguageDataProvider interface {
	// Get returns the shared language data, loading it on first use.
	Get(ctx context.Context) (*LanguageData, error)
}

type languageDataProvider struct {
	storage    CacheStorage
	fetcher    CorpusFetcher
	allowFetch bool
	logger     *zap.Logger

	once sync.Once
	data *LanguageData
	err  error
}

// NewLanguageDataProvider loads from storage, downloading missing corpora with
// fetcher when allowFetch is set. The outcome of the first load is memoized.
func NewLanguageDataProvider(storage CacheStorage, fetcher CorpusFetcher, allowFetch bool, logger *zap.Logger) LanguageDataProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &languageDataProvider{
		storage:    storage,
		fetcher:    fetcher,
		allowFetch: allowFetch,
		logger:     logger,
	}
}

// StaticLanguageData wraps already constructed data.
func StaticLanguageData(data *LanguageData) LanguageDataProvider {
	p := &languageDataProvider{logger: zap.NewNop(), data: data}
	if data == nil {
		p.err = ErrLanguageDataUnavailable
	}
	p.once.Do(func() {})
	return p
}

func (p *languageDataProvider) Get(ctx context.Context) (*LanguageData, error) {
	p.once.Do(func() {
		p.data, p.err = p.load(ctx)
		if p.err != nil {
			p.err = fmt.Errorf("%w: %v", ErrLanguageDataUnavailable, p.err)
			p.logger.Error("❌ Language data unavailable", zap.Error(p.err))
			return
		}
		p.logger.Info("✅ Language data loaded",
			zap.Int("stopwords", p.data.StopwordCount()),
			zap.String("path", p.storage.Path("")),
		)
	})
	return p.data, p.err
}

func (p *languageDataProvider) load(ctx context.Context) (*LanguageData, error) {
	if err := p.storage.EnsureDir(); err != nil {
		return nil, err
	}

	for _, pkg := range CorpusPackages {
		if p.storage.Exists(pkg.Files...) {
			continue
		}
		if !p.allowFetch || p.fetcher == nil {
			return nil, fmt.Errorf("corpus %q missing from %s and downloads are disabled", pkg.Name, p.storage.Path(""))
		}

		p.logger.Info("📥 Downloading corpus", zap.String("package", pkg.Name))
		if err := p.fetcher.Fetch(ctx, pkg, p.storage); err != nil {
			return nil, fmt.Errorf("failed to fetch corpus %q: %w", pkg.Name, err)
		}
	}

	return LoadLanguageData(p.storage)
}
