package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	DefaultCorpusURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages"

	maxCorpusSize = 64 << 20
)

// CorpusPackage is one NLTK data package and the files the normalizer needs
// from it. File paths are relative to the cache root; inside the archive they
// appear without the "corpora/" prefix.
type CorpusPackage struct {
	Name  string
	Files []string
}

var CorpusPackages = []CorpusPackage{
	{Name: "stopwords", Files: []string{StopwordsFile}},
	{Name: "wordnet", Files: []string{NounIndexFile, NounExceptionsFile}},
}

type CorpusFetcher interface {
	Fetch(ctx context.Context, pkg CorpusPackage, storage CacheStorage) error
}

type corpusFetcher struct {
	baseURL    string
	client     *http.Client
	maxRetries uint
	logger     *zap.Logger
}

func NewCorpusFetcher(baseURL string, timeout time.Duration, logger *zap.Logger) CorpusFetcher {
	if baseURL == "" {
		baseURL = DefaultCorpusURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &corpusFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		maxRetries: 3,
		logger:     logger,
	}
}

func (f *corpusFetcher) Fetch(ctx context.Context, pkg CorpusPackage, storage CacheStorage) error {
	archiveURL := fmt.Sprintf("%s/corpora/%s.zip", f.baseURL, pkg.Name)

	data, err := f.download(ctx, archiveURL)
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archiveURL, err)
	}

	for _, file := range pkg.Files {
		member := strings.TrimPrefix(file, "corpora/")
		if err := extractMember(zr, member, file, storage); err != nil {
			return err
		}
		f.logger.Debug("corpus file cached",
			zap.String("package", pkg.Name),
			zap.String("file", file),
		)
	}
	return nil
}

func (f *corpusFetcher) download(ctx context.Context, archiveURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			f.logger.Warn("⚠️  Corpus download failed, retrying", zap.String("url", archiveURL), zap.Error(err))
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxCorpusSize+1))
		if err != nil {
			return nil, err
		}
		if len(body) > maxCorpusSize {
			return nil, backoff.Permanent(fmt.Errorf("archive exceeds %d bytes", maxCorpusSize))
		}
		return body, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(f.maxRetries),
		backoff.WithMaxElapsedTime(2*time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", archiveURL, err)
	}
	return data, nil
}

func extractMember(zr *zip.Reader, member, dest string, storage CacheStorage) error {
	for _, zf := range zr.File {
		if zf.Name != member {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", member, err)
		}
		defer rc.Close()

		return storage.Save(dest, rc)
	}
	return fmt.Errorf("archive does not contain %s", member)
}
