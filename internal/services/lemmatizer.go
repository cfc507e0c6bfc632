package services

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// nounSubstitutions are WordNet's detachment rules for nouns, applied in order.
var nounSubstitutions = [][2]string{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Lemmatizer reduces nouns to their WordNet base form. It is read-only after
// construction and safe for concurrent use.
type Lemmatizer struct {
	index      map[string]struct{}
	exceptions map[string][]string
}

func NewLemmatizer(index map[string]struct{}, exceptions map[string][]string) *Lemmatizer {
	if index == nil {
		index = map[string]struct{}{}
	}
	if exceptions == nil {
		exceptions = map[string][]string{}
	}
	return &Lemmatizer{index: index, exceptions: exceptions}
}

// Lemmatize returns the shortest known base form of word, or word itself when
// WordNet has no noun entry for any candidate.
func (l *Lemmatizer) Lemmatize(word string) string {
	candidates := l.morphy(word)
	if len(candidates) == 0 {
		return word
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}

func (l *Lemmatizer) morphy(word string) []string {
	if bases, ok := l.exceptions[word]; ok {
		return l.known(append([]string{word}, bases...))
	}

	forms := []string{word}
	for _, sub := range nounSubstitutions {
		if strings.HasSuffix(word, sub[0]) {
			forms = append(forms, strings.TrimSuffix(word, sub[0])+sub[1])
		}
	}
	return l.known(forms)
}

func (l *Lemmatizer) known(forms []string) []string {
	var result []string
	seen := make(map[string]bool, len(forms))
	for _, f := range forms {
		if seen[f] {
			continue
		}
		if _, ok := l.index[f]; ok {
			seen[f] = true
			result = append(result, f)
		}
	}
	return result
}

// ParseNounIndex reads a WordNet index.noun file. License header lines start
// with a space and are skipped.
func ParseNounIndex(r io.Reader) (map[string]struct{}, error) {
	index := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		lemma, _, _ := strings.Cut(line, " ")
		index[lemma] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read noun index: %w", err)
	}
	return index, nil
}

// ParseNounExceptions reads a WordNet noun.exc file: "inflected base [base...]".
func ParseNounExceptions(r io.Reader) (map[string][]string, error) {
	exceptions := make(map[string][]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		exceptions[fields[0]] = append(exceptions[fields[0]], fields[1:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read noun exceptions: %w", err)
	}
	return exceptions, nil
}
