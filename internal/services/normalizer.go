package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var wordRe = regexp.MustCompile(`[a-z]+`)

type Normalizer interface {
	Normalize(text string) (string, error)
}

type normalizer struct {
	data *LanguageData
}

// NewNormalizer returns a normalizer backed by data. A nil data handle yields a
// normalizer that reports ErrLanguageDataUnavailable on every call.
func NewNormalizer(data *LanguageData) Normalizer {
	return &normalizer{data: data}
}

// Normalize lowercases text, keeps only ASCII letters and whitespace, drops
// stopwords and lemmatizes what remains. A lemma that is itself a stopword
// ("cans" -> "can") is dropped too. The result is a single-space joined
// token string in original order.
func (n *normalizer) Normalize(text string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = &NormalizationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if n.data == nil {
		return "", &NormalizationError{Err: ErrLanguageDataUnavailable}
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	text = stripNonLetters(strings.ToLower(text))

	tokens := wordRe.FindAllString(text, -1)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if n.data.IsStopword(tok) {
			continue
		}
		lemma := n.data.Lemmatize(tok)
		if n.data.IsStopword(lemma) {
			continue
		}
		kept = append(kept, lemma)
	}

	return strings.Join(kept, " "), nil
}

// stripNonLetters removes digits, punctuation and non-ASCII letters. Whitespace
// survives so that neighbouring words stay separate.
func stripNonLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
