package services

import (
	"errors"
	"math"
	"sort"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

const (
	DefaultStrongThreshold   = 70.0
	DefaultModerateThreshold = 40.0
)

type Scorer interface {
	// Score returns the TF-IDF cosine similarity of two normalized texts as a
	// percentage rounded to two decimals.
	Score(resume, jobDescription string) (float64, error)
	Classify(score float64) models.MatchTier
}

type scorer struct {
	strongThreshold   float64
	moderateThreshold float64
}

func NewScorer(strongThreshold, moderateThreshold float64) Scorer {
	if strongThreshold <= 0 {
		strongThreshold = DefaultStrongThreshold
	}
	if moderateThreshold <= 0 || moderateThreshold > strongThreshold {
		moderateThreshold = DefaultModerateThreshold
	}
	return &scorer{
		strongThreshold:   strongThreshold,
		moderateThreshold: moderateThreshold,
	}
}

func (s *scorer) Score(resume, jobDescription string) (float64, error) {
	resumeTerms := strings.Fields(resume)
	jobTerms := strings.Fields(jobDescription)
	if len(resumeTerms) == 0 || len(jobTerms) == 0 {
		return 0, nil
	}

	space := newTermSpace(resumeTerms, jobTerms)
	similarity := cosineSimilarity(space.vector(0), space.vector(1))
	if math.IsNaN(similarity) || math.IsInf(similarity, 0) {
		return 0, &ScoringError{Err: errors.New("similarity is not a finite number")}
	}

	score := math.Round(similarity*100*100) / 100
	return math.Max(0, math.Min(100, score)), nil
}

func (s *scorer) Classify(score float64) models.MatchTier {
	switch {
	case score >= s.strongThreshold:
		return models.TierStrong
	case score >= s.moderateThreshold:
		return models.TierModerate
	default:
		return models.TierLow
	}
}

// termSpace is the vocabulary and raw counts of a two-document corpus. The
// vocabulary is sorted so both documents are summed in the same order no matter
// which one is passed first.
type termSpace struct {
	vocabulary []string
	counts     [2]map[string]int
}

func newTermSpace(docs ...[]string) *termSpace {
	ts := &termSpace{}
	seen := make(map[string]bool)
	for i, terms := range docs {
		ts.counts[i] = make(map[string]int, len(terms))
		for _, t := range terms {
			ts.counts[i][t]++
			if !seen[t] {
				seen[t] = true
				ts.vocabulary = append(ts.vocabulary, t)
			}
		}
	}
	sort.Strings(ts.vocabulary)
	return ts
}

// idf uses the smoothed form ln((1+n)/(1+df)) + 1.
func (ts *termSpace) idf(term string) float64 {
	n := float64(len(ts.counts))
	df := 0.0
	for _, c := range ts.counts {
		if c[term] > 0 {
			df++
		}
	}
	return math.Log((1+n)/(1+df)) + 1
}

// vector returns the L2-normalized TF-IDF row for document i, indexed by
// vocabulary position.
func (ts *termSpace) vector(i int) []float64 {
	v := make([]float64, len(ts.vocabulary))
	var norm float64
	for j, term := range ts.vocabulary {
		w := float64(ts.counts[i][term]) * ts.idf(term)
		v[j] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for j := range v {
		v[j] /= norm
	}
	return v
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
