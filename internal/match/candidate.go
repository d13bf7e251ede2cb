package match

import (
	"sort"

	"mapconf/internal/mapping"
)

// Confidence thresholds for auto-accepting matches.
const (
	// DefaultMinScore is the minimum score for auto-acceptance.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
	// DefaultMaxCandidates bounds the candidates kept for unmatched fields.
	DefaultMaxCandidates = 3
)

// Candidate represents a potential mapping from a source field to a destination path.
type Candidate struct {
	Source      string
	Destination string

	// Synonym is true when the names differ but share a synonym group.
	Synonym bool
	// Score is 1.0 for synonyms, the normalized Levenshtein similarity otherwise.
	Score float64

	// Metadata for debugging/explanation
	NormalizedSource string
	NormalizedLeaf   string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every destination path for the source field by its
// leaf name. Returns candidates sorted by score (descending).
func RankCandidates(source string, destinations []string, syn *Synonyms) CandidateList {
	candidates := make(CandidateList, 0, len(destinations))

	sourceNorm := NormalizeName(source)

	for _, dst := range destinations {
		leaf := mapping.LeafName(dst)
		if leaf == "" {
			leaf = dst
		}

		c := Candidate{
			Source:           source,
			Destination:      dst,
			NormalizedSource: sourceNorm,
			NormalizedLeaf:   NormalizeName(leaf),
		}

		switch {
		case c.NormalizedSource == c.NormalizedLeaf:
			c.Score = 1.0
		case syn.Match(source, leaf):
			c.Synonym = true
			c.Score = 1.0
		default:
			c.Score = NormalizedLevenshteinScore(source, leaf)
		}

		candidates = append(candidates, c)
	}

	// Sort by score (descending), then by path for determinism
	sort.Stable(candidates)

	return candidates
}

// Closest returns up to n options most similar to name as a whole, best
// first, ignoring options scoring below minScore.
func Closest(name string, options []string, n int, minScore float64) []string {
	candidates := make(CandidateList, 0, len(options))
	for _, o := range options {
		candidates = append(candidates, Candidate{
			Destination: o,
			Score:       NormalizedLevenshteinScore(name, o),
		})
	}

	sort.Stable(candidates)

	var out []string
	for _, c := range candidates.AboveThreshold(minScore).Top(n) {
		out = append(out, c.Destination)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by destination path for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Destination < c[j].Destination
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns candidates with score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 {
		return nil
	}

	best := &c[0]

	if best.Score < minScore {
		return nil
	}

	// If there's a second candidate, must have sufficient gap
	if len(c) > 1 && c[0].Score-c[1].Score < minGap {
		return nil
	}

	return best
}

// Destinations returns the destination paths in order.
func (c CandidateList) Destinations() []string {
	out := make([]string, 0, len(c))
	for _, cand := range c {
		out = append(out, cand.Destination)
	}

	return out
}
