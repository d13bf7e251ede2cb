package match

import (
	"fmt"
	"slices"

	"mapconf/internal/mapping"
)

// Options tunes AutoMap.
type Options struct {
	// MinScore is the minimum score for auto-acceptance.
	MinScore float64
	// MinGap is the minimum score gap between the two best destinations.
	MinGap float64
	// AmbiguityThreshold marks a field ambiguous when its two best destinations are within it.
	AmbiguityThreshold float64
	// MaxCandidates bounds the candidates kept for unmatched fields.
	MaxCandidates int
	// Synonyms are the name groups scored 1.0; nil disables them.
	Synonyms *Synonyms
}

// DefaultOptions returns the default thresholds with the built-in synonyms.
func DefaultOptions() Options {
	return Options{
		MinScore:           DefaultMinScore,
		MinGap:             DefaultMinGap,
		AmbiguityThreshold: DefaultAmbiguityThreshold,
		MaxCandidates:      DefaultMaxCandidates,
		Synonyms:           DefaultSynonyms(),
	}
}

// Unmatched is a source field AutoMap could not place.
type Unmatched struct {
	Source     string
	Candidates CandidateList
	Reason     string
}

// Result is the outcome of AutoMap.
type Result struct {
	// Accepted are the high-confidence pairs, in source order.
	Accepted []Candidate
	// Unmatched are the remaining source fields with their best candidates.
	Unmatched []Unmatched
}

// Entries returns the accepted pairs as mapping entries carrying their score.
func (r Result) Entries() []mapping.MappingEntry {
	out := make([]mapping.MappingEntry, 0, len(r.Accepted))
	for _, c := range r.Accepted {
		out = append(out, mapping.MappingEntry{
			Source:      c.Source,
			Destination: c.Destination,
			Status:      mapping.DefaultStatus,
			LineNumber:  mapping.DefaultLineNumber,
			Score:       c.Score,
		})
	}

	return out
}

// AutoMap proposes a destination for every source field, in source order.
// Each destination is used at most once; a field is accepted only when its
// best remaining destination passes opts.MinScore and leads the next one by
// opts.MinGap. The result depends only on the inputs.
func AutoMap(sources, destinations []string, opts Options) Result {
	var res Result

	remaining := slices.Clone(destinations)

	for _, src := range sources {
		if src == "" {
			continue
		}

		candidates := RankCandidates(src, remaining, opts.Synonyms)

		if best := candidates.HighConfidence(opts.MinScore, opts.MinGap); best != nil {
			res.Accepted = append(res.Accepted, *best)
			remaining = slices.DeleteFunc(remaining, func(d string) bool { return d == best.Destination })

			continue
		}

		res.Unmatched = append(res.Unmatched, Unmatched{
			Source:     src,
			Candidates: candidates.Top(opts.MaxCandidates),
			Reason:     reason(candidates, opts),
		})
	}

	return res
}

func reason(candidates CandidateList, opts Options) string {
	switch {
	case len(candidates) == 0:
		return "no destination left"
	case candidates.IsAmbiguous(opts.AmbiguityThreshold) && len(candidates) >= 2:
		return fmt.Sprintf("ambiguous: top candidates %q (%.2f) and %q (%.2f) are too close",
			candidates[0].Destination, candidates[0].Score,
			candidates[1].Destination, candidates[1].Score)
	case candidates[0].Score < opts.MinScore:
		return fmt.Sprintf("best match %q (%.2f) below threshold %.2f",
			candidates[0].Destination, candidates[0].Score, opts.MinScore)
	default:
		return "no high-confidence match"
	}
}
