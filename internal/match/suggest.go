package match

import (
	"cmp"
	"go/types"
	"slices"

	"swizzle-generator/internal/analyze"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum combined score for a suggestion.
	DefaultMinScore = 0.5
	// DefaultLimit caps the number of suggestions per diagnostic.
	DefaultLimit = 3
)

// Candidate is a known name that might be what the user meant.
type Candidate struct {
	Name string

	// Scoring components
	NameScore  float64                  // Normalized Levenshtein similarity (0-1)
	TypeCompat *TypeCompatibilityResult // Nil when no type was wanted

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates ordered best first.
type CandidateList []Candidate

// RankNames ranks plain names (types, options) by similarity to name.
func RankNames(name string, options []string) CandidateList {
	out := make(CandidateList, 0, len(options))

	for _, opt := range options {
		score := NormalizedLevenshteinScore(name, opt)
		out = append(out, Candidate{Name: opt, NameScore: score, CombinedScore: score})
	}

	out.sort()

	return out
}

// RankFields ranks struct fields as replacements for an unknown field name.
// When want is set, fields whose type can feed want rank higher.
func RankFields(name string, want types.Type, fields []analyze.FieldInfo, home *types.Package) CandidateList {
	out := make(CandidateList, 0, len(fields))

	for i := range fields {
		f := &fields[i]

		c := Candidate{Name: f.Name, NameScore: NormalizedLevenshteinScore(name, f.Name)}
		c.CombinedScore = c.NameScore

		if want != nil && f.Type != nil && f.Type.GoType != nil {
			compat := ScoreTypeCompatibility(f.Type.GoType, want, home)
			c.TypeCompat = &compat
			c.CombinedScore = calculateCombinedScore(c.NameScore, compat.Compatibility)
		}

		out = append(out, c)
	}

	out.sort()

	return out
}

// calculateCombinedScore weights name similarity at 70% and type fit at 30%.
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.7
		typeWeight = 0.3
	)

	var typeScore float64

	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.5
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

// sort orders by combined score descending, then by name for determinism.
func (c CandidateList) sort() {
	slices.SortStableFunc(c, func(a, b Candidate) int {
		if a.CombinedScore != b.CombinedScore {
			return cmp.Compare(b.CombinedScore, a.CombinedScore)
		}

		return cmp.Compare(a.Name, b.Name)
	})
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates whose name is close enough to be worth
// mentioning. Type fit alone never qualifies a candidate.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.NameScore >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Suggest returns up to DefaultLimit known names close to name.
func Suggest(name string, options []string) []string {
	return RankNames(name, options).AboveThreshold(DefaultMinScore).Top(DefaultLimit).Names()
}

// SuggestFields returns up to DefaultLimit field names close to name.
func SuggestFields(name string, want types.Type, fields []analyze.FieldInfo, home *types.Package) []string {
	return RankFields(name, want, fields, home).AboveThreshold(DefaultMinScore).Top(DefaultLimit).Names()
}
