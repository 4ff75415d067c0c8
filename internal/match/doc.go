// Package match scores how well source fields fit destination fields and
// produces "did you mean" suggestions for unknown names.
//
// Key functions:
//   - ScoreTypeCompatibility: identical, assignable, convertible or incompatible, via go/types
//   - Levenshtein: computes edit distance between strings
//   - RankFields / Suggest: rank known names against an unknown one
package match
