package match

import "github.com/agext/levenshtein"

// DistanceFunc computes the edit distance between two canonical keys as an
// integer number of single-character insert/delete/substitute operations.
// The engine's control logic is independent of the implementation, so a
// faster primitive can be swapped in without touching the phases.
type DistanceFunc func(a, b string) int

// Levenshtein is the default DistanceFunc.
func Levenshtein(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}
