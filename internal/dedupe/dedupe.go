// Package dedupe collapses repeated matches of the same key pair so each
// real-world match is reported once.
package dedupe

import "github.com/sells-group/match-cli/internal/model"

// Resolve splits pairs into one canonical representative per distinct
// (base key, candidate key) pair and the remaining duplicates. Grouping is
// by key pair, not row ids: two row pairs reducing to the same keys are the
// same real-world match listed twice. Within a group the pair seen first —
// the one referencing the earliest base row in original dataset order —
// is canonical. Input order is preserved in both outputs, and
// len(canonical) + len(duplicates) == len(pairs).
func Resolve(pairs []model.MatchPair) (canonical, duplicates []model.MatchPair) {
	type keyPair struct{ base, candidate string }

	seen := make(map[keyPair]bool, len(pairs))
	for _, pair := range pairs {
		kp := keyPair{base: pair.BaseKey, candidate: pair.CandidateKey}
		if seen[kp] {
			duplicates = append(duplicates, pair)
			continue
		}
		seen[kp] = true
		canonical = append(canonical, pair)
	}
	return canonical, duplicates
}
