// Package match pairs rows across two canonical indexes using an exact key
// pass followed by an optional bounded edit-distance pass.
package match

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/index"
	"github.com/sells-group/match-cli/internal/model"
)

// Mode selects which matching phases run.
type Mode string

const (
	ModeExact          Mode = "exact"
	ModeExactThenFuzzy Mode = "exact_then_fuzzy"
)

// ParseMode validates a mode string from config or manifest input.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExact:
		return ModeExact, nil
	case ModeExactThenFuzzy:
		return ModeExactThenFuzzy, nil
	default:
		return "", eris.Errorf("match: unknown mode %q", s)
	}
}

// Options configures a single Match call. The engine holds no state of its
// own; everything it needs arrives here.
type Options struct {
	Mode      Mode
	Threshold int          // fuzzy edit-distance budget; 0 degenerates to exact-only
	Distance  DistanceFunc // nil selects Levenshtein
	Workers   int          // fuzzy phase parallelism; <= 1 runs sequentially
}

func (o Options) validate() error {
	switch o.Mode {
	case ModeExact, ModeExactThenFuzzy:
	default:
		return eris.Errorf("match: unknown mode %q", o.Mode)
	}
	if o.Threshold < 0 {
		return eris.Errorf("match: negative fuzzy threshold %d", o.Threshold)
	}
	return nil
}

// Match compares every base key against the candidate index and classifies
// each base row as exactly matched, fuzzily matched, or unmatched. Options
// are validated before any row is touched. Output order is deterministic:
// exact pairs in base key first-occurrence order, then fuzzy pairs in the
// same order over the unmatched remainder.
func Match(ctx context.Context, base, candidate *index.Index, opts Options) (*model.MatchResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Distance == nil {
		opts.Distance = Levenshtein
	}

	log := zap.L().With(zap.String("component", "match_engine"))

	result := &model.MatchResult{
		Unnormalizable: base.Unnormalizable(),
	}

	// Exact phase: keys present in both indexes. All row combinations are
	// emitted; the duplicate resolver collapses them downstream.
	matched := make(map[string]bool, base.Len())
	for _, key := range base.Keys() {
		if !candidate.Has(key) {
			continue
		}
		matched[key] = true
		for _, baseRow := range base.Rows(key) {
			for _, candRow := range candidate.Rows(key) {
				result.Pairs = append(result.Pairs, model.MatchPair{
					BaseID:       baseRow.ID,
					CandidateID:  candRow.ID,
					BaseKey:      key,
					CandidateKey: key,
					Kind:         model.MatchExact,
					Score:        1.0,
				})
			}
		}
	}
	log.Debug("exact phase complete",
		zap.Int("base_keys", base.Len()),
		zap.Int("matched_keys", len(matched)),
	)

	// Fuzzy phase over the unmatched remainder. A threshold of 0 would only
	// admit identical keys, which the exact phase already consumed.
	if opts.Mode == ModeExactThenFuzzy && opts.Threshold > 0 {
		baseRemainder := remainder(base, matched)
		candRemainder := unmatchedCandidates(base, candidate)

		fuzzyPairs, fuzzyKeys, err := fuzzyPhase(ctx, base, candidate, baseRemainder, candRemainder, opts)
		if err != nil {
			return nil, err
		}
		result.Pairs = append(result.Pairs, fuzzyPairs...)
		for _, key := range fuzzyKeys {
			matched[key] = true
		}
		log.Debug("fuzzy phase complete",
			zap.Int("base_remainder", len(baseRemainder)),
			zap.Int("candidate_remainder", len(candRemainder)),
			zap.Int("matched_keys", len(fuzzyKeys)),
		)
	}

	// Everything still unmatched, in original order.
	for _, key := range base.Keys() {
		if matched[key] {
			continue
		}
		result.Unmatched = append(result.Unmatched, base.Rows(key)...)
	}

	return result, nil
}

// remainder returns base keys absent from the matched set, preserving order.
func remainder(idx *index.Index, matched map[string]bool) []string {
	var keys []string
	for _, key := range idx.Keys() {
		if !matched[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// unmatchedCandidates returns candidate keys with no exact counterpart in
// base, preserving the candidate dataset's first-occurrence order. That
// order is the fuzzy tie-break, so it must survive into the phase.
func unmatchedCandidates(base, candidate *index.Index) []string {
	var keys []string
	for _, key := range candidate.Keys() {
		if !base.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
