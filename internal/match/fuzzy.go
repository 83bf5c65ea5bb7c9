package match

import (
	"context"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/match-cli/internal/index"
	"github.com/sells-group/match-cli/internal/model"
)

// fuzzyHit is the best candidate found for one base key.
type fuzzyHit struct {
	candKey  string
	distance int
}

// fuzzyPhase finds, for every unmatched base key, the closest unmatched
// candidate key within the threshold. Each base key is independent, so the
// scan shards across an errgroup when Workers > 1; results land in a slice
// indexed by base-key position, making parallel output identical to the
// sequential path.
func fuzzyPhase(ctx context.Context, base, candidate *index.Index, baseKeys, candKeys []string, opts Options) ([]model.MatchPair, []string, error) {
	if len(baseKeys) == 0 || len(candKeys) == 0 {
		return nil, nil, nil
	}

	// Candidate key lengths are reused across every base key.
	candLens := make([]int, len(candKeys))
	for i, key := range candKeys {
		candLens[i] = utf8.RuneCountInString(key)
	}

	hits := make([]*fuzzyHit, len(baseKeys))

	if opts.Workers > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i, key := range baseKeys {
			i, key := i, key
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				hits[i] = bestCandidate(key, candKeys, candLens, opts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for i, key := range baseKeys {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			hits[i] = bestCandidate(key, candKeys, candLens, opts)
		}
	}

	var pairs []model.MatchPair
	var matchedKeys []string
	for i, hit := range hits {
		if hit == nil {
			continue
		}
		baseKey := baseKeys[i]
		score := fuzzyScore(baseKey, hit.candKey, hit.distance)
		for _, baseRow := range base.Rows(baseKey) {
			for _, candRow := range candidate.Rows(hit.candKey) {
				pairs = append(pairs, model.MatchPair{
					BaseID:       baseRow.ID,
					CandidateID:  candRow.ID,
					BaseKey:      baseKey,
					CandidateKey: hit.candKey,
					Kind:         model.MatchFuzzy,
					Score:        score,
				})
			}
		}
		matchedKeys = append(matchedKeys, baseKey)
	}
	return pairs, matchedKeys, nil
}

// bestCandidate scans all candidate keys for the lowest distance within the
// threshold. Ties keep the earlier candidate (candKeys is in candidate
// dataset first-occurrence order, and only a strictly lower distance
// displaces a hit). Keys whose length differs by more than the threshold
// are skipped before the full distance computation; the length difference
// is a lower bound on edit distance, so the filter cannot drop a pair that
// would have passed.
func bestCandidate(baseKey string, candKeys []string, candLens []int, opts Options) *fuzzyHit {
	baseLen := utf8.RuneCountInString(baseKey)
	var best *fuzzyHit
	for i, candKey := range candKeys {
		diff := baseLen - candLens[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > opts.Threshold {
			continue
		}
		d := opts.Distance(baseKey, candKey)
		if d > opts.Threshold {
			continue
		}
		if best == nil || d < best.distance {
			best = &fuzzyHit{candKey: candKey, distance: d}
		}
	}
	return best
}

// fuzzyScore maps an edit distance to a [0,1] similarity.
func fuzzyScore(a, b string, distance int) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > la {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(longest)
}
