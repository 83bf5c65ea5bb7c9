package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/dataset"
	"github.com/sells-group/match-cli/internal/manifest"
	"github.com/sells-group/match-cli/internal/pipeline"
	"github.com/sells-group/match-cli/internal/store"
)

var (
	matchBase       string
	matchBaseID     string
	matchBaseURL    string
	matchCand       string
	matchCandID     string
	matchCandURL    string
	matchKind       string
	matchMode       string
	matchThreshold  int
	matchWorkers    int
	matchMatched    string
	matchUnmatched  string
	matchDuplicates string
	matchNoStore    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match one dataset pair",
	Long: `Matches a base CSV against a candidate CSV by canonical URL key.

Examples:
  # CRM websites against a data provider, exact then fuzzy
  match-cli match --base crm.csv --base-id CRM_ID --base-url COMPANY_WEBSITE \
    --candidate cb.csv --candidate-id UUID --candidate-url HOMEPAGE_URL \
    --threshold 2 --matched matched.csv --unmatched unmatched.csv

  # LinkedIn company slugs, exact only
  match-cli match --base crm.csv --base-id CRM_ID --base-url LINKEDIN_URL \
    --candidate bd.csv --candidate-id ID --candidate-url LINKEDIN_URL \
    --kind linkedin --mode exact --matched matched.csv --unmatched unmatched.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		op := manifest.Operation{
			Name: "match",
			Base: dataset.TableSpec{
				Path:      matchBase,
				IDColumn:  matchBaseID,
				URLColumn: matchBaseURL,
			},
			Candidate: dataset.TableSpec{
				Path:      matchCand,
				IDColumn:  matchCandID,
				URLColumn: matchCandURL,
			},
			Kind:      matchKind,
			Mode:      matchMode,
			Threshold: matchThreshold,
			Output: manifest.Output{
				Matched:    matchMatched,
				Unmatched:  matchUnmatched,
				Duplicates: matchDuplicates,
			},
		}
		m := &manifest.Manifest{Operations: []manifest.Operation{op}}
		if err := m.Validate(); err != nil {
			return err
		}

		var st store.Store
		if !matchNoStore {
			var err error
			st, err = initStore(ctx)
			if err != nil {
				return eris.Wrap(err, "match: init store")
			}
			defer st.Close() //nolint:errcheck
		}

		workers := matchWorkers
		if workers == 0 {
			workers = cfg.Match.Workers
		}

		statuses := pipeline.New(st, workers).RunManifest(ctx, m)
		if statuses[0].Err != nil {
			return statuses[0].Err
		}

		summary := statuses[0].Outcome.Summary
		zap.L().Info("match complete",
			zap.Int("exact_pairs", summary.ExactPairs),
			zap.Int("fuzzy_pairs", summary.FuzzyPairs),
			zap.Int("canonical", summary.Canonical),
			zap.Int("duplicates", summary.Duplicates),
			zap.Int("unmatched", summary.Unmatched),
			zap.Int("unnormalizable", summary.Unnormalizable),
		)
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchBase, "base", "", "path to base dataset CSV (required)")
	matchCmd.Flags().StringVar(&matchBaseID, "base-id", "", "base id column name (required)")
	matchCmd.Flags().StringVar(&matchBaseURL, "base-url", "", "base URL column name (required)")
	matchCmd.Flags().StringVar(&matchCand, "candidate", "", "path to candidate dataset CSV (required)")
	matchCmd.Flags().StringVar(&matchCandID, "candidate-id", "", "candidate id column name (required)")
	matchCmd.Flags().StringVar(&matchCandURL, "candidate-url", "", "candidate URL column name (required)")
	matchCmd.Flags().StringVar(&matchKind, "kind", "", "normalization kind: domain (default) or linkedin")
	matchCmd.Flags().StringVar(&matchMode, "mode", "", "match mode: exact or exact_then_fuzzy (default)")
	matchCmd.Flags().IntVar(&matchThreshold, "threshold", 2, "fuzzy edit-distance budget")
	matchCmd.Flags().IntVar(&matchWorkers, "workers", 0, "fuzzy phase parallelism (0 = config default)")
	matchCmd.Flags().StringVar(&matchMatched, "matched", "", "matched output CSV path (required)")
	matchCmd.Flags().StringVar(&matchUnmatched, "unmatched", "", "unmatched output CSV path (required)")
	matchCmd.Flags().StringVar(&matchDuplicates, "duplicates", "", "duplicates output CSV path (default: duplicate_<matched>)")
	matchCmd.Flags().BoolVar(&matchNoStore, "no-store", false, "skip recording the run in the history database")
	for _, flag := range []string{"base", "base-id", "base-url", "candidate", "candidate-id", "candidate-url", "matched", "unmatched"} {
		_ = matchCmd.MarkFlagRequired(flag)
	}
	rootCmd.AddCommand(matchCmd)
}
