package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/manifest"
	"github.com/sells-group/match-cli/internal/pipeline"
	"github.com/sells-group/match-cli/internal/store"
)

var (
	batchManifest string
	batchWorkers  int
	batchNoStore  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run every matching operation in a manifest",
	Long: `Executes the matching operations declared in a YAML manifest in order,
continuing past individual failures. Operations with fallback_of only see
the rows their source operation left unmatched.

Example:
  match-cli batch --manifest operations.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		m, err := manifest.Load(batchManifest)
		if err != nil {
			return err
		}
		zap.L().Info("manifest loaded",
			zap.String("path", batchManifest),
			zap.Int("operations", len(m.Operations)),
		)

		var st store.Store
		if !batchNoStore {
			st, err = initStore(ctx)
			if err != nil {
				return eris.Wrap(err, "batch: init store")
			}
			defer st.Close() //nolint:errcheck
		}

		workers := batchWorkers
		if workers == 0 {
			workers = cfg.Match.Workers
		}

		statuses := pipeline.New(st, workers).RunManifest(ctx, m)

		var failed []string
		for _, status := range statuses {
			if status.Err != nil {
				failed = append(failed, status.Name)
			}
		}
		zap.L().Info("batch complete",
			zap.Int("operations", len(statuses)),
			zap.Int("failed", len(failed)),
		)
		if len(failed) > 0 {
			return eris.Errorf("batch: %d operation(s) failed: %s", len(failed), strings.Join(failed, ", "))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchManifest, "manifest", "", "path to operations manifest YAML (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "fuzzy phase parallelism (0 = config default)")
	batchCmd.Flags().BoolVar(&batchNoStore, "no-store", false, "skip recording runs in the history database")
	_ = batchCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(batchCmd)
}
