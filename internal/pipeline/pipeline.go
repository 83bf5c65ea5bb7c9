// Package pipeline orchestrates matching operations: load both datasets,
// index, match, resolve duplicates, and write result files.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/dataset"
	"github.com/sells-group/match-cli/internal/dedupe"
	"github.com/sells-group/match-cli/internal/index"
	"github.com/sells-group/match-cli/internal/manifest"
	"github.com/sells-group/match-cli/internal/match"
	"github.com/sells-group/match-cli/internal/model"
	"github.com/sells-group/match-cli/internal/store"
)

// Runner executes matching operations. The run store is optional; without
// one, runs simply are not recorded.
type Runner struct {
	store   store.Store
	workers int
}

// New creates a Runner. workers bounds the fuzzy phase parallelism.
func New(st store.Store, workers int) *Runner {
	return &Runner{store: st, workers: workers}
}

// Outcome is the result of one operation.
type Outcome struct {
	Summary model.RunResult
	// UnmatchedIDs lists base row ids left unmatched (including rows with
	// no usable URL), feeding fallback operations downstream.
	UnmatchedIDs []string
}

// RunOperation executes a single matching operation. baseFilter, when
// non-nil, restricts the base table to the listed row ids; fallback
// operations use it to rematch only what an earlier pass missed.
func (r *Runner) RunOperation(ctx context.Context, op manifest.Operation, baseFilter map[string]bool) (*Outcome, error) {
	log := zap.L().With(zap.String("operation", op.Name))
	start := time.Now()

	kind, err := op.NormKind()
	if err != nil {
		return nil, err
	}
	mode, err := op.MatchMode()
	if err != nil {
		return nil, err
	}

	base, err := dataset.Load(op.Base)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s: load base", op.Name)
	}
	candidate, err := dataset.Load(op.Candidate)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s: load candidate", op.Name)
	}

	baseRows := base.Rows
	if baseFilter != nil {
		baseRows = filterRows(baseRows, baseFilter)
		log.Info("applied fallback filter",
			zap.Int("before", len(base.Rows)),
			zap.Int("after", len(baseRows)),
		)
	}

	baseIdx := index.Build(baseRows, kind)
	candIdx := index.Build(candidate.Rows, kind)
	log.Info("indexes built",
		zap.Int("base_rows", len(baseRows)),
		zap.Int("base_keys", baseIdx.Len()),
		zap.Int("candidate_rows", len(candidate.Rows)),
		zap.Int("candidate_keys", candIdx.Len()),
	)

	result, err := match.Match(ctx, baseIdx, candIdx, match.Options{
		Mode:      mode,
		Threshold: op.Threshold,
		Workers:   r.workers,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s: match", op.Name)
	}

	canonical, duplicates := dedupe.Resolve(result.Pairs)

	// Rows with no extractable key are unmatchable and land in the
	// unmatched output alongside rows with no counterpart.
	unmatched := append(append([]model.RawRow{}, result.Unmatched...), result.Unnormalizable...)

	if err := dataset.WritePairs(op.Output.Matched, canonical); err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s", op.Name)
	}
	if err := dataset.WritePairs(op.DuplicatesPath(), duplicates); err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s", op.Name)
	}
	if err := dataset.WriteRows(op.Output.Unmatched, unmatched); err != nil {
		return nil, eris.Wrapf(err, "pipeline: %s", op.Name)
	}

	outcome := &Outcome{
		Summary: model.RunResult{
			BaseRows:       len(baseRows),
			CandidateRows:  len(candidate.Rows),
			ExactPairs:     result.ExactCount(),
			FuzzyPairs:     result.FuzzyCount(),
			Canonical:      len(canonical),
			Duplicates:     len(duplicates),
			Unmatched:      len(result.Unmatched),
			Unnormalizable: len(result.Unnormalizable),
			Duration:       time.Since(start),
		},
	}
	for _, row := range unmatched {
		outcome.UnmatchedIDs = append(outcome.UnmatchedIDs, row.ID)
	}

	log.Info("operation complete",
		zap.Int("exact_pairs", outcome.Summary.ExactPairs),
		zap.Int("fuzzy_pairs", outcome.Summary.FuzzyPairs),
		zap.Int("canonical", outcome.Summary.Canonical),
		zap.Int("duplicates", outcome.Summary.Duplicates),
		zap.Int("unmatched", outcome.Summary.Unmatched),
		zap.Duration("duration", outcome.Summary.Duration),
	)

	return outcome, nil
}

// OperationStatus reports one manifest entry's fate.
type OperationStatus struct {
	Name    string
	Outcome *Outcome
	Err     error
}

// RunManifest executes every operation in order, continuing past individual
// failures. Fallback operations receive the unmatched row ids of the
// operation they name; runs are recorded in the store when one is present.
func (r *Runner) RunManifest(ctx context.Context, m *manifest.Manifest) []OperationStatus {
	unmatchedByOp := make(map[string]map[string]bool, len(m.Operations))
	statuses := make([]OperationStatus, 0, len(m.Operations))

	for _, op := range m.Operations {
		log := zap.L().With(zap.String("operation", op.Name))
		log.Info("starting operation")

		var baseFilter map[string]bool
		if op.FallbackOf != "" {
			baseFilter = unmatchedByOp[op.FallbackOf]
			if baseFilter == nil {
				statuses = append(statuses, OperationStatus{
					Name: op.Name,
					Err:  eris.Errorf("pipeline: %s: fallback source %q produced no result", op.Name, op.FallbackOf),
				})
				log.Error("skipping fallback operation, source failed")
				continue
			}
		}

		runID := r.recordStart(ctx, op.Name)

		outcome, err := r.RunOperation(ctx, op, baseFilter)
		if err != nil {
			r.recordFailure(ctx, runID, err)
			statuses = append(statuses, OperationStatus{Name: op.Name, Err: err})
			log.Error("operation failed", zap.Error(err))
			continue
		}

		r.recordSuccess(ctx, runID, outcome)
		statuses = append(statuses, OperationStatus{Name: op.Name, Outcome: outcome})

		ids := make(map[string]bool, len(outcome.UnmatchedIDs))
		for _, id := range outcome.UnmatchedIDs {
			ids[id] = true
		}
		unmatchedByOp[op.Name] = ids
	}

	return statuses
}

func (r *Runner) recordStart(ctx context.Context, operation string) string {
	if r.store == nil {
		return ""
	}
	run, err := r.store.CreateRun(ctx, operation)
	if err != nil {
		zap.L().Warn("pipeline: record run start", zap.Error(err))
		return ""
	}
	return run.ID
}

func (r *Runner) recordSuccess(ctx context.Context, runID string, outcome *Outcome) {
	if r.store == nil || runID == "" {
		return
	}
	if err := r.store.CompleteRun(ctx, runID, &outcome.Summary); err != nil {
		zap.L().Warn("pipeline: record run success", zap.Error(err))
	}
}

func (r *Runner) recordFailure(ctx context.Context, runID string, runErr error) {
	if r.store == nil || runID == "" {
		return
	}
	if err := r.store.FailRun(ctx, runID, runErr); err != nil {
		zap.L().Warn("pipeline: record run failure", zap.Error(err))
	}
}

func filterRows(rows []model.RawRow, keep map[string]bool) []model.RawRow {
	filtered := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		if keep[row.ID] {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
