// Package store persists matching run history.
package store

import (
	"context"

	"github.com/sells-group/match-cli/internal/model"
)

// RunFilter narrows ListRuns output.
type RunFilter struct {
	Status    model.RunStatus
	Operation string
	Limit     int
}

// Store records matching runs and their outcomes.
type Store interface {
	Migrate(ctx context.Context) error
	CreateRun(ctx context.Context, operation string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, result *model.RunResult) error
	FailRun(ctx context.Context, runID string, runErr error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	Close() error
}
