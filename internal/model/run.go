package model

import "time"

// RunStatus represents the current state of a matching run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one execution of a matching operation for the run history.
type Run struct {
	ID        string     `json:"id"`
	Operation string     `json:"operation"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final counts of a matching run.
type RunResult struct {
	BaseRows       int           `json:"base_rows"`
	CandidateRows  int           `json:"candidate_rows"`
	ExactPairs     int           `json:"exact_pairs"`
	FuzzyPairs     int           `json:"fuzzy_pairs"`
	Canonical      int           `json:"canonical"`
	Duplicates     int           `json:"duplicates"`
	Unmatched      int           `json:"unmatched"`
	Unnormalizable int           `json:"unnormalizable"`
	Duration       time.Duration `json:"duration_ns"`
}
