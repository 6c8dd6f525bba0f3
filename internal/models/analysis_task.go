package models

import "time"

// AnalysisTask represents one queued diagnostic computation.
type AnalysisTask struct {
	ID int64 `json:"id" db:"id"`

	// Diagnostic names the computation to run, e.g. "radius_subset",
	// "doodson_x0", "distribution_compare".
	Diagnostic string `json:"diagnostic" db:"diagnostic"`

	// Status: pending, running, completed, failed
	Status string `json:"status" db:"status"`

	// Input parameters, serialized request payload for the diagnostic.
	ParamsJSON string `json:"params_json,omitempty" db:"params_json"`

	// Execution info (Unix timestamps)
	StartTime int64 `json:"start_time,omitempty" db:"start_time"`
	EndTime   int64 `json:"end_time,omitempty" db:"end_time"`

	// Results
	ResultJSON   string `json:"result_json,omitempty" db:"result_json"`
	ErrorMessage string `json:"error_message,omitempty" db:"error_message"`

	// Metadata
	CreatedBy string    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Diagnostic name constants
const (
	DiagnosticRadiusSubset        = "radius_subset"
	DiagnosticNearestIndices      = "nearest_indices"
	DiagnosticTrackSummary        = "track_summary"
	DiagnosticDoodsonX0           = "doodson_x0"
	DiagnosticDistributionCompare = "distribution_compare"
)

// KnownDiagnostics lists every diagnostic a task may run.
var KnownDiagnostics = []string{
	DiagnosticRadiusSubset,
	DiagnosticNearestIndices,
	DiagnosticTrackSummary,
	DiagnosticDoodsonX0,
	DiagnosticDistributionCompare,
}

// IsKnownDiagnostic reports whether name is a runnable diagnostic.
func IsKnownDiagnostic(name string) bool {
	for _, d := range KnownDiagnostics {
		if d == name {
			return true
		}
	}
	return false
}
