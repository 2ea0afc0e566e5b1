package recorder

import "DebtSentinel/internal/model"

// PlanRun holds one monthly plan comparison.
type PlanRun struct {
	Comparison *model.PlanComparison
	Trigger    string // "SCHEDULED" or "COMMAND"
}

// ProjectionRun holds one interest projection digest.
type ProjectionRun struct {
	Projection *model.InterestProjection
	DebtCount  int
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordPlan(run *PlanRun) (string, error)
	RecordProjection(run *ProjectionRun) error
	RecordWarning(w *model.Warning) error
	Close() error
}
