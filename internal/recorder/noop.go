package recorder

import "DebtSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPlan(_ *PlanRun) (string, error)   { return "", nil }
func (n *NoopRecorder) RecordProjection(_ *ProjectionRun) error { return nil }
func (n *NoopRecorder) RecordWarning(_ *model.Warning) error    { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
