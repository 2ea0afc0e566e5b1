package calculator

import (
	"time"

	"DebtSentinel/internal/model"
)

// Risk band edges, in days until the relevant rate change.
const (
	HighRiskDays   = 30
	MediumRiskDays = 60
)

// ClassifyStatus labels d by how close its relevant rate change is. A
// pending change beyond MediumRiskDays gives way to an increase already in
// force.
func ClassifyStatus(d model.Debt, today time.Time) model.DebtStatus {
	return StatusOf(FocusState(ResolveEffectiveRateState(d, today), MediumRiskDays))
}

// StatusOf bands st by its days to change. Bands are checked in order and
// the first match wins.
func StatusOf(st model.RateState) model.DebtStatus {
	if !st.HasChange {
		return model.DebtStatus{Label: "No Scheduled Change", Level: model.StatusNone}
	}

	days := st.DaysToChange
	status := model.DebtStatus{DaysToChange: &days}
	switch {
	case days <= 0:
		status.Level, status.Label = model.StatusCritical, "Active High Interest"
	case days <= HighRiskDays:
		status.Level, status.Label = model.StatusHigh, "High Risk"
	case days <= MediumRiskDays:
		status.Level, status.Label = model.StatusMedium, "Upcoming Risk"
	default:
		status.Level, status.Label = model.StatusLow, "On Track"
	}
	return status
}
