package model

import "cloud.google.com/go/civil"

// RatePhase is the position of a debt on its rate schedule.
type RatePhase string

const (
	PhaseNoSchedule RatePhase = "NO_SCHEDULE"
	PhasePending    RatePhase = "PENDING"
	PhaseSwitched   RatePhase = "SWITCHED"
)

// RateState describes the rate in force for a debt on a given day and the
// scheduled change that matters for risk.
type RateState struct {
	Phase        RatePhase
	CurrentRate  float64
	BaselineRate float64 // rate in force before the relevant change
	FutureRate   float64 // rate of the relevant change, CurrentRate when none
	HasChange    bool
	ChangeDate   civil.Date
	DaysToChange int

	// Latest change already in force, set whenever RateIsSwitched. It is
	// tracked apart from the relevant change so a pending change does not
	// hide one that already happened.
	RateIsSwitched  bool
	SwitchDate      civil.Date
	SwitchFromRate  float64
	DaysSinceSwitch int

	HighCostDebtFlag bool
}

// Switched views s from its latest change in force, dropping any pending
// change. ok is false when no change has taken effect.
func (s RateState) Switched() (RateState, bool) {
	if !s.RateIsSwitched {
		return s, false
	}
	s.Phase = PhaseSwitched
	s.HasChange = true
	s.ChangeDate = s.SwitchDate
	s.DaysToChange = -s.DaysSinceSwitch
	s.BaselineRate = s.SwitchFromRate
	s.FutureRate = s.CurrentRate
	return s, true
}

// StatusLevel is a qualitative risk band.
type StatusLevel string

const (
	StatusNone     StatusLevel = "NONE"
	StatusCritical StatusLevel = "CRITICAL"
	StatusHigh     StatusLevel = "HIGH"
	StatusMedium   StatusLevel = "MEDIUM"
	StatusLow      StatusLevel = "LOW"
)

// DebtStatus is the output of status classification. DaysToChange is nil
// when the debt has no scheduled change.
type DebtStatus struct {
	Label        string
	Level        StatusLevel
	DaysToChange *int
}

// ScoreComponents breaks a priority score into its additive parts.
type ScoreComponents struct {
	RateScore float64
	TimeScore float64
	JumpScore float64
	TypeBonus float64
}

// PriorityScore ranks a debt for extra payments. Higher is more urgent.
type PriorityScore struct {
	PriorityScore       float64
	RiskAdjustedRatePct float64
	Components          ScoreComponents
}
