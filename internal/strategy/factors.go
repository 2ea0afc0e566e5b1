package strategy

import (
	"strings"
	"time"

	"DebtSentinel/internal/calculator"
	"DebtSentinel/internal/model"
)

// Priority weights. Each factor is clamped to [0, weight] before summing.
const (
	RateScoreWeight   = 45.0
	RateScoreCeiling  = 30.0 // APR that earns the full rate score
	TimeScoreWeight   = 25.0
	JumpScoreWeight   = 20.0
	JumpScoreCeiling  = 20.0 // APR jump that earns the full jump score
	CreditCardBonus   = 10.0
	PersonalLoanBonus = 4.0
)

// DefaultHorizonDays is the look-ahead window used when none is given.
const DefaultHorizonDays = 90

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func normalizeHorizon(horizonDays int) int {
	if horizonDays <= 0 {
		return DefaultHorizonDays
	}
	return horizonDays
}

// pendingWithin reports whether the relevant change is still ahead and falls
// inside the horizon.
func pendingWithin(st model.RateState, horizonDays int) bool {
	return st.Phase == model.PhasePending && st.DaysToChange <= horizonDays
}

// riskAdjustedRate is the rate a debt is about to carry: the scheduled rate
// when a change is pending inside the horizon, else the rate in force.
func riskAdjustedRate(st model.RateState, horizonDays int) float64 {
	if pendingWithin(st, horizonDays) {
		return st.FutureRate
	}
	return st.CurrentRate
}

// scoreRate rewards high APRs, saturating at RateScoreCeiling.
// Weight: 45
func scoreRate(rate float64) float64 {
	return clamp01(rate/RateScoreCeiling) * RateScoreWeight
}

// scoreTime rewards changes that are close. A change already in force gets
// the full weight.
// Weight: 25
func scoreTime(st model.RateState, horizonDays int) float64 {
	switch {
	case st.Phase == model.PhaseSwitched:
		return TimeScoreWeight
	case pendingWithin(st, horizonDays):
		h := float64(horizonDays)
		return clamp01((h-float64(st.DaysToChange))/h) * TimeScoreWeight
	}
	return 0
}

// scoreJump rewards the size of the scheduled increase, measured against the
// rate it replaces rather than the rate after switching.
// Weight: 20
func scoreJump(st model.RateState) float64 {
	if !st.HasChange {
		return 0
	}
	return clamp01((st.FutureRate-st.BaselineRate)/JumpScoreCeiling) * JumpScoreWeight
}

// typeBonus breaks ties in favour of revolving credit.
func typeBonus(t model.DebtType) float64 {
	switch {
	case strings.EqualFold(string(t), string(model.DebtTypeCreditCard)):
		return CreditCardBonus
	case strings.EqualFold(string(t), string(model.DebtTypePersonalLoan)):
		return PersonalLoanBonus
	}
	return 0
}

// ScorePriority computes the composite urgency of paying d down.
func ScorePriority(d model.Debt, today time.Time, horizonDays int) model.PriorityScore {
	horizonDays = normalizeHorizon(horizonDays)
	st := calculator.FocusState(calculator.ResolveEffectiveRateState(d, today), horizonDays)
	rate := riskAdjustedRate(st, horizonDays)

	c := model.ScoreComponents{
		RateScore: scoreRate(rate),
		TimeScore: scoreTime(st, horizonDays),
		JumpScore: scoreJump(st),
		TypeBonus: typeBonus(d.DebtType),
	}
	return model.PriorityScore{
		PriorityScore:       c.RateScore + c.TimeScore + c.JumpScore + c.TypeBonus,
		RiskAdjustedRatePct: rate,
		Components:          c,
	}
}
