package calculator

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"DebtSentinel/internal/model"
)

// HighCostRateThreshold is the APR at or above which a debt is flagged as
// high-cost revolving credit.
const HighCostRateThreshold = 18.0

// MonthlyRate converts a nominal annual percentage into a monthly fraction.
func MonthlyRate(annualPct float64) float64 {
	return annualPct / 100 / 12
}

// MonthlyInterest is one month of interest on balance at annualPct.
func MonthlyInterest(balance, annualPct float64) float64 {
	return balance * MonthlyRate(annualPct)
}

// Timeline returns the debt's scheduled changes in ascending date order.
// Entries without a valid date are dropped; when two entries share a date
// the one listed last wins.
func Timeline(d model.Debt) []model.RateChange {
	if len(d.ScheduledRateChanges) == 0 {
		return nil
	}
	tl := make([]model.RateChange, 0, len(d.ScheduledRateChanges))
	for _, c := range d.ScheduledRateChanges {
		if c.EffectiveDate.IsValid() {
			tl = append(tl, c)
		}
	}
	sort.SliceStable(tl, func(i, j int) bool {
		return tl[i].EffectiveDate.Before(tl[j].EffectiveDate)
	})

	out := tl[:0]
	for _, c := range tl {
		if n := len(out); n > 0 && out[n-1].EffectiveDate == c.EffectiveDate {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}

// RateOn returns the rate in force on day: the latest breakpoint on or
// before day, or the debt's base rate when none has taken effect.
func RateOn(d model.Debt, day civil.Date) float64 {
	return rateOn(d.InterestRate, Timeline(d), day)
}

func rateOn(base float64, tl []model.RateChange, day civil.Date) float64 {
	rate := base
	for _, c := range tl {
		if c.EffectiveDate.After(day) {
			break
		}
		rate = c.Rate
	}
	return rate
}

// ResolveCurrentRate returns the rate in force for d at today.
func ResolveCurrentRate(d model.Debt, today time.Time) float64 {
	return RateOn(d, civil.DateOf(today))
}

// relevantChange picks the change that drives risk: the nearest pending
// one, else the most recent one already in force. -1 when there is none.
func relevantChange(tl []model.RateChange, day civil.Date) int {
	for i, c := range tl {
		if c.EffectiveDate.After(day) {
			return i
		}
	}
	return len(tl) - 1
}

// lastInForce is the index of the latest change on or before day, -1 when
// none has taken effect.
func lastInForce(tl []model.RateChange, day civil.Date) int {
	idx := -1
	for i, c := range tl {
		if c.EffectiveDate.After(day) {
			break
		}
		idx = i
	}
	return idx
}

// rateBefore is the rate the change at idx replaced.
func rateBefore(base float64, tl []model.RateChange, idx int) float64 {
	if idx > 0 {
		return tl[idx-1].Rate
	}
	return base
}

// ResolveEffectiveRateState places d on its rate schedule at today.
//
// NO_SCHEDULE: no usable scheduled change.
// PENDING:     the relevant change is still ahead (today < effective date).
// SWITCHED:    every scheduled change has taken effect.
//
// BaselineRate is the rate in force the day before the relevant change, so a
// jump that already happened is measured once against what it replaced.
// RateIsSwitched and the Switch fields describe the latest change already in
// force, whatever the phase.
func ResolveEffectiveRateState(d model.Debt, today time.Time) model.RateState {
	day := civil.DateOf(today)
	tl := Timeline(d)

	current := rateOn(d.InterestRate, tl, day)
	st := model.RateState{
		Phase:            model.PhaseNoSchedule,
		CurrentRate:      current,
		BaselineRate:     current,
		FutureRate:       current,
		HighCostDebtFlag: current >= HighCostRateThreshold,
	}

	if p := lastInForce(tl, day); p >= 0 {
		st.RateIsSwitched = true
		st.SwitchDate = tl[p].EffectiveDate
		st.SwitchFromRate = rateBefore(d.InterestRate, tl, p)
		st.DaysSinceSwitch = day.DaysSince(tl[p].EffectiveDate)
	}

	idx := relevantChange(tl, day)
	if idx < 0 {
		return st
	}
	c := tl[idx]
	st.HasChange = true
	st.ChangeDate = c.EffectiveDate
	st.DaysToChange = c.EffectiveDate.DaysSince(day)
	st.FutureRate = c.Rate
	st.BaselineRate = rateBefore(d.InterestRate, tl, idx)
	if c.EffectiveDate.After(day) {
		st.Phase = model.PhasePending
	} else {
		st.Phase = model.PhaseSwitched
	}
	return st
}

// FocusState narrows st to the one change that should drive risk over the
// next horizonDays: a pending change inside the horizon, else an increase
// already in force, else st as resolved.
func FocusState(st model.RateState, horizonDays int) model.RateState {
	if st.Phase != model.PhasePending || st.DaysToChange <= horizonDays {
		return st
	}
	if sw, ok := st.Switched(); ok && sw.FutureRate > sw.BaselineRate {
		return sw
	}
	return st
}
