package strategy

import (
	"fmt"
	"sort"
	"time"

	"DebtSentinel/internal/calculator"
	"DebtSentinel/internal/model"
)

// GenerateWarnings builds render-ready alerts for every debt with a balance,
// sorted by severity (critical first), then by days to change, then by name.
func GenerateWarnings(debts []model.Debt, today time.Time, horizonDays int) []model.Warning {
	horizonDays = normalizeHorizon(horizonDays)
	var out []model.Warning
	for _, d := range debts {
		if d.Retired() {
			continue
		}
		out = append(out, debtWarnings(d, today, horizonDays)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.DaysToChange != b.DaysToChange {
			return a.DaysToChange < b.DaysToChange
		}
		return a.DebtName < b.DebtName
	})
	return out
}

func debtWarnings(d model.Debt, today time.Time, horizonDays int) []model.Warning {
	st := calculator.ResolveEffectiveRateState(d, today)
	name := d.DisplayName()
	nowInterest := calculator.MonthlyInterest(d.CurrentBalance, st.CurrentRate)

	var out []model.Warning
	if calculator.Simulate(d, d.MonthlyRepayment, today).Never() {
		out = append(out, model.Warning{
			Type:      model.WarningNeverPayoff,
			Severity:  model.SeverityCritical,
			Label:     "Payment Below Interest",
			DebtID:    d.ID,
			DebtName:  name,
			Message:   fmt.Sprintf("Minimum payment of %s does not cover %s of monthly interest, so the balance never shrinks", model.Money(d.MonthlyRepayment), model.Money(nowInterest)),
			Action:    fmt.Sprintf("Pay more than %s per month", model.Money(nowInterest)),
			Impact:    fmt.Sprintf("%s balance never paid off", model.Money(d.CurrentBalance)),
			Timeframe: "now",
		})
	}

	// A past increase and a pending one are reported independently.
	rateAlert := false
	if sw, ok := st.Switched(); ok && sw.FutureRate > sw.BaselineRate {
		out = append(out, model.Warning{
			Type:         model.WarningRateSwitched,
			Severity:     model.SeverityCritical,
			Label:        calculator.StatusOf(sw).Label,
			DebtID:       d.ID,
			DebtName:     name,
			Message:      fmt.Sprintf("Rate rose from %s to %s on %s", model.Percent(sw.BaselineRate), model.Percent(sw.FutureRate), sw.ChangeDate),
			Action:       "Direct extra payments here or move the balance to a lower rate",
			Impact:       fmt.Sprintf("+%s/month in interest", model.Money(monthlyDelta(d, sw))),
			Timeframe:    sw.ChangeDate.String(),
			DaysToChange: sw.DaysToChange,
		})
		rateAlert = true
	}
	if st.Phase == model.PhasePending && st.FutureRate > st.BaselineRate {
		status := calculator.StatusOf(st)
		switch {
		case status.Level == model.StatusHigh:
			out = append(out, pendingWarning(d, st, status, model.WarningRateIncreaseImminent, model.SeverityWarning))
			rateAlert = true
		case pendingWithin(st, horizonDays):
			out = append(out, pendingWarning(d, st, status, model.WarningRateIncreaseUpcoming, model.SeverityInfo))
			rateAlert = true
		}
	}

	if !rateAlert && st.HighCostDebtFlag {
		out = append(out, model.Warning{
			Type:      model.WarningHighCostDebt,
			Severity:  model.SeverityInfo,
			Label:     "High-Cost Debt",
			DebtID:    d.ID,
			DebtName:  name,
			Message:   fmt.Sprintf("%s APR costs %s per month", model.Percent(st.CurrentRate), model.Money(nowInterest)),
			Action:    "Consider this debt first for extra payments",
			Impact:    fmt.Sprintf("%s/month in interest", model.Money(nowInterest)),
			Timeframe: "now",
		})
	}
	return out
}

// monthlyDelta is the extra monthly interest st's change costs at today's
// balance.
func monthlyDelta(d model.Debt, st model.RateState) float64 {
	return calculator.MonthlyInterest(d.CurrentBalance, st.FutureRate) -
		calculator.MonthlyInterest(d.CurrentBalance, st.BaselineRate)
}

func pendingWarning(d model.Debt, st model.RateState, status model.DebtStatus, typ model.WarningType, sev model.Severity) model.Warning {
	return model.Warning{
		Type:         typ,
		Severity:     sev,
		Label:        status.Label,
		DebtID:       d.ID,
		DebtName:     d.DisplayName(),
		Message:      fmt.Sprintf("Rate rises from %s to %s in %d days", model.Percent(st.CurrentRate), model.Percent(st.FutureRate), st.DaysToChange),
		Action:       fmt.Sprintf("Pay down %s before %s", model.Money(d.CurrentBalance), st.ChangeDate),
		Impact:       fmt.Sprintf("+%s/month in interest", model.Money(monthlyDelta(d, st))),
		Timeframe:    st.ChangeDate.String(),
		DaysToChange: st.DaysToChange,
	}
}
