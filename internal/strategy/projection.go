package strategy

import (
	"sort"
	"time"

	"DebtSentinel/internal/calculator"
	"DebtSentinel/internal/model"
)

// Savings opportunities look at increases inside a 12-month projection window.
const (
	OpportunityWindowMonths = 12
	OpportunityWindowDays   = OpportunityWindowMonths * calculator.DaysPerMonth
	MaxOpportunities        = 3
)

// BuildInterestProjection totals interest-only accrual over 3, 6 and 12
// months and attaches the savings opportunities and the worst offender.
func BuildInterestProjection(debts []model.Debt, today time.Time, horizonDays int) model.InterestProjection {
	var p model.InterestProjection
	for _, d := range debts {
		p.Months3 += calculator.ProjectInterest(d, 3, today)
		p.Months6 += calculator.ProjectInterest(d, 6, today)
		p.Months12 += calculator.ProjectInterest(d, 12, today)
	}
	p.Months3 = model.RoundMoney(p.Months3)
	p.Months6 = model.RoundMoney(p.Months6)
	p.Months12 = model.RoundMoney(p.Months12)
	p.Opportunities = FindSavingsOpportunities(debts, today)
	p.WorstOffender = FindWorstOffender(debts, today, horizonDays)
	return p
}

// FindSavingsOpportunities lists debts with a pending rate increase inside
// the next 12 months, sized by the interest accruing from the switch date to
// the end of the window. The top MaxOpportunities by amount are returned.
func FindSavingsOpportunities(debts []model.Debt, today time.Time) []model.SavingsOpportunity {
	var out []model.SavingsOpportunity
	for _, d := range debts {
		if d.Retired() {
			continue
		}
		st := calculator.ResolveEffectiveRateState(d, today)
		if st.Phase != model.PhasePending || st.DaysToChange >= OpportunityWindowDays {
			continue
		}
		if st.FutureRate <= st.CurrentRate {
			continue
		}

		months := float64(OpportunityWindowMonths)
		beforeSwitch := calculator.MonthlyInterest(d.CurrentBalance, st.CurrentRate) *
			months * float64(st.DaysToChange) / float64(OpportunityWindowDays)
		amount := calculator.ProjectInterest(d, OpportunityWindowMonths, today) - beforeSwitch
		if amount <= 0 {
			continue
		}
		out = append(out, model.SavingsOpportunity{
			ID:         d.ID,
			Name:       d.DisplayName(),
			Amount:     model.RoundMoney(amount),
			Monthly:    model.RoundMoney(calculator.MonthlyInterest(d.CurrentBalance, st.FutureRate)),
			SwitchDate: st.ChangeDate,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	if len(out) > MaxOpportunities {
		out = out[:MaxOpportunities]
	}
	return out
}

// FindWorstOffender returns the debt with the highest monthly interest cost,
// priced at the scheduled rate when a switch inside the horizon is pending.
// Nil when no debt accrues interest.
func FindWorstOffender(debts []model.Debt, today time.Time, horizonDays int) *model.WorstOffender {
	horizonDays = normalizeHorizon(horizonDays)
	var worst *model.WorstOffender
	for _, d := range debts {
		if d.Retired() {
			continue
		}
		st := calculator.ResolveEffectiveRateState(d, today)
		rate := riskAdjustedRate(st, horizonDays)
		cost := calculator.MonthlyInterest(d.CurrentBalance, rate)
		if cost <= 0 || (worst != nil && cost <= worst.Cost) {
			continue
		}
		worst = &model.WorstOffender{ID: d.ID, Name: d.DisplayName(), Cost: cost, Rate: rate}
	}
	if worst != nil {
		worst.Cost = model.RoundMoney(worst.Cost)
	}
	return worst
}
