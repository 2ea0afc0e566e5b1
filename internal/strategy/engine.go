package strategy

import (
	"math"
	"sort"
	"time"

	"DebtSentinel/internal/calculator"
	"DebtSentinel/internal/model"
)

// RankedDebt pairs a debt with its priority score.
type RankedDebt struct {
	Debt  model.Debt
	Score model.PriorityScore
}

// RankDebts scores every debt and sorts them most urgent first. Equal scores
// keep their input order.
func RankDebts(debts []model.Debt, today time.Time, horizonDays int) []RankedDebt {
	ranked := make([]RankedDebt, len(debts))
	for i, d := range debts {
		ranked[i] = RankedDebt{Debt: d, Score: ScorePriority(d, today, horizonDays)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.PriorityScore > ranked[j].Score.PriorityScore
	})
	return ranked
}

// PlanAllocation ranks debts and routes the whole surplus to the single
// highest-ranked debt that still carries a balance. Every debt is then
// simulated at its minimum and at minimum plus its share of the surplus.
func PlanAllocation(debts []model.Debt, surplusCash float64, horizonDays int, today time.Time) []model.AllocationResult {
	if surplusCash < 0 || math.IsNaN(surplusCash) || math.IsInf(surplusCash, 0) {
		surplusCash = 0
	}

	ranked := RankDebts(debts, today, horizonDays)
	results := make([]model.AllocationResult, 0, len(ranked))
	targeted := false
	for i, r := range ranked {
		d := r.Debt
		minPay := math.Max(d.MonthlyRepayment, 0)

		var extra float64
		if !targeted && surplusCash > 0 && !d.Retired() {
			extra = surplusCash
			targeted = true
		}

		baseline := calculator.Simulate(d, minPay, today)
		optimized := baseline
		if extra > 0 {
			optimized = calculator.Simulate(d, minPay+extra, today)
		}

		results = append(results, model.AllocationResult{
			ID:                d.ID,
			Name:              d.DisplayName(),
			Rank:              i + 1,
			Balance:           d.CurrentBalance,
			CurrentRate:       calculator.ResolveCurrentRate(d, today),
			Score:             r.Score,
			MinPay:            minPay,
			ExtraPay:          extra,
			TotalPay:          minPay + extra,
			MonthsToPayoff:    optimized.Months,
			ProjectedInterest: model.RoundMoney(optimized.TotalInterest),
			Impact:            impactOf(baseline, optimized),
		})
	}
	return results
}

func impactOf(baseline, optimized model.SimulationResult) model.Impact {
	switch {
	case optimized.Never():
		return model.Impact{}
	case baseline.Never():
		return model.Impact{BreaksDebtCycle: true}
	}
	imp := model.Impact{
		InterestSaved: model.RoundMoney(math.Max(0, baseline.TotalInterest-optimized.TotalInterest)),
	}
	if baseline.Months > optimized.Months {
		imp.TimeSaved = baseline.Months - optimized.Months
	}
	return imp
}

// ComparePlans runs a minimum-only pass and a pass with surplusCash and
// reports what the surplus buys across the whole portfolio.
func ComparePlans(debts []model.Debt, surplusCash float64, horizonDays int, today time.Time) model.PlanComparison {
	baseline := PlanAllocation(debts, 0, horizonDays, today)
	optimized := PlanAllocation(debts, surplusCash, horizonDays, today)

	cmp := model.PlanComparison{
		SurplusCash:  math.Max(surplusCash, 0),
		Baseline:     baseline,
		Optimized:    optimized,
		BaselineSum:  Summarize(baseline),
		OptimizedSum: Summarize(optimized),
	}
	if cmp.BaselineSum.NeverPaysOff || cmp.OptimizedSum.NeverPaysOff {
		return cmp
	}
	cmp.InterestSaved = model.RoundMoney(math.Max(0, cmp.BaselineSum.TotalInterest-cmp.OptimizedSum.TotalInterest))
	if d := cmp.BaselineSum.MonthsToDebtFree - cmp.OptimizedSum.MonthsToDebtFree; d > 0 {
		cmp.MonthsSaved = d
	}
	return cmp
}
