package strategy

import "DebtSentinel/internal/model"

// Summarize aggregates allocation results. Debts that never pay off set
// NeverPaysOff and are left out of the interest and month totals. Nothing
// owed is reported as debt free rather than dividing by zero.
func Summarize(results []model.AllocationResult) model.PlanSummary {
	s := model.PlanSummary{DebtCount: len(results)}
	var weighted float64
	for _, r := range results {
		s.TotalBalance += r.Balance
		s.TotalMinimum += r.MinPay
		s.TotalPayment += r.TotalPay
		weighted += r.Balance * r.CurrentRate
		if r.Never() {
			s.NeverPaysOff = true
			continue
		}
		s.TotalInterest += r.ProjectedInterest
		if r.MonthsToPayoff > s.MonthsToDebtFree {
			s.MonthsToDebtFree = r.MonthsToPayoff
		}
	}

	if s.TotalBalance <= 0 {
		return model.PlanSummary{DebtFree: true, DebtCount: s.DebtCount}
	}
	s.WeightedAvgRate = weighted / s.TotalBalance
	if s.NeverPaysOff {
		s.MonthsToDebtFree = model.NeverPaysOffMonths
	}

	s.TotalBalance = model.RoundMoney(s.TotalBalance)
	s.TotalMinimum = model.RoundMoney(s.TotalMinimum)
	s.TotalPayment = model.RoundMoney(s.TotalPayment)
	s.TotalInterest = model.RoundMoney(s.TotalInterest)
	return s
}
