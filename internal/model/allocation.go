package model

import "math"

// NeverPaysOffMonths is the month count reported when a payment does not
// cover accruing interest.
const NeverPaysOffMonths = 999

// SimulationResult is the outcome of paying one debt down at a fixed payment.
// A never-ending payoff is reported as TotalInterest=+Inf, Months=999.
type SimulationResult struct {
	TotalInterest float64
	Months        int
}

// Never reports whether the result is the never-pays-off sentinel.
func (r SimulationResult) Never() bool {
	return r.Months >= NeverPaysOffMonths || math.IsInf(r.TotalInterest, 1)
}

// Impact quantifies what the extra payment buys over the minimum.
type Impact struct {
	InterestSaved   float64
	TimeSaved       int
	BreaksDebtCycle bool // baseline never pays off, the plan does
}

// AllocationResult is the per-debt outcome of one planning pass.
type AllocationResult struct {
	ID                string
	Name              string
	Rank              int
	Balance           float64
	CurrentRate       float64
	Score             PriorityScore
	MinPay            float64
	ExtraPay          float64
	TotalPay          float64
	MonthsToPayoff    int
	ProjectedInterest float64
	Impact            Impact
}

// Never reports whether this debt never pays off under the plan.
func (a AllocationResult) Never() bool {
	return a.MonthsToPayoff >= NeverPaysOffMonths || math.IsInf(a.ProjectedInterest, 1)
}

// PlanComparison pairs a minimum-only pass with a pass using surplus cash.
type PlanComparison struct {
	SurplusCash   float64
	Baseline      []AllocationResult
	Optimized     []AllocationResult
	BaselineSum   PlanSummary
	OptimizedSum  PlanSummary
	InterestSaved float64
	MonthsSaved   int
}

// PlanSummary aggregates allocation results across all debts.
type PlanSummary struct {
	DebtFree         bool
	NeverPaysOff     bool
	DebtCount        int
	TotalBalance     float64
	TotalMinimum     float64
	TotalPayment     float64
	TotalInterest    float64
	MonthsToDebtFree int
	WeightedAvgRate  float64
}
