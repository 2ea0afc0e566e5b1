package calculator

import (
	"math"
	"time"

	"DebtSentinel/internal/model"
)

// MaxSimulationMonths caps a payoff simulation at 50 years.
const MaxSimulationMonths = 600

// NeverPaysOff is the sentinel for a payment that cannot outrun interest.
// Callers must check Never() before summing or formatting it.
func NeverPaysOff() model.SimulationResult {
	return model.SimulationResult{TotalInterest: math.Inf(1), Months: model.NeverPaysOffMonths}
}

// Simulate pays d down at monthlyPayment, holding the rate in force at today
// for the whole run. It stops at a zero balance or after MaxSimulationMonths.
func Simulate(d model.Debt, monthlyPayment float64, today time.Time) model.SimulationResult {
	balance := d.CurrentBalance
	if balance <= 0 {
		return model.SimulationResult{}
	}

	r := MonthlyRate(ResolveCurrentRate(d, today))
	if monthlyPayment <= balance*r || monthlyPayment <= 0 {
		return NeverPaysOff()
	}

	var res model.SimulationResult
	for balance > 0 && res.Months < MaxSimulationMonths {
		interest := balance * r
		principal := math.Min(monthlyPayment-interest, balance)
		res.TotalInterest += interest
		balance -= principal
		res.Months++
	}
	return res
}
