package model

import "cloud.google.com/go/civil"

// SavingsOpportunity is interest avoidable by clearing a debt before its
// scheduled increase.
type SavingsOpportunity struct {
	ID         string
	Name       string
	Amount     float64
	Monthly    float64
	SwitchDate civil.Date
}

// WorstOffender is the debt costing the most interest per month right now.
type WorstOffender struct {
	ID   string
	Name string
	Cost float64
	Rate float64
}

// InterestProjection totals interest-only accrual across all debts.
type InterestProjection struct {
	Months3       float64
	Months6       float64
	Months12      float64
	Opportunities []SavingsOpportunity
	WorstOffender *WorstOffender
}

// Severity of a warning.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank orders severities, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// WarningType identifies the condition behind a warning.
type WarningType string

const (
	WarningNeverPayoff          WarningType = "never_payoff"
	WarningRateSwitched         WarningType = "rate_switched"
	WarningRateIncreaseImminent WarningType = "rate_increase_imminent"
	WarningRateIncreaseUpcoming WarningType = "rate_increase_upcoming"
	WarningHighCostDebt         WarningType = "high_cost_debt"
)

// Warning is a render-ready alert about one debt.
type Warning struct {
	Type         WarningType `json:"type"`
	Severity     Severity    `json:"severity"`
	Label        string      `json:"label"`
	DebtID       string      `json:"debt_id"`
	DebtName     string      `json:"debt_name"`
	Message      string      `json:"message"`
	Action       string      `json:"action"`
	Impact       string      `json:"impact"`
	Timeframe    string      `json:"timeframe"`
	DaysToChange int         `json:"-"`
}

// Key identifies a warning across days so it is only delivered once.
func (w Warning) Key() string {
	return string(w.Type) + ":" + w.DebtID + ":" + w.Timeframe
}
