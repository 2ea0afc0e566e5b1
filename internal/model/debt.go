package model

import "cloud.google.com/go/civil"

// DebtType classifies a debt for scoring tie-breaks.
type DebtType string

const (
	DebtTypeCreditCard   DebtType = "Credit Card"
	DebtTypePersonalLoan DebtType = "Personal Loan"
	DebtTypeLineOfCredit DebtType = "Line of Credit"
	DebtTypeAutoLoan     DebtType = "Auto Loan"
	DebtTypeStudentLoan  DebtType = "Student Loan"
	DebtTypeMortgage     DebtType = "Mortgage"
	DebtTypeOther        DebtType = "Other"
)

// RateChange is a scheduled APR adjustment, effective from EffectiveDate inclusive.
type RateChange struct {
	EffectiveDate civil.Date `yaml:"effective_date" json:"effective_date"`
	Rate          float64    `yaml:"rate" json:"rate"`
}

// Debt is a read-only snapshot of one revolving or installment debt.
// Rates are nominal annual percentages (21.99 means 21.99% APR).
type Debt struct {
	ID                   string       `yaml:"id" json:"id"`
	Name                 string       `yaml:"name" json:"name"`
	CurrentBalance       float64      `yaml:"current_balance" json:"current_balance"`
	MonthlyRepayment     float64      `yaml:"monthly_repayment" json:"monthly_repayment"`
	InterestRate         float64      `yaml:"interest_rate" json:"interest_rate"`
	ScheduledRateChanges []RateChange `yaml:"scheduled_rate_changes" json:"scheduled_rate_changes"`
	DebtType             DebtType     `yaml:"debt_type" json:"debt_type"`
}

// Retired reports whether the debt has nothing left to pay.
func (d Debt) Retired() bool {
	return d.CurrentBalance <= 0
}

// DisplayName falls back to the ID when no name was given.
func (d Debt) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
