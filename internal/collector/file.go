package collector

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"DebtSentinel/internal/model"
)

// FileSource reads debts from a YAML file shaped like:
//
//	debts:
//	  - id: visa
//	    name: Visa Platinum
//	    current_balance: 4200
//	    monthly_repayment: 120
//	    interest_rate: 0
//	    debt_type: Credit Card
//	    scheduled_rate_changes:
//	      - effective_date: 2025-06-01
//	        rate: 21.99
type FileSource struct {
	Path string
}

// NewFileSource creates a source backed by the YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

type debtsFile struct {
	Debts []model.Debt `yaml:"debts"`
}

// FetchDebts re-reads the file on every call so edits apply without restart.
func (s *FileSource) FetchDebts(_ context.Context) ([]model.Debt, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read debts file: %w", err)
	}
	var f debtsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse debts file: %w", err)
	}
	return f.Debts, nil
}
