package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"DebtSentinel/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Debts []model.Debt
	Err   error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchDebts(_ context.Context) ([]model.Debt, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Debt, len(m.Debts))
	copy(out, m.Debts)
	return out, nil
}

// Collector loads debts from a Source and cleans them before they reach
// the engine.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source}
}

// Collect fetches the debt snapshot and drops records the engine cannot
// price. Debts without a unique ID get one derived from their position and
// name, so the same file yields the same IDs on every run.
func (c *Collector) Collect(ctx context.Context) ([]model.Debt, error) {
	raw, err := c.Source.FetchDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect from %s: %w", c.Source.Name(), err)
	}

	debts := make([]model.Debt, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, d := range raw {
		if err := validate(d); err != nil {
			log.Printf("[WARN] Skipping debt #%d (%s): %v", i+1, d.DisplayName(), err)
			continue
		}
		d.Name = strings.TrimSpace(d.Name)
		d.DebtType = normalizeType(d.DebtType)
		if d.ID == "" || seen[d.ID] {
			if d.ID != "" {
				log.Printf("[WARN] Duplicate debt id %q, assigning a new one", d.ID)
			}
			d.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d:%s", i, d.Name))).String()
		}
		seen[d.ID] = true
		debts = append(debts, d)
	}
	return debts, nil
}

func validate(d model.Debt) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("missing name")
	}
	checks := []struct {
		field string
		v     float64
	}{
		{"current balance", d.CurrentBalance},
		{"monthly repayment", d.MonthlyRepayment},
		{"interest rate", d.InterestRate},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v < 0 {
			return fmt.Errorf("invalid %s %v", c.field, c.v)
		}
	}
	for _, rc := range d.ScheduledRateChanges {
		if rc.Rate < 0 || math.IsNaN(rc.Rate) || math.IsInf(rc.Rate, 0) {
			return fmt.Errorf("invalid scheduled rate %v on %s", rc.Rate, rc.EffectiveDate)
		}
	}
	return nil
}

var knownTypes = []model.DebtType{
	model.DebtTypeCreditCard,
	model.DebtTypePersonalLoan,
	model.DebtTypeLineOfCredit,
	model.DebtTypeAutoLoan,
	model.DebtTypeStudentLoan,
	model.DebtTypeMortgage,
}

// normalizeType maps free-form labels onto the canonical spelling.
// Unknown labels become DebtTypeOther.
func normalizeType(t model.DebtType) model.DebtType {
	s := strings.Join(strings.Fields(strings.ReplaceAll(string(t), "_", " ")), " ")
	for _, k := range knownTypes {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return model.DebtTypeOther
}
