package strategy

import (
	"math"
	"testing"

	"DebtSentinel/internal/model"
)

func TestBuildInterestProjection_SplitAtChange(t *testing.T) {
	debts := []model.Debt{{
		ID: "p", Name: "Promo", CurrentBalance: 1000, InterestRate: 0,
		ScheduledRateChanges: []model.RateChange{{EffectiveDate: in(90), Rate: 20}},
	}}
	p := BuildInterestProjection(debts, today, 90)
	if !(p.Months12 > 0 && p.Months12 < 200) {
		t.Errorf("expected months12 strictly between 0 and 200, got %.2f", p.Months12)
	}
	if p.Months12 != 150 {
		t.Errorf("expected a 3/9 month split worth 150.00, got %.2f", p.Months12)
	}
	if p.Months3 != 0 {
		t.Errorf("expected no interest in the first 3 months, got %.2f", p.Months3)
	}
}

func TestBuildInterestProjection_Totals(t *testing.T) {
	debts := []model.Debt{
		{ID: "a", CurrentBalance: 1200, InterestRate: 12},
		{ID: "b", CurrentBalance: 600, InterestRate: 18},
		{ID: "c", CurrentBalance: 0, InterestRate: 30},
	}
	p := BuildInterestProjection(debts, today, 90)
	if p.Months3 != 63 || p.Months6 != 126 || p.Months12 != 252 {
		t.Errorf("unexpected totals 3=%.2f 6=%.2f 12=%.2f", p.Months3, p.Months6, p.Months12)
	}
	if p.WorstOffender == nil || p.WorstOffender.ID != "a" {
		t.Fatalf("expected worst offender a (12.00/month), got %+v", p.WorstOffender)
	}
	if len(p.Opportunities) != 0 {
		t.Errorf("expected no opportunities without schedules, got %d", len(p.Opportunities))
	}
}

func TestFindSavingsOpportunities_TopThreeByAmount(t *testing.T) {
	mk := func(id string, balance float64, days int) model.Debt {
		return model.Debt{
			ID: id, Name: id, CurrentBalance: balance, InterestRate: 0,
			ScheduledRateChanges: []model.RateChange{{EffectiveDate: in(days), Rate: 24}},
		}
	}
	debts := []model.Debt{
		mk("small", 500, 30),
		mk("big", 8000, 60),
		mk("mid", 3000, 30),
		mk("late", 9000, 400),
		mk("soon", 2000, 10),
		{ID: "switched", CurrentBalance: 5000, InterestRate: 0,
			ScheduledRateChanges: []model.RateChange{{EffectiveDate: in(-5), Rate: 24}}},
		{ID: "cut", CurrentBalance: 5000, InterestRate: 24,
			ScheduledRateChanges: []model.RateChange{{EffectiveDate: in(20), Rate: 9}}},
	}
	ops := FindSavingsOpportunities(debts, today)
	if len(ops) != MaxOpportunities {
		t.Fatalf("expected %d opportunities, got %d", MaxOpportunities, len(ops))
	}
	want := []string{"big", "mid", "soon"}
	for i, id := range want {
		if ops[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ops[i].ID)
		}
	}

	// Interest from day 60 to day 360 at 24% on 8000.
	wantAmount := 8000 * 0.24 / 12 * 12 * 300 / 360
	if math.Abs(ops[0].Amount-wantAmount) > 0.005 {
		t.Errorf("expected amount %.2f, got %.2f", wantAmount, ops[0].Amount)
	}
	if ops[0].Monthly != 160 {
		t.Errorf("expected monthly 160.00, got %.2f", ops[0].Monthly)
	}
	if ops[0].SwitchDate != in(60) {
		t.Errorf("expected switch date %s, got %s", in(60), ops[0].SwitchDate)
	}
}

func TestFindWorstOffender_UsesPendingRateInsideHorizon(t *testing.T) {
	debts := []model.Debt{
		{ID: "steady", Name: "Loan", CurrentBalance: 5000, InterestRate: 10},
		{ID: "promo", Name: "Promo Card", CurrentBalance: 3000, InterestRate: 0,
			ScheduledRateChanges: []model.RateChange{{EffectiveDate: in(15), Rate: 26}}},
	}
	w := FindWorstOffender(debts, today, 90)
	if w == nil || w.ID != "promo" {
		t.Fatalf("expected promo card as worst offender, got %+v", w)
	}
	if w.Cost != 65 || w.Rate != 26 {
		t.Errorf("expected cost 65.00 at 26%%, got %.2f at %.2f", w.Cost, w.Rate)
	}

	// With a horizon that ends before the switch, today's rate applies.
	w = FindWorstOffender(debts, today, 10)
	if w == nil || w.ID != "steady" {
		t.Fatalf("expected steady loan, got %+v", w)
	}
}

func TestFindWorstOffender_NoneAccruing(t *testing.T) {
	debts := []model.Debt{
		{ID: "zero", CurrentBalance: 1000, InterestRate: 0},
		{ID: "paid", CurrentBalance: 0, InterestRate: 20},
	}
	if w := FindWorstOffender(debts, today, 90); w != nil {
		t.Errorf("expected nil, got %+v", w)
	}
	if w := FindWorstOffender(nil, today, 90); w != nil {
		t.Errorf("expected nil for no debts, got %+v", w)
	}
}
