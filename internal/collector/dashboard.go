package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"DebtSentinel/internal/model"
)

// DashboardSource implements Source using the debt dashboard REST API.
type DashboardSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewDashboardSource creates a new source with optional proxy support.
func NewDashboardSource(baseURL, apiKey, proxyURL string) *DashboardSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DashboardSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *DashboardSource) Name() string { return "dashboard" }

// dashboardDebt is the JSON shape returned by the dashboard. Rates and
// balances may arrive as numbers or numeric strings depending on how the
// record was last saved.
type dashboardDebt struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	CurrentBalance       json.Number     `json:"currentBalance"`
	MonthlyRepayment     json.Number     `json:"monthlyRepayment"`
	InterestRate         json.Number     `json:"interestRate"`
	DebtType             string          `json:"debtType"`
	ScheduledRateChanges []dashboardRate `json:"scheduledRateChanges"`
}

type dashboardRate struct {
	EffectiveDate string      `json:"effectiveDate"`
	Rate          json.Number `json:"rate"`
}

// FetchDebts loads GET {base}/api/v1/debts.
func (s *DashboardSource) FetchDebts(ctx context.Context) ([]model.Debt, error) {
	endpoint := s.BaseURL + "/api/v1/debts"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch debts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch debts: status %d, body: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var raw []dashboardDebt
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode debts: %w", err)
	}

	debts := make([]model.Debt, 0, len(raw))
	for _, r := range raw {
		d, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("debt %q: %w", r.ID, err)
		}
		debts = append(debts, d)
	}
	return debts, nil
}

func (r dashboardDebt) toModel() (model.Debt, error) {
	balance, err := number(r.CurrentBalance)
	if err != nil {
		return model.Debt{}, fmt.Errorf("currentBalance: %w", err)
	}
	payment, err := number(r.MonthlyRepayment)
	if err != nil {
		return model.Debt{}, fmt.Errorf("monthlyRepayment: %w", err)
	}
	rate, err := number(r.InterestRate)
	if err != nil {
		return model.Debt{}, fmt.Errorf("interestRate: %w", err)
	}

	d := model.Debt{
		ID:               r.ID,
		Name:             r.Name,
		CurrentBalance:   balance,
		MonthlyRepayment: payment,
		InterestRate:     rate,
		DebtType:         model.DebtType(r.DebtType),
	}
	for _, c := range r.ScheduledRateChanges {
		var change model.RateChange
		// Malformed dates are left zero and dropped by the rate timeline.
		_ = change.EffectiveDate.UnmarshalText([]byte(dateOnly(c.EffectiveDate)))
		if change.Rate, err = number(c.Rate); err != nil {
			return model.Debt{}, fmt.Errorf("scheduled rate: %w", err)
		}
		d.ScheduledRateChanges = append(d.ScheduledRateChanges, change)
	}
	return d, nil
}

// number treats a missing value as zero.
func number(n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Float64()
}

// dateOnly strips a time component from ISO timestamps ("2025-06-01T00:00:00Z").
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}
