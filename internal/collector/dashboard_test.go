package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSource_FetchDebts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/debts", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","name":"Amex","currentBalance":"2500.00","monthlyRepayment":75,"interestRate":"0",
			 "debtType":"Credit Card",
			 "scheduledRateChanges":[{"effectiveDate":"2025-09-01T00:00:00.000Z","rate":"23.99"},
			                         {"effectiveDate":"not-a-date","rate":5}]},
			{"id":"2","name":"Loan","currentBalance":8000,"monthlyRepayment":250,"interestRate":9.9}
		]`))
	}))
	defer srv.Close()

	debts, err := NewDashboardSource(srv.URL+"/", "secret", "").FetchDebts(context.Background())
	require.NoError(t, err)
	require.Len(t, debts, 2)

	amex := debts[0]
	assert.InDelta(t, 2500, amex.CurrentBalance, 1e-9)
	assert.InDelta(t, 75, amex.MonthlyRepayment, 1e-9)
	require.Len(t, amex.ScheduledRateChanges, 2)
	assert.Equal(t, civil.Date{Year: 2025, Month: 9, Day: 1}, amex.ScheduledRateChanges[0].EffectiveDate)
	assert.InDelta(t, 23.99, amex.ScheduledRateChanges[0].Rate, 1e-9)
	assert.False(t, amex.ScheduledRateChanges[1].EffectiveDate.IsValid())

	assert.InDelta(t, 9.9, debts[1].InterestRate, 1e-9)
}

func TestDashboardSource_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewDashboardSource(srv.URL, "", "").FetchDebts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestDashboardSource_BadNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"x","name":"X","currentBalance":"abc"}]`))
	}))
	defer srv.Close()

	_, err := NewDashboardSource(srv.URL, "", "").FetchDebts(context.Background())
	assert.Error(t, err)
}
