package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DebtSentinel/internal/budget"
	"DebtSentinel/internal/cache"
	"DebtSentinel/internal/collector"
	"DebtSentinel/internal/model"
	"DebtSentinel/internal/notifier"
	"DebtSentinel/internal/recorder"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type stubSender struct {
	mu   sync.Mutex
	msgs []string
	err  error
}

func (s *stubSender) SendWithRetry(_ context.Context, text string, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, text)
	return nil
}

type countingRecorder struct {
	recorder.NoopRecorder
	plans, projections, warnings int
}

func (r *countingRecorder) RecordPlan(_ *recorder.PlanRun) (string, error) {
	r.plans++
	return "run", nil
}

func (r *countingRecorder) RecordProjection(_ *recorder.ProjectionRun) error {
	r.projections++
	return nil
}

func (r *countingRecorder) RecordWarning(_ *model.Warning) error {
	r.warnings++
	return nil
}

func sampleDebts() []model.Debt {
	day := civil.DateOf(now)
	return []model.Debt{
		{ID: "promo", Name: "Promo Card", DebtType: model.DebtTypeCreditCard, CurrentBalance: 3000, MonthlyRepayment: 90,
			ScheduledRateChanges: []model.RateChange{{EffectiveDate: day.AddDays(10), Rate: 24}}},
		{ID: "loan", Name: "Car Loan", CurrentBalance: 2000, InterestRate: 8, MonthlyRepayment: 80},
	}
}

type fixture struct {
	sched  *Scheduler
	sender *stubSender
	rec    *countingRecorder
	source *collector.MockSource
	budget *budget.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bm, err := budget.NewManager(filepath.Join(t.TempDir(), "state.json"), 300, 90)
	require.NoError(t, err)

	f := &fixture{
		sender: &stubSender{},
		rec:    &countingRecorder{},
		source: &collector.MockSource{Debts: sampleDebts()},
		budget: bm,
	}
	f.sched = NewScheduler(context.Background(), collector.NewCollector(f.source), bm, f.sender, f.rec,
		cache.NewMemoryCache(), time.Hour, time.UTC)
	f.sched.Now = func() time.Time { return now }
	return f
}

func TestDailyTask_DedupesWarnings(t *testing.T) {
	f := newFixture(t)

	f.sched.RunDailyNow()
	require.Len(t, f.sender.msgs, 1)
	assert.Contains(t, f.sender.msgs[0], "Promo Card")
	assert.Equal(t, 1, f.rec.warnings)

	f.sched.RunDailyNow()
	assert.Len(t, f.sender.msgs, 1, "same warnings are not sent twice")
	assert.Equal(t, 1, f.rec.warnings)
}

func TestDailyTask_SendFailureKeepsWarningsPending(t *testing.T) {
	f := newFixture(t)
	f.sender.err = errors.New("offline")
	f.sched.RunDailyNow()
	assert.Empty(t, f.budget.GetState().SentWarnings)

	f.sender.err = nil
	f.sched.RunDailyNow()
	assert.Len(t, f.sender.msgs, 1)
}

func TestDailyTask_CollectError(t *testing.T) {
	f := newFixture(t)
	f.source.Err = errors.New("dashboard down")
	f.sched.RunDailyNow()
	require.Len(t, f.sender.msgs, 1)
	assert.Contains(t, f.sender.msgs[0], "dashboard down")
}

func TestWeeklyAndMonthlyTasks(t *testing.T) {
	f := newFixture(t)

	f.sched.weeklyTask()
	require.Len(t, f.sender.msgs, 1)
	assert.Contains(t, f.sender.msgs[0], "Interest outlook")
	assert.Equal(t, 1, f.rec.projections)
	assert.True(t, f.budget.GetState().LastProjectedAt.Equal(now))

	f.sched.monthlyTask()
	require.Len(t, f.sender.msgs, 2)
	assert.Contains(t, f.sender.msgs[1], "Payoff plan")
	assert.Equal(t, 1, f.rec.plans)
	assert.True(t, f.budget.GetState().LastPlanAt.Equal(now))
}

func TestHandleCommand_PlanIsCached(t *testing.T) {
	f := newFixture(t)

	first := f.sched.HandleCommand("/plan")
	assert.Contains(t, first, "Payoff plan")
	assert.Contains(t, first, "1st Promo Card")
	assert.Equal(t, 1, f.rec.plans)

	assert.Equal(t, first, f.sched.HandleCommand("/plan@DebtSentinelBot"))
	assert.Equal(t, 1, f.rec.plans, "cache hit is not recorded again")

	// A new surplus changes the key.
	f.sched.HandleCommand("/surplus 500")
	second := f.sched.HandleCommand("/plan")
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, f.rec.plans)
}

func TestHandleCommand(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		command string
		want    string
	}{
		{"/projection", "Interest outlook"},
		{"/warnings", "Debt alerts"},
		{"/debts", "Car Loan"},
		{"/surplus", "Current surplus: $300.00"},
		{"/surplus abc", "is not an amount"},
		{"/surplus -5", "failed"},
		{"/surplus $1,250.50", "$1,250.50"},
		{"hello", "DebtSentinel commands"},
		{"   ", "DebtSentinel commands"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := f.sched.HandleCommand(tt.command)
			assert.True(t, strings.Contains(got, tt.want), "reply %q should contain %q", got, tt.want)
		})
	}
	assert.Equal(t, 1250.50, f.budget.SurplusCash())
}

func TestHandleCommand_CollectError(t *testing.T) {
	f := newFixture(t)
	f.source.Err = errors.New("bad file")
	for _, cmd := range []string{"/plan", "/projection", "/warnings", "/debts"} {
		assert.Contains(t, f.sched.HandleCommand(cmd), "bad file", cmd)
	}
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("$2,000")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, v)

	for _, bad := range []string{"NaN", "Inf", "ten"} {
		_, err := parseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sched.RegisterAll("0 0 8 * * *", "0 0 9 * * 1", "0 0 9 1 * *"))
	assert.Len(t, f.sched.Cron.Entries(), 3)
	assert.Error(t, f.sched.RegisterAll("bad", "0 0 9 * * 1", "0 0 9 1 * *"))
}

func TestHelpTextIsHTMLSafe(t *testing.T) {
	assert.NotContains(t, notifier.HelpText, "<amount>")
}
