package scheduler

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/robfig/cron/v3"

	"DebtSentinel/internal/budget"
	"DebtSentinel/internal/cache"
	"DebtSentinel/internal/collector"
	"DebtSentinel/internal/model"
	"DebtSentinel/internal/notifier"
	"DebtSentinel/internal/recorder"
	"DebtSentinel/internal/strategy"
)

// Sender delivers chat messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Budget    *budget.Manager
	Notifier  Sender
	Recorder  recorder.Recorder
	Cache     cache.ReportCache
	CacheTTL  time.Duration
	Location  *time.Location
	Now       func() time.Time
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Cron specs and "today" are
// evaluated in loc.
func NewScheduler(ctx context.Context, col *collector.Collector, bm *budget.Manager, tn Sender, rec recorder.Recorder, rc cache.ReportCache, ttl time.Duration, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Collector: col,
		Budget:    bm,
		Notifier:  tn,
		Recorder:  rec,
		Cache:     rc,
		CacheTTL:  ttl,
		Location:  loc,
		Now:       time.Now,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily, weekly and monthly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron, monthlyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyTask); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) today() time.Time {
	return s.Now().In(s.Location)
}

// dailyTask sends warnings that have not gone out within the retention
// window.
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily warnings task")
	debts, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(notifier.FormatTaskError("Daily warnings", err))
		return
	}

	now := s.today()
	var fresh []model.Warning
	for _, w := range strategy.GenerateWarnings(debts, now, s.Budget.HorizonDays()) {
		if s.Budget.ShouldSend(w.Key(), now) {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		log.Println("[INFO] no new warnings")
		return
	}

	if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatWarnings(fresh, civil.DateOf(now)), 3); err != nil {
		log.Printf("[ERROR] send warnings: %v", err)
		return
	}

	keys := make([]string, len(fresh))
	for i := range fresh {
		keys[i] = fresh[i].Key()
		if err := s.Recorder.RecordWarning(&fresh[i]); err != nil {
			log.Printf("[ERROR] record warning: %v", err)
		}
	}
	s.Budget.MarkSent(keys, now)
	log.Printf("[INFO] sent %d warnings", len(fresh))
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly projection task")
	report, err := s.projectionReport()
	if err != nil {
		log.Printf("[ERROR] weekly projection: %v", err)
		s.trySend(notifier.FormatTaskError("Weekly projection", err))
		return
	}
	s.trySend(report)
	s.Budget.MarkProjected(s.today())
}

func (s *Scheduler) monthlyTask() {
	log.Println("[INFO] running monthly plan task")
	report, err := s.planReport("SCHEDULED")
	if err != nil {
		log.Printf("[ERROR] monthly plan: %v", err)
		s.trySend(notifier.FormatTaskError("Monthly plan", err))
		return
	}
	s.trySend(report)
}

// planReport compares the minimum-only plan with the surplus plan. Reports
// are cached per inputs and day; a cache hit is not recorded again.
func (s *Scheduler) planReport(trigger string) (string, error) {
	debts, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		return "", err
	}
	now := s.today()
	day := civil.DateOf(now)
	surplus := s.Budget.SurplusCash()
	horizon := s.Budget.HorizonDays()

	key, err := cache.PlanKey(debts, surplus, horizon, day)
	if err != nil {
		log.Printf("[WARN] plan report not cacheable: %v", err)
	} else if report, ok := s.Cache.Get(s.Ctx, key); ok {
		log.Printf("[INFO] plan report served from cache")
		return report, nil
	}

	cmp := strategy.ComparePlans(debts, surplus, horizon, now)
	report := notifier.FormatPlanReport(&cmp, day)

	if _, err := s.Recorder.RecordPlan(&recorder.PlanRun{Comparison: &cmp, Trigger: trigger}); err != nil {
		log.Printf("[ERROR] record plan: %v", err)
	}
	if key != "" {
		if err := s.Cache.Set(s.Ctx, key, report, s.CacheTTL); err != nil {
			log.Printf("[WARN] cache plan report: %v", err)
		}
	}
	s.Budget.MarkPlanned(now)
	return report, nil
}

func (s *Scheduler) projectionReport() (string, error) {
	debts, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		return "", err
	}
	now := s.today()
	p := strategy.BuildInterestProjection(debts, now, s.Budget.HorizonDays())
	if err := s.Recorder.RecordProjection(&recorder.ProjectionRun{Projection: &p, DebtCount: len(debts)}); err != nil {
		log.Printf("[ERROR] record projection: %v", err)
	}
	return notifier.FormatProjection(&p, civil.DateOf(now)), nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// Group chats address commands as /plan@BotName.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/plan":
		report, err := s.planReport("COMMAND")
		if err != nil {
			return notifier.FormatTaskError("Plan", err)
		}
		return report
	case "/projection":
		report, err := s.projectionReport()
		if err != nil {
			return notifier.FormatTaskError("Projection", err)
		}
		return report
	case "/warnings":
		debts, err := s.Collector.Collect(s.Ctx)
		if err != nil {
			return notifier.FormatTaskError("Warnings", err)
		}
		now := s.today()
		return notifier.FormatWarnings(strategy.GenerateWarnings(debts, now, s.Budget.HorizonDays()), civil.DateOf(now))
	case "/debts":
		debts, err := s.Collector.Collect(s.Ctx)
		if err != nil {
			return notifier.FormatTaskError("Debts", err)
		}
		return notifier.FormatDebtList(debts, s.today())
	case "/surplus":
		if len(fields) < 2 {
			return fmt.Sprintf("Current surplus: %s\nUsage: /surplus 250", model.Money(s.Budget.SurplusCash()))
		}
		amount, err := parseAmount(fields[1])
		if err != nil {
			return fmt.Sprintf("❌ %q is not an amount", fields[1])
		}
		if err := s.Budget.SetSurplus(amount); err != nil {
			return notifier.FormatTaskError("Surplus update", err)
		}
		return notifier.FormatSurplusUpdated(amount)
	default:
		return notifier.HelpText
	}
}

// parseAmount accepts "250", "$1,250.50" and similar.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite amount: %s", s)
	}
	return v, nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
