package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DebtSentinel/internal/budget"
	"DebtSentinel/internal/cache"
	"DebtSentinel/internal/collector"
	"DebtSentinel/internal/config"
	"DebtSentinel/internal/notifier"
	"DebtSentinel/internal/recorder"
	"DebtSentinel/internal/scheduler"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DebtSentinel starting...")

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("[FATAL] load config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] invalid config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	// Cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := newSource(cfg)
	log.Printf("[INFO] debt source: %s", src.Name())

	plan, err := budget.NewManager(cfg.State.StateFile, cfg.Planning.SurplusCash, cfg.Planning.HorizonDays)
	if err != nil {
		log.Fatalf("[FATAL] load plan state %s: %v", cfg.State.StateFile, err)
	}

	rec := openRecorder(cfg.Database.SQLitePath)
	defer rec.Close()

	reports, closeCache := openCache(ctx, cfg.Cache.RedisAddr)
	defer closeCache()

	bot := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, collector.NewCollector(src), plan, bot, rec, reports, cfg.Cache.TTL, loc)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron, cfg.Schedule.MonthlyCron); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go bot.StartPolling(ctx, sched.HandleCommand)

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending warnings now")
		go sched.RunDailyNow()
	}

	log.Printf("[INFO] DebtSentinel is running (surplus %.2f, horizon %d days, timezone %s)",
		plan.SurplusCash(), plan.HorizonDays(), loc)
	<-ctx.Done()
	log.Println("[INFO] shutting down")
}

// newSource prefers the dashboard API over the local debts file.
func newSource(cfg *config.Config) collector.Source {
	if cfg.Source.BaseURL != "" {
		return collector.NewDashboardSource(cfg.Source.BaseURL, cfg.Source.APIKey, cfg.Proxy)
	}
	return collector.NewFileSource(cfg.Source.DebtsFile)
}

// openRecorder falls back to the no-op recorder when SQLite is unavailable.
func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Printf("[WARN] open history db %s: %v; history disabled", path, err)
		return recorder.NewNoopRecorder()
	}
	log.Printf("[INFO] history db: %s", path)
	return rec
}

func openCache(ctx context.Context, redisAddr string) (cache.ReportCache, func()) {
	if redisAddr == "" {
		return cache.NewMemoryCache(), func() {}
	}
	rc, err := cache.NewRedisCache(ctx, redisAddr)
	if err != nil {
		log.Printf("[WARN] redis %s unavailable, caching in memory: %v", redisAddr, err)
		return cache.NewMemoryCache(), func() {}
	}
	log.Printf("[INFO] report cache: redis %s", redisAddr)
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Printf("[WARN] close redis: %v", err)
		}
	}
}
