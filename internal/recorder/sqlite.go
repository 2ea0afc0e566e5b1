package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"DebtSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plan_runs (
			id                   TEXT PRIMARY KEY,
			timestamp            INTEGER NOT NULL,
			trigger_type         TEXT,
			surplus_cash         REAL,
			debt_count           INTEGER,
			total_balance        REAL,
			baseline_interest    REAL,
			optimized_interest   REAL,
			baseline_months      INTEGER,
			optimized_months     INTEGER,
			interest_saved       REAL,
			months_saved         INTEGER,
			never_pays_off       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plan_ts ON plan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS plan_allocations (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL REFERENCES plan_runs(id),
			debt_id            TEXT,
			debt_name          TEXT,
			rank               INTEGER,
			balance            REAL,
			current_rate       REAL,
			priority_score     REAL,
			rate_score         REAL,
			time_score         REAL,
			jump_score         REAL,
			type_bonus         REAL,
			min_pay            REAL,
			extra_pay          REAL,
			months_to_payoff   INTEGER,
			projected_interest REAL,
			interest_saved     REAL,
			time_saved         INTEGER,
			breaks_debt_cycle  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alloc_run ON plan_allocations(run_id)`,

		`CREATE TABLE IF NOT EXISTS projections (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			debt_count     INTEGER,
			months3        REAL,
			months6        REAL,
			months12       REAL,
			opportunities  INTEGER,
			worst_id       TEXT,
			worst_cost     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projection_ts ON projections(timestamp)`,

		`CREATE TABLE IF NOT EXISTS warnings (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			warning_key TEXT,
			type        TEXT,
			severity    TEXT,
			debt_id     TEXT,
			debt_name   TEXT,
			message     TEXT,
			timeframe   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_warning_ts ON warnings(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// finite maps the never-pays-off sentinel to NULL.
func finite(v float64) sql.NullFloat64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// RecordPlan stores the comparison header and one row per optimized
// allocation in a single transaction. Returns the generated run id.
func (r *SQLiteRecorder) RecordPlan(run *PlanRun) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmp := run.Comparison
	id := uuid.NewString()

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO plan_runs
		(id, timestamp, trigger_type, surplus_cash, debt_count, total_balance,
		 baseline_interest, optimized_interest, baseline_months, optimized_months,
		 interest_saved, months_saved, never_pays_off)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, r.now().Unix(), run.Trigger, cmp.SurplusCash,
		cmp.OptimizedSum.DebtCount, cmp.OptimizedSum.TotalBalance,
		finite(cmp.BaselineSum.TotalInterest), finite(cmp.OptimizedSum.TotalInterest),
		cmp.BaselineSum.MonthsToDebtFree, cmp.OptimizedSum.MonthsToDebtFree,
		cmp.InterestSaved, cmp.MonthsSaved, boolInt(cmp.OptimizedSum.NeverPaysOff),
	)
	if err != nil {
		return "", fmt.Errorf("insert plan run: %w", err)
	}

	for _, a := range cmp.Optimized {
		_, err = tx.Exec(`INSERT INTO plan_allocations
			(run_id, debt_id, debt_name, rank, balance, current_rate,
			 priority_score, rate_score, time_score, jump_score, type_bonus,
			 min_pay, extra_pay, months_to_payoff, projected_interest,
			 interest_saved, time_saved, breaks_debt_cycle)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			id, a.ID, a.Name, a.Rank, a.Balance, a.CurrentRate,
			a.Score.PriorityScore, a.Score.Components.RateScore, a.Score.Components.TimeScore,
			a.Score.Components.JumpScore, a.Score.Components.TypeBonus,
			a.MinPay, a.ExtraPay, a.MonthsToPayoff, finite(a.ProjectedInterest),
			a.Impact.InterestSaved, a.Impact.TimeSaved, boolInt(a.Impact.BreaksDebtCycle),
		)
		if err != nil {
			return "", fmt.Errorf("insert allocation %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *SQLiteRecorder) RecordProjection(run *ProjectionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := run.Projection
	var worstID sql.NullString
	var worstCost sql.NullFloat64
	if p.WorstOffender != nil {
		worstID = sql.NullString{String: p.WorstOffender.ID, Valid: true}
		worstCost = finite(p.WorstOffender.Cost)
	}

	_, err := r.db.Exec(`INSERT INTO projections
		(timestamp, debt_count, months3, months6, months12, opportunities, worst_id, worst_cost)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.now().Unix(), run.DebtCount, p.Months3, p.Months6, p.Months12,
		len(p.Opportunities), worstID, worstCost,
	)
	return err
}

func (r *SQLiteRecorder) RecordWarning(w *model.Warning) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO warnings
		(timestamp, warning_key, type, severity, debt_id, debt_name, message, timeframe)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.now().Unix(), w.Key(), string(w.Type), string(w.Severity),
		w.DebtID, w.DebtName, w.Message, w.Timeframe,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
