package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketOracle/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists forecast history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecast_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL UNIQUE,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT,
			start_price      REAL,
			mean_return      REAL,
			volatility       REAL,
			horizon_days     INTEGER,
			path_count       INTEGER,
			expected_price   REAL,
			lower_bound      REAL,
			upper_bound      REAL,
			lower_percentile REAL,
			upper_percentile REAL,
			target_date      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON forecast_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS histogram_bins (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			bin_index   INTEGER NOT NULL,
			lower_bound REAL,
			upper_bound REAL,
			count       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bins_run ON histogram_bins(run_id)`,

		`CREATE TABLE IF NOT EXISTS forecast_outcomes (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT,
			realized_price REAL,
			expected_price REAL,
			lower_bound    REAL,
			upper_bound    REAL,
			error_pct      REAL,
			verdict        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_ts ON forecast_outcomes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordForecast stores the run and its histogram bins in one transaction.
func (r *SQLiteRecorder) RecordForecast(report *model.ForecastReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO forecast_runs
		(run_id, timestamp, symbol, start_price, mean_return, volatility,
		 horizon_days, path_count,
		 expected_price, lower_bound, upper_bound, lower_percentile, upper_percentile,
		 target_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		report.RunID, report.GeneratedAt.Unix(), report.Symbol, report.StartPrice,
		report.Model.MeanReturn, report.Model.Volatility,
		report.Params.HorizonDays, report.Params.PathCount,
		report.Summary.ExpectedPrice, report.Summary.LowerBound, report.Summary.UpperBound,
		report.Summary.LowerPercentile, report.Summary.UpperPercentile,
		report.TargetDate.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, b := range report.Bins {
		if _, err := tx.Exec(`INSERT INTO histogram_bins
			(run_id, bin_index, lower_bound, upper_bound, count)
			VALUES (?,?,?,?,?)`,
			report.RunID, i, b.LowerBound, b.UpperBound, b.Count,
		); err != nil {
			return fmt.Errorf("insert bin %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) RecordOutcome(outcome *model.ForecastOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO forecast_outcomes
		(run_id, timestamp, symbol, realized_price, expected_price,
		 lower_bound, upper_bound, error_pct, verdict)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		outcome.RunID, time.Now().Unix(), outcome.Symbol,
		outcome.RealizedPrice, outcome.ExpectedPrice,
		outcome.LowerBound, outcome.UpperBound,
		outcome.ErrorPct, string(outcome.Verdict),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
