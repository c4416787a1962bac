package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block scheduled writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT,
			params           TEXT,
			start_date       TEXT,
			end_date         TEXT,
			trading_days     INTEGER,
			trade_count      INTEGER,
			final_equity     REAL,
			total_return     REAL,
			max_drawdown     REAL,
			ruin_probability REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT,
			latest_value REAL,
			advice       TEXT,
			message      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reco_ts ON recommendations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	params, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO runs
		(run_id, timestamp, symbol, params, start_date, end_date,
		 trading_days, trade_count, final_equity, total_return, max_drawdown, ruin_probability)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.RunID, time.Now().Unix(), rec.Symbol, string(params),
		rec.StartDate.Format("2006-01-02"), rec.EndDate.Format("2006-01-02"),
		rec.TradingDays, rec.TradeCount,
		rec.FinalEquity, rec.TotalReturn, rec.MaxDrawdown, rec.RuinProbability,
	)
	return err
}

func (r *SQLiteRecorder) RecordRecommendation(rec *RecommendationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO recommendations
		(timestamp, symbol, latest_value, advice, message)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.LatestValue, rec.Advice, rec.Message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
