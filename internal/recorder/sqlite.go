package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder appends analyses to a SQLite database.
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

	// WAL lets external readers query while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			provider_symbol TEXT,
			source          TEXT,
			days            INTEGER,
			bars            INTEGER,
			last_close      REAL,
			rsi             REAL,
			trend           TEXT,
			rsi_signal      TEXT,
			macd_signal     TEXT,
			prediction      REAL,
			confidence      REAL,
			cached          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(evt *AnalysisEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	rsi := sql.NullFloat64{Float64: evt.RSI, Valid: !math.IsNaN(evt.RSI)}

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, provider_symbol, source, days, bars, last_close, rsi,
		 trend, rsi_signal, macd_signal, prediction, confidence, cached)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), evt.Symbol, evt.ProviderSymbol, evt.Source, evt.Days, evt.Bars,
		evt.LastClose, rsi, evt.Trend, evt.RSISignal, evt.MACDSignal,
		evt.Prediction, evt.Confidence, evt.Cached,
	)
	return err
}

// recent returns up to limit events, newest first.
func (r *SQLiteRecorder) recent(limit int) ([]AnalysisEvent, error) {
	rows, err := r.db.Query(`SELECT timestamp, symbol, provider_symbol, source, days, bars,
		last_close, rsi, trend, rsi_signal, macd_signal, prediction, confidence, cached
		FROM analyses ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisEvent
	for rows.Next() {
		var (
			evt AnalysisEvent
			ts  int64
			rsi sql.NullFloat64
		)
		if err := rows.Scan(&ts, &evt.Symbol, &evt.ProviderSymbol, &evt.Source, &evt.Days, &evt.Bars,
			&evt.LastClose, &rsi, &evt.Trend, &evt.RSISignal, &evt.MACDSignal,
			&evt.Prediction, &evt.Confidence, &evt.Cached); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		evt.Timestamp = time.Unix(ts, 0)
		evt.RSI = math.NaN()
		if rsi.Valid {
			evt.RSI = rsi.Float64
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
