package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteHistoryStorage implements HistoryStorage on a local SQLite file
type SQLiteHistoryStorage struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteHistoryStorage opens (or creates) the database at path and runs migrations
func NewSQLiteHistoryStorage(path string) (*SQLiteHistoryStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// one writer; WAL lets the API read while a watch run writes
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLiteHistoryStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	logger.Info("Alert history storage opened", logger.String("path", path))
	return s, nil
}

func (s *SQLiteHistoryStorage) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alert_history (
			id          TEXT PRIMARY KEY,
			scan_id     TEXT,
			symbol      TEXT NOT NULL,
			expression  TEXT NOT NULL,
			explanation TEXT,
			price       REAL,
			timestamp   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_symbol_ts ON alert_history(symbol, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_scan ON alert_history(scan_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecords inserts records in one transaction. Invalid records are skipped.
func (s *SQLiteHistoryStorage) WriteRecords(ctx context.Context, records []*models.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alert_history (id, scan_id, symbol, expression, explanation, price, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			logger.Warn("Skipping invalid history record",
				logger.String("symbol", rec.Symbol),
				logger.ErrorField(err),
			)
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID,
			rec.ScanID,
			rec.Symbol,
			rec.Expression,
			rec.Explanation,
			rec.Price,
			rec.Timestamp.UnixMilli(),
		); err != nil {
			logger.HistoryWritesTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to insert history record %s: %w", rec.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		logger.HistoryWritesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to commit history records: %w", err)
	}

	logger.HistoryWritesTotal.WithLabelValues("success").Add(float64(written))
	return nil
}

// GetRecords retrieves records matching filter, newest first
func (s *SQLiteHistoryStorage) GetRecords(ctx context.Context, filter HistoryFilter) ([]*models.HistoryRecord, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Symbol != "" {
		where = append(where, "symbol = ?")
		args = append(args, filter.Symbol)
	}
	if filter.ScanID != "" {
		where = append(where, "scan_id = ?")
		args = append(args, filter.ScanID)
	}
	if !filter.StartTime.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, filter.StartTime.UnixMilli())
	}
	if !filter.EndTime.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, filter.EndTime.UnixMilli())
	}

	query := `SELECT id, scan_id, symbol, expression, explanation, price, timestamp FROM alert_history`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []*models.HistoryRecord
	for rows.Next() {
		var (
			rec         models.HistoryRecord
			scanID      sql.NullString
			explanation sql.NullString
			price       sql.NullFloat64
			ts          int64
		)
		if err := rows.Scan(&rec.ID, &scanID, &rec.Symbol, &rec.Expression, &explanation, &price, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		rec.ScanID = scanID.String
		rec.Explanation = explanation.String
		rec.Price = price.Float64
		rec.Timestamp = time.UnixMilli(ts).UTC()
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (s *SQLiteHistoryStorage) Close() error {
	return s.db.Close()
}
