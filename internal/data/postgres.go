package data

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/mohamedkhairy/stock-alerts/internal/config"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresFetcher reads daily bars from a PostgreSQL (or TimescaleDB) table with
// columns symbol, timestamp, open, high, low, close, volume
type PostgresFetcher struct {
	db    *sql.DB
	query string
}

// connectionString builds a lib/pq keyword/value DSN
func connectionString(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)
}

// latestBarsQuery returns the newest-first bars query for table
func latestBarsQuery(table string) (string, error) {
	if !tableNamePattern.MatchString(table) {
		return "", fmt.Errorf("invalid bars table name %q", table)
	}
	return fmt.Sprintf(`
		SELECT timestamp, open, high, low, close, volume
		FROM %s
		WHERE symbol = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, table), nil
}

// NewPostgresFetcher opens and pings the database
func NewPostgresFetcher(cfg config.DatabaseConfig) (*PostgresFetcher, error) {
	query, err := latestBarsQuery(cfg.BarsTable)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL bar source initialized",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("database", cfg.Database),
		logger.String("table", cfg.BarsTable),
	)

	return &PostgresFetcher{db: db, query: query}, nil
}

func (p *PostgresFetcher) Name() string { return "postgres" }

// FetchSeries retrieves the latest lookback bars for symbol
func (p *PostgresFetcher) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, p.query, symbol, lookback)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest bars: %w", err)
	}
	defer rows.Close()

	var bars []models.Bar
	for rows.Next() {
		var bar models.Bar
		if err := rows.Scan(
			&bar.Timestamp,
			&bar.Open,
			&bar.High,
			&bar.Low,
			&bar.Close,
			&bar.Volume,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	// newest-first rows; NormalizeBars restores chronological order
	return NormalizeBars(symbol, bars, lookback)
}

// Close closes the database connection
func (p *PostgresFetcher) Close() error {
	return p.db.Close()
}
