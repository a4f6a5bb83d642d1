package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"brand-ranking/models"
	"brand-ranking/utils"
)

const (
	periodLayout = "2006-01-02"
	// periodListLimit caps Periods. Named dates go through Locate and are not
	// bound by it.
	periodListLimit = 60
)

// PostgresSource reads best-seller snapshots for one marketplace site from the
// dim_bsr_item table. Each distinct createtime date is one period.
type PostgresSource struct {
	db    *sql.DB
	site  string
	limit int
}

// NewPostgresSource opens a connection, waits for the server with retry, and
// returns a source scoped to site.
func NewPostgresSource(ctx context.Context, dsn, site string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func(ctx context.Context) error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &PostgresSource{db: db, site: site, limit: periodListLimit}, nil
}

// Periods returns the most recent snapshot dates, newest first.
func (ps *PostgresSource) Periods(ctx context.Context) ([]string, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT DISTINCT createtime::date AS period
		FROM dim_bsr_item
		WHERE site = $1
		  AND createtime IS NOT NULL
		ORDER BY period DESC
		LIMIT $2
	`, ps.site, ps.limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list periods: %w", err)
	}
	return scanPeriods(rows)
}

// Locate looks up period and the newest date before it, however far back
// period lies.
func (ps *PostgresSource) Locate(ctx context.Context, period string) (current, previous string, err error) {
	day, err := time.Parse(periodLayout, period)
	if err != nil {
		return "", "", fmt.Errorf("postgres: bad period %q: %w", period, err)
	}

	rows, err := ps.db.QueryContext(ctx, `
		SELECT DISTINCT createtime::date AS period
		FROM dim_bsr_item
		WHERE site = $1
		  AND createtime IS NOT NULL
		  AND createtime::date <= $2
		ORDER BY period DESC
		LIMIT 2
	`, ps.site, day)
	if err != nil {
		return "", "", fmt.Errorf("postgres: locate %s: %w", period, err)
	}
	periods, err := scanPeriods(rows)
	if err != nil {
		return "", "", err
	}
	if len(periods) == 0 {
		return "", "", fmt.Errorf("snapshot %q not found", period)
	}
	return resolvePeriods(periods, day.Format(periodLayout))
}

func scanPeriods(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("postgres: scan period: %w", err)
		}
		periods = append(periods, d.Format(periodLayout))
	}
	return periods, rows.Err()
}

// Fetch returns every listing captured on the given date, in BSR rank order.
// NULL columns come back as empty strings for the cleaner to default.
func (ps *PostgresSource) Fetch(ctx context.Context, period string) ([]*models.RawListing, error) {
	day, err := time.Parse(periodLayout, period)
	if err != nil {
		return nil, fmt.Errorf("postgres: bad period %q: %w", period, err)
	}

	rows, err := ps.db.QueryContext(ctx, `
		SELECT asin, title, brand, sales, sales_volume
		FROM dim_bsr_item
		WHERE site = $1
		  AND createtime::date = $2
		ORDER BY bsr_rank ASC, asin ASC
	`, ps.site, day)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %s: %w", period, err)
	}
	defer rows.Close()

	listings := make([]*models.RawListing, 0)
	for rows.Next() {
		var asin, title, brand, sales, volume sql.NullString
		if err := rows.Scan(&asin, &title, &brand, &sales, &volume); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, &models.RawListing{
			ASIN:        asin.String,
			Title:       title.String,
			Brand:       brand.String,
			Sales:       sales.String,
			SalesVolume: volume.String,
			Period:      period,
		})
	}
	return listings, rows.Err()
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
