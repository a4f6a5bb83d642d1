package storage

import (
	"context"

	"brand-ranking/models"
)

// SnapshotSource is any backend that can list snapshot periods and return the
// raw rows of one of them.
type SnapshotSource interface {
	// Periods returns the available snapshot periods, newest first.
	Periods(ctx context.Context) ([]string, error)
	// Fetch returns the raw rows of one period.
	Fetch(ctx context.Context, period string) ([]*models.RawListing, error)
	Close() error
}

// PeriodLocator is implemented by sources that can find a named period and
// the one right before it without listing every period.
type PeriodLocator interface {
	Locate(ctx context.Context, period string) (current, previous string, err error)
}

// SeriesWriter is the interface for exporting a ranked brand series.
type SeriesWriter interface {
	WriteSeries(title string, stats []models.BrandStat) error
	Close() error
}
