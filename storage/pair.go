package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"brand-ranking/models"
)

// ErrNoSnapshots is returned when a source has no periods at all.
var ErrNoSnapshots = errors.New("no snapshots available")

// RawPair is the raw rows of a period and of the period right before it.
// Previous is nil when the current period is the oldest one, or when the
// previous period could not be fetched; PreviousErr then carries the cause.
type RawPair struct {
	CurrentPeriod  string
	PreviousPeriod string
	Current        []*models.RawListing
	Previous       []*models.RawListing
	PreviousErr    error
}

// LoadPair fetches period (or the newest period when empty) together with the
// next older period, in parallel. A failed current fetch is an error. A failed
// previous fetch is not: the pair comes back without a previous period so
// deltas show as unavailable.
func LoadPair(ctx context.Context, src SnapshotSource, period string) (*RawPair, error) {
	current, previous, err := locatePeriods(ctx, src, period)
	if err != nil {
		return nil, err
	}

	pair := &RawPair{CurrentPeriod: current, PreviousPeriod: previous}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := src.Fetch(gctx, current)
		if err != nil {
			return err
		}
		pair.Current = rows
		return nil
	})
	if previous != "" {
		g.Go(func() error {
			rows, err := src.Fetch(gctx, previous)
			if err != nil {
				pair.PreviousErr = fmt.Errorf("fetch previous period %s: %w", previous, err)
				return nil
			}
			if rows == nil {
				rows = []*models.RawListing{}
			}
			pair.Previous = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if pair.PreviousErr != nil {
		pair.PreviousPeriod = ""
	}
	return pair, nil
}

// locatePeriods asks a PeriodLocator directly when a period is named, and
// otherwise resolves it from the source's period list.
func locatePeriods(ctx context.Context, src SnapshotSource, period string) (current, previous string, err error) {
	if loc, ok := src.(PeriodLocator); ok && period != "" {
		return loc.Locate(ctx, period)
	}
	periods, err := src.Periods(ctx)
	if err != nil {
		return "", "", err
	}
	return resolvePeriods(periods, period)
}

// resolvePeriods picks the current period and its predecessor from a
// newest-first list.
func resolvePeriods(periods []string, want string) (current, previous string, err error) {
	if len(periods) == 0 {
		return "", "", ErrNoSnapshots
	}
	idx := 0
	if want != "" {
		idx = -1
		for i, p := range periods {
			if p == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", "", fmt.Errorf("snapshot %q not found", want)
		}
	}
	current = periods[idx]
	if idx+1 < len(periods) {
		previous = periods[idx+1]
	}
	return current, previous, nil
}
