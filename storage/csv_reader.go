package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"brand-ranking/models"
)

// headerAliases maps every accepted column header to a RawListing field.
var headerAliases = map[string]string{
	"asin":         "asin",
	"title":        "title",
	"brand":        "brand",
	"sales":        "sales",
	"revenue":      "sales",
	"est_revenue":  "est_revenue",
	"estrevenue":   "est_revenue",
	"sales_volume": "sales_volume",
	"salesvolume":  "sales_volume",
	"volume":       "sales_volume",
	"est_sales":    "est_sales",
	"estsales":     "est_sales",
}

// CSVSource reads snapshots from a directory holding one <period>.csv file per period.
type CSVSource struct {
	dir string
}

// NewCSVSource returns a source over dir. The directory must exist.
func NewCSVSource(dir string) (*CSVSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("csv: open snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("csv: %q is not a directory", dir)
	}
	return &CSVSource{dir: dir}, nil
}

// Periods lists the file stems, newest first. Period names are compared as
// strings, so ISO dates sort correctly.
func (s *CSVSource) Periods(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("csv: list snapshots: %w", err)
	}

	var periods []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		periods = append(periods, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods, nil
}

// Fetch reads <period>.csv. The header row decides which columns are read;
// unknown columns are ignored and missing ones stay empty.
func (s *CSVSource) Fetch(ctx context.Context, period string) ([]*models.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, period+".csv")
	f, err := os.Open(path) //nolint:gosec // path built from a listed period
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	listings, err := ReadListings(f, period)
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	return listings, nil
}

// Close is a no-op; files are closed after every Fetch.
func (s *CSVSource) Close() error { return nil }

// ReadListings parses CSV rows with a header line into RawListings tagged with period.
func ReadListings(r io.Reader, period string) ([]*models.RawListing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []*models.RawListing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := headerAliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	if _, ok := columns["brand"]; !ok {
		return nil, errors.New("header has no brand column")
	}

	listings := make([]*models.RawListing, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cell := func(field string) string {
			i, ok := columns[field]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		listings = append(listings, &models.RawListing{
			ASIN:        cell("asin"),
			Title:       cell("title"),
			Brand:       cell("brand"),
			Sales:       cell("sales"),
			EstRevenue:  cell("est_revenue"),
			SalesVolume: cell("sales_volume"),
			EstSales:    cell("est_sales"),
			Period:      period,
		})
	}
	return listings, nil
}
