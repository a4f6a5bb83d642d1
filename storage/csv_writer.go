package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"brand-ranking/models"
)

// CSVWriter exports ranked brand tables to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"table", "rank", "brand", "count", "count_share",
		"sales", "sales_share", "sales_volume", "sales_volume_share", "delta_count",
		"consolidated",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteSeries appends one row per stat, tagged with title. Ranks start at 1.
// A nil DeltaCount is written as an empty cell; the consolidated column marks
// the synthetic Others bucket.
func (c *CSVWriter) WriteSeries(title string, stats []models.BrandStat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range stats {
		delta := ""
		if s.DeltaCount != nil {
			delta = strconv.Itoa(*s.DeltaCount)
		}
		row := []string{
			title,
			strconv.Itoa(i + 1),
			s.Brand,
			strconv.Itoa(s.Count),
			formatFloat(s.CountShare),
			formatFloat(s.Sales),
			formatFloat(s.SalesShare),
			formatFloat(s.SalesVolume),
			formatFloat(s.SalesVolumeShare),
			delta,
			strconv.FormatBool(s.IsOthers()),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
