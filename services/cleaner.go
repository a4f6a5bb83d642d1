package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"brand-ranking/models"
	"brand-ranking/storage"
	"brand-ranking/utils"
)

// amountRegexp captures the first numeric value, with an optional minus sign
// and decimal part, once thousands separators are gone.
var amountRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Cleaner turns raw snapshot rows into ListingRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every raw row. Rows are never dropped for bad numbers: a
// missing or unreadable amount becomes 0. Only a repeated ASIN within the same
// snapshot is skipped.
func (c *Cleaner) Clean(raw []*models.RawListing) []models.ListingRecord {
	seen := make(map[string]struct{})
	result := make([]models.ListingRecord, 0, len(raw))

	for _, r := range raw {
		if r == nil {
			continue
		}
		asin := strings.ToUpper(strings.TrimSpace(r.ASIN))
		if asin != "" {
			if _, dup := seen[asin]; dup {
				c.logger.Debug("[cleaner] Duplicate ASIN skipped: %s", asin)
				continue
			}
			seen[asin] = struct{}{}
		}

		result = append(result, models.ListingRecord{
			ASIN:         asin,
			Title:        normaliseText(r.Title),
			Brand:        NormaliseBrand(r.Brand),
			SalesRevenue: c.firstAmount(r.Sales, r.EstRevenue),
			SalesVolume:  c.firstAmount(r.SalesVolume, r.EstSales),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d records (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// CleanPair cleans both periods of a raw pair. A missing previous period stays
// nil so the aggregator reports no deltas.
func (c *Cleaner) CleanPair(raw *storage.RawPair) *models.SnapshotPair {
	pair := &models.SnapshotPair{
		CurrentPeriod:  raw.CurrentPeriod,
		PreviousPeriod: raw.PreviousPeriod,
		Current:        c.Clean(raw.Current),
	}
	if raw.Previous != nil {
		pair.Previous = c.Clean(raw.Previous)
	}
	return pair
}

// firstAmount parses the primary column and falls back to the estimate when the
// primary one is blank.
func (c *Cleaner) firstAmount(primary, fallback string) float64 {
	if !isBlank(primary) {
		return c.parseAmount(primary)
	}
	return c.parseAmount(fallback)
}

// parseAmount extracts a non-negative number from strings like "$1,299.50",
// "1.2k units" (read as 1.2) or "  42 ". Anything unreadable is 0.
func (c *Cleaner) parseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	match := amountRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		c.logger.Debug("[cleaner] Unreadable amount %q: %v", raw, err)
		return 0
	}
	return nonNegative(v)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
