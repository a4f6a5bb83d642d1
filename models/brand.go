package models

import "fmt"

const (
	// UnknownBrand replaces a missing or blank brand.
	UnknownBrand = "Unknown"
	// OthersBrand labels the synthetic bucket of consolidated long-tail brands.
	// A real brand may carry the same name; Synthetic tells them apart.
	OthersBrand = "Others"
)

// BrandStat is the per-brand aggregate for one snapshot. Shares are percentages.
// DeltaCount is nil when no previous snapshot was supplied. Synthetic is set
// only on the consolidated Others bucket.
type BrandStat struct {
	Brand            string
	Count            int
	CountShare       float64
	Sales            float64
	SalesShare       float64
	SalesVolume      float64
	SalesVolumeShare float64
	DeltaCount       *int
	Synthetic        bool
}

// IsOthers reports whether the stat is the synthetic Others bucket. A data
// brand that happens to be named "Others" is not.
func (s BrandStat) IsOthers() bool {
	return s.Synthetic
}

// Totals are the grand totals a share is measured against.
type Totals struct {
	Count  int
	Sales  float64
	Volume float64
}

// TotalsOf sums count, sales and volume over stats.
func TotalsOf(stats []BrandStat) Totals {
	var t Totals
	for _, s := range stats {
		t.Count += s.Count
		t.Sales += s.Sales
		t.Volume += s.SalesVolume
	}
	return t
}

// SortKey selects the metric brands are ranked by.
type SortKey string

const (
	SortByCount       SortKey = "count"
	SortBySales       SortKey = "sales"
	SortBySalesVolume SortKey = "salesVolume"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByCount, SortBySales, SortBySalesVolume:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want count, sales or salesVolume)", s)
	}
}

// Value returns the metric of s selected by k. Unknown keys yield 0.
func (k SortKey) Value(s BrandStat) float64 {
	switch k {
	case SortByCount:
		return float64(s.Count)
	case SortBySales:
		return s.Sales
	case SortBySalesVolume:
		return s.SalesVolume
	default:
		return 0
	}
}

// Share returns the percentage of s matching k. Unknown keys yield 0.
func (k SortKey) Share(s BrandStat) float64 {
	switch k {
	case SortByCount:
		return s.CountShare
	case SortBySales:
		return s.SalesShare
	case SortBySalesVolume:
		return s.SalesVolumeShare
	default:
		return 0
	}
}

// ValueKey selects the metric a share chart is sliced by. Listing count is not
// a share metric.
type ValueKey string

const (
	ValueBySales       ValueKey = "sales"
	ValueBySalesVolume ValueKey = "salesVolume"
)

// SortKey returns the ranking key for the same metric.
func (k ValueKey) SortKey() SortKey {
	return SortKey(k)
}

// Value returns the metric of s selected by k. Unknown keys yield 0.
func (k ValueKey) Value(s BrandStat) float64 {
	switch k {
	case ValueBySales:
		return s.Sales
	case ValueBySalesVolume:
		return s.SalesVolume
	default:
		return 0
	}
}

// ShareEntry is one slice of a share chart, ready for a renderer.
type ShareEntry struct {
	Name     string
	Value    float64
	IsOthers bool
	Color    string
}

// BrandSet is a set of brand names, used for pinned brands.
type BrandSet map[string]struct{}

// NewBrandSet builds a set from names.
func NewBrandSet(names ...string) BrandSet {
	set := make(BrandSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set has no members.
func (s BrandSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Summary is the headline figure block for the pinned brands.
type Summary struct {
	Brands       []string
	Slots        int
	SlotShare    float64
	SalesVolume  float64
	Sales        float64
	TotalListing int
}

// Dashboard bundles every table and chart series derived from one snapshot pair.
type Dashboard struct {
	CurrentPeriod  string
	PreviousPeriod string
	Totals         Totals
	Stats          []BrandStat
	RankedBy       SortKey
	Positions      []BrandStat
	ByVolume       []BrandStat
	ByRevenue      []BrandStat
	RevenueShare   []ShareEntry
	VolumeShare    []ShareEntry
	Summary        Summary
}
