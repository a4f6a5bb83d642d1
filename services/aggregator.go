package services

import (
	"math"
	"strings"

	"brand-ranking/models"
)

type brandTally struct {
	count  int
	sales  float64
	volume float64
}

// Aggregate reduces the current snapshot to one BrandStat per brand.
//
// previous == nil means there is no prior snapshot and every DeltaCount is nil.
// A non-nil previous (even empty) is compared by record count per brand, with
// brands missing from it counted as 0. Stats come back in order of first
// appearance in current; callers sort explicitly.
func Aggregate(current, previous []models.ListingRecord) []models.BrandStat {
	order := make([]string, 0)
	groups := make(map[string]*brandTally)
	var totals models.Totals

	for _, r := range current {
		brand := NormaliseBrand(r.Brand)
		g, ok := groups[brand]
		if !ok {
			g = &brandTally{}
			groups[brand] = g
			order = append(order, brand)
		}
		sales := nonNegative(r.SalesRevenue)
		volume := nonNegative(r.SalesVolume)

		g.count++
		g.sales += sales
		g.volume += volume

		totals.Count++
		totals.Sales += sales
		totals.Volume += volume
	}

	var prevCounts map[string]int
	if previous != nil {
		prevCounts = countByBrand(previous)
	}

	stats := make([]models.BrandStat, 0, len(order))
	for _, brand := range order {
		g := groups[brand]
		stat := models.BrandStat{
			Brand:            brand,
			Count:            g.count,
			CountShare:       share(float64(g.count), float64(totals.Count)),
			Sales:            g.sales,
			SalesShare:       share(g.sales, totals.Sales),
			SalesVolume:      g.volume,
			SalesVolumeShare: share(g.volume, totals.Volume),
		}
		if prevCounts != nil {
			delta := g.count - prevCounts[brand]
			stat.DeltaCount = &delta
		}
		stats = append(stats, stat)
	}
	return stats
}

// NormaliseBrand collapses whitespace and maps a blank brand to UnknownBrand.
func NormaliseBrand(brand string) string {
	brand = normaliseText(brand)
	if brand == "" {
		return models.UnknownBrand
	}
	return brand
}

func countByBrand(records []models.ListingRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[NormaliseBrand(r.Brand)]++
	}
	return counts
}

// share returns part/total as a percentage, or 0 when total is not positive.
func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
