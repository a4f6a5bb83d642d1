package services

import (
	"sort"

	"brand-ranking/models"
)

// minSliceShare is the smallest share (in percent) a non-pinned brand needs to
// keep its own slice in a share chart. A share of exactly 1% is kept.
const minSliceShare = 1.0

// sortedBy returns a copy of stats ordered by key, descending. Ties keep input order.
func sortedBy(stats []models.BrandStat, key models.SortKey) []models.BrandStat {
	sorted := make([]models.BrandStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key.Value(sorted[i]) > key.Value(sorted[j])
	})
	return sorted
}

// SelectTop ranks stats by key and keeps the first topN. A topN that is not
// positive or not smaller than len(stats) keeps everything.
func SelectTop(stats []models.BrandStat, key models.SortKey, topN int) []models.BrandStat {
	sorted := sortedBy(stats, key)
	if topN <= 0 || topN >= len(sorted) {
		return sorted
	}
	return sorted[:topN]
}

// ConsolidateTopN ranks stats by key, keeps the first topN, re-appends pinned
// brands that fell below the cut, and folds everything else into one Others
// entry whose shares are measured against totals.
//
// Result order: top entries, pinned entries in ranked order, then Others.
// Others is left out when it would be empty.
func ConsolidateTopN(stats []models.BrandStat, key models.SortKey, topN int, totals models.Totals, pinned models.BrandSet) []models.BrandStat {
	sorted := sortedBy(stats, key)
	if topN <= 0 || topN >= len(sorted) {
		return sorted
	}

	top := sorted[:topN]
	rest := sorted[topN:]

	inTop := make(map[string]struct{}, len(top))
	for _, s := range top {
		inTop[s.Brand] = struct{}{}
	}

	result := make([]models.BrandStat, 0, topN+len(pinned)+1)
	result = append(result, top...)

	others := models.BrandStat{Brand: models.OthersBrand, Synthetic: true}
	for _, s := range rest {
		if pinned.Has(s.Brand) {
			if _, dup := inTop[s.Brand]; !dup {
				result = append(result, s)
			}
			continue
		}
		others.Count += s.Count
		others.Sales += s.Sales
		others.SalesVolume += s.SalesVolume
	}

	if others.Count == 0 && others.Sales == 0 && others.SalesVolume == 0 {
		return result
	}

	others.CountShare = share(float64(others.Count), float64(totals.Count))
	others.SalesShare = share(others.Sales, totals.Sales)
	others.SalesVolumeShare = share(others.SalesVolume, totals.Volume)
	return append(result, others)
}

// BuildShareSeries turns stats into chart slices valued by key.
//
// Pinned brands always get their own slice. Other brands below minSliceShare of
// the total, and any synthetic Others entry already present in stats, are
// merged into a single trailing Others slice. A data brand named "Others" is
// sliced like any other brand. Colors are assigned from palette in emission
// order.
func BuildShareSeries(stats []models.BrandStat, key models.ValueKey, pinned models.BrandSet, palette Palette) []models.ShareEntry {
	var total float64
	for _, s := range stats {
		total += key.Value(s)
	}

	entries := make([]models.ShareEntry, 0, len(stats)+1)
	var othersValue float64

	for _, s := range sortedBy(stats, key.SortKey()) {
		value := key.Value(s)
		switch {
		case s.IsOthers():
			othersValue += value
		case pinned.Has(s.Brand):
			entries = append(entries, models.ShareEntry{Name: s.Brand, Value: value})
		case share(value, total) < minSliceShare:
			othersValue += value
		default:
			entries = append(entries, models.ShareEntry{Name: s.Brand, Value: value})
		}
	}

	if othersValue > 0 {
		entries = append(entries, models.ShareEntry{
			Name:     models.OthersBrand,
			Value:    othersValue,
			IsOthers: true,
		})
	}

	return palette.Assign(entries)
}
