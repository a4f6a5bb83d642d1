package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-ranking/models"
)

func stat(brand string, count int, sales, volume float64) models.BrandStat {
	return models.BrandStat{Brand: brand, Count: count, Sales: sales, SalesVolume: volume}
}

func brandsOf[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out
}

func statBrands(stats []models.BrandStat) []string {
	return brandsOf(stats, func(s models.BrandStat) string { return s.Brand })
}

func entryNames(entries []models.ShareEntry) []string {
	return brandsOf(entries, func(e models.ShareEntry) string { return e.Name })
}

// rankedStats is ordered so that by sales the ranking is A, B, C, D, E.
func rankedStats() []models.BrandStat {
	return []models.BrandStat{
		stat("C", 3, 30, 3),
		stat("A", 5, 50, 1),
		stat("E", 1, 10, 5),
		stat("B", 4, 40, 2),
		stat("D", 2, 20, 4),
	}
}

func TestSelectTop(t *testing.T) {
	stats := rankedStats()
	assert.Equal(t, []string{"A", "B"}, statBrands(SelectTop(stats, models.SortBySales, 2)))
	assert.Equal(t, []string{"E", "D", "C", "B", "A"}, statBrands(SelectTop(stats, models.SortBySalesVolume, 0)))
	assert.Equal(t, []string{"C", "A", "E", "B", "D"}, statBrands(stats), "input is not reordered")
}

func TestSortIsStableOnTies(t *testing.T) {
	stats := []models.BrandStat{stat("first", 1, 5, 0), stat("second", 1, 5, 0), stat("third", 2, 1, 0)}
	assert.Equal(t, []string{"third", "first", "second"}, statBrands(SelectTop(stats, models.SortByCount, 0)))
	assert.Equal(t, []string{"first", "second", "third"}, statBrands(SelectTop(stats, models.SortBySales, 0)))
}

func TestConsolidateTopNBoundaries(t *testing.T) {
	stats := rankedStats()
	totals := models.TotalsOf(stats)
	want := SelectTop(stats, models.SortBySales, 0)

	assert.Equal(t, want, ConsolidateTopN(stats, models.SortBySales, 0, totals, nil))
	assert.Equal(t, want, ConsolidateTopN(stats, models.SortBySales, -3, totals, nil))
	assert.Equal(t, want, ConsolidateTopN(stats, models.SortBySales, len(stats), totals, nil))
	assert.Equal(t, want, ConsolidateTopN(stats, models.SortBySales, 99, totals, models.NewBrandSet("E")))
}

func TestConsolidateTopNOthers(t *testing.T) {
	stats := rankedStats()
	totals := models.TotalsOf(stats)

	got := ConsolidateTopN(stats, models.SortBySales, 2, totals, nil)
	require.Equal(t, []string{"A", "B", models.OthersBrand}, statBrands(got))

	others := got[2]
	assert.Equal(t, 6, others.Count, "C+D+E")
	assert.Equal(t, 60.0, others.Sales)
	assert.Equal(t, 12.0, others.SalesVolume)
	assert.InDelta(t, 40.0, others.CountShare, 1e-9)
	assert.InDelta(t, 40.0, others.SalesShare, 1e-9)
	assert.InDelta(t, 80.0, others.SalesVolumeShare, 1e-9)
	assert.Nil(t, others.DeltaCount)
}

func TestConsolidateTopNPinned(t *testing.T) {
	stats := rankedStats()
	stats[2].DeltaCount = intPtr(-1) // E
	totals := models.TotalsOf(stats)

	got := ConsolidateTopN(stats, models.SortBySales, 2, totals, models.NewBrandSet("E", "A", "C"))
	require.Equal(t, []string{"A", "B", "C", "E", models.OthersBrand}, statBrands(got))
	assert.Equal(t, stats[2], got[3], "pinned entries keep their own statistics")
	assert.Equal(t, 2, got[4].Count, "only D is folded")
}

func TestConsolidateTopNUsesCallerTotals(t *testing.T) {
	stats := rankedStats()
	totals := models.Totals{Count: 100, Sales: 1000, Volume: 100}

	got := ConsolidateTopN(stats, models.SortBySales, 4, totals, nil)
	others := got[len(got)-1]
	require.True(t, others.IsOthers())
	assert.InDelta(t, 1.0, others.CountShare, 1e-9)
	assert.InDelta(t, 1.0, others.SalesShare, 1e-9)
	assert.InDelta(t, 5.0, others.SalesVolumeShare, 1e-9)
}

func TestConsolidateTopNOmitsEmptyOthers(t *testing.T) {
	stats := []models.BrandStat{stat("A", 2, 10, 1), stat("Z", 0, 0, 0), stat("P", 1, 1, 1)}
	totals := models.TotalsOf(stats)

	got := ConsolidateTopN(stats, models.SortBySales, 1, totals, models.NewBrandSet("P"))
	assert.Equal(t, []string{"A", "P"}, statBrands(got), "pinned brands survive even without an Others bucket")

	got = ConsolidateTopN(stats, models.SortBySales, 2, totals, nil)
	assert.Equal(t, []string{"A", "P"}, statBrands(got))
}

func TestConsolidateTopNZeroTotals(t *testing.T) {
	stats := rankedStats()
	got := ConsolidateTopN(stats, models.SortBySales, 1, models.Totals{}, nil)
	others := got[len(got)-1]
	assert.Zero(t, others.CountShare)
	assert.Zero(t, others.SalesShare)
	assert.Zero(t, others.SalesVolumeShare)
}

func TestConsolidateTopNIdempotent(t *testing.T) {
	stats := rankedStats()
	totals := models.TotalsOf(stats)
	pinned := models.NewBrandSet("D")
	assert.Equal(t,
		ConsolidateTopN(stats, models.SortByCount, 2, totals, pinned),
		ConsolidateTopN(stats, models.SortByCount, 2, totals, pinned))
}

func TestBuildShareSeriesThreshold(t *testing.T) {
	stats := []models.BrandStat{
		stat("Big", 1, 995, 0),
		stat("Tiny", 1, 5, 0),
	}

	got := BuildShareSeries(stats, models.ValueBySales, nil, DefaultPalette())
	require.Equal(t, []string{"Big", models.OthersBrand}, entryNames(got))
	assert.Equal(t, 5.0, got[1].Value)
	assert.True(t, got[1].IsOthers)

	got = BuildShareSeries(stats, models.ValueBySales, models.NewBrandSet("Tiny"), DefaultPalette())
	assert.Equal(t, []string{"Big", "Tiny"}, entryNames(got))
	assert.False(t, got[1].IsOthers)
}

func TestBuildShareSeriesExactlyOnePercentIsKept(t *testing.T) {
	stats := []models.BrandStat{stat("Big", 1, 99, 0), stat("Edge", 1, 1, 0)}
	got := BuildShareSeries(stats, models.ValueBySales, nil, DefaultPalette())
	assert.Equal(t, []string{"Big", "Edge"}, entryNames(got))
}

func TestBuildShareSeriesFoldsExistingOthers(t *testing.T) {
	stats := []models.BrandStat{
		stat("A", 1, 0, 60),
		{Brand: models.OthersBrand, Count: 3, SalesVolume: 30, Synthetic: true},
		stat("B", 1, 0, 9.5),
		stat("C", 1, 0, 0.5),
	}

	got := BuildShareSeries(stats, models.ValueBySalesVolume, nil, DefaultPalette())
	require.Equal(t, []string{"A", "B", models.OthersBrand}, entryNames(got))
	assert.Equal(t, 30.5, got[2].Value)
	assert.Equal(t, 1, countOthers(got))
}

func TestDataBrandNamedOthersKeepsItsIdentity(t *testing.T) {
	stats := []models.BrandStat{
		stat(models.OthersBrand, 3, 90, 0),
		stat("A", 2, 50, 0),
		stat("B", 1, 10, 0),
	}
	totals := models.TotalsOf(stats)

	table := ConsolidateTopN(stats, models.SortBySales, 1, totals, nil)
	require.Len(t, table, 2)
	assert.False(t, table[0].IsOthers(), "the top-ranked data brand is not the bucket")
	assert.Equal(t, 90.0, table[0].Sales)
	assert.True(t, table[1].IsOthers())
	assert.Equal(t, 60.0, table[1].Sales, "A and B only")
	assert.Equal(t, 3, table[1].Count)

	series := BuildShareSeries(stats, models.ValueBySales, nil, DefaultPalette())
	require.Equal(t, []string{models.OthersBrand, "A", "B"}, entryNames(series))
	assert.Equal(t, 90.0, series[0].Value)
	assert.False(t, series[0].IsOthers)
	assert.Equal(t, "#0050B3", series[0].Color, "colored from the palette, not as the bucket")
	assert.Equal(t, 0, countOthers(series))

	series = BuildShareSeries(table, models.ValueBySales, nil, DefaultPalette())
	require.Equal(t, []string{models.OthersBrand, models.OthersBrand}, entryNames(series))
	assert.False(t, series[0].IsOthers)
	assert.True(t, series[1].IsOthers)
	assert.Equal(t, 60.0, series[1].Value)
}

func TestConsolidateTopNMarksOnlyTheBucket(t *testing.T) {
	stats := rankedStats()
	got := ConsolidateTopN(stats, models.SortBySales, 2, models.TotalsOf(stats), models.NewBrandSet("D"))
	for _, s := range got[:len(got)-1] {
		assert.False(t, s.Synthetic, s.Brand)
	}
	assert.True(t, got[len(got)-1].Synthetic)
}

func TestBuildShareSeriesNoOthersWhenNothingFolded(t *testing.T) {
	stats := []models.BrandStat{stat("A", 1, 50, 0), stat("B", 1, 50, 0)}
	got := BuildShareSeries(stats, models.ValueBySales, nil, DefaultPalette())
	assert.Equal(t, 0, countOthers(got))
}

func TestBuildShareSeriesEmpty(t *testing.T) {
	assert.Empty(t, BuildShareSeries(nil, models.ValueBySales, nil, DefaultPalette()))
}

func TestPinnedNeverFolded(t *testing.T) {
	stats := []models.BrandStat{
		stat("A", 50, 900, 90),
		stat("B", 30, 95, 9),
		stat("Pin", 1, 1, 0.1),
		stat("Z", 1, 4, 0.9),
	}
	totals := models.TotalsOf(stats)
	pinned := models.NewBrandSet("Pin")

	table := ConsolidateTopN(stats, models.SortBySales, 1, totals, pinned)
	assert.Contains(t, statBrands(table), "Pin")

	series := BuildShareSeries(table, models.ValueBySales, pinned, DefaultPalette())
	assert.Contains(t, entryNames(series), "Pin")
	for _, e := range series {
		if e.IsOthers {
			assert.Equal(t, 99.0, e.Value, "B and Z only")
		}
	}
}

func countOthers(entries []models.ShareEntry) int {
	n := 0
	for _, e := range entries {
		if e.IsOthers {
			n++
		}
	}
	return n
}
