package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"count", "sales", "salesVolume"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err := ParseSortKey("revenue")
	assert.Error(t, err)
}

func TestSortKeyValue(t *testing.T) {
	s := BrandStat{Count: 3, Sales: 12.5, SalesVolume: 7}
	assert.Equal(t, 3.0, SortByCount.Value(s))
	assert.Equal(t, 12.5, SortBySales.Value(s))
	assert.Equal(t, 7.0, SortBySalesVolume.Value(s))
	assert.Zero(t, SortKey("bogus").Value(s))
}

func TestTotalsOf(t *testing.T) {
	got := TotalsOf([]BrandStat{
		{Count: 2, Sales: 10, SalesVolume: 1},
		{Count: 3, Sales: 5.5, SalesVolume: 4},
	})
	assert.Equal(t, Totals{Count: 5, Sales: 15.5, Volume: 5}, got)
	assert.Equal(t, Totals{}, TotalsOf(nil))
}

func TestBrandSet(t *testing.T) {
	set := NewBrandSet("EZARC", "TOLESA")
	assert.True(t, set.Has("EZARC"))
	assert.False(t, set.Has("ezarc"))

	var empty BrandSet
	assert.False(t, empty.Has("EZARC"))
}

func TestSortKeyShare(t *testing.T) {
	s := BrandStat{CountShare: 10, SalesShare: 20, SalesVolumeShare: 30}
	assert.Equal(t, 10.0, SortByCount.Share(s))
	assert.Equal(t, 20.0, SortBySales.Share(s))
	assert.Equal(t, 30.0, SortBySalesVolume.Share(s))
	assert.Zero(t, SortKey("bogus").Share(s))
}

func TestValueKey(t *testing.T) {
	s := BrandStat{Count: 3, Sales: 12.5, SalesVolume: 7}
	assert.Equal(t, 12.5, ValueBySales.Value(s))
	assert.Equal(t, 7.0, ValueBySalesVolume.Value(s))
	assert.Zero(t, ValueKey("count").Value(s), "count is not a share metric")

	assert.Equal(t, SortBySales, ValueBySales.SortKey())
	assert.Equal(t, SortBySalesVolume, ValueBySalesVolume.SortKey())
}

func TestIsOthers(t *testing.T) {
	assert.True(t, BrandStat{Brand: OthersBrand, Synthetic: true}.IsOthers())
	assert.False(t, BrandStat{Brand: OthersBrand}.IsOthers(), "a data brand named Others")
	assert.False(t, BrandStat{Brand: UnknownBrand}.IsOthers())
}
