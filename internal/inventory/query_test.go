package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clawtrack/internal/prize"
)

func dated(id, name string, year, month, day int) prize.Record {
	r := rec(id, name)
	r.AcquisitionDate = prize.NewDate(year, time.Month(month), day)
	return r
}

func TestQuery_DefaultSortNewestFirst(t *testing.T) {
	records := []prize.Record{
		dated("a", "bear", 2024, 1, 1),
		dated("b", "cat", 2024, 6, 1),
		dated("c", "duck", 2023, 12, 1),
	}

	got := Query{}.Apply(records)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-06-01", got[0].AcquisitionDate.String())
	assert.Equal(t, "2024-01-01", got[1].AcquisitionDate.String())
	assert.Equal(t, "2023-12-01", got[2].AcquisitionDate.String())
}

func TestQuery_DateTiesKeepOriginalOrder(t *testing.T) {
	records := []prize.Record{
		dated("a", "bear", 2024, 1, 1),
		dated("b", "cat", 2024, 1, 1),
		dated("c", "duck", 2024, 1, 1),
	}

	got := Query{Sort: SortNewest}.Apply(records)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Identifier)
	assert.Equal(t, "b", got[1].Identifier)
	assert.Equal(t, "c", got[2].Identifier)
}

func TestQuery_NameSort(t *testing.T) {
	records := []prize.Record{
		dated("a", "duck", 2024, 1, 1),
		dated("b", "Bear", 2024, 1, 2),
		dated("c", "cat", 2024, 1, 3),
	}

	asc := Query{Sort: SortNameAsc}.Apply(records)
	require.Len(t, asc, 3)
	assert.Equal(t, "Bear", asc[0].Name)
	assert.Equal(t, "cat", asc[1].Name)
	assert.Equal(t, "duck", asc[2].Name)

	desc := Query{Sort: SortNameDesc}.Apply(records)
	assert.Equal(t, "duck", desc[0].Name)
	assert.Equal(t, "cat", desc[1].Name)
	assert.Equal(t, "Bear", desc[2].Name)
}

func TestQuery_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	records := []prize.Record{
		dated("a", "Kirby Plush", 2024, 1, 1),
		dated("b", "pikachu keychain", 2024, 1, 2),
		dated("c", "Kirby Keychain", 2024, 1, 3),
	}

	got := Query{Search: "kirby"}.Apply(records)
	require.Len(t, got, 2)

	got = Query{Search: "KEYCHAIN"}.Apply(records)
	require.Len(t, got, 2)

	got = Query{Search: "  kirby  "}.Apply(records)
	assert.Len(t, got, 2, "surrounding whitespace is ignored")
}

func TestQuery_CategoryFilter(t *testing.T) {
	a := dated("a", "bear", 2024, 1, 1)
	a.Category = prize.CategoryPlush
	b := dated("b", "gundam", 2024, 1, 2)
	b.Category = prize.CategoryFigure

	records := []prize.Record{a, b}

	got := Query{Category: prize.CategoryFigure}.Apply(records)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Identifier)

	// The sentinel and the zero value both mean "all".
	assert.Len(t, Query{Category: prize.CategoryAll}.Apply(records), 2)
	assert.Len(t, Query{}.Apply(records), 2)
}

func TestQuery_NoMatchLeavesCollectionUntouched(t *testing.T) {
	c := NewCollection()
	c.Upsert(rec("a", "bear"))
	c.Upsert(rec("b", "cat"))

	got := Query{Category: prize.CategoryElectronics}.Apply(c.Records())
	assert.Empty(t, got)
	assert.Equal(t, 2, c.Len(), "the projection never mutates the collection")
}

func TestQuery_FilterAndSearchCombine(t *testing.T) {
	a := dated("a", "Kirby plush", 2024, 1, 1)
	a.Category = prize.CategoryPlush
	b := dated("b", "Kirby figure", 2024, 1, 2)
	b.Category = prize.CategoryFigure

	got := Query{Search: "kirby", Category: prize.CategoryPlush}.Apply([]prize.Record{a, b})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Identifier)
}

func TestParseSortOrder(t *testing.T) {
	for input, want := range map[string]SortOrder{
		"":          SortNewest,
		"newest":    SortNewest,
		"name":      SortNameAsc,
		"name-desc": SortNameDesc,
	} {
		got, err := ParseSortOrder(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortOrder("by-vibes")
	assert.Error(t, err)
}

func TestSortOrder_NextCycles(t *testing.T) {
	assert.Equal(t, SortNameAsc, SortNewest.Next())
	assert.Equal(t, SortNameDesc, SortNameAsc.Next())
	assert.Equal(t, SortNewest, SortNameDesc.Next())
}
