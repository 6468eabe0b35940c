package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clawtrack/internal/prize"
	"clawtrack/internal/store"
)

// dateCmp lets go-cmp compare records despite Date's unexported field.
var dateCmp = cmp.Comparer(func(a, b prize.Date) bool { return a.Equal(b) })

func rec(id, name string) prize.Record {
	return prize.Record{
		Identifier:      id,
		Name:            name,
		Category:        prize.CategoryPlush,
		Manufacturer:    prize.ManufacturerUnknown,
		Quantity:        1,
		AcquisitionDate: prize.NewDate(2024, 1, 1),
	}
}

func TestCollection_UpsertAppendsNew(t *testing.T) {
	c := NewCollection()
	c.Upsert(rec("a", "bear"))
	c.Upsert(rec("b", "cat"))

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Identifier)
	assert.Equal(t, "b", records[1].Identifier)
}

func TestCollection_UpsertReplacesInPlace(t *testing.T) {
	c := NewCollection()
	c.Upsert(rec("a", "bear"))
	c.Upsert(rec("b", "cat"))
	c.Upsert(rec("c", "duck"))

	edited := rec("b", "tiger")
	edited.Quantity = 5
	c.Upsert(edited)

	records := c.Records()
	require.Len(t, records, 3)
	// Identifier and position survive the edit.
	assert.Equal(t, "b", records[1].Identifier)
	assert.Empty(t, cmp.Diff(edited, records[1], dateCmp))
}

func TestCollection_RemoveExactlyOne(t *testing.T) {
	c := NewCollection()
	c.Upsert(rec("a", "bear"))
	c.Upsert(rec("b", "cat"))
	c.Upsert(rec("c", "duck"))

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"), "second remove of the same id finds nothing")

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Identifier)
	assert.Equal(t, "c", records[1].Identifier)
}

func TestCollection_AdjustQuantityClampsAtZero(t *testing.T) {
	c := NewCollection()
	r := rec("a", "bear")
	r.Quantity = 1
	c.Upsert(r)

	require.True(t, c.AdjustQuantity("a", -1))
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 0, got.Quantity)

	require.True(t, c.AdjustQuantity("a", -1))
	got, _ = c.Get("a")
	assert.Equal(t, 0, got.Quantity, "quantity never goes negative")

	require.True(t, c.AdjustQuantity("a", 3))
	got, _ = c.Get("a")
	assert.Equal(t, 3, got.Quantity)

	assert.False(t, c.AdjustQuantity("missing", 1))
}

func TestCollection_OnChangeFiresWithSnapshot(t *testing.T) {
	c := NewCollection()

	var calls [][]prize.Record
	c.SetOnChange(func(records []prize.Record) {
		calls = append(calls, records)
	})

	c.Upsert(rec("a", "bear"))
	c.Remove("a")
	c.Upsert(rec("b", "cat"))
	c.AdjustQuantity("b", 2)

	require.Len(t, calls, 4)
	assert.Len(t, calls[0], 1)
	assert.Len(t, calls[1], 0)
	assert.Equal(t, 3, calls[3][0].Quantity)
}

func TestCollection_HydrateIsSilent(t *testing.T) {
	c := NewCollection()

	fired := false
	c.SetOnChange(func([]prize.Record) { fired = true })

	c.Hydrate([]prize.Record{rec("a", "bear")})
	assert.False(t, fired, "hydration must not look like a user change")
	assert.Equal(t, 1, c.Len())
}

func TestLoad_MissingSlot(t *testing.T) {
	got := Load(store.NewMemoryStore(), zap.NewNop())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_MalformedSlot(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save([]byte("definitely not json")))

	got := Load(st, zap.NewNop())
	assert.Empty(t, got, "decode failure recovers to an empty collection")
}

func TestLoad_MigratesStoredRecords(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Save([]byte(`[{"identifier":"a","name":"bear"}]`)))

	got := Load(st, zap.NewNop())
	require.Len(t, got, 1)
	assert.Equal(t, prize.CategoryOther, got[0].Category)
	assert.Equal(t, 1, got[0].Quantity)
}
