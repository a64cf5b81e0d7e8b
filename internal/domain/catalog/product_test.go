package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_RefreshAvailability(t *testing.T) {
	now := time.Now()
	p, err := NewProduct("Pixel 9", "Google", "G9", decimal.NewFromInt(79999), nil)
	require.NoError(t, err)
	p.Available = true

	t.Run("single empty store item clears flag", func(t *testing.T) {
		changed := p.RefreshAvailability([]StoreItem{{Quantity: 0}}, now)
		assert.True(t, changed)
		assert.False(t, p.Available)
	})

	t.Run("adding stock sets flag", func(t *testing.T) {
		changed := p.RefreshAvailability([]StoreItem{{Quantity: 0}, {Quantity: 5}}, now)
		assert.True(t, changed)
		assert.True(t, p.Available)
	})

	t.Run("re-running is idempotent", func(t *testing.T) {
		changed := p.RefreshAvailability([]StoreItem{{Quantity: 0}, {Quantity: 5}}, now)
		assert.False(t, changed)
		assert.True(t, p.Available)
	})

	t.Run("no stock rows means unavailable", func(t *testing.T) {
		p.RefreshAvailability(nil, now)
		assert.False(t, p.Available)
	})
}

func TestProduct_AddTag(t *testing.T) {
	p, err := NewProduct("Kettle", "Prestige", "PKOSS", decimal.NewFromInt(1200), nil)
	require.NoError(t, err)

	p.AddTag("kettle", TagScorePrimary)
	p.AddTag("Kettle", TagScoreDefault)
	p.AddTag(" ", TagScoreDefault)
	p.AddTag("electric", TagScoreDefault)

	require.Len(t, p.Tags, 2)
	assert.Equal(t, TagScorePrimary, p.Tags[0].Score)
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("", "b", "m", decimal.Zero, nil)
	assert.Error(t, err)
	_, err = NewProduct("x", "b", "m", decimal.NewFromInt(-1), nil)
	assert.Error(t, err)
}

func TestNewStoreItem(t *testing.T) {
	_, err := NewStoreItem(uuid.New(), uuid.New(), -1)
	assert.Error(t, err)
	_, err = NewStoreItem(uuid.Nil, uuid.New(), 1)
	assert.Error(t, err)
	it, err := NewStoreItem(uuid.New(), uuid.New(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity)
}

func TestProperty(t *testing.T) {
	t.Run("integer property validates value", func(t *testing.T) {
		_, err := NewProperty("RAM", PropertyInteger, "eight")
		assert.Error(t, err)

		p, err := NewProperty("RAM", PropertyInteger, " 8 ")
		require.NoError(t, err)
		n, ok := p.Int()
		assert.True(t, ok)
		assert.Equal(t, int64(8), n)
	})

	t.Run("string property accepts anything", func(t *testing.T) {
		p, err := NewProperty("Colour", PropertyString, "Blue")
		require.NoError(t, err)
		_, ok := p.Int()
		assert.False(t, ok)
	})

	t.Run("type parsing", func(t *testing.T) {
		pt, err := ParsePropertyType("Integer")
		require.NoError(t, err)
		assert.Equal(t, PropertyInteger, pt)
		_, err = ParsePropertyType("Float")
		assert.Error(t, err)
	})

	t.Run("category property lookup is case-insensitive", func(t *testing.T) {
		c := Category{Properties: []CategoryProperty{{Name: "Screen Size", Type: PropertyInteger}}}
		got, ok := c.Property("screen size")
		assert.True(t, ok)
		assert.Equal(t, PropertyInteger, got.Type)
	})
}
