package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...int64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(values))
	for i, v := range values {
		result[i] = decimal.NewFromInt(v)
	}
	return result
}

func TestMovingAverage(t *testing.T) {
	t.Run("partial window averages all available points", func(t *testing.T) {
		got := MovingAverage(decimals(10, 20, 30), TrendWindow)
		require.Len(t, got, 3)
		assert.True(t, got[0].Equal(decimal.NewFromInt(10)))
		assert.True(t, got[1].Equal(decimal.NewFromInt(15)))
		assert.True(t, got[2].Equal(decimal.NewFromInt(20)))
	})

	t.Run("full window uses exactly the trailing 12 points", func(t *testing.T) {
		// 1..13: the last point averages 2..13 = 7.5
		values := decimals(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
		got := MovingAverage(values, TrendWindow)
		require.Len(t, got, 13)
		assert.True(t, got[11].Equal(decimal.NewFromFloat(6.5)), got[11].String())
		assert.True(t, got[12].Equal(decimal.NewFromFloat(7.5)), got[12].String())
	})

	t.Run("empty input yields empty series", func(t *testing.T) {
		assert.Empty(t, MovingAverage(nil, TrendWindow))
	})

	t.Run("keeps full precision", func(t *testing.T) {
		got := MovingAverage(decimals(10, 10, 11), TrendWindow)
		assert.True(t, got[2].GreaterThan(decimal.RequireFromString("10.333")), got[2].String())
		assert.True(t, got[2].LessThan(decimal.RequireFromString("10.334")), got[2].String())
	})
}

func TestBuildTrend(t *testing.T) {
	productID := uuid.New()
	start := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	history := make([]PriceHistory, 0, 3)
	for i, price := range []int64{20, 22, 24} {
		entry, err := NewPriceHistory(productID, start.AddDate(0, 0, i), decimal.NewFromInt(price))
		require.NoError(t, err)
		history = append(history, *entry)
	}

	points := BuildTrend(history)
	require.Len(t, points, 3)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.True(t, points[2].AveragePrice.Equal(decimal.NewFromInt(24)))
	assert.True(t, points[2].PredictedPrice.Equal(decimal.NewFromInt(22)))
}

func TestNewPriceHistory(t *testing.T) {
	_, err := NewPriceHistory(uuid.Nil, time.Now(), decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewPriceHistory(uuid.New(), time.Now(), decimal.NewFromInt(-1))
	assert.Error(t, err)
}
