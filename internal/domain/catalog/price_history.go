package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TrendWindow is the number of trailing points averaged for a predicted price
const TrendWindow = 12

// PriceHistory is one append-only daily price observation of a product
type PriceHistory struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Date         time.Time
	AveragePrice decimal.Decimal
	CreatedAt    time.Time
}

// NewPriceHistory creates a history point for the calendar day of date
func NewPriceHistory(productID uuid.UUID, date time.Time, averagePrice decimal.Decimal) (*PriceHistory, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if averagePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Average price cannot be negative")
	}

	return &PriceHistory{
		ID:           uuid.New(),
		ProductID:    productID,
		Date:         truncateToDay(date),
		AveragePrice: averagePrice.Round(2),
		CreatedAt:    time.Now(),
	}, nil
}

// TrendPoint is a history point paired with its moving-average prediction
type TrendPoint struct {
	Date           time.Time       `json:"date"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	PredictedPrice decimal.Decimal `json:"predicted_price"`
}

// BuildTrend computes the predicted price series for history ordered by date.
// Each prediction is the mean of the point and up to TrendWindow-1 points before it.
func BuildTrend(history []PriceHistory) []TrendPoint {
	prices := make([]decimal.Decimal, len(history))
	for i, h := range history {
		prices[i] = h.AveragePrice
	}

	predicted := MovingAverage(prices, TrendWindow)

	points := make([]TrendPoint, len(history))
	for i, h := range history {
		points[i] = TrendPoint{
			Date:           h.Date,
			AveragePrice:   h.AveragePrice,
			PredictedPrice: predicted[i],
		}
	}
	return points
}

// MovingAverage returns the trailing rolling mean of values at full
// precision. Windows shorter than window at the start of the series average
// whatever points exist.
func MovingAverage(values []decimal.Decimal, window int) []decimal.Decimal {
	if window < 1 {
		window = 1
	}

	result := make([]decimal.Decimal, len(values))
	sum := decimal.Zero
	for i, v := range values {
		sum = sum.Add(v)
		if i >= window {
			sum = sum.Sub(values[i-window])
		}
		n := i + 1
		if n > window {
			n = window
		}
		result[i] = sum.Div(decimal.NewFromInt(int64(n)))
	}
	return result
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
