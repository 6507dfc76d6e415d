package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when NewMarketMetrics gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// MarketMetrics counts marketplace activity. A nil *MarketMetrics is valid
// and records nothing.
type MarketMetrics struct {
	cartAdds       metric.Int64Counter
	checkouts      metric.Int64Counter
	checkoutAmount metric.Float64Histogram
	payments       metric.Int64Counter
	reviews        metric.Int64Counter
}

// NewMarketMetrics registers the marketplace instruments on meter
func NewMarketMetrics(meter metric.Meter) (*MarketMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &MarketMetrics{}
	var err error

	if m.cartAdds, err = meter.Int64Counter("ga_cart_line_added_total",
		metric.WithDescription("Products added to carts"),
		metric.WithUnit("{lines}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter ga_cart_line_added_total: %w", err)
	}

	if m.checkouts, err = meter.Int64Counter("ga_order_placed_total",
		metric.WithDescription("Orders placed through checkout or buy-now"),
		metric.WithUnit("{orders}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter ga_order_placed_total: %w", err)
	}

	if m.checkoutAmount, err = meter.Float64Histogram("ga_checkout_amount",
		metric.WithDescription("Total price of a checkout"),
		metric.WithUnit("{won}"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 500, 1000, 5000, 10000),
	); err != nil {
		return nil, fmt.Errorf("failed to create histogram ga_checkout_amount: %w", err)
	}

	if m.payments, err = meter.Int64Counter("ga_payment_total",
		metric.WithDescription("Payment outcomes by status"),
		metric.WithUnit("{payments}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter ga_payment_total: %w", err)
	}

	if m.reviews, err = meter.Int64Counter("ga_review_created_total",
		metric.WithDescription("Reviews written"),
		metric.WithUnit("{reviews}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter ga_review_created_total: %w", err)
	}

	return m, nil
}

// RecordCartAdd counts a product added to a cart
func (m *MarketMetrics) RecordCartAdd(ctx context.Context) {
	if m == nil {
		return
	}
	m.cartAdds.Add(ctx, 1)
}

// RecordOrders counts placed orders and the amount paid for them.
// source is "checkout" or "buy_now".
func (m *MarketMetrics) RecordOrders(ctx context.Context, source string, count int, amount decimal.Decimal) {
	if m == nil || count <= 0 {
		return
	}
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.checkouts.Add(ctx, int64(count), attrs)
	m.checkoutAmount.Record(ctx, amount.InexactFloat64(), attrs)
}

// RecordPayment counts a payment outcome
func (m *MarketMetrics) RecordPayment(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.payments.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordReview counts a new review
func (m *MarketMetrics) RecordReview(ctx context.Context) {
	if m == nil {
		return
	}
	m.reviews.Add(ctx, 1)
}
