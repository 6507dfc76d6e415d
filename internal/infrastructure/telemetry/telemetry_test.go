package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/greenauction/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.TracingEnabled())
	assert.NotNil(t, p.Meter("test"))

	base := zap.NewNop()
	assert.Same(t, base, p.BridgeLogger(base))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1.0).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), newSampler(0).Description())
	assert.Contains(t, newSampler(0.5).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartServiceSpan(context.Background(), "cart", "checkout", AttrQuantity, 3, AttrUserID, "u-1")
	assert.NotEmpty(t, GetTraceID(ctx))
	AddEvent(span, "lines_finalized", AttrOrderID, "o-1")
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cart.checkout", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Attributes(), 2)
	assert.Len(t, spans[0].Events(), 2)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestMarketMetrics(t *testing.T) {
	t.Run("nil meter is rejected", func(t *testing.T) {
		_, err := NewMarketMetrics(nil)
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("nil receiver records nothing", func(t *testing.T) {
		var m *MarketMetrics
		assert.NotPanics(t, func() {
			m.RecordCartAdd(context.Background())
			m.RecordOrders(context.Background(), "checkout", 2, decimal.NewFromInt(40))
			m.RecordPayment(context.Background(), "paid")
			m.RecordReview(context.Background())
		})
	})

	t.Run("records counters", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		m, err := NewMarketMetrics(provider.Meter("test"))
		require.NoError(t, err)

		ctx := context.Background()
		m.RecordCartAdd(ctx)
		m.RecordCartAdd(ctx)
		m.RecordOrders(ctx, "checkout", 3, decimal.NewFromInt(75))
		m.RecordPayment(ctx, "paid")

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))

		sums := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, md := range sm.Metrics {
				if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
					for _, dp := range sum.DataPoints {
						sums[md.Name] += dp.Value
					}
				}
			}
		}
		assert.Equal(t, int64(2), sums["ga_cart_line_added_total"])
		assert.Equal(t, int64(3), sums["ga_order_placed_total"])
		assert.Equal(t, int64(1), sums["ga_payment_total"])
	})
}
