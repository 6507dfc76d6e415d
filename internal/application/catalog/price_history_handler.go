package catalog

import (
	"context"
	"fmt"

	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PriceHistoryHandler appends a price point whenever a product is listed or
// its price changes
type PriceHistoryHandler struct {
	historyRepo catalog.PriceHistoryRepository
	logger      *zap.Logger
}

// NewPriceHistoryHandler creates a new PriceHistoryHandler
func NewPriceHistoryHandler(historyRepo catalog.PriceHistoryRepository, logger *zap.Logger) *PriceHistoryHandler {
	return &PriceHistoryHandler{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PriceHistoryHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductCreated, catalog.EventTypeProductPriceChanged}
}

// Handle records the product's new price for the day the event occurred
func (h *PriceHistoryHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var entry *catalog.PriceHistory
	var err error

	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		entry, err = catalog.NewPriceHistory(e.ProductID, e.OccurredAt(), e.Price)
	case *catalog.ProductPriceChangedEvent:
		entry, err = catalog.NewPriceHistory(e.ProductID, e.OccurredAt(), e.NewPrice)
	default:
		h.logger.Error("unexpected event type",
			zap.Strings("expected", h.EventTypes()),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	if err != nil {
		return err
	}

	if err := h.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append price history: %w", err)
	}

	h.logger.Debug("price history recorded",
		zap.String("product_id", entry.ProductID.String()),
		zap.String("average_price", entry.AveragePrice.String()),
	)
	return nil
}

var _ shared.EventHandler = (*PriceHistoryHandler)(nil)
