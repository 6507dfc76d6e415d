package trade

import (
	"context"

	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// RankingInvalidationHandler drops the cached seller ranking whenever sales
// totals or the set of sellers change
type RankingInvalidationHandler struct {
	ranking *RankingService
	logger  *zap.Logger
}

// NewRankingInvalidationHandler creates a new RankingInvalidationHandler
func NewRankingInvalidationHandler(ranking *RankingService, logger *zap.Logger) *RankingInvalidationHandler {
	return &RankingInvalidationHandler{
		ranking: ranking,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RankingInvalidationHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCheckedOut,
		trade.EventTypeOrderPlaced,
		catalog.EventTypeProductDeleted,
		identity.EventTypeUserRegistered,
	}
}

// Handle invalidates the ranking cache
func (h *RankingInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if e, ok := event.(*identity.UserRegisteredEvent); ok && !e.IsSeller {
		return nil
	}

	if err := h.ranking.Invalidate(ctx); err != nil {
		h.logger.Warn("Failed to invalidate ranking cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*RankingInvalidationHandler)(nil)
