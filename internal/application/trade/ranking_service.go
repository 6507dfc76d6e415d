package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// RankingService ranks sellers by quantity sold
type RankingService struct {
	orderRepo trade.OrderRepository
	cache     cache.RankingCache
	logger    *zap.Logger
}

// NewRankingService creates a new RankingService. A nil cache disables caching.
func NewRankingService(orderRepo trade.OrderRepository, rankingCache cache.RankingCache, logger *zap.Logger) *RankingService {
	if rankingCache == nil {
		rankingCache = cache.NoopRankingCache{}
	}
	return &RankingService{
		orderRepo: orderRepo,
		cache:     rankingCache,
		logger:    logger,
	}
}

// Ranking returns every seller ordered by total quantity sold
func (s *RankingService) Ranking(ctx context.Context) ([]trade.SellerRank, error) {
	ranks, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("Failed to read ranking cache", zap.Error(err))
	} else if ok {
		return ranks, nil
	}

	sales, err := s.orderRepo.SellerSales(ctx)
	if err != nil {
		return nil, err
	}

	ranks = trade.RankSellers(sales)
	if err := s.cache.Set(ctx, ranks); err != nil {
		s.logger.Warn("Failed to write ranking cache", zap.Error(err))
	}
	return ranks, nil
}

// SellerRank returns a seller's 1-based rank, or 0 when they are not a seller
func (s *RankingService) SellerRank(ctx context.Context, sellerID uuid.UUID) (int, error) {
	ranks, err := s.Ranking(ctx)
	if err != nil {
		return 0, err
	}
	return trade.FindRank(ranks, sellerID), nil
}

// Invalidate drops the cached ranking
func (s *RankingService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
