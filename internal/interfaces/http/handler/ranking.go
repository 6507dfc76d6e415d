package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/greenauction/backend/internal/application/trade"
)

// RankingHandler serves the seller leaderboard
type RankingHandler struct {
	BaseHandler
	rankingService *tradeapp.RankingService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(rankingService *tradeapp.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// SellerRanking handles GET /sellers/ranking
func (h *RankingHandler) SellerRanking(c *gin.Context) {
	ranking, err := h.rankingService.Ranking(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ranking)
}
