package trade

import (
	"sort"

	"github.com/google/uuid"
)

// SellerSales is the total quantity sold across all of a seller's products
type SellerSales struct {
	SellerID  uuid.UUID `json:"seller_id"`
	Username  string    `json:"username"`
	TotalSold int64     `json:"total_sold"`
}

// SellerRank is a seller's 1-based position in the sales ranking
type SellerRank struct {
	Rank      int       `json:"rank"`
	SellerID  uuid.UUID `json:"seller_id"`
	Username  string    `json:"username"`
	TotalSold int64     `json:"total_sold"`
}

// RankSellers orders sellers by total quantity sold, highest first.
// Ties are broken by username so the order is stable across calls.
func RankSellers(sales []SellerSales) []SellerRank {
	sorted := make([]SellerSales, len(sales))
	copy(sorted, sales)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalSold != sorted[j].TotalSold {
			return sorted[i].TotalSold > sorted[j].TotalSold
		}
		return sorted[i].Username < sorted[j].Username
	})

	ranks := make([]SellerRank, len(sorted))
	for i, s := range sorted {
		ranks[i] = SellerRank{
			Rank:      i + 1,
			SellerID:  s.SellerID,
			Username:  s.Username,
			TotalSold: s.TotalSold,
		}
	}
	return ranks
}

// FindRank returns the rank of a seller, or 0 when the seller is not ranked
func FindRank(ranks []SellerRank, sellerID uuid.UUID) int {
	for _, r := range ranks {
		if r.SellerID == sellerID {
			return r.Rank
		}
	}
	return 0
}
