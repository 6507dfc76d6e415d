package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to list a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required,decimal_gt0"`
}

// UpdateProductRequest represents a request to edit a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required,decimal_gt0"`
}

// ProductListFilter selects a page of products
type ProductListFilter struct {
	Query    string `form:"q" binding:"omitempty,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SellerID    uuid.UUID       `json:"seller_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// WeeklyStats summarizes a product's orders over the last seven days.
// PriceChanges is the average order total, or the unit price without orders.
type WeeklyStats struct {
	TotalSales   int64           `json:"total_sales"`
	PriceChanges decimal.Decimal `json:"price_changes"`
	SalesChanges int64           `json:"sales_changes"`
}

// ProductDetailResponse is a product page
type ProductDetailResponse struct {
	Product      ProductResponse  `json:"product"`
	Reviews      []ReviewResponse `json:"reviews"`
	WeeklyStats  WeeklyStats      `json:"weekly_stats"`
	HasPurchased bool             `json:"has_purchased"`
}

// CompareResponse lists the two compared product families side by side
type CompareResponse struct {
	Strawberries []ProductResponse `json:"strawberries"`
	ShineMuscats []ProductResponse `json:"shine_muscats"`
}

// ReviewRequest represents a request to write or edit a review
type ReviewRequest struct {
	Content string `json:"content" binding:"required,max=30"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToReviewResponse converts a domain review
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PriceTrendResponse is the price history of a product with its moving average
type PriceTrendResponse struct {
	Product      ProductResponse      `json:"product"`
	PriceHistory []PricePointResponse `json:"price_history"`
}

// PricePointResponse is one day of the trend, with the predicted price in cents
type PricePointResponse struct {
	Date           time.Time       `json:"date"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	PredictedPrice decimal.Decimal `json:"predicted_price"`
}

// ToPricePointResponses converts trend points, rounding predictions to cents
func ToPricePointResponses(points []catalog.TrendPoint) []PricePointResponse {
	result := make([]PricePointResponse, len(points))
	for i, p := range points {
		result[i] = PricePointResponse{
			Date:           p.Date,
			AveragePrice:   p.AveragePrice,
			PredictedPrice: p.PredictedPrice.Round(2),
		}
	}
	return result
}
