package handler

import (
	"github.com/greenauction/backend/internal/interfaces/http/middleware"
	"github.com/greenauction/backend/internal/interfaces/http/router"
)

// Handlers bundles the HTTP handlers mounted under /api/v1
type Handlers struct {
	Auth    *AuthHandler
	Seller  *SellerHandler
	Product *ProductHandler
	Review  *ReviewHandler
	Cart    *CartHandler
	Payment *PaymentHandler
	Ranking *RankingHandler
}

// AuthRoutes creates the route group for accounts and sessions
func AuthRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("auth", "/auth")
	group.POST("/register", h.Auth.Register)
	group.POST("/login", h.Auth.Login)
	group.POST("/refresh", h.Auth.RefreshToken)

	private := group.Group("auth-private", "")
	private.Use(middleware.RequireAuth())
	private.POST("/logout", h.Auth.Logout)
	private.GET("/profile", h.Auth.GetProfile)
	private.GET("/purchase-history", h.Cart.PurchaseHistory)

	return group
}

// SellerRoutes creates the route group for seller onboarding and ranking
func SellerRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("sellers", "/sellers")
	group.GET("/ranking", h.Ranking.SellerRanking)

	license := group.Group("license", "/license")
	license.Use(middleware.RequireAuth(), middleware.RequireSeller())
	license.POST("", h.Seller.SubmitBusinessLicense)
	license.GET("", h.Seller.GetOwnBusinessLicense)

	return group
}

// AdminRoutes creates the staff-only route group
func AdminRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("admin", "/admin")
	group.Use(middleware.RequireAuth(), middleware.RequireStaff())
	group.GET("/sellers/:id/license", h.Seller.GetBusinessLicense)
	group.POST("/sellers/:id/approve", h.Seller.ApproveSeller)

	return group
}

// CatalogRoutes creates the route group for products, prices and reviews
func CatalogRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("catalog", "/catalog")
	group.GET("/products", h.Product.List)
	group.GET("/products/compare", h.Product.Compare)
	group.GET("/products/:id", h.Product.Detail)
	group.GET("/products/:id/price-trend", h.Product.PriceTrend)

	seller := group.Group("catalog-seller", "")
	seller.Use(middleware.RequireAuth(), middleware.RequireSeller())
	seller.POST("/products", h.Product.Create)
	seller.PUT("/products/:id", h.Product.Update)
	seller.DELETE("/products/:id", h.Product.Delete)

	reviews := group.Group("catalog-reviews", "")
	reviews.Use(middleware.RequireAuth())
	reviews.POST("/products/:id/reviews", h.Review.AddReview)
	reviews.PUT("/reviews/:id", h.Review.EditReview)

	return group
}

// TradeRoutes creates the route group for the cart, orders and checkout
func TradeRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("trade", "/trade")
	group.Use(middleware.RequireAuth())
	group.GET("/cart", h.Cart.ViewCart)
	group.POST("/cart/checkout", h.Cart.Checkout)
	group.POST("/cart/lines/:order_id/:action", h.Cart.UpdateCart)
	group.POST("/cart/:product_id", h.Cart.AddToCart)
	group.POST("/buy-now/:product_id", h.Cart.BuyNow)
	group.POST("/orders/:id/kakao-pay", h.Payment.Ready)

	return group
}

// PaymentRoutes creates the route group KakaoPay redirects buyers back to
func PaymentRoutes(h Handlers) *router.DomainGroup {
	group := router.NewDomainGroup("payment", "/payment")
	group.GET("/success", h.Payment.Success)
	group.GET("/fail", h.Payment.Fail)
	group.GET("/cancel", h.Payment.Cancel)

	return group
}

// RegisterRoutes mounts every domain group on r
func RegisterRoutes(r *router.Router, h Handlers) *router.Router {
	return r.Register(AuthRoutes(h)).
		Register(SellerRoutes(h)).
		Register(AdminRoutes(h)).
		Register(CatalogRoutes(h)).
		Register(TradeRoutes(h)).
		Register(PaymentRoutes(h))
}
