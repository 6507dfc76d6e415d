package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenauction/backend/internal/infrastructure/auth"
	"github.com/greenauction/backend/internal/interfaces/http/dto"
)

// RequireSeller lets through users registered as sellers, approved or not.
// Place it after RequireAuth.
func RequireSeller() gin.HandlerFunc {
	return requireRole(dto.ErrCodeSellerRequired, "Only sellers can perform this action",
		func(claims *auth.Claims) bool { return claims.IsSeller })
}

// RequireStaff lets through staff accounts only
func RequireStaff() gin.HandlerFunc {
	return requireRole(dto.ErrCodeStaffRequired, "Staff privileges required",
		func(claims *auth.Claims) bool { return claims.IsStaff })
}

func requireRole(code, message string, allowed func(*auth.Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		if !allowed(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
			return
		}
		c.Next()
	}
}
