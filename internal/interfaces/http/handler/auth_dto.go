package handler

import (
	"time"

	identityapp "github.com/greenauction/backend/internal/application/identity"
)

// RegisterRequest represents a sign-up request
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Email           string `json:"email" binding:"required,email,max=254"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	IsSeller        bool   `json:"is_seller"`
}

// RegisterResponse is returned after sign-up
type RegisterResponse struct {
	User    identityapp.UserInfo `json:"user"`
	Message string               `json:"message"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token TokenResponse        `json:"token"`
	User  identityapp.UserInfo `json:"user"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is the account page
type ProfileResponse struct {
	identityapp.UserInfo
	Ranking *int `json:"ranking,omitempty"`
}
