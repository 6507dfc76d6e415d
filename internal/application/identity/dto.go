package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/identity"
)

// RegistrationCompleteMessage is returned after a successful sign-up
const RegistrationCompleteMessage = "Registration complete. You can now log in."

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	IsSeller        bool
}

// RegisterResult contains the created account
type RegisterResult struct {
	User    UserInfo
	Message string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains the public account fields
type UserInfo struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	IsSeller           bool      `json:"is_seller"`
	IsApproved         bool      `json:"is_approved"`
	IsStaff            bool      `json:"is_staff"`
	HasBusinessLicense bool      `json:"has_business_license"`
}

// ToUserInfo converts a domain user
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		IsSeller:           u.IsSeller,
		IsApproved:         u.IsApproved,
		IsStaff:            u.IsStaff,
		HasBusinessLicense: u.HasBusinessLicense(),
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string    // JWT ID of the access token to revoke
	ExpiresAt time.Time // expiry of that token; bounds the blacklist entry
}

// ProfileResult is the profile page of an account.
// Ranking is set for sellers only.
type ProfileResult struct {
	User    UserInfo
	Ranking *int
}

// SubmitLicenseInput carries an uploaded business license document
type SubmitLicenseInput struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
}

// LicenseResult describes a stored business license
type LicenseResult struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
