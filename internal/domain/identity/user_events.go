package identity

import (
	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered           = "UserRegistered"
	EventTypeSellerApproved           = "SellerApproved"
	EventTypeBusinessLicenseSubmitted = "BusinessLicenseSubmitted"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IsSeller bool      `json:"is_seller"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
		IsSeller:        user.IsSeller,
	}
}

// SellerApprovedEvent is published when staff approve a seller
type SellerApprovedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewSellerApprovedEvent creates a new SellerApprovedEvent
func NewSellerApprovedEvent(user *User) *SellerApprovedEvent {
	return &SellerApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerApproved, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
	}
}

// BusinessLicenseSubmittedEvent is published when a seller uploads a license
type BusinessLicenseSubmittedEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	StorageKey string    `json:"storage_key"`
}

// NewBusinessLicenseSubmittedEvent creates a new BusinessLicenseSubmittedEvent
func NewBusinessLicenseSubmittedEvent(user *User) *BusinessLicenseSubmittedEvent {
	return &BusinessLicenseSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessLicenseSubmitted, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		StorageKey:      user.BusinessLicense,
	}
}
