package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
)

// Review constraints
const (
	MaxReviewContentLength = 30
	MinReviewRating        = 1
	MaxReviewRating        = 5
)

// Review is a short rating left by a buyer on a product
type Review struct {
	shared.BaseEntity
	ProductID uuid.UUID
	UserID    uuid.UUID
	Content   string
	Rating    int
}

// NewReview creates a review after validating its content and rating
func NewReview(productID, userID uuid.UUID, content string, rating int) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := ValidateReview(content, rating); err != nil {
		return nil, err
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Content:    content,
		Rating:     rating,
	}, nil
}

// Edit replaces the content and rating
func (r *Review) Edit(content string, rating int) error {
	if err := ValidateReview(content, rating); err != nil {
		return err
	}

	r.Content = content
	r.Rating = rating
	r.UpdatedAt = time.Now()
	return nil
}

// IsWrittenBy reports whether the review belongs to the user
func (r *Review) IsWrittenBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// ValidateReview checks content length in characters and the rating range
func ValidateReview(content string, rating int) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Review content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxReviewContentLength {
		return shared.NewDomainError("INVALID_CONTENT", "Review content cannot exceed 30 characters")
	}
	if rating < MinReviewRating || rating > MaxReviewRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
