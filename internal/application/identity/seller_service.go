package identity

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LicenseStorage stores business license documents
type LicenseStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, key string) error
}

// LicensePolicy limits which documents are accepted
type LicensePolicy struct {
	MaxSize           int64
	AllowedExtensions []string
	URLExpiry         time.Duration
}

// DefaultLicensePolicy returns a 5 MiB limit on pdf and image uploads
func DefaultLicensePolicy() LicensePolicy {
	return LicensePolicy{
		MaxSize:           5 << 20,
		AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg"},
		URLExpiry:         15 * time.Minute,
	}
}

// SellerService handles seller onboarding: license upload and staff approval
type SellerService struct {
	userRepo       identity.UserRepository
	storage        LicenseStorage
	policy         LicensePolicy
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSellerService creates a new SellerService
func NewSellerService(
	userRepo identity.UserRepository,
	storage LicenseStorage,
	policy LicensePolicy,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		userRepo: userRepo,
		storage:  storage,
		policy:   policy,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SellerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SubmitBusinessLicense stores the document under licenses/<user-id>/ and
// records its key on the seller. A previously submitted document is removed.
func (s *SellerService) SubmitBusinessLicense(ctx context.Context, input SubmitLicenseInput) (*LicenseResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seller", "submit_license", telemetry.AttrUserID, input.UserID)
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsSeller {
		return nil, shared.ErrSellerRequired
	}

	ext, err := s.validateDocument(input)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("licenses/%s/%s%s", user.ID, uuid.New(), ext)
	if err := s.storage.Upload(ctx, key, input.Data, input.ContentType); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to upload business license",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store the license document")
	}

	previous := user.BusinessLicense
	if err := user.SubmitBusinessLicense(key); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		s.removeObject(ctx, key)
		return nil, err
	}
	if previous != "" && previous != key {
		s.removeObject(ctx, previous)
	}

	publishEvents(ctx, s.eventPublisher, s.logger, user)

	s.logger.Info("Business license submitted",
		zap.String("user_id", user.ID.String()),
		zap.String("storage_key", key),
		zap.Int("size", len(input.Data)))

	return s.licenseResult(ctx, key)
}

// GetBusinessLicense returns a time-limited download link for a seller's license
func (s *SellerService) GetBusinessLicense(ctx context.Context, sellerID uuid.UUID) (*LicenseResult, error) {
	user, err := s.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !user.HasBusinessLicense() {
		return nil, shared.NewDomainError("NOT_FOUND", "No business license submitted")
	}
	return s.licenseResult(ctx, user.BusinessLicense)
}

// ApproveSeller lets a seller manage products
func (s *SellerService) ApproveSeller(ctx context.Context, sellerID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := user.Approve(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, user)

	s.logger.Info("Seller approved",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	info := ToUserInfo(user)
	return &info, nil
}

func (s *SellerService) validateDocument(input SubmitLicenseInput) (string, error) {
	if len(input.Data) == 0 {
		return "", shared.NewDomainError("INVALID_FILE", "License file is empty")
	}
	if s.policy.MaxSize > 0 && int64(len(input.Data)) > s.policy.MaxSize {
		return "", shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("License file cannot exceed %d bytes", s.policy.MaxSize))
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	if ext == "" || !slices.Contains(s.policy.AllowedExtensions, ext) {
		return "", shared.NewDomainError("INVALID_FILE_TYPE",
			fmt.Sprintf("License file must be one of: %s", strings.Join(s.policy.AllowedExtensions, ", ")))
	}
	return ext, nil
}

func (s *SellerService) licenseResult(ctx context.Context, key string) (*LicenseResult, error) {
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.policy.URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate license url: %w", err)
	}
	return &LicenseResult{
		StorageKey:  key,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *SellerService) removeObject(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to remove license object",
			zap.String("storage_key", key),
			zap.Error(err))
	}
}
