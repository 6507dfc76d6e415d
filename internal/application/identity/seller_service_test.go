package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLicenseStorage is a mock implementation of LicenseStorage
type MockLicenseStorage struct {
	mock.Mock
}

func (m *MockLicenseStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockLicenseStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockLicenseStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newSellerService(userRepo *MockUserRepository, storage *MockLicenseStorage) *SellerService {
	return NewSellerService(userRepo, storage, DefaultLicensePolicy(), zap.NewNop())
}

func TestSellerService_SubmitBusinessLicense_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockLicenseStorage)
	seller := createTestUser(t, true)
	data := []byte("%PDF-1.4 license")
	prefix := "licenses/" + seller.ID.String() + "/"
	keyMatcher := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, ".pdf")
	})

	userRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
	userRepo.On("Update", mock.Anything, seller).Return(nil)
	storage.On("Upload", mock.Anything, keyMatcher, data, "application/pdf").Return(nil)
	storage.On("GenerateDownloadURL", mock.Anything, keyMatcher, 15*time.Minute).
		Return("https://storage.example.com/license", time.Now().Add(15*time.Minute), nil)

	service := newSellerService(userRepo, storage)

	result, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
		UserID:      seller.ID,
		FileName:    "Business.PDF",
		ContentType: "application/pdf",
		Data:        data,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.StorageKey, prefix))
	assert.Equal(t, result.StorageKey, seller.BusinessLicense)
	assert.Equal(t, "https://storage.example.com/license", result.DownloadURL)
	storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestSellerService_SubmitBusinessLicense_ReplacesPrevious(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockLicenseStorage)
	seller := createTestUser(t, true)
	oldKey := "licenses/" + seller.ID.String() + "/old.png"
	require.NoError(t, seller.SubmitBusinessLicense(oldKey))

	userRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
	userRepo.On("Update", mock.Anything, seller).Return(nil)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("DeleteObject", mock.Anything, oldKey).Return(nil)
	storage.On("GenerateDownloadURL", mock.Anything, mock.Anything, mock.Anything).
		Return("https://storage.example.com/new", time.Now(), nil)

	service := newSellerService(userRepo, storage)

	result, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
		UserID:   seller.ID,
		FileName: "new.jpg",
		Data:     []byte{0xff, 0xd8},
	})

	require.NoError(t, err)
	assert.NotEqual(t, oldKey, result.StorageKey)
	storage.AssertCalled(t, "DeleteObject", mock.Anything, oldKey)
}

func TestSellerService_SubmitBusinessLicense_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		code     string
	}{
		{name: "empty file", fileName: "a.pdf", data: nil, code: "INVALID_FILE"},
		{name: "disallowed extension", fileName: "a.exe", data: []byte("x"), code: "INVALID_FILE_TYPE"},
		{name: "no extension", fileName: "license", data: []byte("x"), code: "INVALID_FILE_TYPE"},
		{name: "too large", fileName: "a.pdf", data: make([]byte, 5<<20+1), code: "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			storage := new(MockLicenseStorage)
			seller := createTestUser(t, true)
			userRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)

			service := newSellerService(userRepo, storage)

			_, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
				UserID:   seller.ID,
				FileName: tt.fileName,
				Data:     tt.data,
			})

			requireDomainCode(t, err, tt.code)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSellerService_SubmitBusinessLicense_BuyerRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockLicenseStorage)
	buyer := createTestUser(t, false)
	userRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)

	service := newSellerService(userRepo, storage)

	_, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
		UserID:   buyer.ID,
		FileName: "a.pdf",
		Data:     []byte("x"),
	})

	assert.ErrorIs(t, err, shared.ErrSellerRequired)
}

func TestSellerService_SubmitBusinessLicense_UpdateFailureRemovesUpload(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockLicenseStorage)
	seller := createTestUser(t, true)

	var uploadedKey string
	userRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
	userRepo.On("Update", mock.Anything, seller).Return(errors.New("db down"))
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { uploadedKey = args.String(1) }).
		Return(nil)
	storage.On("DeleteObject", mock.Anything, mock.Anything).Return(nil)

	service := newSellerService(userRepo, storage)

	_, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
		UserID:   seller.ID,
		FileName: "a.png",
		Data:     []byte("x"),
	})

	require.Error(t, err)
	storage.AssertCalled(t, "DeleteObject", mock.Anything, uploadedKey)
}

func TestSellerService_SubmitBusinessLicense_StorageFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	storage := new(MockLicenseStorage)
	seller := createTestUser(t, true)

	userRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("s3 down"))

	service := newSellerService(userRepo, storage)

	_, err := service.SubmitBusinessLicense(context.Background(), SubmitLicenseInput{
		UserID:   seller.ID,
		FileName: "a.pdf",
		Data:     []byte("x"),
	})

	requireDomainCode(t, err, "STORAGE_ERROR")
	assert.Empty(t, seller.BusinessLicense)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSellerService_GetBusinessLicense(t *testing.T) {
	ctx := context.Background()

	t.Run("returns download url", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		storage := new(MockLicenseStorage)
		seller := createTestUser(t, true)
		require.NoError(t, seller.SubmitBusinessLicense("licenses/x/doc.pdf"))

		userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
		storage.On("GenerateDownloadURL", ctx, "licenses/x/doc.pdf", 15*time.Minute).
			Return("https://storage.example.com/doc", time.Now(), nil)

		result, err := newSellerService(userRepo, storage).GetBusinessLicense(ctx, seller.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/doc", result.DownloadURL)
	})

	t.Run("no license submitted", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		seller := createTestUser(t, true)
		userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)

		_, err := newSellerService(userRepo, new(MockLicenseStorage)).GetBusinessLicense(ctx, seller.ID)
		requireDomainCode(t, err, "NOT_FOUND")
	})
}

func TestSellerService_ApproveSeller(t *testing.T) {
	ctx := context.Background()

	t.Run("approves seller and publishes event", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		publisher := new(MockEventPublisher)
		seller := createTestUser(t, true)

		userRepo.On("FindByID", ctx, seller.ID).Return(seller, nil)
		userRepo.On("Update", ctx, seller).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == identity.EventTypeSellerApproved
		})).Return(nil)

		service := newSellerService(userRepo, new(MockLicenseStorage))
		service.SetEventPublisher(publisher)

		info, err := service.ApproveSeller(ctx, seller.ID)
		require.NoError(t, err)
		assert.True(t, info.IsApproved)
		publisher.AssertExpectations(t)
	})

	t.Run("buyer cannot be approved", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		buyer := createTestUser(t, false)
		userRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)

		_, err := newSellerService(userRepo, new(MockLicenseStorage)).ApproveSeller(ctx, buyer.ID)
		assert.ErrorIs(t, err, shared.ErrSellerRequired)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown seller", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		id := uuid.New()
		userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := newSellerService(userRepo, new(MockLicenseStorage)).ApproveSeller(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
