package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/greenauction/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_@+\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// User is a marketplace account. Any user can buy; sellers additionally
// list products once a staff member has approved them.
type User struct {
	shared.BaseAggregateRoot
	Username        string
	Email           string
	PasswordHash    string
	IsSeller        bool
	IsApproved      bool
	IsStaff         bool
	BusinessLicense string
	LastLoginAt     *time.Time
}

// NewUser creates a new user with a hashed password
func NewUser(username, email, password string, isSeller bool) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		IsSeller:          isSeller,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Approve marks a seller as approved to manage products
func (u *User) Approve() error {
	if !u.IsSeller {
		return shared.ErrSellerRequired
	}
	if u.IsApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Seller is already approved")
	}

	u.IsApproved = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewSellerApprovedEvent(u))

	return nil
}

// SubmitBusinessLicense records the storage key of an uploaded license document
func (u *User) SubmitBusinessLicense(storageKey string) error {
	if !u.IsSeller {
		return shared.ErrSellerRequired
	}
	if strings.TrimSpace(storageKey) == "" {
		return shared.NewDomainError("INVALID_LICENSE", "License storage key cannot be empty")
	}
	if len(storageKey) > 255 {
		return shared.NewDomainError("INVALID_LICENSE", "License storage key cannot exceed 255 characters")
	}

	u.BusinessLicense = storageKey
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewBusinessLicenseSubmittedEvent(u))

	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// CanManageProducts reports whether the user may create, edit or delete products
func (u *User) CanManageProducts() bool {
	return u.IsSeller && u.IsApproved
}

// HasBusinessLicense reports whether a license document has been submitted
func (u *User) HasBusinessLicense() bool {
	return u.BusinessLicense != ""
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 150 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 150 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers and @/./+/-/_")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	if !letterRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
