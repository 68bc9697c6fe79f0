package identity

import (
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account that owns fields, transactions and agenda entries.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	Name         string
	Lastname     string
	Photo        string
	Gender       string
	BirthDate    *time.Time `gorm:"type:date"`
	PasswordHash string     `gorm:"not null" json:"-"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, username, password string) (*User, error) {
	if email == "" || username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email and username are required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Username:          username,
		PasswordHash:      string(hash),
	}, nil
}

// UpdateProfile changes the user's personal data
func (u *User) UpdateProfile(name, lastname, photo, gender string, birthDate *time.Time) {
	u.Name = name
	u.Lastname = lastname
	u.Photo = photo
	u.Gender = gender
	u.BirthDate = birthDate
	u.IncrementVersion()
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.IncrementVersion()
	return nil
}

// RefreshToken is a persisted refresh credential bound to a user.
type RefreshToken struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshToken issues a fresh opaque token for the user
func NewRefreshToken(userID uuid.UUID, lifetime time.Duration) *RefreshToken {
	return &RefreshToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Token:      uuid.New().String(),
		ExpiresAt:  time.Now().Add(lifetime),
	}
}

// IsExpired reports whether the token is past its expiry
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
