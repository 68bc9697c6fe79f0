package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/identity"
)

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	Username  string     `json:"username" binding:"required,min=3"`
	Password  string     `json:"password" binding:"required,min=8"`
	Name      string     `json:"name"`
	Lastname  string     `json:"lastname"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
}

// LoginRequest represents a login request. Identifier is an email or username.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a profile edit
type UpdateProfileRequest struct {
	Name      string     `json:"name"`
	Lastname  string     `json:"lastname"`
	Photo     string     `json:"photo"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Lastname  string     `json:"lastname,omitempty"`
	Photo     string     `json:"photo,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TokenResponse carries a fresh token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

// ToUserResponse maps a user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Photo:     u.Photo,
		Gender:    u.Gender,
		BirthDate: u.BirthDate,
		CreatedAt: u.CreatedAt,
	}
}
