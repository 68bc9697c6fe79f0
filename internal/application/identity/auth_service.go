package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and token refresh. Access tokens
// are short-lived JWTs; refresh tokens are opaque and stored server side so
// they can be revoked.
type AuthService struct {
	userRepo         identity.UserRepository
	refreshTokenRepo identity.RefreshTokenRepository
	jwtService       *auth.JWTService
	refreshLifetime  time.Duration
	logger           *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	refreshTokenRepo identity.RefreshTokenRepository,
	jwtService *auth.JWTService,
	refreshLifetime time.Duration,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		refreshLifetime:  refreshLifetime,
		logger:           logger,
	}
}

// Register creates an account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "This username is already taken")
	}

	user, err := identity.NewUser(req.Email, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(req.Name, req.Lastname, "", req.Gender, req.BirthDate)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return s.issueTokens(ctx, user)
}

// Login authenticates by email or username
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		s.logger.Warn("login attempt for unknown identifier", zap.String("identifier", req.Identifier))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("username", user.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	}
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// token is rotated out.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REFRESH_TOKEN", "Refresh token is not recognized")
	}
	if stored.IsExpired() {
		if err := s.refreshTokenRepo.Delete(ctx, stored.ID); err != nil {
			s.logger.Warn("failed to delete expired refresh token", zap.Error(err))
		}
		return nil, shared.NewDomainError("EXPIRED_REFRESH_TOKEN", "Refresh token has expired")
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokenRepo.Delete(ctx, stored.ID); err != nil {
		s.logger.Warn("failed to rotate refresh token", zap.Error(err))
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.refreshTokenRepo.DeleteForUser(ctx, userID)
}

// CurrentUser returns the authenticated user's profile
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile edits the authenticated user's personal data
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(req.Name, req.Lastname, req.Photo, req.Gender, req.BirthDate)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and replaces it. All refresh
// tokens are revoked.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.refreshTokenRepo.DeleteForUser(ctx, userID)
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.FindByEmail(ctx, identifier)
	}
	return s.userRepo.FindByUsername(ctx, identifier)
}

func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refreshToken := identity.NewRefreshToken(user.ID, s.refreshLifetime)
	if err := s.refreshTokenRepo.Save(ctx, refreshToken); err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken.Token,
		TokenType:    "Bearer",
		User:         ToUserResponse(user),
	}, nil
}
