package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/auth"
	"github.com/agro/backend/internal/infrastructure/config"
)

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type memRefreshTokenRepo struct {
	tokens map[uuid.UUID]*identity.RefreshToken
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{tokens: make(map[uuid.UUID]*identity.RefreshToken)}
}

func (r *memRefreshTokenRepo) FindByToken(_ context.Context, token string) (*identity.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRefreshTokenRepo) Save(_ context.Context, t *identity.RefreshToken) error {
	r.tokens[t.ID] = t
	return nil
}

func (r *memRefreshTokenRepo) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *memRefreshTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tokens, id)
	return nil
}

func newAuthFixture() (*AuthService, *memUserRepo, *memRefreshTokenRepo) {
	userRepo := newMemUserRepo()
	tokenRepo := newMemRefreshTokenRepo()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-test-secret-test-secret",
		AccessTokenExpiration: time.Minute,
		Issuer:                "agro-test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService, time.Hour, nil), userRepo, tokenRepo
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and issues tokens", func(t *testing.T) {
		service, userRepo, tokenRepo := newAuthFixture()

		resp, err := service.Register(ctx, RegisterRequest{
			Email:    "juan@estancia.com",
			Username: "juan",
			Password: "secret-password",
			Name:     "Juan",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "juan", resp.User.Username)
		assert.Len(t, userRepo.users, 1)
		assert.Len(t, tokenRepo.tokens, 1)
	})

	t.Run("rejects duplicate email and username", func(t *testing.T) {
		service, _, _ := newAuthFixture()
		_, err := service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "juan", Password: "secret-password"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "pedro", Password: "secret-password"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)

		_, err = service.Register(ctx, RegisterRequest{Email: "c@d.com", Username: "juan", Password: "secret-password"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service, _, _ := newAuthFixture()
		_, err := service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "juan", Password: "short"})
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newAuthFixture()
	_, err := service.Register(ctx, RegisterRequest{Email: "juan@estancia.com", Username: "juan", Password: "secret-password"})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		resp, err := service.Login(ctx, LoginRequest{Identifier: "juan", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := service.Login(ctx, LoginRequest{Identifier: "juan@estancia.com", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password and unknown user map to the same error", func(t *testing.T) {
		var domainErr *shared.DomainError
		_, err := service.Login(ctx, LoginRequest{Identifier: "juan", Password: "wrong-password"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)

		_, err = service.Login(ctx, LoginRequest{Identifier: "nobody", Password: "whatever-pass"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		service, _, tokenRepo := newAuthFixture()
		reg, err := service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "juan", Password: "secret-password"})
		require.NoError(t, err)

		refreshed, err := service.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

		// the used token is gone
		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
		require.Error(t, err)
		assert.Len(t, tokenRepo.tokens, 1)
	})

	t.Run("expired token is rejected and removed", func(t *testing.T) {
		service, userRepo, tokenRepo := newAuthFixture()
		user, err := identity.NewUser("a@b.com", "juan", "secret-password")
		require.NoError(t, err)
		require.NoError(t, userRepo.Save(ctx, user))

		expired := identity.NewRefreshToken(user.ID, -time.Minute)
		require.NoError(t, tokenRepo.Save(ctx, expired))

		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: expired.Token})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXPIRED_REFRESH_TOKEN", domainErr.Code)
		assert.Empty(t, tokenRepo.tokens)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	service, _, tokenRepo := newAuthFixture()
	reg, err := service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "juan", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, reg.User.ID))
	assert.Empty(t, tokenRepo.tokens)
}

func TestAuthService_ProfileAndPassword(t *testing.T) {
	ctx := context.Background()
	service, _, tokenRepo := newAuthFixture()
	reg, err := service.Register(ctx, RegisterRequest{Email: "a@b.com", Username: "juan", Password: "secret-password"})
	require.NoError(t, err)
	userID := reg.User.ID

	t.Run("update profile", func(t *testing.T) {
		birth := time.Date(1988, 7, 2, 0, 0, 0, 0, time.UTC)
		resp, err := service.UpdateProfile(ctx, userID, UpdateProfileRequest{
			Name: "Juan", Lastname: "Pérez", BirthDate: &birth,
		})
		require.NoError(t, err)
		assert.Equal(t, "Pérez", resp.Lastname)
	})

	t.Run("change password revokes refresh tokens", func(t *testing.T) {
		err := service.ChangePassword(ctx, userID, ChangePasswordRequest{
			CurrentPassword: "secret-password",
			NewPassword:     "even-more-secret",
		})
		require.NoError(t, err)
		assert.Empty(t, tokenRepo.tokens)

		_, err = service.Login(ctx, LoginRequest{Identifier: "juan", Password: "even-more-secret"})
		require.NoError(t, err)
	})

	t.Run("change password requires the current one", func(t *testing.T) {
		err := service.ChangePassword(ctx, userID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "whatever-pass",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
