package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/partner"
	"github.com/agro/backend/internal/domain/shared"
)

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
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

type memRequestRepo struct {
	requests map[uuid.UUID]*partner.Request
}

func (r *memRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return req, nil
}

func (r *memRequestRepo) FindBetween(_ context.Context, a, b uuid.UUID) (*partner.Request, error) {
	for _, req := range r.requests {
		if (req.SenderID == a && req.ReceiverID == b) || (req.SenderID == b && req.ReceiverID == a) {
			return req, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRequestRepo) FindForUser(_ context.Context, userID uuid.UUID) ([]partner.Request, error) {
	var out []partner.Request
	for _, req := range r.requests {
		if req.Involves(userID) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *memRequestRepo) Save(_ context.Context, req *partner.Request) error {
	r.requests[req.ID] = req
	return nil
}

func (r *memRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.requests, id)
	return nil
}

func newFixture(t *testing.T) (*Service, *identity.User, *identity.User, *memRequestRepo) {
	t.Helper()
	juan, err := identity.NewUser("juan@estancia.com", "juan", "secret-password")
	require.NoError(t, err)
	maria, err := identity.NewUser("maria@estancia.com", "maria", "secret-password")
	require.NoError(t, err)

	userRepo := &memUserRepo{users: map[uuid.UUID]*identity.User{juan.ID: juan, maria.ID: maria}}
	requestRepo := &memRequestRepo{requests: make(map[uuid.UUID]*partner.Request)}
	return NewService(requestRepo, userRepo), juan, maria, requestRepo
}

func TestService_SendInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		service, juan, _, _ := newFixture(t)

		resp, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "maria", resp.Username)
		assert.True(t, resp.Outgoing)
	})

	t.Run("unknown username", func(t *testing.T) {
		service, juan, _, _ := newFixture(t)
		_, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "nobody"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
	})

	t.Run("self invitation is rejected", func(t *testing.T) {
		service, juan, _, _ := newFixture(t)
		_, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "juan"})
		require.Error(t, err)
	})

	t.Run("duplicate pair in either direction is rejected", func(t *testing.T) {
		service, juan, maria, _ := newFixture(t)
		_, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)

		var domainErr *shared.DomainError
		_, err = service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVITATION_EXISTS", domainErr.Code)

		_, err = service.SendInvite(ctx, maria.ID, SendInviteRequest{Username: "juan"})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVITATION_EXISTS", domainErr.Code)
	})
}

func TestService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("receiver accepts", func(t *testing.T) {
		service, juan, maria, _ := newFixture(t)
		sent, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)

		resp, err := service.Accept(ctx, maria.ID, sent.RequestID)
		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED", resp.Status)
		assert.Equal(t, "juan", resp.Username)
		assert.False(t, resp.Outgoing)
	})

	t.Run("sender cannot accept their own invite", func(t *testing.T) {
		service, juan, _, _ := newFixture(t)
		sent, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)

		_, err = service.Accept(ctx, juan.ID, sent.RequestID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestService_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("either side can remove the link", func(t *testing.T) {
		service, juan, maria, requestRepo := newFixture(t)
		sent, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)

		require.NoError(t, service.Decline(ctx, maria.ID, sent.RequestID))
		assert.Empty(t, requestRepo.requests)

		// the pair can be re-invited afterwards
		_, err = service.SendInvite(ctx, maria.ID, SendInviteRequest{Username: "juan"})
		require.NoError(t, err)
	})

	t.Run("outsider cannot decline", func(t *testing.T) {
		service, juan, _, _ := newFixture(t)
		sent, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
		require.NoError(t, err)

		err = service.Decline(ctx, uuid.New(), sent.RequestID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service, juan, maria, _ := newFixture(t)
	_, err := service.SendInvite(ctx, juan.ID, SendInviteRequest{Username: "maria"})
	require.NoError(t, err)

	mine, err := service.List(ctx, juan.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "maria", mine[0].Username)
	assert.True(t, mine[0].Outgoing)

	theirs, err := service.List(ctx, maria.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "juan", theirs[0].Username)
	assert.False(t, theirs[0].Outgoing)
}
