package partner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/partner"
	"github.com/agro/backend/internal/domain/shared"
)

// SendInviteRequest represents a partnership invitation by username
type SendInviteRequest struct {
	Username string `json:"username" binding:"required"`
}

// PartnerResponse represents one partnership link in API responses
type PartnerResponse struct {
	RequestID uuid.UUID `json:"request_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Lastname  string    `json:"lastname,omitempty"`
	Status    string    `json:"status"`
	Outgoing  bool      `json:"outgoing"`
	CreatedAt time.Time `json:"created_at"`
}

// Service manages partnership invitations between users
type Service struct {
	requestRepo partner.RequestRepository
	userRepo    identity.UserRepository
}

// NewService creates a partner service
func NewService(requestRepo partner.RequestRepository, userRepo identity.UserRepository) *Service {
	return &Service{requestRepo: requestRepo, userRepo: userRepo}
}

// SendInvite invites another user by username
func (s *Service) SendInvite(ctx context.Context, senderID uuid.UUID, req SendInviteRequest) (*PartnerResponse, error) {
	receiver, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "No user with that username")
	}

	if _, err := s.requestRepo.FindBetween(ctx, senderID, receiver.ID); err == nil {
		return nil, shared.NewDomainError("INVITATION_EXISTS", "A request between these users already exists")
	}

	request, err := partner.NewRequest(senderID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, request, senderID)
}

// Accept accepts a pending invitation. Only the receiver may accept.
func (s *Service) Accept(ctx context.Context, userID, requestID uuid.UUID) (*PartnerResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := request.Accept(userID); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, request, userID)
}

// Decline removes a pending invitation, or dissolves an accepted partnership.
// Either side may do it.
func (s *Service) Decline(ctx context.Context, userID, requestID uuid.UUID) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !request.Involves(userID) {
		return shared.ErrUnauthorized
	}
	return s.requestRepo.Delete(ctx, request.ID)
}

// List returns every partnership link of the user, pending and accepted
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]PartnerResponse, error) {
	requests, err := s.requestRepo.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]PartnerResponse, 0, len(requests))
	for i := range requests {
		resp, err := s.toResponse(ctx, &requests[i], userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *Service) toResponse(ctx context.Context, request *partner.Request, viewerID uuid.UUID) (*PartnerResponse, error) {
	otherID := request.OtherSide(viewerID)
	other, err := s.userRepo.FindByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	return &PartnerResponse{
		RequestID: request.ID,
		UserID:    other.ID,
		Username:  other.Username,
		Name:      other.Name,
		Lastname:  other.Lastname,
		Status:    string(request.Status),
		Outgoing:  request.SenderID == viewerID,
		CreatedAt: request.CreatedAt,
	}, nil
}
