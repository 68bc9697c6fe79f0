package partner

import (
	"context"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a partner invitation. Declined
// requests are deleted rather than kept, so the pair can be re-invited.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
)

// Request is a partnership invitation between two users.
type Request struct {
	shared.BaseAggregateRoot
	SenderID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_partner_pair,priority:1"`
	ReceiverID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_partner_pair,priority:2"`
	Status     RequestStatus `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (Request) TableName() string {
	return "partner_requests"
}

// NewRequest creates a pending invitation from sender to receiver
func NewRequest(senderID, receiverID uuid.UUID) (*Request, error) {
	if senderID == receiverID {
		return nil, shared.NewDomainError("INVALID_INVITATION", "You cannot invite yourself")
	}
	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SenderID:          senderID,
		ReceiverID:        receiverID,
		Status:            StatusPending,
	}, nil
}

// Accept marks the invitation as accepted. Only the receiver may accept.
func (r *Request) Accept(userID uuid.UUID) error {
	if r.ReceiverID != userID {
		return shared.ErrUnauthorized
	}
	r.Status = StatusAccepted
	r.IncrementVersion()
	return nil
}

// Involves reports whether the given user is either side of the request
func (r *Request) Involves(userID uuid.UUID) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// OtherSide returns the counterpart of the given user in this request
func (r *Request) OtherSide(userID uuid.UUID) uuid.UUID {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}

// RequestRepository persists partner requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	// FindBetween returns the request linking the two users in either
	// direction, or shared.ErrNotFound.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*Request, error)
	FindForUser(ctx context.Context, userID uuid.UUID) ([]Request, error)
	Save(ctx context.Context, request *Request) error
	Delete(ctx context.Context, id uuid.UUID) error
}
