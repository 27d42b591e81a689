package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

// The request was already decided; terminal states never change.
var ErrAlreadyReviewed = errors.New("request already reviewed")

type AdminRequestRepository interface {
	Create(ctx context.Context, req model.AdminRequest) (model.AdminRequest, error)
	FindByID(ctx context.Context, id int64) (model.AdminRequest, error)
	// List returns requests newest-first, optionally filtered by a free-text
	// match against email or full name.
	List(ctx context.Context, q string) ([]model.AdminRequest, error)
	CountPending(ctx context.Context) (int64, error)
	// HasActivePendingOrApproved reports whether the email already has a
	// pending or approved request.
	HasActivePendingOrApproved(ctx context.Context, email string) (bool, error)
	// Review moves a pending request to a terminal status. It returns
	// ErrAlreadyReviewed when the row is no longer pending.
	Review(ctx context.Context, id int64, status model.RequestStatus, reviewerID int64, reviewedAt time.Time) error
}
