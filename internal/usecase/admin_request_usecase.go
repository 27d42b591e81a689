package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Solvent24/odette-market/internal/domain/model"
	repo "github.com/Solvent24/odette-market/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminRequestUsecase runs the admin onboarding workflow:
// registration creates a pending request, an existing admin approves or
// rejects it exactly once, approval grants the admin role.
type AdminRequestUsecase struct {
	tx        repo.TransactionManager
	requests  repo.AdminRequestRepository
	validator AuthValidator
}

func NewAdminRequestUsecase(
	tx repo.TransactionManager,
	requests repo.AdminRequestRepository,
	validator AuthValidator,
) *AdminRequestUsecase {
	return &AdminRequestUsecase{
		tx:        tx,
		requests:  requests,
		validator: validator,
	}
}

type AdminRegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Reason          string
}

// Register creates the account and its pending request. No token is issued:
// the applicant stays signed out until a reviewer approves.
func (u *AdminRequestUsecase) Register(ctx context.Context, in AdminRegisterInput) (model.AdminRequest, error) {
	email := strings.TrimSpace(in.Email)

	if err := u.validator.ValidateAdminRegister(ctx, email, in.Password, in.ConfirmPassword); err != nil {
		return model.AdminRequest{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// An email that is already a waiting or granted admin cannot apply again.
	taken, err := u.requests.HasActivePendingOrApproved(ctx, email)
	if err != nil {
		return model.AdminRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if taken {
		return model.AdminRequest{}, NewHTTPError(http.StatusConflict, "an admin request for this email already exists")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AdminRequest{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// User, role, and request land together or not at all; a half-created
	// account would block the email from ever re-applying.
	var req model.AdminRequest
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user := &model.User{
			Email:        email,
			PasswordHash: string(pwHash),
			FullName:     in.FullName,
			IsActive:     true,
		}

		if err := r.Users().Create(ctx, user); err != nil {
			return NewHTTPError(http.StatusConflict, "email already used")
		}

		if err := r.UserRoles().Create(ctx, &model.UserRole{UserID: user.ID, Role: model.RoleUser}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created, err := r.AdminRequests().Create(ctx, model.AdminRequest{
			UserID:    user.ID,
			Email:     email,
			FullName:  in.FullName,
			Reason:    in.Reason,
			Status:    model.RequestStatusPending,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		req = created
		return nil
	})
	if err != nil {
		return model.AdminRequest{}, err
	}

	return req, nil
}

// Approve flips the request to approved and grants the admin role in the
// same transaction; either both land or neither does.
func (u *AdminRequestUsecase) Approve(ctx context.Context, reviewerID int64, requestID int64) error {
	return u.review(ctx, reviewerID, requestID, model.RequestStatusApproved)
}

// Reject records the decision and leaves the role untouched.
func (u *AdminRequestUsecase) Reject(ctx context.Context, reviewerID int64, requestID int64) error {
	return u.review(ctx, reviewerID, requestID, model.RequestStatusRejected)
}

func (u *AdminRequestUsecase) review(ctx context.Context, reviewerID int64, requestID int64, status model.RequestStatus) error {
	if reviewerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if requestID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		req, err := r.AdminRequests().FindByID(ctx, requestID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AdminRequests().Review(ctx, requestID, status, reviewerID, time.Now()); err != nil {
			if errors.Is(err, repo.ErrAlreadyReviewed) {
				return NewHTTPError(http.StatusConflict, "request already reviewed")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if status != model.RequestStatusApproved {
			return nil
		}

		// The role row exists since signup; a missing row is a data fault
		// and rolls the decision back.
		if err := r.UserRoles().UpdateRoleByUserID(ctx, req.UserID, model.RoleAdmin); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusConflict, "user role record missing")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// List returns all requests newest-first, optionally filtered by a
// free-text match on email or full name.
func (u *AdminRequestUsecase) List(ctx context.Context, q string) ([]model.AdminRequest, error) {
	items, err := u.requests.List(ctx, strings.TrimSpace(q))
	if err != nil {
		return []model.AdminRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AdminRequestUsecase) PendingCount(ctx context.Context) (int64, error) {
	count, err := u.requests.CountPending(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return count, nil
}
