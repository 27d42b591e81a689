package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/Solvent24/odette-market/internal/repository"
	"github.com/Solvent24/odette-market/internal/usecase"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct {
	users repository.UserRepository
}

func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	if len(password) < 6 {
		return ErrInvalidInput
	}

	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return ErrEmailAlreadyUsed
	}

	return nil
}

func (v *authValidator) ValidateAdminRegister(ctx context.Context, email, password, confirm string) error {
	// Confirmation is checked before anything touches the network.
	if password != confirm {
		return ErrPasswordMismatch
	}
	return v.ValidateRegister(ctx, email, password)
}

func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}

	return nil
}
