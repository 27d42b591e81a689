package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test_secret", GoEnv: "dev", Port: "8080"}
}

func newAuthHarness() (*usecase.AuthUsecase, *UserRepoMock, *UserRoleRepoMock, *RefreshTokenRepoMock) {
	users := new(UserRepoMock)
	roles := new(UserRoleRepoMock)
	rt := new(RefreshTokenRepoMock)
	tx := &TxManagerMock{Repos: &TxReposStub{users: users, userRoles: roles}}
	tx.On("WithinTx", mock.Anything).Return(nil)
	uc := usecase.NewAuthUsecase(testConfig(), tx, users, roles, rt, okAuthValidator{})
	return uc, users, roles, rt
}

func hashedUser(id int64, email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.User{ID: id, Email: email, PasswordHash: string(hash), IsActive: true}
}

func TestRegister_CreatesUserAndRoleRow(t *testing.T) {
	uc, users, roles, _ := newAuthHarness()

	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)
	roles.On("Create", mock.Anything, mock.MatchedBy(func(r *model.UserRole) bool {
		return r.UserID == 5 && r.Role == model.RoleUser
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email:    "shopper@example.com",
		Password: "secret123",
		FullName: "Shopper",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", out.Role)
	roles.AssertExpectations(t)
}

func TestRegister_RoleInsertFailureAbortsRegistration(t *testing.T) {
	uc, users, roles, _ := newAuthHarness()

	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)
	roles.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	// Both writes share one transaction, so the user insert rolls back
	// with the failed role insert.
	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email:    "shopper@example.com",
		Password: "secret123",
		FullName: "Shopper",
	})

	assert.ErrorIs(t, err, usecase.ErrInternal)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	uc, users, _, rt := newAuthHarness()

	users.On("FindByEmail", mock.Anything, "shopper@example.com").
		Return(hashedUser(5, "shopper@example.com", "right-password"), nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "shopper@example.com",
		Password: "wrong-password",
	}, "ua")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	rt.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_IssuesAccessAndRefreshTokens(t *testing.T) {
	uc, users, roles, rt := newAuthHarness()

	user := hashedUser(5, "shopper@example.com", "secret123")
	users.On("FindByEmail", mock.Anything, "shopper@example.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	roles.On("FindByUserID", mock.Anything, int64(5)).Return(model.UserRole{UserID: 5, Role: model.RoleUser}, nil)
	rt.On("Create", mock.Anything, mock.MatchedBy(func(tok *model.RefreshToken) bool {
		return tok.UserID == 5 && tok.TokenHash != "" && tok.ExpiresAt.After(time.Now())
	})).Return(nil)

	out, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "shopper@example.com",
		Password: "secret123",
	}, "ua")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Body.Token.AccessToken)
	assert.NotEmpty(t, out.RefreshTokenPlain)
	rt.AssertExpectations(t)
}

func TestLogin_InactiveUserIsForbidden(t *testing.T) {
	uc, users, _, _ := newAuthHarness()

	user := hashedUser(5, "shopper@example.com", "secret123")
	user.IsActive = false
	users.On("FindByEmail", mock.Anything, "shopper@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "shopper@example.com",
		Password: "secret123",
	}, "ua")

	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestRefresh_ReplayDropsEverySession(t *testing.T) {
	uc, _, _, rt := newAuthHarness()

	used := time.Now().Add(-time.Minute)
	rt.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "tok-1",
		UserID:    5,
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}, nil)
	rt.On("DeleteAllByUserID", mock.Anything, int64(5)).Return(nil)

	_, err := uc.Refresh(context.Background(), "replayed-token", "ua")

	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)
	rt.AssertExpectations(t)
}

func TestRefresh_ExpiredTokenIsUnauthorizedAndDeleted(t *testing.T) {
	uc, _, _, rt := newAuthHarness()

	rt.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "tok-2",
		UserID:    5,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	rt.On("DeleteByID", mock.Anything, "tok-2").Return(nil)

	_, err := uc.Refresh(context.Background(), "stale-token", "ua")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	rt.AssertExpectations(t)
}

func TestRefresh_RotatesToken(t *testing.T) {
	uc, users, roles, rt := newAuthHarness()

	rt.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "tok-3",
		UserID:    5,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("FindByID", mock.Anything, int64(5)).
		Return(&model.User{ID: 5, IsActive: true}, nil)
	roles.On("FindByUserID", mock.Anything, int64(5)).
		Return(model.UserRole{UserID: 5, Role: model.RoleUser}, nil)
	rt.On("MarkUsed", mock.Anything, "tok-3", mock.Anything).Return(nil)
	rt.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Refresh(context.Background(), "valid-token", "ua")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Body.AccessToken)
	assert.NotEmpty(t, out.RefreshTokenPlain)
	assert.NotEqual(t, "valid-token", out.RefreshTokenPlain)
	rt.AssertExpectations(t)
}
