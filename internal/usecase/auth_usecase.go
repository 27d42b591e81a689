package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrSecurityIncident = errors.New("security incident")
	ErrConflict         = errors.New("conflict")
	ErrInternal         = errors.New("internal error")
)

const accessTokenTTL = 15 * time.Minute
const refreshTokenTTL = 30 * 24 * time.Hour

type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateAdminRegister(ctx context.Context, email, password, confirm string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type LoginResult struct {
	Body              AuthLoginResponse
	RefreshTokenPlain string
}

type RefreshResult struct {
	Body              JwtAccessTokenDTO
	RefreshTokenPlain string
}

type AuthUsecase struct {
	cfg       config.Config
	tx        repository.TransactionManager
	users     repository.UserRepository
	roles     repository.UserRoleRepository
	rtRepo    repository.RefreshTokenRepository
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	tx repository.TransactionManager,
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	rtRepo repository.RefreshTokenRepository,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		tx:        tx,
		users:     users,
		roles:     roles,
		rtRepo:    rtRepo,
		validator: validator,
	}
}

// Register creates a shopper account. The role row is created here so the
// admin grant path can always update it in place later.
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*UserDTO, error) {
	if err := u.validator.ValidateRegister(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(pwHash),
		FullName:     req.FullName,
		IsActive:     true,
	}

	// User and role row land together; a user without a role row would
	// trip the admin grant path later.
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return ErrConflict
		}
		return r.UserRoles().Create(ctx, &model.UserRole{UserID: user.ID, Role: model.RoleUser})
	})
	if errors.Is(err, ErrConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, ErrInternal
	}

	dto := toUserDTO(user, model.RoleUser)
	return &dto, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest, userAgent string) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	if !user.IsActive {
		return nil, ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	role := u.roleOf(ctx, user.ID)

	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	accessToken, expiresIn, err := u.issueAccessToken(user, role)
	if err != nil {
		return nil, ErrInternal
	}

	refreshPlain, refreshHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}

	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}

	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return nil, ErrInternal
	}

	return &LoginResult{
		Body: AuthLoginResponse{
			User: toUserDTO(user, role),
			Token: JwtAccessTokenDTO{
				AccessToken: accessToken,
				ExpiresIn:   expiresIn,
			},
		},
		RefreshTokenPlain: refreshPlain,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	dto := toUserDTO(user, u.roleOf(ctx, user.ID))
	return &dto, nil
}

func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenPlain string, userAgent string) (*RefreshResult, error) {
	if refreshTokenPlain == "" {
		return nil, ErrUnauthorized
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if err != nil || rt == nil {
		return nil, ErrUnauthorized
	}

	if rt.ExpiresAt.Before(time.Now()) {
		_ = u.rtRepo.DeleteByID(ctx, rt.ID)
		return nil, ErrUnauthorized
	}
	if rt.RevokedAt != nil {
		return nil, ErrUnauthorized
	}

	// A used token arriving again is a replay; drop every session.
	if rt.UsedAt != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, ErrSecurityIncident
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	if err := u.rtRepo.MarkUsed(ctx, rt.ID, time.Now()); err != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, ErrSecurityIncident
	}

	newPlain, newHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}

	newRT := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: newHash,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}

	if err := u.rtRepo.Create(ctx, newRT); err != nil {
		return nil, ErrInternal
	}

	accessToken, expiresIn, err := u.issueAccessToken(user, u.roleOf(ctx, user.ID))
	if err != nil {
		return nil, ErrInternal
	}

	return &RefreshResult{
		Body: JwtAccessTokenDTO{
			AccessToken: accessToken,
			ExpiresIn:   expiresIn,
		},
		RefreshTokenPlain: newPlain,
	}, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, refreshTokenPlain string) error {
	if refreshTokenPlain == "" {
		return ErrUnauthorized
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if err != nil || rt == nil {
		return ErrUnauthorized
	}

	if err := u.rtRepo.DeleteByID(ctx, rt.ID); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *AuthUsecase) roleOf(ctx context.Context, userID int64) model.Role {
	ur, err := u.roles.FindByUserID(ctx, userID)
	if err != nil {
		return model.RoleUser
	}
	return ur.Role
}

func (u *AuthUsecase) issueAccessToken(user *model.User, role model.Role) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

func newRandomTokenAndHash() (plain string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	plain = base64.RawURLEncoding.EncodeToString(b)

	sum := sha256.Sum256([]byte(plain))
	hash = base64.RawURLEncoding.EncodeToString(sum[:])

	return plain, hash, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func toUserDTO(u *model.User, role model.Role) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(role),
		IsActive: u.IsActive,
	}
}
