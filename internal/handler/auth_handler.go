package handler

import (
	"net/http"
	"time"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		cookieSecure: cfg.GoEnv == "prod",
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
	e.POST("/auth/logout", h.logout)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/me", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.AuthRegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Login(c.Request().Context(), usecase.AuthLoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, userAgent)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain)
	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	plain := refreshCookieValue(c)

	out, err := h.uc.Refresh(c.Request().Context(), plain, c.Request().Header.Get("User-Agent"))
	if err != nil {
		h.clearRefreshCookie(c)
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain)
	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	plain := refreshCookieValue(c)
	_ = h.uc.Logout(c.Request().Context(), plain)

	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func refreshCookieValue(c echo.Context) string {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, plain string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plain,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func writeAuthError(c echo.Context, err error) error {
	switch err {
	case usecase.ErrUnauthorized:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case usecase.ErrForbidden:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case usecase.ErrConflict:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already used"})
	case usecase.ErrSecurityIncident:
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session revoked"})
	case usecase.ErrInternal:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	// Validator errors surface as 400 with their own message.
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
