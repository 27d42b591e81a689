package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Admin onboarding: public registration plus the review endpoints for
// existing admins.
type AdminRequestHandler struct {
	uc *usecase.AdminRequestUsecase
}

// DI
func NewAdminRequestHandler(uc *usecase.AdminRequestUsecase) *AdminRequestHandler {
	return &AdminRequestHandler{uc: uc}
}

type adminRegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Reason          string `json:"reason"`
}

func (h *AdminRequestHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/admin/register", h.register)

	g := e.Group("/admin/requests")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.GET("/pending-count", h.pendingCount)
	g.POST("/:id/approve", h.approve)
	g.POST("/:id/reject", h.reject)
}

func (h *AdminRequestHandler) register(c echo.Context) error {
	var req adminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.AdminRegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
		Reason:          req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminRequestHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminRequestHandler) pendingCount(c echo.Context) error {
	count, err := h.uc.PendingCount(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"pending": count})
}

func (h *AdminRequestHandler) approve(c echo.Context) error {
	return h.review(c, h.uc.Approve)
}

func (h *AdminRequestHandler) reject(c echo.Context) error {
	return h.review(c, h.uc.Reject)
}

func (h *AdminRequestHandler) review(c echo.Context, decide func(ctx context.Context, reviewerID int64, requestID int64) error) error {
	reviewerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := decide(c.Request().Context(), reviewerID, requestID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
