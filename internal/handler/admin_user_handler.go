package handler

import (
	"net/http"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/users")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
