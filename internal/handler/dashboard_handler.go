package handler

import (
	"net/http"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

// DI
func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.summary)
}

func (h *DashboardHandler) summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
