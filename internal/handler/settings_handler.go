package handler

import (
	"net/http"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/settings"

	"github.com/labstack/echo/v4"
)

// Site settings: the storefront reads them, admins edit them.
type SettingsHandler struct {
	store *settings.Store
}

// DI
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type updateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/settings", h.get)

	g := e.Group("/admin/settings")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.PUT("", h.update)
	g.POST("/reload", h.reload)
}

func (h *SettingsHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) update(c echo.Context) error {
	var req updateSettingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.store.Set(c.Request().Context(), req.Key, req.Value); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) reload(c echo.Context) error {
	if err := h.store.Load(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "reload failed"})
	}

	return c.JSON(http.StatusOK, h.store.Settings())
}
