package handler

import (
	"net/http"

	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.list)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
