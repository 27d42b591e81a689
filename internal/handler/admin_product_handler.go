package handler

import (
	"net/http"
	"strconv"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Back-office catalog management: products and categories.
type AdminProductHandler struct {
	productUC  *usecase.ProductUsecase
	categoryUC *usecase.CategoryUsecase
}

// DI
func NewAdminProductHandler(productUC *usecase.ProductUsecase, categoryUC *usecase.CategoryUsecase) *AdminProductHandler {
	return &AdminProductHandler{productUC: productUC, categoryUC: categoryUC}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/products", h.listProducts)
	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)

	g.POST("/categories", h.createCategory)
	g.PUT("/categories/:id", h.updateCategory)
	g.DELETE("/categories/:id", h.deleteCategory)
}

func (h *AdminProductHandler) listProducts(c echo.Context) error {
	out, err := h.productUC.ListAdmin(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.productUC.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.productUC.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) createCategory(c echo.Context) error {
	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.categoryUC.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) updateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.CategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.categoryUC.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) deleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.categoryUC.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
