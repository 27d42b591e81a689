package handler

import (
	"net/http"
	"strconv"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

type addWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/wishlist")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:productID", h.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req addWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Remove(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
