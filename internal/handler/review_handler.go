package handler

import (
	"net/http"
	"strconv"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Reading reviews is public; writing one needs a signed-in shopper.
func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products/:id/reviews", h.list)

	g := e.Group("/products/:id/reviews")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.create)
}

func (h *ReviewHandler) list(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, productID, usecase.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
