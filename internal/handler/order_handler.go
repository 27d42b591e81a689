package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/notify"
	"github.com/Solvent24/odette-market/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Checkout, order history and the order-update stream for the signed-in
// shopper.
type OrderHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	orderUC    *usecase.OrderUsecase
	hub        *notify.Hub
}

// DI
func NewOrderHandler(checkoutUC *usecase.CheckoutUsecase, orderUC *usecase.OrderUsecase, hub *notify.Hub) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC, orderUC: orderUC, hub: hub}
}

type checkoutRequest struct {
	Shipping       model.ShippingAddress `json:"shipping_address"`
	IdempotencyKey string                `json:"idempotency_key"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
	g.GET("", h.list)
	g.GET("/stream", h.stream)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// The header form wins when both are sent.
	if v := c.Request().Header.Get("Idempotency-Key"); v != "" {
		req.IdempotencyKey = v
	}

	out, err := h.checkoutUC.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Shipping:       req.Shipping,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.orderUC.ListMyOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetMyOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// stream pushes order status changes for the signed-in user as SSE until
// the client disconnects.
func (h *OrderHandler) stream(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	events, cancel := h.hub.Subscribe(userID)
	defer cancel()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				return nil
			}

			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: order_update\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
