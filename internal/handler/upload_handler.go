package handler

import (
	"net/http"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/middleware"
	"github.com/Solvent24/odette-market/internal/storage"

	"github.com/labstack/echo/v4"
)

// UploadHandler receives product and category images from the back office.
type UploadHandler struct {
	images storage.ImageStore
}

// DI
func NewUploadHandler(images storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

func (h *UploadHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/uploads")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.upload)
}

func (h *UploadHandler) upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read image"})
	}
	defer src.Close()

	url, err := h.images.Save(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
