package server

import (
	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Review       *handler.ReviewHandler
	Cart         *handler.CartHandler
	Wishlist     *handler.WishlistHandler
	Order        *handler.OrderHandler
	Settings     *handler.SettingsHandler
	AdminRequest *handler.AdminRequestHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminUser    *handler.AdminUserHandler
	Dashboard    *handler.DashboardHandler
	Upload       *handler.UploadHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	cors := echomw.DefaultCORSConfig
	if cfg.FEURL != "" {
		cors.AllowOrigins = []string{cfg.FEURL}
		cors.AllowCredentials = true
	}
	e.Use(echomw.CORSWithConfig(cors))

	// Uploaded images are served straight from disk.
	e.Static(cfg.StaticURL, cfg.UploadDir)

	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Review.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Wishlist.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Settings.RegisterRoutes(e, cfg)
	h.AdminRequest.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.Dashboard.RegisterRoutes(e, cfg)
	h.Upload.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, port string) error {
	addr := port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
