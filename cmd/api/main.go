package main

import (
	"context"
	"log"

	"github.com/Solvent24/odette-market/internal/config"
	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/handler"
	"github.com/Solvent24/odette-market/internal/infra/db"
	infraRepo "github.com/Solvent24/odette-market/internal/infra/repository"
	"github.com/Solvent24/odette-market/internal/notify"
	"github.com/Solvent24/odette-market/internal/pricing"
	"github.com/Solvent24/odette-market/internal/server"
	"github.com/Solvent24/odette-market/internal/settings"
	"github.com/Solvent24/odette-market/internal/storage"
	"github.com/Solvent24/odette-market/internal/usecase"
	"github.com/Solvent24/odette-market/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.RefreshToken{},
		&model.AdminRequest{},
		&model.Category{},
		&model.Product{},
		&model.ProductReview{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.SiteSetting{},
	); err != nil {
		log.Fatal(err)
	}

	// Repositories (GORM)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	roleRepo := infraRepo.NewUserRoleGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	requestRepo := infraRepo.NewAdminRequestGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	cartRepo := infraRepo.NewCartItemGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	settingRepo := infraRepo.NewSiteSettingGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// Site settings snapshot
	settingsStore := settings.NewStore(settingRepo)
	if err := settingsStore.Load(context.Background()); err != nil {
		log.Fatal(err)
	}

	// The pricing policy follows whatever currency the admins have set.
	policy := pricing.PolicyProviderFunc(func() pricing.Policy {
		return cfg.PolicyFor(settingsStore.Settings().Currency)
	})

	hub := notify.NewHub()

	images, err := storage.NewDiskImageStore(cfg.UploadDir, cfg.StaticURL)
	if err != nil {
		log.Fatal(err)
	}

	// Validators
	authValidator := validator.NewAuthValidator(userRepo)
	checkoutValidator := validator.NewCheckoutValidator()

	// Usecases
	authUC := usecase.NewAuthUsecase(cfg, txManager, userRepo, roleRepo, rtRepo, authValidator)
	requestUC := usecase.NewAdminRequestUsecase(txManager, requestRepo, authValidator)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, userRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, policy)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, policy, settingsStore, checkoutValidator)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, orderItemRepo, userRepo, hub)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, roleRepo)
	dashboardUC := usecase.NewDashboardUsecase(orderRepo, productRepo, categoryRepo, requestRepo)

	// Handlers
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, cfg),
		Product:      handler.NewProductHandler(productUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Review:       handler.NewReviewHandler(reviewUC),
		Cart:         handler.NewCartHandler(cartUC),
		Wishlist:     handler.NewWishlistHandler(wishlistUC),
		Order:        handler.NewOrderHandler(checkoutUC, orderUC, hub),
		Settings:     handler.NewSettingsHandler(settingsStore),
		AdminRequest: handler.NewAdminRequestHandler(requestUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(productUC, categoryUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
		Upload:       handler.NewUploadHandler(images),
	}

	e := server.New(cfg, h)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal(err)
	}
}
