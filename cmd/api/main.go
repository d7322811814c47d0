package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/templra/almacen-api/internal/application/auth"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/infrastructure/captcha"
	"github.com/templra/almacen-api/internal/infrastructure/mailer"
	"github.com/templra/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/templra/almacen-api/internal/interfaces/http"
	"github.com/templra/almacen-api/pkg/config"
	"github.com/templra/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	cityRepo := postgres.NewCityRepository(pool)
	countRepo := postgres.NewInventoryCountRepository(pool)
	lineRepo := postgres.NewInventoryLineRepository(pool)
	auditRepo := postgres.NewLoginAuditRepository(pool)

	captchaClient := captcha.NewClient(cfg.Captcha.VerifyURL, cfg.Captcha.Secret)
	otpClient := mailer.NewOTPClient(cfg.Mailer.BaseURL, cfg.Mailer.APIKey)
	emailSender := mailer.NewSendgridSender(cfg.Sendgrid.APIKey, cfg.Sendgrid.From)

	authUC := auth.NewAuthUseCase(
		userRepo, auditRepo, captchaClient, otpClient, emailSender,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		cfg.Hash.BcryptCost,
		cfg.Sendgrid.RecoveryTemplateID,
		log,
	)
	userUC := usecase.NewUserUseCase(userRepo, cfg.Hash.BcryptCost)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, userRepo)
	geoUC := usecase.NewGeoUseCase(countryRepo, departmentRepo, cityRepo)
	countUC := usecase.NewInventoryCountUseCase(countRepo)
	lineUC := usecase.NewInventoryLineUseCase(lineRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		WarehouseUC:    warehouseUC,
		ProductUC:      productUC,
		GeoUC:          geoUC,
		InventoryCount: countUC,
		InventoryLine:  lineUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
