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

	"github.com/panol-app/bodega-api/internal/application/auth"
	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/application/report"
	"github.com/panol-app/bodega-api/internal/application/usecase"
	infraexcel "github.com/panol-app/bodega-api/internal/infrastructure/excel"
	"github.com/panol-app/bodega-api/internal/infrastructure/mailer"
	infrapdf "github.com/panol-app/bodega-api/internal/infrastructure/pdf"
	"github.com/panol-app/bodega-api/internal/infrastructure/postgres"
	"github.com/panol-app/bodega-api/internal/infrastructure/storage"
	httpRouter "github.com/panol-app/bodega-api/internal/interfaces/http"
	"github.com/panol-app/bodega-api/pkg/config"
	"github.com/panol-app/bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := mailer.New(cfg.SMTP, log)

	store, err := storage.NewStore(cfg.Uploads)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}
	// Barrido periódico de adjuntos temporales huérfanos.
	go storage.NewSweeper(cfg.Uploads, log).Run(ctx)

	registerUC := ledger.NewRegisterMovementUseCase(txRunner, supplierRepo, notifier, log)
	voidUC := ledger.NewVoidMovementUseCase(txRunner, notifier, log)
	queryUC := usecase.NewMovementQueryUseCase(movementRepo, notifier)
	exportUC := report.NewExportUseCase(
		movementRepo, productRepo, customerRepo, userRepo,
		infrapdf.NewMovementsReportGenerator(),
		infraexcel.NewMovementsReportGenerator(),
	)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, movementRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, movementRepo, notifier, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Uploads.MaxSize) + 1024*1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		RegisterUC: registerUC,
		VoidUC:     voidUC,
		QueryUC:    queryUC,
		ExportUC:   exportUC,
		ProductUC:  productUC,
		CustomerUC: customerUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		UserUC:     userUC,
		Store:      store,
		JWTSecret:  cfg.JWT.Secret,
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
	cancel() // detiene el barrido de temporales

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
