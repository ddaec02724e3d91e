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

	"github.com/alumasa/almoxarifado-api/internal/application/audit"
	"github.com/alumasa/almoxarifado-api/internal/application/auth"
	"github.com/alumasa/almoxarifado-api/internal/application/movement"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
	infrapdf "github.com/alumasa/almoxarifado-api/internal/infrastructure/pdf"
	"github.com/alumasa/almoxarifado-api/internal/infrastructure/postgres"
	httpRouter "github.com/alumasa/almoxarifado-api/internal/interfaces/http"
	"github.com/alumasa/almoxarifado-api/pkg/config"
	"github.com/alumasa/almoxarifado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	historyRepo := postgres.NewItemHistoryRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditor := audit.NewRecorder(auditRepo, log)

	movementUC := movement.NewUseCase(txRunner, itemRepo, auditor)
	reconcileUC := movement.NewReconcileUseCase(txRunner, itemRepo, auditor)
	itemUC := usecase.NewItemUseCase(itemRepo, auditor)
	historyUC := usecase.NewHistoryUseCase(historyRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, auditor)
	userUC := usecase.NewUserUseCase(userRepo, auditor)
	backupUC := usecase.NewBackupUseCase(snapshotRepo, auditor)

	pdfGenerator := infrapdf.NewPurchaseOrderPDF()
	reportUC := usecase.NewReportUseCase(itemRepo, historyRepo, supplierRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almoxarifado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		MovementUC:  movementUC,
		ReconcileUC: reconcileUC,
		HistoryUC:   historyUC,
		ReportUC:    reportUC,
		SupplierUC:  supplierUC,
		UserUC:      userUC,
		BackupUC:    backupUC,
		Auditor:     auditor,
		JWTSecret:   cfg.JWT.Secret,
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
