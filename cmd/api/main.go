package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Kentcsclass/smart-imventory/internal/application/auth"
	"github.com/Kentcsclass/smart-imventory/internal/application/billing"
	"github.com/Kentcsclass/smart-imventory/internal/application/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/application/seed"
	"github.com/Kentcsclass/smart-imventory/internal/application/usecase"
	infraexcel "github.com/Kentcsclass/smart-imventory/internal/infrastructure/excel"
	infrapdf "github.com/Kentcsclass/smart-imventory/internal/infrastructure/pdf"
	"github.com/Kentcsclass/smart-imventory/internal/infrastructure/postgres"
	infraxml "github.com/Kentcsclass/smart-imventory/internal/infrastructure/xmlexport"
	httpRouter "github.com/Kentcsclass/smart-imventory/internal/interfaces/http"
	"github.com/Kentcsclass/smart-imventory/pkg/config"
	"github.com/Kentcsclass/smart-imventory/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("preparar esquema")
	}

	itemRepo := postgres.NewItemRepo(pool)
	receiptRepo := postgres.NewReceiptRepo(pool)
	invoiceRepo := postgres.NewInvoiceRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := inventory.NewStockLedgerUseCase(txRunner, receiptRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	statsUC := usecase.NewStatsUseCase(itemRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, stockLedger, itemRepo, invoiceRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Sembrado inicial: ítems demo y admin por defecto (solo tablas vacías).
	seeder := seed.New(itemRepo, userRepo, log)
	if cfg.Seed.DemoItems {
		if err := seeder.ItemsIfEmpty(); err != nil {
			log.Error().Err(err).Msg("sembrar ítems demo")
		}
	}
	if err := seeder.AdminIfEmpty(cfg.Seed.AdminUser, cfg.Seed.AdminPassword); err != nil {
		log.Error().Err(err).Msg("sembrar usuario admin")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		StatsUC:     statsUC,
		StockLedger: stockLedger,
		InvoiceUC:   invoiceUC,
		AuthUC:      authUC,
		ItemExport:  infraexcel.NewStockReportExporter(itemRepo),
		InvoicePDF:  infrapdf.NewInvoicePDFGenerator(),
		InvoiceXML:  infraxml.NewInvoiceXMLExporter(),
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
