package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/auth"
	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/application/procurement"
	"github.com/jcastano/cadena-api/internal/application/sales"
	"github.com/jcastano/cadena-api/internal/infrastructure/postgres"
	"github.com/jcastano/cadena-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jcastano/cadena-api/internal/interfaces/http"
	"github.com/jcastano/cadena-api/pkg/config"
	"github.com/jcastano/cadena-api/pkg/logger"
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

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	taxRate, err := decimal.NewFromString(cfg.Inventory.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.Inventory.TaxRate).Msg("TAX_RATE inválida")
	}

	itemRepo := postgres.NewItemRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	recorder := activity.NewRecorder(activityRepo, log)
	ledger := inventory.NewStockLedger(itemRepo, cfg.Inventory.DefaultMinQuantity)
	scanUC := inventory.NewScanUseCase(itemRepo)
	itemUC := inventory.NewItemUseCase(itemRepo, recorder, cfg.Inventory.DefaultMinQuantity)
	saleUC := sales.NewSaleUseCase(itemRepo, txnRepo, ledger, recorder, taxRate, log)
	orderUC := procurement.NewOrderUseCase(orderRepo, itemRepo, recorder, cfg.Inventory.DefaultMinQuantity)
	receiveUC := procurement.NewReceiveUseCase(orderRepo, ledger, recorder, log)

	sessions := redisstore.NewSessionStore(redisClient, time.Duration(cfg.JWT.Expiration)*time.Minute)
	authUC := auth.NewUseCase(sessions, auth.JWTConfig{
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ServiceKey: cfg.Inventory.ServiceKey,
		ScanUC:     scanUC,
		ItemUC:     itemUC,
		SaleUC:     saleUC,
		OrderUC:    orderUC,
		ReceiveUC:  receiveUC,
		Recorder:   recorder,
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
