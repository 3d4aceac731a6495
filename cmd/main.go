package main

import (
	handler "book-service/app/handler/api"
	"book-service/app/middleware"
	"book-service/app/repository/broker"
	"book-service/app/repository/db"
	"book-service/app/usecase"
	"book-service/config"
	"book-service/pkg/logger"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	slogfiber "github.com/samber/slog-fiber"
)

func main() {
	// init logger
	logger.InitLogger()

	ctx := context.Background()
	// init config
	cfg, err := config.InitConfig(ctx)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		return
	}

	// init database
	dbConn, err := db.NewPostgres(cfg.Db)
	if err != nil {
		slog.Error("DB connection failed", "error", err)
		return
	}
	defer dbConn.Close()

	// Kafka producer side: catalog events out
	catalogWriter := broker.NewCatalogWriter(cfg.Kafka)
	defer catalogWriter.Close()

	// Kafka consumer side: stock events in (the consumer owns the
	// reader's lifecycle and closes it on Stop)
	bookReader := broker.NewBookReader(cfg.Kafka)

	reqValidator := validator.New()
	bookRepo := db.NewBookRepository(dbConn)
	inStockBookRepo := db.NewInStockBookRepository(dbConn)
	bookEventPublisher := broker.NewBookEventPublisher(catalogWriter)

	bookUsecase := usecase.NewBookUsecase(bookRepo, inStockBookRepo, bookEventPublisher)
	inStockBookUsecase := usecase.NewInStockBookUsecase(inStockBookRepo)

	bookHandler := handler.NewBookHandler(bookUsecase, reqValidator)
	inStockBookHandler := handler.NewInStockBookHandler(inStockBookUsecase, reqValidator)

	stockConsumer := broker.NewStockConsumer(bookReader, bookUsecase)
	stockConsumer.Start(ctx)

	// Initialize HTTP web framework
	app := fiber.New()
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/live",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		ReadinessEndpoint: "/ready",
	}))
	webLogger := slog.New(&logger.RequestIDHandler{Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})})
	app.Use(slogfiber.New(webLogger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.RequestIDMiddleware())

	handler.SetupRouter(app, bookHandler, inStockBookHandler, cfg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Failed to listen", "port", cfg.Port)
			return
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Gracefully shutdown")

	// HTTP first so no new publishes race the teardown, then the consumer
	if err := app.Shutdown(); err != nil {
		slog.Warn("Unfortunately the shutdown wasn't smooth", "err", err)
	}

	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := stockConsumer.Stop(stopCtx); err != nil {
		slog.Warn("stock consumer did not stop cleanly", "err", err)
	}
}
