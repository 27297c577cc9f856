package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/db"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/configs"
	customMiddleware "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/delivery/http/middlewares"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/delivery/http/routes"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/gateways/messaging"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/handlers"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/metrics"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/grpc/account"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/logger"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/redis"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/repositories"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/validation"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/views"
)

func main() {
	log := logger.NewLogger()

	cfg, err := configs.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(log, cfg.Server.LogLevel)

	dbCredential := models.Credential{
		Host:         cfg.Postgre.Host,
		Username:     cfg.Postgre.User,
		Password:     cfg.Postgre.Password,
		DatabaseName: cfg.Postgre.Name,
		Port:         cfg.Postgre.Port,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.Connect(ctx, &dbCredential)
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}
	defer conn.Close()

	// Migration
	if err := db.Migrate(cfg.Migration.Path, dbCredential.URL(), log); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		log.Fatalf("Failed to create Redis client: %v", err)
	}
	defer redisClient.Close()

	// RabbitMQ
	rmq, err := messaging.Dial(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	eventPublisher, err := messaging.NewRabbitMQPublisher(rmq, cfg.RabbitMQ.Exchange, log)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer eventPublisher.Close()

	// Dependency Injection
	orderRepo := repositories.NewOrderRepository(conn, log)
	orderRepo = repositories.NewCachedOrderRepository(orderRepo, redisClient, cfg.Redis.TTL, cfg.Redis.LookupTTL, log)
	orderRepo = repositories.NewEventedOrderRepository(orderRepo, eventPublisher, log)

	validator := validation.New()
	shippingHandler := handlers.NewShippingHandler(orderRepo, validator, log)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": conn.PingContext,
		"redis":    redisClient.Ping,
	}, log)

	// midlleware
	var backOffice []echo.MiddlewareFunc
	if cfg.Server.AuthEnabled {
		authClient, err := account.NewAuthClient(cfg.GRPC.AccountServiceAddress, log)
		if err != nil {
			log.Fatalf("Failed to create account service client: %v", err)
		}
		defer authClient.Close()

		backOffice = append(backOffice,
			customMiddleware.AuthMiddleware(authClient, cfg.Server.JWTSecret, cfg.Server.Audience, log),
			customMiddleware.RequireRoles(cfg.Server.AllowedRoles...),
		)
	} else {
		log.Warn("Authentication is disabled, the back office is open to anyone who can reach it")
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Setup Server Web
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = validator
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(customMiddleware.LoggingMiddleware(log))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(metrics.Middleware())

	routes.InitRoutes(e, shippingHandler, healthHandler, customMiddleware.CSRF(cfg.Server.CookieSecure), backOffice...)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.WithField("timeout", cfg.Server.ShutdownTimeout.String()).Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("Server forced to shut down")
	}
}
