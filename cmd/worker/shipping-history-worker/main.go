package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/configs"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/gateways/messaging"
	shippingMsg "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/logger"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/redis"
)

func main() {
	log := logger.NewLogger()

	cfg, err := configs.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(log, cfg.Server.LogLevel)

	log.Info("Starting shipping history worker...")

	redisClient, err := redis.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		log.Fatalf("Failed to create Redis client: %v", err)
	}
	defer redisClient.Close()

	rmq, err := messaging.Dial(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	historyService := NewHistoryService(redisClient, log)

	// every event, created and updated alike, becomes a history entry
	consumer := messaging.NewConsumer(rmq, messaging.ConsumerOptions{
		Exchange:      cfg.RabbitMQ.Exchange,
		QueueName:     "shipping.history",
		BindingKeys:   []string{shippingMsg.EventShippingCreated, shippingMsg.EventShippingUpdated},
		WorkerCount:   3,
		PrefetchCount: cfg.RabbitMQ.PrefetchCount,
	}, historyService.Handle, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Errorf("Consumer error: %v", err)
		}
		cancel()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("Shutting down worker...")
}
