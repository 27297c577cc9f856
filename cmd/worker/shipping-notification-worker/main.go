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
)

func main() {
	log := logger.NewLogger()

	cfg, err := configs.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(log, cfg.Server.LogLevel)

	log.Info("Starting shipping notification worker...")

	rmq, err := messaging.Dial(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	notifier := NewNotificationService(log)

	consumer := messaging.NewConsumer(rmq, messaging.ConsumerOptions{
		Exchange:      cfg.RabbitMQ.Exchange,
		QueueName:     "shipping.customer.notifications",
		BindingKeys:   []string{shippingMsg.EventShippingCreated, shippingMsg.EventShippingUpdated},
		WorkerCount:   5,
		PrefetchCount: cfg.RabbitMQ.PrefetchCount,
	}, notifier.Handle, log)

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
