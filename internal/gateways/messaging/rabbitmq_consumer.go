package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// HandlerFunc processes one message body. A returned error rejects the
// delivery without requeueing it.
type HandlerFunc func(ctx context.Context, body []byte) error

type ConsumerOptions struct {
	Exchange      string
	QueueName     string
	BindingKeys   []string
	WorkerCount   int
	PrefetchCount int
}

type Consumer struct {
	conn    *amqp.Connection
	opts    ConsumerOptions
	handler HandlerFunc
	log     *logrus.Logger
}

func NewConsumer(conn *amqp.Connection, opts ConsumerOptions, handler HandlerFunc, log *logrus.Logger) *Consumer {
	if opts.WorkerCount < 1 {
		opts.WorkerCount = 1
	}
	return &Consumer{conn: conn, opts: opts, handler: handler, log: log}
}

// Start declares the queue and its bindings, then blocks consuming until ctx
// is cancelled or the delivery channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := declareExchange(ch, c.opts.Exchange); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(c.opts.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.opts.QueueName, err)
	}

	for _, key := range c.opts.BindingKeys {
		if err := ch.QueueBind(q.Name, key, c.opts.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s to %s: %w", q.Name, key, err)
		}
	}

	if c.opts.PrefetchCount > 0 {
		if err := ch.Qos(c.opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", q.Name, err)
	}

	c.log.WithFields(logrus.Fields{
		"queue":   q.Name,
		"workers": c.opts.WorkerCount,
	}).Info("Consumer started")

	var wg sync.WaitGroup
	for i := 0; i < c.opts.WorkerCount; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			c.work(ctx, worker, deliveries)
		}(i)
	}

	wg.Wait()
	return nil
}

func (c *Consumer) work(ctx context.Context, worker int, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			c.handle(ctx, worker, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, worker int, d amqp.Delivery) {
	logger := c.log.WithFields(logrus.Fields{"worker": worker, "routing_key": d.RoutingKey})

	if err := c.handler(ctx, d.Body); err != nil {
		logger.WithError(err).Error("Failed to process message")
		if nackErr := d.Nack(false, false); nackErr != nil {
			logger.WithError(nackErr).Warn("Failed to nack message")
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.WithError(err).Warn("Failed to ack message")
	}
}
