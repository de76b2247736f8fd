package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"turfly/internal/notifications"
	"turfly/pkg/config"
	"turfly/pkg/kafka"
	kafka_config "turfly/pkg/kafka/config"
	kafkamw "turfly/pkg/kafka/middleware"
)

const ServiceName = "notify"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Notify worker")

	kafkaCfg := kafka_config.Load()

	notifier := notifications.NewLogNotifier(cfg.Log)
	worker := notifications.NewWorker(notifier, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafka.TopicBookingEvents,
		notifications.ConsumerGroupID,
		kafka.TopicBookingEventsDLQ,
		worker.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafkamw.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafkamw.MetricsConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking events",
		"topic", kafka.TopicBookingEvents,
		"group_id", notifications.ConsumerGroupID,
		"brokers", kafkaCfg.Brokers,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer cleanly", "error", err)
	}

	cfg.Log.Info("Notify worker stopped")
}
