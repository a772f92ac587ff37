package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nickmwangemi/Flight-Management-API/config"
	"github.com/nickmwangemi/Flight-Management-API/internal/audit"
	"github.com/nickmwangemi/Flight-Management-API/internal/kafka"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FleetEventsTopic)
	defer consumer.Close()

	recorder := audit.NewRecorder(nil)

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.FleetEvent) error {
		return recorder.Record(ctx, event)
	}); err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("worker shutting down")
}
