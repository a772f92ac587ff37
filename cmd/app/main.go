package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nickmwangemi/Flight-Management-API/api"
	"github.com/nickmwangemi/Flight-Management-API/config"
	"github.com/nickmwangemi/Flight-Management-API/internal/bootstrap"
	"github.com/nickmwangemi/Flight-Management-API/internal/cache"
	"github.com/nickmwangemi/Flight-Management-API/internal/kafka"
	"github.com/nickmwangemi/Flight-Management-API/internal/repository"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/aircraft"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/flights"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/stats"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.ReportsTTLSeconds)*time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	aircraftRepo := repository.NewAircraftRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)

	aircraftService := aircraft.NewAircraftService(aircraftRepo, flightRepo, producer, cfg.Kafka.FleetEventsTopic)
	flightService := flights.NewFlightService(flightRepo, aircraftRepo, redisCache, producer, cfg.Kafka.FleetEventsTopic)
	statsService := stats.NewStatsService(flightRepo, aircraftRepo, redisCache)

	aircraftHandler := api.NewAircraftHandler(aircraftService)
	flightHandler := api.NewFlightHandler(flightService)
	reportsHandler := api.NewReportsHandler(statsService)

	if err := bootstrap.Run(ctx, cfg, aircraftHandler, flightHandler, reportsHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
