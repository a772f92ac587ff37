package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nickmwangemi/Flight-Management-API/config"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/repository"
)

// Seeds the database with sample aircraft and flights for development and
// testing.

var aircraftData = []struct {
	manufacturer string
	models       []string
}{
	{"Airbus", []string{"A320", "A330", "A350", "A380"}},
	{"Boeing", []string{"737", "747", "777", "787"}},
	{"Bombardier", []string{"CRJ700", "CRJ900", "Global 6000"}},
	{"Embraer", []string{"E170", "E190", "E195"}},
	{"Cessna", []string{"Citation X", "Citation Latitude", "Citation Longitude"}},
}

var airports = []string{
	"KJFK", "KLAX", "KORD", "KATL", "EGLL",
	"LFPG", "EDDF", "LEMD", "LIRF", "EHAM",
	"VHHH", "RJTT", "YSSY", "OMDB", "ZBAA",
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	aircraftRepo := repository.NewAircraftRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)

	aircraftCount := cfg.Seed.AircraftCount
	if aircraftCount <= 0 {
		aircraftCount = 15
	}
	flightCount := cfg.Seed.FlightCount
	if flightCount <= 0 {
		flightCount = 50
	}

	aircraft, err := seedAircraft(ctx, aircraftRepo, aircraftCount)
	if err != nil {
		log.Fatalf("seed aircraft: %v", err)
	}
	log.Printf("created %d aircraft", len(aircraft))

	created, err := seedFlights(ctx, flightRepo, aircraft, flightCount)
	if err != nil {
		log.Fatalf("seed flights: %v", err)
	}
	log.Printf("created %d flights", created)
}

func seedAircraft(ctx context.Context, repo repository.AircraftRepository, count int) ([]domain.Aircraft, error) {
	created := make([]domain.Aircraft, 0, count)
	for len(created) < count {
		data := aircraftData[rand.Intn(len(aircraftData))]
		model := data.models[rand.Intn(len(data.models))]

		a := &domain.Aircraft{
			SerialNumber: serialNumber(data.manufacturer, model),
			Manufacturer: data.manufacturer + " " + model,
		}
		if err := repo.Create(ctx, a); err != nil {
			// Retry on a serial collision with a fresh random serial.
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return nil, err
		}
		created = append(created, *a)
	}
	return created, nil
}

func seedFlights(ctx context.Context, repo repository.FlightRepository, aircraft []domain.Aircraft, count int) (int, error) {
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		depIdx := rand.Intn(len(airports))
		arrIdx := rand.Intn(len(airports))
		for arrIdx == depIdx {
			arrIdx = rand.Intn(len(airports))
		}

		departure := now.Add(time.Duration(1+rand.Intn(30*24)) * time.Hour)
		duration := time.Duration(60+rand.Intn(9*60)) * time.Minute

		f := &domain.Flight{
			DepartureAirport: airports[depIdx],
			ArrivalAirport:   airports[arrIdx],
			DepartureTime:    departure,
			ArrivalTime:      departure.Add(duration),
		}
		// Roughly 80% of flights get an aircraft assigned.
		if len(aircraft) > 0 && rand.Float64() < 0.8 {
			id := aircraft[rand.Intn(len(aircraft))].ID
			f.AircraftID = &id
		}
		if err := repo.Create(ctx, f); err != nil {
			return i, err
		}
	}
	return count, nil
}

func serialNumber(manufacturer, model string) string {
	compact := strings.ToUpper(strings.ReplaceAll(model, " ", ""))
	if len(compact) > 3 {
		compact = compact[:3]
	}
	return fmt.Sprintf("%s%s-%04d", manufacturer[:1], compact, 1000+rand.Intn(9000))
}
