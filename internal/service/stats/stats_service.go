package stats

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/repository"
)

type StatsUseCase interface {
	FlightStatistics(ctx context.Context, input StatsInput) (*Report, error)
}

type Cache interface {
	GetReport(ctx context.Context, key string) ([]byte, error)
	SetReport(ctx context.Context, key string, payload []byte) error
}

type StatsService struct {
	flights  repository.FlightRepository
	aircraft repository.AircraftRepository
	cache    Cache
}

func NewStatsService(flights repository.FlightRepository, aircraft repository.AircraftRepository, cache Cache) *StatsService {
	return &StatsService{flights: flights, aircraft: aircraft, cache: cache}
}

type StatsInput struct {
	StartTime string
	EndTime   string
}

// Window is the closed reporting interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

type AircraftFlightTime struct {
	AircraftID      int64   `json:"aircraft_id"`
	SerialNumber    string  `json:"serial_number"`
	InFlightMinutes float64 `json:"in_flight_minutes"`
}

type AirportStats struct {
	DepartureAirport    string               `json:"departure_airport"`
	FlightCount         int                  `json:"flight_count"`
	AverageFlightTime   float64              `json:"average_flight_time"`
	AircraftFlightTimes []AircraftFlightTime `json:"aircraft_flight_times"`
}

type ReportMeta struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	TotalAirports int    `json:"total_airports"`
	TotalFlights  int    `json:"total_flights"`
}

type Report struct {
	Airports []AirportStats `json:"airports"`
	Meta     ReportMeta     `json:"meta"`
}

// FlightStatistics validates the window, selects overlapping flights and
// aggregates their in-window flight time per departure airport.
func (s *StatsService) FlightStatistics(ctx context.Context, input StatsInput) (*Report, error) {
	if input.StartTime == "" || input.EndTime == "" {
		return nil, domain.Invalid("Both start_time and end_time are required")
	}

	start, ok := domain.ParseTime(input.StartTime)
	if !ok {
		return nil, domain.Invalid("Invalid datetime format")
	}
	end, ok := domain.ParseTime(input.EndTime)
	if !ok {
		return nil, domain.Invalid("Invalid datetime format")
	}
	if !end.After(start) {
		return nil, domain.Invalid("end_time must be after start_time")
	}

	w := Window{Start: start, End: end}
	key := cacheKey(w)

	if s.cache != nil {
		if data, err := s.cache.GetReport(ctx, key); err == nil && data != nil {
			var report Report
			if err := json.Unmarshal(data, &report); err == nil {
				return &report, nil
			}
		}
	}

	flights, err := s.flights.ListOverlapping(ctx, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	serials, err := s.resolveSerials(ctx, flights)
	if err != nil {
		return nil, err
	}

	report := BuildReport(flights, w, serials)

	if s.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := s.cache.SetReport(ctx, key, data); err != nil {
				log.Printf("cache report: %v", err)
			}
		}
	}
	return report, nil
}

func (s *StatsService) resolveSerials(ctx context.Context, flights []domain.Flight) (map[int64]string, error) {
	ids := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, f := range flights {
		if f.AircraftID != nil && !seen[*f.AircraftID] {
			seen[*f.AircraftID] = true
			ids = append(ids, *f.AircraftID)
		}
	}
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	return s.aircraft.SerialNumbers(ctx, ids)
}

func cacheKey(w Window) string {
	return w.Start.UTC().Format(time.RFC3339) + "_" + w.End.UTC().Format(time.RFC3339)
}

var _ StatsUseCase = (*StatsService)(nil)
