package flights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/kafka"
	"github.com/nickmwangemi/Flight-Management-API/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, input ListFlightsInput) ([]FlightView, error)
	GetByID(ctx context.Context, id int64) (*FlightView, error)
	Create(ctx context.Context, input CreateFlightInput) (*FlightView, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*FlightView, error)
	Delete(ctx context.Context, id int64) error
	AssignAircraft(ctx context.Context, flightID, aircraftID int64) (*FlightView, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type FlightService struct {
	flights     repository.FlightRepository
	aircraft    repository.AircraftRepository
	cache       Cache
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type FlightServiceOption func(*FlightService)

// WithClock overrides the reference clock used for the future-departure
// check. Tests pin it to a fixed instant.
func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.now = now
	}
}

func NewFlightService(flights repository.FlightRepository, aircraft repository.AircraftRepository, cache Cache, producer Producer, eventsTopic string, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		flights:     flights,
		aircraft:    aircraft,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFlightInput carries raw request values; timestamps stay strings so
// the service owns parse errors and their ordering.
type CreateFlightInput struct {
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	AircraftID       *int64 `json:"aircraft_id"`
}

type UpdateFlightInput struct {
	DepartureAirport domain.Optional[string] `json:"departure_airport"`
	ArrivalAirport   domain.Optional[string] `json:"arrival_airport"`
	DepartureTime    domain.Optional[string] `json:"departure_time"`
	ArrivalTime      domain.Optional[string] `json:"arrival_time"`
	AircraftID       domain.Optional[int64]  `json:"aircraft_id"`
}

type ListFlightsInput struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureAfter   string
	DepartureBefore  string
}

// FlightView is the response shape for a flight, with the assigned
// aircraft's serial number resolved as a display label.
type FlightView struct {
	ID                   int64   `json:"id"`
	DepartureAirport     string  `json:"departure_airport"`
	ArrivalAirport       string  `json:"arrival_airport"`
	DepartureTime        string  `json:"departure_time"`
	ArrivalTime          string  `json:"arrival_time"`
	AircraftID           *int64  `json:"aircraft_id"`
	AircraftSerialNumber *string `json:"aircraft_serial_number"`
}

func (s *FlightService) List(ctx context.Context, input ListFlightsInput) ([]FlightView, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	if filter.IsZero() && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return s.resolveViews(ctx, cached)
		}
	}

	flights, err := s.flights.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.IsZero() && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return s.resolveViews(ctx, flights)
}

func buildFilter(input ListFlightsInput) (domain.FlightFilter, error) {
	var filter domain.FlightFilter

	if input.DepartureAirport != "" {
		if !domain.ValidateICAO(input.DepartureAirport) {
			return filter, domain.Invalid(fmt.Sprintf("Invalid ICAO code: %s", input.DepartureAirport))
		}
		filter.DepartureAirport = domain.CanonicalICAO(input.DepartureAirport)
	}
	if input.ArrivalAirport != "" {
		if !domain.ValidateICAO(input.ArrivalAirport) {
			return filter, domain.Invalid(fmt.Sprintf("Invalid ICAO code: %s", input.ArrivalAirport))
		}
		filter.ArrivalAirport = domain.CanonicalICAO(input.ArrivalAirport)
	}
	if input.DepartureAfter != "" {
		t, ok := domain.ParseTime(input.DepartureAfter)
		if !ok {
			return filter, domain.Invalid(fmt.Sprintf("Invalid datetime format for departure_after: %s", input.DepartureAfter))
		}
		filter.DepartureAfter = &t
	}
	if input.DepartureBefore != "" {
		t, ok := domain.ParseTime(input.DepartureBefore)
		if !ok {
			return filter, domain.Invalid(fmt.Sprintf("Invalid datetime format for departure_before: %s", input.DepartureBefore))
		}
		filter.DepartureBefore = &t
	}
	return filter, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*FlightView, error) {
	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, f)
}

// Create validates in a fixed order, failing fast on the first violation:
// required fields, ICAO format of both airports, parseability of both
// timestamps, departure strictly in the future, arrival strictly after
// departure, then aircraft resolvability.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*FlightView, error) {
	var missing []string
	if input.DepartureAirport == "" {
		missing = append(missing, "departure_airport")
	}
	if input.ArrivalAirport == "" {
		missing = append(missing, "arrival_airport")
	}
	if input.DepartureTime == "" {
		missing = append(missing, "departure_time")
	}
	if input.ArrivalTime == "" {
		missing = append(missing, "arrival_time")
	}
	if len(missing) > 0 {
		return nil, domain.Invalid("Missing required fields: " + strings.Join(missing, ", "))
	}

	if !domain.ValidateICAO(input.DepartureAirport) {
		return nil, domain.Invalid(fmt.Sprintf("Invalid departure airport ICAO code: %s", input.DepartureAirport))
	}
	if !domain.ValidateICAO(input.ArrivalAirport) {
		return nil, domain.Invalid(fmt.Sprintf("Invalid arrival airport ICAO code: %s", input.ArrivalAirport))
	}

	departure, ok := domain.ParseTime(input.DepartureTime)
	if !ok {
		return nil, domain.Invalid(fmt.Sprintf("Invalid departure_time format: %s", input.DepartureTime))
	}
	arrival, ok := domain.ParseTime(input.ArrivalTime)
	if !ok {
		return nil, domain.Invalid(fmt.Sprintf("Invalid arrival_time format: %s", input.ArrivalTime))
	}

	if !departure.After(s.now()) {
		return nil, domain.Invalid("Departure time must be in the future")
	}
	if !arrival.After(departure) {
		return nil, domain.Invalid("Arrival time must be after departure time")
	}

	if input.AircraftID != nil {
		if _, err := s.aircraft.GetByID(ctx, *input.AircraftID); err != nil {
			return nil, err
		}
	}

	f := &domain.Flight{
		DepartureAirport: domain.CanonicalICAO(input.DepartureAirport),
		ArrivalAirport:   domain.CanonicalICAO(input.ArrivalAirport),
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		AircraftID:       input.AircraftID,
	}
	if err := s.flights.Create(ctx, f); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventCreated, f.ID)
	return s.resolveView(ctx, f)
}

// Update applies a partial update. Each present field is validated on its
// own; the temporal-order check runs against the prospective record (new
// value where given, stored value otherwise), and the future-departure
// check uses the time of this request, not the original creation time.
func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*FlightView, error) {
	f, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	departure := f.DepartureTime
	arrival := f.ArrivalTime

	if input.DepartureTime.Set {
		if !input.DepartureTime.Valid {
			return nil, domain.Invalid("departure_time cannot be null")
		}
		t, ok := domain.ParseTime(input.DepartureTime.Value)
		if !ok {
			return nil, domain.Invalid(fmt.Sprintf("Invalid departure_time format: %s", input.DepartureTime.Value))
		}
		if !t.After(s.now()) {
			return nil, domain.Invalid("Departure time must be in the future")
		}
		departure = t
	}
	if input.ArrivalTime.Set {
		if !input.ArrivalTime.Valid {
			return nil, domain.Invalid("arrival_time cannot be null")
		}
		t, ok := domain.ParseTime(input.ArrivalTime.Value)
		if !ok {
			return nil, domain.Invalid(fmt.Sprintf("Invalid arrival_time format: %s", input.ArrivalTime.Value))
		}
		arrival = t
	}
	if input.DepartureTime.Set || input.ArrivalTime.Set {
		if !arrival.After(departure) {
			return nil, domain.Invalid("Arrival time must be after departure time")
		}
	}
	f.DepartureTime = departure
	f.ArrivalTime = arrival

	if input.DepartureAirport.Set {
		if !input.DepartureAirport.Valid || !domain.ValidateICAO(input.DepartureAirport.Value) {
			return nil, domain.Invalid(fmt.Sprintf("Invalid departure airport ICAO code: %s", input.DepartureAirport.Value))
		}
		f.DepartureAirport = domain.CanonicalICAO(input.DepartureAirport.Value)
	}
	if input.ArrivalAirport.Set {
		if !input.ArrivalAirport.Valid || !domain.ValidateICAO(input.ArrivalAirport.Value) {
			return nil, domain.Invalid(fmt.Sprintf("Invalid arrival airport ICAO code: %s", input.ArrivalAirport.Value))
		}
		f.ArrivalAirport = domain.CanonicalICAO(input.ArrivalAirport.Value)
	}

	if input.AircraftID.Set {
		if input.AircraftID.Valid {
			if _, err := s.aircraft.GetByID(ctx, input.AircraftID.Value); err != nil {
				return nil, err
			}
			aircraftID := input.AircraftID.Value
			f.AircraftID = &aircraftID
		} else {
			f.AircraftID = nil
		}
	}

	if err := s.flights.Update(ctx, f); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventUpdated, f.ID)
	return s.resolveView(ctx, f)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventDeleted, id)
	return nil
}

// AssignAircraft sets the flight's aircraft, overwriting any prior
// assignment. Both ids must resolve.
func (s *FlightService) AssignAircraft(ctx context.Context, flightID, aircraftID int64) (*FlightView, error) {
	f, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	a, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	f.AircraftID = &a.ID
	if err := s.flights.Update(ctx, f); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventAssigned, f.ID)
	return s.resolveView(ctx, f)
}

func (s *FlightService) resolveView(ctx context.Context, f *domain.Flight) (*FlightView, error) {
	views, err := s.resolveViews(ctx, []domain.Flight{*f})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// resolveViews shapes flights for responses, resolving aircraft serial
// numbers in one batch lookup.
func (s *FlightService) resolveViews(ctx context.Context, flights []domain.Flight) ([]FlightView, error) {
	ids := make([]int64, 0, len(flights))
	seen := make(map[int64]bool)
	for _, f := range flights {
		if f.AircraftID != nil && !seen[*f.AircraftID] {
			seen[*f.AircraftID] = true
			ids = append(ids, *f.AircraftID)
		}
	}

	serials := map[int64]string{}
	if len(ids) > 0 {
		var err error
		serials, err = s.aircraft.SerialNumbers(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]FlightView, 0, len(flights))
	for _, f := range flights {
		view := FlightView{
			ID:               f.ID,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    f.DepartureTime.Format(time.RFC3339),
			ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
			AircraftID:       f.AircraftID,
		}
		if f.AircraftID != nil {
			if serial, ok := serials[*f.AircraftID]; ok {
				view.AircraftSerialNumber = &serial
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flight cache: %v", err)
	}
}

func (s *FlightService) publish(ctx context.Context, eventType string, id int64) {
	if s.producer == nil {
		return
	}
	event := kafka.FleetEvent{
		Type:       eventType,
		Entity:     kafka.EntityFlight,
		EntityID:   id,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish fleet event: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
