package aircraft

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/kafka"
	"github.com/nickmwangemi/Flight-Management-API/internal/repository"
)

type AircraftUseCase interface {
	List(ctx context.Context) ([]domain.Aircraft, error)
	GetByID(ctx context.Context, id int64) (*domain.Aircraft, error)
	Create(ctx context.Context, input CreateAircraftInput) (*domain.Aircraft, error)
	Update(ctx context.Context, id int64, input UpdateAircraftInput) (*domain.Aircraft, error)
	Delete(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type AircraftService struct {
	aircraft    repository.AircraftRepository
	flights     repository.FlightRepository
	producer    Producer
	eventsTopic string
}

type CreateAircraftInput struct {
	SerialNumber string `json:"serial_number"`
	Manufacturer string `json:"manufacturer"`
}

type UpdateAircraftInput struct {
	SerialNumber domain.Optional[string] `json:"serial_number"`
	Manufacturer domain.Optional[string] `json:"manufacturer"`
}

func NewAircraftService(aircraft repository.AircraftRepository, flights repository.FlightRepository, producer Producer, eventsTopic string) *AircraftService {
	return &AircraftService{
		aircraft:    aircraft,
		flights:     flights,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

func (s *AircraftService) List(ctx context.Context) ([]domain.Aircraft, error) {
	return s.aircraft.List(ctx)
}

func (s *AircraftService) GetByID(ctx context.Context, id int64) (*domain.Aircraft, error) {
	return s.aircraft.GetByID(ctx, id)
}

func (s *AircraftService) Create(ctx context.Context, input CreateAircraftInput) (*domain.Aircraft, error) {
	if input.SerialNumber == "" || input.Manufacturer == "" {
		return nil, domain.Invalid("Missing required fields: serial_number and manufacturer")
	}

	if err := s.checkSerialFree(ctx, input.SerialNumber, 0); err != nil {
		return nil, err
	}

	a := &domain.Aircraft{
		SerialNumber: input.SerialNumber,
		Manufacturer: input.Manufacturer,
	}
	if err := s.aircraft.Create(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventCreated, a.ID)
	return a, nil
}

func (s *AircraftService) Update(ctx context.Context, id int64, input UpdateAircraftInput) (*domain.Aircraft, error) {
	a, err := s.aircraft.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SerialNumber.Set {
		if !input.SerialNumber.Valid || input.SerialNumber.Value == "" {
			return nil, domain.Invalid("serial_number cannot be empty")
		}
		if err := s.checkSerialFree(ctx, input.SerialNumber.Value, id); err != nil {
			return nil, err
		}
		a.SerialNumber = input.SerialNumber.Value
	}
	if input.Manufacturer.Set {
		if !input.Manufacturer.Valid || input.Manufacturer.Value == "" {
			return nil, domain.Invalid("manufacturer cannot be empty")
		}
		a.Manufacturer = input.Manufacturer.Value
	}

	if err := s.aircraft.Update(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventUpdated, a.ID)
	return a, nil
}

func (s *AircraftService) Delete(ctx context.Context, id int64) error {
	refs, err := s.flights.CountByAircraft(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("cannot delete aircraft that is assigned to flights: %w", domain.ErrPreconditionFailed)
	}

	if err := s.aircraft.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventDeleted, id)
	return nil
}

// checkSerialFree rejects a serial number already used by a different
// aircraft. selfID 0 means a creation; the DB unique constraint remains the
// backstop against concurrent writers.
func (s *AircraftService) checkSerialFree(ctx context.Context, serial string, selfID int64) error {
	existing, err := s.aircraft.GetBySerialNumber(ctx, serial)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("aircraft with serial number '%s': %w", serial, domain.ErrConflict)
	}
	return nil
}

// publish emits a fleet event after a successful mutation. Best effort: a
// failed publish is logged, never surfaced to the caller.
func (s *AircraftService) publish(ctx context.Context, eventType string, id int64) {
	if s.producer == nil {
		return
	}
	event := kafka.FleetEvent{
		Type:       eventType,
		Entity:     kafka.EntityAircraft,
		EntityID:   id,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, uuid.NewString(), event); err != nil {
		log.Printf("publish fleet event: %v", err)
	}
}

var _ AircraftUseCase = (*AircraftService)(nil)
