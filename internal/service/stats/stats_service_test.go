package stats

import (
	"context"
	"testing"
	"time"

	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) CountByAircraft(ctx context.Context, aircraftID int64) (int64, error) {
	args := m.Called(ctx, aircraftID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAircraftRepository struct {
	mock.Mock
}

func (m *MockAircraftRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) GetByID(ctx context.Context, id int64) (*domain.Aircraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) GetBySerialNumber(ctx context.Context, serial string) (*domain.Aircraft, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *MockAircraftRepository) Create(ctx context.Context, a *domain.Aircraft) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAircraftRepository) Update(ctx context.Context, a *domain.Aircraft) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAircraftRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAircraftRepository) SerialNumbers(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]string), args.Error(1)
}

func TestStatsService_WindowRequired(t *testing.T) {
	service := NewStatsService(&MockFlightRepository{}, &MockAircraftRepository{}, nil)
	ctx := context.Background()

	_, err := service.FlightStatistics(ctx, StatsInput{})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = service.FlightStatistics(ctx, StatsInput{StartTime: "2030-05-01T09:00:00Z"})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestStatsService_WindowMustBeOrdered(t *testing.T) {
	service := NewStatsService(&MockFlightRepository{}, &MockAircraftRepository{}, nil)
	ctx := context.Background()

	_, err := service.FlightStatistics(ctx, StatsInput{
		StartTime: "2030-05-01T16:00:00Z",
		EndTime:   "2030-05-01T09:00:00Z",
	})
	assert.Error(t, err)
	assert.EqualError(t, err, "end_time must be after start_time")

	_, err = service.FlightStatistics(ctx, StatsInput{
		StartTime: "2030-05-01T09:00:00Z",
		EndTime:   "2030-05-01T09:00:00Z",
	})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestStatsService_BadDatetimeFormat(t *testing.T) {
	service := NewStatsService(&MockFlightRepository{}, &MockAircraftRepository{}, nil)
	ctx := context.Background()

	_, err := service.FlightStatistics(ctx, StatsInput{StartTime: "nope", EndTime: "2030-05-01T16:00:00Z"})
	assert.Error(t, err)
	assert.EqualError(t, err, "Invalid datetime format")
}

func TestStatsService_BuildsReportFromOverlappingFlights(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockAircraft := &MockAircraftRepository{}
	service := NewStatsService(mockFlights, mockAircraft, nil)

	ctx := context.Background()
	start := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2030, 5, 1, 16, 0, 0, 0, time.UTC)

	flights := []domain.Flight{
		{ID: 1, DepartureAirport: "ABCD", ArrivalAirport: "EFGH", DepartureTime: start.Add(time.Hour), ArrivalTime: start.Add(3 * time.Hour), AircraftID: ptr(1)},
		{ID: 2, DepartureAirport: "ABCD", ArrivalAirport: "IJKL", DepartureTime: start.Add(4 * time.Hour), ArrivalTime: end, AircraftID: ptr(2)},
	}

	mockFlights.On("ListOverlapping", ctx, start, end).Return(flights, nil).Once()
	mockAircraft.On("SerialNumbers", ctx, []int64{1, 2}).Return(map[int64]string{1: "SN-X", 2: "SN-Y"}, nil).Once()

	report, err := service.FlightStatistics(ctx, StatsInput{
		StartTime: "2030-05-01T09:00:00Z",
		EndTime:   "2030-05-01T16:00:00Z",
	})

	assert.NoError(t, err)
	assert.Len(t, report.Airports, 1)
	assert.Equal(t, 2, report.Airports[0].FlightCount)
	assert.Equal(t, 150.0, report.Airports[0].AverageFlightTime)
	assert.Equal(t, "2030-05-01T09:00:00Z", report.Meta.StartTime)
	assert.Equal(t, "2030-05-01T16:00:00Z", report.Meta.EndTime)

	mockFlights.AssertExpectations(t)
	mockAircraft.AssertExpectations(t)
}

func TestStatsService_NoAssignedAircraftSkipsSerialLookup(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockAircraft := &MockAircraftRepository{}
	service := NewStatsService(mockFlights, mockAircraft, nil)

	ctx := context.Background()
	start := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2030, 5, 1, 16, 0, 0, 0, time.UTC)

	flights := []domain.Flight{
		{ID: 1, DepartureAirport: "ABCD", ArrivalAirport: "EFGH", DepartureTime: start.Add(time.Hour), ArrivalTime: start.Add(3 * time.Hour)},
	}

	mockFlights.On("ListOverlapping", ctx, start, end).Return(flights, nil).Once()

	report, err := service.FlightStatistics(ctx, StatsInput{
		StartTime: "2030-05-01T09:00:00Z",
		EndTime:   "2030-05-01T16:00:00Z",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Airports[0].FlightCount)
	assert.Empty(t, report.Airports[0].AircraftFlightTimes)

	mockFlights.AssertExpectations(t)
	mockAircraft.AssertNotCalled(t, "SerialNumbers")
}
