package aircraft

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func notFound(id int64) error {
	return fmt.Errorf("aircraft %d: %w", id, domain.ErrNotFound)
}

func TestAircraftService_Create_Success(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()

	mockRepo.On("GetBySerialNumber", ctx, "SN-100").Return(nil, notFound(0)).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Aircraft")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Aircraft).ID = 7
	}).Return(nil).Once()

	a, err := service.Create(ctx, CreateAircraftInput{SerialNumber: "SN-100", Manufacturer: "Airbus A320"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "SN-100", a.SerialNumber)
	assert.Equal(t, "Airbus A320", a.Manufacturer)

	mockRepo.AssertExpectations(t)
}

func TestAircraftService_Create_MissingFields(t *testing.T) {
	service := NewAircraftService(&MockAircraftRepository{}, &MockFlightRepository{}, nil, "")

	_, err := service.Create(context.Background(), CreateAircraftInput{SerialNumber: "SN-100"})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = service.Create(context.Background(), CreateAircraftInput{Manufacturer: "Boeing"})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAircraftService_Create_DuplicateSerial(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()
	existing := &domain.Aircraft{ID: 3, SerialNumber: "SN-100", Manufacturer: "Boeing 737"}

	mockRepo.On("GetBySerialNumber", ctx, "SN-100").Return(existing, nil).Once()

	_, err := service.Create(ctx, CreateAircraftInput{SerialNumber: "SN-100", Manufacturer: "Airbus A320"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAircraftService_Update_SerialConflictWithOtherAircraft(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()
	current := &domain.Aircraft{ID: 1, SerialNumber: "SN-1", Manufacturer: "Airbus"}
	other := &domain.Aircraft{ID: 2, SerialNumber: "SN-2", Manufacturer: "Boeing"}

	mockRepo.On("GetByID", ctx, int64(1)).Return(current, nil).Once()
	mockRepo.On("GetBySerialNumber", ctx, "SN-2").Return(other, nil).Once()

	_, err := service.Update(ctx, 1, UpdateAircraftInput{SerialNumber: domain.Some("SN-2")})

	assert.ErrorIs(t, err, domain.ErrConflict)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestAircraftService_Update_KeepingOwnSerialIsNotAConflict(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()
	current := &domain.Aircraft{ID: 1, SerialNumber: "SN-1", Manufacturer: "Airbus"}

	mockRepo.On("GetByID", ctx, int64(1)).Return(current, nil).Once()
	mockRepo.On("GetBySerialNumber", ctx, "SN-1").Return(current, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Aircraft")).Return(nil).Once()

	a, err := service.Update(ctx, 1, UpdateAircraftInput{
		SerialNumber: domain.Some("SN-1"),
		Manufacturer: domain.Some("Airbus A350"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Airbus A350", a.Manufacturer)

	mockRepo.AssertExpectations(t)
}

func TestAircraftService_Update_OmittedFieldsUntouched(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()
	current := &domain.Aircraft{ID: 1, SerialNumber: "SN-1", Manufacturer: "Airbus"}

	mockRepo.On("GetByID", ctx, int64(1)).Return(current, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Aircraft")).Return(nil).Once()

	a, err := service.Update(ctx, 1, UpdateAircraftInput{Manufacturer: domain.Some("Airbus A330")})

	assert.NoError(t, err)
	assert.Equal(t, "SN-1", a.SerialNumber)
	assert.Equal(t, "Airbus A330", a.Manufacturer)

	mockRepo.AssertNotCalled(t, "GetBySerialNumber")
}

func TestAircraftService_Delete_BlockedWhileReferenced(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewAircraftService(mockRepo, mockFlights, nil, "")

	ctx := context.Background()

	mockFlights.On("CountByAircraft", ctx, int64(1)).Return(int64(2), nil).Once()

	err := service.Delete(ctx, 1)

	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestAircraftService_Delete_Unreferenced(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewAircraftService(mockRepo, mockFlights, nil, "")

	ctx := context.Background()

	mockFlights.On("CountByAircraft", ctx, int64(1)).Return(int64(0), nil).Once()
	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()

	err := service.Delete(ctx, 1)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
}

func TestAircraftService_List(t *testing.T) {
	mockRepo := &MockAircraftRepository{}
	service := NewAircraftService(mockRepo, &MockFlightRepository{}, nil, "")

	ctx := context.Background()
	fleet := []domain.Aircraft{{ID: 1, SerialNumber: "SN-1", Manufacturer: "Airbus"}}

	mockRepo.On("List", ctx).Return(fleet, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fleet, result)
}
