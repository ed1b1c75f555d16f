package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lpg-station-service/internal/domain"
)

// MockStationRepository is a mock of StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) Create(ctx context.Context, station *domain.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) List(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Station), args.Int(1), args.Error(2)
}

func (m *MockStationRepository) ListActive(ctx context.Context) ([]*domain.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

func (m *MockStationRepository) Update(ctx context.Context, station *domain.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStationRepository) SetAvailability(ctx context.Context, stationID string, isAvailable bool, actorID string) (*domain.Station, error) {
	args := m.Called(ctx, stationID, isAvailable, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) SetPrice(ctx context.Context, stationID string, price float64, actorID string) (*domain.Station, error) {
	args := m.Called(ctx, stationID, price, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) SetActive(ctx context.Context, stationID string, isActive bool) (*domain.Station, error) {
	args := m.Called(ctx, stationID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) PriceHistory(ctx context.Context, stationID string, page, perPage int) ([]*domain.PriceHistoryEntry, int, error) {
	args := m.Called(ctx, stationID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.PriceHistoryEntry), args.Int(1), args.Error(2)
}

// MockAssignmentRepository is a mock of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Transfer(ctx context.Context, stationID, managerID, assignedBy string) (*domain.ManagerAssignment, error) {
	args := m.Called(ctx, stationID, managerID, assignedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Remove(ctx context.Context, stationID, reason string) (*domain.ManagerAssignment, error) {
	args := m.Called(ctx, stationID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetCurrent(ctx context.Context, stationID string) (*domain.ManagerAssignment, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) History(ctx context.Context, stationID string, filter domain.AssignmentFilter) ([]*domain.ManagerAssignment, int, error) {
	args := m.Called(ctx, stationID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ManagerAssignment), args.Int(1), args.Error(2)
}

func (m *MockAssignmentRepository) HasActiveAssignment(ctx context.Context, managerID, stationID string) (bool, error) {
	args := m.Called(ctx, managerID, stationID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string, activeOnly bool, page, perPage int) ([]*domain.User, int, error) {
	args := m.Called(ctx, role, activeOnly, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVisitorRepository is a mock of VisitorRepository
type MockVisitorRepository struct {
	mock.Mock
}

func (m *MockVisitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	args := m.Called(ctx, visitor)
	return args.Error(0)
}

func (m *MockVisitorRepository) Stats(ctx context.Context, since time.Time) (*domain.VisitorStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitorStats), args.Error(1)
}

func (m *MockVisitorRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }
