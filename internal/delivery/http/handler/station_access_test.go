package handler_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/delivery/http/handler"
	"github.com/lpg-station-service/internal/delivery/http/middleware"
	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/usecase"
)

// stubAuthenticator resolves any bearer token to a fixed user
type stubAuthenticator struct {
	user *domain.User
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

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

type stationAccessFixture struct {
	app            *fiber.App
	stationRepo    *MockStationRepository
	assignmentRepo *MockAssignmentRepository
	cacheRepo      *MockCacheRepository
}

// newStationAccessApp wires the station handler behind auth middleware
// acting on behalf of the given user
func newStationAccessApp(user *domain.User) *stationAccessFixture {
	logger := zap.NewNop()

	stationRepo := &MockStationRepository{}
	assignmentRepo := &MockAssignmentRepository{}
	cacheRepo := &MockCacheRepository{}

	stationUC := usecase.NewStationUseCase(stationRepo, cacheRepo, logger)
	nearbyUC := usecase.NewNearbyUseCase(stationRepo, cacheRepo, logger, time.Minute)
	accessPolicy := usecase.NewAccessPolicy(assignmentRepo, logger)
	h := handler.NewStationHandler(stationUC, nearbyUC, accessPolicy, logger)

	app := fiber.New()
	auth := middleware.Auth(&stubAuthenticator{user: user})
	app.Patch("/stations/:id/status", auth, h.SetActive)
	app.Get("/stations/:id/price-history/export", auth, h.ExportPriceHistory)

	return &stationAccessFixture{
		app:            app,
		stationRepo:    stationRepo,
		assignmentRepo: assignmentRepo,
		cacheRepo:      cacheRepo,
	}
}

func TestStationHandler_SetActive_Access(t *testing.T) {
	t.Run("manager of another station gets 403", func(t *testing.T) {
		manager := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		f := newStationAccessApp(manager)

		f.assignmentRepo.On("HasActiveAssignment", mock.Anything, "m-1", "st-2").
			Return(false, nil)

		req := httptest.NewRequest(fiber.MethodPatch, "/stations/st-2/status",
			strings.NewReader(`{"is_active":false}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		f.stationRepo.AssertNotCalled(t, "SetActive")
	})

	t.Run("manager can close own station", func(t *testing.T) {
		manager := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		f := newStationAccessApp(manager)

		f.assignmentRepo.On("HasActiveAssignment", mock.Anything, "m-1", "st-1").
			Return(true, nil)
		f.stationRepo.On("SetActive", mock.Anything, "st-1", false).
			Return(&domain.Station{ID: "st-1", IsActive: false}, nil)
		f.cacheRepo.On("DeleteByPrefix", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(fiber.MethodPatch, "/stations/st-1/status",
			strings.NewReader(`{"is_active":false}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		f.stationRepo.AssertExpectations(t)
	})

	t.Run("admin can toggle any station", func(t *testing.T) {
		admin := &domain.User{ID: "a-1", Role: domain.RoleAdmin, IsActive: true}
		f := newStationAccessApp(admin)

		f.stationRepo.On("SetActive", mock.Anything, "st-9", true).
			Return(&domain.Station{ID: "st-9", IsActive: true}, nil)
		f.cacheRepo.On("DeleteByPrefix", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(fiber.MethodPatch, "/stations/st-9/status",
			strings.NewReader(`{"is_active":true}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		f.assignmentRepo.AssertNotCalled(t, "HasActiveAssignment")
	})
}

func TestStationHandler_ExportPriceHistory_Access(t *testing.T) {
	t.Run("manager of another station gets 403", func(t *testing.T) {
		manager := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		f := newStationAccessApp(manager)

		f.assignmentRepo.On("HasActiveAssignment", mock.Anything, "m-1", "st-2").
			Return(false, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/stations/st-2/price-history/export", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		f.stationRepo.AssertNotCalled(t, "PriceHistory")
	})

	t.Run("assigned manager downloads the report", func(t *testing.T) {
		manager := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		f := newStationAccessApp(manager)

		f.assignmentRepo.On("HasActiveAssignment", mock.Anything, "m-1", "st-1").
			Return(true, nil)
		f.stationRepo.On("GetByID", mock.Anything, "st-1").
			Return(&domain.Station{ID: "st-1", Name: "Central"}, nil)
		f.stationRepo.On("PriceHistory", mock.Anything, "st-1", 1, 10000).
			Return([]*domain.PriceHistoryEntry{}, 0, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/stations/st-1/price-history/export", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer token")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	})
}
