package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/repository/postgres"
	"github.com/lpg-station-service/internal/repository/postgres/testhelpers"
)

// VisitorRepositorySuite tests visit analytics with real database
type VisitorRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.VisitorRepository
	ctx    context.Context
}

// SetupSuite runs once before all tests
func (s *VisitorRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	// Apply migrations (skip if tables already exist)
	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	db := postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger)
	s.repo = postgres.NewVisitorRepository(db)
}

// TearDownSuite runs once after all tests
func (s *VisitorRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *VisitorRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.NoError(s.testDB.Cleanup(s.ctx))
}

func (s *VisitorRepositorySuite) insertVisit(ip, url, deviceType, browser, osName string, responseMs int, createdAt time.Time) {
	s.NoError(s.repo.Create(s.ctx, &domain.Visitor{
		IPAddress:      ip,
		URL:            url,
		Method:         "GET",
		UserAgent:      "test-agent",
		DeviceType:     deviceType,
		Browser:        browser,
		OS:             osName,
		ResponseCode:   200,
		ResponseTimeMs: responseMs,
		CreatedAt:      createdAt,
	}))
}

func (s *VisitorRepositorySuite) TestStats_Aggregates() {
	// Фиксированный полдень, чтобы сдвиги на часы не пересекали границу суток
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	s.insertVisit("10.0.0.1", "/api/v1/stations/nearby", "mobile", "Chrome", "Android", 10, base)
	s.insertVisit("10.0.0.1", "/api/v1/stations/nearby", "mobile", "Chrome", "Android", 20, base.Add(-time.Hour))
	s.insertVisit("10.0.0.2", "/api/v1/stations", "desktop", "Firefox", "Linux", 30, base.Add(-25*time.Hour))

	stats, err := s.repo.Stats(s.ctx, base.AddDate(0, 0, -7))
	s.NoError(err)

	s.Equal(3, stats.TotalVisits)
	s.Equal(2, stats.UniqueIPs)
	s.InDelta(20.0, stats.AvgResponseMs, 1e-9)

	s.Equal(2, stats.ByDeviceType["mobile"])
	s.Equal(1, stats.ByDeviceType["desktop"])
	s.Equal(2, stats.ByBrowser["Chrome"])
	s.Equal(2, stats.ByOS["Android"])
	s.Equal(1, stats.ByOS["Linux"])

	s.Require().NotEmpty(stats.TopURLs)
	s.Equal("/api/v1/stations/nearby", stats.TopURLs[0].URL)
	s.Equal(2, stats.TopURLs[0].Count)

	// Визиты легли в два календарных дня
	s.Len(stats.DailyVisits, 2)
	s.True(stats.DailyVisits[0].Day.Before(stats.DailyVisits[1].Day))
}

func (s *VisitorRepositorySuite) TestStats_WindowExcludesOldVisits() {
	now := time.Now()
	s.insertVisit("10.0.0.1", "/api/v1/stations", "desktop", "Chrome", "Linux", 10, now)
	s.insertVisit("10.0.0.2", "/api/v1/stations", "desktop", "Chrome", "Linux", 10, now.AddDate(0, 0, -40))

	stats, err := s.repo.Stats(s.ctx, now.AddDate(0, 0, -30))
	s.NoError(err)
	s.Equal(1, stats.TotalVisits)
}

func (s *VisitorRepositorySuite) TestDeleteOlderThan() {
	now := time.Now()
	s.insertVisit("10.0.0.1", "/api/v1/stations", "desktop", "Chrome", "Linux", 10, now)
	s.insertVisit("10.0.0.2", "/api/v1/stations", "desktop", "Chrome", "Linux", 10, now.AddDate(0, 0, -100))

	deleted, err := s.repo.DeleteOlderThan(s.ctx, now.AddDate(0, 0, -90))
	s.NoError(err)
	s.Equal(int64(1), deleted)
}

func TestVisitorRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(VisitorRepositorySuite))
}
