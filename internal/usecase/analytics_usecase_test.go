package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

func TestAnalyticsUseCase_VisitorStats(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("defaults to 30 day window", func(t *testing.T) {
		mockVisitor := &MockVisitorRepository{}
		uc := usecase.NewAnalyticsUseCase(mockVisitor, logger, 90)

		stats := &domain.VisitorStats{TotalVisits: 42, UniqueIPs: 7}
		mockVisitor.On("Stats", ctx, mock.MatchedBy(func(since time.Time) bool {
			expected := time.Now().AddDate(0, 0, -30)
			return since.Sub(expected).Abs() < time.Minute
		})).Return(stats, nil)

		got, err := uc.VisitorStats(ctx, dto.VisitorStatsRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 42, got.TotalVisits)
		mockVisitor.AssertExpectations(t)
	})

	t.Run("honors explicit window", func(t *testing.T) {
		mockVisitor := &MockVisitorRepository{}
		uc := usecase.NewAnalyticsUseCase(mockVisitor, logger, 90)

		mockVisitor.On("Stats", ctx, mock.MatchedBy(func(since time.Time) bool {
			expected := time.Now().AddDate(0, 0, -7)
			return since.Sub(expected).Abs() < time.Minute
		})).Return(&domain.VisitorStats{}, nil)

		_, err := uc.VisitorStats(ctx, dto.VisitorStatsRequest{Days: 7})

		assert.NoError(t, err)
		mockVisitor.AssertExpectations(t)
	})
}

func TestAnalyticsUseCase_ClearOldVisitors(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("deletes records beyond retention window", func(t *testing.T) {
		mockVisitor := &MockVisitorRepository{}
		uc := usecase.NewAnalyticsUseCase(mockVisitor, logger, 90)

		mockVisitor.On("DeleteOlderThan", ctx, mock.MatchedBy(func(before time.Time) bool {
			expected := time.Now().AddDate(0, 0, -90)
			return before.Sub(expected).Abs() < time.Minute
		})).Return(int64(120), nil)

		resp, err := uc.ClearOldVisitors(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(120), resp.Deleted)
	})
}
