package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/usecase/dto"
)

const defaultStatsDays = 30

// AnalyticsUseCase - агрегация и очистка статистики посещений
type AnalyticsUseCase struct {
	visitorRepo   repository.VisitorRepository
	logger        *zap.Logger
	retentionDays int
}

// NewAnalyticsUseCase - создание нового AnalyticsUseCase
func NewAnalyticsUseCase(
	visitorRepo repository.VisitorRepository,
	logger *zap.Logger,
	retentionDays int,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		visitorRepo:   visitorRepo,
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// VisitorStats возвращает агрегированную статистику за последние N дней
func (uc *AnalyticsUseCase) VisitorStats(ctx context.Context, req dto.VisitorStatsRequest) (*domain.VisitorStats, error) {
	days := req.Days
	if days < 1 {
		days = defaultStatsDays
	}

	since := time.Now().AddDate(0, 0, -days)
	return uc.visitorRepo.Stats(ctx, since)
}

// ClearOldVisitors удаляет записи старше окна хранения
func (uc *AnalyticsUseCase) ClearOldVisitors(ctx context.Context) (*dto.ClearAnalyticsResponse, error) {
	before := time.Now().AddDate(0, 0, -uc.retentionDays)

	deleted, err := uc.visitorRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Old visitor records cleared",
		zap.Int64("deleted", deleted),
		zap.Int("retention_days", uc.retentionDays))

	return &dto.ClearAnalyticsResponse{Deleted: deleted}, nil
}
