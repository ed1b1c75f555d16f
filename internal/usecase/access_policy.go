package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
)

// AccessPolicy решает, может ли пользователь управлять станцией.
// У менеджера два независимых источника прав: legacy-колонка station_id
// и активное назначение в журнале. На время миграции учитываются оба.
type AccessPolicy struct {
	assignmentRepo repository.AssignmentRepository
	logger         *zap.Logger
}

// NewAccessPolicy - создание новой AccessPolicy
func NewAccessPolicy(assignmentRepo repository.AssignmentRepository, logger *zap.Logger) *AccessPolicy {
	return &AccessPolicy{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// CanManage возвращает true, если пользователь может управлять станцией:
// администратор - любой станцией, менеджер - только своей (по legacy-колонке
// или по активному назначению в журнале)
func (p *AccessPolicy) CanManage(ctx context.Context, user *domain.User, stationID string) (bool, error) {
	if user == nil {
		return false, nil
	}

	if user.IsAdmin() {
		return true, nil
	}

	if !user.IsStationManager() {
		return false, nil
	}

	if user.StationID != nil && *user.StationID == stationID {
		return true, nil
	}

	assigned, err := p.assignmentRepo.HasActiveAssignment(ctx, user.ID, stationID)
	if err != nil {
		p.logger.Error("Failed to check ledger assignment",
			zap.String("user_id", user.ID),
			zap.String("station_id", stationID),
			zap.Error(err))
		return false, err
	}

	return assigned, nil
}
