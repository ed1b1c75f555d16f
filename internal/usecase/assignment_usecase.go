package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// AssignmentUseCase - use case журнала назначений менеджеров
type AssignmentUseCase struct {
	assignmentRepo repository.AssignmentRepository
	stationRepo    repository.StationRepository
	userRepo       repository.UserRepository
	logger         *zap.Logger
}

// NewAssignmentUseCase - создание нового AssignmentUseCase
func NewAssignmentUseCase(
	assignmentRepo repository.AssignmentRepository,
	stationRepo repository.StationRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		assignmentRepo: assignmentRepo,
		stationRepo:    stationRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Assign назначает менеджера на станцию. Если у станции уже есть активный
// менеджер, его назначение атомарно закрывается с причиной
// "Replaced by another manager" в той же транзакции, что и создание нового.
func (uc *AssignmentUseCase) Assign(ctx context.Context, stationID, managerID, actorID string) (*dto.AssignmentDTO, error) {
	if _, err := uc.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}

	manager, err := uc.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}

	if !manager.IsStationManager() {
		return nil, errors.ErrInvalidRole
	}
	if !manager.IsActive {
		return nil, errors.ErrInactiveManager
	}

	assignment, err := uc.assignmentRepo.Transfer(ctx, stationID, managerID, actorID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Manager assigned",
		zap.String("station_id", stationID),
		zap.String("manager_id", managerID),
		zap.String("assigned_by", actorID))

	result := dto.ConvertAssignment(assignment)
	result.ManagerName = manager.Name
	return &result, nil
}

// Remove снимает активного менеджера со станции. Если активного назначения
// нет, возвращает ErrNoActiveAssignment - это ошибка, а не no-op.
func (uc *AssignmentUseCase) Remove(ctx context.Context, stationID, reason, actorID string) (*dto.AssignmentDTO, error) {
	if _, err := uc.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}

	if reason == "" {
		reason = domain.RemovalReasonDefault
	}

	assignment, err := uc.assignmentRepo.Remove(ctx, stationID, reason)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Manager removed",
		zap.String("station_id", stationID),
		zap.String("manager_id", assignment.ManagerID),
		zap.String("reason", reason),
		zap.String("removed_by", actorID))

	result := dto.ConvertAssignment(assignment)
	return &result, nil
}

// CurrentManager возвращает активное назначение станции или nil
func (uc *AssignmentUseCase) CurrentManager(ctx context.Context, stationID string) (*dto.AssignmentDTO, error) {
	if _, err := uc.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}

	assignment, err := uc.assignmentRepo.GetCurrent(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}

	result := dto.ConvertAssignment(assignment)
	if manager, err := uc.userRepo.GetByID(ctx, assignment.ManagerID); err == nil {
		result.ManagerName = manager.Name
	}
	return &result, nil
}

// History возвращает историю назначений станции, новые первыми
func (uc *AssignmentUseCase) History(ctx context.Context, stationID string, req dto.AssignmentHistoryRequest) (*dto.AssignmentHistoryResponse, error) {
	if _, err := uc.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = 15
	}

	assignments, total, err := uc.assignmentRepo.History(ctx, stationID, domain.AssignmentFilter{
		ManagerID: req.ManagerID,
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.AssignmentHistoryResponse{
		Assignments: make([]dto.AssignmentDTO, 0, len(assignments)),
		Total:       total,
		Page:        page,
		PerPage:     perPage,
	}
	for _, a := range assignments {
		resp.Assignments = append(resp.Assignments, dto.ConvertAssignment(a))
	}

	return resp, nil
}
