package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// ManagerUseCase - администрирование менеджеров станций: список,
// создание, обновление и деактивация. Деактивированный менеджер
// не может войти и не может получить новое назначение.
type ManagerUseCase struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewManagerUseCase - создание нового ManagerUseCase
func NewManagerUseCase(userRepo repository.UserRepository, logger *zap.Logger) *ManagerUseCase {
	return &ManagerUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List возвращает менеджеров станций с пагинацией
func (uc *ManagerUseCase) List(ctx context.Context, req dto.ListManagersRequest) (*dto.ManagersResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = 15
	}

	managers, total, err := uc.userRepo.ListByRole(ctx, domain.RoleStationManager, req.ActiveOnly, page, perPage)
	if err != nil {
		return nil, err
	}

	return &dto.ManagersResponse{
		Managers: managers,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// Create создаёт менеджера станции. Роль всегда station.
func (uc *ManagerUseCase) Create(ctx context.Context, req dto.CreateManagerRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	manager := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleStationManager,
		IsActive:     true,
	}

	if err := uc.userRepo.Create(ctx, manager); err != nil {
		return nil, err
	}

	uc.logger.Info("Manager created", zap.String("manager_id", manager.ID))
	return manager, nil
}

// Get возвращает менеджера по ID. Пользователи с другой ролью
// через этот use case не видны.
func (uc *ManagerUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	manager, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !manager.IsStationManager() {
		return nil, errors.ErrUserNotFound
	}
	return manager, nil
}

// Update частично обновляет менеджера. IsActive=false деактивирует его.
func (uc *ManagerUseCase) Update(ctx context.Context, id string, req dto.UpdateManagerRequest) (*domain.User, error) {
	manager, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		manager.Name = *req.Name
	}
	if req.Email != nil {
		manager.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.logger.Error("Failed to hash password", zap.Error(err))
			return nil, errors.ErrInternalServer
		}
		manager.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		manager.IsActive = *req.IsActive
	}

	if err := uc.userRepo.Update(ctx, manager); err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		uc.logger.Info("Manager deactivated", zap.String("manager_id", id))
	}

	return manager, nil
}

// Delete удаляет менеджера. История его назначений удаляется каскадом.
func (uc *ManagerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Manager deleted", zap.String("manager_id", id))
	return nil
}
