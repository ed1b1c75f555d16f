package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

func TestManagerUseCase_List(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("lists station managers with defaults", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		managers := []*domain.User{
			{ID: "m-1", Role: domain.RoleStationManager},
			{ID: "m-2", Role: domain.RoleStationManager},
		}
		mockUser.On("ListByRole", ctx, domain.RoleStationManager, false, 1, 15).
			Return(managers, 2, nil)

		resp, err := uc.List(ctx, dto.ListManagersRequest{})

		assert.NoError(t, err)
		assert.Len(t, resp.Managers, 2)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 15, resp.PerPage)
	})

	t.Run("active_only is passed through", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("ListByRole", ctx, domain.RoleStationManager, true, 2, 5).
			Return([]*domain.User{}, 0, nil)

		_, err := uc.List(ctx, dto.ListManagersRequest{ActiveOnly: true, Page: 2, PerPage: 5})

		assert.NoError(t, err)
		mockUser.AssertExpectations(t)
	})
}

func TestManagerUseCase_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates active manager with station role and hashed password", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleStationManager &&
				u.IsActive &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")) == nil
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "m-1"
		})

		manager, err := uc.Create(ctx, dto.CreateManagerRequest{
			Name:     "Manager",
			Email:    "manager@example.com",
			Password: "secret-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "m-1", manager.ID)
		assert.Equal(t, domain.RoleStationManager, manager.Role)
	})

	t.Run("duplicate email surfaces repository error", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("Create", ctx, mock.Anything).Return(errors.ErrEmailTaken)

		_, err := uc.Create(ctx, dto.CreateManagerRequest{
			Name:     "Dup",
			Email:    "taken@example.com",
			Password: "secret-password",
		})

		assert.ErrorIs(t, err, errors.ErrEmailTaken)
	})
}

func TestManagerUseCase_Get(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns manager by id", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("GetByID", ctx, "m-1").
			Return(&domain.User{ID: "m-1", Role: domain.RoleStationManager}, nil)

		manager, err := uc.Get(ctx, "m-1")

		assert.NoError(t, err)
		assert.Equal(t, "m-1", manager.ID)
	})

	t.Run("admin is not visible as a manager", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("GetByID", ctx, "a-1").
			Return(&domain.User{ID: "a-1", Role: domain.RoleAdmin}, nil)

		_, err := uc.Get(ctx, "a-1")

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestManagerUseCase_Update(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		existing := &domain.User{
			ID:       "m-1",
			Name:     "Old Name",
			Email:    "old@example.com",
			Role:     domain.RoleStationManager,
			IsActive: true,
		}
		mockUser.On("GetByID", ctx, "m-1").Return(existing, nil)
		mockUser.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "New Name" && u.Email == "old@example.com"
		})).Return(nil)

		manager, err := uc.Update(ctx, "m-1", dto.UpdateManagerRequest{
			Name: ptrString("New Name"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", manager.Name)
		assert.True(t, manager.IsActive)
	})

	t.Run("is_active false deactivates manager", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		existing := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		mockUser.On("GetByID", ctx, "m-1").Return(existing, nil)
		mockUser.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return !u.IsActive
		})).Return(nil)

		manager, err := uc.Update(ctx, "m-1", dto.UpdateManagerRequest{
			IsActive: ptrBool(false),
		})

		assert.NoError(t, err)
		assert.False(t, manager.IsActive)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		existing := &domain.User{ID: "m-1", Role: domain.RoleStationManager, IsActive: true}
		mockUser.On("GetByID", ctx, "m-1").Return(existing, nil)
		mockUser.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
		})).Return(nil)

		_, err := uc.Update(ctx, "m-1", dto.UpdateManagerRequest{
			Password: ptrString("new-password"),
		})

		assert.NoError(t, err)
		mockUser.AssertExpectations(t)
	})
}

func TestManagerUseCase_Delete(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("deletes existing manager", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("GetByID", ctx, "m-1").
			Return(&domain.User{ID: "m-1", Role: domain.RoleStationManager}, nil)
		mockUser.On("Delete", ctx, "m-1").Return(nil)

		assert.NoError(t, uc.Delete(ctx, "m-1"))
	})

	t.Run("unknown manager yields not found", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewManagerUseCase(mockUser, logger)

		mockUser.On("GetByID", ctx, "ghost").Return(nil, errors.ErrUserNotFound)

		err := uc.Delete(ctx, "ghost")

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		mockUser.AssertNotCalled(t, "Delete")
	})
}
