package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/pkg/auth"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

const testJWTSecret = "test-secret-key"

func hashedUser(id, email, password, role string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           id,
		Name:         "User " + id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func TestAuthUseCase_Register(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates user with hashed password and returns token", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		mockUser.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			if u.PasswordHash == "secret-password" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")) == nil
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "u-1"
		})

		resp, err := uc.Register(ctx, dto.RegisterRequest{
			Name:     "New Manager",
			Email:    "manager@example.com",
			Password: "secret-password",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.User.IsActive)

		claims, err := auth.ParseToken(resp.Token, []byte(testJWTSecret))
		assert.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, domain.RoleStationManager, claims.Role)
	})

	t.Run("client cannot pick role or station at registration", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		mockUser.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "u-2"
		})

		// role и station_id в теле запроса игнорируются при разборе
		var req dto.RegisterRequest
		body := `{"name":"Sneaky","email":"sneaky@example.com","password":"secret-password","role":"admin","station_id":"st-1"}`
		assert.NoError(t, json.Unmarshal([]byte(body), &req))

		resp, err := uc.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStationManager, resp.User.Role)
		assert.Nil(t, resp.User.StationID)

		claims, err := auth.ParseToken(resp.Token, []byte(testJWTSecret))
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStationManager, claims.Role)
	})

	t.Run("duplicate email surfaces repository error", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		mockUser.On("Create", ctx, mock.Anything).Return(errors.ErrEmailTaken)

		_, err := uc.Register(ctx, dto.RegisterRequest{
			Name:     "Dup",
			Email:    "taken@example.com",
			Password: "secret-password",
		})

		assert.ErrorIs(t, err, errors.ErrEmailTaken)
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("active user gets a fresh token", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		user := hashedUser("u-1", "admin@example.com", "secret-password", domain.RoleAdmin, true)

		resp, err := uc.Refresh(ctx, user)

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		claims, err := auth.ParseToken(resp.Token, []byte(testJWTSecret))
		assert.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("deactivated user rejected", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		user := hashedUser("u-1", "old@example.com", "secret-password", domain.RoleStationManager, false)

		_, err := uc.Refresh(ctx, user)

		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})

	t.Run("missing user rejected", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		_, err := uc.Refresh(ctx, nil)

		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("valid credentials yield token", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		user := hashedUser("u-1", "admin@example.com", "secret-password", domain.RoleAdmin, true)
		mockUser.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)

		resp, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "secret-password",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "u-1", resp.User.ID)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		user := hashedUser("u-1", "admin@example.com", "secret-password", domain.RoleAdmin, true)
		mockUser.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)

		_, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("unknown email rejected with same error", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		mockUser.On("GetByEmail", ctx, "ghost@example.com").Return(nil, errors.ErrUserNotFound)

		_, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret-password",
		})

		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		user := hashedUser("u-1", "old@example.com", "secret-password", domain.RoleStationManager, false)
		mockUser.On("GetByEmail", ctx, "old@example.com").Return(user, nil)

		_, err := uc.Login(ctx, dto.LoginRequest{
			Email:    "old@example.com",
			Password: "secret-password",
		})

		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("valid token resolves fresh user", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		token, err := auth.IssueToken("u-1", domain.RoleAdmin, []byte(testJWTSecret), time.Hour)
		assert.NoError(t, err)

		user := hashedUser("u-1", "admin@example.com", "secret-password", domain.RoleAdmin, true)
		mockUser.On("GetByID", ctx, "u-1").Return(user, nil)

		got, err := uc.Authenticate(ctx, token)

		assert.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		_, err := uc.Authenticate(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		mockUser.AssertNotCalled(t, "GetByID")
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		token, err := auth.IssueToken("u-1", domain.RoleAdmin, []byte("other-secret"), time.Hour)
		assert.NoError(t, err)

		_, err = uc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})

	t.Run("deactivated user rejected even with valid token", func(t *testing.T) {
		mockUser := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(mockUser, logger, testJWTSecret, time.Hour)

		token, err := auth.IssueToken("u-1", domain.RoleStationManager, []byte(testJWTSecret), time.Hour)
		assert.NoError(t, err)

		user := hashedUser("u-1", "old@example.com", "secret-password", domain.RoleStationManager, false)
		mockUser.On("GetByID", ctx, "u-1").Return(user, nil)

		_, err = uc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, errors.ErrUnauthorized)
	})
}
