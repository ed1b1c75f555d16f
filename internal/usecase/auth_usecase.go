package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/auth"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// AuthUseCase - регистрация, вход и выдача токенов
type AuthUseCase struct {
	userRepo  repository.UserRepository
	logger    *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthUseCase - создание нового AuthUseCase
func NewAuthUseCase(
	userRepo repository.UserRepository,
	logger *zap.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register создаёт пользователя и выдаёт токен. Публичная регистрация
// всегда создаёт пользователя с ролью station и без привязки к станции:
// роль admin и назначения на станции выдаёт только администратор.
func (uc *AuthUseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleStationManager,
		IsActive:     true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.IssueToken(user.ID, user.Role, uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		uc.logger.Error("Failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	uc.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))

	return &dto.AuthResponse{User: user, Token: token}, nil
}

// Login проверяет учётные данные и выдаёт токен. Деактивированный
// пользователь войти не может.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Не раскрываем, существует ли email
		return nil, errors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID, user.Role, uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		uc.logger.Error("Failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.AuthResponse{User: user, Token: token}, nil
}

// Refresh выдаёт новый токен уже аутентифицированному пользователю,
// продлевая сессию без повторного ввода пароля
func (uc *AuthUseCase) Refresh(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	if user == nil || !user.IsActive {
		return nil, errors.ErrUnauthorized
	}

	token, err := auth.IssueToken(user.ID, user.Role, uc.jwtSecret, uc.tokenTTL)
	if err != nil {
		uc.logger.Error("Failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.AuthResponse{User: user, Token: token}, nil
}

// Authenticate валидирует токен и возвращает актуальную запись пользователя.
// Запись перечитывается из БД, чтобы роль и is_active были свежими.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := auth.ParseToken(token, uc.jwtSecret)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, errors.ErrUnauthorized
	}

	return user, nil
}
