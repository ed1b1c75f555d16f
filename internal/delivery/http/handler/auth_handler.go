package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/delivery/http/middleware"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/pkg/validator"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// AuthHandler - обработчик аутентификации
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт менеджера станции и возвращает JWT-токен. Роль задаётся сервером, администраторов через этот эндпоинт создать нельзя.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные пользователя"
// @Success 201 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.authUC.Register(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusCreated, "User registered", result, nil)
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Проверяет учётные данные и возвращает JWT-токен
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя из токена
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	return utils.SendSuccess(c, user, nil)
}

// Refresh godoc
// @Summary Обновление токена
// @Description Выдаёт новый JWT-токен по действующему. Деактивированный пользователь новый токен не получает.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	result, err := h.authUC.Refresh(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Logout godoc
// @Summary Выход
// @Description JWT-токены stateless: сервер ничего не инвалидирует, клиент удаляет токен
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return utils.SendMessage(c, fiber.StatusOK, "Logged out", nil, nil)
}
