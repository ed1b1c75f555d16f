package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/pkg/validator"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// ManagerHandler - администрирование менеджеров станций
type ManagerHandler struct {
	managerUC *usecase.ManagerUseCase
	logger    *zap.Logger
}

// NewManagerHandler - создание нового ManagerHandler
func NewManagerHandler(managerUC *usecase.ManagerUseCase, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{
		managerUC: managerUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Список менеджеров станций
// @Description Возвращает пользователей с ролью station. Доступно только администратору.
// @Tags Managers
// @Produce json
// @Security BearerAuth
// @Param active_only query bool false "Только активные менеджеры"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Success 200 {object} utils.SuccessResponse{data=dto.ManagersResponse}
// @Router /api/v1/managers [get]
func (h *ManagerHandler) List(c *fiber.Ctx) error {
	var req dto.ListManagersRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.managerUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// Create godoc
// @Summary Создание менеджера
// @Description Создаёт пользователя с ролью station. Доступно только администратору.
// @Tags Managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateManagerRequest true "Данные менеджера"
// @Success 201 {object} utils.SuccessResponse{data=domain.User}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/managers [post]
func (h *ManagerHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	manager, err := h.managerUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusCreated, "Manager created", manager, nil)
}

// GetByID godoc
// @Summary Менеджер по ID
// @Tags Managers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID менеджера"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/managers/{id} [get]
func (h *ManagerHandler) GetByID(c *fiber.Ctx) error {
	manager, err := h.managerUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, manager, nil)
}

// Update godoc
// @Summary Обновление менеджера
// @Description Частичное обновление. is_active=false деактивирует менеджера: он не может войти и получить новое назначение.
// @Tags Managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID менеджера"
// @Param request body dto.UpdateManagerRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/managers/{id} [patch]
func (h *ManagerHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	manager, err := h.managerUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "Manager updated", manager, nil)
}

// Delete godoc
// @Summary Удаление менеджера
// @Description Удаляет менеджера вместе с историей его назначений
// @Tags Managers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID менеджера"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/managers/{id} [delete]
func (h *ManagerHandler) Delete(c *fiber.Ctx) error {
	if err := h.managerUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "Manager deleted", nil, nil)
}
