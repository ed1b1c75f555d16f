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

// AssignmentHandler - обработчик назначений менеджеров
type AssignmentHandler struct {
	assignmentUC *usecase.AssignmentUseCase
	logger       *zap.Logger
}

// NewAssignmentHandler - создание нового AssignmentHandler
func NewAssignmentHandler(assignmentUC *usecase.AssignmentUseCase, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUC: assignmentUC,
		logger:       logger,
	}
}

// Assign godoc
// @Summary Назначение менеджера на станцию
// @Description Назначает менеджера на станцию. Предыдущий активный менеджер (если был) атомарно снимается с причиной "Replaced by another manager". Доступно только администратору.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.AssignManagerRequest true "ID менеджера"
// @Success 201 {object} utils.SuccessResponse{data=dto.AssignmentDTO}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/manager [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	actor := middleware.CurrentUser(c)
	result, err := h.assignmentUC.Assign(c.Context(), c.Params("id"), req.ManagerID, actor.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusCreated, "Manager assigned", result, nil)
}

// Remove godoc
// @Summary Снятие менеджера со станции
// @Description Закрывает активное назначение станции. Если активного назначения нет, возвращает 404. Доступно только администратору.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.RemoveManagerRequest false "Причина снятия"
// @Success 200 {object} utils.SuccessResponse{data=dto.AssignmentDTO}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/manager [delete]
func (h *AssignmentHandler) Remove(c *fiber.Ctx) error {
	var req dto.RemoveManagerRequest
	// Тело опционально: без него используется причина по умолчанию
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		if err := validator.Validate(&req); err != nil {
			return utils.SendError(c, err)
		}
	}

	actor := middleware.CurrentUser(c)
	result, err := h.assignmentUC.Remove(c.Context(), c.Params("id"), req.RemovalReason, actor.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "Manager removed", result, nil)
}

// Current godoc
// @Summary Текущий менеджер станции
// @Description Возвращает активное назначение станции. data = null, если менеджер не назначен.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.AssignmentDTO}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/manager [get]
func (h *AssignmentHandler) Current(c *fiber.Ctx) error {
	result, err := h.assignmentUC.CurrentManager(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	if result == nil {
		return utils.SendMessage(c, fiber.StatusOK, "Station has no assigned manager", nil, nil)
	}

	return utils.SendSuccess(c, result, nil)
}

// History godoc
// @Summary История назначений станции
// @Description Возвращает все назначения станции, новые первыми
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param manager_id query string false "Фильтр по менеджеру"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Success 200 {object} utils.SuccessResponse{data=dto.AssignmentHistoryResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/manager/history [get]
func (h *AssignmentHandler) History(c *fiber.Ctx) error {
	var req dto.AssignmentHistoryRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.assignmentUC.History(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}
