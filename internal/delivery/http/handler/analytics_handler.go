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

// AnalyticsHandler - обработчик статистики посещений
type AnalyticsHandler struct {
	analyticsUC *usecase.AnalyticsUseCase
	logger      *zap.Logger
}

// NewAnalyticsHandler - создание нового AnalyticsHandler
func NewAnalyticsHandler(analyticsUC *usecase.AnalyticsUseCase, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: analyticsUC,
		logger:      logger,
	}
}

// Stats godoc
// @Summary Статистика посещений API
// @Description Возвращает агрегированную статистику посещений за последние N дней. Доступно только администратору.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Окно в днях" default(30)
// @Success 200 {object} utils.SuccessResponse{data=domain.VisitorStats}
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/analytics/visitors [get]
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	var req dto.VisitorStatsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.analyticsUC.VisitorStats(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Clear godoc
// @Summary Очистка устаревших записей о посещениях
// @Description Удаляет записи старше окна хранения. Доступно только администратору.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.ClearAnalyticsResponse}
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/analytics/visitors [delete]
func (h *AnalyticsHandler) Clear(c *fiber.Ctx) error {
	result, err := h.analyticsUC.ClearOldVisitors(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "Old visitor records cleared", result, nil)
}
