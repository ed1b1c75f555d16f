package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/delivery/http/middleware"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/pkg/validator"
	"github.com/lpg-station-service/internal/usecase"
	"github.com/lpg-station-service/internal/usecase/dto"
)

// StationHandler - обработчик станций
type StationHandler struct {
	stationUC    *usecase.StationUseCase
	nearbyUC     *usecase.NearbyUseCase
	accessPolicy *usecase.AccessPolicy
	logger       *zap.Logger
}

// NewStationHandler - создание нового StationHandler
func NewStationHandler(
	stationUC *usecase.StationUseCase,
	nearbyUC *usecase.NearbyUseCase,
	accessPolicy *usecase.AccessPolicy,
	logger *zap.Logger,
) *StationHandler {
	return &StationHandler{
		stationUC:    stationUC,
		nearbyUC:     nearbyUC,
		accessPolicy: accessPolicy,
		logger:       logger,
	}
}

// GetNearby godoc
// @Summary Поиск станций в радиусе
// @Description Возвращает активные станции в радиусе от точки: сначала доступные по возрастанию расстояния, затем недоступные. Счётчики в meta позволяют отличить пустой радиус от радиуса без доступных станций.
// @Tags Stations
// @Accept json
// @Produce json
// @Param latitude query number true "Широта точки поиска"
// @Param longitude query number true "Долгота точки поиска"
// @Param radius query int false "Радиус поиска в километрах (1-100)" default(5)
// @Param available_only query bool false "Вернуть только доступные станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyStationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stations/nearby [get]
func (h *StationHandler) GetNearby(c *fiber.Ctx) error {
	var req dto.NearbyStationsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearbyUC.GetNearbyStations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{
		RadiusKm:         result.RadiusKm,
		AvailableCount:   result.AvailableCount,
		UnavailableCount: result.UnavailableCount,
	}

	switch {
	case result.AvailableCount == 0 && result.UnavailableCount == 0:
		return utils.SendMessage(c, fiber.StatusOK,
			fmt.Sprintf("No stations found within %d km", result.RadiusKm), result, meta)
	case result.AvailableCount == 0:
		return utils.SendMessage(c, fiber.StatusOK,
			"Stations found, but none are available right now", result, meta)
	default:
		return utils.SendSuccess(c, result, meta)
	}
}

// List godoc
// @Summary Список станций
// @Description Возвращает станции с фильтрами по назначенности менеджера и доступности
// @Tags Stations
// @Accept json
// @Produce json
// @Param assigned query bool false "Только станции с активным менеджером (или без него)"
// @Param available query bool false "Фильтр по доступности"
// @Param sort_by query string false "Сортировка (name, price_per_kg, updated_at)"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы" default(15)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListStationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) List(c *fiber.Ctx) error {
	var req dto.ListStationsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.stationUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// GetByID godoc
// @Summary Станция по ID
// @Tags Stations
// @Produce json
// @Param id path string true "ID станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [get]
func (h *StationHandler) GetByID(c *fiber.Ctx) error {
	station, err := h.stationUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// Create godoc
// @Summary Создание станции
// @Description Создаёт новую станцию. Доступно только администратору.
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStationRequest true "Данные станции"
// @Success 201 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/stations [post]
func (h *StationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stationUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusCreated, "Station created", dto.ConvertStation(station), nil)
}

// Update godoc
// @Summary Обновление станции
// @Description Частично обновляет поля станции. Доступно только администратору.
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.UpdateStationRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [patch]
func (h *StationHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stationUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// Delete godoc
// @Summary Удаление станции
// @Description Удаляет станцию вместе с её журналами. Доступно только администратору.
// @Tags Stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [delete]
func (h *StationHandler) Delete(c *fiber.Ctx) error {
	if err := h.stationUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, "Station deleted", nil, nil)
}

// SetAvailability godoc
// @Summary Переключение доступности станции
// @Description Меняет операционную доступность станции и пишет запись в журнал доступности. Доступно администратору и менеджеру этой станции.
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.SetAvailabilityRequest true "Новая доступность"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/availability [patch]
func (h *StationHandler) SetAvailability(c *fiber.Ctx) error {
	stationID := c.Params("id")

	if err := h.requireStationAccess(c, stationID); err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	actor := middleware.CurrentUser(c)
	station, err := h.stationUC.SetAvailability(c.Context(), stationID, *req.IsAvailable, actor.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// SetPrice godoc
// @Summary Обновление цены за килограмм
// @Description Обновляет цену станции и пишет запись в историю цен. Доступно администратору и менеджеру этой станции.
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.SetPriceRequest true "Новая цена"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/price [patch]
func (h *StationHandler) SetPrice(c *fiber.Ctx) error {
	stationID := c.Params("id")

	if err := h.requireStationAccess(c, stationID); err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	actor := middleware.CurrentUser(c)
	station, err := h.stationUC.SetPrice(c.Context(), stationID, req.PricePerKg, actor.ID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// SetActive godoc
// @Summary Постоянное открытие/закрытие станции
// @Description Переключает is_active. Закрытая станция исчезает из радиусного поиска. Доступно администратору и менеджеру этой станции.
// @Tags Stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Param request body dto.SetActiveRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationDTO}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/status [patch]
func (h *StationHandler) SetActive(c *fiber.Ctx) error {
	stationID := c.Params("id")

	if err := h.requireStationAccess(c, stationID); err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stationUC.SetActive(c.Context(), stationID, *req.IsActive)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertStation(station), nil)
}

// PriceHistory godoc
// @Summary История цен станции
// @Tags Stations
// @Produce json
// @Param id path string true "ID станции"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.PriceHistoryResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/price-history [get]
func (h *StationHandler) PriceHistory(c *fiber.Ctx) error {
	result, err := h.stationUC.PriceHistory(c.Context(), c.Params("id"),
		c.QueryInt("page", 1), c.QueryInt("per_page", 20))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// ExportPriceHistory godoc
// @Summary Экспорт истории цен в XLSX
// @Description Выгружает историю цен станции. Доступно администратору и менеджеру этой станции.
// @Tags Stations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "ID станции"
// @Success 200 {file} binary
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/price-history/export [get]
func (h *StationHandler) ExportPriceHistory(c *fiber.Ctx) error {
	stationID := c.Params("id")

	if err := h.requireStationAccess(c, stationID); err != nil {
		return utils.SendError(c, err)
	}

	data, filename, err := h.stationUC.ExportPriceHistory(c.Context(), stationID)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// requireStationAccess проверяет, что текущий пользователь может управлять
// станцией (администратор или её менеджер)
func (h *StationHandler) requireStationAccess(c *fiber.Ctx, stationID string) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return errors.ErrUnauthorized
	}

	allowed, err := h.accessPolicy.CanManage(c.Context(), user, stationID)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.ErrForbidden
	}
	return nil
}
