package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/usecase/dto"
)

const nearbyCachePrefix = "nearby:"

// StationUseCase - use case для управления станциями
type StationUseCase struct {
	stationRepo repository.StationRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
}

// NewStationUseCase - создание нового StationUseCase
func NewStationUseCase(
	stationRepo repository.StationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// Create создаёт новую станцию (только администратор, проверяется в handler)
func (uc *StationUseCase) Create(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.PricePerKg != nil && *req.PricePerKg < 0 {
		return nil, errors.ErrInvalidPrice
	}

	station := &domain.Station{
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		OperatingHours: req.OperatingHours,
		PricePerKg:     req.PricePerKg,
		ImageURL:       req.ImageURL,
		IsAvailable:    true,
		IsActive:       true,
	}
	if req.IsAvailable != nil {
		station.IsAvailable = *req.IsAvailable
	}

	if err := uc.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}

	uc.invalidateNearbyCache(ctx)
	return station, nil
}

// GetByID возвращает станцию по ID
func (uc *StationUseCase) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	return uc.stationRepo.GetByID(ctx, id)
}

// List возвращает станции по фильтрам с пагинацией
func (uc *StationUseCase) List(ctx context.Context, req dto.ListStationsRequest) (*dto.ListStationsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = 15
	}

	stations, total, err := uc.stationRepo.List(ctx, domain.StationFilter{
		Assigned:  req.Assigned,
		Available: req.Available,
		SortBy:    req.SortBy,
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ListStationsResponse{
		Stations: make([]dto.StationDTO, 0, len(stations)),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
	for _, s := range stations {
		resp.Stations = append(resp.Stations, dto.ConvertStation(s))
	}

	return resp, nil
}

// Update частично обновляет станцию
func (uc *StationUseCase) Update(ctx context.Context, id string, req dto.UpdateStationRequest) (*domain.Station, error) {
	station, err := uc.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Address != nil {
		station.Address = *req.Address
	}
	if req.Phone != nil {
		station.Phone = *req.Phone
	}
	if req.Email != nil {
		station.Email = *req.Email
	}
	if req.Latitude != nil {
		station.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		station.Longitude = *req.Longitude
	}
	if !utils.ValidateCoordinates(station.Latitude, station.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.OperatingHours != nil {
		station.OperatingHours = *req.OperatingHours
	}
	if req.PricePerKg != nil {
		if *req.PricePerKg < 0 {
			return nil, errors.ErrInvalidPrice
		}
		station.PricePerKg = req.PricePerKg
	}
	if req.ImageURL != nil {
		station.ImageURL = req.ImageURL
	}

	if err := uc.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}

	uc.invalidateNearbyCache(ctx)
	return station, nil
}

// Delete жёстко удаляет станцию вместе с журналами (каскад в БД)
func (uc *StationUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.stationRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateNearbyCache(ctx)
	return nil
}

// SetAvailability переключает операционную доступность станции.
// Запись в журнал доступности создаётся на каждый вызов, даже если
// значение не изменилось.
func (uc *StationUseCase) SetAvailability(ctx context.Context, stationID string, isAvailable bool, actorID string) (*domain.Station, error) {
	station, err := uc.stationRepo.SetAvailability(ctx, stationID, isAvailable, actorID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Station availability changed",
		zap.String("station_id", stationID),
		zap.Bool("is_available", isAvailable),
		zap.String("actor_id", actorID))

	uc.invalidateNearbyCache(ctx)
	return station, nil
}

// SetPrice обновляет цену за килограмм и пишет запись в историю цен
func (uc *StationUseCase) SetPrice(ctx context.Context, stationID string, price float64, actorID string) (*domain.Station, error) {
	if price < 0 {
		return nil, errors.ErrInvalidPrice
	}

	station, err := uc.stationRepo.SetPrice(ctx, stationID, price, actorID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Station price changed",
		zap.String("station_id", stationID),
		zap.Float64("price_per_kg", price),
		zap.String("actor_id", actorID))

	uc.invalidateNearbyCache(ctx)
	return station, nil
}

// SetActive переключает постоянный статус открыта/закрыта
func (uc *StationUseCase) SetActive(ctx context.Context, stationID string, isActive bool) (*domain.Station, error) {
	station, err := uc.stationRepo.SetActive(ctx, stationID, isActive)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Station active status changed",
		zap.String("station_id", stationID),
		zap.Bool("is_active", isActive))

	uc.invalidateNearbyCache(ctx)
	return station, nil
}

// PriceHistory возвращает историю цен станции, новые записи первыми
func (uc *StationUseCase) PriceHistory(ctx context.Context, stationID string, page, perPage int) (*dto.PriceHistoryResponse, error) {
	if _, err := uc.stationRepo.GetByID(ctx, stationID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	entries, total, err := uc.stationRepo.PriceHistory(ctx, stationID, page, perPage)
	if err != nil {
		return nil, err
	}

	return &dto.PriceHistoryResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// ExportPriceHistory собирает XLSX-отчёт по истории цен станции
func (uc *StationUseCase) ExportPriceHistory(ctx context.Context, stationID string) ([]byte, string, error) {
	station, err := uc.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return nil, "", err
	}

	// Вся история без пагинации, но с разумным потолком
	entries, _, err := uc.stationRepo.PriceHistory(ctx, stationID, 1, 10000)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "price_history"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Station")
	_ = f.SetCellValue(sheet, "B1", station.Name)
	_ = f.SetCellValue(sheet, "A3", "Effective From")
	_ = f.SetCellValue(sheet, "B3", "Price Per Kg")
	_ = f.SetCellValue(sheet, "C3", "Updated By")

	for i, entry := range entries {
		row := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.EffectiveFrom.Format("2006-01-02 15:04:05"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.PricePerKg)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.UpdatedBy)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		uc.logger.Error("Failed to build price history export",
			zap.String("station_id", stationID), zap.Error(err))
		return nil, "", errors.ErrInternalServer
	}

	filename := fmt.Sprintf("price-history-%s.xlsx", station.ID)
	return buf.Bytes(), filename, nil
}

// invalidateNearbyCache сбрасывает кэш радиусного поиска после мутаций.
// Сбой инвалидации не фатален: записи истекут по TTL.
func (uc *StationUseCase) invalidateNearbyCache(ctx context.Context) {
	if err := uc.cacheRepo.DeleteByPrefix(ctx, nearbyCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate nearby cache", zap.Error(err))
	}
}
