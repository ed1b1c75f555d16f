package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/usecase/dto"
)

const defaultRadiusKm = 5

// NearbyUseCase - use case радиусного поиска станций
type NearbyUseCase struct {
	stationRepo repository.StationRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewNearbyUseCase - создание нового NearbyUseCase
func NewNearbyUseCase(
	stationRepo repository.StationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *NearbyUseCase {
	return &NearbyUseCase{
		stationRepo: stationRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// GetNearbyStations находит активные станции в радиусе от точки.
// Неактивные станции (is_active = false) в выдачу не попадают никогда.
// Граница радиуса включающая: станция ровно на расстоянии radius входит
// в результат.
func (uc *NearbyUseCase) GetNearbyStations(ctx context.Context, req dto.NearbyStationsRequest) (*dto.NearbyStationsResponse, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	if req.RadiusKm == 0 {
		req.RadiusKm = defaultRadiusKm
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	cacheKey := fmt.Sprintf("nearby:%.5f:%.5f:%d:%t",
		req.Latitude, req.Longitude, req.RadiusKm, req.AvailableOnly)

	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.NearbyStationsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Failed to unmarshal cached nearby response", zap.String("key", cacheKey))
	}

	stations, err := uc.stationRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("Failed to list active stations", zap.Error(err))
		return nil, err
	}

	var inRadius []domain.StationWithDistance
	for _, s := range stations {
		distance := utils.HaversineDistance(req.Latitude, req.Longitude, s.Latitude, s.Longitude)
		if distance <= float64(req.RadiusKm) {
			inRadius = append(inRadius, domain.StationWithDistance{
				Station:    *s,
				DistanceKm: distance,
			})
		}
	}

	ranked := RankNearby(inRadius, req.AvailableOnly)

	resp := &dto.NearbyStationsResponse{
		Stations:         make([]dto.StationDTO, 0, len(ranked.Ordered)),
		AvailableCount:   ranked.AvailableCount,
		UnavailableCount: ranked.UnavailableCount,
		RadiusKm:         req.RadiusKm,
	}
	for _, s := range ranked.Ordered {
		resp.Stations = append(resp.Stations, dto.ConvertStationWithDistance(s))
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache nearby response", zap.String("key", cacheKey))
		}
	}

	return resp, nil
}
