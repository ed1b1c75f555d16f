package repository

import (
	"context"

	"github.com/lpg-station-service/internal/domain"
)

// StationRepository - доступ к станциям и их журналам
type StationRepository interface {
	// Create создаёт станцию
	Create(ctx context.Context, station *domain.Station) error

	// GetByID возвращает станцию по ID
	GetByID(ctx context.Context, id string) (*domain.Station, error)

	// List возвращает станции по фильтрам с общим количеством
	List(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, int, error)

	// ListActive возвращает все постоянно открытые станции (is_active = true)
	ListActive(ctx context.Context) ([]*domain.Station, error)

	// Update обновляет поля станции
	Update(ctx context.Context, station *domain.Station) error

	// Delete жёстко удаляет станцию; журналы удаляются каскадом
	Delete(ctx context.Context, id string) error

	// SetAvailability в одной транзакции пишет запись журнала и обновляет
	// is_available. Запись журнала создаётся даже если значение не изменилось.
	SetAvailability(ctx context.Context, stationID string, isAvailable bool, actorID string) (*domain.Station, error)

	// SetPrice в одной транзакции пишет запись истории цен (effective_from = now)
	// и обновляет текущую цену станции
	SetPrice(ctx context.Context, stationID string, price float64, actorID string) (*domain.Station, error)

	// SetActive переключает постоянный статус открыта/закрыта,
	// журнал доступности при этом не трогается
	SetActive(ctx context.Context, stationID string, isActive bool) (*domain.Station, error)

	// PriceHistory возвращает историю цен станции, новые записи первыми
	PriceHistory(ctx context.Context, stationID string, page, perPage int) ([]*domain.PriceHistoryEntry, int, error)
}
