package repository

import (
	"context"
	"time"

	"github.com/lpg-station-service/internal/domain"
)

// VisitorRepository - хранилище записей о посещениях
type VisitorRepository interface {
	// Create сохраняет запись о посещении
	Create(ctx context.Context, visitor *domain.Visitor) error

	// Stats возвращает агрегированную статистику за период
	Stats(ctx context.Context, since time.Time) (*domain.VisitorStats, error)

	// DeleteOlderThan удаляет записи старше указанного момента,
	// возвращает количество удалённых строк
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
