package repository

import (
	"context"

	"github.com/lpg-station-service/internal/domain"
)

// AssignmentRepository - журнал назначений менеджеров на станции.
// Инвариант: не более одного активного назначения (removed_at IS NULL)
// на станцию в любой момент времени.
type AssignmentRepository interface {
	// Transfer атомарно закрывает активное назначение станции (если есть)
	// с причиной RemovalReasonReplaced и создаёт новое. Наблюдатель никогда
	// не видит двух активных или нуля активных строк в середине операции.
	Transfer(ctx context.Context, stationID, managerID, assignedBy string) (*domain.ManagerAssignment, error)

	// Remove закрывает активное назначение станции с указанной причиной.
	// Возвращает ErrNoActiveAssignment, если активного назначения нет.
	Remove(ctx context.Context, stationID, reason string) (*domain.ManagerAssignment, error)

	// GetCurrent возвращает активное назначение станции или nil
	GetCurrent(ctx context.Context, stationID string) (*domain.ManagerAssignment, error)

	// History возвращает все назначения станции, новые assigned_at первыми
	History(ctx context.Context, stationID string, filter domain.AssignmentFilter) ([]*domain.ManagerAssignment, int, error)

	// HasActiveAssignment проверяет, есть ли у менеджера активное назначение
	// на конкретную станцию
	HasActiveAssignment(ctx context.Context, managerID, stationID string) (bool, error)
}
