package domain

import "time"

// Причины закрытия назначения по умолчанию
const (
	RemovalReasonReplaced = "Replaced by another manager"
	RemovalReasonDefault  = "Manager removed"
)

// ManagerAssignment - интервал назначения менеджера на станцию.
// Записи только добавляются: снятие менеджера проставляет removed_at,
// строка никогда не удаляется физически.
type ManagerAssignment struct {
	ID            string     `json:"id" db:"id"`
	ManagerID     string     `json:"manager_id" db:"manager_id"`
	StationID     string     `json:"station_id" db:"station_id"`
	AssignedBy    string     `json:"assigned_by" db:"assigned_by"`
	AssignedAt    time.Time  `json:"assigned_at" db:"assigned_at"`
	RemovedAt     *time.Time `json:"removed_at" db:"removed_at"`
	RemovalReason *string    `json:"removal_reason" db:"removal_reason"`
}

// IsActiveAssignment - назначение активно, пока removed_at не проставлен
func (a *ManagerAssignment) IsActiveAssignment() bool {
	return a.RemovedAt == nil
}

// AssignmentFilter - фильтры истории назначений станции
type AssignmentFilter struct {
	ManagerID string
	Page      int
	PerPage   int
}
