package domain

import "time"

// Station - заправочная станция LPG
type Station struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Address        string    `json:"address" db:"address"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	Latitude       float64   `json:"latitude" db:"latitude"`
	Longitude      float64   `json:"longitude" db:"longitude"`
	IsAvailable    bool      `json:"is_available" db:"is_available"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	PricePerKg     *float64  `json:"price_per_kg" db:"price_per_kg"`
	OperatingHours string    `json:"operating_hours" db:"operating_hours"`
	ImageURL       *string   `json:"image,omitempty" db:"image"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// StationWithDistance - станция с вычисленным расстоянием до точки поиска.
// Заполняется только в результатах радиусного поиска.
type StationWithDistance struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}

// AvailabilityLogEntry - неизменяемая запись журнала доступности станции
type AvailabilityLogEntry struct {
	ID          string    `json:"id" db:"id"`
	StationID   string    `json:"station_id" db:"station_id"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	ChangedBy   string    `json:"changed_by" db:"changed_by"`
	ChangedAt   time.Time `json:"changed_at" db:"changed_at"`
}

// PriceHistoryEntry - неизменяемая запись истории цен.
// Текущая цена станции всегда соответствует записи с последним effective_from.
type PriceHistoryEntry struct {
	ID            string    `json:"id" db:"id"`
	StationID     string    `json:"station_id" db:"station_id"`
	PricePerKg    float64   `json:"price_per_kg" db:"price_per_kg"`
	EffectiveFrom time.Time `json:"effective_from" db:"effective_from"`
	UpdatedBy     string    `json:"updated_by" db:"updated_by"`
}

// StationFilter - фильтры для списка станций
type StationFilter struct {
	Assigned  *bool
	Available *bool
	SortBy    string
	Page      int
	PerPage   int
}
