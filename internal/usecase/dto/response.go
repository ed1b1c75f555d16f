package dto

import (
	"time"

	"github.com/lpg-station-service/internal/domain"
)

// StationDTO - представление станции для HTTP-ответов
type StationDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	IsAvailable    bool      `json:"is_available"`
	IsActive       bool      `json:"is_active"`
	PricePerKg     *float64  `json:"price_per_kg"`
	OperatingHours string    `json:"operating_hours"`
	ImageURL       *string   `json:"image,omitempty"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NearbyStationsResponse - результат радиусного поиска.
// Счётчики заполняются всегда, в том числе при пустом результате:
// по ним вызывающая сторона различает "ничего не найдено" и
// "найдено, но всё недоступно".
type NearbyStationsResponse struct {
	Stations         []StationDTO `json:"stations"`
	AvailableCount   int          `json:"available_count"`
	UnavailableCount int          `json:"unavailable_count"`
	RadiusKm         int          `json:"radius_km"`
}

// ListStationsResponse - список станций с пагинацией
type ListStationsResponse struct {
	Stations []StationDTO `json:"stations"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PerPage  int          `json:"per_page"`
}

// PriceHistoryResponse - история цен станции
type PriceHistoryResponse struct {
	Entries []*domain.PriceHistoryEntry `json:"entries"`
	Total   int                         `json:"total"`
	Page    int                         `json:"page"`
	PerPage int                         `json:"per_page"`
}

// AssignmentDTO - назначение менеджера с развёрнутыми участниками
type AssignmentDTO struct {
	ID            string     `json:"id"`
	StationID     string     `json:"station_id"`
	ManagerID     string     `json:"manager_id"`
	ManagerName   string     `json:"manager_name,omitempty"`
	AssignedBy    string     `json:"assigned_by"`
	AssignedAt    time.Time  `json:"assigned_at"`
	RemovedAt     *time.Time `json:"removed_at"`
	RemovalReason *string    `json:"removal_reason"`
}

// AssignmentHistoryResponse - история назначений станции
type AssignmentHistoryResponse struct {
	Assignments []AssignmentDTO `json:"assignments"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	PerPage     int             `json:"per_page"`
}

// ManagersResponse - список менеджеров станций с пагинацией
type ManagersResponse struct {
	Managers []*domain.User `json:"managers"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PerPage  int            `json:"per_page"`
}

// AuthResponse - результат входа/регистрации
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// ClearAnalyticsResponse - результат очистки аналитики
type ClearAnalyticsResponse struct {
	Deleted int64 `json:"deleted"`
}

// ConvertStation преобразует доменную станцию в DTO
func ConvertStation(s *domain.Station) StationDTO {
	return StationDTO{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		IsAvailable:    s.IsAvailable,
		IsActive:       s.IsActive,
		PricePerKg:     s.PricePerKg,
		OperatingHours: s.OperatingHours,
		ImageURL:       s.ImageURL,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ConvertStationWithDistance преобразует станцию с расстоянием в DTO
func ConvertStationWithDistance(s domain.StationWithDistance) StationDTO {
	out := ConvertStation(&s.Station)
	distance := s.DistanceKm
	out.DistanceKm = &distance
	return out
}

// ConvertAssignment преобразует доменное назначение в DTO
func ConvertAssignment(a *domain.ManagerAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            a.ID,
		StationID:     a.StationID,
		ManagerID:     a.ManagerID,
		AssignedBy:    a.AssignedBy,
		AssignedAt:    a.AssignedAt,
		RemovedAt:     a.RemovedAt,
		RemovalReason: a.RemovalReason,
	}
}
