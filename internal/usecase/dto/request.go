package dto

// NearbyStationsRequest - запрос на поиск станций в радиусе
type NearbyStationsRequest struct {
	Latitude      float64 `json:"latitude" query:"latitude" validate:"min=-90,max=90"`
	Longitude     float64 `json:"longitude" query:"longitude" validate:"min=-180,max=180"`
	RadiusKm      int     `json:"radius" query:"radius" validate:"omitempty,min=1,max=100"`
	AvailableOnly bool    `json:"available_only" query:"available_only"`
}

// ListStationsRequest - запрос списка станций с фильтрами
type ListStationsRequest struct {
	Assigned  *bool  `query:"assigned"`
	Available *bool  `query:"available"`
	SortBy    string `query:"sort_by" validate:"omitempty,oneof=name price_per_kg updated_at"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PerPage   int    `query:"per_page" validate:"omitempty,min=1,max=100"`
}

// CreateStationRequest - запрос на создание станции
type CreateStationRequest struct {
	Name           string   `json:"name" validate:"required,max=255"`
	Address        string   `json:"address" validate:"required"`
	Phone          string   `json:"phone" validate:"required,max=20"`
	Email          string   `json:"email" validate:"required,email"`
	Latitude       float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64  `json:"longitude" validate:"min=-180,max=180"`
	OperatingHours string   `json:"operating_hours" validate:"required,max=100"`
	PricePerKg     *float64 `json:"price_per_kg" validate:"omitempty,min=0"`
	ImageURL       *string  `json:"image" validate:"omitempty,url"`
	IsAvailable    *bool    `json:"is_available"`
}

// UpdateStationRequest - частичное обновление станции
type UpdateStationRequest struct {
	Name           *string  `json:"name" validate:"omitempty,max=255"`
	Address        *string  `json:"address"`
	Phone          *string  `json:"phone" validate:"omitempty,max=20"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	OperatingHours *string  `json:"operating_hours" validate:"omitempty,max=100"`
	PricePerKg     *float64 `json:"price_per_kg" validate:"omitempty,min=0"`
	ImageURL       *string  `json:"image" validate:"omitempty,url"`
}

// SetAvailabilityRequest - переключение операционной доступности
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// SetPriceRequest - обновление цены за килограмм
type SetPriceRequest struct {
	PricePerKg float64 `json:"price_per_kg" validate:"min=0"`
}

// SetActiveRequest - постоянное открытие/закрытие станции
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// AssignManagerRequest - назначение менеджера на станцию
type AssignManagerRequest struct {
	ManagerID string `json:"manager_id" validate:"required,uuid"`
}

// RemoveManagerRequest - снятие менеджера со станции
type RemoveManagerRequest struct {
	RemovalReason string `json:"removal_reason" validate:"omitempty,max=255"`
}

// AssignmentHistoryRequest - история назначений станции
type AssignmentHistoryRequest struct {
	ManagerID string `query:"manager_id" validate:"omitempty,uuid"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PerPage   int    `query:"per_page" validate:"omitempty,min=1,max=100"`
}

// RegisterRequest - публичная регистрация. Роль и привязка к станции
// не принимаются от клиента: новый пользователь всегда получает роль
// station без станции, назначения делает администратор.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateManagerRequest - создание менеджера администратором
type CreateManagerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateManagerRequest - частичное обновление менеджера.
// IsActive=false деактивирует менеджера: войти и получить новое
// назначение он больше не может.
type UpdateManagerRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	IsActive *bool   `json:"is_active"`
}

// ListManagersRequest - список менеджеров с пагинацией
type ListManagersRequest struct {
	ActiveOnly bool `query:"active_only"`
	Page       int  `query:"page" validate:"omitempty,min=1"`
	PerPage    int  `query:"per_page" validate:"omitempty,min=1,max=100"`
}

// LoginRequest - вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VisitorStatsRequest - запрос статистики посещений
type VisitorStatsRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}
