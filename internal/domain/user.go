package domain

import "time"

// Роли пользователей
const (
	RoleAdmin          = "admin"
	RoleStationManager = "station"
)

// User - пользователь системы (администратор или менеджер станции)
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	// StationID - legacy прямая привязка менеджера к станции. Вытесняется
	// журналом назначений, но во время миграции учитывается наравне с ним.
	StationID *string   `json:"station_id,omitempty" db:"station_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin проверяет роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStationManager проверяет роль менеджера станции
func (u *User) IsStationManager() bool {
	return u.Role == RoleStationManager
}
