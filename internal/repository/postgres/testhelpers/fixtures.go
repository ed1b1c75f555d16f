package testhelpers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// InsertStation inserts a station row and returns its ID
func InsertStation(db *sql.DB, name string, lat, lon float64, isAvailable bool) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO stations (id, name, address, phone, email, latitude, longitude,
		                      is_available, is_active, operating_hours)
		VALUES ($1, $2, $3, '', '', $4, $5, $6, TRUE, '08:00-22:00')
	`, id, name, name+" address", lat, lon, isAvailable)
	if err != nil {
		return "", fmt.Errorf("insert station %s: %w", name, err)
	}
	return id, nil
}

// InsertUser inserts a user row and returns its ID
func InsertUser(db *sql.DB, name, email, role string) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO users (id, name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, 'x', $4, TRUE)
	`, id, name, email, role)
	if err != nil {
		return "", fmt.Errorf("insert user %s: %w", email, err)
	}
	return id, nil
}

// CountActiveAssignments returns the number of open assignment rows for a station
func CountActiveAssignments(db *sql.DB, stationID string) (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), `
		SELECT COUNT(*) FROM station_manager_assignments
		WHERE station_id = $1 AND removed_at IS NULL
	`, stationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active assignments for %s: %w", stationID, err)
	}
	return count, nil
}
