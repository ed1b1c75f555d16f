package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const stationColumns = `
	id, name, address, phone, email, latitude, longitude,
	is_available, is_active, price_per_kg, operating_hours, image,
	created_at, updated_at
`

type stationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *stationRepository) Create(ctx context.Context, station *domain.Station) error {
	if station.ID == "" {
		station.ID = uuid.NewString()
	}
	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	query := `
		INSERT INTO stations (
			id, name, address, phone, email, latitude, longitude,
			is_available, is_active, price_per_kg, operating_hours, image,
			created_at, updated_at
		) VALUES (
			:id, :name, :address, :phone, :email, :latitude, :longitude,
			:is_available, :is_active, :price_per_kg, :operating_hours, :image,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, station); err != nil {
		r.logger.Error("Failed to create station", zap.String("name", station.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1`

	var station domain.Station
	err := r.db.GetContext(ctx, &station, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get station by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &station, nil
}

func (r *stationRepository) List(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Assigned != nil {
		if *filter.Assigned {
			where += ` AND EXISTS (
				SELECT 1 FROM station_manager_assignments a
				WHERE a.station_id = stations.id AND a.removed_at IS NULL
			)`
		} else {
			where += ` AND NOT EXISTS (
				SELECT 1 FROM station_manager_assignments a
				WHERE a.station_id = stations.id AND a.removed_at IS NULL
			)`
		}
	}

	if filter.Available != nil {
		where += fmt.Sprintf(" AND is_available = $%d", argIdx)
		args = append(args, *filter.Available)
		argIdx++
	}

	orderBy := "ORDER BY updated_at DESC"
	switch filter.SortBy {
	case "name":
		orderBy = "ORDER BY name"
	case "price_per_kg":
		orderBy = "ORDER BY price_per_kg NULLS LAST"
	}

	countQuery := "SELECT COUNT(*) FROM stations " + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.logger.Error("Failed to count stations", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 15
	}

	query := fmt.Sprintf(
		"SELECT %s FROM stations %s %s LIMIT $%d OFFSET $%d",
		stationColumns, where, orderBy, argIdx, argIdx+1,
	)
	args = append(args, perPage, (page-1)*perPage)

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query, args...); err != nil {
		r.logger.Error("Failed to list stations", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return stations, total, nil
}

func (r *stationRepository) ListActive(ctx context.Context) ([]*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE is_active = true`

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query); err != nil {
		r.logger.Error("Failed to list active stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stations, nil
}

func (r *stationRepository) Update(ctx context.Context, station *domain.Station) error {
	station.UpdatedAt = time.Now()

	query := `
		UPDATE stations SET
			name = :name,
			address = :address,
			phone = :phone,
			email = :email,
			latitude = :latitude,
			longitude = :longitude,
			price_per_kg = :price_per_kg,
			operating_hours = :operating_hours,
			image = :image,
			updated_at = :updated_at
		WHERE id = :id
	`

	res, err := r.db.NamedExecContext(ctx, query, station)
	if err != nil {
		r.logger.Error("Failed to update station", zap.String("id", station.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrStationNotFound
	}

	return nil
}

func (r *stationRepository) Delete(ctx context.Context, id string) error {
	// Журналы доступности и истории цен удаляются каскадом (FK ON DELETE CASCADE)
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete station", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrStationNotFound
	}

	return nil
}

func (r *stationRepository) SetAvailability(ctx context.Context, stationID string, isAvailable bool, actorID string) (*domain.Station, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var station domain.Station
	err = tx.GetContext(ctx, &station,
		`SELECT `+stationColumns+` FROM stations WHERE id = $1 FOR UPDATE`, stationID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock station", zap.String("id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	now := time.Now()

	// Запись журнала создаётся на каждый вызов, даже если значение не изменилось
	_, err = tx.ExecContext(ctx, `
		INSERT INTO station_availability_log (id, station_id, is_available, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), stationID, isAvailable, actorID, now)
	if err != nil {
		r.logger.Error("Failed to insert availability log", zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE stations SET is_available = $1, updated_at = $2 WHERE id = $3
	`, isAvailable, now, stationID)
	if err != nil {
		r.logger.Error("Failed to update availability", zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit availability update", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	station.IsAvailable = isAvailable
	station.UpdatedAt = now
	return &station, nil
}

func (r *stationRepository) SetPrice(ctx context.Context, stationID string, price float64, actorID string) (*domain.Station, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var station domain.Station
	err = tx.GetContext(ctx, &station,
		`SELECT `+stationColumns+` FROM stations WHERE id = $1 FOR UPDATE`, stationID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock station", zap.String("id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	now := time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO price_history (id, station_id, price_per_kg, effective_from, updated_by)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), stationID, price, now, actorID)
	if err != nil {
		r.logger.Error("Failed to insert price history", zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE stations SET price_per_kg = $1, updated_at = $2 WHERE id = $3
	`, price, now, stationID)
	if err != nil {
		r.logger.Error("Failed to update price", zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit price update", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	station.PricePerKg = &price
	station.UpdatedAt = now
	return &station, nil
}

func (r *stationRepository) SetActive(ctx context.Context, stationID string, isActive bool) (*domain.Station, error) {
	query := `
		UPDATE stations SET is_active = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + stationColumns

	var station domain.Station
	err := r.db.GetContext(ctx, &station, query, isActive, time.Now(), stationID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to toggle station status", zap.String("id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &station, nil
}

func (r *stationRepository) PriceHistory(ctx context.Context, stationID string, page, perPage int) ([]*domain.PriceHistoryEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM price_history WHERE station_id = $1`, stationID)
	if err != nil {
		r.logger.Error("Failed to count price history", zap.String("station_id", stationID), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	query := `
		SELECT id, station_id, price_per_kg, effective_from, updated_by
		FROM price_history
		WHERE station_id = $1
		ORDER BY effective_from DESC
		LIMIT $2 OFFSET $3
	`

	var entries []*domain.PriceHistoryEntry
	err = r.db.SelectContext(ctx, &entries, query, stationID, perPage, (page-1)*perPage)
	if err != nil {
		r.logger.Error("Failed to get price history", zap.String("station_id", stationID), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return entries, total, nil
}
