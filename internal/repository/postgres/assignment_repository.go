package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const assignmentColumns = `
	id, manager_id, station_id, assigned_by, assigned_at, removed_at, removal_reason
`

type assignmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAssignmentRepository(db *DB) repository.AssignmentRepository {
	return &assignmentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Transfer закрывает активное назначение станции и создаёт новое в одной
// транзакции. Частичный уникальный индекс (station_id WHERE removed_at IS NULL)
// страхует инвариант при гонке двух одновременных назначений: проигравшая
// транзакция получает unique violation и возвращает ErrAssignmentConflict.
func (r *assignmentRepository) Transfer(ctx context.Context, stationID, managerID, assignedBy string) (*domain.ManagerAssignment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	now := time.Now()

	_, err = tx.ExecContext(ctx, `
		UPDATE station_manager_assignments
		SET removed_at = $1, removal_reason = $2
		WHERE station_id = $3 AND removed_at IS NULL
	`, now, domain.RemovalReasonReplaced, stationID)
	if err != nil {
		r.logger.Error("Failed to close active assignment",
			zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	assignment := &domain.ManagerAssignment{
		ID:         uuid.NewString(),
		ManagerID:  managerID,
		StationID:  stationID,
		AssignedBy: assignedBy,
		AssignedAt: now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO station_manager_assignments (id, manager_id, station_id, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4, $5)
	`, assignment.ID, assignment.ManagerID, assignment.StationID, assignment.AssignedBy, assignment.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrAssignmentConflict
		}
		r.logger.Error("Failed to insert assignment",
			zap.String("station_id", stationID),
			zap.String("manager_id", managerID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrAssignmentConflict
		}
		r.logger.Error("Failed to commit assignment transfer", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return assignment, nil
}

func (r *assignmentRepository) Remove(ctx context.Context, stationID, reason string) (*domain.ManagerAssignment, error) {
	query := `
		UPDATE station_manager_assignments
		SET removed_at = $1, removal_reason = $2
		WHERE station_id = $3 AND removed_at IS NULL
		RETURNING ` + assignmentColumns

	var assignment domain.ManagerAssignment
	err := r.db.GetContext(ctx, &assignment, query, time.Now(), reason, stationID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNoActiveAssignment
	}
	if err != nil {
		r.logger.Error("Failed to remove assignment",
			zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &assignment, nil
}

func (r *assignmentRepository) GetCurrent(ctx context.Context, stationID string) (*domain.ManagerAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM station_manager_assignments
		WHERE station_id = $1 AND removed_at IS NULL
		ORDER BY assigned_at DESC
		LIMIT 1
	`

	var assignment domain.ManagerAssignment
	err := r.db.GetContext(ctx, &assignment, query, stationID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get current assignment",
			zap.String("station_id", stationID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &assignment, nil
}

func (r *assignmentRepository) History(ctx context.Context, stationID string, filter domain.AssignmentFilter) ([]*domain.ManagerAssignment, int, error) {
	where := "WHERE station_id = $1"
	args := []interface{}{stationID}

	if filter.ManagerID != "" {
		where += " AND manager_id = $2"
		args = append(args, filter.ManagerID)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM station_manager_assignments " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.logger.Error("Failed to count assignments",
			zap.String("station_id", stationID), zap.Error(err))
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
		"SELECT %s FROM station_manager_assignments %s ORDER BY assigned_at DESC LIMIT $%d OFFSET $%d",
		assignmentColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, perPage, (page-1)*perPage)

	var assignments []*domain.ManagerAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		r.logger.Error("Failed to get assignment history",
			zap.String("station_id", stationID), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return assignments, total, nil
}

func (r *assignmentRepository) HasActiveAssignment(ctx context.Context, managerID, stationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM station_manager_assignments
			WHERE manager_id = $1 AND station_id = $2 AND removed_at IS NULL
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, managerID, stationID); err != nil {
		r.logger.Error("Failed to check active assignment",
			zap.String("manager_id", managerID),
			zap.String("station_id", stationID),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return exists, nil
}

// isUniqueViolation распознаёт нарушение уникального индекса для обоих
// драйверов: pgx (рантайм) и lib/pq (интеграционные тесты)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
