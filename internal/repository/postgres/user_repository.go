package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const userColumns = `
	id, name, email, password_hash, role, station_id, is_active, created_at, updated_at
`

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, email, password_hash, role, station_id, is_active, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :role, :station_id, :is_active, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return errors.ErrEmailTaken
		}
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string, activeOnly bool, page, perPage int) ([]*domain.User, int, error) {
	where := "WHERE role = $1"
	if activeOnly {
		where += " AND is_active = true"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users "+where, role); err != nil {
		r.logger.Error("Failed to count users", zap.String("role", role), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	query := `SELECT ` + userColumns + ` FROM users ` + where + ` ORDER BY name LIMIT $2 OFFSET $3`

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, role, perPage, (page-1)*perPage); err != nil {
		r.logger.Error("Failed to list users", zap.String("role", role), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			name = :name,
			email = :email,
			password_hash = :password_hash,
			role = :role,
			station_id = :station_id,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrEmailTaken
		}
		r.logger.Error("Failed to update user", zap.String("id", user.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrUserNotFound
	}

	return nil
}
