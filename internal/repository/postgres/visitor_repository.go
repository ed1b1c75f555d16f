package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type visitorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVisitorRepository(db *DB) repository.VisitorRepository {
	return &visitorRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *visitorRepository) Create(ctx context.Context, visitor *domain.Visitor) error {
	if visitor.ID == "" {
		visitor.ID = uuid.NewString()
	}
	if visitor.CreatedAt.IsZero() {
		visitor.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO visitors (
			id, ip_address, url, method, user_agent, device_type, browser, os,
			user_id, response_code, response_time_ms, created_at
		) VALUES (
			:id, :ip_address, :url, :method, :user_agent, :device_type, :browser, :os,
			:user_id, :response_code, :response_time_ms, :created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, visitor); err != nil {
		r.logger.Error("Failed to insert visitor", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *visitorRepository) Stats(ctx context.Context, since time.Time) (*domain.VisitorStats, error) {
	stats := &domain.VisitorStats{
		ByDeviceType: make(map[string]int),
		ByBrowser:    make(map[string]int),
		ByOS:         make(map[string]int),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ip_address), COALESCE(AVG(response_time_ms), 0)
		FROM visitors WHERE created_at >= $1
	`, since).Scan(&stats.TotalVisits, &stats.UniqueIPs, &stats.AvgResponseMs)
	if err != nil {
		r.logger.Error("Failed to get visitor totals", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT device_type, COUNT(*) FROM visitors
		WHERE created_at >= $1 GROUP BY device_type
	`, since)
	if err != nil {
		r.logger.Error("Failed to get device stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var device string
		var count int
		if err := rows.Scan(&device, &count); err != nil {
			r.logger.Warn("Failed to scan device stat", zap.Error(err))
			continue
		}
		stats.ByDeviceType[device] = count
	}

	browserRows, err := r.db.QueryContext(ctx, `
		SELECT browser, COUNT(*) FROM visitors
		WHERE created_at >= $1 GROUP BY browser
	`, since)
	if err != nil {
		r.logger.Error("Failed to get browser stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer browserRows.Close()

	for browserRows.Next() {
		var browser string
		var count int
		if err := browserRows.Scan(&browser, &count); err != nil {
			r.logger.Warn("Failed to scan browser stat", zap.Error(err))
			continue
		}
		stats.ByBrowser[browser] = count
	}

	osRows, err := r.db.QueryContext(ctx, `
		SELECT os, COUNT(*) FROM visitors
		WHERE created_at >= $1 GROUP BY os
	`, since)
	if err != nil {
		r.logger.Error("Failed to get OS stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer osRows.Close()

	for osRows.Next() {
		var osName string
		var count int
		if err := osRows.Scan(&osName, &count); err != nil {
			r.logger.Warn("Failed to scan OS stat", zap.Error(err))
			continue
		}
		stats.ByOS[osName] = count
	}

	urlRows, err := r.db.QueryContext(ctx, `
		SELECT url, COUNT(*) AS count FROM visitors
		WHERE created_at >= $1
		GROUP BY url ORDER BY count DESC LIMIT 10
	`, since)
	if err != nil {
		r.logger.Error("Failed to get top URLs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer urlRows.Close()

	for urlRows.Next() {
		var uc domain.URLCount
		if err := urlRows.Scan(&uc.URL, &uc.Count); err != nil {
			r.logger.Warn("Failed to scan URL stat", zap.Error(err))
			continue
		}
		stats.TopURLs = append(stats.TopURLs, uc)
	}

	dayRows, err := r.db.QueryContext(ctx, `
		SELECT date_trunc('day', created_at) AS day, COUNT(*) FROM visitors
		WHERE created_at >= $1
		GROUP BY day ORDER BY day
	`, since)
	if err != nil {
		r.logger.Error("Failed to get daily stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var dc domain.DayCount
		if err := dayRows.Scan(&dc.Day, &dc.Count); err != nil {
			r.logger.Warn("Failed to scan daily stat", zap.Error(err))
			continue
		}
		stats.DailyVisits = append(stats.DailyVisits, dc)
	}

	return stats, nil
}

func (r *visitorRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE created_at < $1`, before)
	if err != nil {
		r.logger.Error("Failed to clear visitors", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return deleted, nil
}
