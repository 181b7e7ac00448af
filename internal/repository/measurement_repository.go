package repository

import (
	"context"
	"fmt"

	"tailor-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// measurementRepository implements MeasurementRepository using PostgreSQL.
type measurementRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMeasurementRepository creates a new PostgreSQL-backed measurement repository.
func NewMeasurementRepository(pool *pgxpool.Pool, logger zerolog.Logger) MeasurementRepository {
	return &measurementRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "measurement").Logger(),
	}
}

// Upsert creates or replaces the profile for (user, gender, dressType).
func (r *measurementRepository) Upsert(ctx context.Context, m *model.Measurement) error {
	query := `
		INSERT INTO measurements (id, user_id, gender, dress_type, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, gender, dress_type)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Gender,
		m.DressType,
		m.Data,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", m.UserID).
			Str("dress_type", m.DressType).
			Msg("failed to upsert measurement profile")
		return fmt.Errorf("failed to upsert measurement profile: %w", err)
	}

	return nil
}

// Get retrieves the profile for (user, gender, dressType).
func (r *measurementRepository) Get(ctx context.Context, userID, gender, dressType string) (*model.Measurement, error) {
	query := `
		SELECT id, user_id, gender, dress_type, data, created_at, updated_at
		FROM measurements
		WHERE user_id = $1 AND gender = $2 AND dress_type = $3
	`

	var m model.Measurement
	err := r.pool.QueryRow(ctx, query, userID, gender, dressType).Scan(
		&m.ID, &m.UserID, &m.Gender, &m.DressType, &m.Data, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query measurement profile")
		return nil, fmt.Errorf("failed to query measurement profile: %w", err)
	}

	return &m, nil
}

// ListByUser retrieves all of a user's saved profiles.
func (r *measurementRepository) ListByUser(ctx context.Context, userID string) ([]model.Measurement, error) {
	query := `
		SELECT id, user_id, gender, dress_type, data, created_at, updated_at
		FROM measurements
		WHERE user_id = $1
		ORDER BY dress_type
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query measurement profiles")
		return nil, fmt.Errorf("failed to query measurement profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Measurement
	for rows.Next() {
		var m model.Measurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Gender, &m.DressType, &m.Data, &m.CreatedAt, &m.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan measurement row")
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		profiles = append(profiles, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating measurement rows")
		return nil, fmt.Errorf("error iterating measurements: %w", err)
	}

	return profiles, nil
}
