package repository

import (
	"context"
	"fmt"
	"time"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// promoRepository implements the PromoRepository interface using PostgreSQL.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo code repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

const promoColumns = `id, code, discount_percentage, valid_from, valid_to, active, usage_limit, used_count, created_at, updated_at`

func scanPromoCode(row pgx.Row, promo *model.PromoCode) error {
	return row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.DiscountPercentage,
		&promo.ValidFrom,
		&promo.ValidTo,
		&promo.Active,
		&promo.UsageLimit,
		&promo.UsedCount,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
}

// GetAll retrieves all promo codes.
func (r *promoRepository) GetAll(ctx context.Context) ([]model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		ORDER BY code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promo codes")
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	var promos []model.PromoCode
	for rows.Next() {
		var promo model.PromoCode
		if err := scanPromoCode(rows, &promo); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promo code row")
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, promo)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promo code rows")
		return nil, fmt.Errorf("error iterating promo codes: %w", err)
	}

	return promos, nil
}

// GetByCode retrieves a promo code by its code string.
func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE code = $1
	`

	var promo model.PromoCode
	err := scanPromoCode(r.pool.QueryRow(ctx, query, code), &promo)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promo code")
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return &promo, nil
}

// Create inserts a new promo code.
func (r *promoRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes
			(id, code, discount_percentage, valid_from, valid_to, active, usage_limit, used_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.DiscountPercentage,
		promo.ValidFrom,
		promo.ValidTo,
		promo.Active,
		promo.UsageLimit,
		promo.UsedCount,
		promo.CreatedAt,
		promo.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", promo.Code).Msg("failed to create promo code")
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	r.logger.Debug().Str("code", promo.Code).Msg("promo code created successfully")

	return nil
}

// Update overwrites a promo code's attributes. UsedCount is deliberately not
// written here; usage accounting goes through ConsumeUsage and ReleaseUsage.
func (r *promoRepository) Update(ctx context.Context, promo *model.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET code = $2,
		    discount_percentage = $3,
		    valid_from = $4,
		    valid_to = $5,
		    active = $6,
		    usage_limit = $7,
		    updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.DiscountPercentage,
		promo.ValidFrom,
		promo.ValidTo,
		promo.Active,
		promo.UsageLimit,
		promo.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", promo.Code).Msg("failed to update promo code")
		return fmt.Errorf("failed to update promo code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	return nil
}

// Delete removes a promo code.
func (r *promoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promo_id", id.String()).Msg("failed to delete promo code")
		return fmt.Errorf("failed to delete promo code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	return nil
}

// ConsumeUsage atomically claims one usage slot. The validity window, active
// flag and usage cap are all guarded inside the UPDATE so concurrent checkouts
// cannot overshoot the limit.
func (r *promoRepository) ConsumeUsage(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.PromoCode, error) {
	query := `
		UPDATE promo_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1
		  AND active
		  AND $2 >= valid_from
		  AND $2 <= valid_to
		  AND (usage_limit IS NULL OR used_count < usage_limit)
		RETURNING ` + promoColumns

	var promo model.PromoCode
	err := scanPromoCode(tx.QueryRow(ctx, query, code, now), &promo)
	if err == nil {
		r.logger.Debug().
			Str("code", code).
			Int("used_count", promo.UsedCount).
			Msg("promo usage slot consumed")
		return &promo, nil
	}

	if err != pgx.ErrNoRows {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to consume promo usage")
		return nil, fmt.Errorf("failed to consume promo usage: %w", err)
	}

	// No slot claimed: read the row in the same transaction to name the reason.
	var current model.PromoCode
	err = scanPromoCode(tx.QueryRow(ctx, `SELECT `+promoColumns+` FROM promo_codes WHERE code = $1`, code), &current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrPromoNotFound
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to classify promo failure")
		return nil, fmt.Errorf("failed to classify promo failure: %w", err)
	}

	return nil, ClassifyPromo(&current, now)
}

// ReleaseUsage decrements the used count, floored at zero.
func (r *promoRepository) ReleaseUsage(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET used_count = GREATEST(used_count - 1, 0), updated_at = NOW()
		WHERE code = $1
	`

	tag, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to release promo usage")
		return fmt.Errorf("failed to release promo usage: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	r.logger.Debug().Str("code", code).Msg("promo usage slot released")

	return nil
}

// ClassifyPromo maps a promo row's state at the given instant to the domain
// error a validation or apply attempt would fail with, or nil when usable.
func ClassifyPromo(promo *model.PromoCode, now time.Time) error {
	switch {
	case promo == nil:
		return model.ErrPromoNotFound
	case !promo.Active:
		return model.ErrPromoInactive
	case now.Before(promo.ValidFrom):
		return model.ErrPromoNotYetActive
	case now.After(promo.ValidTo):
		return model.ErrPromoExpired
	case promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit:
		return model.ErrPromoExhausted
	}
	return nil
}
