package repository

import (
	"context"
	"fmt"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// inventoryRepository implements the InventoryRepository interface using PostgreSQL.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

const inventoryColumns = `id, material_name, material_type, color, color_code, pattern, total_quantity, unit_price, created_at, updated_at`

func scanInventoryItem(row pgx.Row, item *model.InventoryItem) error {
	return row.Scan(
		&item.ID,
		&item.MaterialName,
		&item.MaterialType,
		&item.Color,
		&item.ColorCode,
		&item.Pattern,
		&item.TotalQuantity,
		&item.UnitPrice,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

// GetAll retrieves all fabrics with pagination support.
func (r *inventoryRepository) GetAll(ctx context.Context, limit, offset int) ([]model.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		ORDER BY material_name, color
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query fabrics")
		return nil, fmt.Errorf("failed to query fabrics: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := scanInventoryItem(rows, &item); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan fabric row")
			return nil, fmt.Errorf("failed to scan fabric: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating fabric rows")
		return nil, fmt.Errorf("error iterating fabrics: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single fabric by its ID.
func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE id = $1
	`

	var item model.InventoryItem
	err := scanInventoryItem(r.pool.QueryRow(ctx, query, id), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("fabric_id", id.String()).Msg("fabric not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to query fabric")
		return nil, fmt.Errorf("failed to query fabric: %w", err)
	}

	return &item, nil
}

// FindByMaterialColor retrieves a fabric by material name and colour using a
// case-insensitive match on trimmed values.
func (r *inventoryRepository) FindByMaterialColor(ctx context.Context, material, color string) (*model.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items
		WHERE LOWER(TRIM(material_name)) = LOWER(TRIM($1))
		  AND LOWER(TRIM(color)) = LOWER(TRIM($2))
	`

	var item model.InventoryItem
	err := scanInventoryItem(r.pool.QueryRow(ctx, query, material, color), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("material", material).
				Str("color", color).
				Msg("fabric not found")
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("material", material).
			Str("color", color).
			Msg("failed to query fabric")
		return nil, fmt.Errorf("failed to query fabric: %w", err)
	}

	return &item, nil
}

// Create inserts a new fabric record.
func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items
			(id, material_name, material_type, color, color_code, pattern, total_quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.MaterialName,
		item.MaterialType,
		item.Color,
		item.ColorCode,
		item.Pattern,
		item.TotalQuantity,
		item.UnitPrice,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("material", item.MaterialName).
			Str("color", item.Color).
			Msg("failed to create fabric")
		return fmt.Errorf("failed to create fabric: %w", err)
	}

	r.logger.Debug().
		Str("fabric_id", item.ID.String()).
		Msg("fabric created successfully")

	return nil
}

// Update overwrites a fabric record's attributes.
func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET material_name = $2,
		    material_type = $3,
		    color = $4,
		    color_code = $5,
		    pattern = $6,
		    total_quantity = $7,
		    unit_price = $8,
		    updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID,
		item.MaterialName,
		item.MaterialType,
		item.Color,
		item.ColorCode,
		item.Pattern,
		item.TotalQuantity,
		item.UnitPrice,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("fabric_id", item.ID.String()).Msg("failed to update fabric")
		return fmt.Errorf("failed to update fabric: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrFabricNotFound
	}

	return nil
}

// Delete removes a fabric record.
func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to delete fabric")
		return fmt.Errorf("failed to delete fabric: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrFabricNotFound
	}

	r.logger.Debug().Str("fabric_id", id.String()).Msg("fabric deleted")

	return nil
}

// SetQuantity overwrites the stock level (admin correction).
func (r *inventoryRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET total_quantity = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to set fabric quantity")
		return fmt.Errorf("failed to set fabric quantity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrFabricNotFound
	}

	return nil
}

// Deduct atomically decrements stock within the provided transaction. The
// quantity guard lives in the UPDATE itself so two concurrent orders cannot
// both pass a shared stock boundary.
func (r *inventoryRepository) Deduct(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity decimal.Decimal) (*model.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET total_quantity = total_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND total_quantity >= $2
		RETURNING ` + inventoryColumns

	var item model.InventoryItem
	err := scanInventoryItem(tx.QueryRow(ctx, query, id, quantity), &item)
	if err == nil {
		r.logger.Debug().
			Str("fabric_id", id.String()).
			Str("deducted", quantity.String()).
			Str("remaining", item.TotalQuantity.String()).
			Msg("stock deducted")
		return &item, nil
	}

	if err != pgx.ErrNoRows {
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to deduct stock")
		return nil, fmt.Errorf("failed to deduct stock: %w", err)
	}

	// No row matched: distinguish a missing fabric from insufficient stock.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to check fabric existence")
		return nil, fmt.Errorf("failed to check fabric existence: %w", err)
	}

	if !exists {
		return nil, model.ErrFabricNotFound
	}

	r.logger.Warn().
		Str("fabric_id", id.String()).
		Str("requested", quantity.String()).
		Msg("insufficient stock for deduction")

	return nil, model.ErrInsufficientStock
}

// Restore adds quantity back within the provided transaction.
func (r *inventoryRepository) Restore(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET total_quantity = total_quantity + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("fabric_id", id.String()).Msg("failed to restore stock")
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrFabricNotFound
	}

	r.logger.Debug().
		Str("fabric_id", id.String()).
		Str("restored", quantity.String()).
		Msg("stock restored")

	return nil
}
