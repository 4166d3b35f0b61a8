package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/models"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/mapping"
)

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new repository for FIFO inventory data.
func NewInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &inventoryRepository{pool: pool}
}

var _ portsrepo.InventoryRepositoryFacade = (*inventoryRepository)(nil)

const itemColumns = `item_id, item_code, item_name, unit_of_measure, quantity, total_value, minimum_stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `movement_id, item_id, movement_type, movement_date, quantity, unit_cost, total_cost, remaining_quantity, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.ItemCode,
		&item.ItemName,
		&item.UnitOfMeasure,
		&item.Quantity,
		&item.TotalValue,
		&item.MinimumStock,
		&item.IsActive,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

func scanMovement(row pgx.Row) (models.InventoryMovement, error) {
	var mv models.InventoryMovement
	err := row.Scan(
		&mv.MovementID,
		&mv.ItemID,
		&mv.MovementType,
		&mv.MovementDate,
		&mv.Quantity,
		&mv.UnitCost,
		&mv.TotalCost,
		&mv.RemainingQuantity,
		&mv.Notes,
		&mv.CreatedAt,
		&mv.CreatedBy,
		&mv.LastUpdatedAt,
		&mv.LastUpdatedBy,
	)
	return mv, err
}

// SaveItem inserts a new inventory item. A duplicate item code maps to
// ErrDuplicate.
func (r *inventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	query := `
		INSERT INTO inventory_items (item_id, item_code, item_name, unit_of_measure, quantity, total_value, minimum_stock, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ItemID,
		m.ItemCode,
		m.ItemName,
		m.UnitOfMeasure,
		m.Quantity,
		m.TotalValue,
		m.MinimumStock,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory item %s: %w", item.ItemCode, translateError(err))
	}
	return nil
}

// FindItemByID retrieves an inventory item by its ID.
func (r *inventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`

	m, err := scanItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}

	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

// ListItems retrieves all active items, optionally only those at or below
// their minimum stock.
func (r *inventoryRepository) ListItems(ctx context.Context, lowStockOnly bool) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE is_active`
	if lowStockOnly {
		query += ` AND quantity <= minimum_stock`
	}
	query += ` ORDER BY item_code;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return mapping.ToDomainInventoryItemSlice(items), nil
}

// SavePurchase inserts a purchase movement and bumps the item's quantity and
// total value in the same database transaction.
func (r *inventoryRepository) SavePurchase(ctx context.Context, movement domain.InventoryMovement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertMovement(ctx, tx, movement); err != nil {
		return err
	}

	itemQuery := `
		UPDATE inventory_items
		SET quantity = quantity + $1, total_value = total_value + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $5;
	`
	cmdTag, err := tx.Exec(ctx, itemQuery,
		movement.Quantity,
		movement.TotalCost,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
		movement.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s for purchase: %w", movement.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit purchase for item %s: %w", movement.ItemID, err)
	}
	return nil
}

// FindOpenPurchaseLayers returns purchase movements with remaining quantity,
// oldest first. These are the FIFO layers usage consumes.
func (r *inventoryRepository) FindOpenPurchaseLayers(ctx context.Context, itemID string) ([]domain.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE item_id = $1 AND movement_type = 'purchase' AND remaining_quantity > 0
		ORDER BY movement_date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase layers for item %s: %w", itemID, err)
	}
	defer rows.Close()

	layers := []models.InventoryMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row for item %s: %w", itemID, err)
		}
		layers = append(layers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows for item %s: %w", itemID, err)
	}
	return mapping.ToDomainInventoryMovementSlice(layers), nil
}

// SaveUsage inserts a usage movement, writes back the consumed layers'
// remaining quantities and decreases the item's quantity and total value,
// all inside one database transaction.
func (r *inventoryRepository) SaveUsage(ctx context.Context, movement domain.InventoryMovement, consumedLayers []domain.InventoryMovement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertMovement(ctx, tx, movement); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	layerQuery := `
		UPDATE inventory_movements
		SET remaining_quantity = $1, last_updated_at = $2, last_updated_by = $3
		WHERE movement_id = $4;
	`
	for _, layer := range consumedLayers {
		batch.Queue(layerQuery,
			layer.RemainingQuantity,
			movement.LastUpdatedAt,
			movement.LastUpdatedBy,
			layer.MovementID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to write back consumed layers for item %s: %w", movement.ItemID, err)
	}

	itemQuery := `
		UPDATE inventory_items
		SET quantity = quantity - $1, total_value = total_value - $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $5;
	`
	cmdTag, err := tx.Exec(ctx, itemQuery,
		movement.Quantity,
		movement.TotalCost,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
		movement.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s for usage: %w", movement.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit usage for item %s: %w", movement.ItemID, err)
	}
	return nil
}

func insertMovement(ctx context.Context, tx pgx.Tx, movement domain.InventoryMovement) error {
	m := mapping.ToModelInventoryMovement(movement)
	query := `
		INSERT INTO inventory_movements (movement_id, item_id, movement_type, movement_date, quantity, unit_cost, total_cost, remaining_quantity, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.ItemID,
		m.MovementType,
		m.MovementDate,
		m.Quantity,
		m.UnitCost,
		m.TotalCost,
		m.RemainingQuantity,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", movement.MovementID, translateError(err))
	}
	return nil
}
