package store

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgInventoryStore implements InventoryStore using PostgreSQL as the data store.
type PgInventoryStore struct {
	db *pgxpool.Pool
}

// NewPgInventoryStore creates an InventoryStore backed by a PostgreSQL connection pool.
func NewPgInventoryStore(db *pgxpool.Pool) *PgInventoryStore {
	return &PgInventoryStore{db: db}
}

const inventoryColumns = "id, product_id, current_stock, last_updated"

var inventorySortColumns = map[string]string{
	"id":    "id",
	"stock": "current_stock",
}

func scanInventory(row pgx.Row) (*model.Inventory, error) {
	var inv model.Inventory
	if err := row.Scan(&inv.ID, &inv.ProductID, &inv.CurrentStock, &inv.LastUpdated); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *PgInventoryStore) Get(ctx context.Context, id int64) (*model.Inventory, error) {
	row := s.db.QueryRow(ctx, "SELECT "+inventoryColumns+" FROM inventories WHERE id = $1", id)
	inv, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to find inventory by ID: %w", err)
	}
	return inv, nil
}

func (s *PgInventoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM inventories WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory existence: %w", err)
	}
	return exists, nil
}

// Save inserts the record when its ID is zero and updates it otherwise,
// each as a single atomic statement.
func (s *PgInventoryStore) Save(ctx context.Context, inv *model.Inventory) (*model.Inventory, error) {
	var row pgx.Row
	if inv.ID == 0 {
		row = s.db.QueryRow(ctx,
			`INSERT INTO inventories (product_id, current_stock, last_updated)
			 VALUES ($1, $2, $3)
			 RETURNING `+inventoryColumns,
			inv.ProductID, inv.CurrentStock, inv.LastUpdated)
	} else {
		row = s.db.QueryRow(ctx,
			`UPDATE inventories
			 SET product_id = $2, current_stock = $3, last_updated = $4
			 WHERE id = $1
			 RETURNING `+inventoryColumns,
			inv.ID, inv.ProductID, inv.CurrentStock, inv.LastUpdated)
	}
	saved, err := scanInventory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}
	return saved, nil
}

func (s *PgInventoryStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM inventories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInventoryNotFound
	}
	return nil
}

func (s *PgInventoryStore) FindAll(ctx context.Context) ([]model.Inventory, error) {
	return s.queryInventories(ctx, "SELECT "+inventoryColumns+" FROM inventories ORDER BY id")
}

// FindAllMatching scans all records in ID order and filters them in process.
func (s *PgInventoryStore) FindAllMatching(ctx context.Context, pred search.Predicate[model.Inventory]) ([]model.Inventory, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Inventory, 0, len(all))
	for _, inv := range all {
		if pred(inv) {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func (s *PgInventoryStore) FindAllPaged(ctx context.Context, req PageRequest) (*Page[model.Inventory], error) {
	var total int64
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM inventories").Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count inventories: %w", err)
	}

	sortCol, ok := inventorySortColumns[req.Sort]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf("SELECT %s FROM inventories ORDER BY %s, id LIMIT $1 OFFSET $2", inventoryColumns, sortCol)
	items, err := s.queryInventories(ctx, query, int64(req.Size), int64(req.Page)*int64(req.Size))
	if err != nil {
		return nil, err
	}

	return &Page[model.Inventory]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    TotalPages(total, req.Size),
	}, nil
}

func (s *PgInventoryStore) queryInventories(ctx context.Context, query string, args ...any) ([]model.Inventory, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventories: %w", err)
	}
	defer rows.Close()

	inventories := make([]model.Inventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inventories = append(inventories, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}
	return inventories, nil
}
