// Package store provides the persistence boundary for products and inventories.
package store

import (
	"context"

	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
)

// PageRequest describes one page of a result set. Page is zero-based.
// Sort names the sort key; an empty or unknown key falls back to "id".
type PageRequest struct {
	Page int32
	Size int32
	Sort string
}

// Page is one page of records together with the totals computed by the store.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int32 `json:"page"`
	Size          int32 `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int32 `json:"total_pages"`
}

// TotalPages computes the page count for a total element count and page size.
func TotalPages(totalElements int64, size int32) int32 {
	if size <= 0 {
		return 0
	}
	return int32((totalElements + int64(size) - 1) / int64(size))
}

// ProductStore is the persistence contract for product records.
// It abstracts the underlying data store, allowing for different
// implementations (in-memory, database).
type ProductStore interface {
	// Get retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// ExistsByID reports whether a product with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save persists the product: insert when ID is zero, update otherwise.
	// Returns ErrProductNotFound when updating a missing record.
	Save(ctx context.Context, p *model.Product) (*model.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// FindAll returns all products ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindAllMatching returns the products matching pred, ordered by ID.
	FindAllMatching(ctx context.Context, pred search.Predicate[model.Product]) ([]model.Product, error)

	// FindAllPaged returns one page of all products together with totals.
	FindAllPaged(ctx context.Context, req PageRequest) (*Page[model.Product], error)
}

// InventoryStore is the persistence contract for inventory records.
type InventoryStore interface {
	// Get retrieves a single inventory record by its identifier.
	// Returns ErrInventoryNotFound if no record exists with the given ID.
	Get(ctx context.Context, id int64) (*model.Inventory, error)

	// ExistsByID reports whether an inventory record with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save persists the record: insert when ID is zero, update otherwise.
	// Returns ErrInventoryNotFound when updating a missing record.
	Save(ctx context.Context, inv *model.Inventory) (*model.Inventory, error)

	// DeleteByID removes an inventory record by its ID.
	// Returns ErrInventoryNotFound if no record exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// FindAll returns all inventory records ordered by ID.
	FindAll(ctx context.Context) ([]model.Inventory, error)

	// FindAllMatching returns the records matching pred, ordered by ID.
	FindAllMatching(ctx context.Context, pred search.Predicate[model.Inventory]) ([]model.Inventory, error)

	// FindAllPaged returns one page of all records together with totals.
	FindAllPaged(ctx context.Context, req PageRequest) (*Page[model.Inventory], error)
}
