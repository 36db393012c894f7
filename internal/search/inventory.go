package search

import "github.com/abgdnv/goinventory/internal/model"

// HasProductID matches inventories that reference the given product.
func HasProductID(productID *int64) Predicate[model.Inventory] {
	if productID == nil {
		return True[model.Inventory]()
	}
	return func(inv model.Inventory) bool {
		return inv.ProductID == *productID
	}
}

// HasStockBetween matches inventories within the inclusive stock range.
// A nil bound leaves that side open; both nil yields the universal predicate.
func HasStockBetween(minStock, maxStock *int32) Predicate[model.Inventory] {
	switch {
	case minStock == nil && maxStock == nil:
		return True[model.Inventory]()
	case minStock == nil:
		return func(inv model.Inventory) bool { return inv.CurrentStock <= *maxStock }
	case maxStock == nil:
		return func(inv model.Inventory) bool { return inv.CurrentStock >= *minStock }
	default:
		return func(inv model.Inventory) bool {
			return inv.CurrentStock >= *minStock && inv.CurrentStock <= *maxStock
		}
	}
}

// HasStockGreaterThan matches inventories with stock strictly above minStock.
func HasStockGreaterThan(minStock *int32) Predicate[model.Inventory] {
	if minStock == nil {
		return True[model.Inventory]()
	}
	return func(inv model.Inventory) bool {
		return inv.CurrentStock > *minStock
	}
}
