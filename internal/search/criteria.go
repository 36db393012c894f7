package search

import "github.com/abgdnv/goinventory/internal/model"

// ProductCriteria is a bag of optional product search dimensions. A zero or
// nil field means "do not filter on this dimension".
type ProductCriteria struct {
	Keyword      string
	Name         string
	Category     string
	Status       model.ProductStatus
	MinPrice     *float64
	MaxPrice     *float64
	Availability *bool
	Active       *bool
}

// Compile combines the non-empty criteria fields into a single predicate.
// Fields are inspected in a fixed order (keyword, name, category, status,
// price range, availability, active) and conjoined with AND starting from
// the universal predicate, so empty criteria match every record. Overlapping
// filters all narrow the result set; none takes precedence over another.
func (c ProductCriteria) Compile() Predicate[model.Product] {
	var preds []Predicate[model.Product]

	if hasText(c.Keyword) {
		preds = append(preds, SearchByKeyword(c.Keyword))
	}
	if hasText(c.Name) {
		preds = append(preds, HasName(c.Name))
	}
	if hasText(c.Category) {
		preds = append(preds, HasCategory(c.Category))
	}
	if c.Status != "" {
		preds = append(preds, HasStatus(c.Status))
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		preds = append(preds, HasPriceBetween(c.MinPrice, c.MaxPrice))
	}
	if c.Availability != nil {
		preds = append(preds, HasAvailability(c.Availability))
	}
	// Active=false is ignored: only an explicit true narrows the result.
	if c.Active != nil && *c.Active {
		preds = append(preds, IsActive())
	}

	return AllOf(preds...)
}

// InventoryCriteria is a bag of optional inventory search dimensions.
type InventoryCriteria struct {
	ProductID *int64
	MinStock  *int32
	MaxStock  *int32
}

// Compile combines the non-empty criteria fields into a single predicate,
// inspecting productId first and the stock range second.
func (c InventoryCriteria) Compile() Predicate[model.Inventory] {
	var preds []Predicate[model.Inventory]

	if c.ProductID != nil {
		preds = append(preds, HasProductID(c.ProductID))
	}
	if c.MinStock != nil || c.MaxStock != nil {
		preds = append(preds, HasStockBetween(c.MinStock, c.MaxStock))
	}

	return AllOf(preds...)
}
