// Package service provides the implementation of product and inventory business logic.
package service

import (
	"time"

	"github.com/abgdnv/goinventory/internal/model"
)

// ProductRequestDto carries the fields a caller may supply when creating or
// updating a product. Optional numeric fields are pointers so that absence
// is distinguishable from a zero value.
type ProductRequestDto struct {
	Name        string              `json:"name"        validate:"required,max=255"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	Category    string              `json:"category"    validate:"omitempty,max=100"`
	Price       *float64            `json:"price"       validate:"omitempty,gte=0"`
	Status      model.ProductStatus `json:"status"      validate:"omitempty,oneof=AVAILABLE NOT_AVAILABLE"`
}

// ProductDto is the response representation of a product.
type ProductDto struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Category    string              `json:"category,omitempty"`
	Price       float64             `json:"price"`
	Status      model.ProductStatus `json:"status"`
}

// InventoryRequestDto carries the fields a caller may supply when creating or
// updating an inventory record. ProductID and CurrentStock are both required
// on create; on update either may be omitted.
type InventoryRequestDto struct {
	ProductID    *int64 `json:"product_id"    validate:"omitempty,gt=0"`
	CurrentStock *int32 `json:"current_stock" validate:"omitempty,gte=0"`
}

// InventoryDto is the response representation of an inventory record.
type InventoryDto struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	CurrentStock int32  `json:"current_stock"`
	LastUpdated  string `json:"last_updated"`
}

// toProductDto converts a domain product to its response record.
func toProductDto(p model.Product) ProductDto {
	return ProductDto{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Status:      p.Status,
	}
}

// toInventoryDto converts a domain inventory record to its response record.
func toInventoryDto(inv model.Inventory) InventoryDto {
	return InventoryDto{
		ID:           inv.ID,
		ProductID:    inv.ProductID,
		CurrentStock: inv.CurrentStock,
		LastUpdated:  inv.LastUpdated.Format(time.RFC3339),
	}
}
