package service

import (
	"strings"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/model"
)

// Field limits enforced before any write reaches the store.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	MaxCategoryLength    = 100

	MinStock = 0
	MaxStock = 1_000_000
)

// ProductValidator gates product mutations with field-level checks.
// Every violation is reported as a ValidationError; the validator never
// coerces a value and never partially applies a request.
type ProductValidator struct{}

// ValidateCreateRequest checks all field invariants of a create request.
func (ProductValidator) ValidateCreateRequest(req *ProductRequestDto) error {
	if req == nil {
		return apperrors.NewValidation("Product request cannot be null")
	}
	if err := validateProductName(req.Name); err != nil {
		return err
	}
	if req.Price != nil && *req.Price < 0 {
		return apperrors.NewValidation("Product price cannot be negative")
	}
	if len(req.Description) > MaxDescriptionLength {
		return apperrors.NewValidation("Product description cannot exceed %d characters", MaxDescriptionLength)
	}
	if len(req.Category) > MaxCategoryLength {
		return apperrors.NewValidation("Product category cannot exceed %d characters", MaxCategoryLength)
	}
	if req.Status != "" && !req.Status.Valid() {
		return apperrors.NewValidation("Unknown product status: %s", req.Status)
	}
	return nil
}

// ValidateUpdateRequest runs the same checks as create: updates are full
// re-validations, not partial relaxations.
func (v ProductValidator) ValidateUpdateRequest(req *ProductRequestDto) error {
	return v.ValidateCreateRequest(req)
}

// ValidateStatus checks a status-only mutation argument.
func (ProductValidator) ValidateStatus(status model.ProductStatus) error {
	if status == "" {
		return apperrors.NewValidation("Product status is required")
	}
	if !status.Valid() {
		return apperrors.NewValidation("Unknown product status: %s", status)
	}
	return nil
}

// ValidateID checks an identifier before any id-keyed lookup.
func (ProductValidator) ValidateID(id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("Product ID must be a positive number")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation("Product name is required")
	}
	if len(name) > MaxNameLength {
		return apperrors.NewValidation("Product name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

// InventoryValidator gates inventory mutations with field-level checks.
type InventoryValidator struct{}

// ValidateCreateRequest checks all field invariants of a create request.
// Both the product reference and the stock level are required.
func (InventoryValidator) ValidateCreateRequest(req *InventoryRequestDto) error {
	if req == nil {
		return apperrors.NewValidation("Inventory request cannot be null")
	}
	if req.ProductID == nil {
		return apperrors.NewValidation("Product ID is required")
	}
	if *req.ProductID <= 0 {
		return apperrors.NewValidation("Product ID must be a positive number")
	}
	if req.CurrentStock == nil {
		return apperrors.NewValidation("Stock level is required")
	}
	return validateStockLevel(*req.CurrentStock)
}

// ValidateUpdateRequest checks an update request. The product reference is
// optional here: a caller may choose not to reassign the product.
func (InventoryValidator) ValidateUpdateRequest(req *InventoryRequestDto) error {
	if req == nil {
		return apperrors.NewValidation("Inventory request cannot be null")
	}
	if req.ProductID != nil && *req.ProductID <= 0 {
		return apperrors.NewValidation("Product ID must be a positive number")
	}
	if req.CurrentStock != nil {
		return validateStockLevel(*req.CurrentStock)
	}
	return nil
}

// ValidateStockLevel checks a stock-only mutation argument.
func (InventoryValidator) ValidateStockLevel(stock int32) error {
	return validateStockLevel(stock)
}

// ValidateID checks an identifier before any id-keyed lookup.
func (InventoryValidator) ValidateID(id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("Inventory ID must be a positive number")
	}
	return nil
}

func validateStockLevel(stock int32) error {
	if stock < MinStock {
		return apperrors.NewValidation("Stock level cannot be negative")
	}
	if stock > MaxStock {
		return apperrors.NewValidation("Stock level exceeds maximum allowed: %d", MaxStock)
	}
	return nil
}
