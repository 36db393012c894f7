package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
	"github.com/abgdnv/goinventory/internal/store"
)

// InventoryService defines the operations for managing and searching
// inventory stock levels.
type InventoryService interface {
	// FindAll returns all inventory records. Returns an empty slice if none exist.
	FindAll(ctx context.Context) ([]InventoryDto, error)

	// FindAllPaged returns one page of all inventory records with totals.
	FindAllPaged(ctx context.Context, req store.PageRequest) (*store.Page[InventoryDto], error)

	// FindByID retrieves a single inventory record by its identifier.
	// Returns ErrInventoryNotFound if no record exists with the given ID.
	FindByID(ctx context.Context, id int64) (*InventoryDto, error)

	// Create validates the request, verifies the referenced product exists,
	// stamps the last-updated time and stores the new record.
	Create(ctx context.Context, req *InventoryRequestDto) (*InventoryDto, error)

	// Update validates the request and replaces the supplied fields of an
	// existing record, re-verifying the product reference when it changes.
	Update(ctx context.Context, id int64, req *InventoryRequestDto) (*InventoryDto, error)

	// UpdateStockLevel applies a stock-only mutation. A nil stock level is
	// rejected before any lookup.
	UpdateStockLevel(ctx context.Context, id int64, stockLevel *int32) (*InventoryDto, error)

	// DeleteByID removes an inventory record.
	// Returns ErrInventoryNotFound for an unknown ID.
	DeleteByID(ctx context.Context, id int64) error

	// Search compiles the criteria into a single filter and returns the
	// matching records. Empty criteria match everything.
	Search(ctx context.Context, criteria search.InventoryCriteria) ([]InventoryDto, error)

	FindByProductID(ctx context.Context, productID int64) ([]InventoryDto, error)
	FindByStockRange(ctx context.Context, minStock, maxStock *int32) ([]InventoryDto, error)
	FindByMinimumStock(ctx context.Context, minStock int32) ([]InventoryDto, error)
}

type inventoryService struct {
	repository store.InventoryStore
	products   store.ProductStore
	validator  InventoryValidator
	executor   *queryExecutor[model.Inventory, InventoryDto]
	metrics    *inventoryMetrics
	logger     *slog.Logger
}

// NewInventoryService creates an InventoryService backed by the given stores.
// The product store is consulted for referential existence checks only.
func NewInventoryService(repository store.InventoryStore, products store.ProductStore, logger *slog.Logger) InventoryService {
	logger = logger.With("component", "inventory_service")
	return &inventoryService{
		repository: repository,
		products:   products,
		executor:   newQueryExecutor(repository, toInventoryDto, logger),
		metrics:    newInventoryMetrics(),
		logger:     logger,
	}
}

func (s *inventoryService) FindAll(ctx context.Context) ([]InventoryDto, error) {
	return s.executor.executeSimpleQuery(ctx, "find all inventories")
}

func (s *inventoryService) FindAllPaged(ctx context.Context, req store.PageRequest) (*store.Page[InventoryDto], error) {
	return s.executor.executePagedQuery(ctx, req, "find all inventories with pagination")
}

func (s *inventoryService) FindByID(ctx context.Context, id int64) (*InventoryDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	inventory, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory by ID %d: %w", id, err)
	}
	dto := toInventoryDto(*inventory)
	return &dto, nil
}

func (s *inventoryService) Create(ctx context.Context, req *InventoryRequestDto) (*InventoryDto, error) {
	if err := s.validator.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	if err := s.verifyProductExists(ctx, *req.ProductID); err != nil {
		return nil, err
	}

	inventory := model.Inventory{
		ProductID:    *req.ProductID,
		CurrentStock: *req.CurrentStock,
		LastUpdated:  time.Now(),
	}
	saved, err := s.repository.Save(ctx, &inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	s.metrics.created.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Inventory created", "id", saved.ID, "product_id", saved.ProductID)
	dto := toInventoryDto(*saved)
	return &dto, nil
}

func (s *inventoryService) Update(ctx context.Context, id int64, req *InventoryRequestDto) (*InventoryDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}
	existing, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory by ID %d: %w", id, err)
	}

	if req.ProductID != nil && *req.ProductID != existing.ProductID {
		if err := s.verifyProductExists(ctx, *req.ProductID); err != nil {
			return nil, err
		}
		existing.ProductID = *req.ProductID
	}
	if req.CurrentStock != nil {
		existing.CurrentStock = *req.CurrentStock
	}
	existing.LastUpdated = time.Now()

	saved, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory with ID %d: %w", id, err)
	}
	s.metrics.updated.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Inventory updated", "id", id)
	dto := toInventoryDto(*saved)
	return &dto, nil
}

func (s *inventoryService) UpdateStockLevel(ctx context.Context, id int64, stockLevel *int32) (*InventoryDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	if stockLevel == nil {
		return nil, apperrors.NewValidation("Stock level is required")
	}
	if err := s.validator.ValidateStockLevel(*stockLevel); err != nil {
		return nil, err
	}
	existing, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory by ID %d: %w", id, err)
	}
	existing.CurrentStock = *stockLevel
	existing.LastUpdated = time.Now()

	saved, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock level for inventory with ID %d: %w", id, err)
	}
	s.metrics.stockUpdates.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Stock level updated", "id", id, "stock", *stockLevel)
	dto := toInventoryDto(*saved)
	return &dto, nil
}

func (s *inventoryService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID(id); err != nil {
		return err
	}
	if _, err := s.repository.Get(ctx, id); err != nil {
		return fmt.Errorf("failed to fetch inventory by ID %d: %w", id, err)
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory with ID %d: %w", id, err)
	}
	s.metrics.deleted.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Inventory deleted", "id", id)
	return nil
}

func (s *inventoryService) Search(ctx context.Context, criteria search.InventoryCriteria) ([]InventoryDto, error) {
	return s.executor.executeSpecificationQuery(ctx, criteria.Compile(), "advanced search")
}

func (s *inventoryService) FindByProductID(ctx context.Context, productID int64) ([]InventoryDto, error) {
	pred := search.HasProductID(&productID)
	return s.executor.executeSpecificationQuery(ctx, pred, fmt.Sprintf("find by product id: %d", productID))
}

func (s *inventoryService) FindByStockRange(ctx context.Context, minStock, maxStock *int32) ([]InventoryDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.HasStockBetween(minStock, maxStock), "find by stock range")
}

func (s *inventoryService) FindByMinimumStock(ctx context.Context, minStock int32) ([]InventoryDto, error) {
	pred := search.HasStockGreaterThan(&minStock)
	return s.executor.executeSpecificationQuery(ctx, pred, fmt.Sprintf("find by minimum stock: %d", minStock))
}

// verifyProductExists enforces the referential invariant: an inventory's
// product reference must resolve at the moment of create or reassign. The
// failure is a ValidationError so callers get a typed, user-facing error
// rather than a store constraint violation.
func (s *inventoryService) verifyProductExists(ctx context.Context, productID int64) error {
	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to check product existence for ID %d: %w", productID, err)
	}
	if !exists {
		return apperrors.NewValidation("Product not found with id: %d", productID)
	}
	return nil
}
