package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
	"github.com/abgdnv/goinventory/internal/store"
)

// ProductService defines the operations for managing and searching products.
type ProductService interface {
	// FindAll returns all products. Returns an empty slice if none exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindAllPaged returns one page of all products with totals.
	FindAllPaged(ctx context.Context, req store.PageRequest) (*store.Page[ProductDto], error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create validates the request and adds a new product.
	Create(ctx context.Context, req *ProductRequestDto) (*ProductDto, error)

	// Update validates the request and replaces the supplied fields of an
	// existing product. Returns ErrProductNotFound for an unknown ID.
	Update(ctx context.Context, id int64, req *ProductRequestDto) (*ProductDto, error)

	// UpdateStatus applies a status-only mutation.
	UpdateStatus(ctx context.Context, id int64, status model.ProductStatus) (*ProductDto, error)

	// DeleteByID removes a product. Returns ErrProductNotFound for an unknown ID.
	DeleteByID(ctx context.Context, id int64) error

	// Search compiles the criteria into a single filter and returns the
	// matching products. Empty criteria match everything.
	Search(ctx context.Context, criteria search.ProductCriteria) ([]ProductDto, error)

	FindByName(ctx context.Context, name string) ([]ProductDto, error)
	FindByCategory(ctx context.Context, category string) ([]ProductDto, error)
	FindByKeyword(ctx context.Context, keyword string) ([]ProductDto, error)
	FindByStatus(ctx context.Context, status model.ProductStatus) ([]ProductDto, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]ProductDto, error)
	FindActive(ctx context.Context) ([]ProductDto, error)
	FindByCategoryAndAvailability(ctx context.Context, category string, availability *bool) ([]ProductDto, error)
	FindAvailableAbovePrice(ctx context.Context, minPrice *float64) ([]ProductDto, error)
}

type productService struct {
	repository store.ProductStore
	validator  ProductValidator
	executor   *queryExecutor[model.Product, ProductDto]
	logger     *slog.Logger
}

// NewProductService creates a ProductService backed by the given store.
func NewProductService(repository store.ProductStore, logger *slog.Logger) ProductService {
	logger = logger.With("component", "product_service")
	return &productService{
		repository: repository,
		executor:   newQueryExecutor(repository, toProductDto, logger),
		logger:     logger,
	}
}

func (s *productService) FindAll(ctx context.Context) ([]ProductDto, error) {
	return s.executor.executeSimpleQuery(ctx, "find all products")
}

func (s *productService) FindAllPaged(ctx context.Context, req store.PageRequest) (*store.Page[ProductDto], error) {
	return s.executor.executePagedQuery(ctx, req, "find all products with pagination")
}

func (s *productService) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	product, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	dto := toProductDto(*product)
	return &dto, nil
}

func (s *productService) Create(ctx context.Context, req *ProductRequestDto) (*ProductDto, error) {
	if err := s.validator.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	// Status is never empty post-create.
	if product.Status == "" {
		product.Status = model.StatusAvailable
	}

	saved, err := s.repository.Save(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.logger.InfoContext(ctx, "Product created", "id", saved.ID, "name", saved.Name)
	dto := toProductDto(*saved)
	return &dto, nil
}

func (s *productService) Update(ctx context.Context, id int64, req *ProductRequestDto) (*ProductDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}
	existing, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	existing.Name = req.Name
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Status != "" {
		existing.Status = req.Status
	}

	saved, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Product updated", "id", id)
	dto := toProductDto(*saved)
	return &dto, nil
}

func (s *productService) UpdateStatus(ctx context.Context, id int64, status model.ProductStatus) (*ProductDto, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, err
	}
	existing, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	existing.Status = status

	saved, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update status for product with ID %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Product status updated", "id", id, "status", status)
	dto := toProductDto(*saved)
	return &dto, nil
}

func (s *productService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID(id); err != nil {
		return err
	}
	if _, err := s.repository.Get(ctx, id); err != nil {
		return fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Product deleted", "id", id)
	return nil
}

func (s *productService) Search(ctx context.Context, criteria search.ProductCriteria) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, criteria.Compile(), "advanced search")
}

func (s *productService) FindByName(ctx context.Context, name string) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.HasName(name), "find by name: "+name)
}

func (s *productService) FindByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.HasCategory(category), "find by category: "+category)
}

func (s *productService) FindByKeyword(ctx context.Context, keyword string) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.SearchByKeyword(keyword), "search by keyword: "+keyword)
}

func (s *productService) FindByStatus(ctx context.Context, status model.ProductStatus) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.HasStatus(status), fmt.Sprintf("find by status: %s", status))
}

func (s *productService) FindByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.HasPriceBetween(minPrice, maxPrice), "find by price range")
}

func (s *productService) FindActive(ctx context.Context) ([]ProductDto, error) {
	return s.executor.executeSpecificationQuery(ctx, search.IsActiveAndAvailable(), "find active products")
}

func (s *productService) FindByCategoryAndAvailability(ctx context.Context, category string, availability *bool) ([]ProductDto, error) {
	pred := search.HasCategory(category).And(search.HasAvailability(availability))
	return s.executor.executeSpecificationQuery(ctx, pred, "find by category and availability")
}

func (s *productService) FindAvailableAbovePrice(ctx context.Context, minPrice *float64) ([]ProductDto, error) {
	pred := search.IsAvailable().And(search.HasPriceGreaterThan(minPrice))
	return s.executor.executeSpecificationQuery(ctx, pred, "find available products above price")
}
