package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
)

// memoryProducts implements ProductStore using an in-memory map.
type memoryProducts struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
}

// NewMemoryProductStore creates a new in-memory ProductStore.
func NewMemoryProductStore() ProductStore {
	return &memoryProducts{
		products: make(map[int64]model.Product),
		nextID:   1,
	}
}

func (s *memoryProducts) Get(_ context.Context, id int64) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *memoryProducts) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[id]
	return ok, nil
}

func (s *memoryProducts) Save(_ context.Context, p *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *p
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
	} else if _, ok := s.products[saved.ID]; !ok {
		return nil, apperrors.ErrProductNotFound
	}
	s.products[saved.ID] = saved
	return &saved, nil
}

func (s *memoryProducts) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return apperrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memoryProducts) FindAll(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted("id"), nil
}

func (s *memoryProducts) FindAllMatching(_ context.Context, pred search.Predicate[model.Product]) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Product, 0)
	for _, p := range s.sorted("id") {
		if pred(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *memoryProducts) FindAllPaged(_ context.Context, req PageRequest) (*Page[model.Product], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sorted(req.Sort)
	return paginate(all, req), nil
}

// sorted returns all products ordered by the given sort key.
// Unknown keys fall back to ID order.
func (s *memoryProducts) sorted(sortKey string) []model.Product {
	list := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	switch sortKey {
	case "name":
		slices.SortFunc(list, func(a, b model.Product) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return int(a.ID - b.ID)
		})
	case "price":
		slices.SortFunc(list, func(a, b model.Product) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			default:
				return int(a.ID - b.ID)
			}
		})
	default:
		slices.SortFunc(list, func(a, b model.Product) int {
			return int(a.ID - b.ID)
		})
	}
	return list
}

// memoryInventories implements InventoryStore using an in-memory map.
type memoryInventories struct {
	mu          sync.RWMutex
	inventories map[int64]model.Inventory
	nextID      int64
}

// NewMemoryInventoryStore creates a new in-memory InventoryStore.
func NewMemoryInventoryStore() InventoryStore {
	return &memoryInventories{
		inventories: make(map[int64]model.Inventory),
		nextID:      1,
	}
}

func (s *memoryInventories) Get(_ context.Context, id int64) (*model.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.inventories[id]
	if !ok {
		return nil, apperrors.ErrInventoryNotFound
	}
	return &inv, nil
}

func (s *memoryInventories) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.inventories[id]
	return ok, nil
}

func (s *memoryInventories) Save(_ context.Context, inv *model.Inventory) (*model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *inv
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
	} else if _, ok := s.inventories[saved.ID]; !ok {
		return nil, apperrors.ErrInventoryNotFound
	}
	s.inventories[saved.ID] = saved
	return &saved, nil
}

func (s *memoryInventories) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inventories[id]; !ok {
		return apperrors.ErrInventoryNotFound
	}
	delete(s.inventories, id)
	return nil
}

func (s *memoryInventories) FindAll(_ context.Context) ([]model.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted("id"), nil
}

func (s *memoryInventories) FindAllMatching(_ context.Context, pred search.Predicate[model.Inventory]) ([]model.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Inventory, 0)
	for _, inv := range s.sorted("id") {
		if pred(inv) {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func (s *memoryInventories) FindAllPaged(_ context.Context, req PageRequest) (*Page[model.Inventory], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sorted(req.Sort)
	return paginate(all, req), nil
}

func (s *memoryInventories) sorted(sortKey string) []model.Inventory {
	list := make([]model.Inventory, 0, len(s.inventories))
	for _, inv := range s.inventories {
		list = append(list, inv)
	}
	switch sortKey {
	case "stock":
		slices.SortFunc(list, func(a, b model.Inventory) int {
			if c := int(a.CurrentStock - b.CurrentStock); c != 0 {
				return c
			}
			return int(a.ID - b.ID)
		})
	default:
		slices.SortFunc(list, func(a, b model.Inventory) int {
			return int(a.ID - b.ID)
		})
	}
	return list
}

// paginate slices one page out of the full ordered result set.
// Negative page or size values are clamped to zero, matching TotalPages.
func paginate[T any](all []T, req PageRequest) *Page[T] {
	total := int64(len(all))
	page := max(req.Page, 0)
	size := max(req.Size, 0)
	start := int64(page) * int64(size)
	end := start + int64(size)
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	items := make([]T, end-start)
	copy(items, all[start:end])

	return &Page[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    TotalPages(total, size),
	}
}
