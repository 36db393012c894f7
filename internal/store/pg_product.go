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

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a ProductStore backed by a PostgreSQL connection pool.
func NewPgProductStore(db *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: db}
}

const productColumns = "id, name, description, category, price, status"

// productSortColumns whitelists the sort keys accepted by FindAllPaged.
var productSortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"price":    "price",
	"category": "category",
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Status); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PgProductStore) Get(ctx context.Context, id int64) (*model.Product, error) {
	row := s.db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

func (s *PgProductStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// Save inserts the product when its ID is zero and updates it otherwise.
// Each path is a single statement, so the write is atomic with respect to
// concurrent writers at the store's isolation level.
func (s *PgProductStore) Save(ctx context.Context, p *model.Product) (*model.Product, error) {
	var row pgx.Row
	if p.ID == 0 {
		row = s.db.QueryRow(ctx,
			`INSERT INTO products (name, description, category, price, status)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+productColumns,
			p.Name, p.Description, p.Category, p.Price, p.Status)
	} else {
		row = s.db.QueryRow(ctx,
			`UPDATE products
			 SET name = $2, description = $3, category = $4, price = $5, status = $6
			 WHERE id = $1
			 RETURNING `+productColumns,
			p.ID, p.Name, p.Description, p.Category, p.Price, p.Status)
	}
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return saved, nil
}

func (s *PgProductStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func (s *PgProductStore) FindAll(ctx context.Context) ([]model.Product, error) {
	return s.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
}

// FindAllMatching scans all products in ID order and filters them in process:
// the predicate is an opaque closure, so it cannot be pushed into SQL.
func (s *PgProductStore) FindAllMatching(ctx context.Context, pred search.Predicate[model.Product]) ([]model.Product, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Product, 0, len(all))
	for _, p := range all {
		if pred(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *PgProductStore) FindAllPaged(ctx context.Context, req PageRequest) (*Page[model.Product], error) {
	var total int64
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM products").Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	sortCol, ok := productSortColumns[req.Sort]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY %s, id LIMIT $1 OFFSET $2", productColumns, sortCol)
	items, err := s.queryProducts(ctx, query, int64(req.Size), int64(req.Page)*int64(req.Size))
	if err != nil {
		return nil, err
	}

	return &Page[model.Product]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    TotalPages(total, req.Size),
	}, nil
}

func (s *PgProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}
