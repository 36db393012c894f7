package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/goinventory/internal/search"
	"github.com/abgdnv/goinventory/internal/store"
)

// recordStore is the read side of the store contract the executor needs.
type recordStore[E any] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindAllMatching(ctx context.Context, pred search.Predicate[E]) ([]E, error)
	FindAllPaged(ctx context.Context, req store.PageRequest) (*store.Page[E], error)
}

// queryExecutor bridges a compiled filter (or its absence) to the record
// store and maps domain records to response records. Mapping is total and
// order-preserving; the executor never re-sorts store results. Store
// failures propagate to the caller unchanged, wrapped for context only.
type queryExecutor[E, R any] struct {
	store  recordStore[E]
	mapTo  func(E) R
	logger *slog.Logger
}

func newQueryExecutor[E, R any](st recordStore[E], mapTo func(E) R, logger *slog.Logger) *queryExecutor[E, R] {
	return &queryExecutor[E, R]{
		store:  st,
		mapTo:  mapTo,
		logger: logger,
	}
}

// executeSimpleQuery returns all records, mapped, with no filter applied.
func (q *queryExecutor[E, R]) executeSimpleQuery(ctx context.Context, operation string) ([]R, error) {
	q.logger.DebugContext(ctx, "Executing simple query", "operation", operation)
	records, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute simple query %q: %w", operation, err)
	}
	q.logger.DebugContext(ctx, "Query completed", "operation", operation, "count", len(records))
	return q.mapAll(records), nil
}

// executeSpecificationQuery returns the records matching pred, mapped.
// Callers always supply at least the universal predicate, never nil.
func (q *queryExecutor[E, R]) executeSpecificationQuery(ctx context.Context, pred search.Predicate[E], operation string) ([]R, error) {
	q.logger.DebugContext(ctx, "Executing specification query", "operation", operation)
	records, err := q.store.FindAllMatching(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to execute specification query %q: %w", operation, err)
	}
	q.logger.DebugContext(ctx, "Query completed", "operation", operation, "count", len(records))
	return q.mapAll(records), nil
}

// executePagedQuery returns one page of all records, mapped, preserving the
// totals computed by the store.
func (q *queryExecutor[E, R]) executePagedQuery(ctx context.Context, req store.PageRequest, operation string) (*store.Page[R], error) {
	q.logger.DebugContext(ctx, "Executing paged query", "operation", operation, "page", req.Page, "size", req.Size)
	page, err := q.store.FindAllPaged(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute paged query %q: %w", operation, err)
	}
	q.logger.DebugContext(ctx, "Query completed", "operation", operation, "total", page.TotalElements)
	return &store.Page[R]{
		Items:         q.mapAll(page.Items),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}, nil
}

func (q *queryExecutor[E, R]) mapAll(records []E) []R {
	mapped := make([]R, len(records))
	for i, rec := range records {
		mapped[i] = q.mapTo(rec)
	}
	return mapped
}
