// Package search provides composable predicates over domain records and the
// compiler that turns a bag of optional search criteria into a single filter.
package search

// Predicate decides whether a candidate record matches a search dimension.
type Predicate[T any] func(T) bool

// True returns the universal predicate, which matches every record.
func True[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And returns a predicate that matches when both p and other match.
func (p Predicate[T]) And(other Predicate[T]) Predicate[T] {
	return func(v T) bool { return p(v) && other(v) }
}

// Or returns a predicate that matches when either p or other matches.
func (p Predicate[T]) Or(other Predicate[T]) Predicate[T] {
	return func(v T) bool { return p(v) || other(v) }
}

// AllOf reduces preds with logical AND, starting from the universal
// predicate. An empty list therefore matches everything.
func AllOf[T any](preds ...Predicate[T]) Predicate[T] {
	combined := True[T]()
	for _, p := range preds {
		combined = combined.And(p)
	}
	return combined
}
