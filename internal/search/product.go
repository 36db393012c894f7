package search

import (
	"strings"

	"github.com/abgdnv/goinventory/internal/model"
)

// hasText reports whether s contains at least one non-whitespace character.
// Blank strings are treated as an absent criterion, never as a filter.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// HasName matches products whose name contains name, case-insensitively.
func HasName(name string) Predicate[model.Product] {
	if !hasText(name) {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return containsFold(p.Name, name)
	}
}

// HasExactName matches products whose full name equals name, case-insensitively.
func HasExactName(name string) Predicate[model.Product] {
	if !hasText(name) {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return strings.EqualFold(p.Name, name)
	}
}

// HasCategory matches products in the given category, case-insensitively.
func HasCategory(category string) Predicate[model.Product] {
	if !hasText(category) {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return strings.EqualFold(p.Category, category)
	}
}

// HasStatus matches products with the given status.
func HasStatus(status model.ProductStatus) Predicate[model.Product] {
	if status == "" {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return p.Status == status
	}
}

// HasPriceGreaterThan matches products priced strictly above minPrice.
func HasPriceGreaterThan(minPrice *float64) Predicate[model.Product] {
	if minPrice == nil {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return p.Price > *minPrice
	}
}

// HasPriceLessThan matches products priced strictly below maxPrice.
func HasPriceLessThan(maxPrice *float64) Predicate[model.Product] {
	if maxPrice == nil {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return p.Price < *maxPrice
	}
}

// HasPriceBetween matches products within the inclusive price range. A nil
// bound leaves that side open: only-min means price >= min, only-max means
// price <= max, and both nil yields the universal predicate.
func HasPriceBetween(minPrice, maxPrice *float64) Predicate[model.Product] {
	switch {
	case minPrice == nil && maxPrice == nil:
		return True[model.Product]()
	case minPrice == nil:
		return func(p model.Product) bool { return p.Price <= *maxPrice }
	case maxPrice == nil:
		return func(p model.Product) bool { return p.Price >= *minPrice }
	default:
		return func(p model.Product) bool { return p.Price >= *minPrice && p.Price <= *maxPrice }
	}
}

// IsAvailable matches products whose status is AVAILABLE.
func IsAvailable() Predicate[model.Product] {
	return func(p model.Product) bool {
		return p.Status == model.StatusAvailable
	}
}

// HasAvailability matches on availability as a flag over the status enum:
// true selects AVAILABLE products, false selects everything else.
func HasAvailability(availability *bool) Predicate[model.Product] {
	if availability == nil {
		return True[model.Product]()
	}
	want := *availability
	return func(p model.Product) bool {
		return (p.Status == model.StatusAvailable) == want
	}
}

// IsActive matches active products. There is no separate active column:
// active deliberately resolves to the same status check as IsAvailable.
func IsActive() Predicate[model.Product] {
	return func(p model.Product) bool {
		return p.Status == model.StatusAvailable
	}
}

// IsActiveAndAvailable matches products that are both active and available.
func IsActiveAndAvailable() Predicate[model.Product] {
	return IsActive().And(IsAvailable())
}

// SearchByKeyword matches products whose name, description or category
// contains keyword, case-insensitively. The three fields are combined with
// OR: a hit on any one of them is a match.
func SearchByKeyword(keyword string) Predicate[model.Product] {
	if !hasText(keyword) {
		return True[model.Product]()
	}
	return func(p model.Product) bool {
		return containsFold(p.Name, keyword) ||
			containsFold(p.Description, keyword) ||
			containsFold(p.Category, keyword)
	}
}
