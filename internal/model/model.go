// Package model defines the domain records managed by the service.
package model

import "time"

// ProductStatus is the lifecycle status of a product.
type ProductStatus string

const (
	StatusAvailable    ProductStatus = "AVAILABLE"
	StatusNotAvailable ProductStatus = "NOT_AVAILABLE"
)

// Valid reports whether the status is one of the known values.
func (s ProductStatus) Valid() bool {
	return s == StatusAvailable || s == StatusNotAvailable
}

// Product is a catalog record. ID is assigned by the store on create
// and is always positive for persisted records.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       float64
	Status      ProductStatus
}

// Inventory tracks the stock level of exactly one product.
// LastUpdated is stamped by the service on every create and update.
type Inventory struct {
	ID           int64
	ProductID    int64
	CurrentStock int32
	LastUpdated  time.Time
}
