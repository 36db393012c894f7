package service

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// inventoryMetrics counts inventory mutations.
type inventoryMetrics struct {
	created      metric.Int64Counter
	updated      metric.Int64Counter
	deleted      metric.Int64Counter
	stockUpdates metric.Int64Counter
}

func newInventoryMetrics() *inventoryMetrics {
	meter := otel.Meter("inventory-service")
	m := &inventoryMetrics{}
	var err error
	if m.created, err = meter.Int64Counter("inventory_operations_created",
		metric.WithDescription("Total number of inventory records created")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_operations_created counter: %v", err))
	}
	if m.updated, err = meter.Int64Counter("inventory_operations_updated",
		metric.WithDescription("Total number of inventory records updated")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_operations_updated counter: %v", err))
	}
	if m.deleted, err = meter.Int64Counter("inventory_operations_deleted",
		metric.WithDescription("Total number of inventory records deleted")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_operations_deleted counter: %v", err))
	}
	if m.stockUpdates, err = meter.Int64Counter("inventory_stock_updates",
		metric.WithDescription("Total number of stock level changes")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_stock_updates counter: %v", err))
	}
	return m
}
