package ports

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderFilter narrows ListOrders results. Zero-valued fields are ignored, so
// the empty filter returns every order.
type OrderFilter struct {
	// OrderType keeps only orders of the given type when non-unknown.
	OrderType order.Type

	// Status keeps only orders in the given derived status when non-unknown.
	Status order.Status

	// SupplierID keeps only orders placed with the given supplier.
	SupplierID *kernel.UUID

	// Search keeps orders whose job title or customer name contains the
	// given text, case-insensitively.
	Search string

	// Overdue keeps only non-completed orders whose estimated delivery date
	// lies strictly before the calendar day of Now.
	Overdue bool

	// Now anchors the Overdue comparison; ignored when Overdue is false.
	Now time.Time
}

// OrderRepository defines the persistence contract for production order
// aggregates. Update enforces optimistic concurrency: it commits only when
// the persisted version still matches the version the aggregate was loaded
// with, and reports a version conflict otherwise.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.ProductionOrder) error

	// Update persists changes to an existing order aggregate.
	// Returns a version conflict error when the aggregate was modified
	// concurrently since it was loaded.
	Update(ctx context.Context, aggregate *order.ProductionOrder) error

	// Delete removes an order aggregate and its children from storage.
	// The caller must have checked the delete guard on the aggregate first.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order aggregate by its unique identifier, fully
	// hydrated with line items, delivery history and issues.
	Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error)

	// GetAll retrieves orders matching the filter, newest first.
	GetAll(ctx context.Context, filter OrderFilter) ([]*order.ProductionOrder, error)

	// GetAllNotCompleted retrieves every order that is not yet completed.
	// Feeds the alert deriver and the KPI projection.
	GetAllNotCompleted(ctx context.Context) ([]*order.ProductionOrder, error)
}
