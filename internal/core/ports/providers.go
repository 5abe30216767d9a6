package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
)

// Job is the master-data projection of a customer job, as far as order
// creation needs it: title and customer are captured onto the order so that
// list search works without a master-data round trip.
type Job struct {
	ID           kernel.UUID
	Title        string
	CustomerName string
}

// Supplier is the master-data projection of a supplier.
type Supplier struct {
	ID   kernel.UUID
	Name string
}

// Role is the master-data projection of a work category. EstimatedDays
// seeds an order's estimated delivery date when the caller leaves it empty.
type Role struct {
	ID            kernel.UUID
	Name          string
	EstimatedDays int
}

// JobProvider resolves customer jobs from the master-data service.
// Implementations return an object-not-found error for unknown IDs.
type JobProvider interface {
	GetJob(ctx context.Context, id kernel.UUID) (Job, error)
}

// SupplierProvider resolves suppliers from the master-data service.
type SupplierProvider interface {
	GetSupplier(ctx context.Context, id kernel.UUID) (Supplier, error)
}

// RoleProvider resolves work categories from the master-data service.
type RoleProvider interface {
	GetRole(ctx context.Context, id kernel.UUID) (Role, error)
}
