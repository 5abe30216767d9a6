package queries

import (
	"context"

	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// GetAlertsQueryHandler loads a snapshot of non-completed orders and runs
// the pure alert deriver over it. Unlike the other query handlers it reads
// through the repository port: the deriver works on domain aggregates, not
// on flat rows. The snapshot may be slightly stale; alerts tolerate that.
type GetAlertsQueryHandler struct {
	orders  ports.OrderRepository
	deriver services.AlertDeriver
}

// NewGetAlertsQueryHandler creates a handler for alert queries.
func NewGetAlertsQueryHandler(orders ports.OrderRepository, deriver services.AlertDeriver) GetAlertsQueryHandler {
	return GetAlertsQueryHandler{orders: orders, deriver: deriver}
}

// Handle executes the query and returns alerts ordered by severity, then
// due date with undated orders last.
func (h GetAlertsQueryHandler) Handle(ctx context.Context, query GetAlertsQuery) ([]services.Alert, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.orders.GetAllNotCompleted(ctx)
	if err != nil {
		return nil, err
	}

	return h.deriver.Derive(snapshot, query.Now()), nil
}
