package queries

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetProductionSummaryQueryHandler computes the dashboard KPI counters with
// a single pass over the orders table plus one issue aggregation.
type GetProductionSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetProductionSummaryQueryHandler creates a handler for KPI queries.
// Requires a GORM database connection for query execution.
func NewGetProductionSummaryQueryHandler(db *gorm.DB) GetProductionSummaryQueryHandler {
	return GetProductionSummaryQueryHandler{db: db}
}

// Handle executes the query. Overdue counts non-completed orders whose
// estimated delivery date lies on an earlier calendar day than the anchor.
func (h GetProductionSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetProductionSummaryQuery,
) (GetProductionSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductionSummaryQueryResponse{}, err
	}

	now := query.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var counters struct {
		TotalOrders     int
		PendingOrders   int
		PartialOrders   int
		CompletedOrders int
		OverdueOrders   int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = ?) AS pending_orders,
			COUNT(*) FILTER (WHERE status = ?) AS partial_orders,
			COUNT(*) FILTER (WHERE status = ?) AS completed_orders,
			COUNT(*) FILTER (
				WHERE status <> ?
				AND estimated_delivery IS NOT NULL
				AND estimated_delivery < ?
			) AS overdue_orders
		FROM orders
	`,
		order.StatusPending.String(),
		order.StatusPartial.String(),
		order.StatusCompleted.String(),
		order.StatusCompleted.String(),
		dayStart,
	).Scan(&counters).Error
	if err != nil {
		return GetProductionSummaryQueryResponse{}, err
	}

	var issues struct {
		OpenIssues     int
		OrdersWithOpen int
	}
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS open_issues,
			COUNT(DISTINCT order_id) AS orders_with_open
		FROM issues
		WHERE status = ?
	`, order.IssueStatusPending.String()).Scan(&issues).Error
	if err != nil {
		return GetProductionSummaryQueryResponse{}, err
	}

	return GetProductionSummaryQueryResponse{
		TotalOrders:     counters.TotalOrders,
		PendingOrders:   counters.PendingOrders,
		PartialOrders:   counters.PartialOrders,
		CompletedOrders: counters.CompletedOrders,
		OverdueOrders:   counters.OverdueOrders,
		OrdersWithOpen:  issues.OrdersWithOpen,
		OpenIssues:      issues.OpenIssues,
	}, nil
}
