package queries

import (
	"errors"
	"time"

	"production/internal/pkg/guard"
)

var ErrGetProductionSummaryQueryIsNotConstructed = errors.New(
	"GetProductionSummaryQuery must be created via NewGetProductionSummaryQuery constructor",
)

// GetProductionSummaryQuery retrieves the KPI counters shown on the
// production dashboard. The anchor instant fixes the overdue comparison.
type GetProductionSummaryQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetProductionSummaryQuery creates a query for the production KPI counters.
func NewGetProductionSummaryQuery(now time.Time) GetProductionSummaryQuery {
	return GetProductionSummaryQuery{now: now, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetProductionSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionSummaryQueryIsNotConstructed)
}

// Now anchors the overdue comparison.
func (q GetProductionSummaryQuery) Now() time.Time { return q.now }

// GetProductionSummaryQueryResponse carries the dashboard counters: order
// totals per derived status plus the overdue and open-issue counts.
type GetProductionSummaryQueryResponse struct {
	TotalOrders     int
	PendingOrders   int
	PartialOrders   int
	CompletedOrders int
	OverdueOrders   int
	OrdersWithOpen  int
	OpenIssues      int
}
