package queries

import (
	"errors"
	"time"

	"production/internal/pkg/guard"
)

var ErrGetAlertsQueryIsNotConstructed = errors.New(
	"GetAlertsQuery must be created via NewGetAlertsQuery constructor",
)

// GetAlertsQuery derives attention alerts for every non-completed order.
// The anchor instant fixes the overdue and due-today comparisons, so the
// same snapshot and anchor always produce the same alerts.
type GetAlertsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetAlertsQuery creates a query to derive production alerts.
func NewGetAlertsQuery(now time.Time) GetAlertsQuery {
	return GetAlertsQuery{now: now, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetAlertsQueryIsNotConstructed)
}

// Now anchors the date comparisons.
func (q GetAlertsQuery) Now() time.Time { return q.now }
