package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves production order headers matching a filter.
// Zero-valued filter fields are ignored, so the empty query lists all
// orders newest first.
type ListOrdersQuery struct {
	orderType  order.Type
	status     order.Status
	supplierID *kernel.UUID
	search     string
	overdue    bool
	now        time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders. orderType and status
// may be their unknown zero values to skip that filter; a non-zero value
// must be valid. now anchors the overdue comparison.
func NewListOrdersQuery(
	orderType order.Type,
	status order.Status,
	supplierID *kernel.UUID,
	search string,
	overdue bool,
	now time.Time,
) (ListOrdersQuery, error) {
	if orderType != order.TypeUnknown {
		if err := orderType.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if status != order.StatusUnknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if supplierID != nil {
		if err := supplierID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		orderType:  orderType,
		status:     status,
		supplierID: supplierID,
		search:     search,
		overdue:    overdue,
		now:        now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OrderType returns the type filter, TypeUnknown when unset.
func (q ListOrdersQuery) OrderType() order.Type { return q.orderType }

// Status returns the status filter, StatusUnknown when unset.
func (q ListOrdersQuery) Status() order.Status { return q.status }

// SupplierID returns the supplier filter, nil when unset.
func (q ListOrdersQuery) SupplierID() *kernel.UUID { return q.supplierID }

// Search returns the free-text filter over job title and customer name.
func (q ListOrdersQuery) Search() string { return q.search }

// Overdue reports whether only overdue orders should be listed.
func (q ListOrdersQuery) Overdue() bool { return q.overdue }

// Now anchors the overdue comparison.
func (q ListOrdersQuery) Now() time.Time { return q.now }

// ListOrdersQueryResponse is the header read model of one order in a list:
// identification, classification, progress totals and due date.
type ListOrdersQueryResponse struct {
	ID                kernel.UUID
	JobID             kernel.UUID
	JobTitle          string
	CustomerName      string
	RoleName          string
	OrderType         string
	SupplierName      string
	Status            string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	TotalQty          int
	ReceivedQty       int
	OpenIssues        int
}
