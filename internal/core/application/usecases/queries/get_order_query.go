// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern of the CQRS architecture: handlers read the
// storage directly and return flat response structs, bypassing the domain
// model where no behavior is needed.
package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one production order with its line items,
// delivery history and issue chains.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a production order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// LineItemResponse is the read model of one line item.
type LineItemResponse struct {
	Index       int
	Quantity    int
	Unit        string
	GlassType   string
	Combination string
	Notes       string
	ReceivedQty int
}

// DeliveryLineResponse is the read model of one arrival line.
type DeliveryLineResponse struct {
	LineIndex   int
	ReceivedQty int
	IssueType   string
	IssueQty    int
	IssueNote   string
}

// DeliveryEventResponse is the read model of one recorded arrival.
type DeliveryEventResponse struct {
	Date  time.Time
	Note  string
	Lines []DeliveryLineResponse
}

// ResolutionRecordResponse is the read model of one resolution step.
type ResolutionRecordResponse struct {
	Date        time.Time
	Resolution  string
	ResolvedQty int
	Note        string
}

// IssueResponse is the read model of one issue including its resolution
// history and chain link.
type IssueResponse struct {
	ID            kernel.UUID
	LineIndex     int
	IssueType     string
	Quantity      int
	Note          string
	Status        string
	ParentIssueID *kernel.UUID
	History       []ResolutionRecordResponse
}

// GetOrderQueryResponse is the full read model of a production order.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	JobID             kernel.UUID
	JobTitle          string
	CustomerName      string
	RoleID            kernel.UUID
	RoleName          string
	OrderType         string
	SupplierID        *kernel.UUID
	SupplierName      string
	Status            string
	EstimatedDelivery *time.Time
	Notes             string
	CreatedAt         time.Time
	Version           int64
	Items             []LineItemResponse
	Deliveries        []DeliveryEventResponse
	Issues            []IssueResponse
}
