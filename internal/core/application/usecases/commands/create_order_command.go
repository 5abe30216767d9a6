package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one line item is required")
)

// LineItemInput carries the caller-supplied fields of one line item. Index
// is assigned from the slice position; validation of quantity and unit
// happens in the domain constructor.
type LineItemInput struct {
	Quantity    int
	Unit        string
	GlassType   string
	Combination string
	Notes       string
}

// CreateOrderCommand represents a request to create a new production order
// against a customer job. Master-data references (job, role, supplier) are
// carried as IDs and resolved by the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	jobID             kernel.UUID
	roleID            kernel.UUID
	orderType         order.Type
	supplierID        *kernel.UUID
	items             []LineItemInput
	estimatedDelivery *time.Time
	notes             string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new production order.
// Validates the identifiers, the order type, and that at least one line item
// is present. Line item contents are validated by the domain on handling.
func NewCreateOrderCommand(
	orderID, jobID, roleID kernel.UUID,
	orderType order.Type,
	supplierID *kernel.UUID,
	items []LineItemInput,
	estimatedDelivery *time.Time,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setJobID(jobID),
		cmd.setRoleID(roleID),
		cmd.setOrderType(orderType),
		cmd.setSupplierID(supplierID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.estimatedDelivery = estimatedDelivery
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// JobID returns the customer job the order belongs to.
func (c CreateOrderCommand) JobID() kernel.UUID { return c.jobID }

// RoleID returns the work category reference.
func (c CreateOrderCommand) RoleID() kernel.UUID { return c.roleID }

// OrderType returns how the order will be fulfilled.
func (c CreateOrderCommand) OrderType() order.Type { return c.orderType }

// SupplierID returns the supplier reference, nil for internal orders.
func (c CreateOrderCommand) SupplierID() *kernel.UUID { return c.supplierID }

// Items returns the caller-supplied line items in order.
func (c CreateOrderCommand) Items() []LineItemInput { return c.items }

// EstimatedDelivery returns the requested delivery date, nil to let the
// role's lead time seed it.
func (c CreateOrderCommand) EstimatedDelivery() *time.Time { return c.estimatedDelivery }

// Notes returns the free-text order notes.
func (c CreateOrderCommand) Notes() string { return c.notes }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateOrderCommand) setRoleID(roleID kernel.UUID) error {
	if err := roleID.Validate(); err != nil {
		return err
	}

	c.roleID = roleID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setSupplierID(supplierID *kernel.UUID) error {
	if supplierID == nil {
		return nil
	}
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *CreateOrderCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = make([]LineItemInput, len(items))
	copy(c.items, items)
	return nil
}
