package order

import (
	"fmt"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// Line item validation errors.
var (
	// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
	ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
		"LineItem must be created via NewLineItem constructor",
	)
	// ErrUnitIsRequired is returned when a line item has no measurement unit.
	ErrUnitIsRequired = errs.NewValueIsRequiredError("unit")
)

// LineItem is one ordered quantity of a product or material within a
// production order. Line items are owned exclusively by their parent order
// and are identified by their stable position within it.
//
// Invariants:
//   - quantity > 0, fixed at creation
//   - 0 <= receivedQty <= quantity at all times
//   - index matches the item's position in the parent order
type LineItem struct {
	// index is the stable position within the order, used as line identity.
	index int
	// quantity is the ordered amount, always positive.
	quantity int
	// unit is the measurement unit, e.g. "pcs", "m²", "set".
	unit string
	// glassType and combination describe the product on glass orders.
	glassType   string
	combination string
	// notes is the free-text descriptor used on non-glass orders.
	notes string
	// receivedQty is the cumulative quantity accepted into stock.
	receivedQty int

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item for a new order with nothing received yet.
//
// The index must be the item's position within the order, quantity must be
// positive, and unit must be non-empty. Glass descriptors and notes are
// free-form; which of them is meaningful depends on the order type.
func NewLineItem(index, quantity int, unit, glassType, combination, notes string) (*LineItem, error) {
	return RestoreLineItem(index, quantity, unit, glassType, combination, notes, 0)
}

// RestoreLineItem reconstructs a line item from persistent storage,
// including its accumulated received quantity.
func RestoreLineItem(
	index, quantity int,
	unit, glassType, combination, notes string,
	receivedQty int,
) (*LineItem, error) {
	if index < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"index", fmt.Errorf("%d is not a valid line index", index))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unit == "" {
		return nil, ErrUnitIsRequired
	}
	if receivedQty < 0 || receivedQty > quantity {
		return nil, errs.NewValueIsOutOfRangeError("receivedQty", receivedQty, 0, quantity)
	}

	return &LineItem{
		index:       index,
		quantity:    quantity,
		unit:        unit,
		glassType:   glassType,
		combination: combination,
		notes:       notes,
		receivedQty: receivedQty,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line item was created through its constructor.
func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// Index returns the item's stable position within its order.
func (li *LineItem) Index() int { return li.index }

// Quantity returns the ordered amount.
func (li *LineItem) Quantity() int { return li.quantity }

// Unit returns the measurement unit.
func (li *LineItem) Unit() string { return li.unit }

// GlassType returns the glass type code for glass orders, empty otherwise.
func (li *LineItem) GlassType() string { return li.glassType }

// Combination returns the glass combination for glass orders, empty otherwise.
func (li *LineItem) Combination() string { return li.combination }

// Notes returns the free-text descriptor for non-glass orders.
func (li *LineItem) Notes() string { return li.notes }

// ReceivedQty returns the cumulative quantity accepted into stock.
func (li *LineItem) ReceivedQty() int { return li.receivedQty }

// RemainingQty returns the quantity still to be delivered.
func (li *LineItem) RemainingQty() int { return li.quantity - li.receivedQty }

// IsFullyReceived reports whether the whole ordered quantity has arrived.
func (li *LineItem) IsFullyReceived() bool { return li.receivedQty == li.quantity }

// canReceive checks whether accepting delta more units would stay within
// the ordered quantity. Used by the aggregate to validate a whole delivery
// event before mutating anything.
func (li *LineItem) canReceive(delta int) error {
	if delta < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"receivedQty", fmt.Errorf("%d is not a valid delivery quantity", delta))
	}
	if li.receivedQty+delta > li.quantity {
		return errs.NewValueIsOutOfRangeError(
			"receivedQty", li.receivedQty+delta, 0, li.quantity)
	}
	return nil
}

// receive accepts delta more units into stock. The caller must have
// validated the delta with canReceive first.
func (li *LineItem) receive(delta int) {
	li.receivedQty += delta
}
