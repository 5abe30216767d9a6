package order

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// Aggregate validation errors.
var (
	// ErrProductionOrderIsNotConstructed is returned when using an improperly
	// initialized ProductionOrder.
	ErrProductionOrderIsNotConstructed = errs.NewValueIsRequiredError(
		"ProductionOrder must be created via NewProductionOrder constructor",
	)

	// ErrLineItemsAreRequired is returned when creating an order without line items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrSupplierIsRequired is returned when an external or glass order has no supplier.
	ErrSupplierIsRequired = errs.NewValueIsRequiredError("supplierId")

	// ErrOrderHasDeliveries is returned when deleting an order whose delivery
	// history is not empty.
	ErrOrderHasDeliveries = errs.NewConflictError(
		"order", "order has recorded deliveries and cannot be deleted")
)

// ProductionOrder is the aggregate root for one production or procurement
// order placed against a customer job. It owns its line items, its
// append-only delivery history and its issue arena, and is the single
// consistency boundary for all fulfillment state.
//
// Status is derived, never assigned: every mutation ends by recomputing it
// from line-item and issue state. The version counter increments on every
// mutation and backs optimistic concurrency at the repository.
type ProductionOrder struct {
	id kernel.UUID

	// jobID references the customer job this order belongs to. jobTitle and
	// customerName are captured from the job at creation so that list search
	// works without a join against master data.
	jobID        kernel.UUID
	jobTitle     string
	customerName string

	// roleID/roleName classify the work (e.g. a production trade). The role
	// also seeds estimatedDelivery when the caller leaves it empty.
	roleID   kernel.UUID
	roleName string

	orderType Type

	// supplierID/supplierName are set iff the order type requires a supplier.
	supplierID   *kernel.UUID
	supplierName string

	items []*LineItem

	estimatedDelivery *time.Time
	notes             string
	createdAt         time.Time

	// deliveries is the append-only audit history of arrivals.
	deliveries []DeliveryEvent

	// issues holds every issue ever raised on this order, flat; chains are
	// expressed through Issue.parentIssueID.
	issues []*Issue

	status  Status
	version int64

	guard guard.ConstructorGuard
}

// NewProductionOrder creates a pending order with nothing delivered yet.
//
// Items must be non-empty; their indices are reassigned to their positions.
// External and glass orders must carry a supplier; internal orders must not.
// estimatedDelivery may be nil.
func NewProductionOrder(
	id, jobID kernel.UUID,
	jobTitle, customerName string,
	roleID kernel.UUID,
	roleName string,
	orderType Type,
	supplierID *kernel.UUID,
	supplierName string,
	items []*LineItem,
	estimatedDelivery *time.Time,
	notes string,
	createdAt time.Time,
) (*ProductionOrder, error) {
	return RestoreProductionOrder(
		id, jobID, jobTitle, customerName, roleID, roleName,
		orderType, supplierID, supplierName, items,
		estimatedDelivery, notes, createdAt,
		nil, nil, StatusPending, 1,
	)
}

// RestoreProductionOrder reconstructs an order from persistent storage with
// its full delivery and issue history, derived status and version counter.
func RestoreProductionOrder(
	id, jobID kernel.UUID,
	jobTitle, customerName string,
	roleID kernel.UUID,
	roleName string,
	orderType Type,
	supplierID *kernel.UUID,
	supplierName string,
	items []*LineItem,
	estimatedDelivery *time.Time,
	notes string,
	createdAt time.Time,
	deliveries []DeliveryEvent,
	issues []*Issue,
	status Status,
	version int64,
) (*ProductionOrder, error) {
	err := errors.Join(
		id.Validate(),
		jobID.Validate(),
		roleID.Validate(),
		orderType.Validate(),
		status.Validate(),
	)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrLineItemsAreRequired
	}
	for pos, item := range items {
		if vErr := item.Validate(); vErr != nil {
			return nil, vErr
		}
		if item.Index() != pos {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("line item at position %d carries index %d", pos, item.Index()))
		}
	}

	if orderType.RequiresSupplier() {
		if supplierID == nil {
			return nil, ErrSupplierIsRequired
		}
		if vErr := supplierID.Validate(); vErr != nil {
			return nil, vErr
		}
	} else if supplierID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"supplierId", fmt.Errorf("%s orders do not take a supplier", orderType))
	}

	for _, issue := range issues {
		if vErr := issue.Validate(); vErr != nil {
			return nil, vErr
		}
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}

	o := &ProductionOrder{
		id:                id,
		jobID:             jobID,
		jobTitle:          jobTitle,
		customerName:      customerName,
		roleID:            roleID,
		roleName:          roleName,
		orderType:         orderType,
		supplierID:        supplierID,
		supplierName:      supplierName,
		estimatedDelivery: estimatedDelivery,
		notes:             notes,
		createdAt:         createdAt,
		status:            status,
		version:           version,
		guard:             guard.NewConstructorGuard(),
	}
	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	o.deliveries = make([]DeliveryEvent, len(deliveries))
	copy(o.deliveries, deliveries)
	o.issues = make([]*Issue, len(issues))
	copy(o.issues, issues)

	return o, nil
}

// Validate ensures the order was created through its constructor.
func (o *ProductionOrder) Validate() error {
	if o == nil {
		return ErrProductionOrderIsNotConstructed
	}
	return o.guard.Validate(ErrProductionOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *ProductionOrder) ID() kernel.UUID { return o.id }

// JobID returns the customer job this order belongs to.
func (o *ProductionOrder) JobID() kernel.UUID { return o.jobID }

// JobTitle returns the job title captured at creation.
func (o *ProductionOrder) JobTitle() string { return o.jobTitle }

// CustomerName returns the customer name captured at creation.
func (o *ProductionOrder) CustomerName() string { return o.customerName }

// RoleID returns the work category reference.
func (o *ProductionOrder) RoleID() kernel.UUID { return o.roleID }

// RoleName returns the work category name captured at creation.
func (o *ProductionOrder) RoleName() string { return o.roleName }

// OrderType returns how the order is fulfilled.
func (o *ProductionOrder) OrderType() Type { return o.orderType }

// SupplierID returns the supplier reference, nil for internal orders.
func (o *ProductionOrder) SupplierID() *kernel.UUID { return o.supplierID }

// SupplierName returns the supplier name captured at creation.
func (o *ProductionOrder) SupplierName() string { return o.supplierName }

// Items returns a copy of the order's line items in positional order.
func (o *ProductionOrder) Items() []*LineItem {
	out := make([]*LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// EstimatedDelivery returns the expected delivery date, nil when unknown.
func (o *ProductionOrder) EstimatedDelivery() *time.Time { return o.estimatedDelivery }

// Notes returns the free-text order notes.
func (o *ProductionOrder) Notes() string { return o.notes }

// CreatedAt returns when the order was placed.
func (o *ProductionOrder) CreatedAt() time.Time { return o.createdAt }

// Deliveries returns a copy of the append-only delivery history.
func (o *ProductionOrder) Deliveries() []DeliveryEvent {
	out := make([]DeliveryEvent, len(o.deliveries))
	copy(out, o.deliveries)
	return out
}

// Issues returns a copy of the flat issue arena.
func (o *ProductionOrder) Issues() []*Issue {
	out := make([]*Issue, len(o.issues))
	copy(out, o.issues)
	return out
}

// Status returns the derived fulfillment status.
func (o *ProductionOrder) Status() Status { return o.status }

// Version returns the optimistic-concurrency counter.
func (o *ProductionOrder) Version() int64 { return o.version }

// HasDeliveries reports whether any arrival has ever been recorded. Orders
// with delivery history cannot be deleted.
func (o *ProductionOrder) HasDeliveries() bool { return len(o.deliveries) > 0 }

// HasPendingIssues reports whether any issue in any resolution chain is
// still unsettled.
func (o *ProductionOrder) HasPendingIssues() bool {
	for _, issue := range o.issues {
		if issue.IsPending() {
			return true
		}
	}
	return false
}

// IssueByID finds an issue in the arena, returning an object-not-found
// error when no issue carries the ID.
func (o *ProductionOrder) IssueByID(id kernel.UUID) (*Issue, error) {
	for _, issue := range o.issues {
		if issue.ID().IsEqual(id) {
			return issue, nil
		}
	}
	return nil, errs.NewObjectNotFoundErrorWithCause("issueId", id, nil)
}

// IsOverdue reports whether the estimated delivery date has passed without
// the order completing. Comparison is date-only: an order due today is not
// overdue.
func (o *ProductionOrder) IsOverdue(now time.Time) bool {
	if o.estimatedDelivery == nil || o.status == StatusCompleted {
		return false
	}
	return dateOnly(*o.estimatedDelivery).Before(dateOnly(now))
}

// IsDueToday reports whether the order is due on the calendar day of now
// and not yet completed.
func (o *ProductionOrder) IsDueToday(now time.Time) bool {
	if o.estimatedDelivery == nil || o.status == StatusCompleted {
		return false
	}
	return dateOnly(*o.estimatedDelivery).Equal(dateOnly(now))
}

// EnsureDeletable returns a conflict error when the order has delivery
// history. The status alone is not a safe guard: a problem-only delivery
// leaves the order pending but must still block deletion.
func (o *ProductionOrder) EnsureDeletable() error {
	if o.HasDeliveries() {
		return ErrOrderHasDeliveries
	}
	return nil
}

// RecordDelivery applies one arrival to the order. The whole event is
// validated against current line state before anything mutates, so a
// rejected event leaves the order untouched.
//
// For every line that reports a problem, exactly one pending Issue is added
// to the arena. The event is appended to the audit history, the version is
// bumped and the status recomputed. Returns the spawned issues, if any.
//
// Recording is not idempotent: submitting the same event twice accumulates
// quantities twice.
func (o *ProductionOrder) RecordDelivery(event DeliveryEvent) ([]*Issue, error) {
	for _, line := range event.Lines() {
		item, err := o.itemByIndex(line.LineIndex())
		if err != nil {
			return nil, err
		}
		if err := item.canReceive(line.ReceivedQty()); err != nil {
			return nil, err
		}
	}

	var spawned []*Issue
	for _, line := range event.Lines() {
		item, _ := o.itemByIndex(line.LineIndex())
		item.receive(line.ReceivedQty())

		if line.HasIssue() {
			issue, err := NewIssue(
				kernel.NewUUID(), line.LineIndex(),
				line.IssueType(), line.IssueQty(), line.IssueNote(), nil,
			)
			if err != nil {
				return nil, err
			}
			o.issues = append(o.issues, issue)
			spawned = append(spawned, issue)
		}
	}

	o.deliveries = append(o.deliveries, event)
	o.touch()

	return spawned, nil
}

// ResolveIssue applies one resolution step to a pending issue.
//
// resolvedQty may settle the issue partially; it must not exceed the
// issue's outstanding quantity. A step must have an effect: resolvedQty and
// newIssueQty cannot both be zero. newIssueQty > 0 is only legal when the
// resolution is a replacement, and then newIssueType must be valid: a
// pending child issue is spawned on the same line with parentIssueID set,
// continuing the chain. Returns the spawned child, or nil.
func (o *ProductionOrder) ResolveIssue(
	issueID kernel.UUID,
	date time.Time,
	resolution Resolution,
	resolvedQty int,
	note string,
	newIssueQty int,
	newIssueType IssueType,
	newIssueNote string,
) (*Issue, error) {
	issue, err := o.IssueByID(issueID)
	if err != nil {
		return nil, err
	}
	if !issue.IsPending() {
		return nil, errs.NewConflictError("issueId", "issue is already resolved")
	}

	record, err := NewResolutionRecord(date, resolution, resolvedQty, note)
	if err != nil {
		return nil, err
	}
	if resolvedQty > issue.OutstandingQty() {
		return nil, errs.NewValueIsOutOfRangeError("resolvedQty", resolvedQty, 0, issue.OutstandingQty())
	}
	if resolvedQty == 0 && newIssueQty == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"resolvedQty", errors.New("resolution step must settle quantity or raise a new issue"))
	}
	if newIssueQty < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"newIssueQty", fmt.Errorf("%d is not a valid issue quantity", newIssueQty))
	}
	if newIssueQty > 0 && !resolution.CanSpawnIssue() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"newIssueQty", fmt.Errorf("a %s resolution cannot raise a new issue", resolution))
	}

	var child *Issue
	if newIssueQty > 0 {
		parentID := issue.ID()
		child, err = NewIssue(
			kernel.NewUUID(), issue.LineIndex(),
			newIssueType, newIssueQty, newIssueNote, &parentID,
		)
		if err != nil {
			return nil, err
		}
	}

	issue.applyResolution(record)
	if child != nil {
		o.issues = append(o.issues, child)
	}
	o.touch()

	return child, nil
}

// itemByIndex resolves a delivery line against the order's line items.
func (o *ProductionOrder) itemByIndex(index int) (*LineItem, error) {
	if index < 0 || index >= len(o.items) {
		return nil, errs.NewObjectNotFoundErrorWithCause("lineIndex", index, nil)
	}
	return o.items[index], nil
}

// touch bumps the version and recomputes the derived status. Every mutation
// path ends here.
func (o *ProductionOrder) touch() {
	o.version++
	o.recomputeStatus()
}

// recomputeStatus derives the fulfillment status from line-item and issue
// state:
//
//	completed — every line fully received and no pending issue anywhere
//	pending   — nothing received on any line
//	partial   — everything else
func (o *ProductionOrder) recomputeStatus() {
	allFull := true
	anyReceived := false
	for _, item := range o.items {
		if !item.IsFullyReceived() {
			allFull = false
		}
		if item.ReceivedQty() > 0 {
			anyReceived = true
		}
	}

	switch {
	case allFull && !o.HasPendingIssues():
		o.status = StatusCompleted
	case !anyReceived:
		o.status = StatusPending
	default:
		o.status = StatusPartial
	}
}

// dateOnly truncates a timestamp to its calendar day in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
