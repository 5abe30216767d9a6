package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrResolveIssueCommandIsNotConstructed = errors.New(
	"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
)

// ResolveIssueCommand represents a request to apply one resolution step to
// a pending issue on a production order. A replacement step may raise a new
// chained issue; the quantity bounds against the issue's outstanding amount
// are enforced by the aggregate, which sees current state.
type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	issueID      kernel.UUID
	date         time.Time
	resolution   order.Resolution
	resolvedQty  int
	note         string
	newIssueQty  int
	newIssueType order.IssueType
	newIssueNote string

	guard guard.ConstructorGuard
}

// NewResolveIssueCommand creates a command to resolve issue quantity.
// Validates the identifiers and the resolution kind; newIssueType is only
// validated when a new issue quantity is requested.
func NewResolveIssueCommand(
	orderID, issueID kernel.UUID,
	date time.Time,
	resolution order.Resolution,
	resolvedQty int,
	note string,
	newIssueQty int,
	newIssueType order.IssueType,
	newIssueNote string,
) (ResolveIssueCommand, error) {
	cmd := ResolveIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIssueID(issueID),
		cmd.setResolution(resolution),
	); err != nil {
		return ResolveIssueCommand{}, err
	}

	cmd.date = date
	cmd.resolvedQty = resolvedQty
	cmd.note = note
	cmd.newIssueQty = newIssueQty
	cmd.newIssueType = newIssueType
	cmd.newIssueNote = newIssueNote

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the issue belongs to.
func (c ResolveIssueCommand) OrderID() kernel.UUID { return c.orderID }

// IssueID returns the identifier of the issue being resolved.
func (c ResolveIssueCommand) IssueID() kernel.UUID { return c.issueID }

// Date returns when the resolution step happened.
func (c ResolveIssueCommand) Date() time.Time { return c.date }

// Resolution returns how the quantity is being settled.
func (c ResolveIssueCommand) Resolution() order.Resolution { return c.resolution }

// ResolvedQty returns how many units this step settles.
func (c ResolveIssueCommand) ResolvedQty() int { return c.resolvedQty }

// Note returns the free-text note for the resolution step.
func (c ResolveIssueCommand) Note() string { return c.note }

// NewIssueQty returns the quantity of the chained issue to raise, zero when
// the step raises none.
func (c ResolveIssueCommand) NewIssueQty() int { return c.newIssueQty }

// NewIssueType returns the classification of the chained issue.
func (c ResolveIssueCommand) NewIssueType() order.IssueType { return c.newIssueType }

// NewIssueNote returns the free-text note of the chained issue.
func (c ResolveIssueCommand) NewIssueNote() string { return c.newIssueNote }

func (c *ResolveIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveIssueCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}

	c.issueID = issueID
	return nil
}

func (c *ResolveIssueCommand) setResolution(resolution order.Resolution) error {
	if err := resolution.Validate(); err != nil {
		return err
	}

	c.resolution = resolution
	return nil
}
