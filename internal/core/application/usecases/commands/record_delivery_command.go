package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// DeliveryLineInput carries the caller-supplied fields of one arrival line:
// the target line index, the received quantity, and an optional problem.
type DeliveryLineInput struct {
	LineIndex   int
	ReceivedQty int
	IssueType   order.IssueType
	IssueQty    int
	IssueNote   string
}

// RecordDeliveryCommand represents a request to record one arrival against
// a production order. The delivery event is built and validated in the
// constructor, so a structurally invalid event never reaches a handler.
//
// Recording is not idempotent: retrying a timed-out call re-applies the
// quantities. Callers must inspect order state before retrying.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	event   order.DeliveryEvent

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a command to record an arrival.
// Validates the order ID and builds the delivery event: every line must be
// well-formed, no line index may repeat, and at least one line must report
// an effect.
func NewRecordDeliveryCommand(
	orderID kernel.UUID,
	date time.Time,
	note string,
	lines []DeliveryLineInput,
) (RecordDeliveryCommand, error) {
	cmd := RecordDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RecordDeliveryCommand{}, err
	}
	if err := cmd.setEvent(date, note, lines); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order receiving the arrival.
func (c RecordDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// Event returns the validated delivery event to apply.
func (c RecordDeliveryCommand) Event() order.DeliveryEvent { return c.event }

func (c *RecordDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDeliveryCommand) setEvent(date time.Time, note string, lines []DeliveryLineInput) error {
	eventLines := make([]order.DeliveryLine, 0, len(lines))
	for _, input := range lines {
		line, err := order.NewDeliveryLine(
			input.LineIndex, input.ReceivedQty,
			input.IssueType, input.IssueQty, input.IssueNote,
		)
		if err != nil {
			return err
		}
		eventLines = append(eventLines, line)
	}

	event, err := order.NewDeliveryEvent(date, note, eventLines)
	if err != nil {
		return err
	}

	c.event = event
	return nil
}
