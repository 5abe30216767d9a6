package order

import (
	"fmt"
	"time"

	"production/internal/pkg/errs"
)

// Delivery validation errors.
var (
	// ErrDeliveryHasNoLines is returned when a delivery event carries no lines.
	ErrDeliveryHasNoLines = errs.NewValueIsRequiredError("delivery lines")

	// ErrDeliveryHasNoEffect is returned when no line in a delivery event
	// reports either received quantity or a problem.
	ErrDeliveryHasNoEffect = errs.NewValueIsInvalidError("delivery event")
)

// DeliveryLine describes what arrived for one line item in a delivery
// event: a received quantity, an optional problem, or both.
type DeliveryLine struct {
	lineIndex   int
	receivedQty int
	// issueType and issueQty describe the problem reported alongside the
	// arrival, if any. issueType is IssueTypeUnknown when nothing was wrong.
	issueType IssueType
	issueQty  int
	issueNote string
}

// NewDeliveryLine creates a delivery line. Either receivedQty or a problem
// quantity (or both) must be positive; a line that reports nothing is
// rejected at the event level. A problem requires a valid issue type and
// positive quantity together.
func NewDeliveryLine(lineIndex, receivedQty int, issueType IssueType, issueQty int, issueNote string) (DeliveryLine, error) {
	if lineIndex < 0 {
		return DeliveryLine{}, errs.NewValueIsInvalidErrorWithCause(
			"lineIndex", fmt.Errorf("%d is not a valid line index", lineIndex))
	}
	if receivedQty < 0 {
		return DeliveryLine{}, errs.NewValueIsInvalidErrorWithCause(
			"receivedQty", fmt.Errorf("%d is not a valid delivery quantity", receivedQty))
	}
	hasIssue := issueType != IssueTypeUnknown || issueQty != 0 || issueNote != ""
	if hasIssue {
		if err := issueType.Validate(); err != nil {
			return DeliveryLine{}, err
		}
		if issueQty <= 0 {
			return DeliveryLine{}, errs.NewValueIsInvalidErrorWithCause(
				"issueQty", fmt.Errorf("%d is not greater than 0", issueQty))
		}
	}

	return DeliveryLine{
		lineIndex:   lineIndex,
		receivedQty: receivedQty,
		issueType:   issueType,
		issueQty:    issueQty,
		issueNote:   issueNote,
	}, nil
}

// LineIndex returns the index of the order line item this arrival is for.
func (l DeliveryLine) LineIndex() int { return l.lineIndex }

// ReceivedQty returns the quantity accepted into stock by this arrival.
func (l DeliveryLine) ReceivedQty() int { return l.receivedQty }

// HasIssue reports whether a problem was recorded alongside this arrival.
func (l DeliveryLine) HasIssue() bool { return l.issueType != IssueTypeUnknown }

// IssueType returns the problem classification, or IssueTypeUnknown when
// the arrival was clean.
func (l DeliveryLine) IssueType() IssueType { return l.issueType }

// IssueQty returns the problem quantity, zero when the arrival was clean.
func (l DeliveryLine) IssueQty() int { return l.issueQty }

// IssueNote returns the free-text note recorded with the problem.
func (l DeliveryLine) IssueNote() string { return l.issueNote }

// DeliveryEvent is one recorded arrival against a production order: on a
// given date, quantities arrived (and problems were observed) for one or
// more line items. Events are append-only; corrections are made by
// recording issues, never by editing history.
type DeliveryEvent struct {
	date  time.Time
	note  string
	lines []DeliveryLine
}

// NewDeliveryEvent creates a delivery event from its lines. The event must
// carry at least one line, no line index may repeat, and at least one line
// must report an effect (received quantity or a problem) so that empty
// events never enter the history.
func NewDeliveryEvent(date time.Time, note string, lines []DeliveryLine) (DeliveryEvent, error) {
	if len(lines) == 0 {
		return DeliveryEvent{}, ErrDeliveryHasNoLines
	}

	seen := make(map[int]bool, len(lines))
	hasEffect := false
	for _, line := range lines {
		if seen[line.lineIndex] {
			return DeliveryEvent{}, errs.NewValueIsInvalidErrorWithCause(
				"lineIndex", fmt.Errorf("line index %d appears more than once", line.lineIndex))
		}
		seen[line.lineIndex] = true
		if line.receivedQty > 0 || line.HasIssue() {
			hasEffect = true
		}
	}
	if !hasEffect {
		return DeliveryEvent{}, ErrDeliveryHasNoEffect
	}

	event := DeliveryEvent{date: date, note: note}
	event.lines = make([]DeliveryLine, len(lines))
	copy(event.lines, lines)

	return event, nil
}

// Date returns when the arrival was recorded.
func (e DeliveryEvent) Date() time.Time { return e.date }

// Note returns the free-text note attached to the whole arrival.
func (e DeliveryEvent) Note() string { return e.note }

// Lines returns a copy of the per-line arrivals in this event.
func (e DeliveryEvent) Lines() []DeliveryLine {
	out := make([]DeliveryLine, len(e.lines))
	copy(out, e.lines)
	return out
}
