package order

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// Issue validation errors.
var (
	// ErrIssueIsNotConstructed is returned when using an improperly initialized Issue.
	ErrIssueIsNotConstructed = errs.NewValueIsRequiredError(
		"Issue must be created via NewIssue constructor",
	)
)

// IssueType classifies the defect reported on a delivered quantity.
type IssueType int

const (
	// IssueTypeUnknown represents an invalid or undefined issue type.
	IssueTypeUnknown IssueType = iota

	// IssueTypeBroken marks goods that arrived broken or damaged.
	IssueTypeBroken

	// IssueTypeMissing marks quantity that was short on arrival.
	IssueTypeMissing

	// IssueTypeWrong marks goods that do not match what was ordered.
	IssueTypeWrong

	// IssueTypeOther covers defects outside the categories above.
	IssueTypeOther
)

func getIssueTypeStrings() map[IssueType]string {
	return map[IssueType]string{
		IssueTypeUnknown: "unknown",
		IssueTypeBroken:  "broken",
		IssueTypeMissing: "missing",
		IssueTypeWrong:   "wrong",
		IssueTypeOther:   "other",
	}
}

func getValidIssueTypeStrings() map[IssueType]string {
	//nolint:exhaustive // IssueTypeUnknown is intentionally excluded as it's invalid
	return map[IssueType]string{
		IssueTypeBroken:  "broken",
		IssueTypeMissing: "missing",
		IssueTypeWrong:   "wrong",
		IssueTypeOther:   "other",
	}
}

// IssueTypeFromString parses an issue type name as it appears on the wire
// and in the database.
func IssueTypeFromString(s string) (IssueType, error) {
	for t, str := range getValidIssueTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return IssueTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"issueType", fmt.Errorf("%q is not a valid issue type", s))
}

// Validate checks if the IssueType value is one of the four valid types.
func (t IssueType) Validate() error {
	if _, ok := getValidIssueTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"issueType", fmt.Errorf("%d is not a valid issue type", t))
	}
	return nil
}

// String returns the wire name of the issue type.
func (t IssueType) String() string {
	if str, ok := getIssueTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Resolution classifies how an issue quantity was settled.
// Only a replacement can itself fail and spawn a chained issue; the other
// resolutions terminate their branch of the chain.
type Resolution int

const (
	// ResolutionUnknown represents an invalid or undefined resolution.
	ResolutionUnknown Resolution = iota

	// ResolutionReplaced means the defective quantity was replaced by the
	// producer or supplier. The replacement may itself turn out defective.
	ResolutionReplaced

	// ResolutionRefunded means the defective quantity was returned for a refund.
	ResolutionRefunded

	// ResolutionCredited means a credit note was issued for the quantity.
	ResolutionCredited

	// ResolutionCancelled means the defective quantity was written off.
	ResolutionCancelled
)

func getResolutionStrings() map[Resolution]string {
	return map[Resolution]string{
		ResolutionUnknown:   "unknown",
		ResolutionReplaced:  "replaced",
		ResolutionRefunded:  "refunded",
		ResolutionCredited:  "credited",
		ResolutionCancelled: "cancelled",
	}
}

func getValidResolutionStrings() map[Resolution]string {
	//nolint:exhaustive // ResolutionUnknown is intentionally excluded as it's invalid
	return map[Resolution]string{
		ResolutionReplaced:  "replaced",
		ResolutionRefunded:  "refunded",
		ResolutionCredited:  "credited",
		ResolutionCancelled: "cancelled",
	}
}

// ResolutionFromString parses a resolution name as it appears on the wire
// and in the database.
func ResolutionFromString(s string) (Resolution, error) {
	for r, str := range getValidResolutionStrings() {
		if str == s {
			return r, nil
		}
	}
	return ResolutionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"resolution", fmt.Errorf("%q is not a valid resolution", s))
}

// Validate checks if the Resolution value is one of the four valid resolutions.
func (r Resolution) Validate() error {
	if _, ok := getValidResolutionStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"resolution", fmt.Errorf("%d is not a valid resolution", r))
	}
	return nil
}

// CanSpawnIssue reports whether this resolution may produce a chained
// re-issue. Only replacements can fail again.
func (r Resolution) CanSpawnIssue() bool {
	return r == ResolutionReplaced
}

// String returns the wire name of the resolution.
func (r Resolution) String() string {
	if str, ok := getResolutionStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// ResolutionRecord is one append-only entry in an issue's resolution
// history: on a given date, resolvedQty units were settled in a given way.
type ResolutionRecord struct {
	date        time.Time
	resolution  Resolution
	resolvedQty int
	note        string
}

// NewResolutionRecord creates a history entry. The quantity bounds against
// the issue's outstanding quantity are enforced by the aggregate, not here.
func NewResolutionRecord(date time.Time, resolution Resolution, resolvedQty int, note string) (ResolutionRecord, error) {
	if err := resolution.Validate(); err != nil {
		return ResolutionRecord{}, err
	}
	if resolvedQty < 0 {
		return ResolutionRecord{}, errs.NewValueIsInvalidErrorWithCause(
			"resolvedQty", fmt.Errorf("%d is not a valid resolved quantity", resolvedQty))
	}

	return ResolutionRecord{
		date:        date,
		resolution:  resolution,
		resolvedQty: resolvedQty,
		note:        note,
	}, nil
}

// Date returns when this resolution step happened.
func (r ResolutionRecord) Date() time.Time { return r.date }

// Resolution returns how the quantity was settled.
func (r ResolutionRecord) Resolution() Resolution { return r.resolution }

// ResolvedQty returns how many units this step settled.
func (r ResolutionRecord) ResolvedQty() int { return r.resolvedQty }

// Note returns the free-text note attached to this step.
func (r ResolutionRecord) Note() string { return r.note }

// IssueStatus is the lifecycle state of an issue: pending until its full
// quantity has been settled across its resolution history.
type IssueStatus int

const (
	// IssueStatusUnknown represents an invalid or undefined issue status.
	IssueStatusUnknown IssueStatus = iota

	// IssueStatusPending means part of the issue quantity is still unsettled.
	IssueStatusPending

	// IssueStatusResolved means the full issue quantity has been settled.
	IssueStatusResolved
)

// IssueStatusFromString parses an issue status name as it appears in the
// database.
func IssueStatusFromString(s string) (IssueStatus, error) {
	switch s {
	case "pending":
		return IssueStatusPending, nil
	case "resolved":
		return IssueStatusResolved, nil
	default:
		return IssueStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"issueStatus", fmt.Errorf("%q is not a valid issue status", s))
	}
}

// String returns the wire name of the issue status.
func (s IssueStatus) String() string {
	switch s {
	case IssueStatusPending:
		return "pending"
	case IssueStatusResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Issue is a recorded defect against a quantity on one line item of a
// production order. Issues live in a flat arena on the order; a failed
// replacement spawns a new Issue whose parentIssueID points back at the
// one it replaces, forming a resolution chain of unbounded depth.
type Issue struct {
	id        kernel.UUID
	lineIndex int
	issueType IssueType
	quantity  int
	note      string
	status    IssueStatus
	// history is the append-only sequence of resolution steps.
	history []ResolutionRecord
	// parentIssueID links a re-issue back to the failed replacement that
	// spawned it; nil for issues reported directly on a delivery.
	parentIssueID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssue creates a pending issue with an empty resolution history.
// parentIssueID is nil for delivery-reported defects and set for chained
// re-issues spawned by a failed replacement.
func NewIssue(
	id kernel.UUID,
	lineIndex int,
	issueType IssueType,
	quantity int,
	note string,
	parentIssueID *kernel.UUID,
) (*Issue, error) {
	return RestoreIssue(id, lineIndex, issueType, quantity, note, IssueStatusPending, nil, parentIssueID)
}

// RestoreIssue reconstructs an issue from persistent storage, including its
// resolution history and chain link.
func RestoreIssue(
	id kernel.UUID,
	lineIndex int,
	issueType IssueType,
	quantity int,
	note string,
	status IssueStatus,
	history []ResolutionRecord,
	parentIssueID *kernel.UUID,
) (*Issue, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if lineIndex < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"lineIndex", fmt.Errorf("%d is not a valid line index", lineIndex))
	}
	if err := issueType.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if status != IssueStatusPending && status != IssueStatusResolved {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"issueStatus", fmt.Errorf("%d is not a valid issue status", status))
	}
	if parentIssueID != nil {
		if err := parentIssueID.Validate(); err != nil {
			return nil, err
		}
	}

	issue := &Issue{
		id:            id,
		lineIndex:     lineIndex,
		issueType:     issueType,
		quantity:      quantity,
		note:          note,
		status:        status,
		parentIssueID: parentIssueID,
		guard:         guard.NewConstructorGuard(),
	}
	issue.history = make([]ResolutionRecord, len(history))
	copy(issue.history, history)

	return issue, nil
}

// Validate ensures the issue was created through its constructor.
func (i *Issue) Validate() error {
	if i == nil {
		return ErrIssueIsNotConstructed
	}
	return i.guard.Validate(ErrIssueIsNotConstructed)
}

// ID returns the issue's unique identifier.
func (i *Issue) ID() kernel.UUID { return i.id }

// LineIndex returns the index of the line item the defect was reported on.
func (i *Issue) LineIndex() int { return i.lineIndex }

// IssueType returns the defect classification.
func (i *Issue) IssueType() IssueType { return i.issueType }

// Quantity returns the defective quantity this issue covers.
func (i *Issue) Quantity() int { return i.quantity }

// Note returns the free-text note recorded with the defect.
func (i *Issue) Note() string { return i.note }

// Status returns whether the issue is still pending or fully resolved.
func (i *Issue) Status() IssueStatus { return i.status }

// IsPending reports whether part of the issue quantity is still unsettled.
func (i *Issue) IsPending() bool { return i.status == IssueStatusPending }

// ParentIssueID returns the ID of the issue whose failed replacement
// spawned this one, or nil for delivery-reported defects.
func (i *Issue) ParentIssueID() *kernel.UUID { return i.parentIssueID }

// History returns a copy of the append-only resolution history.
func (i *Issue) History() []ResolutionRecord {
	out := make([]ResolutionRecord, len(i.history))
	copy(out, i.history)
	return out
}

// ResolvedQty returns the cumulative quantity settled across the history.
func (i *Issue) ResolvedQty() int {
	total := 0
	for _, rec := range i.history {
		total += rec.resolvedQty
	}
	return total
}

// OutstandingQty returns the quantity still unsettled.
func (i *Issue) OutstandingQty() int {
	return i.quantity - i.ResolvedQty()
}

// applyResolution appends a resolution step and flips the issue to resolved
// once the cumulative settled quantity covers the full issue quantity.
// The record's quantity must already have been validated against
// OutstandingQty by the aggregate.
func (i *Issue) applyResolution(record ResolutionRecord) {
	i.history = append(i.history, record)
	if i.ResolvedQty() >= i.quantity {
		i.status = IssueStatusResolved
	}
}
