// Package orderrepo provides data transfer objects and mapping functions for
// production order persistence. This package implements the repository
// pattern for the order aggregate, handling the conversion between the
// domain model and its relational representation across five tables.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Children are mapped through GORM associations with cascading deletes so
// that removing an order removes its line items, delivery history and issues.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobID             uuid.UUID  `gorm:"type:uuid;index"`
	JobTitle          string     `gorm:"index"`
	CustomerName      string     `gorm:"index"`
	RoleID            uuid.UUID  `gorm:"type:uuid"`
	RoleName          string
	OrderType         string     `gorm:"index"`
	SupplierID        *uuid.UUID `gorm:"type:uuid;index"`
	SupplierName      string
	EstimatedDelivery *time.Time `gorm:"index"`
	Notes             string
	CreatedAt         time.Time
	Status            string `gorm:"index"`
	Version           int64

	Items      []LineItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Deliveries []DeliveryEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Issues     []IssueDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one ordered line within an order. The composite
// key (order_id, idx) mirrors the positional identity of line items.
type LineItemDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Idx         int       `gorm:"primaryKey"`
	Quantity    int
	Unit        string
	GlassType   string
	Combination string
	Notes       string
	ReceivedQty int
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "order_items"
}

// DeliveryEventDTO represents one recorded arrival. The autoincrement key
// preserves insertion order for the append-only history.
type DeliveryEventDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Date    time.Time
	Note    string

	Lines []DeliveryLineDTO `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery events.
func (DeliveryEventDTO) TableName() string {
	return "delivery_events"
}

// DeliveryLineDTO represents one arrival line within a delivery event.
type DeliveryLineDTO struct {
	EventID     int64 `gorm:"primaryKey"`
	LineIndex   int   `gorm:"primaryKey"`
	ReceivedQty int
	IssueType   string
	IssueQty    int
	IssueNote   string
}

// TableName specifies the database table name for delivery event lines.
func (DeliveryLineDTO) TableName() string {
	return "delivery_event_lines"
}

// IssueDTO represents one issue in the order's arena. Seq preserves arena
// order across reloads; ParentIssueID carries the resolution chain link.
type IssueDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Seq           int
	LineIndex     int
	IssueType     string
	Quantity      int
	Note          string
	Status        string     `gorm:"index"`
	ParentIssueID *uuid.UUID `gorm:"type:uuid"`

	Resolutions []ResolutionDTO `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for issues.
func (IssueDTO) TableName() string {
	return "issues"
}

// ResolutionDTO represents one step in an issue's resolution history. The
// autoincrement key preserves the append order of the history.
type ResolutionDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	IssueID     uuid.UUID `gorm:"type:uuid;index"`
	Date        time.Time
	Resolution  string
	ResolvedQty int
	Note        string
}

// TableName specifies the database table name for issue resolutions.
func (ResolutionDTO) TableName() string {
	return "issue_resolutions"
}

// fromDomain converts an order domain aggregate to its database
// representation, including all children.
func fromDomain(aggregate *order.ProductionOrder) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var supplierID *uuid.UUID
	if id := aggregate.SupplierID(); id != nil {
		raw := id.Bytes()
		supplierID = &raw
	}

	dto := OrderDTO{
		ID:                orderID,
		JobID:             aggregate.JobID().Bytes(),
		JobTitle:          aggregate.JobTitle(),
		CustomerName:      aggregate.CustomerName(),
		RoleID:            aggregate.RoleID().Bytes(),
		RoleName:          aggregate.RoleName(),
		OrderType:         aggregate.OrderType().String(),
		SupplierID:        supplierID,
		SupplierName:      aggregate.SupplierName(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		Notes:             aggregate.Notes(),
		CreatedAt:         aggregate.CreatedAt(),
		Status:            aggregate.Status().String(),
		Version:           aggregate.Version(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, LineItemDTO{
			OrderID:     orderID,
			Idx:         item.Index(),
			Quantity:    item.Quantity(),
			Unit:        item.Unit(),
			GlassType:   item.GlassType(),
			Combination: item.Combination(),
			Notes:       item.Notes(),
			ReceivedQty: item.ReceivedQty(),
		})
	}

	for _, event := range aggregate.Deliveries() {
		eventDTO := DeliveryEventDTO{
			OrderID: orderID,
			Date:    event.Date(),
			Note:    event.Note(),
		}
		for _, line := range event.Lines() {
			eventDTO.Lines = append(eventDTO.Lines, DeliveryLineDTO{
				LineIndex:   line.LineIndex(),
				ReceivedQty: line.ReceivedQty(),
				IssueType:   issueTypeToString(line.IssueType()),
				IssueQty:    line.IssueQty(),
				IssueNote:   line.IssueNote(),
			})
		}
		dto.Deliveries = append(dto.Deliveries, eventDTO)
	}

	for seq, issue := range aggregate.Issues() {
		var parentID *uuid.UUID
		if id := issue.ParentIssueID(); id != nil {
			raw := id.Bytes()
			parentID = &raw
		}

		issueDTO := IssueDTO{
			ID:            issue.ID().Bytes(),
			OrderID:       orderID,
			Seq:           seq,
			LineIndex:     issue.LineIndex(),
			IssueType:     issue.IssueType().String(),
			Quantity:      issue.Quantity(),
			Note:          issue.Note(),
			Status:        issue.Status().String(),
			ParentIssueID: parentID,
		}
		for _, record := range issue.History() {
			issueDTO.Resolutions = append(issueDTO.Resolutions, ResolutionDTO{
				IssueID:     issueDTO.ID,
				Date:        record.Date(),
				Resolution:  record.Resolution().String(),
				ResolvedQty: record.ResolvedQty(),
				Note:        record.Note(),
			})
		}
		dto.Issues = append(dto.Issues, issueDTO)
	}

	return dto
}

// issueTypeToString maps an issue type to its storage name, with the empty
// string standing for "no issue" on clean delivery lines.
func issueTypeToString(t order.IssueType) string {
	if t == order.IssueTypeUnknown {
		return ""
	}
	return t.String()
}

// issueTypeFromString is the inverse of issueTypeToString.
func issueTypeFromString(s string) (order.IssueType, error) {
	if s == "" {
		return order.IssueTypeUnknown, nil
	}
	return order.IssueTypeFromString(s)
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including children using the domain
// restore constructors, so invariants hold after every reload.
func toDomain(dto OrderDTO) (*order.ProductionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}
	roleID, err := kernel.UUIDFromBytes(dto.RoleID[:])
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.SupplierID)[:])
		if sErr != nil {
			return nil, sErr
		}
		supplierID = &sID
	}

	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, iErr := order.RestoreLineItem(
			itemDTO.Idx, itemDTO.Quantity, itemDTO.Unit,
			itemDTO.GlassType, itemDTO.Combination, itemDTO.Notes,
			itemDTO.ReceivedQty,
		)
		if iErr != nil {
			return nil, iErr
		}
		items = append(items, item)
	}

	deliveries := make([]order.DeliveryEvent, 0, len(dto.Deliveries))
	for _, eventDTO := range dto.Deliveries {
		lines := make([]order.DeliveryLine, 0, len(eventDTO.Lines))
		for _, lineDTO := range eventDTO.Lines {
			issueType, tErr := issueTypeFromString(lineDTO.IssueType)
			if tErr != nil {
				return nil, tErr
			}
			line, lErr := order.NewDeliveryLine(
				lineDTO.LineIndex, lineDTO.ReceivedQty,
				issueType, lineDTO.IssueQty, lineDTO.IssueNote,
			)
			if lErr != nil {
				return nil, lErr
			}
			lines = append(lines, line)
		}
		event, eErr := order.NewDeliveryEvent(eventDTO.Date, eventDTO.Note, lines)
		if eErr != nil {
			return nil, eErr
		}
		deliveries = append(deliveries, event)
	}

	issues := make([]*order.Issue, 0, len(dto.Issues))
	for _, issueDTO := range dto.Issues {
		issue, iErr := issueToDomain(issueDTO)
		if iErr != nil {
			return nil, iErr
		}
		issues = append(issues, issue)
	}

	return order.RestoreProductionOrder(
		id, jobID, dto.JobTitle, dto.CustomerName,
		roleID, dto.RoleName,
		orderType, supplierID, dto.SupplierName,
		items, dto.EstimatedDelivery, dto.Notes, dto.CreatedAt,
		deliveries, issues, status, dto.Version,
	)
}

func issueToDomain(dto IssueDTO) (*order.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentIssueID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.ParentIssueID)[:])
		if pErr != nil {
			return nil, pErr
		}
		parentID = &pID
	}

	issueType, err := order.IssueTypeFromString(dto.IssueType)
	if err != nil {
		return nil, err
	}
	status, err := order.IssueStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.ResolutionRecord, 0, len(dto.Resolutions))
	for _, recordDTO := range dto.Resolutions {
		resolution, rErr := order.ResolutionFromString(recordDTO.Resolution)
		if rErr != nil {
			return nil, rErr
		}
		record, rErr := order.NewResolutionRecord(
			recordDTO.Date, resolution, recordDTO.ResolvedQty, recordDTO.Note)
		if rErr != nil {
			return nil, rErr
		}
		history = append(history, record)
	}

	return order.RestoreIssue(
		id, dto.LineIndex, issueType, dto.Quantity, dto.Note,
		status, history, parentID,
	)
}
