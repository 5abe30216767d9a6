package queries

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Row structs mirror the persistence tables for the read side. Queries scan
// into these and assemble flat responses without touching the domain model.
type (
	orderRow struct {
		ID                uuid.UUID
		JobID             uuid.UUID
		JobTitle          string
		CustomerName      string
		RoleID            uuid.UUID
		RoleName          string
		OrderType         string
		SupplierID        *uuid.UUID
		SupplierName      string
		Status            string
		EstimatedDelivery *time.Time
		Notes             string
		CreatedAt         time.Time
		Version           int64
	}

	lineItemRow struct {
		OrderID     uuid.UUID
		Idx         int
		Quantity    int
		Unit        string
		GlassType   string
		Combination string
		Notes       string
		ReceivedQty int
	}

	deliveryEventRow struct {
		ID      int64
		OrderID uuid.UUID
		Date    time.Time
		Note    string
	}

	deliveryLineRow struct {
		EventID     int64
		LineIndex   int
		ReceivedQty int
		IssueType   string
		IssueQty    int
		IssueNote   string
	}

	issueRow struct {
		ID            uuid.UUID
		OrderID       uuid.UUID
		LineIndex     int
		IssueType     string
		Quantity      int
		Note          string
		Status        string
		ParentIssueID *uuid.UUID
	}

	resolutionRow struct {
		ID          int64
		IssueID     uuid.UUID
		Date        time.Time
		Resolution  string
		ResolvedQty int
		Note        string
	}
)

// GetOrderQueryHandler retrieves one production order read model from the
// database, hydrating line items, delivery events and issue chains.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no
// order carries the requested ID.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).Table("orders").
		Where("id = ?", query.OrderID().Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	resp, err := assembleOrderResponse(row)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.loadItems(ctx, row.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Deliveries, err = h.loadDeliveries(ctx, row.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Issues, err = h.loadIssues(ctx, row.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID uuid.UUID) ([]LineItemResponse, error) {
	var rows []lineItemRow
	err := h.db.WithContext(ctx).Table("order_items").
		Where("order_id = ?", orderID).
		Order("idx").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]LineItemResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, LineItemResponse{
			Index:       r.Idx,
			Quantity:    r.Quantity,
			Unit:        r.Unit,
			GlassType:   r.GlassType,
			Combination: r.Combination,
			Notes:       r.Notes,
			ReceivedQty: r.ReceivedQty,
		})
	}
	return items, nil
}

func (h GetOrderQueryHandler) loadDeliveries(ctx context.Context, orderID uuid.UUID) ([]DeliveryEventResponse, error) {
	var events []deliveryEventRow
	err := h.db.WithContext(ctx).Table("delivery_events").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []DeliveryEventResponse{}, nil
	}

	eventIDs := make([]int64, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	var lines []deliveryLineRow
	err = h.db.WithContext(ctx).Table("delivery_event_lines").
		Where("event_id IN ?", eventIDs).
		Order("event_id, line_index").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	linesByEvent := make(map[int64][]DeliveryLineResponse, len(events))
	for _, l := range lines {
		linesByEvent[l.EventID] = append(linesByEvent[l.EventID], DeliveryLineResponse{
			LineIndex:   l.LineIndex,
			ReceivedQty: l.ReceivedQty,
			IssueType:   l.IssueType,
			IssueQty:    l.IssueQty,
			IssueNote:   l.IssueNote,
		})
	}

	deliveries := make([]DeliveryEventResponse, 0, len(events))
	for _, e := range events {
		deliveries = append(deliveries, DeliveryEventResponse{
			Date:  e.Date,
			Note:  e.Note,
			Lines: linesByEvent[e.ID],
		})
	}
	return deliveries, nil
}

func (h GetOrderQueryHandler) loadIssues(ctx context.Context, orderID uuid.UUID) ([]IssueResponse, error) {
	var rows []issueRow
	err := h.db.WithContext(ctx).Table("issues").
		Where("order_id = ?", orderID).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []IssueResponse{}, nil
	}

	issueIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		issueIDs = append(issueIDs, r.ID)
	}

	var resolutions []resolutionRow
	err = h.db.WithContext(ctx).Table("issue_resolutions").
		Where("issue_id IN ?", issueIDs).
		Order("id").
		Find(&resolutions).Error
	if err != nil {
		return nil, err
	}

	historyByIssue := make(map[uuid.UUID][]ResolutionRecordResponse, len(rows))
	for _, r := range resolutions {
		historyByIssue[r.IssueID] = append(historyByIssue[r.IssueID], ResolutionRecordResponse{
			Date:        r.Date,
			Resolution:  r.Resolution,
			ResolvedQty: r.ResolvedQty,
			Note:        r.Note,
		})
	}

	issues := make([]IssueResponse, 0, len(rows))
	for _, r := range rows {
		id, idErr := kernel.UUIDFromBytes(r.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		var parentID *kernel.UUID
		if r.ParentIssueID != nil {
			pID, pErr := kernel.UUIDFromBytes((*r.ParentIssueID)[:])
			if pErr != nil {
				return nil, pErr
			}
			parentID = &pID
		}

		history := historyByIssue[r.ID]
		if history == nil {
			history = []ResolutionRecordResponse{}
		}

		issues = append(issues, IssueResponse{
			ID:            id,
			LineIndex:     r.LineIndex,
			IssueType:     r.IssueType,
			Quantity:      r.Quantity,
			Note:          r.Note,
			Status:        r.Status,
			ParentIssueID: parentID,
			History:       history,
		})
	}
	return issues, nil
}

func assembleOrderResponse(row orderRow) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	jobID, err := kernel.UUIDFromBytes(row.JobID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	roleID, err := kernel.UUIDFromBytes(row.RoleID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var supplierID *kernel.UUID
	if row.SupplierID != nil {
		sID, sErr := kernel.UUIDFromBytes((*row.SupplierID)[:])
		if sErr != nil {
			return GetOrderQueryResponse{}, sErr
		}
		supplierID = &sID
	}

	return GetOrderQueryResponse{
		ID:                id,
		JobID:             jobID,
		JobTitle:          row.JobTitle,
		CustomerName:      row.CustomerName,
		RoleID:            roleID,
		RoleName:          row.RoleName,
		OrderType:         row.OrderType,
		SupplierID:        supplierID,
		SupplierName:      row.SupplierName,
		Status:            row.Status,
		EstimatedDelivery: row.EstimatedDelivery,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		Version:           row.Version,
	}, nil
}
