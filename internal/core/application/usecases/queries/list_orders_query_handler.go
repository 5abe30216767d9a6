package queries

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type listOrderRow struct {
	ID                uuid.UUID
	JobID             uuid.UUID
	JobTitle          string
	CustomerName      string
	RoleName          string
	OrderType         string
	SupplierName      string
	Status            string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	TotalQty          int
	ReceivedQty       int
	OpenIssues        int
}

// ListOrdersQueryHandler retrieves order headers from the database with
// progress totals aggregated from line items and issues.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Filters compose with AND; the free-text search
// matches job title or customer name case-insensitively; the overdue filter
// compares the estimated delivery date against the calendar day of the
// query's anchor instant. Results come newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").
		Select(`orders.id, orders.job_id, orders.job_title, orders.customer_name,
			orders.role_name, orders.order_type, orders.supplier_name, orders.status,
			orders.estimated_delivery, orders.created_at,
			COALESCE(items.total_qty, 0) AS total_qty,
			COALESCE(items.received_qty, 0) AS received_qty,
			COALESCE(open_issues.cnt, 0) AS open_issues`).
		Joins(`LEFT JOIN (
			SELECT order_id, SUM(quantity) AS total_qty, SUM(received_qty) AS received_qty
			FROM order_items GROUP BY order_id
		) items ON items.order_id = orders.id`).
		Joins(`LEFT JOIN (
			SELECT order_id, COUNT(*) AS cnt
			FROM issues WHERE status = ? GROUP BY order_id
		) open_issues ON open_issues.order_id = orders.id`, order.IssueStatusPending.String())

	if query.OrderType() != order.TypeUnknown {
		tx = tx.Where("orders.order_type = ?", query.OrderType().String())
	}
	if query.Status() != order.StatusUnknown {
		tx = tx.Where("orders.status = ?", query.Status().String())
	}
	if query.SupplierID() != nil {
		tx = tx.Where("orders.supplier_id = ?", query.SupplierID().Bytes())
	}
	if query.Search() != "" {
		pattern := "%" + query.Search() + "%"
		tx = tx.Where("orders.job_title ILIKE ? OR orders.customer_name ILIKE ?", pattern, pattern)
	}
	if query.Overdue() {
		now := query.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		tx = tx.Where("orders.status <> ?", order.StatusCompleted.String()).
			Where("orders.estimated_delivery IS NOT NULL").
			Where("orders.estimated_delivery < ?", dayStart)
	}

	var rows []listOrderRow
	if err := tx.Order("orders.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]ListOrdersQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		jobID, err := kernel.UUIDFromBytes(row.JobID[:])
		if err != nil {
			return nil, err
		}

		responses = append(responses, ListOrdersQueryResponse{
			ID:                id,
			JobID:             jobID,
			JobTitle:          row.JobTitle,
			CustomerName:      row.CustomerName,
			RoleName:          row.RoleName,
			OrderType:         row.OrderType,
			SupplierName:      row.SupplierName,
			Status:            row.Status,
			EstimatedDelivery: row.EstimatedDelivery,
			CreatedAt:         row.CreatedAt,
			TotalQty:          row.TotalQty,
			ReceivedQty:       row.ReceivedQty,
			OpenIssues:        row.OpenIssues,
		})
	}

	return responses, nil
}
