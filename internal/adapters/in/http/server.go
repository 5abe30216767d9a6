package http

import (
	"errors"
	"net/http"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/generated/servers"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	deleteOrderHandler    commands.DeleteOrderCommandHandler
	recordDeliveryHandler commands.RecordDeliveryCommandHandler
	resolveIssueHandler   commands.ResolveIssueCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
	getSummaryHandler queries.GetProductionSummaryQueryHandler
	getAlertsHandler  queries.GetAlertsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	recordDeliveryHandler commands.RecordDeliveryCommandHandler,
	resolveIssueHandler commands.ResolveIssueCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getSummaryHandler queries.GetProductionSummaryQueryHandler,
	getAlertsHandler queries.GetAlertsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		deleteOrderHandler:    deleteOrderHandler,
		recordDeliveryHandler: recordDeliveryHandler,
		resolveIssueHandler:   resolveIssueHandler,
		getOrderHandler:       getOrderHandler,
		listOrdersHandler:     listOrdersHandler,
		getSummaryHandler:     getSummaryHandler,
		getAlertsHandler:      getAlertsHandler,
	}
}

// CreateOrder handles POST /api/v1/production/orders - registers a new
// production order and responds with its generated identifier.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderType, err := order.TypeFromString(newOrder.OrderType)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	jobID, err := kernel.UUIDFromString(newOrder.JobId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}
	roleID, err := kernel.UUIDFromString(newOrder.RoleId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	var supplierID *kernel.UUID
	if newOrder.SupplierId != nil {
		id, supplierErr := kernel.UUIDFromString(newOrder.SupplierId.String())
		if supplierErr != nil {
			return badRequest(ctx, "Invalid order data: "+supplierErr.Error())
		}
		supplierID = &id
	}

	items := make([]commands.LineItemInput, len(newOrder.Items))
	for i, item := range newOrder.Items {
		items[i] = commands.LineItemInput{
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			GlassType:   strValue(item.GlassType),
			Combination: strValue(item.Combination),
			Notes:       strValue(item.Notes),
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, jobID, roleID, orderType, supplierID,
		items, dateToTime(newOrder.EstimatedDelivery), strValue(newOrder.Notes),
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: orderID.Bytes()})
}

// DeleteOrder handles DELETE /api/v1/production/orders/{orderId} - removes
// an order that has no delivery history yet.
func (s *Server) DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	if handleErr := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDelivery handles POST /api/v1/production/orders/{orderId}/deliveries -
// records one arrival against an order, spawning issues for problem lines.
func (s *Server) RecordDelivery(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var newDelivery servers.NewDelivery
	if err = ctx.Bind(&newDelivery); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines := make([]commands.DeliveryLineInput, len(newDelivery.Lines))
	for i, line := range newDelivery.Lines {
		issueType := order.IssueTypeUnknown
		if line.IssueType != nil && *line.IssueType != "" {
			issueType, err = order.IssueTypeFromString(*line.IssueType)
			if err != nil {
				return badRequest(ctx, "Invalid delivery data: "+err.Error())
			}
		}

		lines[i] = commands.DeliveryLineInput{
			LineIndex:   line.LineIndex,
			ReceivedQty: line.ReceivedQty,
			IssueType:   issueType,
			IssueQty:    intValue(line.IssueQty),
			IssueNote:   strValue(line.IssueNote),
		}
	}

	date := time.Now()
	if newDelivery.Date != nil {
		date = newDelivery.Date.Time
	}

	cmd, err := commands.NewRecordDeliveryCommand(orderID, date, strValue(newDelivery.Note), lines)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if handleErr := s.recordDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveIssue handles POST /api/v1/production/orders/{orderId}/issues/{issueId}/resolutions -
// applies one resolution step to a pending issue.
func (s *Server) ResolveIssue(ctx echo.Context, orderId openapi_types.UUID, issueId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}
	issueID, err := kernel.UUIDFromString(issueId.String())
	if err != nil {
		return badRequest(ctx, "Invalid issue ID: "+err.Error())
	}

	var newResolution servers.NewResolution
	if err = ctx.Bind(&newResolution); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	resolution, err := order.ResolutionFromString(newResolution.Resolution)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	newIssueType := order.IssueTypeUnknown
	if newResolution.NewIssueType != nil && *newResolution.NewIssueType != "" {
		newIssueType, err = order.IssueTypeFromString(*newResolution.NewIssueType)
		if err != nil {
			return badRequest(ctx, "Invalid resolution data: "+err.Error())
		}
	}

	date := time.Now()
	if newResolution.Date != nil {
		date = newResolution.Date.Time
	}

	cmd, err := commands.NewResolveIssueCommand(
		orderID, issueID, date, resolution,
		newResolution.ResolvedQty, strValue(newResolution.Note),
		intValue(newResolution.NewIssueQty), newIssueType, strValue(newResolution.NewIssueNote),
	)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if handleErr := s.resolveIssueHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/production/orders/{orderId} - retrieves the
// full read model of one order including deliveries and issue chains.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromString(orderId.String())
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// ListOrders handles GET /api/v1/production/orders - retrieves order
// headers matching the filter parameters, newest first.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	orderType := order.TypeUnknown
	if params.OrderType != nil {
		parsed, err := order.TypeFromString(*params.OrderType)
		if err != nil {
			return badRequest(ctx, "Invalid filter: "+err.Error())
		}
		orderType = parsed
	}

	status := order.StatusUnknown
	if params.Status != nil {
		parsed, err := order.StatusFromString(*params.Status)
		if err != nil {
			return badRequest(ctx, "Invalid filter: "+err.Error())
		}
		status = parsed
	}

	var supplierID *kernel.UUID
	if params.SupplierId != nil {
		id, err := kernel.UUIDFromString(params.SupplierId.String())
		if err != nil {
			return badRequest(ctx, "Invalid filter: "+err.Error())
		}
		supplierID = &id
	}

	overdue := params.Overdue != nil && *params.Overdue

	query, err := queries.NewListOrdersQuery(
		orderType, status, supplierID, strValue(params.Search), overdue, time.Now(),
	)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.OrderSummary, len(orders))
	for i, row := range orders {
		response[i] = servers.OrderSummary{
			Id:                row.ID.Bytes(),
			JobId:             row.JobID.Bytes(),
			JobTitle:          row.JobTitle,
			CustomerName:      row.CustomerName,
			RoleName:          row.RoleName,
			OrderType:         row.OrderType,
			SupplierName:      optString(row.SupplierName),
			Status:            row.Status,
			EstimatedDelivery: timeToDate(row.EstimatedDelivery),
			CreatedAt:         row.CreatedAt.Format(time.RFC3339),
			TotalQty:          row.TotalQty,
			ReceivedQty:       row.ReceivedQty,
			OpenIssues:        row.OpenIssues,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetProductionSummary handles GET /api/v1/production/summary - retrieves
// the dashboard counters.
func (s *Server) GetProductionSummary(ctx echo.Context) error {
	query := queries.NewGetProductionSummaryQuery(time.Now())

	summary, err := s.getSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ProductionSummary{
		TotalOrders:     summary.TotalOrders,
		PendingOrders:   summary.PendingOrders,
		PartialOrders:   summary.PartialOrders,
		CompletedOrders: summary.CompletedOrders,
		OverdueOrders:   summary.OverdueOrders,
		OrdersWithOpen:  summary.OrdersWithOpen,
		OpenIssues:      summary.OpenIssues,
	})
}

// GetAlerts handles GET /api/v1/production/alerts - derives attention
// alerts from the current order snapshot, most urgent first.
func (s *Server) GetAlerts(ctx echo.Context) error {
	query := queries.NewGetAlertsQuery(time.Now())

	alerts, err := s.getAlertsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.Alert, len(alerts))
	for i, alert := range alerts {
		response[i] = servers.Alert{
			OrderId:           alert.OrderID.Bytes(),
			JobId:             alert.JobID.Bytes(),
			JobTitle:          alert.JobTitle,
			Type:              string(alert.Type),
			Severity:          alert.Severity.String(),
			Message:           alert.Message,
			EstimatedDelivery: timeToDate(alert.EstimatedDelivery),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderResponse(r queries.GetOrderQueryResponse) servers.Order {
	items := make([]servers.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = servers.OrderItem{
			Index:       item.Index,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			GlassType:   optString(item.GlassType),
			Combination: optString(item.Combination),
			Notes:       optString(item.Notes),
			ReceivedQty: item.ReceivedQty,
		}
	}

	deliveries := make([]servers.DeliveryEvent, len(r.Deliveries))
	for i, event := range r.Deliveries {
		lines := make([]servers.DeliveryLine, len(event.Lines))
		for j, line := range event.Lines {
			lines[j] = servers.DeliveryLine{
				LineIndex:   line.LineIndex,
				ReceivedQty: line.ReceivedQty,
				IssueType:   optString(line.IssueType),
				IssueQty:    optInt(line.IssueQty),
				IssueNote:   optString(line.IssueNote),
			}
		}
		deliveries[i] = servers.DeliveryEvent{
			Date:  event.Date.Format(time.RFC3339),
			Note:  optString(event.Note),
			Lines: lines,
		}
	}

	issues := make([]servers.Issue, len(r.Issues))
	for i, issue := range r.Issues {
		history := make([]servers.ResolutionRecord, len(issue.History))
		for j, record := range issue.History {
			history[j] = servers.ResolutionRecord{
				Date:        record.Date.Format(time.RFC3339),
				Resolution:  record.Resolution,
				ResolvedQty: record.ResolvedQty,
				Note:        optString(record.Note),
			}
		}

		var parentID *openapi_types.UUID
		if issue.ParentIssueID != nil {
			id := issue.ParentIssueID.Bytes()
			parentID = &id
		}

		issues[i] = servers.Issue{
			Id:            issue.ID.Bytes(),
			LineIndex:     issue.LineIndex,
			IssueType:     issue.IssueType,
			Quantity:      issue.Quantity,
			Note:          optString(issue.Note),
			Status:        issue.Status,
			ParentIssueId: parentID,
			History:       history,
		}
	}

	var supplierID *openapi_types.UUID
	if r.SupplierID != nil {
		id := r.SupplierID.Bytes()
		supplierID = &id
	}

	return servers.Order{
		Id:                r.ID.Bytes(),
		JobId:             r.JobID.Bytes(),
		JobTitle:          r.JobTitle,
		CustomerName:      r.CustomerName,
		RoleId:            r.RoleID.Bytes(),
		RoleName:          r.RoleName,
		OrderType:         r.OrderType,
		SupplierId:        supplierID,
		SupplierName:      optString(r.SupplierName),
		Status:            r.Status,
		EstimatedDelivery: timeToDate(r.EstimatedDelivery),
		Notes:             optString(r.Notes),
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		Version:           r.Version,
		Items:             items,
		Deliveries:        deliveries,
		Issues:            issues,
	}
}

// errorResponse maps use-case errors to HTTP status codes: validation
// failures to 400, missing objects to 404, state and version conflicts
// to 409, everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func timeToDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
