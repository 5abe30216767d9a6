package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves job, role and supplier master data, seeds the estimated delivery
// date from the role's lead time when the caller leaves it empty, and
// persists the new pending order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	jobs       ports.JobProvider
	suppliers  ports.SupplierProvider
	roles      ports.RoleProvider
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and the
// master-data providers for job, supplier and role resolution.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	jobs ports.JobProvider,
	suppliers ports.SupplierProvider,
	roles ports.RoleProvider,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		jobs:       jobs,
		suppliers:  suppliers,
		roles:      roles,
	}
}

// Handle processes the order creation command.
// All master-data lookups and domain validation happen before the
// transaction opens, so an invalid request never touches storage.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	job, err := h.jobs.GetJob(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	role, err := h.roles.GetRole(ctx, cmd.RoleID())
	if err != nil {
		return err
	}

	supplierName := ""
	if cmd.OrderType().RequiresSupplier() && cmd.SupplierID() != nil {
		supplier, sErr := h.suppliers.GetSupplier(ctx, *cmd.SupplierID())
		if sErr != nil {
			return sErr
		}
		supplierName = supplier.Name
	}

	items := make([]*order.LineItem, 0, len(cmd.Items()))
	for pos, input := range cmd.Items() {
		item, iErr := order.NewLineItem(
			pos, input.Quantity, input.Unit,
			input.GlassType, input.Combination, input.Notes,
		)
		if iErr != nil {
			return iErr
		}
		items = append(items, item)
	}

	now := time.Now()
	estimatedDelivery := cmd.EstimatedDelivery()
	if estimatedDelivery == nil && role.EstimatedDays > 0 {
		seeded := now.AddDate(0, 0, role.EstimatedDays)
		estimatedDelivery = &seeded
	}

	aggregate, err := order.NewProductionOrder(
		cmd.OrderID(), cmd.JobID(), job.Title, job.CustomerName,
		cmd.RoleID(), role.Name,
		cmd.OrderType(), cmd.SupplierID(), supplierName,
		items, estimatedDelivery, cmd.Notes(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
