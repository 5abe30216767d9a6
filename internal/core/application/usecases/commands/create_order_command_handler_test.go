package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func externalOrderCommand(t *testing.T, supplierID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.TypeExternal, &supplierID,
		[]commands.LineItemInput{{Quantity: 10, Unit: "pcs"}},
		nil, "",
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	cmd := externalOrderCommand(t, supplierID)

	jobs := new(MockJobProvider)
	jobs.On("GetJob", ctx, cmd.JobID()).
		Return(ports.Job{ID: cmd.JobID(), Title: "Villa Aurora windows", CustomerName: "Aurora Construction"}, nil).Once()
	roles := new(MockRoleProvider)
	roles.On("GetRole", ctx, cmd.RoleID()).
		Return(ports.Role{ID: cmd.RoleID(), Name: "Aluminum joinery", EstimatedDays: 5}, nil).Once()
	suppliers := new(MockSupplierProvider)
	suppliers.On("GetSupplier", ctx, supplierID).
		Return(ports.Supplier{ID: supplierID, Name: "Metalform Ltd"}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.ProductionOrder")).
			Run(func(args mock.Arguments) {
				aggregate := args.Get(1).(*order.ProductionOrder)
				require.Equal(t, order.StatusPending, aggregate.Status())
				require.Equal(t, "Villa Aurora windows", aggregate.JobTitle())
				require.Equal(t, "Metalform Ltd", aggregate.SupplierName())
				require.NotNil(t, aggregate.EstimatedDelivery())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, jobs, suppliers, roles)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	jobs.AssertExpectations(t)
	roles.AssertExpectations(t)
	suppliers.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(
		factory, new(MockJobProvider), new(MockSupplierProvider), new(MockRoleProvider))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_JobLookupError(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	cmd := externalOrderCommand(t, supplierID)

	jobs := new(MockJobProvider)
	jobs.On("GetJob", ctx, cmd.JobID()).
		Return(ports.Job{}, errors.New("job lookup failed")).Once()

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(
		factory, jobs, new(MockSupplierProvider), new(MockRoleProvider))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	cmd := externalOrderCommand(t, supplierID)

	jobs := new(MockJobProvider)
	jobs.On("GetJob", ctx, cmd.JobID()).Return(ports.Job{ID: cmd.JobID(), Title: "job"}, nil).Once()
	roles := new(MockRoleProvider)
	roles.On("GetRole", ctx, cmd.RoleID()).Return(ports.Role{ID: cmd.RoleID(), Name: "role"}, nil).Once()
	suppliers := new(MockSupplierProvider)
	suppliers.On("GetSupplier", ctx, supplierID).Return(ports.Supplier{ID: supplierID, Name: "supplier"}, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.ProductionOrder")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, jobs, suppliers, roles)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	t.Run("requires_items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.TypeInternal, nil, nil, nil, "",
		)
		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("rejects_invalid_order_type", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.TypeUnknown, nil,
			[]commands.LineItemInput{{Quantity: 1, Unit: "pcs"}},
			nil, "",
		)
		require.Error(t, err)
	})

	t.Run("rejects_empty_order_id", func(t *testing.T) {
		var empty kernel.UUID
		_, err := commands.NewCreateOrderCommand(
			empty, kernel.NewUUID(), kernel.NewUUID(),
			order.TypeInternal, nil,
			[]commands.LineItemInput{{Quantity: 1, Unit: "pcs"}},
			nil, "",
		)
		require.Error(t, err)
	})
}
