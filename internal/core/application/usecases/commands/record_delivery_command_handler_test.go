package commands_test

import (
	"errors"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveryCommand(t *testing.T, orderID kernel.UUID, lines ...commands.DeliveryLineInput) commands.RecordDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewRecordDeliveryCommand(orderID, time.Now(), "", lines)
	require.NoError(t, err)
	return cmd
}

func TestRecordDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)
	cmd := deliveryCommand(t, stored.ID(), commands.DeliveryLineInput{LineIndex: 0, ReceivedQty: 4})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.ProductionOrder")).
			Run(func(args mock.Arguments) {
				aggregate := args.Get(1).(*order.ProductionOrder)
				require.Equal(t, order.StatusPartial, aggregate.Status())
				require.Equal(t, int64(2), aggregate.Version())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordDeliveryCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd := deliveryCommand(t, orderID, commands.DeliveryLineInput{LineIndex: 0, ReceivedQty: 1})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordDeliveryCommandHandler_Handle_OverDeliveryRollsBack(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)
	cmd := deliveryCommand(t, stored.ID(), commands.DeliveryLineInput{LineIndex: 0, ReceivedQty: 11})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRecordDeliveryCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t)
	cmd := deliveryCommand(t, stored.ID(), commands.DeliveryLineInput{LineIndex: 0, ReceivedQty: 2})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.ProductionOrder")).
			Return(errs.NewVersionIsInvalidError("version", errors.New("concurrent update"))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDeliveryCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertExpectations(t)
}

func TestNewRecordDeliveryCommand_Validation(t *testing.T) {
	t.Run("rejects_empty_event", func(t *testing.T) {
		_, err := commands.NewRecordDeliveryCommand(kernel.NewUUID(), time.Now(), "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_problem_without_type", func(t *testing.T) {
		_, err := commands.NewRecordDeliveryCommand(kernel.NewUUID(), time.Now(), "",
			[]commands.DeliveryLineInput{{LineIndex: 0, ReceivedQty: 1, IssueQty: 2}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
