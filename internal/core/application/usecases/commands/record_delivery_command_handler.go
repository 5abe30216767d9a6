package commands

import (
	"context"
)

// RecordDeliveryCommandHandler handles the business logic for recording an
// arrival: it loads the aggregate, applies the delivery event (which may
// spawn issues), and persists with an optimistic-concurrency check.
type RecordDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordDeliveryCommandHandler creates a handler for delivery recording.
func NewRecordDeliveryCommandHandler(uowFactory OrderUoWFactory) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery recording command.
// The aggregate validates the whole event against current line state before
// mutating anything, so a rejected arrival leaves the order untouched. A
// concurrent writer surfaces as a version conflict from Update.
func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = aggregate.RecordDelivery(cmd.Event()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
