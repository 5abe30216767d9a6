package commands

import (
	"context"
)

// ResolveIssueCommandHandler handles the business logic for issue
// resolution: it loads the aggregate, applies one resolution step (which
// may spawn a chained issue), and persists with an optimistic-concurrency
// check.
type ResolveIssueCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResolveIssueCommandHandler creates a handler for issue resolution.
func NewResolveIssueCommandHandler(uowFactory OrderUoWFactory) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the issue resolution command.
// Unknown order or issue IDs surface as object-not-found errors; resolving
// an already-resolved issue surfaces as a conflict; quantity and chaining
// rules are enforced by the aggregate before anything mutates.
func (h *ResolveIssueCommandHandler) Handle(ctx context.Context, cmd ResolveIssueCommand) error {
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

	_, err = aggregate.ResolveIssue(
		cmd.IssueID(), cmd.Date(), cmd.Resolution(), cmd.ResolvedQty(), cmd.Note(),
		cmd.NewIssueQty(), cmd.NewIssueType(), cmd.NewIssueNote(),
	)
	if err != nil {
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
