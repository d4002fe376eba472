package commands

import "context"

type PurgeStaleCartsCommandHandler struct {
	uowFactory UoWFactory
}

func NewPurgeStaleCartsCommandHandler(uowFactory UoWFactory) PurgeStaleCartsCommandHandler {
	return PurgeStaleCartsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of removed entries.
func (h PurgeStaleCartsCommandHandler) Handle(ctx context.Context, cmd PurgeStaleCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.CartRepository().DeleteUpdatedBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
