package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
)

// CancelTransaction soft-cancels an active transaction. Amount and lines are
// left as they are.
type CancelTransaction struct {
	ID           uuid.UUID
	Cancellation ledger.Cancellation

	Result *ledger.Transaction
}

func (c *CancelTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Transaction.FindByIDForUpdate(ctx, c.ID)
	if err != nil {
		return err
	}
	if !current.IsActive() {
		return ledger.NewConflictError("transaction.cancel", "transaction is already cancelled")
	}

	if err = writer.Transaction.Cancel(ctx, c.ID, c.Cancellation); err != nil {
		return err
	}

	cancelled, err := writer.Transaction.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}

	c.Result = cancelled
	return nil
}
