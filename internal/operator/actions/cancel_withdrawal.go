package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
)

type CancelWithdrawal struct {
	ID           uuid.UUID
	Cancellation ledger.Cancellation

	Result *ledger.Withdrawal
}

func (c *CancelWithdrawal) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Withdrawal.FindByIDForUpdate(ctx, c.ID)
	if err != nil {
		return err
	}
	if !current.IsActive() {
		return ledger.NewConflictError("withdrawal.cancel", "withdrawal is already cancelled")
	}

	if err = writer.Withdrawal.Cancel(ctx, c.ID, c.Cancellation); err != nil {
		return err
	}

	cancelled, err := writer.Withdrawal.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}

	c.Result = cancelled
	return nil
}
