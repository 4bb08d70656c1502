package actions

import (
	"context"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

type CreateWithdrawal struct {
	Create *withdrawal.Create
	Audit  ledger.Audit

	Result *ledger.Withdrawal
}

func (c *CreateWithdrawal) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Withdrawal.Insert(ctx, c.Create, c.Audit)
	if err != nil {
		return err
	}

	c.Result = created
	return nil
}
