package actions

import (
	"context"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
)

// CreateTransaction persists a validated draft with all of its lines.
type CreateTransaction struct {
	Draft    *ledger.TransactionDraft
	Audit    ledger.Audit
	Patients ledger.PatientDirectory

	Result *ledger.Transaction
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	const op = "transaction.create"

	if c.Draft.PatientID != nil {
		if _, err := ledger.ResolvePatient(ctx, c.Patients, op, *c.Draft.PatientID); err != nil {
			return err
		}
	}

	created, err := writer.Transaction.Insert(ctx, c.Draft, c.Audit)
	if err != nil {
		return err
	}

	c.Result = created
	return nil
}
