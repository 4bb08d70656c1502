package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
)

// UpdateTransaction applies a metadata patch and, when asked, a full line
// rewrite to an active transaction.
type UpdateTransaction struct {
	ID       uuid.UUID
	Patch    ledger.TransactionPatch
	Patients ledger.PatientDirectory

	Result *ledger.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	const op = "transaction.update"

	current, err := writer.Transaction.FindByIDForUpdate(ctx, u.ID)
	if err != nil {
		return err
	}

	plan, err := ledger.PlanUpdate(current, u.Patch)
	if err != nil {
		return err
	}

	if patientID, ok := u.Patch.PatientID.Get(); ok {
		if _, err := ledger.ResolvePatient(ctx, u.Patients, op, patientID); err != nil {
			return err
		}
	}

	update := &transaction.Update{
		PatientID:     u.Patch.PatientID,
		AdvanceAmount: u.Patch.AdvanceAmount,
		PaymentMethod: u.Patch.PaymentMethod,
	}
	if plan.Lines != nil {
		update.Amount.Set(plan.Amount)
	}
	if err = writer.Transaction.Update(ctx, u.ID, update); err != nil {
		return err
	}

	if plan.Lines != nil {
		if err = writer.Transaction.ReplaceLines(ctx, u.ID, plan.Lines); err != nil {
			return err
		}
	}

	updated, err := writer.Transaction.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}

	u.Result = updated
	return nil
}
