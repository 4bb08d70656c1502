package withdrawal

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{
			exec: exec,
		},
	}
}

func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	return w.findOne(ctx, "withdrawal.lock", id, true)
}

// Insert records an active withdrawal handled by the audited actor.
func (w *Writer) Insert(ctx context.Context, create *Create, audit ledger.Audit) (*ledger.Withdrawal, error) {
	retraitAt := create.RetraitAt
	if retraitAt.IsZero() {
		retraitAt = audit.At
	}
	query := psql.Insert(
		im.Into(sqlconfig.WithdrawalsTable,
			"amount", "justification", "handled_by", "handled_by_name", "retrait_at", "status",
		),
		im.Values(psql.Arg(
			create.Amount,
			create.Justification,
			audit.ActorID,
			audit.ActorName,
			retraitAt,
			string(ledger.StatusActive),
		)),
		im.Returning(withdrawalColumns...),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[withdrawalRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError("withdrawal.create", err)
	}
	return rowToWithdrawal(&row), nil
}

// Cancel flips an active withdrawal to cancelled. The cancel fields are only
// ever written here, once.
func (w *Writer) Cancel(ctx context.Context, id uuid.UUID, cancellation ledger.Cancellation) error {
	const op = "withdrawal.cancel"

	query := psql.Update(
		um.Table(sqlconfig.WithdrawalsTable),
		um.SetCol("status").ToArg(string(ledger.StatusCancelled)),
		um.SetCol("cancelled_by").ToArg(cancellation.ActorID),
		um.SetCol("cancelled_by_name").ToArg(cancellation.ActorName),
		um.SetCol("cancelled_at").ToArg(cancellation.At),
		um.SetCol("cancel_justification").ToArg(cancellation.Justification),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(ledger.StatusActive)))),
	)
	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	if affected == 1 {
		return nil
	}
	if _, err := w.findOne(ctx, op, id, false); err != nil {
		return err
	}
	return ledger.NewConflictError(op, "withdrawal is already cancelled")
}
