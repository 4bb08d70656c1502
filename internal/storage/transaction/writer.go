package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

// Writer runs against the executor of an open unit-of-work.
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

// FindByIDForUpdate reads the transaction and locks its row until the
// unit-of-work ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return w.findOne(ctx, "transaction.lock", id, true)
}

// Insert writes the header and all lines of draft.
func (w *Writer) Insert(ctx context.Context, draft *ledger.TransactionDraft, audit ledger.Audit) (*ledger.Transaction, error) {
	const op = "transaction.create"

	query := psql.Insert(
		im.Into(sqlconfig.TransactionsTable,
			"patient_id", "amount", "advance_amount", "payment_method", "status",
			"handled_by", "created_by_name", "paid_at",
		),
		im.Values(psql.Arg(
			draft.PatientID,
			draft.Amount,
			draft.AdvanceAmount,
			string(draft.PaymentMethod),
			string(ledger.StatusActive),
			audit.ActorID,
			audit.ActorName,
			draft.PaidAt,
		)),
		im.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(op, err)
	}

	lines, err := w.insertLines(ctx, op, row.ID, draft.Lines)
	if err != nil {
		return nil, err
	}
	return rowToTransaction(&row, lines), nil
}

// Update writes the set fields of update to an active transaction.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *Update) error {
	const op = "transaction.update"

	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(sqlconfig.TransactionsTable),
	}
	if !update.PatientID.IsUnset() {
		queryMods = append(queryMods, um.SetCol("patient_id").ToArg(update.PatientID.MustPtr()))
	}
	if !update.AdvanceAmount.IsUnset() {
		queryMods = append(queryMods, um.SetCol("advance_amount").ToArg(update.AdvanceAmount.MustPtr()))
	}
	if method, ok := update.PaymentMethod.Get(); ok {
		queryMods = append(queryMods, um.SetCol("payment_method").ToArg(string(method)))
	}
	if amount, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(amount))
	}
	if len(queryMods) == 1 {
		return nil
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(ledger.StatusActive)))),
	)

	result, err := bob.Exec(ctx, w.exec, psql.Update(queryMods...))
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	return w.expectOne(ctx, op, id, result.RowsAffected)
}

// ReplaceLines voids every active line of the transaction and appends lines
// after the existing positions.
func (w *Writer) ReplaceLines(ctx context.Context, id uuid.UUID, lines []ledger.LineDraft) error {
	const op = "transaction.replace_lines"

	voidQuery := psql.Update(
		um.Table(sqlconfig.TransactionLinesTable),
		um.SetCol("status").ToArg(string(ledger.LineVoid)),
		um.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(ledger.LineActive)))),
	)
	if _, err := bob.Exec(ctx, w.exec, voidQuery); err != nil {
		return sqlconfig.TranslateError(op, err)
	}

	maxQuery := psql.Select(
		sm.Columns(psql.Raw("COALESCE(MAX(position), 0)")),
		sm.From(sqlconfig.TransactionLinesTable),
		sm.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	)
	lastPosition, err := bob.One(ctx, w.exec, maxQuery, scan.SingleColumnMapper[int])
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}

	shifted := make([]ledger.LineDraft, len(lines))
	for i, l := range lines {
		l.Position = lastPosition + i + 1
		shifted[i] = l
	}
	_, err = w.insertLines(ctx, op, id, shifted)
	return err
}

// Cancel flips an active transaction to cancelled and records who did it.
func (w *Writer) Cancel(ctx context.Context, id uuid.UUID, cancellation ledger.Cancellation) error {
	const op = "transaction.cancel"

	query := psql.Update(
		um.Table(sqlconfig.TransactionsTable),
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
	return w.expectOne(ctx, op, id, result.RowsAffected)
}

// Delete removes the transaction; its lines go with it by cascade.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "transaction.delete"

	query := psql.Delete(
		dm.From(sqlconfig.TransactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	if affected == 0 {
		return ledger.NewNotFoundError(op, "transaction not found")
	}
	return nil
}

func (w *Writer) insertLines(ctx context.Context, op string, transactionID uuid.UUID, lines []ledger.LineDraft) ([]ledger.Line, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	queryMods := []bob.Mod[*dialect.InsertQuery]{
		im.Into(sqlconfig.TransactionLinesTable, lineInsertColumns...),
	}
	for _, l := range lines {
		queryMods = append(queryMods, im.Values(psql.Arg(
			transactionID,
			l.Position,
			string(l.ItemType),
			l.ItemRefID,
			l.UnitPrice,
			l.Quantity,
			l.LineTotal,
			l.Note,
			string(ledger.LineActive),
		)))
	}
	queryMods = append(queryMods, im.Returning(lineColumns...))

	rows, err := bob.All(ctx, w.exec, psql.Insert(queryMods...), scan.StructMapper[lineRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(op, err)
	}
	result := make([]ledger.Line, len(rows))
	for i := range rows {
		result[i] = rowToLine(&rows[i])
	}
	return result, nil
}

// expectOne turns a guarded update that touched nothing into NotFound or
// Conflict depending on whether the row exists.
func (w *Writer) expectOne(ctx context.Context, op string, id uuid.UUID, rowsAffected func() (int64, error)) error {
	affected, err := rowsAffected()
	if err != nil {
		return sqlconfig.TranslateError(op, err)
	}
	if affected == 1 {
		return nil
	}
	if _, err := w.findOne(ctx, op, id, false); err != nil {
		return err
	}
	return ledger.NewConflictError(op, "transaction is cancelled")
}
