package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the transaction with its lines, active and void.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.findOne(ctx, "transaction.get", id, false)
}

// List returns transactions most recent first, whatever their status.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*ledger.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(sqlconfig.TransactionsTable),
	}
	queryMods = append(queryMods, whereMods(filter)...)
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("paid_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError("transaction.list", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*ledger.Transaction, len(rows))
	for i := range rows {
		result[i] = rowToTransaction(&rows[i], lines[rows[i].ID])
	}
	return result, nil
}

// SumAmount returns the sum of amount over matching transactions, zero when
// nothing matches.
func (r *Reader) SumAmount(ctx context.Context, filter *Filter) (decimal.Decimal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(sqlconfig.TransactionsTable),
	}
	queryMods = append(queryMods, whereMods(filter)...)

	total, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, sqlconfig.TranslateError("transaction.sum", err)
	}
	return total, nil
}

func (r *Reader) findOne(ctx context.Context, op string, id uuid.UUID, forUpdate bool) (*ledger.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(op, err)
	}

	lines, err := r.linesFor(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	return rowToTransaction(&row, lines[row.ID]), nil
}

func (r *Reader) linesFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ledger.Line, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := psql.Select(
		sm.Columns(lineColumns...),
		sm.From(sqlconfig.TransactionLinesTable),
		sm.Where(psql.Quote("transaction_id").In(psql.Arg(args...))),
		sm.OrderBy("transaction_id").Asc(),
		sm.OrderBy("position").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[lineRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError("transaction.lines", err)
	}

	byTransaction := make(map[uuid.UUID][]ledger.Line, len(ids))
	for i := range rows {
		byTransaction[rows[i].TransactionID] = append(byTransaction[rows[i].TransactionID], rowToLine(&rows[i]))
	}
	return byTransaction, nil
}

func whereMods(filter *Filter) []bob.Mod[*dialect.SelectQuery] {
	if filter == nil {
		return nil
	}
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter.PatientID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("patient_id").EQ(psql.Arg(*filter.PatientID))))
	}
	if filter.Status != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(string(*filter.Status)))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("paid_at").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("paid_at").LTE(psql.Arg(*filter.To))))
	}
	if filter.Until != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("paid_at").LT(psql.Arg(*filter.Until))))
	}
	return queryMods
}
