package withdrawal

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

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	return r.findOne(ctx, "withdrawal.get", id, false)
}

// List returns matching withdrawals, most recent first.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*ledger.Withdrawal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(withdrawalColumns...),
		sm.From(sqlconfig.WithdrawalsTable),
	}
	queryMods = append(queryMods, whereMods(filter)...)
	queryMods = append(queryMods,
		sm.OrderBy("retrait_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[withdrawalRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError("withdrawal.list", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	result := make([]*ledger.Withdrawal, len(rows))
	for i := range rows {
		result[i] = rowToWithdrawal(&rows[i])
	}
	return result, nil
}

// SumAmount returns the sum of amount over matching withdrawals, zero when
// nothing matches.
func (r *Reader) SumAmount(ctx context.Context, filter *Filter) (decimal.Decimal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(sqlconfig.WithdrawalsTable),
	}
	queryMods = append(queryMods, whereMods(filter)...)

	total, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, sqlconfig.TranslateError("withdrawal.sum", err)
	}
	return total, nil
}

func (r *Reader) findOne(ctx context.Context, op string, id uuid.UUID, forUpdate bool) (*ledger.Withdrawal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(withdrawalColumns...),
		sm.From(sqlconfig.WithdrawalsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}
	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[withdrawalRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(op, err)
	}
	return rowToWithdrawal(&row), nil
}

func whereMods(filter *Filter) []bob.Mod[*dialect.SelectQuery] {
	if filter == nil {
		return nil
	}
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter.Status != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(string(*filter.Status)))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("retrait_at").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("retrait_at").LTE(psql.Arg(*filter.To))))
	}
	return queryMods
}
