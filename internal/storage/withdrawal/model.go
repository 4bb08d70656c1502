package withdrawal

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// Filter narrows a withdrawal listing or total. Bounds on retrait_at are
// inclusive; nil fields do not filter.
type Filter struct {
	Status *ledger.Status
	From   *time.Time
	To     *time.Time
}

// Create is the input for inserting a withdrawal.
type Create struct {
	Amount        decimal.Decimal
	Justification *string
	RetraitAt     time.Time // defaults to now if zero
}

type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error)
	List(ctx context.Context, filter *Filter) ([]*ledger.Withdrawal, error)
	SumAmount(ctx context.Context, filter *Filter) (decimal.Decimal, error)
}

// IWriter is the write side, used inside a unit-of-work.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error)
	Insert(ctx context.Context, create *Create, audit ledger.Audit) (*ledger.Withdrawal, error)
	Cancel(ctx context.Context, id uuid.UUID, cancellation ledger.Cancellation) error
}

var withdrawalColumns = []any{
	"id", "amount", "justification", "handled_by", "handled_by_name", "retrait_at", "status",
	"cancelled_by", "cancelled_by_name", "cancelled_at", "cancel_justification",
}

type withdrawalRow struct {
	ID                  uuid.UUID       `db:"id"`
	Amount              decimal.Decimal `db:"amount"`
	Justification       sql.NullString  `db:"justification"`
	HandledBy           int64           `db:"handled_by"`
	HandledByName       string          `db:"handled_by_name"`
	RetraitAt           time.Time       `db:"retrait_at"`
	Status              string          `db:"status"`
	CancelledBy         sql.NullInt64   `db:"cancelled_by"`
	CancelledByName     sql.NullString  `db:"cancelled_by_name"`
	CancelledAt         sql.NullTime    `db:"cancelled_at"`
	CancelJustification sql.NullString  `db:"cancel_justification"`
}

func rowToWithdrawal(row *withdrawalRow) *ledger.Withdrawal {
	w := &ledger.Withdrawal{
		ID:            row.ID,
		Amount:        row.Amount,
		HandledBy:     row.HandledBy,
		HandledByName: row.HandledByName,
		RetraitAt:     row.RetraitAt,
		Status:        ledger.Status(row.Status),
	}
	if row.Justification.Valid {
		justification := row.Justification.String
		w.Justification = &justification
	}
	if row.CancelledAt.Valid {
		w.Cancellation = &ledger.Cancellation{
			Audit: ledger.Audit{
				ActorID:   row.CancelledBy.Int64,
				ActorName: row.CancelledByName.String,
				At:        row.CancelledAt.Time,
			},
			Justification: row.CancelJustification.String,
		}
	}
	return w
}
