package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// Filter narrows a transaction listing or total. From and To are inclusive,
// Until is exclusive. Nil fields do not filter.
type Filter struct {
	PatientID *int64
	Status    *ledger.Status
	From      *time.Time
	To        *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Update lists the header columns to change. Unset fields are not written.
type Update struct {
	PatientID     omitnull.Val[int64]
	AdvanceAmount omitnull.Val[decimal.Decimal]
	PaymentMethod omit.Val[ledger.PaymentMethod]
	Amount        omit.Val[decimal.Decimal]
}

// IReader defines the read side of transaction storage.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	List(ctx context.Context, filter *Filter) ([]*ledger.Transaction, error)
	SumAmount(ctx context.Context, filter *Filter) (decimal.Decimal, error)
}

// IWriter is the write side. Implementations run inside a unit-of-work and
// never commit on their own.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	Insert(ctx context.Context, draft *ledger.TransactionDraft, audit ledger.Audit) (*ledger.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *Update) error
	ReplaceLines(ctx context.Context, id uuid.UUID, lines []ledger.LineDraft) error
	Cancel(ctx context.Context, id uuid.UUID, cancellation ledger.Cancellation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var transactionColumns = []any{
	"id", "patient_id", "amount", "advance_amount", "payment_method", "status",
	"handled_by", "created_by_name", "paid_at",
	"cancelled_by", "cancelled_by_name", "cancelled_at", "cancel_justification",
}

type transactionRow struct {
	ID                  uuid.UUID           `db:"id"`
	PatientID           sql.NullInt64       `db:"patient_id"`
	Amount              decimal.Decimal     `db:"amount"`
	AdvanceAmount       decimal.NullDecimal `db:"advance_amount"`
	PaymentMethod       string              `db:"payment_method"`
	Status              string              `db:"status"`
	HandledBy           int64               `db:"handled_by"`
	CreatedByName       string              `db:"created_by_name"`
	PaidAt              time.Time           `db:"paid_at"`
	CancelledBy         sql.NullInt64       `db:"cancelled_by"`
	CancelledByName     sql.NullString      `db:"cancelled_by_name"`
	CancelledAt         sql.NullTime        `db:"cancelled_at"`
	CancelJustification sql.NullString      `db:"cancel_justification"`
}

var lineColumns = []any{
	"id", "transaction_id", "position", "item_type", "item_ref_id",
	"unit_price", "quantity", "line_total", "note", "status",
}

var lineInsertColumns = []string{
	"transaction_id", "position", "item_type", "item_ref_id",
	"unit_price", "quantity", "line_total", "note", "status",
}

type lineRow struct {
	ID            uuid.UUID       `db:"id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	Position      int             `db:"position"`
	ItemType      string          `db:"item_type"`
	ItemRefID     int64           `db:"item_ref_id"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Quantity      int             `db:"quantity"`
	LineTotal     decimal.Decimal `db:"line_total"`
	Note          sql.NullString  `db:"note"`
	Status        string          `db:"status"`
}

func rowToTransaction(row *transactionRow, lines []ledger.Line) *ledger.Transaction {
	t := &ledger.Transaction{
		ID:            row.ID,
		Amount:        row.Amount,
		PaymentMethod: ledger.PaymentMethod(row.PaymentMethod),
		Status:        ledger.Status(row.Status),
		CreatedBy:     row.HandledBy,
		CreatedByName: row.CreatedByName,
		PaidAt:        row.PaidAt,
		Lines:         lines,
	}
	if row.PatientID.Valid {
		id := row.PatientID.Int64
		t.PatientID = &id
	}
	if row.AdvanceAmount.Valid {
		advance := row.AdvanceAmount.Decimal
		t.AdvanceAmount = &advance
	}
	if row.CancelledAt.Valid {
		t.Cancellation = &ledger.Cancellation{
			Audit: ledger.Audit{
				ActorID:   row.CancelledBy.Int64,
				ActorName: row.CancelledByName.String,
				At:        row.CancelledAt.Time,
			},
			Justification: row.CancelJustification.String,
		}
	}
	return t
}

func rowToLine(row *lineRow) ledger.Line {
	l := ledger.Line{
		ID:            row.ID,
		TransactionID: row.TransactionID,
		Position:      row.Position,
		ItemType:      ledger.ItemType(row.ItemType),
		ItemRefID:     row.ItemRefID,
		UnitPrice:     row.UnitPrice,
		Quantity:      row.Quantity,
		LineTotal:     row.LineTotal,
		Status:        ledger.LineStatus(row.Status),
	}
	if row.Note.Valid {
		note := row.Note.String
		l.Note = &note
	}
	return l
}
