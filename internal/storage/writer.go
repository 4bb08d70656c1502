package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

// Tx is the part of a database transaction the Writer needs.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer is one unit-of-work. Every write made through it commits or rolls
// back together.
type Writer struct {
	tx          Tx
	Transaction transaction.IWriter
	Withdrawal  withdrawal.IWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          tx,
		Transaction: transaction.NewWriter(tx),
		Withdrawal:  withdrawal.NewWriter(tx),
	}
}

// ComposeWriter builds a Writer from its parts.
func ComposeWriter(tx Tx, transactions transaction.IWriter, withdrawals withdrawal.IWriter) *Writer {
	return &Writer{
		tx:          tx,
		Transaction: transactions,
		Withdrawal:  withdrawals,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
