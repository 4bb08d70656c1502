package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/caisse-server/internal/storage/patient"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

type Reader struct {
	Transactions *transaction.Reader
	Withdrawals  *withdrawal.Reader
	Patients     *patient.Directory
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: transaction.NewReader(exec),
		Withdrawals:  withdrawal.NewReader(exec),
		Patients:     patient.NewDirectory(exec),
	}
}
