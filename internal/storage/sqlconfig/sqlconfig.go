package sqlconfig

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// Table names owned by the ledger.
const (
	TransactionsTable     = "transactions"
	TransactionLinesTable = "transaction_lines"
	WithdrawalsTable      = "withdrawals"
)

// PatientsTable belongs to the patient module and is only read.
const PatientsTable = "patients"

// TranslateError maps a driver error onto a ledger error kind. Integrity
// violations become conflicts with a generic message so engine text never
// reaches callers.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if ledger.KindOf(err) != ledger.KindUnknown {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.NewNotFoundError(op, "record not found")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "23":
			return ledger.NewConflictError(op, "the change violates a ledger constraint")
		case pqErr.Code == "40001", pqErr.Code == "40P01", pqErr.Code == "57P01",
			pqErr.Code.Class() == "08":
			return ledger.NewUnexpectedStoreError(op, err, true)
		}
		return ledger.NewUnexpectedStoreError(op, err, false)
	}

	if errors.Is(err, driver.ErrBadConn) {
		return ledger.NewUnexpectedStoreError(op, err, true)
	}
	return ledger.NewUnexpectedStoreError(op, err, false)
}
