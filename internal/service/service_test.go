package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/operator"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type countingTx struct {
	commits   int
	rollbacks int
}

func (c *countingTx) Commit(context.Context) error {
	c.commits++
	return nil
}

func (c *countingTx) Rollback(context.Context) error {
	c.rollbacks++
	return nil
}

type mockWriterFactory struct {
	tx           *countingTx
	transactions *transaction.MockIWriter
	withdrawals  *withdrawal.MockIWriter
}

func (f *mockWriterFactory) Write(context.Context) (*storage.Writer, error) {
	return storage.ComposeWriter(f.tx, f.transactions, f.withdrawals), nil
}

type testHarness struct {
	svc          *Service
	tx           *countingTx
	transactions *transaction.MockIWriter
	withdrawals  *withdrawal.MockIWriter
	patients     *ledger.MockPatientDirectory
	logs         *test.Hook
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	h := &testHarness{
		tx:           &countingTx{},
		transactions: transaction.NewMockIWriter(t),
		withdrawals:  withdrawal.NewMockIWriter(t),
		patients:     ledger.NewMockPatientDirectory(t),
	}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h.logs = hook

	store := &storage.Storage{
		Transactions: h.transactions,
		Withdrawals:  h.withdrawals,
		Patients:     h.patients,
	}
	factory := &mockWriterFactory{tx: h.tx, transactions: h.transactions, withdrawals: h.withdrawals}
	op := operator.NewOperator(factory, logger, operator.Config{MaxAttempts: 1})

	h.svc = NewService(store, op, Options{
		Logger:   logger,
		Clock:    func() time.Time { return fixedNow },
		Location: time.UTC,
	})
	return h
}

func cashier() ledger.Identity {
	return ledger.Identity{UserID: 7, DisplayName: "Awa Ndiaye"}
}

func administrator() ledger.Identity {
	return ledger.Identity{UserID: 1, DisplayName: "Paul Essomba", Roles: []string{ledger.RoleAdmin}}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}
