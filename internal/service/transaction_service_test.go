package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
)

func makeTransactions(n int, paidAt time.Time) []*ledger.Transaction {
	rows := make([]*ledger.Transaction, n)
	for i := range rows {
		rows[i] = &ledger.Transaction{
			ID:            uuid.Must(uuid.NewV4()),
			Amount:        decimal.RequireFromString("5.00"),
			PaymentMethod: ledger.PaymentCash,
			Status:        ledger.StatusActive,
			PaidAt:        paidAt,
		}
	}
	return rows
}

func consultationRequest(patientID *int64) ledger.CreateTransactionRequest {
	return ledger.CreateTransactionRequest{
		PatientID:     patientID,
		PaymentMethod: ledger.PaymentCash,
		Lines: []ledger.LineRequest{
			{ItemType: ledger.ItemConsultation, ItemRefID: 12, UnitPrice: decimal.RequireFromString("100.00"), Quantity: 1},
			{ItemType: ledger.ItemLabExam, ItemRefID: 31, UnitPrice: decimal.RequireFromString("25.00"), Quantity: 2},
		},
	}
}

// -- Create tests --

func TestCreate_Success(t *testing.T) {
	h := newTestHarness(t)

	created := makeTransactions(1, fixedNow)[0]
	h.patients.EXPECT().Resolve(mock.Anything, int64(42)).
		Return(&ledger.PatientSummary{ID: 42, FullName: "Jean Mbarga"}, nil)
	h.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(d *ledger.TransactionDraft) bool {
		return d.Amount.Equal(decimal.RequireFromString("150.00")) &&
			len(d.Lines) == 2 &&
			d.Lines[1].LineTotal.Equal(decimal.RequireFromString("50.00")) &&
			d.PaidAt.Equal(fixedNow)
	}), ledger.Audit{ActorID: 7, ActorName: "Awa Ndiaye", At: fixedNow}).Return(created, nil)

	result, err := h.svc.Transaction.Create(context.Background(), cashier(), consultationRequest(int64Ptr(42)))

	require.NoError(t, err)
	assert.Equal(t, created, result)
	assert.Equal(t, 1, h.tx.commits)
}

func TestCreate_PatientRequired(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.svc.Transaction.Create(context.Background(), cashier(), consultationRequest(nil))

	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.Nil(t, result)
	assert.Equal(t, 0, h.tx.commits+h.tx.rollbacks, "no unit-of-work opened")
}

func TestCreate_UnknownPatientRollsBack(t *testing.T) {
	h := newTestHarness(t)

	h.patients.EXPECT().Resolve(mock.Anything, int64(999)).Return(nil, ledger.ErrPatientNotFound)

	result, err := h.svc.Transaction.Create(context.Background(), cashier(), consultationRequest(int64Ptr(999)))

	assert.ErrorIs(t, err, ledger.ErrReference)
	assert.Nil(t, result)
	assert.Equal(t, 1, h.tx.rollbacks)
	assert.Equal(t, 0, h.tx.commits)
}

func TestCreate_MissingIdentity(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.svc.Transaction.Create(context.Background(), ledger.Identity{}, consultationRequest(int64Ptr(42)))

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestCreate_ExplicitAmountMismatch(t *testing.T) {
	h := newTestHarness(t)

	req := consultationRequest(int64Ptr(42))
	amount := decimal.RequireFromString("149.99")
	req.Amount = &amount

	_, err := h.svc.Transaction.Create(context.Background(), cashier(), req)

	var lerr *ledger.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ledger.KindValidation, lerr.Kind)
	assert.Equal(t, "amount", lerr.Field)
}

func TestCreate_StorageConflict(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().Insert(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ledger.NewConflictError("transaction.create", "the change violates a ledger constraint"))

	req := ledger.CreateTransactionRequest{
		PaymentMethod: ledger.PaymentMobileMoney,
		Lines: []ledger.LineRequest{
			{ItemType: ledger.ItemPharmacy, ItemRefID: 4, UnitPrice: decimal.RequireFromString("3.20"), Quantity: 5},
		},
	}
	_, err := h.svc.Transaction.Create(context.Background(), cashier(), req)

	assert.ErrorIs(t, err, ledger.ErrConflict)
	assert.Equal(t, 1, h.tx.rollbacks)
}

// -- Update tests --

func TestUpdate_EmptyPatch(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.svc.Transaction.Update(context.Background(), uuid.Must(uuid.NewV4()), ledger.TransactionPatch{})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestUpdate_PaymentMethod(t *testing.T) {
	h := newTestHarness(t)

	current := makeTransactions(1, fixedNow)[0]
	h.transactions.EXPECT().FindByIDForUpdate(mock.Anything, current.ID).Return(current, nil)
	h.transactions.EXPECT().Update(mock.Anything, current.ID, mock.Anything).Return(nil)
	h.transactions.EXPECT().FindByID(mock.Anything, current.ID).Return(current, nil)

	patch := ledger.TransactionPatch{PaymentMethod: omit.From(ledger.PaymentCheque)}
	result, err := h.svc.Transaction.Update(context.Background(), current.ID, patch)

	require.NoError(t, err)
	assert.Equal(t, current.ID, result.ID)
	assert.Equal(t, 1, h.tx.commits)
}

// -- Cancel tests --

func TestCancel_BlankJustification(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.svc.Transaction.Cancel(context.Background(), cashier(), uuid.Must(uuid.NewV4()), "   ")

	var lerr *ledger.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "justification", lerr.Field)
}

func TestCancel_Twice(t *testing.T) {
	h := newTestHarness(t)

	current := makeTransactions(1, fixedNow)[0]
	cancelled := *current
	cancelled.Status = ledger.StatusCancelled

	h.transactions.EXPECT().FindByIDForUpdate(mock.Anything, current.ID).Return(current, nil).Once()
	h.transactions.EXPECT().Cancel(mock.Anything, current.ID, mock.MatchedBy(func(c ledger.Cancellation) bool {
		return c.ActorID == 7 && c.Justification == "wrong patient" && c.At.Equal(fixedNow)
	})).Return(nil).Once()
	h.transactions.EXPECT().FindByID(mock.Anything, current.ID).Return(&cancelled, nil).Once()

	first, err := h.svc.Transaction.Cancel(context.Background(), cashier(), current.ID, "wrong patient")
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCancelled, first.Status)

	h.transactions.EXPECT().FindByIDForUpdate(mock.Anything, current.ID).Return(&cancelled, nil).Once()

	second, err := h.svc.Transaction.Cancel(context.Background(), cashier(), current.ID, "again")

	assert.ErrorIs(t, err, ledger.ErrConflict)
	assert.Nil(t, second)
	assert.True(t, cancelled.Amount.Equal(current.Amount))
}

// -- Delete tests --

func TestDelete_RequiresAdmin(t *testing.T) {
	h := newTestHarness(t)

	err := h.svc.Transaction.Delete(context.Background(), cashier(), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.Empty(t, h.logs.AllEntries())
}

func TestDelete_LogsWarning(t *testing.T) {
	h := newTestHarness(t)

	id := uuid.Must(uuid.NewV4())
	h.transactions.EXPECT().Delete(mock.Anything, id).Return(nil)

	err := h.svc.Transaction.Delete(context.Background(), administrator(), id)

	require.NoError(t, err)
	entry := h.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, id.String(), entry.Data["transaction_id"])
	assert.Equal(t, int64(1), entry.Data["actor_id"])
}

func TestDelete_NotFound(t *testing.T) {
	h := newTestHarness(t)

	id := uuid.Must(uuid.NewV4())
	h.transactions.EXPECT().Delete(mock.Anything, id).
		Return(ledger.NewNotFoundError("transaction.delete", "transaction not found"))

	err := h.svc.Transaction.Delete(context.Background(), administrator(), id)

	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, 1, h.tx.rollbacks)
}

// -- Read tests --

func TestFindByPatient(t *testing.T) {
	h := newTestHarness(t)

	rows := makeTransactions(2, fixedNow)
	h.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.PatientID != nil && *f.PatientID == 42 && f.Status == nil
	})).Return(rows, nil)

	result, err := h.svc.Transaction.FindByPatient(context.Background(), 42)

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestFindByDateRange_InvertedWindow(t *testing.T) {
	h := newTestHarness(t)

	window := ledger.NewWindow(fixedNow, fixedNow.Add(-time.Hour))
	_, err := h.svc.Transaction.FindByDateRange(context.Background(), window)

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestFindByDateRange_InclusiveBounds(t *testing.T) {
	h := newTestHarness(t)

	from, to := fixedNow.Add(-24*time.Hour), fixedNow
	h.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.From.Equal(from) && f.To.Equal(to) && f.Until == nil
	})).Return(nil, nil)

	result, err := h.svc.Transaction.FindByDateRange(context.Background(), ledger.NewWindow(from, to))

	assert.NoError(t, err)
	assert.Empty(t, result)
}

// -- ListPage tests --

func TestListPage_NoResults(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().List(mock.Anything, mock.Anything).Return([]*ledger.Transaction{}, nil)

	txs, nextCursor, err := h.svc.Transaction.ListPage(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListPage_SinglePage(t *testing.T) {
	h := newTestHarness(t)

	rows := makeTransactions(2, fixedNow)
	h.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Limit == defaultLimit+1 && f.Offset == 0 && f.To == nil
	})).Return(rows, nil)

	txs, nextCursor, err := h.svc.Transaction.ListPage(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)
}

func TestListPage_HasNextPage(t *testing.T) {
	h := newTestHarness(t)

	rows := makeTransactions(defaultLimit+1, fixedNow)
	h.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := h.svc.Transaction.ListPage(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")
	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, fixedNow, nextCursor.MaxPaidAt, "derived from first row")
}

func TestListPage_WithCursor(t *testing.T) {
	h := newTestHarness(t)

	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rows := makeTransactions(3, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))

	h.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Limit == 3 && f.Offset == 20 && f.To != nil && f.To.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := h.svc.Transaction.ListPage(context.Background(), &TransactionCursor{
		Position:  20,
		Limit:     2,
		MaxPaidAt: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	require.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, cursorTime, nextCursor.MaxPaidAt, "echoed from cursor, not overridden by row data")
}

func TestListPage_StorageError(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := h.svc.Transaction.ListPage(context.Background(), nil)

	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}
