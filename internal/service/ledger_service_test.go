package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

// -- DailyTotal tests --

func TestDailyTotal_HalfOpenDayWindow(t *testing.T) {
	h := newTestHarness(t)

	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	h.transactions.EXPECT().SumAmount(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Status != nil && *f.Status == ledger.StatusActive &&
			f.From.Equal(dayStart) &&
			f.Until.Equal(dayStart.AddDate(0, 0, 1)) &&
			f.To == nil
	})).Return(decimal.RequireFromString("200.00"), nil)

	total, err := h.svc.Ledger.DailyTotal(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("200.00")))
}

func TestDailyTotal_UsesLedgerLocation(t *testing.T) {
	h := newTestHarness(t)
	loc := time.FixedZone("WAT", 3600)
	h.svc.Ledger.location = loc

	// 23:30 UTC on the 13th is already the 14th in WAT.
	date := time.Date(2025, 3, 13, 23, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)

	h.transactions.EXPECT().SumAmount(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.From.Equal(dayStart) && f.Until.Equal(dayStart.AddDate(0, 0, 1))
	})).Return(decimal.Zero, nil)

	_, err := h.svc.Ledger.DailyTotal(context.Background(), date)

	assert.NoError(t, err)
}

// -- NetBalance tests --

func TestNetBalance_Identity(t *testing.T) {
	h := newTestHarness(t)

	from, to := fixedNow.Add(-24*time.Hour), fixedNow
	h.transactions.EXPECT().SumAmount(mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return *f.Status == ledger.StatusActive && f.From.Equal(from) && f.To.Equal(to)
	})).Return(decimal.RequireFromString("200.00"), nil)
	h.withdrawals.EXPECT().SumAmount(mock.Anything, mock.MatchedBy(func(f *withdrawal.Filter) bool {
		return *f.Status == ledger.StatusActive && f.From.Equal(from) && f.To.Equal(to)
	})).Return(decimal.RequireFromString("50.00"), nil)

	balance, err := h.svc.Ledger.NetBalance(context.Background(), ledger.NewWindow(from, to))

	require.NoError(t, err)
	assert.True(t, balance.Transactions.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, balance.Withdrawals.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, balance.Net.Equal(decimal.RequireFromString("150.00")))
}

func TestNetBalance_EmptyWindowIsZero(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().SumAmount(mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	h.withdrawals.EXPECT().SumAmount(mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	balance, err := h.svc.Ledger.NetBalance(context.Background(), ledger.NewWindow(fixedNow, fixedNow))

	require.NoError(t, err)
	assert.True(t, balance.Net.IsZero())
}

func TestNetBalance_NegativeAllowed(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().SumAmount(mock.Anything, mock.Anything).Return(decimal.RequireFromString("10.00"), nil)
	h.withdrawals.EXPECT().SumAmount(mock.Anything, mock.Anything).Return(decimal.RequireFromString("25.50"), nil)

	balance, err := h.svc.Ledger.NetBalance(context.Background(), ledger.Window{})

	require.NoError(t, err)
	assert.Equal(t, "-15.5", balance.Net.String())
}

func TestNetBalance_StorageError(t *testing.T) {
	h := newTestHarness(t)

	h.transactions.EXPECT().SumAmount(mock.Anything, mock.Anything).Return(decimal.Zero, errors.New("timeout"))

	balance, err := h.svc.Ledger.NetBalance(context.Background(), ledger.Window{})

	assert.Error(t, err)
	assert.Nil(t, balance)
}

func TestTotalTransactions_InvertedWindow(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.svc.Ledger.TotalTransactions(context.Background(), ledger.NewWindow(fixedNow, fixedNow.Add(-time.Second)))

	assert.ErrorIs(t, err, ledger.ErrValidation)
}
