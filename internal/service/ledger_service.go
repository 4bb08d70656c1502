package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

// LedgerService answers read-only financial questions across transactions
// and withdrawals. Cancelled records never count.
type LedgerService struct {
	storage  *storage.Storage
	location *time.Location
}

func NewLedgerService(store *storage.Storage, opts Options) *LedgerService {
	return &LedgerService{
		storage:  store,
		location: opts.Location,
	}
}

func (s *LedgerService) Location() *time.Location {
	return s.location
}

// DailyTotal sums active transactions paid on the calendar day containing
// date, in the ledger time zone.
func (s *LedgerService) DailyTotal(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	start, end := ledger.Day(date, s.location)
	active := ledger.StatusActive
	return s.storage.Transactions.SumAmount(ctx, &transaction.Filter{
		Status: &active,
		From:   &start,
		Until:  &end,
	})
}

// TotalTransactions sums active transactions paid within window.
func (s *LedgerService) TotalTransactions(ctx context.Context, window ledger.Window) (decimal.Decimal, error) {
	if err := window.Check("ledger.total_transactions"); err != nil {
		return decimal.Zero, err
	}
	return s.totalTransactions(ctx, window)
}

// NetBalance is TotalTransactions minus active withdrawals over the same
// window.
func (s *LedgerService) NetBalance(ctx context.Context, window ledger.Window) (*NetBalance, error) {
	if err := window.Check("ledger.net_balance"); err != nil {
		return nil, err
	}

	collected, err := s.totalTransactions(ctx, window)
	if err != nil {
		return nil, err
	}

	active := ledger.StatusActive
	withdrawn, err := s.storage.Withdrawals.SumAmount(ctx, &withdrawal.Filter{
		Status: &active,
		From:   window.From,
		To:     window.To,
	})
	if err != nil {
		return nil, err
	}

	return &NetBalance{
		Window:       window,
		Transactions: collected,
		Withdrawals:  withdrawn,
		Net:          collected.Sub(withdrawn),
	}, nil
}

func (s *LedgerService) totalTransactions(ctx context.Context, window ledger.Window) (decimal.Decimal, error) {
	active := ledger.StatusActive
	return s.storage.Transactions.SumAmount(ctx, &transaction.Filter{
		Status: &active,
		From:   window.From,
		To:     window.To,
	})
}
