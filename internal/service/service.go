package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/operator/actions"
	"github.com/carson-networks/caisse-server/internal/storage"
)

// Operator runs actions as one unit-of-work.
type Operator interface {
	Process(ctx context.Context, acts ...actions.IAction) error
}

type Options struct {
	Logger *logrus.Logger

	// Clock stamps audit records. Defaults to time.Now.
	Clock ledger.Clock

	// Location bounds calendar days for daily totals. Defaults to UTC.
	Location *time.Location
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Withdrawal  *WithdrawalService
	Ledger      *LedgerService
}

func NewService(store *storage.Storage, op Operator, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		Transaction: NewTransactionService(store, op, opts),
		Withdrawal:  NewWithdrawalService(store, op, opts),
		Ledger:      NewLedgerService(store, opts),
	}
}
