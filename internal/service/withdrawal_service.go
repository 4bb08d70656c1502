package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/operator/actions"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

// WithdrawalService handles till withdrawals.
type WithdrawalService struct {
	storage  *storage.Storage
	operator Operator
	clock    ledger.Clock
}

func NewWithdrawalService(store *storage.Storage, op Operator, opts Options) *WithdrawalService {
	return &WithdrawalService{
		storage:  store,
		operator: op,
		clock:    opts.Clock,
	}
}

func (s *WithdrawalService) Create(ctx context.Context, identity ledger.Identity, req ledger.CreateWithdrawalRequest) (*ledger.Withdrawal, error) {
	audit, err := ledger.NewAudit(identity, s.clock)
	if err != nil {
		return nil, ledger.WithOp(err, "withdrawal.create")
	}
	if err = ledger.CheckWithdrawal(req); err != nil {
		return nil, err
	}

	create := &withdrawal.Create{Amount: req.Amount}
	if justification := strings.TrimSpace(req.Justification); justification != "" {
		create.Justification = &justification
	}
	if !req.RetraitAt.IsZero() {
		create.RetraitAt = req.RetraitAt.UTC()
	}

	action := &actions.CreateWithdrawal{Create: create, Audit: audit}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// Cancel soft-cancels an active withdrawal. A justification is required.
func (s *WithdrawalService) Cancel(ctx context.Context, identity ledger.Identity, id uuid.UUID, justification string) (*ledger.Withdrawal, error) {
	cancellation, err := ledger.NewCancellation(identity, justification, s.clock)
	if err != nil {
		return nil, ledger.WithOp(err, "withdrawal.cancel")
	}

	action := &actions.CancelWithdrawal{ID: id, Cancellation: cancellation}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *WithdrawalService) Get(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error) {
	return s.storage.Withdrawals.FindByID(ctx, id)
}

// ListFiltered returns matching withdrawals, most recent first.
func (s *WithdrawalService) ListFiltered(ctx context.Context, query WithdrawalQuery) ([]*ledger.Withdrawal, error) {
	filter, err := withdrawalFilter("withdrawal.list", query)
	if err != nil {
		return nil, err
	}
	return s.storage.Withdrawals.List(ctx, filter)
}

// Total sums amount over matching withdrawals. An empty match totals zero.
func (s *WithdrawalService) Total(ctx context.Context, query WithdrawalQuery) (decimal.Decimal, error) {
	filter, err := withdrawalFilter("withdrawal.total", query)
	if err != nil {
		return decimal.Zero, err
	}
	return s.storage.Withdrawals.SumAmount(ctx, filter)
}

func withdrawalFilter(op string, query WithdrawalQuery) (*withdrawal.Filter, error) {
	if query.Status != nil && !query.Status.Valid() {
		return nil, ledger.NewValidationError(op, "status", "unknown status")
	}
	if err := query.Window.Check(op); err != nil {
		return nil, err
	}
	return &withdrawal.Filter{
		Status: query.Status,
		From:   query.Window.From,
		To:     query.Window.To,
	}, nil
}
