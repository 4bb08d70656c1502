package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/operator/actions"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator Operator
	clock    ledger.Clock
	logger   *logrus.Logger
}

func NewTransactionService(store *storage.Storage, op Operator, opts Options) *TransactionService {
	return &TransactionService{
		storage:  store,
		operator: op,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
}

// Create validates req, stamps it with identity and stores the header and
// its lines in one unit-of-work.
func (s *TransactionService) Create(ctx context.Context, identity ledger.Identity, req ledger.CreateTransactionRequest) (*ledger.Transaction, error) {
	audit, err := ledger.NewAudit(identity, s.clock)
	if err != nil {
		return nil, ledger.WithOp(err, "transaction.create")
	}

	draft, err := ledger.DraftTransaction(req, s.clock)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		Draft:    draft,
		Audit:    audit,
		Patients: s.storage.Patients,
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// Update applies patch to an active transaction.
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (*ledger.Transaction, error) {
	if patch.Empty() {
		return nil, ledger.NewValidationError("transaction.update", "", "nothing to update")
	}

	action := &actions.UpdateTransaction{
		ID:       id,
		Patch:    patch,
		Patients: s.storage.Patients,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *TransactionService) Cancel(ctx context.Context, identity ledger.Identity, id uuid.UUID, justification string) (*ledger.Transaction, error) {
	cancellation, err := ledger.NewCancellation(identity, justification, s.clock)
	if err != nil {
		return nil, ledger.WithOp(err, "transaction.cancel")
	}

	action := &actions.CancelTransaction{
		ID:           id,
		Cancellation: cancellation,
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// Delete physically removes a transaction and its lines. Only administrators
// may call it.
func (s *TransactionService) Delete(ctx context.Context, identity ledger.Identity, id uuid.UUID) error {
	const op = "transaction.delete"

	if _, err := ledger.NewAudit(identity, s.clock); err != nil {
		return ledger.WithOp(err, op)
	}
	if !identity.HasRole(ledger.RoleAdmin) {
		return ledger.NewValidationError(op, "actor", "administrator role required")
	}

	entry := s.logger.WithFields(logrus.Fields{
		"transaction_id": id.String(),
		"actor_id":       identity.UserID,
		"actor_name":     identity.DisplayName,
	})
	if err := s.operator.Process(ctx, &actions.DeleteTransaction{ID: id}); err != nil {
		entry.WithError(err).Warn("TransactionService.Delete.Failed")
		return err
	}
	entry.Warn("TransactionService.Delete.Purged")
	return nil
}

// Get returns the transaction with every line, active or void.
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return s.storage.Transactions.FindByID(ctx, id)
}

// List returns every transaction, active and cancelled, most recent first.
func (s *TransactionService) List(ctx context.Context) ([]*ledger.Transaction, error) {
	return s.storage.Transactions.List(ctx, nil)
}

func (s *TransactionService) FindByPatient(ctx context.Context, patientID int64) ([]*ledger.Transaction, error) {
	return s.storage.Transactions.List(ctx, &transaction.Filter{PatientID: &patientID})
}

// FindByDateRange returns transactions whose paid_at lies in window, bounds
// included.
func (s *TransactionService) FindByDateRange(ctx context.Context, window ledger.Window) ([]*ledger.Transaction, error) {
	if err := window.Check("transaction.find_by_date_range"); err != nil {
		return nil, err
	}
	return s.storage.Transactions.List(ctx, &transaction.Filter{From: window.From, To: window.To})
}

// ListPage returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListPage(ctx context.Context, cursor *TransactionCursor) ([]*ledger.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxPaidAt *time.Time
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		if !cursor.MaxPaidAt.IsZero() {
			maxPaidAt = &cursor.MaxPaidAt
		}
	}

	filter := &transaction.Filter{
		To:     maxPaidAt,
		Limit:  limit + 1,
		Offset: offset,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxPaidAt := rows[0].PaidAt
		if maxPaidAt != nil {
			cursorMaxPaidAt = *maxPaidAt
		}

		nextCursor = &TransactionCursor{
			Position:  offset + limit,
			Limit:     limit,
			MaxPaidAt: cursorMaxPaidAt,
		}
	}

	return rows, nextCursor, nil
}
