package transaction

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/service"
)

// transactionService is the slice of service.TransactionService the
// handlers use.
type transactionService interface {
	Create(ctx context.Context, identity ledger.Identity, req ledger.CreateTransactionRequest) (*ledger.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (*ledger.Transaction, error)
	Cancel(ctx context.Context, identity ledger.Identity, id uuid.UUID, justification string) (*ledger.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	FindByPatient(ctx context.Context, patientID int64) ([]*ledger.Transaction, error)
	FindByDateRange(ctx context.Context, window ledger.Window) ([]*ledger.Transaction, error)
	ListPage(ctx context.Context, cursor *service.TransactionCursor) ([]*ledger.Transaction, *service.TransactionCursor, error)
}

// Register mounts every transaction endpoint on r.
func Register(r chi.Router, log *logrus.Logger, svc transactionService) {
	r.Route("/v1/transactions", func(r chi.Router) {
		r.Post("/", logging.LoggingWrapper("CreateTransaction", log, NewCreateTransactionHandler(svc).Handler))
		r.Get("/", logging.LoggingWrapper("ListTransactions", log, NewListTransactionsHandler(svc).Handler))
		r.Get("/{id}", logging.LoggingWrapper("GetTransaction", log, NewGetTransactionHandler(svc).Handler))
		r.Patch("/{id}", logging.LoggingWrapper("UpdateTransaction", log, NewUpdateTransactionHandler(svc).Handler))
		r.Post("/{id}/cancel", logging.LoggingWrapper("CancelTransaction", log, NewCancelTransactionHandler(svc).Handler))
	})
}

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID            string               `json:"id"`
	PatientID     *int64               `json:"patient_id"`
	Amount        string               `json:"amount"`
	AdvanceAmount *string              `json:"advance_amount"`
	PaymentMethod string               `json:"payment_method"`
	Status        string               `json:"status"`
	CreatedBy     int64                `json:"created_by"`
	CreatedByName string               `json:"created_by_name"`
	PaidAt        string               `json:"paid_at"`
	Cancellation  *httpio.Cancellation `json:"cancellation,omitempty"`
	Lines         []Line               `json:"lines"`
}

// Line is the API response model for a transaction line.
type Line struct {
	ID        string  `json:"id"`
	Position  int     `json:"position"`
	ItemType  string  `json:"item_type"`
	ItemRefID int64   `json:"item_ref_id"`
	UnitPrice string  `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal string  `json:"line_total"`
	Note      *string `json:"note"`
	Status    string  `json:"status"`
}

func toResponse(t *ledger.Transaction) Transaction {
	lines := make([]Line, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = Line{
			ID:        l.ID.String(),
			Position:  l.Position,
			ItemType:  string(l.ItemType),
			ItemRefID: l.ItemRefID,
			UnitPrice: httpio.Money(l.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: httpio.Money(l.LineTotal),
			Note:      l.Note,
			Status:    string(l.Status),
		}
	}
	return Transaction{
		ID:            t.ID.String(),
		PatientID:     t.PatientID,
		Amount:        httpio.Money(t.Amount),
		AdvanceAmount: httpio.MoneyPtr(t.AdvanceAmount),
		PaymentMethod: string(t.PaymentMethod),
		Status:        string(t.Status),
		CreatedBy:     t.CreatedBy,
		CreatedByName: t.CreatedByName,
		PaidAt:        httpio.FormatTime(t.PaidAt),
		Cancellation:  httpio.NewCancellation(t.Cancellation),
		Lines:         lines,
	}
}

func toResponseList(ts []*ledger.Transaction) []Transaction {
	out := make([]Transaction, len(ts))
	for i, t := range ts {
		out[i] = toResponse(t)
	}
	return out
}

// LineBody is a line as submitted in create and update bodies.
type LineBody struct {
	ItemType  string `json:"item_type"`
	ItemRefID int64  `json:"item_ref_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

func parseLines(op string, bodies []LineBody) ([]ledger.LineRequest, error) {
	lines := make([]ledger.LineRequest, len(bodies))
	for i, b := range bodies {
		price, err := httpio.ParseMoney(op, "unit_price", b.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines[i] = ledger.LineRequest{
			ItemType:  ledger.ItemType(b.ItemType),
			ItemRefID: b.ItemRefID,
			UnitPrice: price,
			Quantity:  b.Quantity,
			Note:      b.Note,
		}
	}
	return lines, nil
}
