package withdrawal

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/service"
)

type withdrawalService interface {
	Create(ctx context.Context, identity ledger.Identity, req ledger.CreateWithdrawalRequest) (*ledger.Withdrawal, error)
	Cancel(ctx context.Context, identity ledger.Identity, id uuid.UUID, justification string) (*ledger.Withdrawal, error)
	Get(ctx context.Context, id uuid.UUID) (*ledger.Withdrawal, error)
	ListFiltered(ctx context.Context, query service.WithdrawalQuery) ([]*ledger.Withdrawal, error)
	Total(ctx context.Context, query service.WithdrawalQuery) (decimal.Decimal, error)
}

// Register mounts every withdrawal endpoint on r.
func Register(r chi.Router, log *logrus.Logger, svc withdrawalService) {
	r.Route("/v1/withdrawals", func(r chi.Router) {
		r.Post("/", logging.LoggingWrapper("CreateWithdrawal", log, NewCreateWithdrawalHandler(svc).Handler))
		r.Get("/", logging.LoggingWrapper("ListWithdrawals", log, NewListWithdrawalsHandler(svc).Handler))
		r.Get("/total", logging.LoggingWrapper("TotalWithdrawals", log, NewTotalWithdrawalsHandler(svc).Handler))
		r.Get("/{id}", logging.LoggingWrapper("GetWithdrawal", log, NewGetWithdrawalHandler(svc).Handler))
		r.Post("/{id}/cancel", logging.LoggingWrapper("CancelWithdrawal", log, NewCancelWithdrawalHandler(svc).Handler))
	})
}

// Withdrawal is the API response model for a withdrawal.
type Withdrawal struct {
	ID            string               `json:"id"`
	Amount        string               `json:"amount"`
	Justification *string              `json:"justification"`
	HandledBy     int64                `json:"handled_by"`
	HandledByName string               `json:"handled_by_name"`
	RetraitAt     string               `json:"retrait_at"`
	Status        string               `json:"status"`
	Cancellation  *httpio.Cancellation `json:"cancellation,omitempty"`
}

func toResponse(w *ledger.Withdrawal) Withdrawal {
	return Withdrawal{
		ID:            w.ID.String(),
		Amount:        httpio.Money(w.Amount),
		Justification: w.Justification,
		HandledBy:     w.HandledBy,
		HandledByName: w.HandledByName,
		RetraitAt:     httpio.FormatTime(w.RetraitAt),
		Status:        string(w.Status),
		Cancellation:  httpio.NewCancellation(w.Cancellation),
	}
}

// parseQuery reads the status, from and to filters shared by list and total.
func parseQuery(req *http.Request, op string) (service.WithdrawalQuery, error) {
	window, err := httpio.QueryWindow(req, op)
	if err != nil {
		return service.WithdrawalQuery{}, err
	}
	query := service.WithdrawalQuery{Window: window}
	if raw := req.URL.Query().Get("status"); raw != "" {
		status := ledger.Status(raw)
		query.Status = &status
	}
	return query, nil
}
