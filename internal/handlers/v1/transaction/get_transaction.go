package transaction

import (
	"net/http"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/logging"
)

// GetTransactionHandler handles GET /v1/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionService
}

func NewGetTransactionHandler(svc transactionService) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := httpio.PathID(req, "transaction.get")
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("transaction_id", id.String())

	found, err := h.TransactionService.Get(req.Context(), id)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, toResponse(found))
	return nil
}
