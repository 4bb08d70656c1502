package transaction

import (
	"net/http"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const cancelOp = "transaction.cancel"

// CancelTransactionHandler handles POST /v1/transactions/{id}/cancel.
type CancelTransactionHandler struct {
	TransactionService transactionService
}

func NewCancelTransactionHandler(svc transactionService) *CancelTransactionHandler {
	return &CancelTransactionHandler{TransactionService: svc}
}

func (h *CancelTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := httpio.PathID(req, cancelOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("transaction_id", id.String())

	identity, err := httpio.IdentityFromRequest(req, cancelOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("actor_id", identity.UserID)

	var body httpio.CancelBody
	if err = httpio.DecodeJSON(req, cancelOp, &body); err != nil {
		return httpio.WriteError(w, err)
	}

	cancelled, err := h.TransactionService.Cancel(req.Context(), identity, id, body.Justification)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, toResponse(cancelled))
	return nil
}
