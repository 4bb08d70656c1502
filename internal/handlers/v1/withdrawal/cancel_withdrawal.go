package withdrawal

import (
	"net/http"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const cancelOp = "withdrawal.cancel"

// CancelWithdrawalHandler handles POST /v1/withdrawals/{id}/cancel.
type CancelWithdrawalHandler struct {
	WithdrawalService withdrawalService
}

func NewCancelWithdrawalHandler(svc withdrawalService) *CancelWithdrawalHandler {
	return &CancelWithdrawalHandler{WithdrawalService: svc}
}

func (h *CancelWithdrawalHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := httpio.PathID(req, cancelOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("withdrawal_id", id.String())

	identity, err := httpio.IdentityFromRequest(req, cancelOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("actor_id", identity.UserID)

	var body httpio.CancelBody
	if err = httpio.DecodeJSON(req, cancelOp, &body); err != nil {
		return httpio.WriteError(w, err)
	}

	cancelled, err := h.WithdrawalService.Cancel(req.Context(), identity, id, body.Justification)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, toResponse(cancelled))
	return nil
}

// GetWithdrawalHandler handles GET /v1/withdrawals/{id}.
type GetWithdrawalHandler struct {
	WithdrawalService withdrawalService
}

func NewGetWithdrawalHandler(svc withdrawalService) *GetWithdrawalHandler {
	return &GetWithdrawalHandler{WithdrawalService: svc}
}

func (h *GetWithdrawalHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := httpio.PathID(req, "withdrawal.get")
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("withdrawal_id", id.String())

	found, err := h.WithdrawalService.Get(req.Context(), id)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, toResponse(found))
	return nil
}
