package withdrawal

import (
	"net/http"
	"time"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const createOp = "withdrawal.create"

// CreateWithdrawalBody is the request body for recording a till withdrawal.
// RetraitAt defaults to the time of the request.
type CreateWithdrawalBody struct {
	Amount        string `json:"amount"`
	Justification string `json:"justification,omitempty"`
	RetraitAt     string `json:"retrait_at,omitempty"`
}

// CreateWithdrawalHandler handles POST /v1/withdrawals.
type CreateWithdrawalHandler struct {
	WithdrawalService withdrawalService
}

func NewCreateWithdrawalHandler(svc withdrawalService) *CreateWithdrawalHandler {
	return &CreateWithdrawalHandler{WithdrawalService: svc}
}

func parseCreateWithdrawalBody(body *CreateWithdrawalBody) (ledger.CreateWithdrawalRequest, error) {
	amount, err := httpio.ParseMoney(createOp, "amount", body.Amount)
	if err != nil {
		return ledger.CreateWithdrawalRequest{}, err
	}
	req := ledger.CreateWithdrawalRequest{Amount: amount, Justification: body.Justification}
	if body.RetraitAt != "" {
		at, err := time.Parse(time.RFC3339, body.RetraitAt)
		if err != nil {
			return req, httpio.BadRequest(createOp, "retrait_at", "must be an RFC3339 timestamp")
		}
		req.RetraitAt = at
	}
	return req, nil
}

func (h *CreateWithdrawalHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	identity, err := httpio.IdentityFromRequest(req, createOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("actor_id", identity.UserID)

	var body CreateWithdrawalBody
	if err = httpio.DecodeJSON(req, createOp, &body); err != nil {
		return httpio.WriteError(w, err)
	}

	request, err := parseCreateWithdrawalBody(&body)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	created, err := h.WithdrawalService.Create(req.Context(), identity, request)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	logData.AddData("withdrawal_id", created.ID.String())
	logData.AddData("amount", created.Amount.String())
	httpio.WriteJSON(w, http.StatusCreated, toResponse(created))
	return nil
}
