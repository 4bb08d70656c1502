package transaction

import (
	"net/http"
	"time"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const createOp = "transaction.create"

// CreateTransactionBody is the request body for creating a transaction.
// Amount is optional and, when given, must match the line sum.
type CreateTransactionBody struct {
	PatientID     *int64     `json:"patient_id,omitempty"`
	Amount        string     `json:"amount,omitempty"`
	AdvanceAmount *string    `json:"advance_amount,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	PaidAt        string     `json:"paid_at,omitempty"`
	Lines         []LineBody `json:"lines"`
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionService
}

func NewCreateTransactionHandler(svc transactionService) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// parseCreateTransactionBody converts the wire body into a ledger request.
// Only parsing happens here; business rules run in the ledger.
func parseCreateTransactionBody(body *CreateTransactionBody) (ledger.CreateTransactionRequest, error) {
	req := ledger.CreateTransactionRequest{
		PatientID:     body.PatientID,
		PaymentMethod: ledger.PaymentMethod(body.PaymentMethod),
	}

	if body.Amount != "" {
		amount, err := httpio.ParseMoney(createOp, "amount", body.Amount)
		if err != nil {
			return req, err
		}
		req.Amount = &amount
	}

	if body.AdvanceAmount != nil {
		advance, err := httpio.ParseMoney(createOp, "advance_amount", *body.AdvanceAmount)
		if err != nil {
			return req, err
		}
		req.AdvanceAmount = &advance
	}

	if body.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, body.PaidAt)
		if err != nil {
			return req, httpio.BadRequest(createOp, "paid_at", "must be an RFC3339 timestamp")
		}
		req.PaidAt = paidAt
	}

	lines, err := parseLines(createOp, body.Lines)
	if err != nil {
		return req, err
	}
	req.Lines = lines
	return req, nil
}

func (h *CreateTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	identity, err := httpio.IdentityFromRequest(req, createOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("actor_id", identity.UserID)

	var body CreateTransactionBody
	if err = httpio.DecodeJSON(req, createOp, &body); err != nil {
		return httpio.WriteError(w, err)
	}

	request, err := parseCreateTransactionBody(&body)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	created, err := h.TransactionService.Create(req.Context(), identity, request)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	logData.AddData("transaction_id", created.ID.String())
	logData.AddData("amount", created.Amount.String())
	httpio.WriteJSON(w, http.StatusCreated, toResponse(created))
	return nil
}
