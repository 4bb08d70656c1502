package transaction

import (
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const updateOp = "transaction.update"

// UpdateTransactionBody is a partial update. Absent fields are left alone;
// an explicit null clears patient_id or advance_amount.
type UpdateTransactionBody struct {
	PatientID     omitnull.Val[int64]  `json:"patient_id"`
	AdvanceAmount omitnull.Val[string] `json:"advance_amount"`
	PaymentMethod omit.Val[string]     `json:"payment_method"`
	Lines         omit.Val[[]LineBody] `json:"lines"`
}

// UpdateTransactionHandler handles PATCH /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionService
}

func NewUpdateTransactionHandler(svc transactionService) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func parseUpdateTransactionBody(body *UpdateTransactionBody) (ledger.TransactionPatch, error) {
	patch := ledger.TransactionPatch{PatientID: body.PatientID}

	if raw, ok := body.AdvanceAmount.Get(); ok {
		advance, err := httpio.ParseMoney(updateOp, "advance_amount", raw)
		if err != nil {
			return patch, err
		}
		patch.AdvanceAmount = omitnull.From(advance)
	} else if body.AdvanceAmount.IsNull() {
		patch.AdvanceAmount = omitnull.FromPtr[decimal.Decimal](nil)
	}

	if method, ok := body.PaymentMethod.Get(); ok {
		patch.PaymentMethod = omit.From(ledger.PaymentMethod(method))
	}

	if bodies, ok := body.Lines.Get(); ok {
		lines, err := parseLines(updateOp, bodies)
		if err != nil {
			return patch, err
		}
		patch.Lines = omit.From(lines)
	}
	return patch, nil
}

func (h *UpdateTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	id, err := httpio.PathID(req, updateOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("transaction_id", id.String())

	var body UpdateTransactionBody
	if err = httpio.DecodeJSON(req, updateOp, &body); err != nil {
		return httpio.WriteError(w, err)
	}

	patch, err := parseUpdateTransactionBody(&body)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	updated, err := h.TransactionService.Update(req.Context(), id, patch)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, toResponse(updated))
	return nil
}
