package withdrawal

import (
	"net/http"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/logging"
)

// ListWithdrawalsResponseBody is the response body for listing withdrawals.
type ListWithdrawalsResponseBody struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

// ListWithdrawalsHandler handles GET /v1/withdrawals.
type ListWithdrawalsHandler struct {
	WithdrawalService withdrawalService
}

func NewListWithdrawalsHandler(svc withdrawalService) *ListWithdrawalsHandler {
	return &ListWithdrawalsHandler{WithdrawalService: svc}
}

func (h *ListWithdrawalsHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	query, err := parseQuery(req, "withdrawal.list")
	if err != nil {
		return httpio.WriteError(w, err)
	}

	rows, err := h.WithdrawalService.ListFiltered(req.Context(), query)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	out := make([]Withdrawal, len(rows))
	for i, row := range rows {
		out[i] = toResponse(row)
	}

	logData.AddData("count", len(rows))
	httpio.WriteJSON(w, http.StatusOK, ListWithdrawalsResponseBody{Withdrawals: out})
	return nil
}

// TotalWithdrawalsResponseBody is the response body of the total endpoint.
type TotalWithdrawalsResponseBody struct {
	Total string `json:"total"`
}

// TotalWithdrawalsHandler handles GET /v1/withdrawals/total.
type TotalWithdrawalsHandler struct {
	WithdrawalService withdrawalService
}

func NewTotalWithdrawalsHandler(svc withdrawalService) *TotalWithdrawalsHandler {
	return &TotalWithdrawalsHandler{WithdrawalService: svc}
}

func (h *TotalWithdrawalsHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	query, err := parseQuery(req, "withdrawal.total")
	if err != nil {
		return httpio.WriteError(w, err)
	}

	total, err := h.WithdrawalService.Total(req.Context(), query)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	logData.AddData("total", total.String())
	httpio.WriteJSON(w, http.StatusOK, TotalWithdrawalsResponseBody{Total: httpio.Money(total)})
	return nil
}
