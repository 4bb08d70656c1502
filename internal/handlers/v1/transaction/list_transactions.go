package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/service"
)

const (
	listOp   = "transaction.list"
	maxLimit = 100
)

// ListTransactionsCursor is the pagination cursor carried in query
// parameters and returned with each page.
type ListTransactionsCursor struct {
	Position  int    `json:"position"`
	Limit     int    `json:"limit"`
	MaxPaidAt string `json:"max_paid_at"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction          `json:"transactions"`
	NextCursor   *ListTransactionsCursor `json:"next_cursor,omitempty"`
}

// ListTransactionsHandler handles GET /v1/transactions. A patient_id or a
// from/to window selects a filtered listing; otherwise the full history is
// paged most recent first.
type ListTransactionsHandler struct {
	TransactionService transactionService
}

func NewListTransactionsHandler(svc transactionService) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// parseListCursor reads position, limit and max_paid_at. It returns nil when
// none of them is present so the service applies its defaults.
func parseListCursor(req *http.Request) (*service.TransactionCursor, error) {
	q := req.URL.Query()
	if q.Get("position") == "" && q.Get("limit") == "" && q.Get("max_paid_at") == "" {
		return nil, nil
	}

	cursor := &service.TransactionCursor{}
	if raw := q.Get("position"); raw != "" {
		position, err := strconv.Atoi(raw)
		if err != nil || position < 0 {
			return nil, httpio.BadRequest(listOp, "position", "must be a non-negative integer")
		}
		cursor.Position = position
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return nil, httpio.BadRequest(listOp, "limit", "must be between 1 and 100")
		}
		cursor.Limit = limit
	}
	maxPaidAt, err := httpio.QueryTime(req, listOp, "max_paid_at")
	if err != nil {
		return nil, err
	}
	if maxPaidAt != nil {
		cursor.MaxPaidAt = *maxPaidAt
	}
	return cursor, nil
}

func (h *ListTransactionsHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	ctx := req.Context()

	window, err := httpio.QueryWindow(req, listOp)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	var rows []*ledger.Transaction
	var next *service.TransactionCursor

	switch {
	case req.URL.Query().Get("patient_id") != "":
		if window.From != nil || window.To != nil {
			return httpio.WriteError(w, httpio.BadRequest(listOp, "patient_id", "cannot be combined with from or to"))
		}
		patientID, perr := strconv.ParseInt(req.URL.Query().Get("patient_id"), 10, 64)
		if perr != nil || patientID <= 0 {
			return httpio.WriteError(w, httpio.BadRequest(listOp, "patient_id", "invalid patient reference"))
		}
		logData.AddData("patient_id", patientID)
		rows, err = h.TransactionService.FindByPatient(ctx, patientID)

	case window.From != nil || window.To != nil:
		rows, err = h.TransactionService.FindByDateRange(ctx, window)

	default:
		cursor, cerr := parseListCursor(req)
		if cerr != nil {
			return httpio.WriteError(w, cerr)
		}
		rows, next, err = h.TransactionService.ListPage(ctx, cursor)
	}
	if err != nil {
		return httpio.WriteError(w, err)
	}

	body := ListTransactionsResponseBody{Transactions: toResponseList(rows)}
	if next != nil {
		body.NextCursor = &ListTransactionsCursor{
			Position:  next.Position,
			Limit:     next.Limit,
			MaxPaidAt: next.MaxPaidAt.UTC().Format(time.RFC3339Nano),
		}
	}

	logData.AddData("count", len(rows))
	httpio.WriteJSON(w, http.StatusOK, body)
	return nil
}
