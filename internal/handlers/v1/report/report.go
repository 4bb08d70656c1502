package report

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/service"
)

type ledgerService interface {
	Location() *time.Location
	DailyTotal(ctx context.Context, date time.Time) (decimal.Decimal, error)
	NetBalance(ctx context.Context, window ledger.Window) (*service.NetBalance, error)
}

// Register mounts the aggregate endpoints on r.
func Register(r chi.Router, log *logrus.Logger, svc ledgerService) {
	r.Get("/v1/ledger/daily-total", logging.LoggingWrapper("DailyTotal", log, NewDailyTotalHandler(svc).Handler))
	r.Get("/v1/ledger/net-balance", logging.LoggingWrapper("NetBalance", log, NewNetBalanceHandler(svc).Handler))
}

// DailyTotalResponseBody is the response body of the daily total endpoint.
type DailyTotalResponseBody struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Total    string `json:"total"`
}

// DailyTotalHandler handles GET /v1/ledger/daily-total?date=YYYY-MM-DD.
type DailyTotalHandler struct {
	LedgerService ledgerService
}

func NewDailyTotalHandler(svc ledgerService) *DailyTotalHandler {
	return &DailyTotalHandler{LedgerService: svc}
}

func (h *DailyTotalHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	loc := h.LedgerService.Location()
	date, err := httpio.QueryDate(req, "ledger.daily_total", "date", loc)
	if err != nil {
		return httpio.WriteError(w, err)
	}
	logData.AddData("date", date.Format(time.DateOnly))

	total, err := h.LedgerService.DailyTotal(req.Context(), date)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	httpio.WriteJSON(w, http.StatusOK, DailyTotalResponseBody{
		Date:     date.Format(time.DateOnly),
		Timezone: date.Location().String(),
		Total:    httpio.Money(total),
	})
	return nil
}

// NetBalanceResponseBody carries the net balance with both of its operands.
type NetBalanceResponseBody struct {
	From         *string `json:"from"`
	To           *string `json:"to"`
	Transactions string  `json:"transactions"`
	Withdrawals  string  `json:"withdrawals"`
	Net          string  `json:"net"`
}

// NetBalanceHandler handles GET /v1/ledger/net-balance?from&to.
type NetBalanceHandler struct {
	LedgerService ledgerService
}

func NewNetBalanceHandler(svc ledgerService) *NetBalanceHandler {
	return &NetBalanceHandler{LedgerService: svc}
}

func (h *NetBalanceHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	window, err := httpio.QueryWindow(req, "ledger.net_balance")
	if err != nil {
		return httpio.WriteError(w, err)
	}

	balance, err := h.LedgerService.NetBalance(req.Context(), window)
	if err != nil {
		return httpio.WriteError(w, err)
	}

	logData.AddData("net", balance.Net.String())
	httpio.WriteJSON(w, http.StatusOK, NetBalanceResponseBody{
		From:         formatBound(window.From),
		To:           formatBound(window.To),
		Transactions: httpio.Money(balance.Transactions),
		Withdrawals:  httpio.Money(balance.Withdrawals),
		Net:          httpio.Money(balance.Net),
	})
	return nil
}

func formatBound(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := httpio.FormatTime(*t)
	return &s
}
