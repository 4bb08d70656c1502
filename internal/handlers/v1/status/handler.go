package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/logging"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	DB Pinger
}

func NewHandler(db Pinger) Handler {
	return Handler{DB: db}
}

type Body struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
	defer cancel()

	endTimer := logData.AddTiming("db_ping")
	err := h.DB.PingContext(ctx)
	endTimer()

	if err != nil {
		httpio.WriteJSON(w, http.StatusServiceUnavailable, Body{Status: "degraded", Database: "unreachable"})
		return err
	}

	httpio.WriteJSON(w, http.StatusOK, Body{Status: "ok", Database: "ok"})
	return nil
}
