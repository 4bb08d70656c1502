package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/handlers/v1/report"
	"github.com/carson-networks/caisse-server/internal/handlers/v1/status"
	"github.com/carson-networks/caisse-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/caisse-server/internal/handlers/v1/withdrawal"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/service"
	"github.com/carson-networks/caisse-server/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service

	AllowedOrigins       []string
	MaxRequestsPerSecond int
}

// Router builds the chi router with every v1 endpoint mounted.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	origins := r.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", httpio.HeaderUserID, httpio.HeaderUserName, httpio.HeaderUserRoles},
		MaxAge:         300,
	}))
	if r.MaxRequestsPerSecond > 0 {
		router.Use(httprate.LimitByIP(r.MaxRequestsPerSecond, time.Second))
	}

	statusHandler := status.NewHandler(r.Storage.DB)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	transaction.Register(router, r.Logger, r.Service.Transaction)
	withdrawal.Register(router, r.Logger, r.Service.Withdrawal)
	report.Register(router, r.Logger, r.Service.Ledger)

	return otelhttp.NewHandler(router, "caisse-server")
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.forced shutdown")
		return err
	}
	return nil
}
