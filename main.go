package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/api"
	"github.com/carson-networks/caisse-server/internal/config"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/operator"
	"github.com/carson-networks/caisse-server/internal/service"
	"github.com/carson-networks/caisse-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("caisse-server starting")

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	op := operator.NewOperator(dbStorage, logger, operator.Config{
		Timeout:         envConfig.OperationTimeout,
		MaxAttempts:     envConfig.RetryMaxAttempts,
		InitialInterval: envConfig.RetryInitialInterval,
	})
	svc := service.NewService(dbStorage, op, service.Options{
		Logger:   logger,
		Location: envConfig.LedgerTimezone,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Storage: dbStorage,
		Service: svc,

		AllowedOrigins:       envConfig.CORSAllowedOrigins,
		MaxRequestsPerSecond: envConfig.MaxRequestsPerSecond,
	}
	if err = httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("caisse-server stopped")
}
