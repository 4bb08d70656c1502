package main

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/caisse-server/internal/config"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/logging"
	"github.com/carson-networks/caisse-server/internal/operator"
	"github.com/carson-networks/caisse-server/internal/service"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/migrations"
)

// deps is everything a command needs once the database is reachable.
type deps struct {
	logger  *logrus.Logger
	storage *storage.Storage
	service *service.Service
}

type connector func() (*deps, error)

func connectEnv() (*deps, error) {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}
	logger := logging.SetupLogging(env.LogLevel)

	store, err := storage.NewStorage(env)
	if err != nil {
		return nil, err
	}
	op := operator.NewOperator(store, logger, operator.Config{
		Timeout:         env.OperationTimeout,
		MaxAttempts:     env.RetryMaxAttempts,
		InitialInterval: env.RetryInitialInterval,
	})
	svc := service.NewService(store, op, service.Options{
		Logger:   logger,
		Location: env.LedgerTimezone,
	})
	return &deps{logger: logger, storage: store, service: svc}, nil
}

func newApp(connect connector) *cli.App {
	return &cli.App{
		Name:  "caisse_admin",
		Usage: "administrative tasks for the cash ledger",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply pending schema migrations",
				Action: func(c *cli.Context) error {
					d, err := connect()
					if err != nil {
						return err
					}
					defer d.storage.Close()

					result, err := migrations.Up(d.storage.DB)
					if err != nil {
						return err
					}
					d.logger.WithFields(logrus.Fields{
						"preMigrationVersion":  result.PreMigrationVersion,
						"postMigrationVersion": result.PostMigrationVersion,
					}).Info("Migration status")
					return nil
				},
			},
			{
				Name:  "purge-transaction",
				Usage: "physically delete a transaction and its lines",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "transaction UUID"},
					&cli.Int64Flag{Name: "actor-id", Required: true, Usage: "administrator user id"},
					&cli.StringFlag{Name: "actor-name", Required: true, Usage: "administrator display name"},
				},
				Action: func(c *cli.Context) error {
					id, err := uuid.FromString(c.String("id"))
					if err != nil {
						return fmt.Errorf("--id: %w", err)
					}
					identity := ledger.Identity{
						UserID:      c.Int64("actor-id"),
						DisplayName: c.String("actor-name"),
						Roles:       []string{ledger.RoleAdmin},
					}

					d, err := connect()
					if err != nil {
						return err
					}
					defer d.storage.Close()

					if err = d.service.Transaction.Delete(c.Context, identity, id); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "purged transaction %s\n", id)
					return nil
				},
			},
			{
				Name:  "daily-total",
				Usage: "sum active transactions paid on one calendar day",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Required: true, Usage: "day as YYYY-MM-DD in the ledger time zone"},
				},
				Action: func(c *cli.Context) error {
					if _, err := time.Parse(time.DateOnly, c.String("date")); err != nil {
						return fmt.Errorf("--date: %w", err)
					}

					d, err := connect()
					if err != nil {
						return err
					}
					defer d.storage.Close()

					date, err := time.ParseInLocation(time.DateOnly, c.String("date"), d.service.Ledger.Location())
					if err != nil {
						return fmt.Errorf("--date: %w", err)
					}
					total, err := d.service.Ledger.DailyTotal(c.Context, date)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s\t%s\n", c.String("date"), total.StringFixed(2))
					return nil
				},
			},
			{
				Name:  "net-balance",
				Usage: "collected total minus active withdrawals over a window",
				Flags: []cli.Flag{
					&cli.TimestampFlag{Name: "from", Layout: time.RFC3339, Usage: "inclusive lower bound"},
					&cli.TimestampFlag{Name: "to", Layout: time.RFC3339, Usage: "inclusive upper bound"},
				},
				Action: func(c *cli.Context) error {
					window := ledger.Window{From: c.Timestamp("from"), To: c.Timestamp("to")}
					if err := window.Check("ledger.net_balance"); err != nil {
						return err
					}

					d, err := connect()
					if err != nil {
						return err
					}
					defer d.storage.Close()

					balance, err := d.service.Ledger.NetBalance(c.Context, window)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "transactions\t%s\nwithdrawals\t%s\nnet\t%s\n",
						balance.Transactions.StringFixed(2),
						balance.Withdrawals.StringFixed(2),
						balance.Net.StringFixed(2))
					return nil
				},
			},
		},
	}
}
