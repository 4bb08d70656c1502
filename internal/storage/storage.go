package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/caisse-server/internal/config"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
	"github.com/carson-networks/caisse-server/internal/storage/transaction"
	"github.com/carson-networks/caisse-server/internal/storage/withdrawal"
)

// Storage is the read side used by services plus the entry point for
// opening a unit-of-work.
type Storage struct {
	DB           *sql.DB
	Transactions transaction.IReader
	Withdrawals  withdrawal.IReader
	Patients     ledger.PatientDirectory
}

func ConnectionString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return New(db), nil
}

// New wraps an open connection pool.
func New(db *sql.DB) *Storage {
	reader := NewReader(bob.NewDB(db))
	return &Storage{
		DB:           db,
		Transactions: reader.Transactions,
		Withdrawals:  reader.Withdrawals,
		Patients:     reader.Patients,
	}
}

// Write begins a database transaction and returns a Writer bound to it. The
// caller owns the Writer and must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := bob.NewDB(s.DB).BeginTx(ctx, nil)
	if err != nil {
		return nil, sqlconfig.TranslateError("storage.begin", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

