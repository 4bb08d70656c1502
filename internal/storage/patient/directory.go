package patient

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
)

var _ ledger.PatientDirectory = (*Directory)(nil)

// Directory resolves patient references against the patient module's table.
type Directory struct {
	exec bob.Executor
}

func NewDirectory(exec bob.Executor) *Directory {
	return &Directory{exec: exec}
}

type patientRow struct {
	ID       int64  `db:"id"`
	FullName string `db:"full_name"`
}

func (d *Directory) Resolve(ctx context.Context, patientID int64) (*ledger.PatientSummary, error) {
	query := psql.Select(
		sm.Columns("id", "full_name"),
		sm.From(sqlconfig.PatientsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(patientID))),
	)
	row, err := bob.One(ctx, d.exec, query, scan.StructMapper[patientRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrPatientNotFound
	}
	if err != nil {
		return nil, sqlconfig.TranslateError("patient.resolve", err)
	}
	return &ledger.PatientSummary{ID: row.ID, FullName: row.FullName}, nil
}
