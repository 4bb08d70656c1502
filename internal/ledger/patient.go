package ledger

import (
	"context"
	"errors"
)

// ErrPatientNotFound is returned by a PatientDirectory for unknown ids.
var ErrPatientNotFound = errors.New("patient not found")

// PatientSummary is what the directory returns for a resolved reference.
type PatientSummary struct {
	ID       int64
	FullName string
}

// PatientDirectory resolves patient references owned by the patient module.
//
//go:generate mockery --name PatientDirectory --output mock_PatientDirectory.go
type PatientDirectory interface {
	Resolve(ctx context.Context, patientID int64) (*PatientSummary, error)
}

// ResolvePatient checks a patient reference and maps directory failures onto
// ledger error kinds.
func ResolvePatient(ctx context.Context, dir PatientDirectory, op string, patientID int64) (*PatientSummary, error) {
	summary, err := dir.Resolve(ctx, patientID)
	if errors.Is(err, ErrPatientNotFound) {
		return nil, NewReferenceError(op, "patient_id", "patient does not exist")
	}
	if err != nil {
		if KindOf(err) != KindUnknown {
			return nil, err
		}
		return nil, NewUnexpectedStoreError(op, err, false)
	}
	return summary, nil
}
