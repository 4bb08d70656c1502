package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction or a withdrawal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCancelled
}

// LineStatus is the state of a single transaction line.
type LineStatus string

const (
	LineActive LineStatus = "active"
	LineVoid   LineStatus = "void"
)

// ItemType tags the catalog an item_ref_id points into.
type ItemType string

const (
	ItemConsultation          ItemType = "consultation"
	ItemAppointment           ItemType = "appointment"
	ItemPrescription          ItemType = "prescription"
	ItemLabExam               ItemType = "lab_exam"
	ItemPharmacy              ItemType = "pharmacy"
	ItemSpiritualConsultation ItemType = "spiritual_consultation"
	ItemOther                 ItemType = "other"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemConsultation, ItemAppointment, ItemPrescription, ItemLabExam,
		ItemPharmacy, ItemSpiritualConsultation, ItemOther:
		return true
	}
	return false
}

// PatientBound reports whether items of this type are always billed to a
// patient. Pharmacy counter sales and miscellaneous items are not.
func (t ItemType) PatientBound() bool {
	switch t {
	case ItemConsultation, ItemAppointment, ItemPrescription, ItemLabExam, ItemSpiritualConsultation:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentCard        PaymentMethod = "card"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCheque      PaymentMethod = "cheque"
	PaymentInsurance   PaymentMethod = "insurance"
	PaymentTransfer    PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney, PaymentCheque, PaymentInsurance, PaymentTransfer:
		return true
	}
	return false
}

// Transaction is one billing event recorded in the till.
type Transaction struct {
	ID            uuid.UUID
	PatientID     *int64
	Amount        decimal.Decimal
	AdvanceAmount *decimal.Decimal
	PaymentMethod PaymentMethod
	Status        Status
	CreatedBy     int64
	CreatedByName string
	PaidAt        time.Time
	Cancellation  *Cancellation
	Lines         []Line
}

func (t *Transaction) IsActive() bool {
	return t.Status == StatusActive
}

// ActiveLines returns the lines that count towards Amount.
func (t *Transaction) ActiveLines() []Line {
	lines := make([]Line, 0, len(t.Lines))
	for _, l := range t.Lines {
		if l.Status == LineActive {
			lines = append(lines, l)
		}
	}
	return lines
}

// ActiveLinesTotal is the sum of line_total over active lines.
func (t *Transaction) ActiveLinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.ActiveLines() {
		total = total.Add(l.LineTotal)
	}
	return total
}

// Line is one priced, quantified component of a transaction.
type Line struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Position      int
	ItemType      ItemType
	ItemRefID     int64
	UnitPrice     decimal.Decimal
	Quantity      int
	LineTotal     decimal.Decimal
	Note          *string
	Status        LineStatus
}

// LineRequest is a line as submitted by a caller.
type LineRequest struct {
	ItemType  ItemType        `json:"item_type" validate:"required"`
	ItemRefID int64           `json:"item_ref_id" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"gt=0,lte=2147483647"`
	Note      string          `json:"note,omitempty" validate:"max=2000"`
}

// CreateTransactionRequest is the input of a transaction create. Amount may be
// left nil, in which case it is derived from the lines.
type CreateTransactionRequest struct {
	PatientID     *int64           `json:"patient_id,omitempty" validate:"omitempty,gt=0"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	AdvanceAmount *decimal.Decimal `json:"advance_amount,omitempty"`
	PaymentMethod PaymentMethod    `json:"payment_method" validate:"required"`
	PaidAt        time.Time        `json:"paid_at"`
	Lines         []LineRequest    `json:"lines" validate:"required,min=1,dive"`
}

// LineDraft is a validated line ready to be persisted.
type LineDraft struct {
	Position  int
	ItemType  ItemType
	ItemRefID int64
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Note      *string
}

// TransactionDraft is a validated transaction ready to be persisted.
type TransactionDraft struct {
	PatientID     *int64
	Amount        decimal.Decimal
	AdvanceAmount *decimal.Decimal
	PaymentMethod PaymentMethod
	PaidAt        time.Time
	Lines         []LineDraft

	// RequiresPatient is set when an advance or a patient-bound item is present.
	RequiresPatient bool
}
