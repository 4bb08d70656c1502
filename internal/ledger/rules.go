package ledger

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateShape runs the struct tags of s and converts the first failure.
func validateShape(op string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return NewValidationError(op, first.Field(), "failed "+first.Tag()+" rule")
	}
	return NewValidationError(op, "", err.Error())
}

// DraftTransaction validates req and computes line totals and the amount.
func DraftTransaction(req CreateTransactionRequest, clock Clock) (*TransactionDraft, error) {
	const op = "transaction.create"

	if err := validateShape(op, req); err != nil {
		return nil, err
	}
	if !req.PaymentMethod.Valid() {
		return nil, NewValidationError(op, "payment_method", "unknown payment method")
	}

	lines, err := DraftLines(op, req.Lines)
	if err != nil {
		return nil, err
	}

	computed := decimal.Zero
	for _, l := range lines {
		computed = computed.Add(l.LineTotal)
	}
	if err := CheckPositiveMoney(op, "amount", computed); err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if err := CheckPositiveMoney(op, "amount", *req.Amount); err != nil {
			return nil, err
		}
		if !req.Amount.Equal(computed) {
			return nil, NewValidationError(op, "amount", "amount does not match the sum of the lines")
		}
	}

	if err := checkAdvance(op, req.AdvanceAmount, computed); err != nil {
		return nil, err
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		if clock == nil {
			clock = time.Now
		}
		paidAt = clock()
	}

	draft := &TransactionDraft{
		PatientID:       req.PatientID,
		Amount:          computed,
		AdvanceAmount:   req.AdvanceAmount,
		PaymentMethod:   req.PaymentMethod,
		PaidAt:          paidAt.UTC(),
		Lines:           lines,
		RequiresPatient: RequiresPatient(req.AdvanceAmount, lines),
	}
	if draft.RequiresPatient && draft.PatientID == nil {
		return nil, NewValidationError(op, "patient_id", "a patient is required for this transaction")
	}
	return draft, nil
}

// DraftLines validates line requests and computes line_total = unit_price * quantity.
func DraftLines(op string, reqs []LineRequest) ([]LineDraft, error) {
	if len(reqs) == 0 {
		return nil, NewValidationError(op, "lines", "at least one line is required")
	}
	drafts := make([]LineDraft, len(reqs))
	for i, r := range reqs {
		if err := validateShape(op, r); err != nil {
			return nil, err
		}
		if !r.ItemType.Valid() {
			return nil, NewValidationError(op, "item_type", "unknown item type")
		}
		if r.UnitPrice.IsNegative() {
			return nil, NewValidationError(op, "unit_price", "must not be negative")
		}
		if err := CheckMoney(op, "unit_price", r.UnitPrice); err != nil {
			return nil, err
		}
		total := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
		if err := CheckMoney(op, "line_total", total); err != nil {
			return nil, err
		}
		var note *string
		if n := strings.TrimSpace(r.Note); n != "" {
			note = &n
		}
		drafts[i] = LineDraft{
			Position:  i + 1,
			ItemType:  r.ItemType,
			ItemRefID: r.ItemRefID,
			UnitPrice: r.UnitPrice,
			Quantity:  r.Quantity,
			LineTotal: total,
			Note:      note,
		}
	}
	return drafts, nil
}

// RequiresPatient reports whether an advance or a patient-bound item is present.
func RequiresPatient(advance *decimal.Decimal, lines []LineDraft) bool {
	if advance != nil && advance.IsPositive() {
		return true
	}
	for _, l := range lines {
		if l.ItemType.PatientBound() {
			return true
		}
	}
	return false
}

func checkAdvance(op string, advance *decimal.Decimal, amount decimal.Decimal) error {
	if advance == nil {
		return nil
	}
	if advance.IsNegative() {
		return NewValidationError(op, "advance_amount", "must not be negative")
	}
	if err := CheckMoney(op, "advance_amount", *advance); err != nil {
		return err
	}
	if advance.GreaterThan(amount) {
		return NewValidationError(op, "advance_amount", "advance exceeds the transaction amount")
	}
	return nil
}

// TransactionPatch carries the metadata fields an update may change. Unset
// fields are left alone. Setting Lines rewrites every active line and the amount.
type TransactionPatch struct {
	PatientID     omitnull.Val[int64]
	AdvanceAmount omitnull.Val[decimal.Decimal]
	PaymentMethod omit.Val[PaymentMethod]
	Lines         omit.Val[[]LineRequest]
}

func (p TransactionPatch) Empty() bool {
	return p.PatientID.IsUnset() && p.AdvanceAmount.IsUnset() &&
		p.PaymentMethod.IsUnset() && p.Lines.IsUnset()
}

// UpdatePlan is the validated outcome of applying a patch to a transaction.
type UpdatePlan struct {
	Patch         TransactionPatch
	PatientID     *int64
	AdvanceAmount *decimal.Decimal
	Amount        decimal.Decimal

	// Lines is nil unless the patch rewrites lines.
	Lines []LineDraft

	RequiresPatient bool
}

// PlanUpdate validates patch against current. current must be active.
func PlanUpdate(current *Transaction, patch TransactionPatch) (*UpdatePlan, error) {
	const op = "transaction.update"

	if !current.IsActive() {
		return nil, NewConflictError(op, "cancelled transactions cannot be edited")
	}
	if patch.Empty() {
		return nil, NewValidationError(op, "", "nothing to update")
	}

	plan := &UpdatePlan{
		Patch:         patch,
		PatientID:     current.PatientID,
		AdvanceAmount: current.AdvanceAmount,
		Amount:        current.Amount,
	}

	if m, ok := patch.PaymentMethod.Get(); ok && !m.Valid() {
		return nil, NewValidationError(op, "payment_method", "unknown payment method")
	}

	if !patch.PatientID.IsUnset() {
		plan.PatientID = patch.PatientID.MustPtr()
		if plan.PatientID != nil && *plan.PatientID <= 0 {
			return nil, NewValidationError(op, "patient_id", "invalid patient reference")
		}
	}
	if !patch.AdvanceAmount.IsUnset() {
		plan.AdvanceAmount = patch.AdvanceAmount.MustPtr()
	}

	activeLines := make([]LineDraft, 0, len(current.Lines))
	for _, l := range current.ActiveLines() {
		activeLines = append(activeLines, LineDraft{ItemType: l.ItemType})
	}
	if reqs, ok := patch.Lines.Get(); ok {
		drafts, err := DraftLines(op, reqs)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, d := range drafts {
			total = total.Add(d.LineTotal)
		}
		if err := CheckPositiveMoney(op, "amount", total); err != nil {
			return nil, err
		}
		plan.Lines = drafts
		plan.Amount = total
		activeLines = drafts
	}

	if err := checkAdvance(op, plan.AdvanceAmount, plan.Amount); err != nil {
		return nil, err
	}

	plan.RequiresPatient = RequiresPatient(plan.AdvanceAmount, activeLines)
	if plan.RequiresPatient && plan.PatientID == nil {
		return nil, NewValidationError(op, "patient_id", "a patient is required for this transaction")
	}
	return plan, nil
}

// CreateWithdrawalRequest is the input of a withdrawal create.
type CreateWithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Justification string          `json:"justification" validate:"max=2000"`
	RetraitAt     time.Time       `json:"retrait_at"`
}

// CheckWithdrawal validates req.
func CheckWithdrawal(req CreateWithdrawalRequest) error {
	const op = "withdrawal.create"
	if err := validateShape(op, req); err != nil {
		return err
	}
	return CheckPositiveMoney(op, "amount", req.Amount)
}
