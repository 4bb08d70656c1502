package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Withdrawal is cash removed from the till, tracked independently of sales.
type Withdrawal struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Justification *string
	HandledBy     int64
	HandledByName string
	RetraitAt     time.Time
	Status        Status
	Cancellation  *Cancellation
}

func (w *Withdrawal) IsActive() bool {
	return w.Status == StatusActive
}

// Window is an inclusive time range. A nil bound is unbounded on that side.
type Window struct {
	From *time.Time
	To   *time.Time
}

func NewWindow(from, to time.Time) Window {
	return Window{From: &from, To: &to}
}

// Check rejects a window whose lower bound is after its upper bound.
func (w Window) Check(op string) error {
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return NewValidationError(op, "window", "from is after to")
	}
	return nil
}

// Day returns the half-open bounds of the calendar day containing t in loc.
func Day(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
