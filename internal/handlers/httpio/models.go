package httpio

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// Cancellation is the response model of a cancellation audit record.
type Cancellation struct {
	By            int64  `json:"cancelled_by"`
	ByName        string `json:"cancelled_by_name"`
	At            string `json:"cancelled_at"`
	Justification string `json:"cancel_justification"`
}

func NewCancellation(c *ledger.Cancellation) *Cancellation {
	if c == nil {
		return nil
	}
	return &Cancellation{
		By:            c.ActorID,
		ByName:        c.ActorName,
		At:            FormatTime(c.At),
		Justification: c.Justification,
	}
}

// CancelBody is the request body shared by every cancel endpoint.
type CancelBody struct {
	Justification string `json:"justification"`
}

// Money renders an amount with its two fractional digits.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func MoneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := Money(*d)
	return &s
}

// ParseMoney parses a decimal amount from a request field.
func ParseMoney(op, field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, BadRequest(op, field, "invalid decimal amount")
	}
	return d, nil
}
