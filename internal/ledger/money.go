package ledger

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for every amount.
const MoneyScale = 2

// maxMoney is the exclusive bound imposed by NUMERIC(10,2).
var maxMoney = decimal.New(1, 8)

// CheckMoney rejects values the store cannot hold exactly.
func CheckMoney(op, field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MoneyScale)) {
		return NewValidationError(op, field, "at most two fractional digits allowed")
	}
	if v.Abs().GreaterThanOrEqual(maxMoney) {
		return NewValidationError(op, field, "amount out of range")
	}
	return nil
}

// CheckPositiveMoney is CheckMoney plus v > 0.
func CheckPositiveMoney(op, field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return NewValidationError(op, field, "must be greater than zero")
	}
	return CheckMoney(op, field, v)
}

// Sum adds values without leaving decimal arithmetic.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
