package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// WithdrawalQuery filters withdrawals by status and an inclusive retrait_at
// window. Nil fields do not filter.
type WithdrawalQuery struct {
	Status *ledger.Status
	Window ledger.Window
}

// NetBalance is the collected total minus active withdrawals over one window.
type NetBalance struct {
	Window       ledger.Window
	Transactions decimal.Decimal
	Withdrawals  decimal.Decimal
	Net          decimal.Decimal
}
