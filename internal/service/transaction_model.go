package service

import (
	"time"
)

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and MaxPaidAt so subsequent pages are consistent.
type TransactionCursor struct {
	Position  int
	Limit     int
	MaxPaidAt time.Time
}
