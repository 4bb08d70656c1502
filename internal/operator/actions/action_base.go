package actions

import (
	"context"

	"github.com/carson-networks/caisse-server/internal/storage"
)

// IAction is one step of a unit-of-work. Perform may be called again on a
// fresh Writer when the operator retries, so it must not depend on state left
// by an earlier call.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
