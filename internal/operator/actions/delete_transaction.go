package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/caisse-server/internal/storage"
)

// DeleteTransaction hard-deletes a transaction whatever its status. Lines go
// with it.
type DeleteTransaction struct {
	ID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transaction.Delete(ctx, d.ID)
}
