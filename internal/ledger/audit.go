package ledger

import (
	"strings"
	"time"
)

const RoleAdmin = "admin"

// Identity is the authenticated actor supplied by the upstream gateway.
type Identity struct {
	UserID      int64
	DisplayName string
	Roles       []string
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Audit is stamped on every create and cancel.
type Audit struct {
	ActorID   int64
	ActorName string
	At        time.Time
}

// Clock returns the current time. Tests replace it to pin timestamps.
type Clock func() time.Time

// NewAudit stamps identity with the clock's current time.
func NewAudit(identity Identity, clock Clock) (Audit, error) {
	if identity.UserID <= 0 {
		return Audit{}, NewValidationError("audit", "actor_id", "actor is required")
	}
	name := strings.TrimSpace(identity.DisplayName)
	if name == "" {
		return Audit{}, NewValidationError("audit", "actor_name", "actor display name is required")
	}
	if clock == nil {
		clock = time.Now
	}
	return Audit{ActorID: identity.UserID, ActorName: name, At: clock().UTC()}, nil
}

// Cancellation is the audit record of a soft cancellation.
type Cancellation struct {
	Audit
	Justification string
}

// NewCancellation requires a non-blank justification.
func NewCancellation(identity Identity, justification string, clock Clock) (Cancellation, error) {
	audit, err := NewAudit(identity, clock)
	if err != nil {
		return Cancellation{}, err
	}
	justification = strings.TrimSpace(justification)
	if justification == "" {
		return Cancellation{}, NewValidationError("cancel", "justification", "cancellation requires a justification")
	}
	return Cancellation{Audit: audit, Justification: justification}, nil
}
