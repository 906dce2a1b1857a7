package access

import (
	"context"

	"github.com/google/uuid"
)

// Lifecycle is implemented by repositories of soft-deletable records.
// Every call honours scope: a record outside it is reported as NotFound.
type Lifecycle interface {
	// Delete marks the record deleted; deleting a deleted record is a no-op
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error
	// Restore clears the deletion mark; restoring an active record is a no-op
	Restore(ctx context.Context, scope Scope, id uuid.UUID) error
	// HardDelete removes the row permanently
	HardDelete(ctx context.Context, scope Scope, id uuid.UUID) error
}
