package group

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to group records. The engine never
// mutates groups.
type Repository interface {
	// FindByID returns the group with the given ID, or shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)
}
