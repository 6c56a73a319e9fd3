package player

import "context"

// Repository reads contract projections. Implementations return errors as-is;
// fallback policy lives in the use case layer.
type Repository interface {
	// List returns projections ordered by projected AAV, highest first.
	List(ctx context.Context, filter ListFilter) ([]Player, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	// GetByIDs returns the matching rows in no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]Player, error)
}
