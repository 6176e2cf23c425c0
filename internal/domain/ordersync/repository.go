package ordersync

import "context"

// OrderRepository is the write-side port used by the ingestion engine.
// Implementations are expected to be scoped to a database transaction by
// the caller's transaction scope.
type OrderRepository interface {
	// Upsert inserts the order, or updates the mutable columns in place
	// when the identity key already exists. The conflict resolution is a
	// single atomic insert-or-update at the store, so two concurrent
	// deliveries of the same order race safely with last-writer-wins.
	// Returns the internal identifier of the row.
	Upsert(ctx context.Context, order *PlatformOrder) (int64, error)

	// ReplaceItems deletes every line item owned by the order and bulk
	// inserts the new set. The set may be empty.
	ReplaceItems(ctx context.Context, orderRef int64, items []OrderItem) error
}

// OrderReadRepository is the read-side port used by the dashboard reader
// and for the best-effort post-commit count.
type OrderReadRepository interface {
	// List returns the most recently ingested orders matching the filter,
	// items included, bounded to limit rows.
	List(ctx context.Context, filter ListFilter, limit int) ([]PlatformOrder, error)

	// Stats computes the aggregate rollup over the full table.
	Stats(ctx context.Context) (*StoreStats, error)

	// Count returns the number of order rows matching the filter. A
	// zero-value filter counts the whole table.
	Count(ctx context.Context, filter ListFilter) (int64, error)
}
