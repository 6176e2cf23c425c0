package ordersync

import (
	"context"

	"github.com/sellersync/backend/internal/domain/ordersync"
)

// TransactionScope provides transactional access to the order
// repositories. Everything executed within one scope shares a single
// database transaction: the batch either commits as a whole or rolls
// back as a whole.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	// Orders returns the order write repository bound to the transaction.
	Orders() ordersync.OrderRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	orders ordersync.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repository.
func NewNoOpTransactionScope(orders ordersync.OrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{orders: orders}
}

// Execute runs fn directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() ordersync.OrderRepository {
	return s.orders
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
