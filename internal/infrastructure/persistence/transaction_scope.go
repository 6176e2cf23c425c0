package persistence

import (
	"context"

	"gorm.io/gorm"

	appsync "github.com/sellersync/backend/internal/application/ordersync"
	"github.com/sellersync/backend/internal/domain/ordersync"
)

// GormTransactionScope implements the ingestion engine's transaction
// scope over the datastore gateway: one pooled connection, one database
// transaction per Execute call, commit on success, rollback on error.
type GormTransactionScope struct {
	db *Database
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *Database) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsync.TransactionalRepositories) error) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories exposes repositories bound to the
// in-flight transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order write repository scoped to the transaction.
func (r *gormTransactionalRepositories) Orders() ordersync.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ appsync.TransactionScope = (*GormTransactionScope)(nil)
var _ appsync.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
