package repositories

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTxManager implements domain.TxManager on a GORM connection. The
// transaction handle travels in the context so that repository calls made
// inside fn join the same transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager.
func NewTxManager(db *gorm.DB) domain.TxManager {
	return &GormTxManager{db: db}
}

// InTx implements domain.TxManager.
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction bound to ctx, or the repository's own
// connection when no transaction is open.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
