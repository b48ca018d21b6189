package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type sessionKey struct{}

// BeginReadOnly opens the per-request data-access handle: a read-only
// transaction on the shared pool. Callers must Release it.
func BeginReadOnly(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	tx := db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin read-only session: %w", tx.Error)
	}

	return tx, nil
}

// Release ends a session opened by BeginReadOnly. Nothing is ever written
// through a session, so it is always rolled back.
func Release(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}

	err := tx.Rollback().Error
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to release session: %w", err)
	}

	return nil
}

func WithSession(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, sessionKey{}, tx)
}

func SessionFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(sessionKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// Conn returns the request session carried by ctx, or fallback when the call
// is not scoped to a request (seeding, tests, background jobs).
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := SessionFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}

	return fallback.WithContext(ctx)
}
