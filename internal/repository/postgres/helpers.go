package postgres

import (
	"context"

	"gorm.io/gorm"
)

const batchSize = 100

// deleteAll issues an unconditional DELETE, which gorm refuses by default.
func deleteAll(ctx context.Context, db *gorm.DB, model any) error {
	return db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(model).Error
}

// monthLabel renders column as a YYYY-MM label in the connected dialect.
func monthLabel(dialect, column string) string {
	switch dialect {
	case "mysql":
		return "DATE_FORMAT(" + column + ", '%Y-%m')"
	case "sqlite":
		return "strftime('%Y-%m', " + column + ")"
	default:
		return "to_char(" + column + ", 'YYYY-MM')"
	}
}
