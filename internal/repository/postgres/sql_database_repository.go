package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"intellidash/pkg/database"
	"intellidash/pkg/logger"

	"github.com/tmc/langchaingo/tools/sqldatabase"
	"gorm.io/gorm"
)

const agentSavePoint = "nl_query"

var _ sqldatabase.Engine = (*SQLDatabaseRepository)(nil)

// SQLDatabaseRepository is the langchaingo SQL engine behind the agent. Every
// statement goes through the request session when there is one.
type SQLDatabaseRepository struct {
	DB *gorm.DB
}

func NewSQLDatabaseRepository(db *gorm.DB) *SQLDatabaseRepository {
	return &SQLDatabaseRepository{
		DB: db,
	}
}

func (r *SQLDatabaseRepository) Dialect() string {
	return r.DB.Dialector.Name()
}

func (r *SQLDatabaseRepository) TableNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	tables, err := database.Conn(ctx, r.DB).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	names := make([]string, 0, len(tables))
	for _, table := range tables {
		if strings.HasPrefix(table, "sqlite_") {
			continue
		}
		names = append(names, table)
	}
	sort.Strings(names)

	return names, nil
}

// TableInfo renders a CREATE TABLE statement for one table from the live
// column metadata.
func (r *SQLDatabaseRepository) TableInfo(ctx context.Context, table string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	columnTypes, err := database.Conn(ctx, r.DB).Migrator().ColumnTypes(table)
	if err != nil {
		return "", fmt.Errorf("failed to describe table %s: %w", table, err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		column := ct.Name() + " " + strings.ToLower(ct.DatabaseTypeName())
		if nullable, ok := ct.Nullable(); ok && !nullable {
			column += " NOT NULL"
		}
		columns = append(columns, "\t"+column)
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", table, strings.Join(columns, ",\n")), nil
}

// Query returns the column names and the rows rendered as text, in column
// order. NULL is rendered as "NULL".
func (r *SQLDatabaseRepository) Query(ctx context.Context, query string, args ...any) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	var (
		cols    []string
		results [][]string
	)
	err := r.inSavePoint(ctx, func(conn *gorm.DB) error {
		rows, err := conn.Raw(query, args...).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		cols, err = rows.Columns()
		if err != nil {
			return err
		}

		for rows.Next() {
			values := make([]any, len(cols))
			targets := make([]any, len(cols))
			for i := range values {
				targets[i] = &values[i]
			}
			if err := rows.Scan(targets...); err != nil {
				return err
			}

			row := make([]string, 0, len(cols))
			for _, value := range values {
				row = append(row, formatCell(value))
			}
			results = append(results, row)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run query: %w", err)
	}

	return cols, results, nil
}

// Run executes a read-only statement and returns its rows keyed by column.
func (r *SQLDatabaseRepository) Run(ctx context.Context, query string) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []map[string]any
	err := r.inSavePoint(ctx, func(conn *gorm.DB) error {
		return conn.Raw(query).Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}

	return NormalizeRows(rows), nil
}

// Close is a no-op: the pool belongs to database.Init and is closed there.
func (r *SQLDatabaseRepository) Close() error {
	return nil
}

// inSavePoint runs fn on the request session inside a savepoint, or on the
// pool when there is no session. A failed statement rolls back to the
// savepoint so the session stays usable for the remaining fields.
func (r *SQLDatabaseRepository) inSavePoint(ctx context.Context, fn func(conn *gorm.DB) error) error {
	conn := database.Conn(ctx, r.DB)
	if _, scoped := database.SessionFromContext(ctx); !scoped {
		return fn(conn)
	}

	if err := conn.SavePoint(agentSavePoint).Error; err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	err := fn(conn)
	if err == nil {
		return nil
	}

	if rbErr := conn.RollbackTo(agentSavePoint).Error; rbErr != nil {
		logger.Warn("failed to roll back to savepoint", "savepoint", agentSavePoint, "error", rbErr)
		return errors.Join(err, fmt.Errorf("failed to roll back to savepoint %s: %w", agentSavePoint, rbErr))
	}

	return err
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// NormalizeRows makes driver values JSON friendly.
func NormalizeRows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		normalized := make(map[string]any, len(row))
		for key, value := range row {
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			normalized[key] = value
		}
		out = append(out, normalized)
	}

	return out
}
