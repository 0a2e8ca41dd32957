package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrTableNotFound is returned by Columns when the table does not exist.
var ErrTableNotFound = errors.New("table not found")

// Columns lists the column names of table in declaration order.
func Columns(ctx context.Context, db *gorm.DB, table string) ([]string, error) {
	m := db.WithContext(ctx).Migrator()
	if !m.HasTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	types, err := m.ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}

	columns := make([]string, 0, len(types))
	for _, ct := range types {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}
