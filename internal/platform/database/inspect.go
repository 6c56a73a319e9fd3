package database

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// ProjectionTables are the tables the service reads from.
var ProjectionTables = []string{"projected_contracts", "stats"}

type ColumnInfo struct {
	Name     string `db:"column_name" json:"name"`
	DataType string `db:"data_type" json:"dataType"`
	Nullable string `db:"is_nullable" json:"nullable"`
}

// TableInfo describes one table of the current schema. Columns is empty and
// Exists false when the table is missing.
type TableInfo struct {
	Name     string       `json:"name"`
	Exists   bool         `json:"exists"`
	Columns  []ColumnInfo `json:"columns"`
	RowCount int64        `json:"rowCount"`
}

const describeTableQuery = `
SELECT column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1
ORDER BY ordinal_position`

// DescribeTable lists the columns and row count of table.
func (p *Provider) DescribeTable(ctx context.Context, table string) (TableInfo, error) {
	info := TableInfo{Name: table, Columns: []ColumnInfo{}}
	if err := p.Select(ctx, "describe_table", &info.Columns, describeTableQuery, table); err != nil {
		return TableInfo{}, errors.Wrapf(err, "describe table %s", table)
	}
	if len(info.Columns) == 0 {
		return info, nil
	}
	info.Exists = true

	var count struct {
		Count int64 `db:"count"`
	}
	if err := p.Get(ctx, "count_table_rows", &count, "SELECT COUNT(*) AS count FROM "+pq.QuoteIdentifier(table)); err != nil {
		return TableInfo{}, errors.Wrapf(err, "count rows of %s", table)
	}
	info.RowCount = count.Count
	return info, nil
}
