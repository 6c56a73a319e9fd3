package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// querier is the slice of database.Provider the repositories need. The op
// name labels metrics and wrapped errors.
type querier interface {
	Select(ctx context.Context, op string, dest any, query string, args ...any) error
	Get(ctx context.Context, op string, dest any, query string, args ...any) error
}

// decimalPtr converts a NUMERIC column into a float. NULL stays nil.
func decimalPtr(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}

func decimalValue(v decimal.NullDecimal) float64 {
	if !v.Valid {
		return 0
	}
	return v.Decimal.InexactFloat64()
}

func decimalIntPtr(v decimal.NullDecimal) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Decimal.Round(0).IntPart())
	return &i
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
