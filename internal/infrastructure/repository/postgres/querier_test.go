package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type capturedQuery struct {
	op    string
	query string
	args  []any
}

type fakeQuerier struct {
	players []projectedPlayerModel
	seasons []statsSeasonModel
	ids     []int64
	err     error

	queries []capturedQuery
}

func (f *fakeQuerier) Select(_ context.Context, op string, dest any, query string, args ...any) error {
	f.queries = append(f.queries, capturedQuery{op: op, query: query, args: args})
	if f.err != nil {
		return f.err
	}
	switch d := dest.(type) {
	case *[]projectedPlayerModel:
		*d = append((*d)[:0], f.players...)
	case *[]statsSeasonModel:
		*d = append((*d)[:0], f.seasons...)
	case *[]int64:
		*d = append((*d)[:0], f.ids...)
	default:
		return fmt.Errorf("unexpected dest %T", dest)
	}
	return nil
}

func (f *fakeQuerier) Get(_ context.Context, op string, _ any, query string, args ...any) error {
	f.queries = append(f.queries, capturedQuery{op: op, query: query, args: args})
	return sql.ErrNoRows
}

func dec(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

func str(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}
