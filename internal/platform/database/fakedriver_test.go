package database

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// fakeDriver answers the connectivity check and fails statements that mention "broken".
type fakeDriver struct {
	queries atomic.Int64
}

var testDriver = &fakeDriver{}

func init() {
	sql.Register("fakepg", testDriver)
}

func (d *fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{driver: d}, nil
}

type fakeConn struct {
	driver *fakeDriver
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{conn: c, query: query}, nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type fakeStmt struct {
	conn  *fakeConn
	query string
}

func (s *fakeStmt) Close() error  { return nil }
func (s *fakeStmt) NumInput() int { return -1 }

func (s *fakeStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("exec not supported")
}

func (s *fakeStmt) Query([]driver.Value) (driver.Rows, error) {
	s.conn.driver.queries.Add(1)
	switch {
	case strings.Contains(s.query, "broken"):
		return nil, errors.New(`relation "broken" does not exist`)
	case strings.Contains(s.query, "information_schema.columns"):
		return &fakeRows{
			columns: []string{"column_name", "data_type", "is_nullable"},
			values: [][]driver.Value{
				{"player_id", "bigint", "NO"},
				{"player_name", "text", "NO"},
			},
		}, nil
	case strings.Contains(s.query, "COUNT(*)"):
		return &fakeRows{columns: []string{"count"}, values: [][]driver.Value{{int64(42)}}}, nil
	case strings.Contains(s.query, "empty"):
		return &fakeRows{columns: []string{"test"}}, nil
	default:
		return &fakeRows{columns: []string{"test"}, values: [][]driver.Value{{int64(1)}}}, nil
	}
}

type fakeRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}
