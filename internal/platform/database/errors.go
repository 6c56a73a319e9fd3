package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

var (
	// ErrConnectionUnavailable marks failures where no usable pool exists:
	// missing configuration, a failed open or probe, or an open breaker.
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	// ErrQueryFailed marks a statement the store rejected or could not finish.
	ErrQueryFailed = errors.New("database query failed")
)

func connectionUnavailable(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrConnectionUnavailable)
}

func queryFailed(err error, op string) error {
	return errors.Mark(errors.Wrapf(err, "%s query", op), ErrQueryFailed)
}

// isConnectionError reports whether err says something about the health of
// the store rather than about one statement. Only these trip the breaker.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			// connection exception, insufficient resources, operator intervention
			return true
		}
	}
	return false
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsNoRows reports whether a Get found nothing.
func IsNoRows(err error) bool {
	return isNoRows(err)
}
