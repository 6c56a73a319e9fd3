package usecase

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
)

// Source names where the data of a Result came from.
type Source string

const (
	SourceStore Source = "store"
	SourceMock  Source = "mock"
	SourceEmpty Source = "empty"
)

// Result carries data together with its provenance. Err holds the data-access
// failure a fallback policy absorbed, so callers can decide whether to serve
// the data, show a banner or refuse the request.
type Result[T any] struct {
	Data     T
	Source   Source
	Fallback bool
	Err      error
}

// Degraded reports whether the data came from a fallback policy instead of the
// configured source.
func (r Result[T]) Degraded() bool {
	return r.Fallback
}

// FallbackRecorder counts reads answered by a fallback policy.
type FallbackRecorder interface {
	IncFallback(op, source, reason string)
}

type nopRecorder struct{}

func (nopRecorder) IncFallback(string, string, string) {}

func fallbackReason(err error) string {
	switch {
	case err == nil:
		return "not_found"
	case errors.Is(err, database.ErrConnectionUnavailable):
		return "connection_unavailable"
	case errors.Is(err, database.ErrQueryFailed):
		return "query_failed"
	default:
		return "error"
	}
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
