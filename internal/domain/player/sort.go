package player

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortField string

const (
	SortNone          SortField = ""
	SortName          SortField = "name"
	SortAge           SortField = "age"
	SortProjectedAAV  SortField = "projectedAav"
	SortProjectedTerm SortField = "projectedTerm"
	SortValueTier     SortField = "valueTier"
)

func ParseSortField(v string) (SortField, error) {
	switch SortField(strings.TrimSpace(v)) {
	case SortNone:
		return SortNone, nil
	case SortName, SortAge, SortProjectedAAV, SortProjectedTerm, SortValueTier:
		return SortField(strings.TrimSpace(v)), nil
	default:
		return "", fmt.Errorf("invalid sort field: %q", v)
	}
}

type Sort struct {
	Field SortField
	Desc  bool
}

var tierRank = map[ValueTier]int{
	TierBargain:  0,
	TierFairDeal: 1,
	TierOverpay:  2,
}

func rankTier(t ValueTier) int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return len(tierRank)
}

// SortPlayers orders players in place. Ties keep their incoming order, so the
// default AAV ordering of the store survives as the secondary key.
func SortPlayers(players []Player, s Sort) {
	var compare func(a, b Player) int
	switch s.Field {
	case SortName:
		compare = func(a, b Player) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortAge:
		compare = func(a, b Player) int { return cmp.Compare(a.Age, b.Age) }
	case SortProjectedAAV:
		compare = func(a, b Player) int { return cmp.Compare(a.ProjectedAAV, b.ProjectedAAV) }
	case SortProjectedTerm:
		compare = func(a, b Player) int { return cmp.Compare(a.ProjectedTerm, b.ProjectedTerm) }
	case SortValueTier:
		compare = func(a, b Player) int { return cmp.Compare(rankTier(a.ValueTier), rankTier(b.ValueTier)) }
	default:
		return
	}

	slices.SortStableFunc(players, func(a, b Player) int {
		if s.Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

// OrderByIDs returns players re-sorted into the order of ids. Unknown ids are skipped.
func OrderByIDs(players []Player, ids []int64) []Player {
	byID := make(map[int64]Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	out := make([]Player, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
