package player

import (
	"fmt"
	"strings"
)

// ScoreBand buckets contract_value_score for list filtering.
type ScoreBand string

const (
	BandExcellent    ScoreBand = "excellent"
	BandGood         ScoreBand = "good"
	BandFair         ScoreBand = "fair"
	BandBelowAverage ScoreBand = "below-average"
	BandPoor         ScoreBand = "poor"
)

func ParseScoreBand(v string) (ScoreBand, error) {
	band := ScoreBand(strings.ToLower(strings.TrimSpace(v)))
	if _, _, err := band.Bounds(); err != nil {
		return "", err
	}
	return band, nil
}

// Bounds returns the inclusive lower and exclusive upper score of the band.
// A nil bound is open.
func (b ScoreBand) Bounds() (lower, upper *int, err error) {
	bound := func(v int) *int { return &v }
	switch b {
	case BandExcellent:
		return bound(80), nil, nil
	case BandGood:
		return bound(65), bound(80), nil
	case BandFair:
		return bound(50), bound(65), nil
	case BandBelowAverage:
		return bound(35), bound(50), nil
	case BandPoor:
		return nil, bound(35), nil
	default:
		return nil, nil, fmt.Errorf("invalid score band: %q", string(b))
	}
}

// Contains reports whether score falls inside the band. Unscored players belong to no band.
func (b ScoreBand) Contains(score *int) bool {
	if score == nil {
		return false
	}
	lower, upper, err := b.Bounds()
	if err != nil {
		return false
	}
	if lower != nil && *score < *lower {
		return false
	}
	if upper != nil && *score >= *upper {
		return false
	}
	return true
}

// ListFilter narrows the projection list. Zero fields do not filter.
type ListFilter struct {
	Search    string
	Position  Position
	ValueTier ValueTier
	ScoreBand ScoreBand
}

func (f ListFilter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.Position == "" && f.ValueTier == "" && f.ScoreBand == ""
}

// Matches applies the filter in memory with the same semantics the SQL query uses.
func (f ListFilter) Matches(p Player) bool {
	if term := strings.TrimSpace(f.Search); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			return false
		}
	}
	if f.Position != "" && p.Position != f.Position {
		return false
	}
	if f.ValueTier != "" && p.ValueTier != f.ValueTier {
		return false
	}
	if f.ScoreBand != "" && !f.ScoreBand.Contains(p.ContractValueScore) {
		return false
	}
	return true
}

func Filter(players []Player, f ListFilter) []Player {
	if f.IsZero() {
		return players
	}
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
