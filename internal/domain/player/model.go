package player

import (
	"fmt"
	"strings"
)

// Position is the roster position reported by the stats source.
type Position string

const (
	PositionCenter     Position = "C"
	PositionLeftWing   Position = "LW"
	PositionRightWing  Position = "RW"
	PositionDefenseman Position = "D"
	PositionGoalie     Position = "G"
)

var AllPositions = map[Position]struct{}{
	PositionCenter:     {},
	PositionLeftWing:   {},
	PositionRightWing:  {},
	PositionDefenseman: {},
	PositionGoalie:     {},
}

func ParsePosition(v string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := AllPositions[p]; !ok {
		return "", fmt.Errorf("invalid player position: %q", v)
	}
	return p, nil
}

func (p Position) IsGoalie() bool {
	return p == PositionGoalie
}

type ContractType string

const (
	ContractUFA ContractType = "UFA"
	ContractRFA ContractType = "RFA"
)

// ValueTier summarizes how cost-efficient a projected contract is.
// The zero value means the projection carries no tier.
type ValueTier string

const (
	TierBargain  ValueTier = "Bargain"
	TierFairDeal ValueTier = "Fair Deal"
	TierOverpay  ValueTier = "Overpay"
)

// ParseValueTier accepts the stored labels plus URL friendly forms like "fair-deal".
func ParseValueTier(v string) (ValueTier, error) {
	normalized := strings.ToLower(strings.TrimSpace(v))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	switch normalized {
	case "bargain":
		return TierBargain, nil
	case "fair deal", "fairdeal", "fair":
		return TierFairDeal, nil
	case "overpay":
		return TierOverpay, nil
	default:
		return "", fmt.Errorf("invalid value tier: %q", v)
	}
}

// Metric is an optional stat that may be explicitly unknown.
// Known=false marks a value the store could not provide.
type Metric struct {
	Value *float64
	Known bool
}

func KnownMetric(v float64) *Metric {
	return &Metric{Value: &v, Known: true}
}

func UnknownMetric() *Metric {
	return &Metric{}
}

// MetricFrom returns a known metric for a non-nil value and the unknown sentinel otherwise.
func MetricFrom(v *float64) *Metric {
	if v == nil {
		return UnknownMetric()
	}
	return KnownMetric(*v)
}

// Player is a read-only contract projection joined with recent performance.
type Player struct {
	ID                 int64
	Name               string
	Age                int
	Position           Position
	Team               string
	ContractType       ContractType
	ProjectedAAV       float64
	ProjectedTerm      int
	ValueTier          ValueTier
	ContractValueScore *int
	ValuePerGAR        *float64
	ValueAssessment    string

	RecentProduction    *float64
	RecentGAR           *float64
	PointsPerGame       *float64
	SavePercentage      *Metric
	GoalsAgainstAverage *Metric
	ProjectedGAR2526    *float64
}

// Normalize enforces the goalie/skater split: goalies carry save percentage and
// GAA (possibly unknown) and no scoring summary, skaters the reverse.
func Normalize(p Player) Player {
	if p.Position.IsGoalie() {
		p.PointsPerGame = nil
		p.RecentProduction = nil
		if p.SavePercentage == nil {
			p.SavePercentage = UnknownMetric()
		}
		if p.GoalsAgainstAverage == nil {
			p.GoalsAgainstAverage = UnknownMetric()
		}
		return p
	}

	p.SavePercentage = nil
	p.GoalsAgainstAverage = nil
	return p
}
