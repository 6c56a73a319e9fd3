package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize_GoalieGetsMetricsAndDropsScoring(t *testing.T) {
	in := Player{
		Position:         PositionGoalie,
		PointsPerGame:    ptr(0.02),
		RecentProduction: ptr(2.0),
		SavePercentage:   KnownMetric(0.918),
	}

	out := Normalize(in)

	assert.Nil(t, out.PointsPerGame)
	assert.Nil(t, out.RecentProduction)
	require.NotNil(t, out.SavePercentage)
	assert.True(t, out.SavePercentage.Known)
	assert.InDelta(t, 0.918, *out.SavePercentage.Value, 1e-9)
	require.NotNil(t, out.GoalsAgainstAverage)
	assert.False(t, out.GoalsAgainstAverage.Known)
	assert.Nil(t, out.GoalsAgainstAverage.Value)
}

func TestNormalize_SkaterDropsGoalieMetrics(t *testing.T) {
	out := Normalize(Player{
		Position:            PositionDefenseman,
		PointsPerGame:       ptr(0.7),
		SavePercentage:      UnknownMetric(),
		GoalsAgainstAverage: KnownMetric(2.5),
	})

	assert.Nil(t, out.SavePercentage)
	assert.Nil(t, out.GoalsAgainstAverage)
	require.NotNil(t, out.PointsPerGame)
	assert.InDelta(t, 0.7, *out.PointsPerGame, 1e-9)
}

func TestMetricFrom(t *testing.T) {
	assert.False(t, MetricFrom(nil).Known)
	m := MetricFrom(ptr(2.41))
	assert.True(t, m.Known)
	assert.InDelta(t, 2.41, *m.Value, 1e-9)
}

func TestParsePositionAndTier(t *testing.T) {
	pos, err := ParsePosition(" lw ")
	require.NoError(t, err)
	assert.Equal(t, PositionLeftWing, pos)

	_, err = ParsePosition("GK")
	assert.Error(t, err)

	for in, want := range map[string]ValueTier{
		"Bargain":   TierBargain,
		"fair-deal": TierFairDeal,
		"Fair Deal": TierFairDeal,
		"OVERPAY":   TierOverpay,
	} {
		got, err := ParseValueTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err = ParseValueTier("steal")
	assert.Error(t, err)
}

func TestAssessValue(t *testing.T) {
	tests := []struct {
		name     string
		tier     ValueTier
		perGAR   *float64
		contains string
	}{
		{name: "bargain", tier: TierBargain, perGAR: ptr(0.4), contains: "surplus value"},
		{name: "fair deal", tier: TierFairDeal, perGAR: ptr(0.62), contains: "$0.62M per GAR"},
		{name: "overpay", tier: TierOverpay, perGAR: ptr(1.1), contains: "outpaces"},
		{name: "unspecified", tier: "", perGAR: nil, contains: "n/a per GAR"},
	}

	seen := make(map[string]struct{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := AssessValue(tc.tier, tc.perGAR)
			assert.Contains(t, text, tc.contains)
			seen[text] = struct{}{}
		})
	}
	assert.Len(t, seen, len(tests))
}
