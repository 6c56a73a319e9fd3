package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(players []Player) []int64 {
	out := make([]int64, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestSortPlayers(t *testing.T) {
	base := []Player{
		{ID: 1, Name: "connor", Age: 28, ProjectedAAV: 15.5, ProjectedTerm: 8, ValueTier: TierFairDeal},
		{ID: 2, Name: "Auston", Age: 27, ProjectedAAV: 13.25, ProjectedTerm: 7, ValueTier: TierBargain},
		{ID: 3, Name: "Brady", Age: 27, ProjectedAAV: 9.0, ProjectedTerm: 8},
		{ID: 4, Name: "Mitch", Age: 33, ProjectedAAV: 9.0, ProjectedTerm: 3, ValueTier: TierOverpay},
	}

	tests := []struct {
		name string
		sort Sort
		want []int64
	}{
		{name: "none keeps order", sort: Sort{}, want: []int64{1, 2, 3, 4}},
		{name: "name asc case insensitive", sort: Sort{Field: SortName}, want: []int64{2, 3, 1, 4}},
		{name: "age asc stable", sort: Sort{Field: SortAge}, want: []int64{2, 3, 1, 4}},
		{name: "aav asc stable", sort: Sort{Field: SortProjectedAAV}, want: []int64{3, 4, 2, 1}},
		{name: "term desc", sort: Sort{Field: SortProjectedTerm, Desc: true}, want: []int64{1, 3, 2, 4}},
		{name: "tier unspecified last", sort: Sort{Field: SortValueTier}, want: []int64{2, 1, 4, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			players := append([]Player(nil), base...)
			SortPlayers(players, tc.sort)
			assert.Equal(t, tc.want, ids(players))
		})
	}
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("projectedAav")
	require.NoError(t, err)
	assert.Equal(t, SortProjectedAAV, f)

	f, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, f)

	_, err = ParseSortField("salary")
	assert.Error(t, err)
}

func TestOrderByIDs(t *testing.T) {
	players := []Player{{ID: 3}, {ID: 1}, {ID: 2}}
	got := OrderByIDs(players, []int64{2, 9, 3, 2, 1})
	assert.Equal(t, []int64{2, 3, 1}, ids(got))
}
