package playerstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestSeasonLabel(t *testing.T) {
	assert.Equal(t, "2022-23", Season2223.Label())
	assert.Equal(t, "2024-25", Season2425.Label())
	assert.Equal(t, 2023, StartYear("2023-24"))
	assert.Equal(t, 0, StartYear("latest"))
}

func TestExpandWideRow_OnlyGARSeason(t *testing.T) {
	row := WideRow{
		PlayerID: 97,
		Team:     "Edmonton",
		Position: "C",
		Seasons: []SeasonRow{
			{Season: Season2223},
			{Season: Season2324, Giveaways: f(30)},
			{Season: Season2425, GAR: f(21.3)},
		},
	}

	stats := ExpandWideRow(row)

	require.Len(t, stats, 1)
	st := stats[0]
	assert.Equal(t, "2024-25", st.Season)
	assert.EqualValues(t, 97, st.PlayerID)
	require.NotNil(t, st.GoalsAboveReplacement)
	assert.InDelta(t, 21.3, *st.GoalsAboveReplacement, 1e-9)
	assert.Nil(t, st.Goals)
	assert.Nil(t, st.Assists)
	assert.Nil(t, st.Points)
	assert.Equal(t, DefaultGamesPlayed, st.GamesPlayed)
}

func TestExpandWideRow_PointsAndOrdering(t *testing.T) {
	row := WideRow{
		PlayerID: 1,
		Seasons: []SeasonRow{
			{Season: Season2223, Goals: f(64), Assists: f(89), GamesPlayed: f(82), Points: f(1)},
			{Season: Season2324, Goals: f(32), Points: f(132), GamesPlayed: f(76)},
			{Season: Season2425, TimeOnIce: f(1710.5)},
		},
	}

	stats := ExpandWideRow(row)

	require.Len(t, stats, 3)
	assert.Equal(t, []string{"2022-23", "2023-24", "2024-25"}, []string{stats[0].Season, stats[1].Season, stats[2].Season})

	require.NotNil(t, stats[0].Points)
	assert.InDelta(t, 153, *stats[0].Points, 1e-9)
	assert.Equal(t, 82, stats[0].GamesPlayed)

	require.NotNil(t, stats[1].Points, "stored points survive when assists are missing")
	assert.InDelta(t, 132, *stats[1].Points, 1e-9)
	assert.Equal(t, 76, stats[1].GamesPlayed)

	assert.Nil(t, stats[2].Points)
}

func TestExpandWideRow_EmptyRow(t *testing.T) {
	assert.Empty(t, ExpandWideRow(WideRow{PlayerID: 5, Seasons: []SeasonRow{{Season: Season2223}, {Season: Season2324}}}))
}

func TestSortNewestFirst(t *testing.T) {
	stats := []PlayerStat{{Season: "2022-23"}, {Season: "2024-25"}, {Season: "2023-24"}}
	SortNewestFirst(stats)
	assert.Equal(t, "2024-25", stats[0].Season)
	assert.Equal(t, "2023-24", stats[1].Season)
	assert.Equal(t, "2022-23", stats[2].Season)
}

func TestGarSeries(t *testing.T) {
	row := WideRow{
		PlayerID: 34,
		Seasons: []SeasonRow{
			{Season: Season2223, GAR: f(18.2)},
			{Season: Season2324, Goals: f(69)},
			{Season: Season2425, GAR: f(0)},
		},
	}

	got := GarSeries(row)

	assert.Equal(t, []GarData{
		{PlayerID: 34, Season: "2022-23", GAR: 18.2},
		{PlayerID: 34, Season: "2024-25", GAR: 0},
	}, got)
}
