package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	playermock "github.com/riskibarqy/nhl-fa-projections/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/nhl-fa-projections/internal/mocks/domain/playerstats"
	basecache "github.com/riskibarqy/nhl-fa-projections/internal/platform/cache"
)

func TestPlayerRepository_ListServesSecondCallFromCache(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))
	filter := player.ListFilter{Search: "McDavid"}

	next.On("List", mock.Anything, filter).
		Return([]player.Player{{ID: 1, Name: "Connor McDavid"}}, nil).
		Once()

	first, err := repo.List(t.Context(), filter)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(t.Context(), player.ListFilter{Search: "  mcdavid "})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Connor McDavid", second[0].Name)
}

func TestPlayerRepository_FailuresAreNotCached(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, int64(7)).
		Return(player.Player{}, false, errors.New("connection refused")).
		Once()
	next.On("GetByID", mock.Anything, int64(7)).
		Return(player.Player{ID: 7, Name: "Recovered"}, true, nil).
		Once()

	_, _, err := repo.GetByID(t.Context(), 7)
	require.Error(t, err)

	got, exists, err := repo.GetByID(t.Context(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Recovered", got.Name)

	got, exists, err = repo.GetByID(t.Context(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(7), got.ID)
}

func TestPlayerRepository_GetByIDsKeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByIDs", mock.Anything, []int64{2, 1}).
		Return([]player.Player{{ID: 1}, {ID: 2}}, nil).
		Once()

	_, err := repo.GetByIDs(t.Context(), []int64{2, 1})
	require.NoError(t, err)
	got, err := repo.GetByIDs(t.Context(), []int64{1, 2, 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := repo.GetByIDs(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPlayerStatsRepository_CachesRowsAndExistence(t *testing.T) {
	t.Parallel()

	gar := 24.5
	row := playerstats.WideRow{
		PlayerID: 1,
		Team:     "Edmonton",
		Position: "C",
		Seasons:  []playerstats.SeasonRow{{Season: playerstats.Season2425, GAR: &gar}},
	}

	next := playerstatsmock.NewRepository(t)
	repo := NewPlayerStatsRepository(next, basecache.NewStore(time.Minute))

	next.On("HasPlayer", mock.Anything, int64(1)).Return(true, nil).Once()
	next.On("GetWideRow", mock.Anything, int64(1)).Return(row, true, nil).Once()
	next.On("ListWideRows", mock.Anything, []int64{1}).Return([]playerstats.WideRow{row}, nil).Once()

	ctx := context.Background()
	for range 2 {
		exists, err := repo.HasPlayer(ctx, 1)
		require.NoError(t, err)
		assert.True(t, exists)

		got, found, err := repo.GetWideRow(ctx, 1)
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, got.Seasons, 1)
		got.Seasons[0].Season = playerstats.Season2223

		rows, err := repo.ListWideRows(ctx, []int64{1})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, playerstats.Season2425, rows[0].Seasons[0].Season)
	}
}

func TestIdsKey(t *testing.T) {
	assert.Equal(t, "1,2,3", idsKey([]int64{3, 1, 2, 3}))
	assert.Equal(t, "", idsKey(nil))
}
