package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/nhl-fa-projections/internal/mocks/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

type fallbackCall struct {
	op, source, reason string
}

type recordingRecorder struct {
	calls []fallbackCall
}

func (r *recordingRecorder) IncFallback(op, source, reason string) {
	r.calls = append(r.calls, fallbackCall{op: op, source: source, reason: reason})
}

func newPlayerServiceUnderTest(t *testing.T) (*PlayerService, *playermock.Repository, *recordingRecorder) {
	t.Helper()

	repo := playermock.NewRepository(t)
	recorder := &recordingRecorder{}
	service := NewPlayerService(
		repo,
		SourceStore,
		memory.NewPlayerRepository(memory.SeedPlayers()),
		logging.NewNop(),
		recorder,
	)
	return service, repo, recorder
}

func TestPlayerService_ListPlayers_FromStore(t *testing.T) {
	t.Parallel()

	service, repo, recorder := newPlayerServiceUnderTest(t)
	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	stored := []player.Player{
		{ID: 10, Name: "Mitch Marner", ProjectedAAV: 12.1, Age: 28},
		{ID: 11, Name: "Sam Bennett", ProjectedAAV: 7.2, Age: 29},
	}

	repo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), player.ListFilter{}).
		Return(stored, nil).
		Once()

	got := service.ListPlayers(ctx, player.ListFilter{}, player.Sort{Field: player.SortAge, Desc: true})

	require.NoError(t, got.Err)
	assert.Equal(t, SourceStore, got.Source)
	assert.False(t, got.Degraded())
	require.Len(t, got.Data, 2)
	assert.Equal(t, int64(11), got.Data[0].ID)
	assert.Empty(t, recorder.calls)
}

func TestPlayerService_ListPlayers_StoreUnreachableServesMockList(t *testing.T) {
	t.Parallel()

	service, repo, recorder := newPlayerServiceUnderTest(t)
	storeErr := errors.Mark(errors.New("dial tcp: connection refused"), database.ErrConnectionUnavailable)

	repo.On("List", mock.Anything, player.ListFilter{}).Return(nil, storeErr).Once()

	got := service.ListPlayers(context.Background(), player.ListFilter{}, player.Sort{})

	assert.Equal(t, SourceMock, got.Source)
	assert.True(t, got.Degraded())
	assert.True(t, errors.Is(got.Err, database.ErrConnectionUnavailable))
	require.Len(t, got.Data, 2)
	assert.Equal(t, "Connor McDavid", got.Data[0].Name)
	assert.Equal(t, "Auston Matthews", got.Data[1].Name)
	assert.Equal(t, []fallbackCall{{op: "list_players", source: "mock", reason: "connection_unavailable"}}, recorder.calls)
}

func TestPlayerService_ListPlayers_FallbackHonoursFilter(t *testing.T) {
	t.Parallel()

	service, repo, _ := newPlayerServiceUnderTest(t)
	filter := player.ListFilter{Search: "matthews"}

	repo.On("List", mock.Anything, filter).Return(nil, errors.New("boom")).Once()

	got := service.ListPlayers(context.Background(), filter, player.Sort{})

	require.Len(t, got.Data, 1)
	assert.Equal(t, memory.PlayerIDAustonMatthews, got.Data[0].ID)
}

func TestPlayerService_ListPlayers_IsIdempotent(t *testing.T) {
	t.Parallel()

	service, repo, _ := newPlayerServiceUnderTest(t)
	stored := []player.Player{{ID: 1, Name: "A", ProjectedAAV: 9}, {ID: 2, Name: "B", ProjectedAAV: 8}}
	repo.
		On("List", mock.Anything, player.ListFilter{}).
		Return(func(context.Context, player.ListFilter) ([]player.Player, error) {
			return append([]player.Player(nil), stored...), nil
		}).
		Twice()

	first := service.ListPlayers(context.Background(), player.ListFilter{}, player.Sort{})
	second := service.ListPlayers(context.Background(), player.ListFilter{}, player.Sort{})

	assert.Equal(t, first, second)
}

func TestPlayerService_GetPlayer(t *testing.T) {
	t.Parallel()

	t.Run("found in store", func(t *testing.T) {
		service, repo, _ := newPlayerServiceUnderTest(t)
		repo.On("GetByID", mock.Anything, int64(42)).Return(player.Player{ID: 42, Name: "Brock Boeser"}, true, nil).Once()

		got := service.GetPlayer(context.Background(), 42)

		require.NotNil(t, got.Data)
		assert.Equal(t, "Brock Boeser", got.Data.Name)
		assert.Equal(t, SourceStore, got.Source)
		assert.False(t, got.Degraded())
	})

	t.Run("empty result falls back to mock", func(t *testing.T) {
		service, repo, recorder := newPlayerServiceUnderTest(t)
		repo.On("GetByID", mock.Anything, memory.PlayerIDConnorMcDavid).Return(player.Player{}, false, nil).Once()

		got := service.GetPlayer(context.Background(), memory.PlayerIDConnorMcDavid)

		require.NotNil(t, got.Data)
		assert.Equal(t, "Connor McDavid", got.Data.Name)
		assert.Equal(t, SourceMock, got.Source)
		assert.NoError(t, got.Err)
		assert.Equal(t, []fallbackCall{{op: "get_player", source: "mock", reason: "not_found"}}, recorder.calls)
	})

	t.Run("error falls back to mock", func(t *testing.T) {
		service, repo, _ := newPlayerServiceUnderTest(t)
		storeErr := errors.Mark(errors.New("syntax error"), database.ErrQueryFailed)
		repo.On("GetByID", mock.Anything, memory.PlayerIDAustonMatthews).Return(player.Player{}, false, storeErr).Once()

		got := service.GetPlayer(context.Background(), memory.PlayerIDAustonMatthews)

		require.NotNil(t, got.Data)
		assert.Equal(t, SourceMock, got.Source)
		assert.True(t, errors.Is(got.Err, database.ErrQueryFailed))
	})

	t.Run("absent everywhere is nil", func(t *testing.T) {
		service, repo, recorder := newPlayerServiceUnderTest(t)
		repo.On("GetByID", mock.Anything, int64(999999)).Return(player.Player{}, false, nil).Once()

		got := service.GetPlayer(context.Background(), 999999)

		assert.Nil(t, got.Data)
		assert.Equal(t, SourceStore, got.Source)
		assert.False(t, got.Degraded())
		assert.Empty(t, recorder.calls)
	})

	t.Run("absent everywhere after failure is degraded", func(t *testing.T) {
		service, repo, _ := newPlayerServiceUnderTest(t)
		repo.On("GetByID", mock.Anything, int64(999999)).Return(player.Player{}, false, errors.New("timeout")).Once()

		got := service.GetPlayer(context.Background(), 999999)

		assert.Nil(t, got.Data)
		assert.Equal(t, SourceEmpty, got.Source)
		assert.True(t, got.Degraded())
		assert.Error(t, got.Err)
	})
}

func TestPlayerService_GetPlayersByIDs(t *testing.T) {
	t.Parallel()

	t.Run("dedupes ids before querying", func(t *testing.T) {
		service, repo, _ := newPlayerServiceUnderTest(t)
		repo.On("GetByIDs", mock.Anything, []int64{3, 1}).Return([]player.Player{{ID: 1}, {ID: 3}}, nil).Once()

		got := service.GetPlayersByIDs(context.Background(), []int64{3, 1, 3})

		assert.Equal(t, SourceStore, got.Source)
		assert.Len(t, got.Data, 2)
	})

	t.Run("no ids skips the repository", func(t *testing.T) {
		service, _, _ := newPlayerServiceUnderTest(t)

		got := service.GetPlayersByIDs(context.Background(), nil)

		assert.NotNil(t, got.Data)
		assert.Empty(t, got.Data)
	})

	t.Run("failure returns matching mock players", func(t *testing.T) {
		service, repo, _ := newPlayerServiceUnderTest(t)
		repo.On("GetByIDs", mock.Anything, []int64{2, 77}).Return(nil, errors.New("boom")).Once()

		got := service.GetPlayersByIDs(context.Background(), []int64{2, 77})

		assert.Equal(t, SourceMock, got.Source)
		require.Len(t, got.Data, 1)
		assert.Equal(t, memory.PlayerIDAustonMatthews, got.Data[0].ID)
	})
}

func TestPlayerService_MockPrimarySourceIsNotDegraded(t *testing.T) {
	t.Parallel()

	mockRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	service := NewPlayerService(mockRepo, SourceMock, mockRepo, nil, nil)

	got := service.ListPlayers(context.Background(), player.ListFilter{}, player.Sort{})

	assert.Equal(t, SourceMock, got.Source)
	assert.False(t, got.Degraded())
	assert.Len(t, got.Data, 2)
}
