package usecase

import (
	"context"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

// PlayerService serves contract projections with the mock fallback policy:
// any failure of the primary repository, and an empty single-player lookup,
// resolve to the fallback dataset.
type PlayerService struct {
	playerRepo player.Repository
	source     Source
	fallback   player.Repository
	logger     *logging.Logger
	recorder   FallbackRecorder
}

func NewPlayerService(
	playerRepo player.Repository,
	source Source,
	fallback player.Repository,
	logger *logging.Logger,
	recorder FallbackRecorder,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if source == "" {
		source = SourceStore
	}

	return &PlayerService{
		playerRepo: playerRepo,
		source:     source,
		fallback:   fallback,
		logger:     logger.Named("player_service"),
		recorder:   recorder,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, filter player.ListFilter, sort player.Sort) Result[[]player.Player] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	res := Result[[]player.Player]{Source: s.source}
	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		res = Result[[]player.Player]{
			Data:     s.fallbackList(ctx, filter),
			Source:   SourceMock,
			Fallback: true,
			Err:      err,
		}
		s.reportFallback(ctx, "list_players", res.Source, err)
	} else {
		res.Data = items
	}
	if res.Data == nil {
		res.Data = []player.Player{}
	}

	player.SortPlayers(res.Data, sort)
	annotateSpan(span, res)
	return res
}

// GetPlayer returns a nil Data when neither the primary repository nor the
// fallback dataset knows the id.
func (s *PlayerService) GetPlayer(ctx context.Context, id int64) Result[*player.Player] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err == nil && exists {
		res := Result[*player.Player]{Data: &item, Source: s.source}
		annotateSpan(span, res)
		return res
	}

	res := Result[*player.Player]{Source: s.source, Err: err}
	if mockItem, ok := s.fallbackByID(ctx, id); ok {
		res = Result[*player.Player]{Data: &mockItem, Source: SourceMock, Fallback: true, Err: err}
		s.reportFallback(ctx, "get_player", res.Source, err)
	} else if err != nil {
		res = Result[*player.Player]{Source: SourceEmpty, Fallback: true, Err: err}
		s.reportFallback(ctx, "get_player", res.Source, err)
	}

	annotateSpan(span, res)
	return res
}

// GetPlayersByIDs returns the players that matched in no particular order.
func (s *PlayerService) GetPlayersByIDs(ctx context.Context, ids []int64) Result[[]player.Player] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayersByIDs")
	defer span.End()

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return Result[[]player.Player]{Data: []player.Player{}, Source: s.source}
	}

	res := Result[[]player.Player]{Source: s.source}
	items, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		res = Result[[]player.Player]{
			Data:     s.fallbackByIDs(ctx, ids),
			Source:   SourceMock,
			Fallback: true,
			Err:      err,
		}
		s.reportFallback(ctx, "get_players_by_ids", res.Source, err)
	} else {
		res.Data = items
	}
	if res.Data == nil {
		res.Data = []player.Player{}
	}

	annotateSpan(span, res)
	return res
}

func (s *PlayerService) fallbackList(ctx context.Context, filter player.ListFilter) []player.Player {
	if s.fallback == nil {
		return []player.Player{}
	}
	items, err := s.fallback.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback player list failed", "error", err)
		return []player.Player{}
	}
	return items
}

func (s *PlayerService) fallbackByID(ctx context.Context, id int64) (player.Player, bool) {
	if s.fallback == nil {
		return player.Player{}, false
	}
	item, exists, err := s.fallback.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback player lookup failed", "player_id", id, "error", err)
		return player.Player{}, false
	}
	return item, exists
}

func (s *PlayerService) fallbackByIDs(ctx context.Context, ids []int64) []player.Player {
	if s.fallback == nil {
		return []player.Player{}
	}
	items, err := s.fallback.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback players lookup failed", "error", err)
		return []player.Player{}
	}
	return items
}

func (s *PlayerService) reportFallback(ctx context.Context, op string, source Source, err error) {
	reason := fallbackReason(err)
	s.recorder.IncFallback(op, string(source), reason)
	if err != nil {
		s.logger.WarnContext(ctx, "player data unavailable, serving fallback", "op", op, "source", source, "reason", reason, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "player missing from store, serving fallback", "op", op, "source", source)
}
