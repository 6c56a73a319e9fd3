package usecase

import (
	"context"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

// PlayerStatsService serves per-season stats with the empty fallback policy:
// a failed lookup yields an empty list, never substitute data. GAR series are
// the exception and fall back to the sample dataset so charts always render.
type PlayerStatsService struct {
	statsRepo playerstats.Repository
	source    Source
	garMock   playerstats.Repository
	logger    *logging.Logger
	recorder  FallbackRecorder
}

func NewPlayerStatsService(
	statsRepo playerstats.Repository,
	source Source,
	garMock playerstats.Repository,
	logger *logging.Logger,
	recorder FallbackRecorder,
) *PlayerStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if source == "" {
		source = SourceStore
	}

	return &PlayerStatsService{
		statsRepo: statsRepo,
		source:    source,
		garMock:   garMock,
		logger:    logger.Named("player_stats_service"),
		recorder:  recorder,
	}
}

// GetPlayerStats returns up to one entry per known season, oldest first.
// An unknown player yields an empty list from the configured source.
func (s *PlayerStatsService) GetPlayerStats(ctx context.Context, playerID int64) Result[[]playerstats.PlayerStat] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetPlayerStats")
	defer span.End()

	res := s.loadPlayerStats(ctx, playerID)
	annotateSpan(span, res)
	return res
}

func (s *PlayerStatsService) loadPlayerStats(ctx context.Context, playerID int64) Result[[]playerstats.PlayerStat] {
	empty := Result[[]playerstats.PlayerStat]{Data: []playerstats.PlayerStat{}, Source: s.source}

	exists, err := s.statsRepo.HasPlayer(ctx, playerID)
	if err != nil {
		return s.emptyStats(ctx, playerID, err)
	}
	if !exists {
		return empty
	}

	row, found, err := s.statsRepo.GetWideRow(ctx, playerID)
	if err != nil {
		return s.emptyStats(ctx, playerID, err)
	}
	if !found {
		return empty
	}

	empty.Data = playerstats.ExpandWideRow(row)
	return empty
}

func (s *PlayerStatsService) emptyStats(ctx context.Context, playerID int64, err error) Result[[]playerstats.PlayerStat] {
	const op = "get_player_stats"
	reason := fallbackReason(err)
	s.recorder.IncFallback(op, string(SourceEmpty), reason)
	s.logger.WarnContext(ctx, "player stats unavailable, serving empty list", "op", op, "player_id", playerID, "reason", reason, "error", err)

	return Result[[]playerstats.PlayerStat]{
		Data:     []playerstats.PlayerStat{},
		Source:   SourceEmpty,
		Fallback: true,
		Err:      err,
	}
}

// GetPlayerGarData returns the GAR trend of one player, oldest season first.
func (s *PlayerStatsService) GetPlayerGarData(ctx context.Context, playerID int64) Result[[]playerstats.GarData] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetPlayerGarData")
	defer span.End()

	res := Result[[]playerstats.GarData]{Data: []playerstats.GarData{}, Source: s.source}
	row, found, err := s.statsRepo.GetWideRow(ctx, playerID)
	switch {
	case err != nil:
		res = s.mockGar(ctx, "get_player_gar", []int64{playerID}, err)
	case found:
		res.Data = playerstats.GarSeries(row)
	}

	annotateSpan(span, res)
	return res
}

// GetPlayersGarData returns the GAR trends of several players grouped in the
// order of ids.
func (s *PlayerStatsService) GetPlayersGarData(ctx context.Context, ids []int64) Result[[]playerstats.GarData] {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetPlayersGarData")
	defer span.End()

	ids = uniqueIDs(ids)
	res := Result[[]playerstats.GarData]{Data: []playerstats.GarData{}, Source: s.source}
	if len(ids) == 0 {
		return res
	}

	rows, err := s.statsRepo.ListWideRows(ctx, ids)
	if err != nil {
		res = s.mockGar(ctx, "get_players_gar", ids, err)
	} else {
		res.Data = garInIDOrder(rows, ids)
	}

	annotateSpan(span, res)
	return res
}

func (s *PlayerStatsService) mockGar(ctx context.Context, op string, ids []int64, err error) Result[[]playerstats.GarData] {
	data := []playerstats.GarData{}
	if s.garMock != nil {
		rows, mockErr := s.garMock.ListWideRows(ctx, ids)
		if mockErr != nil {
			s.logger.ErrorContext(ctx, "fallback gar lookup failed", "op", op, "error", mockErr)
		} else {
			data = garInIDOrder(rows, ids)
		}
	}

	reason := fallbackReason(err)
	s.recorder.IncFallback(op, string(SourceMock), reason)
	s.logger.WarnContext(ctx, "gar data unavailable, serving sample series", "op", op, "reason", reason, "error", err)

	return Result[[]playerstats.GarData]{
		Data:     data,
		Source:   SourceMock,
		Fallback: true,
		Err:      err,
	}
}

func garInIDOrder(rows []playerstats.WideRow, ids []int64) []playerstats.GarData {
	byID := make(map[int64]playerstats.WideRow, len(rows))
	for _, row := range rows {
		byID[row.PlayerID] = row
	}

	out := make([]playerstats.GarData, 0, len(ids)*len(playerstats.Seasons))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, playerstats.GarSeries(row)...)
	}
	return out
}
