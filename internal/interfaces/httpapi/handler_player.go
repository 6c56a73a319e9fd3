package httpapi

import (
	"fmt"
	"net/http"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	"github.com/riskibarqy/nhl-fa-projections/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter, sort, err := h.parseListPlayersQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	res := h.playerService.ListPlayers(ctx, filter, sort)
	meta := resultMeta(res)
	annotateMeta(span, meta)
	if h.refuseDegraded(ctx, w, meta, res.Err) {
		return
	}

	writeData(ctx, w, playersToDTO(res.Data), meta)
}

// GetPlayerDetails loads the projection, the season stats and the GAR trend
// concurrently.
func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDetails")
	defer span.End()

	playerID, err := h.parsePlayerID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		playerRes usecase.Result[*player.Player]
		statsRes  usecase.Result[[]playerstats.PlayerStat]
		garRes    usecase.Result[[]playerstats.GarData]
	)
	var wg conc.WaitGroup
	wg.Go(func() { playerRes = h.playerService.GetPlayer(ctx, playerID) })
	wg.Go(func() { statsRes = h.playerStatsService.GetPlayerStats(ctx, playerID) })
	wg.Go(func() { garRes = h.playerStatsService.GetPlayerGarData(ctx, playerID) })
	wg.Wait()

	meta := combineMeta(map[string]responseMeta{
		"player": resultMeta(playerRes),
		"stats":  resultMeta(statsRes),
		"gar":    resultMeta(garRes),
	})
	annotateMeta(span, meta)
	if h.refuseDegraded(ctx, w, meta, playerRes.Err, statsRes.Err, garRes.Err) {
		return
	}
	if playerRes.Data == nil {
		writeError(ctx, w, fmt.Errorf("%w: player=%d", usecase.ErrNotFound, playerID))
		return
	}

	stats := statsRes.Data
	playerstats.SortNewestFirst(stats)

	writeData(ctx, w, playerDetailDTO{
		Player: playerToDTO(*playerRes.Data),
		Stats:  statsToDTO(stats),
		GAR:    garToDTO(garRes.Data),
	}, meta)
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID, err := h.parsePlayerID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := playerStatsQuery{Order: r.URL.Query().Get("order")}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	res := h.playerStatsService.GetPlayerStats(ctx, playerID)
	meta := resultMeta(res)
	annotateMeta(span, meta)
	if h.refuseDegraded(ctx, w, meta, res.Err) {
		return
	}

	if q.Order == "newest" {
		playerstats.SortNewestFirst(res.Data)
	}
	writeData(ctx, w, statsToDTO(res.Data), meta)
}

func (h *Handler) GetPlayerGar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerGar")
	defer span.End()

	playerID, err := h.parsePlayerID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	res := h.playerStatsService.GetPlayerGarData(ctx, playerID)
	meta := resultMeta(res)
	annotateMeta(span, meta)
	if h.refuseDegraded(ctx, w, meta, res.Err) {
		return
	}

	writeData(ctx, w, garToDTO(res.Data), meta)
}

// ComparePlayers returns the requested players in request order alongside
// their GAR trends.
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	ids, err := h.parseCompareIDs(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		playersRes usecase.Result[[]player.Player]
		garRes     usecase.Result[[]playerstats.GarData]
	)
	var wg conc.WaitGroup
	wg.Go(func() { playersRes = h.playerService.GetPlayersByIDs(ctx, ids) })
	wg.Go(func() { garRes = h.playerStatsService.GetPlayersGarData(ctx, ids) })
	wg.Wait()

	meta := combineMeta(map[string]responseMeta{
		"players": resultMeta(playersRes),
		"gar":     resultMeta(garRes),
	})
	annotateMeta(span, meta)
	if h.refuseDegraded(ctx, w, meta, playersRes.Err, garRes.Err) {
		return
	}

	players := player.OrderByIDs(playersRes.Data, ids)
	if len(players) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: none of the requested players exist", usecase.ErrNotFound))
		return
	}

	writeData(ctx, w, compareDTO{
		Players: playersToDTO(players),
		GAR:     garToDTO(garRes.Data),
	}, meta)
}
