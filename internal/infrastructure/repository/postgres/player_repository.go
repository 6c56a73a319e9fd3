package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	qb "github.com/riskibarqy/nhl-fa-projections/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db querier
}

// Skater summaries and goalie metrics are derived from the latest season
// columns; which one a row gets is decided by stats.position.
var playerSelectColumns = []string{
	"pc.player_id",
	"pc.player_name",
	"pc.age",
	"s.position",
	"s.prev_team AS team",
	"s.contract_type",
	"pc.aav",
	"pc.contract_term",
	"pc.value_category",
	"pc.value_score",
	"pc.value_per_gar",
	"pc.projected_gar_25_26",
	"CASE WHEN s.position IS DISTINCT FROM 'G' THEN s.goals_24_25 + s.a1_24_25 END AS recent_production",
	"s.gar_24_25 AS recent_gar",
	"s.gp_24_25 AS recent_games_played",
	"CASE WHEN s.position = 'G' THEN s.sv_pct_24_25 END AS save_percentage",
	"CASE WHEN s.position = 'G' THEN s.gaa_24_25 END AS goals_against_average",
}

func NewPlayerRepository(db *database.Provider) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// playerQuery is the single join shared by every read. ids restricts the
// result to those players when non-nil.
func playerQuery(filter player.ListFilter, ids []int64, limit int) (string, []any, error) {
	b := qb.Select(playerSelectColumns...).
		From("projected_contracts pc").
		LeftJoin("stats s", "s.player_id = pc.player_id")

	if ids != nil {
		b.Where(qb.Expr("pc.player_id = ANY(?)", pq.Array(ids)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		b.Where(qb.ContainsFold("pc.player_name", term))
	}
	if filter.Position != "" {
		b.Where(qb.Eq("s.position", string(filter.Position)))
	}
	if filter.ValueTier != "" {
		b.Where(qb.Eq("pc.value_category", string(filter.ValueTier)))
	}
	if filter.ScoreBand != "" {
		lower, upper, err := filter.ScoreBand.Bounds()
		if err != nil {
			return "", nil, err
		}
		if lower != nil {
			b.Where(qb.Gte("pc.value_score", *lower))
		}
		if upper != nil {
			b.Where(qb.Lt("pc.value_score", *upper))
		}
	}

	return b.OrderBy("pc.aav DESC NULLS LAST", "pc.player_id").Limit(limit).ToSQL()
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	query, args, err := playerQuery(filter, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []projectedPlayerModel
	if err := r.db.Select(ctx, "list_players", &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return mapPlayers(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := playerQuery(player.ListFilter{}, []int64{id}, 1)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var rows []projectedPlayerModel
	if err := r.db.Select(ctx, "get_player", &rows, query, args...); err != nil {
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	if len(rows) == 0 {
		return player.Player{}, false, nil
	}

	return mapPlayer(rows[0]), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := playerQuery(player.ListFilter{}, ids, 0)
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []projectedPlayerModel
	if err := r.db.Select(ctx, "get_players_by_ids", &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return mapPlayers(rows), nil
}

func mapPlayers(rows []projectedPlayerModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayer(row))
	}
	return out
}

func mapPlayer(row projectedPlayerModel) player.Player {
	tier, err := player.ParseValueTier(nullString(row.ValueCategory))
	if err != nil {
		tier = ""
	}
	valuePerGAR := decimalPtr(row.ValuePerGAR)

	p := player.Player{
		ID:                 row.PlayerID,
		Name:               strings.TrimSpace(row.PlayerName),
		Position:           player.Position(strings.ToUpper(strings.TrimSpace(nullString(row.Position)))),
		Team:               nullString(row.Team),
		ContractType:       player.ContractType(strings.ToUpper(strings.TrimSpace(nullString(row.ContractType)))),
		ProjectedAAV:       decimalValue(row.AAV),
		ValueTier:          tier,
		ContractValueScore: decimalIntPtr(row.ValueScore),
		ValuePerGAR:        valuePerGAR,
		ValueAssessment:    player.AssessValue(tier, valuePerGAR),
		RecentProduction:   decimalPtr(row.RecentProduction),
		RecentGAR:          decimalPtr(row.RecentGAR),
		PointsPerGame:      pointsPerGame(row.RecentProduction, row.RecentGamesPlayed),
		ProjectedGAR2526:   decimalPtr(row.ProjectedGAR2526),
	}
	if age := decimalIntPtr(row.Age); age != nil {
		p.Age = *age
	}
	if term := decimalIntPtr(row.ContractTerm); term != nil {
		p.ProjectedTerm = *term
	}
	if p.Position.IsGoalie() {
		p.SavePercentage = player.MetricFrom(decimalPtr(row.SavePercentage))
		p.GoalsAgainstAverage = player.MetricFrom(decimalPtr(row.GoalsAgainstAverage))
	}

	return player.Normalize(p)
}

// pointsPerGame divides last season's production by games played, falling
// back to a full season when the games column is NULL or zero.
func pointsPerGame(production, gamesPlayed decimal.NullDecimal) *float64 {
	if !production.Valid {
		return nil
	}
	games := decimal.NewFromInt(playerstats.DefaultGamesPlayed)
	if gamesPlayed.Valid && gamesPlayed.Decimal.IsPositive() {
		games = gamesPlayed.Decimal
	}
	ppg := production.Decimal.DivRound(games, 2).InexactFloat64()
	return &ppg
}
