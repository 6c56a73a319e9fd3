package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	qb "github.com/riskibarqy/nhl-fa-projections/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db querier
}

func NewPlayerStatsRepository(db *database.Provider) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

var (
	statsPlayerColumns = qb.MustColumnsOf(statsPlayerModel{}, "s")
	statsSeasonColumns = qb.MustColumnsOf(statsSeasonValuesModel{}, "v")
	statsSeasonSource  = buildStatsSeasonSource()
)

// buildStatsSeasonSource unpivots the wide stats row into one row per season:
// goals_22_23, goals_23_24 and goals_24_25 all surface as v.goals.
func buildStatsSeasonSource() string {
	metrics := make([]string, 0, len(statsSeasonColumns))
	for _, col := range statsSeasonColumns {
		name := strings.TrimPrefix(col, "v.")
		if name == "season" {
			continue
		}
		metrics = append(metrics, name)
	}

	var b strings.Builder
	b.WriteString("stats s CROSS JOIN LATERAL (VALUES ")
	for i, season := range playerstats.Seasons {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("('")
		b.WriteString(season.Suffix())
		b.WriteString("'")
		for _, m := range metrics {
			b.WriteString(", s.")
			b.WriteString(m)
			b.WriteByte('_')
			b.WriteString(season.Suffix())
		}
		b.WriteString(")")
	}
	b.WriteString(") AS v(season, ")
	b.WriteString(strings.Join(metrics, ", "))
	b.WriteString(")")
	return b.String()
}

func statsSeasonQuery(condition qb.Condition) (string, []any, error) {
	columns := make([]string, 0, len(statsPlayerColumns)+len(statsSeasonColumns))
	columns = append(columns, statsPlayerColumns...)
	columns = append(columns, statsSeasonColumns...)
	return qb.Select(columns...).
		From(statsSeasonSource).
		Where(condition).
		OrderBy("s.player_id", "v.season").
		ToSQL()
}

func (r *PlayerStatsRepository) HasPlayer(ctx context.Context, playerID int64) (bool, error) {
	query, args, err := qb.Select("s.player_id").
		From("stats s").
		Where(qb.Eq("s.player_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build stats existence query: %w", err)
	}

	var ids []int64
	if err := r.db.Select(ctx, "has_player_stats", &ids, query, args...); err != nil {
		return false, fmt.Errorf("select stats existence: %w", err)
	}
	return len(ids) > 0, nil
}

func (r *PlayerStatsRepository) GetWideRow(ctx context.Context, playerID int64) (playerstats.WideRow, bool, error) {
	query, args, err := statsSeasonQuery(qb.Eq("s.player_id", playerID))
	if err != nil {
		return playerstats.WideRow{}, false, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []statsSeasonModel
	if err := r.db.Select(ctx, "get_player_stats", &rows, query, args...); err != nil {
		return playerstats.WideRow{}, false, fmt.Errorf("select player stats: %w", err)
	}

	wide := groupWideRows(rows)
	if len(wide) == 0 {
		return playerstats.WideRow{}, false, nil
	}
	return wide[0], true, nil
}

func (r *PlayerStatsRepository) ListWideRows(ctx context.Context, playerIDs []int64) ([]playerstats.WideRow, error) {
	if len(playerIDs) == 0 {
		return []playerstats.WideRow{}, nil
	}

	query, args, err := statsSeasonQuery(qb.Expr("s.player_id = ANY(?)", pq.Array(playerIDs)))
	if err != nil {
		return nil, fmt.Errorf("build select players stats query: %w", err)
	}

	var rows []statsSeasonModel
	if err := r.db.Select(ctx, "list_player_stats", &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players stats: %w", err)
	}
	return groupWideRows(rows), nil
}

// groupWideRows folds the unpivoted season rows back into one WideRow per
// player, keeping the order in which players first appear.
func groupWideRows(rows []statsSeasonModel) []playerstats.WideRow {
	out := make([]playerstats.WideRow, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		i, ok := index[row.PlayerID]
		if !ok {
			i = len(out)
			index[row.PlayerID] = i
			out = append(out, playerstats.WideRow{
				PlayerID:     row.PlayerID,
				Team:         nullString(row.Team),
				Position:     nullString(row.Position),
				ContractType: nullString(row.ContractType),
			})
		}
		out[i].Seasons = append(out[i].Seasons, mapSeasonRow(row.statsSeasonValuesModel))
	}
	return out
}

func mapSeasonRow(m statsSeasonValuesModel) playerstats.SeasonRow {
	return playerstats.SeasonRow{
		Season:                     playerstats.Season(m.Season),
		GamesPlayed:                decimalPtr(m.GamesPlayed),
		Goals:                      decimalPtr(m.Goals),
		Assists:                    decimalPtr(m.Assists),
		Points:                     decimalPtr(m.Points),
		TimeOnIce:                  decimalPtr(m.TimeOnIce),
		Giveaways:                  decimalPtr(m.Giveaways),
		Takeaways:                  decimalPtr(m.Takeaways),
		IndividualCorsiFor:         decimalPtr(m.IndividualCorsiFor),
		IndividualExpectedGoals:    decimalPtr(m.IndividualExpectedGoals),
		GAR:                        decimalPtr(m.GAR),
		WAR:                        decimalPtr(m.WAR),
		CorsiForPercentage:         decimalPtr(m.CorsiForPercentage),
		ExpectedGoals:              decimalPtr(m.ExpectedGoals),
		ExpectedGoalsDifferential:  decimalPtr(m.ExpectedGoalsDifferential),
		Wins:                       decimalPtr(m.Wins),
		Losses:                     decimalPtr(m.Losses),
		OTLosses:                   decimalPtr(m.OTLosses),
		SavePercentage:             decimalPtr(m.SavePercentage),
		GoalsAgainstAverage:        decimalPtr(m.GoalsAgainstAverage),
		Shutouts:                   decimalPtr(m.Shutouts),
		GoalsSavedAboveAverage:     decimalPtr(m.GoalsSavedAboveAverage),
		HighDangerSavePercentage:   decimalPtr(m.HighDangerSavePercentage),
		MediumDangerSavePercentage: decimalPtr(m.MediumDangerSavePercentage),
		LowDangerSavePercentage:    decimalPtr(m.LowDangerSavePercentage),
		QualityStartPercentage:     decimalPtr(m.QualityStartPercentage),
	}
}
