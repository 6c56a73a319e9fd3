package postgres

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// projectedPlayerModel is one projected_contracts row joined with the derived
// columns computed from stats.
type projectedPlayerModel struct {
	PlayerID            int64               `db:"player_id"`
	PlayerName          string              `db:"player_name"`
	Age                 decimal.NullDecimal `db:"age"`
	Position            sql.NullString      `db:"position"`
	Team                sql.NullString      `db:"team"`
	ContractType        sql.NullString      `db:"contract_type"`
	AAV                 decimal.NullDecimal `db:"aav"`
	ContractTerm        decimal.NullDecimal `db:"contract_term"`
	ValueCategory       sql.NullString      `db:"value_category"`
	ValueScore          decimal.NullDecimal `db:"value_score"`
	ValuePerGAR         decimal.NullDecimal `db:"value_per_gar"`
	ProjectedGAR2526    decimal.NullDecimal `db:"projected_gar_25_26"`
	RecentProduction    decimal.NullDecimal `db:"recent_production"`
	RecentGAR           decimal.NullDecimal `db:"recent_gar"`
	RecentGamesPlayed   decimal.NullDecimal `db:"recent_games_played"`
	SavePercentage      decimal.NullDecimal `db:"save_percentage"`
	GoalsAgainstAverage decimal.NullDecimal `db:"goals_against_average"`
}
