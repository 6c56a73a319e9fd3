package postgres

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type statsPlayerModel struct {
	PlayerID     int64          `db:"player_id"`
	Team         sql.NullString `db:"prev_team"`
	Position     sql.NullString `db:"position"`
	ContractType sql.NullString `db:"contract_type"`
}

// statsSeasonValuesModel holds one season of the wide stats row after the
// per-season column suffix has been stripped by the unpivot.
type statsSeasonValuesModel struct {
	Season                     string              `db:"season"`
	GamesPlayed                decimal.NullDecimal `db:"gp"`
	Goals                      decimal.NullDecimal `db:"goals"`
	Assists                    decimal.NullDecimal `db:"a1"`
	Points                     decimal.NullDecimal `db:"points"`
	TimeOnIce                  decimal.NullDecimal `db:"toi"`
	Giveaways                  decimal.NullDecimal `db:"giveaways"`
	Takeaways                  decimal.NullDecimal `db:"takeaways"`
	IndividualCorsiFor         decimal.NullDecimal `db:"icf"`
	IndividualExpectedGoals    decimal.NullDecimal `db:"ixg"`
	GAR                        decimal.NullDecimal `db:"gar"`
	WAR                        decimal.NullDecimal `db:"war"`
	CorsiForPercentage         decimal.NullDecimal `db:"cf_pct"`
	ExpectedGoals              decimal.NullDecimal `db:"xg"`
	ExpectedGoalsDifferential  decimal.NullDecimal `db:"xg_diff"`
	Wins                       decimal.NullDecimal `db:"wins"`
	Losses                     decimal.NullDecimal `db:"losses"`
	OTLosses                   decimal.NullDecimal `db:"ot_losses"`
	SavePercentage             decimal.NullDecimal `db:"sv_pct"`
	GoalsAgainstAverage        decimal.NullDecimal `db:"gaa"`
	Shutouts                   decimal.NullDecimal `db:"shutouts"`
	GoalsSavedAboveAverage     decimal.NullDecimal `db:"gsaa"`
	HighDangerSavePercentage   decimal.NullDecimal `db:"hd_sv_pct"`
	MediumDangerSavePercentage decimal.NullDecimal `db:"md_sv_pct"`
	LowDangerSavePercentage    decimal.NullDecimal `db:"ld_sv_pct"`
	QualityStartPercentage     decimal.NullDecimal `db:"qs_pct"`
}

type statsSeasonModel struct {
	statsPlayerModel
	statsSeasonValuesModel
}
