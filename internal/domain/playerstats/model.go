package playerstats

// DefaultGamesPlayed stands in for a season whose games-played column is empty.
const DefaultGamesPlayed = 82

// PlayerStat is one player's line for one season. Optional metrics are nil when
// the store has no value; they are never zero-filled.
type PlayerStat struct {
	PlayerID    int64
	Season      string
	Team        string
	Position    string
	GamesPlayed int

	Goals                     *float64
	Assists                   *float64
	Points                    *float64
	TimeOnIce                 *float64
	Giveaways                 *float64
	Takeaways                 *float64
	IndividualCorsiFor        *float64
	IndividualExpectedGoals   *float64
	GoalsAboveReplacement     *float64
	WinsAboveReplacement      *float64
	CorsiForPercentage        *float64
	ExpectedGoals             *float64
	ExpectedGoalsDifferential *float64

	Wins                       *float64
	Losses                     *float64
	OTLosses                   *float64
	SavePercentage             *float64
	GoalsAgainstAverage        *float64
	Shutouts                   *float64
	GoalsSavedAboveAverage     *float64
	HighDangerSavePercentage   *float64
	MediumDangerSavePercentage *float64
	LowDangerSavePercentage    *float64
	QualityStartPercentage     *float64
}

// GarData is one point of a player's goals-above-replacement trend.
type GarData struct {
	PlayerID int64
	Season   string
	GAR      float64
}

// SeasonRow is the slice of a wide stats row that belongs to one season.
type SeasonRow struct {
	Season Season

	GamesPlayed               *float64
	Goals                     *float64
	Assists                   *float64
	Points                    *float64
	TimeOnIce                 *float64
	Giveaways                 *float64
	Takeaways                 *float64
	IndividualCorsiFor        *float64
	IndividualExpectedGoals   *float64
	GAR                       *float64
	WAR                       *float64
	CorsiForPercentage        *float64
	ExpectedGoals             *float64
	ExpectedGoalsDifferential *float64

	Wins                       *float64
	Losses                     *float64
	OTLosses                   *float64
	SavePercentage             *float64
	GoalsAgainstAverage        *float64
	Shutouts                   *float64
	GoalsSavedAboveAverage     *float64
	HighDangerSavePercentage   *float64
	MediumDangerSavePercentage *float64
	LowDangerSavePercentage    *float64
	QualityStartPercentage     *float64
}

// HasMeaningfulData reports whether the season carries any of goals, assists,
// time on ice or GAR. Seasons without them are omitted rather than zero-filled.
func (r SeasonRow) HasMeaningfulData() bool {
	return r.Goals != nil || r.Assists != nil || r.TimeOnIce != nil || r.GAR != nil
}

// WideRow is a player's single stats row with every season side by side.
type WideRow struct {
	PlayerID     int64
	Team         string
	Position     string
	ContractType string
	Seasons      []SeasonRow
}
