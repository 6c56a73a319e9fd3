package playerstats

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Season identifies a hockey season by the column suffix used in the stats table.
type Season string

const (
	Season2223 Season = "22_23"
	Season2324 Season = "23_24"
	Season2425 Season = "24_25"
)

// Seasons is the fixed set of seasons the stats table carries, oldest first.
var Seasons = []Season{Season2223, Season2324, Season2425}

// Suffix is the column suffix, e.g. "24_25" for goals_24_25.
func (s Season) Suffix() string {
	return string(s)
}

// Label renders the season as "2024-25".
func (s Season) Label() string {
	start, end, ok := strings.Cut(string(s), "_")
	if !ok {
		return string(s)
	}
	return "20" + start + "-" + end
}

// StartYear parses the leading year of a season label. Labels it cannot parse sort last.
func StartYear(label string) int {
	head, _, _ := strings.Cut(label, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return year
}

// ExpandWideRow turns the per-season slices of one wide row into season
// records, oldest first. Seasons without meaningful data are skipped.
func ExpandWideRow(row WideRow) []PlayerStat {
	out := make([]PlayerStat, 0, len(row.Seasons))
	for _, s := range row.Seasons {
		if !s.HasMeaningfulData() {
			continue
		}
		out = append(out, expandSeason(row, s))
	}
	return out
}

func expandSeason(row WideRow, s SeasonRow) PlayerStat {
	gp := DefaultGamesPlayed
	if s.GamesPlayed != nil {
		gp = int(*s.GamesPlayed)
	}

	points := s.Points
	if s.Goals != nil && s.Assists != nil {
		sum := *s.Goals + *s.Assists
		points = &sum
	}

	return PlayerStat{
		PlayerID:    row.PlayerID,
		Season:      s.Season.Label(),
		Team:        row.Team,
		Position:    row.Position,
		GamesPlayed: gp,

		Goals:                     s.Goals,
		Assists:                   s.Assists,
		Points:                    points,
		TimeOnIce:                 s.TimeOnIce,
		Giveaways:                 s.Giveaways,
		Takeaways:                 s.Takeaways,
		IndividualCorsiFor:        s.IndividualCorsiFor,
		IndividualExpectedGoals:   s.IndividualExpectedGoals,
		GoalsAboveReplacement:     s.GAR,
		WinsAboveReplacement:      s.WAR,
		CorsiForPercentage:        s.CorsiForPercentage,
		ExpectedGoals:             s.ExpectedGoals,
		ExpectedGoalsDifferential: s.ExpectedGoalsDifferential,

		Wins:                       s.Wins,
		Losses:                     s.Losses,
		OTLosses:                   s.OTLosses,
		SavePercentage:             s.SavePercentage,
		GoalsAgainstAverage:        s.GoalsAgainstAverage,
		Shutouts:                   s.Shutouts,
		GoalsSavedAboveAverage:     s.GoalsSavedAboveAverage,
		HighDangerSavePercentage:   s.HighDangerSavePercentage,
		MediumDangerSavePercentage: s.MediumDangerSavePercentage,
		LowDangerSavePercentage:    s.LowDangerSavePercentage,
		QualityStartPercentage:     s.QualityStartPercentage,
	}
}

// SortNewestFirst orders stats by season, latest first.
func SortNewestFirst(stats []PlayerStat) {
	slices.SortStableFunc(stats, func(a, b PlayerStat) int {
		return cmp.Compare(StartYear(b.Season), StartYear(a.Season))
	})
}

// GarSeries emits one point per season that has a GAR value, oldest first.
func GarSeries(row WideRow) []GarData {
	out := make([]GarData, 0, len(row.Seasons))
	for _, s := range row.Seasons {
		if s.GAR == nil {
			continue
		}
		out = append(out, GarData{PlayerID: row.PlayerID, Season: s.Season.Label(), GAR: *s.GAR})
	}
	return out
}
