package memory

import (
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
)

const (
	PlayerIDConnorMcDavid  int64 = 1
	PlayerIDAustonMatthews int64 = 2
)

func f64(v float64) *float64 { return &v }

func score(v int) *int { return &v }

// SeedPlayers is the sample projection list served when the store cannot be used.
func SeedPlayers() []player.Player {
	return []player.Player{
		{
			ID:                 PlayerIDConnorMcDavid,
			Name:               "Connor McDavid",
			Age:                28,
			Position:           player.PositionCenter,
			Team:               "Edmonton",
			ContractType:       player.ContractUFA,
			ProjectedAAV:       15.5,
			ProjectedTerm:      8,
			ValueTier:          player.TierFairDeal,
			ContractValueScore: score(60),
			ValueAssessment:    "Elite center who drives play and produces at historic levels. Worth every penny of a max contract.",
			RecentProduction:   f64(152),
			RecentGAR:          f64(24.5),
			PointsPerGame:      f64(1.85),
			ProjectedGAR2526:   f64(25.2),
		},
		{
			ID:                 PlayerIDAustonMatthews,
			Name:               "Auston Matthews",
			Age:                27,
			Position:           player.PositionCenter,
			Team:               "Toronto",
			ContractType:       player.ContractUFA,
			ProjectedAAV:       13.25,
			ProjectedTerm:      7,
			ValueTier:          player.TierFairDeal,
			ContractValueScore: score(62),
			ValueAssessment:    "Premier goal scorer with strong two-way impact. A long-term deal near the top of the market is justified.",
			RecentProduction:   f64(107),
			RecentGAR:          f64(23.4),
			PointsPerGame:      f64(1.32),
			ProjectedGAR2526:   f64(19.8),
		},
	}
}

// SeedWideRows holds sample per-season stats for the seeded players.
func SeedWideRows() []playerstats.WideRow {
	return []playerstats.WideRow{
		{
			PlayerID:     PlayerIDConnorMcDavid,
			Team:         "Edmonton",
			Position:     string(player.PositionCenter),
			ContractType: string(player.ContractUFA),
			Seasons: []playerstats.SeasonRow{
				{Season: playerstats.Season2223, GamesPlayed: f64(82), Goals: f64(64), Assists: f64(89), TimeOnIce: f64(22.4), Giveaways: f64(71), Takeaways: f64(88), IndividualCorsiFor: f64(396), IndividualExpectedGoals: f64(39.8), GAR: f64(26.1), WAR: f64(4.6)},
				{Season: playerstats.Season2324, GamesPlayed: f64(76), Goals: f64(32), Assists: f64(100), TimeOnIce: f64(21.2), Giveaways: f64(65), Takeaways: f64(70), IndividualCorsiFor: f64(331), IndividualExpectedGoals: f64(31.2), GAR: f64(22.8), WAR: f64(4.0)},
				{Season: playerstats.Season2425, GamesPlayed: f64(67), Goals: f64(26), Assists: f64(74), TimeOnIce: f64(21.6), Giveaways: f64(52), Takeaways: f64(61), IndividualCorsiFor: f64(289), IndividualExpectedGoals: f64(27.5), GAR: f64(24.5), WAR: f64(4.3)},
			},
		},
		{
			PlayerID:     PlayerIDAustonMatthews,
			Team:         "Toronto",
			Position:     string(player.PositionCenter),
			ContractType: string(player.ContractUFA),
			Seasons: []playerstats.SeasonRow{
				{Season: playerstats.Season2223, GamesPlayed: f64(74), Goals: f64(40), Assists: f64(45), TimeOnIce: f64(20.8), Giveaways: f64(48), Takeaways: f64(69), IndividualCorsiFor: f64(421), IndividualExpectedGoals: f64(38.1), GAR: f64(15.9), WAR: f64(2.8)},
				{Season: playerstats.Season2324, GamesPlayed: f64(81), Goals: f64(69), Assists: f64(38), TimeOnIce: f64(20.9), Giveaways: f64(44), Takeaways: f64(77), IndividualCorsiFor: f64(512), IndividualExpectedGoals: f64(51.6), GAR: f64(23.4), WAR: f64(4.1)},
				{Season: playerstats.Season2425, GamesPlayed: f64(67), Goals: f64(33), Assists: f64(45), TimeOnIce: f64(20.5), Giveaways: f64(39), Takeaways: f64(58), IndividualCorsiFor: f64(362), IndividualExpectedGoals: f64(34.0), GAR: f64(17.2), WAR: f64(3.0)},
			},
		},
	}
}

// SeedGarData flattens the seeded GAR series of every sample player.
func SeedGarData() []playerstats.GarData {
	rows := SeedWideRows()
	out := make([]playerstats.GarData, 0, len(rows)*len(playerstats.Seasons))
	for _, row := range rows {
		out = append(out, playerstats.GarSeries(row)...)
	}
	return out
}
