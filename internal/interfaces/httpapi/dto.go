package httpapi

import (
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
)

type playerDTO struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Age                 int        `json:"age"`
	Position            string     `json:"position"`
	Team                string     `json:"team"`
	ContractType        string     `json:"contractType"`
	ProjectedAAV        float64    `json:"projectedAav"`
	ProjectedTerm       int        `json:"projectedTerm"`
	ValueTier           string     `json:"valueTier"`
	ValueAssessment     string     `json:"valueAssessment"`
	ContractValueScore  *int       `json:"contract_value_score,omitempty"`
	RecentProduction    *float64   `json:"recentProduction,omitempty"`
	RecentGAR           *float64   `json:"recentGar,omitempty"`
	PointsPerGame       *float64   `json:"pointsPerGame,omitempty"`
	SavePercentage      *metricDTO `json:"savePercentage,omitempty"`
	GoalsAgainstAverage *metricDTO `json:"goalsAgainstAverage,omitempty"`
	ProjectedGAR2526    *float64   `json:"projectedGar2526,omitempty"`
}

// metricDTO keeps "unknown" distinct from zero: Value is null when Known is false.
type metricDTO struct {
	Value *float64 `json:"value"`
	Known bool     `json:"known"`
}

type playerStatDTO struct {
	PlayerID    int64  `json:"playerId"`
	Season      string `json:"season"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	GamesPlayed int    `json:"gamesPlayed"`

	Goals                     *float64 `json:"goals,omitempty"`
	Assists                   *float64 `json:"assists,omitempty"`
	Points                    *float64 `json:"points,omitempty"`
	TimeOnIce                 *float64 `json:"timeOnIce,omitempty"`
	Giveaways                 *float64 `json:"giveaways,omitempty"`
	Takeaways                 *float64 `json:"takeaways,omitempty"`
	IndividualCorsiFor        *float64 `json:"individualCorsiFor,omitempty"`
	IndividualExpectedGoals   *float64 `json:"individualExpectedGoals,omitempty"`
	GoalsAboveReplacement     *float64 `json:"goalsAboveReplacement,omitempty"`
	WinsAboveReplacement      *float64 `json:"winsAboveReplacement,omitempty"`
	CorsiForPercentage        *float64 `json:"corsiForPercentage,omitempty"`
	ExpectedGoals             *float64 `json:"expectedGoals,omitempty"`
	ExpectedGoalsDifferential *float64 `json:"expectedGoalsDifferential,omitempty"`

	Wins                       *float64 `json:"wins,omitempty"`
	Losses                     *float64 `json:"losses,omitempty"`
	OTLosses                   *float64 `json:"otLosses,omitempty"`
	SavePercentage             *float64 `json:"savePercentage,omitempty"`
	GoalsAgainstAverage        *float64 `json:"goalsAgainstAverage,omitempty"`
	Shutouts                   *float64 `json:"shutouts,omitempty"`
	GoalsSavedAboveAverage     *float64 `json:"goalsSavedAboveAverage,omitempty"`
	HighDangerSavePercentage   *float64 `json:"highDangerSavePercentage,omitempty"`
	MediumDangerSavePercentage *float64 `json:"mediumDangerSavePercentage,omitempty"`
	LowDangerSavePercentage    *float64 `json:"lowDangerSavePercentage,omitempty"`
	QualityStartPercentage     *float64 `json:"qualityStartPercentage,omitempty"`
}

type garDataDTO struct {
	PlayerID int64   `json:"playerId"`
	Season   string  `json:"season"`
	GAR      float64 `json:"gar"`
}

type playerDetailDTO struct {
	Player playerDTO       `json:"player"`
	Stats  []playerStatDTO `json:"stats"`
	GAR    []garDataDTO    `json:"gar"`
}

type compareDTO struct {
	Players []playerDTO  `json:"players"`
	GAR     []garDataDTO `json:"gar"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:                  p.ID,
		Name:                p.Name,
		Age:                 p.Age,
		Position:            string(p.Position),
		Team:                p.Team,
		ContractType:        string(p.ContractType),
		ProjectedAAV:        p.ProjectedAAV,
		ProjectedTerm:       p.ProjectedTerm,
		ValueTier:           string(p.ValueTier),
		ValueAssessment:     p.ValueAssessment,
		ContractValueScore:  p.ContractValueScore,
		RecentProduction:    p.RecentProduction,
		RecentGAR:           p.RecentGAR,
		PointsPerGame:       p.PointsPerGame,
		SavePercentage:      metricToDTO(p.SavePercentage),
		GoalsAgainstAverage: metricToDTO(p.GoalsAgainstAverage),
		ProjectedGAR2526:    p.ProjectedGAR2526,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func metricToDTO(m *player.Metric) *metricDTO {
	if m == nil {
		return nil
	}
	return &metricDTO{Value: m.Value, Known: m.Known && m.Value != nil}
}

func statsToDTO(items []playerstats.PlayerStat) []playerStatDTO {
	out := make([]playerStatDTO, 0, len(items))
	for _, s := range items {
		out = append(out, playerStatDTO{
			PlayerID:    s.PlayerID,
			Season:      s.Season,
			Team:        s.Team,
			Position:    s.Position,
			GamesPlayed: s.GamesPlayed,

			Goals:                     s.Goals,
			Assists:                   s.Assists,
			Points:                    s.Points,
			TimeOnIce:                 s.TimeOnIce,
			Giveaways:                 s.Giveaways,
			Takeaways:                 s.Takeaways,
			IndividualCorsiFor:        s.IndividualCorsiFor,
			IndividualExpectedGoals:   s.IndividualExpectedGoals,
			GoalsAboveReplacement:     s.GoalsAboveReplacement,
			WinsAboveReplacement:      s.WinsAboveReplacement,
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
		})
	}
	return out
}

func garToDTO(items []playerstats.GarData) []garDataDTO {
	out := make([]garDataDTO, 0, len(items))
	for _, g := range items {
		out = append(out, garDataDTO{PlayerID: g.PlayerID, Season: g.Season, GAR: g.GAR})
	}
	return out
}
