package postgres

import "github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"

type teamRowModel struct {
	ID                  int64  `db:"id"`
	Name                string `db:"name"`
	Abbreviation        string `db:"abbreviation"`
	PrimaryConferenceID int64  `db:"primary_conference_id"`
	IsUserControlled    bool   `db:"is_user_controlled"`
}

func (m teamRowModel) toDomain() team.Team {
	return team.Team{
		ID:                  m.ID,
		Name:                m.Name,
		Abbreviation:        m.Abbreviation,
		PrimaryConferenceID: m.PrimaryConferenceID,
		IsUserControlled:    m.IsUserControlled,
	}
}

type conferenceRowModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Tier int    `db:"tier"`
}

func (m conferenceRowModel) toDomain() team.Conference {
	return team.Conference{ID: m.ID, Name: m.Name, Tier: m.Tier}
}

type teamSeasonRowModel struct {
	ID               int64    `db:"id"`
	TeamID           int64    `db:"team_id"`
	SeasonID         int64    `db:"season_id"`
	ConferenceID     int64    `db:"conference_id"`
	Wins             int      `db:"wins"`
	Losses           int      `db:"losses"`
	ConferenceWins   int      `db:"conference_wins"`
	ConferenceLosses int      `db:"conference_losses"`
	PointsFor        *int     `db:"points_for"`
	PointsAgainst    *int     `db:"points_against"`
	OffensePPG       *float64 `db:"offense_ppg"`
	DefensePPG       *float64 `db:"defense_ppg"`
	Prestige         string   `db:"prestige"`
	TeamRating       string   `db:"team_rating"`
	FinalRank        *int     `db:"final_rank"`
	RecruitingRank   *int     `db:"recruiting_rank"`
}

func (m teamSeasonRowModel) toDomain() team.TeamSeason {
	return team.TeamSeason{
		ID:               m.ID,
		TeamID:           m.TeamID,
		SeasonID:         m.SeasonID,
		ConferenceID:     m.ConferenceID,
		Wins:             m.Wins,
		Losses:           m.Losses,
		ConferenceWins:   m.ConferenceWins,
		ConferenceLosses: m.ConferenceLosses,
		PointsFor:        m.PointsFor,
		PointsAgainst:    m.PointsAgainst,
		OffensePPG:       m.OffensePPG,
		DefensePPG:       m.DefensePPG,
		Prestige:         m.Prestige,
		TeamRating:       m.TeamRating,
		FinalRank:        m.FinalRank,
		RecruitingRank:   m.RecruitingRank,
	}
}

func teamSeasonArgs(row team.TeamSeason) map[string]any {
	return map[string]any{
		"team_id":           row.TeamID,
		"season_id":         row.SeasonID,
		"conference_id":     row.ConferenceID,
		"wins":              row.Wins,
		"losses":            row.Losses,
		"conference_wins":   row.ConferenceWins,
		"conference_losses": row.ConferenceLosses,
		"points_for":        row.PointsFor,
		"points_against":    row.PointsAgainst,
		"offense_ppg":       row.OffensePPG,
		"defense_ppg":       row.DefensePPG,
		"prestige":          row.Prestige,
		"team_rating":       row.TeamRating,
		"final_rank":        row.FinalRank,
		"recruiting_rank":   row.RecruitingRank,
	}
}
