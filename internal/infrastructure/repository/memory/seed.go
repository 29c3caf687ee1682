package memory

import (
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

const (
	ConferenceIDBig12 = int64(1)
	ConferenceIDSEC   = int64(2)
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: 1, Year: 2025},
		{ID: 2, Year: 2026},
	}
}

func SeedConferences() []team.Conference {
	return []team.Conference{
		{ID: ConferenceIDBig12, Name: "Big 12", Tier: 1},
		{ID: ConferenceIDSEC, Name: "SEC", Tier: 1},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Kansas State", Abbreviation: "KSU", PrimaryConferenceID: ConferenceIDBig12, IsUserControlled: true},
		{ID: 2, Name: "Texas Tech", Abbreviation: "TTU", PrimaryConferenceID: ConferenceIDBig12},
		{ID: 3, Name: "Iowa State", Abbreviation: "ISU", PrimaryConferenceID: ConferenceIDBig12},
		{ID: 4, Name: "Baylor", Abbreviation: "BAY", PrimaryConferenceID: ConferenceIDBig12},
		{ID: 5, Name: "Utah", Abbreviation: "UTAH", PrimaryConferenceID: ConferenceIDBig12},
		{ID: 6, Name: "TCU", Abbreviation: "TCU", PrimaryConferenceID: ConferenceIDBig12},
		{ID: 7, Name: "Georgia", Abbreviation: "UGA", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 8, Name: "Alabama", Abbreviation: "ALA", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 9, Name: "Texas", Abbreviation: "TEX", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 10, Name: "Tennessee", Abbreviation: "TENN", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 11, Name: "Ole Miss", Abbreviation: "MISS", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 12, Name: "LSU", Abbreviation: "LSU", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 13, Name: "Missouri", Abbreviation: "MIZ", PrimaryConferenceID: ConferenceIDSEC},
		{ID: 14, Name: "Oklahoma State", Abbreviation: "OKST", PrimaryConferenceID: ConferenceIDBig12},
	}
}

func SeedTeamSeasons() []team.TeamSeason {
	ranks := map[int64]int{
		7: 1, 8: 2, 9: 3, 1: 4, 10: 5, 2: 6,
		11: 7, 3: 8, 12: 9, 4: 10, 13: 11, 5: 12,
	}
	wins := map[int64]int{
		7: 12, 8: 11, 9: 11, 1: 10, 10: 10, 2: 9,
		11: 9, 3: 9, 12: 8, 4: 8, 13: 8, 5: 7,
		6: 5, 14: 4,
	}

	rows := make([]team.TeamSeason, 0, len(SeedTeams()))
	for _, t := range SeedTeams() {
		row := team.TeamSeason{
			TeamID:       t.ID,
			SeasonID:     1,
			ConferenceID: t.PrimaryConferenceID,
			Wins:         wins[t.ID],
			Losses:       12 - wins[t.ID],
		}
		row.ConferenceWins = row.Wins * 2 / 3
		row.ConferenceLosses = 8 - row.ConferenceWins
		if rank, ok := ranks[t.ID]; ok {
			r := rank
			row.FinalRank = &r
		}
		rows = append(rows, row)
	}
	return rows
}

func SeedPlayers() []player.Player {
	teamID := int64(1)
	return []player.Player{
		{ID: 1, Name: "Avery Johnson", Position: "QB", TeamID: &teamID},
		{ID: 2, Name: "Dylan Edwards", Position: "RB", TeamID: &teamID},
		{ID: 3, Name: "Jayce Brown", Position: "WR", TeamID: &teamID},
		{ID: 4, Name: "Garrett Oakley", Position: "TE", TeamID: &teamID},
		{ID: 5, Name: "Easton Kilty", Position: "OT", TeamID: &teamID},
		{ID: 6, Name: "Damian Ilalio", Position: "DL", TeamID: &teamID},
		{ID: 7, Name: "Austin Romaine", Position: "LB", TeamID: &teamID},
		{ID: 8, Name: "Jacob Parrish", Position: "CB", TeamID: &teamID},
	}
}

func SeedPlayerSeasons() []player.SeasonRecord {
	classes := map[int64]player.Class{
		1: player.ClassJunior,
		2: player.ClassJunior,
		3: player.ClassSophomore,
		4: player.ClassSenior,
		5: player.ClassFreshman,
		6: player.ClassSophomore,
		7: player.ClassJunior,
		8: player.ClassSenior,
	}

	records := make([]player.SeasonRecord, 0, len(classes))
	for _, p := range SeedPlayers() {
		ovr := 75 + int(p.ID)%15
		records = append(records, player.SeasonRecord{
			PlayerID:  p.ID,
			SeasonID:  1,
			TeamID:    1,
			Class:     classes[p.ID],
			OvrRating: &ovr,
		})
	}
	return records
}
