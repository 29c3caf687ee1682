package postgres

import "github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"

type playerRowModel struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Position       string `db:"position"`
	TeamID         *int64 `db:"team_id"`
	RecruitStars   *int   `db:"recruit_stars"`
	RecruitRankNat *int   `db:"recruit_rank_nat"`
	HomeState      string `db:"home_state"`
	RedshirtUsed   bool   `db:"redshirt_used"`
}

func (m playerRowModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		Name:           m.Name,
		Position:       m.Position,
		TeamID:         m.TeamID,
		RecruitStars:   m.RecruitStars,
		RecruitRankNat: m.RecruitRankNat,
		HomeState:      m.HomeState,
		RedshirtUsed:   m.RedshirtUsed,
	}
}

func playerArgs(p player.Player) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"position":         p.Position,
		"team_id":          p.TeamID,
		"recruit_stars":    p.RecruitStars,
		"recruit_rank_nat": p.RecruitRankNat,
		"home_state":       p.HomeState,
		"redshirt_used":    p.RedshirtUsed,
	}
}

type playerSeasonRowModel struct {
	ID         int64  `db:"id"`
	PlayerID   int64  `db:"player_id"`
	SeasonID   int64  `db:"season_id"`
	TeamID     int64  `db:"team_id"`
	Class      string `db:"class"`
	Redshirted bool   `db:"redshirted"`
	OvrRating  *int   `db:"ovr_rating"`
	Speed      *int   `db:"speed"`
	DevTrait   string `db:"dev_trait"`
	Height     string `db:"height"`
	Weight     *int   `db:"weight"`

	GamesPlayed   *int `db:"games_played"`
	PassYards     *int `db:"pass_yards"`
	PassTDs       *int `db:"pass_tds"`
	RushYards     *int `db:"rush_yards"`
	RushTDs       *int `db:"rush_tds"`
	RecYards      *int `db:"rec_yards"`
	RecTDs        *int `db:"rec_tds"`
	Tackles       *int `db:"tackles"`
	Sacks         *int `db:"sacks"`
	Interceptions *int `db:"interceptions"`
}

func (m playerSeasonRowModel) toDomain() player.SeasonRecord {
	return player.SeasonRecord{
		ID:         m.ID,
		PlayerID:   m.PlayerID,
		SeasonID:   m.SeasonID,
		TeamID:     m.TeamID,
		Class:      player.Class(m.Class),
		Redshirted: m.Redshirted,
		OvrRating:  m.OvrRating,
		Speed:      m.Speed,
		DevTrait:   m.DevTrait,
		Height:     m.Height,
		Weight:     m.Weight,

		GamesPlayed:   m.GamesPlayed,
		PassYards:     m.PassYards,
		PassTDs:       m.PassTDs,
		RushYards:     m.RushYards,
		RushTDs:       m.RushTDs,
		RecYards:      m.RecYards,
		RecTDs:        m.RecTDs,
		Tackles:       m.Tackles,
		Sacks:         m.Sacks,
		Interceptions: m.Interceptions,
	}
}

func playerSeasonArgs(rec player.SeasonRecord) map[string]any {
	return map[string]any{
		"player_id":  rec.PlayerID,
		"season_id":  rec.SeasonID,
		"team_id":    rec.TeamID,
		"class":      string(rec.Class),
		"redshirted": rec.Redshirted,
		"ovr_rating": rec.OvrRating,
		"speed":      rec.Speed,
		"dev_trait":  rec.DevTrait,
		"height":     rec.Height,
		"weight":     rec.Weight,

		"games_played":  rec.GamesPlayed,
		"pass_yards":    rec.PassYards,
		"pass_tds":      rec.PassTDs,
		"rush_yards":    rec.RushYards,
		"rush_tds":      rec.RushTDs,
		"rec_yards":     rec.RecYards,
		"rec_tds":       rec.RecTDs,
		"tackles":       rec.Tackles,
		"sacks":         rec.Sacks,
		"interceptions": rec.Interceptions,
	}
}
