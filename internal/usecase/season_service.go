package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// TeamSeasonView is a team-season row joined with display names.
// NationalRank is positional within a top-25 listing, nil elsewhere.
type TeamSeasonView struct {
	team.TeamSeason
	TeamName       string
	ConferenceName string
	NationalRank   *int
}

// TeamSeasonUpdate is a partial update; nil fields are left untouched.
type TeamSeasonUpdate struct {
	Wins             *int
	Losses           *int
	ConferenceWins   *int
	ConferenceLosses *int
	PointsFor        *int
	PointsAgainst    *int
	Prestige         *string
	TeamRating       *string
	FinalRank        *int
	RecruitingRank   *int
	ConferenceID     *int64
}

// ConferenceStanding is one conference's table, best record first.
type ConferenceStanding struct {
	ConferenceID   int64
	ConferenceName string
	Teams          []TeamSeasonView
}

type SeasonService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
}

func NewSeasonService(seasonRepo season.Repository, teamRepo team.Repository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo, teamRepo: teamRepo}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.List")
	defer span.End()

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

// Create adds a season. A nil year means one past the latest season, or
// the current calendar year for an empty store. Duplicate years are
// rejected.
func (s *SeasonService) Create(ctx context.Context, year *int) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Create")
	defer span.End()

	y := 0
	if year != nil {
		y = *year
	} else {
		latest, exists, err := s.seasonRepo.Latest(ctx)
		if err != nil {
			return season.Season{}, fmt.Errorf("get latest season: %w", err)
		}
		if exists {
			y = latest.Year + 1
		} else {
			y = time.Now().Year()
		}
	}
	if err := (season.Season{Year: y}).Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, exists, err := s.seasonRepo.GetByYear(ctx, y); err != nil {
		return season.Season{}, fmt.Errorf("get season by year: %w", err)
	} else if exists {
		return season.Season{}, fmt.Errorf("%w: season for year %d already exists", ErrInvalidInput, y)
	}
	created, err := s.seasonRepo.Create(ctx, y)
	if err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}
	return created, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID int64) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Get")
	defer span.End()

	if seasonID <= 0 {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return item, nil
}

// TeamSeasons lists a season's team rows. With all=false only the
// current top 25 by final rank is returned, with positional national
// ranks attached.
func (s *SeasonService) TeamSeasons(ctx context.Context, seasonID int64, all bool) ([]TeamSeasonView, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.TeamSeasons")
	defer span.End()

	if _, err := s.Get(ctx, seasonID); err != nil {
		return nil, err
	}
	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	views, err := s.joinNames(ctx, rows)
	if err != nil {
		return nil, err
	}
	if all {
		return views, nil
	}
	ranked := views[:0:0]
	for _, v := range views {
		if v.FinalRank != nil && *v.FinalRank <= 25 {
			ranked = append(ranked, v)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return *ranked[i].FinalRank < *ranked[j].FinalRank })
	for i := range ranked {
		pos := i + 1
		ranked[i].NationalRank = &pos
	}
	return ranked, nil
}

// UpsertTeamSeason applies a partial stats update, creating the row
// with the team's primary conference when it does not exist yet.
func (s *SeasonService) UpsertTeamSeason(ctx context.Context, seasonID, teamID int64, update TeamSeasonUpdate) (team.TeamSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.UpsertTeamSeason")
	defer span.End()

	if _, err := s.Get(ctx, seasonID); err != nil {
		return team.TeamSeason{}, err
	}
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.TeamSeason{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.TeamSeason{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return team.TeamSeason{}, fmt.Errorf("list team seasons: %w", err)
	}
	row := team.TeamSeason{TeamID: teamID, SeasonID: seasonID, ConferenceID: t.PrimaryConferenceID}
	for _, existing := range rows {
		if existing.TeamID == teamID {
			row = existing
			break
		}
	}
	applyUpdate(&row, update)
	saved, err := s.teamRepo.UpsertSeasonRow(ctx, row)
	if err != nil {
		return team.TeamSeason{}, fmt.Errorf("upsert team season: %w", err)
	}
	return saved, nil
}

// Standings groups a season's teams by conference, best record first.
func (s *SeasonService) Standings(ctx context.Context, seasonID int64) ([]ConferenceStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Standings")
	defer span.End()

	if _, err := s.Get(ctx, seasonID); err != nil {
		return nil, err
	}
	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	views, err := s.joinNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	byConf := map[int64][]TeamSeasonView{}
	for _, v := range views {
		byConf[v.ConferenceID] = append(byConf[v.ConferenceID], v)
	}
	out := make([]ConferenceStanding, 0, len(byConf))
	for confID, confRows := range byConf {
		sort.SliceStable(confRows, func(i, j int) bool {
			if confRows[i].ConferenceWins != confRows[j].ConferenceWins {
				return confRows[i].ConferenceWins > confRows[j].ConferenceWins
			}
			if confRows[i].Wins != confRows[j].Wins {
				return confRows[i].Wins > confRows[j].Wins
			}
			return confRows[i].TeamID < confRows[j].TeamID
		})
		standing := ConferenceStanding{ConferenceID: confID, Teams: confRows}
		if len(confRows) > 0 {
			standing.ConferenceName = confRows[0].ConferenceName
		}
		out = append(out, standing)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConferenceID < out[j].ConferenceID })
	return out, nil
}

// AssignTop25 ranks the season's 25 winningest teams into final_rank
// and clears the rank everywhere else.
func (s *SeasonService) AssignTop25(ctx context.Context, seasonID int64) ([]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.AssignTop25")
	defer span.End()

	if _, err := s.Get(ctx, seasonID); err != nil {
		return nil, err
	}
	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].TeamID > rows[j].TeamID
	})
	assigned := make([]int64, 0, 25)
	for i := range rows {
		if i < 25 {
			rank := i + 1
			rows[i].FinalRank = &rank
			assigned = append(assigned, rows[i].TeamID)
		} else {
			rows[i].FinalRank = nil
		}
	}
	if err := s.teamRepo.SaveSeasonRows(ctx, rows); err != nil {
		return nil, fmt.Errorf("save team seasons: %w", err)
	}
	return assigned, nil
}

func applyUpdate(row *team.TeamSeason, update TeamSeasonUpdate) {
	if update.Wins != nil {
		row.Wins = *update.Wins
	}
	if update.Losses != nil {
		row.Losses = *update.Losses
	}
	if update.ConferenceWins != nil {
		row.ConferenceWins = *update.ConferenceWins
	}
	if update.ConferenceLosses != nil {
		row.ConferenceLosses = *update.ConferenceLosses
	}
	if update.PointsFor != nil {
		row.PointsFor = update.PointsFor
	}
	if update.PointsAgainst != nil {
		row.PointsAgainst = update.PointsAgainst
	}
	if update.Prestige != nil {
		row.Prestige = *update.Prestige
	}
	if update.TeamRating != nil {
		row.TeamRating = *update.TeamRating
	}
	if update.FinalRank != nil {
		row.FinalRank = update.FinalRank
	}
	if update.RecruitingRank != nil {
		row.RecruitingRank = update.RecruitingRank
	}
	if update.ConferenceID != nil {
		row.ConferenceID = *update.ConferenceID
	}
}

func (s *SeasonService) joinNames(ctx context.Context, rows []team.TeamSeason) ([]TeamSeasonView, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	conferences, err := s.teamRepo.ListConferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	teamsByID := make(map[int64]team.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}
	confsByID := make(map[int64]team.Conference, len(conferences))
	for _, c := range conferences {
		confsByID[c.ID] = c
	}
	views := make([]TeamSeasonView, 0, len(rows))
	for _, row := range rows {
		v := TeamSeasonView{TeamSeason: row}
		if t, ok := teamsByID[row.TeamID]; ok {
			v.TeamName = t.Name
		}
		if c, ok := confsByID[row.ConferenceID]; ok {
			v.ConferenceName = c.Name
		}
		views = append(views, v)
	}
	return views, nil
}
