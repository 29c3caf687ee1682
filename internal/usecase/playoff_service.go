package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/bracket"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// EligibleTeam is one row of the playoff-eligibility report.
type EligibleTeam struct {
	TeamID               int64
	TeamName             string
	FinalRank            *int
	ConferenceID         int64
	ConferenceName       string
	IsConferenceChampion bool
	Wins                 int
	Losses               int
}

// PlayoffService owns the bracket lifecycle: shell creation, seeding,
// and result reconciliation. Every mutation loads the season's playoff
// games, runs the pure bracket engine, and persists the whole game set
// in one transaction.
type PlayoffService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
}

func NewPlayoffService(seasonRepo season.Repository, teamRepo team.Repository, gameRepo game.Repository) *PlayoffService {
	return &PlayoffService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
	}
}

// Bracket returns the season's playoff games in canonical order. Round
// names are normalized when the shell is complete; a partial or missing
// shell is returned as-is so the caller can render whatever exists.
func (s *PlayoffService) Bracket(ctx context.Context, seasonID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.Bracket")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListPlayoffGames(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list playoff games: %w", err)
	}
	if len(games) == bracket.TotalGames {
		if b, err := bracket.Load(games); err == nil {
			return b.Games(), nil
		}
	}
	return games, nil
}

// CreateShell replaces the season's playoff games with the fixed empty
// 11-game structure.
func (s *PlayoffService) CreateShell(ctx context.Context, seasonID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.CreateShell")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ReplaceBracket(ctx, seasonID, bracket.NewShell(seasonID))
	if err != nil {
		return nil, fmt.Errorf("replace bracket: %w", err)
	}
	return games, nil
}

// SeedFromRankings seeds the bracket from the season's top twelve teams
// by final rank.
func (s *PlayoffService) SeedFromRankings(ctx context.Context, seasonID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.SeedFromRankings")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	ranked, err := s.teamRepo.RankedBySeason(ctx, seasonID, 12)
	if err != nil {
		return nil, fmt.Errorf("list ranked teams: %w", err)
	}
	if len(ranked) < 12 {
		return nil, fmt.Errorf("%w: not enough teams with final_rank to seed bracket (have %d)", ErrInvalidInput, len(ranked))
	}
	teamIDs := make([]int64, 0, 12)
	for _, row := range ranked[:12] {
		teamIDs = append(teamIDs, row.TeamID)
	}
	return s.seed(ctx, seasonID, teamIDs)
}

// SeedManual seeds the bracket from twelve team ids in seed order.
func (s *PlayoffService) SeedManual(ctx context.Context, seasonID int64, teamIDs []int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.SeedManual")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	if len(teamIDs) != 12 {
		return nil, fmt.Errorf("%w: team_ids must be a list of 12 team ids in seed order", ErrInvalidInput)
	}
	return s.seed(ctx, seasonID, teamIDs)
}

func (s *PlayoffService) seed(ctx context.Context, seasonID int64, teamIDs []int64) ([]game.Game, error) {
	b, err := s.loadBracket(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if err := b.Seed(teamIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.UpdatePlayoffGames(ctx, seasonID, b.Games()); err != nil {
		return nil, fmt.Errorf("save bracket: %w", err)
	}
	return b.Games(), nil
}

// SubmitResult records one game score and reconciles downstream rounds.
func (s *PlayoffService) SubmitResult(ctx context.Context, seasonID int64, result bracket.Result) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.SubmitResult")
	defer span.End()

	return s.submit(ctx, seasonID, []bracket.Result{result})
}

// SubmitResults records a batch of scores, then reconciles each
// affected round once in round order.
func (s *PlayoffService) SubmitResults(ctx context.Context, seasonID int64, results []bracket.Result) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.SubmitResults")
	defer span.End()

	return s.submit(ctx, seasonID, results)
}

func (s *PlayoffService) submit(ctx context.Context, seasonID int64, results []bracket.Result) ([]game.Game, error) {
	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: results must be a non-empty list", ErrInvalidInput)
	}
	b, err := s.loadBracket(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if err := b.ApplyResults(results); err != nil {
		if errors.Is(err, bracket.ErrGameNotFound) {
			return nil, fmt.Errorf("%w: game not found for this season", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.UpdatePlayoffGames(ctx, seasonID, b.Games()); err != nil {
		return nil, fmt.Errorf("save bracket: %w", err)
	}
	return b.Games(), nil
}

// EligibleTeams reports every team-season row with its conference and
// whether it holds the best record in that conference.
func (s *PlayoffService) EligibleTeams(ctx context.Context, seasonID int64) ([]EligibleTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayoffService.EligibleTeams")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
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

	champions := conferenceChampions(rows)

	out := make([]EligibleTeam, 0, len(rows))
	for _, row := range rows {
		et := EligibleTeam{
			TeamID:               row.TeamID,
			FinalRank:            row.FinalRank,
			ConferenceID:         row.ConferenceID,
			IsConferenceChampion: champions[row.ConferenceID] == row.TeamID,
			Wins:                 row.Wins,
			Losses:               row.Losses,
		}
		if t, ok := teamsByID[row.TeamID]; ok {
			et.TeamName = t.Name
		}
		if c, ok := confsByID[row.ConferenceID]; ok {
			et.ConferenceName = c.Name
		}
		out = append(out, et)
	}
	return out, nil
}

// conferenceChampions picks the best record per conference: most wins,
// then best final rank, then lowest team id.
func conferenceChampions(rows []team.TeamSeason) map[int64]int64 {
	byConf := map[int64][]team.TeamSeason{}
	for _, row := range rows {
		byConf[row.ConferenceID] = append(byConf[row.ConferenceID], row)
	}
	champions := make(map[int64]int64, len(byConf))
	for confID, confRows := range byConf {
		sort.SliceStable(confRows, func(i, j int) bool {
			if confRows[i].Wins != confRows[j].Wins {
				return confRows[i].Wins > confRows[j].Wins
			}
			ri, rj := rankOrLast(confRows[i].FinalRank), rankOrLast(confRows[j].FinalRank)
			if ri != rj {
				return ri < rj
			}
			return confRows[i].TeamID < confRows[j].TeamID
		})
		champions[confID] = confRows[0].TeamID
	}
	return champions
}

func rankOrLast(rank *int) int {
	if rank == nil {
		return 9999
	}
	return *rank
}

func (s *PlayoffService) requireSeason(ctx context.Context, seasonID int64) error {
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return nil
}

func (s *PlayoffService) loadBracket(ctx context.Context, seasonID int64) (*bracket.Bracket, error) {
	games, err := s.gameRepo.ListPlayoffGames(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list playoff games: %w", err)
	}
	b, err := bracket.Load(games)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	return b, nil
}
