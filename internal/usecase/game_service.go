package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// ScoreUpdate is a partial score entry; nil fields are left untouched.
type ScoreUpdate struct {
	HomeScore *int
	AwayScore *int
}

// GameService owns the regular-season schedule: creating matchups and
// recording final scores that the stat recompute later aggregates.
// Playoff rows are read-only here; their results go through the bracket.
type GameService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
}

func NewGameService(seasonRepo season.Repository, teamRepo team.Repository, gameRepo game.Repository) *GameService {
	return &GameService{seasonRepo: seasonRepo, teamRepo: teamRepo, gameRepo: gameRepo}
}

func (s *GameService) ListSeasonGames(ctx context.Context, seasonID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.ListSeasonGames")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	return games, nil
}

func (s *GameService) Get(ctx context.Context, gameID int64) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.Get")
	defer span.End()

	if gameID <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	g, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}
	return g, nil
}

// Create schedules a regular-season matchup. Both teams must exist and
// differ; the game starts unplayed.
func (s *GameService) Create(ctx context.Context, seasonID int64, week int, homeTeamID, awayTeamID int64) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.Create")
	defer span.End()

	if err := s.requireSeason(ctx, seasonID); err != nil {
		return game.Game{}, err
	}
	if week < 1 {
		return game.Game{}, fmt.Errorf("%w: week must be at least 1", ErrInvalidInput)
	}
	if homeTeamID == awayTeamID {
		return game.Game{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	for _, teamID := range []int64{homeTeamID, awayTeamID} {
		if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return game.Game{}, fmt.Errorf("get team: %w", err)
		} else if !exists {
			return game.Game{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
		}
	}

	created, err := s.gameRepo.Create(ctx, game.Game{
		SeasonID:   seasonID,
		Week:       week,
		HomeTeamID: &homeTeamID,
		AwayTeamID: &awayTeamID,
		GameType:   game.TypeRegular,
	})
	if err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

// UpdateScore records a final score on a regular-season game. Playoff
// games are rejected: their scores drive winner propagation and must be
// submitted through the playoff result endpoints.
func (s *GameService) UpdateScore(ctx context.Context, gameID int64, update ScoreUpdate) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.UpdateScore")
	defer span.End()

	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	if g.GameType == game.TypePlayoff {
		return game.Game{}, fmt.Errorf("%w: playoff scores must be submitted through the playoff result endpoint", ErrInvalidInput)
	}
	if update.HomeScore != nil {
		g.HomeScore = update.HomeScore
	}
	if update.AwayScore != nil {
		g.AwayScore = update.AwayScore
	}

	saved, err := s.gameRepo.Update(ctx, g)
	if err != nil {
		return game.Game{}, fmt.Errorf("update game score: %w", err)
	}
	return saved, nil
}

func (s *GameService) requireSeason(ctx context.Context, seasonID int64) error {
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		return fmt.Errorf("get season: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return nil
}
