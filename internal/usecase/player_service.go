package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
)

// PlayerDetail is a player joined with their current season row when
// one exists.
type PlayerDetail struct {
	Player        player.Player
	CurrentSeason *player.SeasonRecord
}

type PlayerService struct {
	seasonRepo season.Repository
	playerRepo player.Repository
}

func NewPlayerService(seasonRepo season.Repository, playerRepo player.Repository) *PlayerService {
	return &PlayerService{seasonRepo: seasonRepo, playerRepo: playerRepo}
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Get")
	defer span.End()

	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, err
	}
	detail := PlayerDetail{Player: p}
	latest, exists, err := s.seasonRepo.Latest(ctx)
	if err != nil {
		return PlayerDetail{}, fmt.Errorf("get latest season: %w", err)
	}
	if exists {
		if rec, ok, err := s.playerRepo.GetSeasonRecord(ctx, playerID, latest.ID); err != nil {
			return PlayerDetail{}, fmt.Errorf("get season record: %w", err)
		} else if ok {
			detail.CurrentSeason = &rec
		}
	}
	return detail, nil
}

// Career returns every season row for a player, the full stat history.
func (s *PlayerService) Career(ctx context.Context, playerID int64) ([]player.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Career")
	defer span.End()

	if _, err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	records, err := s.playerRepo.ListCareer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list career records: %w", err)
	}
	return records, nil
}

// Roster lists a team's season rows for one season.
func (s *PlayerService) Roster(ctx context.Context, seasonID, teamID int64) ([]player.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.Roster")
	defer span.End()

	if seasonID <= 0 || teamID <= 0 {
		return nil, fmt.Errorf("%w: season id and team id are required", ErrInvalidInput)
	}
	records, err := s.playerRepo.ListRoster(ctx, seasonID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return records, nil
}

// ToggleRedshirt flips a player's redshirt for one season. A player
// gets one redshirt per career: once a redshirt year has been consumed
// by progression, further requests are rejected.
func (s *PlayerService) ToggleRedshirt(ctx context.Context, playerID, seasonID int64) (player.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ToggleRedshirt")
	defer span.End()

	p, err := s.requirePlayer(ctx, playerID)
	if err != nil {
		return player.SeasonRecord{}, err
	}
	rec, exists, err := s.playerRepo.GetSeasonRecord(ctx, playerID, seasonID)
	if err != nil {
		return player.SeasonRecord{}, fmt.Errorf("get season record: %w", err)
	}
	if !exists {
		return player.SeasonRecord{}, fmt.Errorf("%w: player=%d has no record for season=%d", ErrNotFound, playerID, seasonID)
	}
	if !rec.Redshirted && p.RedshirtUsed {
		return player.SeasonRecord{}, fmt.Errorf("%w: player=%d already used their redshirt", ErrInvalidInput, playerID)
	}
	rec.Redshirted = !rec.Redshirted
	saved, err := s.playerRepo.SaveSeasonRecord(ctx, rec)
	if err != nil {
		return player.SeasonRecord{}, fmt.Errorf("save season record: %w", err)
	}
	return saved, nil
}

func (s *PlayerService) requirePlayer(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return p, nil
}
