package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// RecruitInput is one recruit of an incoming class.
type RecruitInput struct {
	Name         string
	Position     string
	Stars        *int
	NationalRank *int
	HomeState    string
}

// TransferInput is one incoming portal commitment.
type TransferInput struct {
	Name           string
	Position       string
	PreviousSchool string
	OvrRating      *int
	Stars          *int
	PositionRank   *int
	DevTrait       string
	Height         string
	Weight         *int
	HomeState      string
	CurrentClass   string
}

// RosterService manages the recruit and transfer staging rows that the
// progression engine later activates.
type RosterService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
}

func NewRosterService(seasonRepo season.Repository, teamRepo team.Repository, rosterRepo roster.Repository) *RosterService {
	return &RosterService{seasonRepo: seasonRepo, teamRepo: teamRepo, rosterRepo: rosterRepo}
}

// AddRecruitingClass stages a batch of committed recruits for a team
// and season.
func (s *RosterService) AddRecruitingClass(ctx context.Context, teamID, seasonID int64, inputs []RecruitInput) ([]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.AddRecruitingClass")
	defer span.End()

	if err := s.requireTeamAndSeason(ctx, teamID, seasonID); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: recruits list is required", ErrInvalidInput)
	}
	recruits := make([]roster.Recruit, 0, len(inputs))
	for _, in := range inputs {
		r := roster.Recruit{
			Name:         in.Name,
			Position:     in.Position,
			Stars:        in.Stars,
			NationalRank: in.NationalRank,
			HomeState:    in.HomeState,
			TeamID:       teamID,
			SeasonID:     seasonID,
			Status:       roster.StatusCommitted,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		recruits = append(recruits, r)
	}
	ids, err := s.rosterRepo.CreateRecruits(ctx, recruits)
	if err != nil {
		return nil, fmt.Errorf("create recruits: %w", err)
	}
	return ids, nil
}

// RecruitingClass lists a team's staged recruits for a season.
func (s *RosterService) RecruitingClass(ctx context.Context, teamID, seasonID int64) ([]roster.Recruit, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RecruitingClass")
	defer span.End()

	if err := s.requireTeamAndSeason(ctx, teamID, seasonID); err != nil {
		return nil, err
	}
	recruits, err := s.rosterRepo.ListRecruits(ctx, teamID, seasonID, "")
	if err != nil {
		return nil, fmt.Errorf("list recruits: %w", err)
	}
	return recruits, nil
}

// AddTransferPortal stages a batch of committed transfers for a team
// and season.
func (s *RosterService) AddTransferPortal(ctx context.Context, teamID, seasonID int64, inputs []TransferInput) ([]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.AddTransferPortal")
	defer span.End()

	if err := s.requireTeamAndSeason(ctx, teamID, seasonID); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: transfers list is required", ErrInvalidInput)
	}
	transfers := make([]roster.Transfer, 0, len(inputs))
	for _, in := range inputs {
		class := player.ClassSophomore
		if in.CurrentClass != "" {
			parsed, err := player.ParseClass(in.CurrentClass)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			class = parsed
		}
		tr := roster.Transfer{
			Name:           in.Name,
			Position:       in.Position,
			PreviousSchool: in.PreviousSchool,
			OvrRating:      in.OvrRating,
			Stars:          in.Stars,
			PositionRank:   in.PositionRank,
			DevTrait:       in.DevTrait,
			Height:         in.Height,
			Weight:         in.Weight,
			HomeState:      in.HomeState,
			CurrentClass:   class,
			TeamID:         teamID,
			SeasonID:       seasonID,
			Status:         roster.StatusCommitted,
		}
		if err := tr.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		transfers = append(transfers, tr)
	}
	ids, err := s.rosterRepo.CreateTransfers(ctx, transfers)
	if err != nil {
		return nil, fmt.Errorf("create transfers: %w", err)
	}
	return ids, nil
}

// TransferPortal lists a team's staged transfers for a season.
func (s *RosterService) TransferPortal(ctx context.Context, teamID, seasonID int64) ([]roster.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.TransferPortal")
	defer span.End()

	if err := s.requireTeamAndSeason(ctx, teamID, seasonID); err != nil {
		return nil, err
	}
	transfers, err := s.rosterRepo.ListTransfers(ctx, teamID, seasonID, "")
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return transfers, nil
}

func (s *RosterService) requireTeamAndSeason(ctx context.Context, teamID, seasonID int64) error {
	if teamID <= 0 || seasonID <= 0 {
		return fmt.Errorf("%w: team id and season id are required", ErrInvalidInput)
	}
	if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return fmt.Errorf("get team: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	if _, exists, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		return fmt.Errorf("get season: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return nil
}
