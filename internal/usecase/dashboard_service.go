package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// Dashboard summarizes the user-controlled team in the latest season.
type Dashboard struct {
	TeamID             int64
	TeamName           string
	SeasonID           int64
	Year               int
	Wins               int
	Losses             int
	ConferenceWins     int
	ConferenceLosses   int
	FinalRank          *int
	RecruitingRank     *int
	RosterSize         int
	CommittedRecruits  int
	CommittedTransfers int
}

type DashboardService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
}

func NewDashboardService(seasonRepo season.Repository, teamRepo team.Repository, playerRepo player.Repository, rosterRepo roster.Repository) *DashboardService {
	return &DashboardService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "DashboardService.Get")
	defer span.End()

	userTeam, exists, err := s.teamRepo.GetUserControlled(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get user team: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: no user-controlled team", ErrNotFound)
	}
	latest, exists, err := s.seasonRepo.Latest(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("get latest season: %w", err)
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: no seasons available", ErrNotFound)
	}

	dash := Dashboard{
		TeamID:   userTeam.ID,
		TeamName: userTeam.Name,
		SeasonID: latest.ID,
		Year:     latest.Year,
	}

	rows, err := s.teamRepo.ListSeasonRows(ctx, latest.ID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list team seasons: %w", err)
	}
	for _, row := range rows {
		if row.TeamID != userTeam.ID {
			continue
		}
		dash.Wins = row.Wins
		dash.Losses = row.Losses
		dash.ConferenceWins = row.ConferenceWins
		dash.ConferenceLosses = row.ConferenceLosses
		dash.FinalRank = row.FinalRank
		dash.RecruitingRank = row.RecruitingRank
		break
	}

	rosterRows, err := s.playerRepo.ListRoster(ctx, latest.ID, userTeam.ID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list roster: %w", err)
	}
	dash.RosterSize = len(rosterRows)

	recruits, err := s.rosterRepo.ListRecruits(ctx, userTeam.ID, latest.ID, roster.StatusCommitted)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list recruits: %w", err)
	}
	dash.CommittedRecruits = len(recruits)

	transfers, err := s.rosterRepo.ListTransfers(ctx, userTeam.ID, latest.ID, roster.StatusCommitted)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list transfers: %w", err)
	}
	dash.CommittedTransfers = len(transfers)

	return dash, nil
}
