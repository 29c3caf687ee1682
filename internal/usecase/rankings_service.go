package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

// Poll is one week of precomputed national rankings from the external
// polls service.
type Poll struct {
	Year    int
	Week    int
	Entries []PollEntry
}

type PollEntry struct {
	Rank   int
	Team   string
	Record string
	Points int
}

// PollProvider fetches precomputed weekly rankings from an external
// service. It is best-effort: the service degrades to empty data when
// the provider fails.
type PollProvider interface {
	WeeklyPoll(ctx context.Context, year, week int) (Poll, error)
}

// TeamRankInput assigns one team's recruiting rank; a nil rank clears it.
type TeamRankInput struct {
	TeamID int64
	Rank   *int
}

type RankingsService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	polls      PollProvider
}

func NewRankingsService(seasonRepo season.Repository, teamRepo team.Repository, polls PollProvider) *RankingsService {
	return &RankingsService{seasonRepo: seasonRepo, teamRepo: teamRepo, polls: polls}
}

// ImportRecruitingRanks writes recruiting ranks onto the season's team
// rows and reports how many rows changed.
func (s *RankingsService) ImportRecruitingRanks(ctx context.Context, seasonID int64, ranks []TeamRankInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingsService.ImportRecruitingRanks")
	defer span.End()

	if seasonID <= 0 {
		return 0, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if len(ranks) == 0 {
		return 0, fmt.Errorf("%w: rankings list is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		return 0, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return 0, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("list team seasons: %w", err)
	}
	byTeam := make(map[int64]int, len(rows))
	for i, row := range rows {
		byTeam[row.TeamID] = i
	}
	changed := 0
	for _, r := range ranks {
		i, ok := byTeam[r.TeamID]
		if !ok {
			return 0, fmt.Errorf("%w: team=%d has no row for season=%d", ErrNotFound, r.TeamID, seasonID)
		}
		rows[i].RecruitingRank = r.Rank
		changed++
	}
	if err := s.teamRepo.SaveSeasonRows(ctx, rows); err != nil {
		return 0, fmt.Errorf("save team seasons: %w", err)
	}
	return changed, nil
}

// WeeklyPoll fetches the external poll for a season's year. A provider
// failure is not an error: the second return value reports whether poll
// data is available.
func (s *RankingsService) WeeklyPoll(ctx context.Context, seasonID int64, week int) (Poll, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingsService.WeeklyPoll")
	defer span.End()

	if seasonID <= 0 {
		return Poll{}, false, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return Poll{}, false, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return Poll{}, false, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	if s.polls == nil {
		return Poll{}, false, nil
	}
	poll, err := s.polls.WeeklyPoll(ctx, item.Year, week)
	if err != nil {
		// Best-effort collaborator: no ranking data this week.
		return Poll{}, false, nil
	}
	return poll, true, nil
}
