package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

const (
	recomputeStatusSuccess = "success"
	recomputeStatusSkipped = "skipped"
)

type RecomputeResult struct {
	TeamCount    int
	SuccessCount int
	SkippedCount int
	WorkerCount  int
	Teams        []TeamRecomputeResult
}

type TeamRecomputeResult struct {
	TeamID     int64
	Status     string
	Games      int
	DurationMs int64
}

// StatsService recomputes team-season scoring aggregates from completed
// games, fanning out one task per team over a bounded worker pool.
type StatsService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
}

func NewStatsService(seasonRepo season.Repository, teamRepo team.Repository, gameRepo game.Repository) *StatsService {
	return &StatsService{seasonRepo: seasonRepo, teamRepo: teamRepo, gameRepo: gameRepo}
}

func (s *StatsService) RecomputeSeason(ctx context.Context, seasonID int64, maxWorkers int) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.RecomputeSeason")
	defer span.End()

	if seasonID <= 0 {
		return RecomputeResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		return RecomputeResult{}, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	rows, err := s.teamRepo.ListSeasonRows(ctx, seasonID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list team seasons: %w", err)
	}
	games, err := s.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list games: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(maxWorkers, len(rows))
	result := RecomputeResult{
		TeamCount:   len(rows),
		WorkerCount: workerCount,
		Teams:       make([]TeamRecomputeResult, 0, len(rows)),
	}
	if len(rows) == 0 {
		return result, nil
	}

	updated := make([]team.TeamSeason, len(rows))
	taskResults := make(chan TeamRecomputeResult, len(rows))

	var successCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, row := range rows {
		i, row := i, row
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			recomputed, played := recomputeTeamRow(row, games)
			updated[i] = recomputed

			status := recomputeStatusSuccess
			if played == 0 {
				status = recomputeStatusSkipped
				skippedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			taskResults <- TeamRecomputeResult{
				TeamID:     row.TeamID,
				Status:     status,
				Games:      played,
				DurationMs: time.Since(start).Milliseconds(),
			}
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(taskResults)

	for row := range taskResults {
		result.Teams = append(result.Teams, row)
	}
	sort.SliceStable(result.Teams, func(i, j int) bool { return result.Teams[i].TeamID < result.Teams[j].TeamID })

	if err := s.teamRepo.SaveSeasonRows(ctx, updated); err != nil {
		return RecomputeResult{}, fmt.Errorf("save team seasons: %w", err)
	}

	result.SuccessCount = int(successCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

// recomputeTeamRow rebuilds points for/against and per-game scoring
// averages from the team's completed games.
func recomputeTeamRow(row team.TeamSeason, games []game.Game) (team.TeamSeason, int) {
	pointsFor, pointsAgainst, played := 0, 0, 0
	for _, g := range games {
		if g.HomeScore == nil || g.AwayScore == nil || g.HomeTeamID == nil || g.AwayTeamID == nil {
			continue
		}
		switch row.TeamID {
		case *g.HomeTeamID:
			pointsFor += *g.HomeScore
			pointsAgainst += *g.AwayScore
		case *g.AwayTeamID:
			pointsFor += *g.AwayScore
			pointsAgainst += *g.HomeScore
		default:
			continue
		}
		played++
	}
	if played == 0 {
		return row, 0
	}
	offense := float64(pointsFor) / float64(played)
	defense := float64(pointsAgainst) / float64(played)
	row.PointsFor = &pointsFor
	row.PointsAgainst = &pointsAgainst
	row.OffensePPG = &offense
	row.DefensePPG = &defense
	return row, played
}

func normalizeRecomputeWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
