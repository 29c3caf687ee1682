package usecase

import (
	"context"
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
)

// ProgressionStore applies one computed season transition atomically.
// No partial state may be visible when it returns an error.
type ProgressionStore interface {
	ApplyProgression(ctx context.Context, plan ProgressionPlan) error
}

// ProgressionPlan is the full write set of one season transition.
type ProgressionPlan struct {
	SeasonID     int64
	NextSeasonID int64

	// Backfill holds default season-N rows for rostered players that
	// have none, covering data entered out of order.
	Backfill []player.SeasonRecord
	// NextRecords are the season-N+1 rows for continuing players.
	NextRecords []player.SeasonRecord
	// Graduated players leave the roster permanently: team_id goes null
	// and no next-season row is written.
	Graduated []int64
	// RedshirtConsumed players spent their one career redshirt in
	// season N; the career flag is set so it cannot be granted again.
	RedshirtConsumed []int64
	// Activations materialize committed recruits and transfers as new
	// players with their first season row; the store assigns player ids
	// on insert and moves the staging rows to Activated.
	Activations          []Activation
	ActivatedRecruitIDs  []int64
	ActivatedTransferIDs []int64
}

// Activation is one staged roster addition becoming a real player.
type Activation struct {
	Player player.Player
	Season player.SeasonRecord
}

// ProgressionResult reports what one run changed.
type ProgressionResult struct {
	NextSeasonID         int64
	ProgressedPlayerIDs  []int64
	RedshirtedPlayerIDs  []int64
	GraduatedPlayerIDs   []int64
	ActivatedRecruitIDs  []int64
	ActivatedTransferIDs []int64
}

// ProgressionService advances every rostered player across a season
// boundary and activates committed recruits and transfers. Rerunning it
// for the same season is a no-op for players that already have a
// next-season row and for staging rows already activated.
type ProgressionService struct {
	seasonRepo season.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	store      ProgressionStore
}

func NewProgressionService(seasonRepo season.Repository, playerRepo player.Repository, rosterRepo roster.Repository, store ProgressionStore) *ProgressionService {
	return &ProgressionService{
		seasonRepo: seasonRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		store:      store,
	}
}

func (s *ProgressionService) Run(ctx context.Context, seasonID int64) (ProgressionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressionService.Run")
	defer span.End()

	if seasonID <= 0 {
		return ProgressionResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	current, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return ProgressionResult{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	next, exists, err := s.seasonRepo.GetByYear(ctx, current.Year+1)
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("get next season: %w", err)
	}
	if !exists {
		// The original API reports a missing next season as not-found,
		// not as a conflict; callers rely on the 404.
		return ProgressionResult{}, fmt.Errorf("%w: next season (year %d) not found", ErrNotFound, current.Year+1)
	}

	players, err := s.playerRepo.ListRostered(ctx)
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("list rostered players: %w", err)
	}
	currentRecords, err := s.recordsByPlayer(ctx, seasonID)
	if err != nil {
		return ProgressionResult{}, err
	}
	nextRecords, err := s.recordsByPlayer(ctx, next.ID)
	if err != nil {
		return ProgressionResult{}, err
	}

	plan := ProgressionPlan{SeasonID: seasonID, NextSeasonID: next.ID}
	result := ProgressionResult{
		NextSeasonID:         next.ID,
		ProgressedPlayerIDs:  []int64{},
		RedshirtedPlayerIDs:  []int64{},
		GraduatedPlayerIDs:   []int64{},
		ActivatedRecruitIDs:  []int64{},
		ActivatedTransferIDs: []int64{},
	}

	for _, p := range players {
		rec, ok := currentRecords[p.ID]
		if !ok {
			rec = player.SeasonRecord{
				PlayerID: p.ID,
				SeasonID: seasonID,
				TeamID:   *p.TeamID,
				Class:    player.ClassFreshman,
			}
			plan.Backfill = append(plan.Backfill, rec)
		}
		if _, done := nextRecords[p.ID]; done {
			// transition already applied for this player
			continue
		}
		if rec.Redshirted {
			// Redshirt year is free: class does not advance, and the
			// one career redshirt is now spent.
			plan.RedshirtConsumed = append(plan.RedshirtConsumed, p.ID)
			plan.NextRecords = append(plan.NextRecords, carryForward(rec, next.ID, rec.Class))
			result.RedshirtedPlayerIDs = append(result.RedshirtedPlayerIDs, p.ID)
			continue
		}
		nextClass := rec.Class.Next()
		if nextClass == player.ClassGraduate {
			plan.Graduated = append(plan.Graduated, p.ID)
			result.GraduatedPlayerIDs = append(result.GraduatedPlayerIDs, p.ID)
			continue
		}
		plan.NextRecords = append(plan.NextRecords, carryForward(rec, next.ID, nextClass))
		result.ProgressedPlayerIDs = append(result.ProgressedPlayerIDs, p.ID)
	}

	recruits, err := s.rosterRepo.ListCommittedRecruitsBySeason(ctx, seasonID)
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("list committed recruits: %w", err)
	}
	for _, r := range recruits {
		teamID := r.TeamID
		plan.Activations = append(plan.Activations, Activation{
			Player: player.Player{
				Name:           r.Name,
				Position:       r.Position,
				TeamID:         &teamID,
				RecruitStars:   r.Stars,
				RecruitRankNat: r.NationalRank,
				HomeState:      r.HomeState,
			},
			Season: player.SeasonRecord{
				SeasonID: next.ID,
				TeamID:   r.TeamID,
				Class:    player.ClassFreshman,
			},
		})
		plan.ActivatedRecruitIDs = append(plan.ActivatedRecruitIDs, r.ID)
	}

	transfers, err := s.rosterRepo.ListCommittedTransfersBySeason(ctx, seasonID)
	if err != nil {
		return ProgressionResult{}, fmt.Errorf("list committed transfers: %w", err)
	}
	for _, tr := range transfers {
		teamID := tr.TeamID
		plan.Activations = append(plan.Activations, Activation{
			Player: player.Player{
				Name:         tr.Name,
				Position:     tr.Position,
				TeamID:       &teamID,
				RecruitStars: tr.Stars,
				HomeState:    tr.HomeState,
			},
			Season: player.SeasonRecord{
				SeasonID:  next.ID,
				TeamID:    tr.TeamID,
				Class:     tr.CurrentClass.Next(),
				OvrRating: tr.OvrRating,
				DevTrait:  tr.DevTrait,
				Height:    tr.Height,
				Weight:    tr.Weight,
			},
		})
		plan.ActivatedTransferIDs = append(plan.ActivatedTransferIDs, tr.ID)
	}

	if err := s.store.ApplyProgression(ctx, plan); err != nil {
		return ProgressionResult{}, fmt.Errorf("apply progression: %w", err)
	}

	result.ActivatedRecruitIDs = append(result.ActivatedRecruitIDs, plan.ActivatedRecruitIDs...)
	result.ActivatedTransferIDs = append(result.ActivatedTransferIDs, plan.ActivatedTransferIDs...)
	return result, nil
}

func (s *ProgressionService) recordsByPlayer(ctx context.Context, seasonID int64) (map[int64]player.SeasonRecord, error) {
	records, err := s.playerRepo.ListSeasonRecords(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season records: %w", err)
	}
	out := make(map[int64]player.SeasonRecord, len(records))
	for _, rec := range records {
		out[rec.PlayerID] = rec
	}
	return out, nil
}

// carryForward builds the next-season row for a continuing player.
// Ratings and measurables travel; stats and redshirt status reset.
func carryForward(rec player.SeasonRecord, nextSeasonID int64, class player.Class) player.SeasonRecord {
	return player.SeasonRecord{
		PlayerID:  rec.PlayerID,
		SeasonID:  nextSeasonID,
		TeamID:    rec.TeamID,
		Class:     class,
		OvrRating: rec.OvrRating,
		Speed:     rec.Speed,
		DevTrait:  rec.DevTrait,
		Height:    rec.Height,
		Weight:    rec.Weight,
	}
}
