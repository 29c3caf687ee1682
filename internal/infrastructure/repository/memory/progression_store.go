package memory

import (
	"context"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

// ProgressionStore applies a season rollover against the in-memory
// repositories. Unlike the postgres store there is no transaction to
// roll back, which is acceptable for dev mode and tests.
type ProgressionStore struct {
	players *PlayerRepository
	roster  *RosterRepository
}

func NewProgressionStore(players *PlayerRepository, roster *RosterRepository) *ProgressionStore {
	return &ProgressionStore{players: players, roster: roster}
}

func (s *ProgressionStore) ApplyProgression(ctx context.Context, plan usecase.ProgressionPlan) error {
	for _, rec := range plan.Backfill {
		if _, err := s.players.SaveSeasonRecord(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range plan.NextRecords {
		if _, err := s.players.SaveSeasonRecord(ctx, rec); err != nil {
			return err
		}
	}

	for _, playerID := range plan.Graduated {
		p, ok, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		p.TeamID = nil
		if err := s.players.Save(ctx, p); err != nil {
			return err
		}
	}
	for _, playerID := range plan.RedshirtConsumed {
		p, ok, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		p.RedshirtUsed = true
		if err := s.players.Save(ctx, p); err != nil {
			return err
		}
	}

	for _, act := range plan.Activations {
		created := s.players.CreatePlayer(act.Player)
		rec := act.Season
		rec.PlayerID = created.ID
		if _, err := s.players.SaveSeasonRecord(ctx, rec); err != nil {
			return err
		}
	}

	s.roster.MarkRecruitsActivated(plan.ActivatedRecruitIDs)
	s.roster.MarkTransfersActivated(plan.ActivatedTransferIDs)
	return nil
}
