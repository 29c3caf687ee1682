package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
)

type RosterRepository struct {
	mu             sync.RWMutex
	recruits       map[int64]roster.Recruit
	transfers      map[int64]roster.Transfer
	nextRecruitID  int64
	nextTransferID int64
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		recruits:       make(map[int64]roster.Recruit),
		transfers:      make(map[int64]roster.Transfer),
		nextRecruitID:  1,
		nextTransferID: 1,
	}
}

func (r *RosterRepository) CreateRecruits(_ context.Context, recruits []roster.Recruit) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(recruits))
	for _, rec := range recruits {
		rec.ID = r.nextRecruitID
		r.nextRecruitID++
		r.recruits[rec.ID] = rec
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (r *RosterRepository) ListRecruits(_ context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Recruit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Recruit, 0)
	for _, rec := range r.recruits {
		if rec.TeamID != teamID || rec.SeasonID != seasonID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) ListCommittedRecruitsBySeason(_ context.Context, seasonID int64) ([]roster.Recruit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Recruit, 0)
	for _, rec := range r.recruits {
		if rec.SeasonID == seasonID && rec.Status == roster.StatusCommitted {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) CreateTransfers(_ context.Context, transfers []roster.Transfer) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(transfers))
	for _, tr := range transfers {
		tr.ID = r.nextTransferID
		r.nextTransferID++
		r.transfers[tr.ID] = tr
		ids = append(ids, tr.ID)
	}
	return ids, nil
}

func (r *RosterRepository) ListTransfers(_ context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Transfer, 0)
	for _, tr := range r.transfers {
		if tr.TeamID != teamID || tr.SeasonID != seasonID {
			continue
		}
		if status != "" && tr.Status != status {
			continue
		}
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) ListCommittedTransfersBySeason(_ context.Context, seasonID int64) ([]roster.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Transfer, 0)
	for _, tr := range r.transfers {
		if tr.SeasonID == seasonID && tr.Status == roster.StatusCommitted {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MarkRecruitsActivated flips staged recruits to activated. Used by the
// in-memory progression store.
func (r *RosterRepository) MarkRecruitsActivated(ids []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if rec, ok := r.recruits[id]; ok {
			rec.Status = roster.StatusActivated
			r.recruits[id] = rec
		}
	}
}

// MarkTransfersActivated flips staged transfers to activated.
func (r *RosterRepository) MarkTransfersActivated(ids []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if tr, ok := r.transfers[id]; ok {
			tr.Status = roster.StatusActivated
			r.transfers[id] = tr
		}
	}
}
