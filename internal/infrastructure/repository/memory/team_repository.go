package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

type TeamRepository struct {
	mu          sync.RWMutex
	teams       map[int64]team.Team
	conferences map[int64]team.Conference
	seasonRows  map[int64]team.TeamSeason
	nextRowID   int64
}

func NewTeamRepository(teams []team.Team, conferences []team.Conference, rows []team.TeamSeason) *TeamRepository {
	r := &TeamRepository{
		teams:       make(map[int64]team.Team),
		conferences: make(map[int64]team.Conference),
		seasonRows:  make(map[int64]team.TeamSeason),
		nextRowID:   1,
	}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	for _, c := range conferences {
		r.conferences[c.ID] = c
	}
	for _, row := range rows {
		if row.ID == 0 {
			row.ID = r.nextRowID
		}
		if row.ID >= r.nextRowID {
			r.nextRowID = row.ID + 1
		}
		r.seasonRows[row.ID] = row
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetUserControlled(_ context.Context) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best team.Team
	found := false
	for _, t := range r.teams {
		if !t.IsUserControlled {
			continue
		}
		if !found || t.ID < best.ID {
			best = t
			found = true
		}
	}
	return best, found, nil
}

func (r *TeamRepository) ListConferences(_ context.Context) ([]team.Conference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Conference, 0, len(r.conferences))
	for _, c := range r.conferences {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListSeasonRows(_ context.Context, seasonID int64) ([]team.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.TeamSeason, 0)
	for _, row := range r.seasonRows {
		if row.SeasonID == seasonID {
			out = append(out, cloneTeamSeason(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *TeamRepository) RankedBySeason(_ context.Context, seasonID int64, limit int) ([]team.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.TeamSeason, 0)
	for _, row := range r.seasonRows {
		if row.SeasonID == seasonID && row.FinalRank != nil {
			out = append(out, cloneTeamSeason(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].FinalRank < *out[j].FinalRank })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TeamRepository) UpsertSeasonRow(_ context.Context, row team.TeamSeason) (team.TeamSeason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.upsertSeasonRowLocked(row), nil
}

func (r *TeamRepository) SaveSeasonRows(_ context.Context, rows []team.TeamSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.upsertSeasonRowLocked(row)
	}
	return nil
}

func (r *TeamRepository) upsertSeasonRowLocked(row team.TeamSeason) team.TeamSeason {
	for id, existing := range r.seasonRows {
		if existing.TeamID == row.TeamID && existing.SeasonID == row.SeasonID {
			row.ID = id
			r.seasonRows[id] = cloneTeamSeason(row)
			return cloneTeamSeason(row)
		}
	}
	row.ID = r.nextRowID
	r.nextRowID++
	r.seasonRows[row.ID] = cloneTeamSeason(row)
	return cloneTeamSeason(row)
}

func cloneTeamSeason(row team.TeamSeason) team.TeamSeason {
	copied := row
	copied.PointsFor = cloneIntPtr(row.PointsFor)
	copied.PointsAgainst = cloneIntPtr(row.PointsAgainst)
	copied.OffensePPG = cloneFloatPtr(row.OffensePPG)
	copied.DefensePPG = cloneFloatPtr(row.DefensePPG)
	copied.FinalRank = cloneIntPtr(row.FinalRank)
	copied.RecruitingRank = cloneIntPtr(row.RecruitingRank)
	return copied
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func cloneFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
