package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
)

type PlayerRepository struct {
	mu         sync.RWMutex
	players    map[int64]player.Player
	records    map[int64]player.SeasonRecord
	nextID     int64
	nextRecID  int64
}

func NewPlayerRepository(players []player.Player, records []player.SeasonRecord) *PlayerRepository {
	r := &PlayerRepository{
		players:   make(map[int64]player.Player),
		records:   make(map[int64]player.SeasonRecord),
		nextID:    1,
		nextRecID: 1,
	}
	for _, p := range players {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.players[p.ID] = clonePlayer(p)
	}
	for _, rec := range records {
		if rec.ID == 0 {
			rec.ID = r.nextRecID
		}
		if rec.ID >= r.nextRecID {
			r.nextRecID = rec.ID + 1
		}
		r.records[rec.ID] = cloneSeasonRecord(rec)
	}
	return r
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) ListRostered(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.players {
		if p.TeamID != nil {
			out = append(out, clonePlayer(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) Save(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.ID] = clonePlayer(p)
	return nil
}

// CreatePlayer assigns an id and stores the player. Used by the
// in-memory progression store when activating staged roster additions.
func (r *PlayerRepository) CreatePlayer(p player.Player) player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.players[p.ID] = clonePlayer(p)
	return clonePlayer(p)
}

func (r *PlayerRepository) GetSeasonRecord(_ context.Context, playerID, seasonID int64) (player.SeasonRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.PlayerID == playerID && rec.SeasonID == seasonID {
			return cloneSeasonRecord(rec), true, nil
		}
	}
	return player.SeasonRecord{}, false, nil
}

func (r *PlayerRepository) ListSeasonRecords(_ context.Context, seasonID int64) ([]player.SeasonRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.SeasonRecord, 0)
	for _, rec := range r.records {
		if rec.SeasonID == seasonID {
			out = append(out, cloneSeasonRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerRepository) ListRoster(_ context.Context, seasonID, teamID int64) ([]player.SeasonRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.SeasonRecord, 0)
	for _, rec := range r.records {
		if rec.SeasonID == seasonID && rec.TeamID == teamID {
			out = append(out, cloneSeasonRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerRepository) ListCareer(_ context.Context, playerID int64) ([]player.SeasonRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.SeasonRecord, 0)
	for _, rec := range r.records {
		if rec.PlayerID == playerID {
			out = append(out, cloneSeasonRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeasonID < out[j].SeasonID })
	return out, nil
}

func (r *PlayerRepository) SaveSeasonRecord(_ context.Context, rec player.SeasonRecord) (player.SeasonRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saveSeasonRecordLocked(rec), nil
}

func (r *PlayerRepository) saveSeasonRecordLocked(rec player.SeasonRecord) player.SeasonRecord {
	for id, existing := range r.records {
		if existing.PlayerID == rec.PlayerID && existing.SeasonID == rec.SeasonID {
			rec.ID = id
			r.records[id] = cloneSeasonRecord(rec)
			return cloneSeasonRecord(rec)
		}
	}
	rec.ID = r.nextRecID
	r.nextRecID++
	r.records[rec.ID] = cloneSeasonRecord(rec)
	return cloneSeasonRecord(rec)
}

func clonePlayer(p player.Player) player.Player {
	copied := p
	copied.TeamID = cloneInt64Ptr(p.TeamID)
	copied.RecruitStars = cloneIntPtr(p.RecruitStars)
	copied.RecruitRankNat = cloneIntPtr(p.RecruitRankNat)
	return copied
}

func cloneSeasonRecord(rec player.SeasonRecord) player.SeasonRecord {
	copied := rec
	copied.OvrRating = cloneIntPtr(rec.OvrRating)
	copied.Speed = cloneIntPtr(rec.Speed)
	copied.Weight = cloneIntPtr(rec.Weight)
	copied.GamesPlayed = cloneIntPtr(rec.GamesPlayed)
	copied.PassYards = cloneIntPtr(rec.PassYards)
	copied.PassTDs = cloneIntPtr(rec.PassTDs)
	copied.RushYards = cloneIntPtr(rec.RushYards)
	copied.RushTDs = cloneIntPtr(rec.RushTDs)
	copied.RecYards = cloneIntPtr(rec.RecYards)
	copied.RecTDs = cloneIntPtr(rec.RecTDs)
	copied.Tackles = cloneIntPtr(rec.Tackles)
	copied.Sacks = cloneIntPtr(rec.Sacks)
	copied.Interceptions = cloneIntPtr(rec.Interceptions)
	return copied
}
