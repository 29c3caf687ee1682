package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[int64]season.Season
	nextID int64
}

func NewSeasonRepository(seed []season.Season) *SeasonRepository {
	r := &SeasonRepository{items: make(map[int64]season.Season), nextID: 1}
	for _, s := range seed {
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.items[s.ID] = s
	}
	return r
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID int64) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	return s, ok, nil
}

func (r *SeasonRepository) GetByYear(_ context.Context, year int) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.Year == year {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) Latest(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest season.Season
	found := false
	for _, s := range r.items {
		if !found || s.Year > latest.Year {
			latest = s
			found = true
		}
	}
	return latest, found, nil
}

func (r *SeasonRepository) Create(_ context.Context, year int) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := season.Season{ID: r.nextID, Year: year}
	r.nextID++
	r.items[s.ID] = s
	return s, nil
}
