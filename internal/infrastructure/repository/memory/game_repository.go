package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	items  map[int64]game.Game
	nextID int64
}

func NewGameRepository(seed []game.Game) *GameRepository {
	r := &GameRepository{items: make(map[int64]game.Game), nextID: 1}
	for _, g := range seed {
		if g.ID == 0 {
			g.ID = r.nextID
		}
		if g.ID >= r.nextID {
			r.nextID = g.ID + 1
		}
		r.items[g.ID] = cloneGame(g)
	}
	return r
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = r.nextID
	r.nextID++
	r.items[g.ID] = cloneGame(g)
	return cloneGame(g), nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[g.ID]; !ok {
		return game.Game{}, fmt.Errorf("game %d does not exist", g.ID)
	}
	r.items[g.ID] = cloneGame(g)
	return cloneGame(g), nil
}

func (r *GameRepository) ListBySeason(_ context.Context, seasonID int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.SeasonID == seasonID {
			out = append(out, cloneGame(g))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListPlayoffGames(_ context.Context, seasonID int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.SeasonID == seasonID && g.GameType == game.TypePlayoff {
			out = append(out, cloneGame(g))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ReplaceBracket(_ context.Context, seasonID int64, games []game.Game) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, g := range r.items {
		if g.SeasonID == seasonID && g.GameType == game.TypePlayoff {
			delete(r.items, id)
		}
	}

	inserted := make([]game.Game, 0, len(games))
	for _, g := range games {
		g.SeasonID = seasonID
		g.ID = r.nextID
		r.nextID++
		r.items[g.ID] = cloneGame(g)
		inserted = append(inserted, cloneGame(g))
	}
	sortGames(inserted)
	return inserted, nil
}

func (r *GameRepository) UpdatePlayoffGames(_ context.Context, seasonID int64, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		existing, ok := r.items[g.ID]
		if !ok || existing.SeasonID != seasonID || existing.GameType != game.TypePlayoff {
			continue
		}
		g.SeasonID = seasonID
		g.GameType = game.TypePlayoff
		r.items[g.ID] = cloneGame(g)
	}
	return nil
}

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		return games[i].ID < games[j].ID
	})
}

func cloneGame(g game.Game) game.Game {
	copied := g
	copied.HomeTeamID = cloneInt64Ptr(g.HomeTeamID)
	copied.AwayTeamID = cloneInt64Ptr(g.AwayTeamID)
	copied.HomeScore = cloneIntPtr(g.HomeScore)
	copied.AwayScore = cloneIntPtr(g.AwayScore)
	copied.HomeSeed = cloneIntPtr(g.HomeSeed)
	copied.AwaySeed = cloneIntPtr(g.AwaySeed)
	return copied
}
