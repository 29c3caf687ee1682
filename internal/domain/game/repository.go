package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Game, error)
	// Create inserts a scheduled game and returns it with its id set.
	Create(ctx context.Context, g Game) (Game, error)
	// Update persists a single game's mutable fields by id.
	Update(ctx context.Context, g Game) (Game, error)
	// ListPlayoffGames returns a season's playoff games ordered by week
	// ascending then id ascending, the canonical bracket order.
	ListPlayoffGames(ctx context.Context, seasonID int64) ([]Game, error)
	// ReplaceBracket atomically replaces the season's playoff games with
	// the given set. Used both to create the shell and to persist every
	// bracket mutation in one transaction.
	ReplaceBracket(ctx context.Context, seasonID int64, games []Game) ([]Game, error)
	// UpdatePlayoffGames persists in-place mutations of existing playoff
	// rows in one transaction.
	UpdatePlayoffGames(ctx context.Context, seasonID int64, games []Game) error
}
