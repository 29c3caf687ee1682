package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetUserControlled(ctx context.Context) (Team, bool, error)
	ListConferences(ctx context.Context) ([]Conference, error)

	ListSeasonRows(ctx context.Context, seasonID int64) ([]TeamSeason, error)
	// RankedBySeason returns team-season rows with a non-null final rank,
	// best rank first.
	RankedBySeason(ctx context.Context, seasonID int64, limit int) ([]TeamSeason, error)
	UpsertSeasonRow(ctx context.Context, row TeamSeason) (TeamSeason, error)
	SaveSeasonRows(ctx context.Context, rows []TeamSeason) error
}
