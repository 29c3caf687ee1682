package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	// ListRostered returns players with a non-nil team id.
	ListRostered(ctx context.Context) ([]Player, error)
	Save(ctx context.Context, p Player) error

	GetSeasonRecord(ctx context.Context, playerID, seasonID int64) (SeasonRecord, bool, error)
	ListSeasonRecords(ctx context.Context, seasonID int64) ([]SeasonRecord, error)
	ListRoster(ctx context.Context, seasonID, teamID int64) ([]SeasonRecord, error)
	ListCareer(ctx context.Context, playerID int64) ([]SeasonRecord, error)
	SaveSeasonRecord(ctx context.Context, rec SeasonRecord) (SeasonRecord, error)
}
