package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID int64) (Season, bool, error)
	GetByYear(ctx context.Context, year int) (Season, bool, error)
	Latest(ctx context.Context) (Season, bool, error)
	Create(ctx context.Context, year int) (Season, error)
}
