package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

type seasonRowModel struct {
	ID   int64 `db:"id"`
	Year int   `db:"year"`
}

func (m seasonRowModel) toDomain() season.Season {
	return season.Season{ID: m.ID, Year: m.Year}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	const query = `
SELECT id, year
FROM seasons
ORDER BY year`

	var rows []seasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	const query = `
SELECT id, year
FROM seasons
WHERE id = $1`

	var row seasonRowModel
	if err := r.db.GetContext(ctx, &row, query, seasonID); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, bool, error) {
	const query = `
SELECT id, year
FROM seasons
WHERE year = $1`

	var row seasonRowModel
	if err := r.db.GetContext(ctx, &row, query, year); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by year: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Latest(ctx context.Context) (season.Season, bool, error) {
	const query = `
SELECT id, year
FROM seasons
ORDER BY year DESC
LIMIT 1`

	var row seasonRowModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get latest season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, year int) (season.Season, error) {
	const query = `
INSERT INTO seasons (year)
VALUES ($1)
RETURNING id, year`

	var row seasonRowModel
	if err := r.db.GetContext(ctx, &row, query, year); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}
	return row.toDomain(), nil
}
