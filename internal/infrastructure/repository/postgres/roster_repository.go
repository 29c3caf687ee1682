package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
)

const recruitColumns = `
id, name, position, stars, national_rank, home_state, team_id, season_id, status`

const transferColumns = `
id, name, position, previous_school, ovr_rating, stars, position_rank,
dev_trait, height, weight, home_state, current_class, team_id, season_id, status`

type recruitRowModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Position     string `db:"position"`
	Stars        *int   `db:"stars"`
	NationalRank *int   `db:"national_rank"`
	HomeState    string `db:"home_state"`
	TeamID       int64  `db:"team_id"`
	SeasonID     int64  `db:"season_id"`
	Status       string `db:"status"`
}

func (m recruitRowModel) toDomain() roster.Recruit {
	return roster.Recruit{
		ID:           m.ID,
		Name:         m.Name,
		Position:     m.Position,
		Stars:        m.Stars,
		NationalRank: m.NationalRank,
		HomeState:    m.HomeState,
		TeamID:       m.TeamID,
		SeasonID:     m.SeasonID,
		Status:       roster.CommitStatus(m.Status),
	}
}

type transferRowModel struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Position       string `db:"position"`
	PreviousSchool string `db:"previous_school"`
	OvrRating      *int   `db:"ovr_rating"`
	Stars          *int   `db:"stars"`
	PositionRank   *int   `db:"position_rank"`
	DevTrait       string `db:"dev_trait"`
	Height         string `db:"height"`
	Weight         *int   `db:"weight"`
	HomeState      string `db:"home_state"`
	CurrentClass   string `db:"current_class"`
	TeamID         int64  `db:"team_id"`
	SeasonID       int64  `db:"season_id"`
	Status         string `db:"status"`
}

func (m transferRowModel) toDomain() roster.Transfer {
	return roster.Transfer{
		ID:             m.ID,
		Name:           m.Name,
		Position:       m.Position,
		PreviousSchool: m.PreviousSchool,
		OvrRating:      m.OvrRating,
		Stars:          m.Stars,
		PositionRank:   m.PositionRank,
		DevTrait:       m.DevTrait,
		Height:         m.Height,
		Weight:         m.Weight,
		HomeState:      m.HomeState,
		CurrentClass:   player.Class(m.CurrentClass),
		TeamID:         m.TeamID,
		SeasonID:       m.SeasonID,
		Status:         roster.CommitStatus(m.Status),
	}
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) CreateRecruits(ctx context.Context, recruits []roster.Recruit) ([]int64, error) {
	const query = `
INSERT INTO recruits (name, position, stars, national_rank, home_state, team_id, season_id, status)
VALUES (:name, :position, :stars, :national_rank, :home_state, :team_id, :season_id, :status)
RETURNING id`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for recruit create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]int64, 0, len(recruits))
	for _, rec := range recruits {
		boundSQL, args, err := sqlx.Named(query, map[string]any{
			"name":          rec.Name,
			"position":      rec.Position,
			"stars":         rec.Stars,
			"national_rank": rec.NationalRank,
			"home_state":    rec.HomeState,
			"team_id":       rec.TeamID,
			"season_id":     rec.SeasonID,
			"status":        string(rec.Status),
		})
		if err != nil {
			return nil, fmt.Errorf("bind insert recruit query: %w", err)
		}
		boundSQL = tx.Rebind(boundSQL)

		var id int64
		if err := tx.GetContext(ctx, &id, boundSQL, args...); err != nil {
			return nil, fmt.Errorf("insert recruit: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit recruit create tx: %w", err)
	}
	return ids, nil
}

func (r *RosterRepository) ListRecruits(ctx context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Recruit, error) {
	query := `
SELECT ` + recruitColumns + `
FROM recruits
WHERE team_id = $1
  AND season_id = $2`
	args := []any{teamID, seasonID}
	if status != "" {
		query += `
  AND status = $3`
		args = append(args, string(status))
	}
	query += `
ORDER BY national_rank NULLS LAST, id`

	var rows []recruitRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recruits: %w", err)
	}
	out := make([]roster.Recruit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ListCommittedRecruitsBySeason(ctx context.Context, seasonID int64) ([]roster.Recruit, error) {
	query := `
SELECT ` + recruitColumns + `
FROM recruits
WHERE season_id = $1
  AND status = $2
ORDER BY id`

	var rows []recruitRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, string(roster.StatusCommitted)); err != nil {
		return nil, fmt.Errorf("list committed recruits: %w", err)
	}
	out := make([]roster.Recruit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) CreateTransfers(ctx context.Context, transfers []roster.Transfer) ([]int64, error) {
	const query = `
INSERT INTO transfers (
    name, position, previous_school, ovr_rating, stars, position_rank,
    dev_trait, height, weight, home_state, current_class, team_id, season_id, status
) VALUES (
    :name, :position, :previous_school, :ovr_rating, :stars, :position_rank,
    :dev_trait, :height, :weight, :home_state, :current_class, :team_id, :season_id, :status
)
RETURNING id`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for transfer create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]int64, 0, len(transfers))
	for _, tr := range transfers {
		boundSQL, args, err := sqlx.Named(query, map[string]any{
			"name":            tr.Name,
			"position":        tr.Position,
			"previous_school": tr.PreviousSchool,
			"ovr_rating":      tr.OvrRating,
			"stars":           tr.Stars,
			"position_rank":   tr.PositionRank,
			"dev_trait":       tr.DevTrait,
			"height":          tr.Height,
			"weight":          tr.Weight,
			"home_state":      tr.HomeState,
			"current_class":   string(tr.CurrentClass),
			"team_id":         tr.TeamID,
			"season_id":       tr.SeasonID,
			"status":          string(tr.Status),
		})
		if err != nil {
			return nil, fmt.Errorf("bind insert transfer query: %w", err)
		}
		boundSQL = tx.Rebind(boundSQL)

		var id int64
		if err := tx.GetContext(ctx, &id, boundSQL, args...); err != nil {
			return nil, fmt.Errorf("insert transfer: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer create tx: %w", err)
	}
	return ids, nil
}

func (r *RosterRepository) ListTransfers(ctx context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Transfer, error) {
	query := `
SELECT ` + transferColumns + `
FROM transfers
WHERE team_id = $1
  AND season_id = $2`
	args := []any{teamID, seasonID}
	if status != "" {
		query += `
  AND status = $3`
		args = append(args, string(status))
	}
	query += `
ORDER BY id`

	var rows []transferRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	out := make([]roster.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ListCommittedTransfersBySeason(ctx context.Context, seasonID int64) ([]roster.Transfer, error) {
	query := `
SELECT ` + transferColumns + `
FROM transfers
WHERE season_id = $1
  AND status = $2
ORDER BY id`

	var rows []transferRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, string(roster.StatusCommitted)); err != nil {
		return nil, fmt.Errorf("list committed transfers: %w", err)
	}
	out := make([]roster.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
