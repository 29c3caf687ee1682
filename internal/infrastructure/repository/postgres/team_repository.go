package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

const teamSeasonColumns = `
id, team_id, season_id, conference_id, wins, losses, conference_wins,
conference_losses, points_for, points_against, offense_ppg, defense_ppg,
prestige, team_rating, final_rank, recruiting_rank`

const upsertTeamSeasonQuery = `
INSERT INTO team_seasons (
    team_id, season_id, conference_id, wins, losses, conference_wins,
    conference_losses, points_for, points_against, offense_ppg, defense_ppg,
    prestige, team_rating, final_rank, recruiting_rank
) VALUES (
    :team_id, :season_id, :conference_id, :wins, :losses, :conference_wins,
    :conference_losses, :points_for, :points_against, :offense_ppg, :defense_ppg,
    :prestige, :team_rating, :final_rank, :recruiting_rank
)
ON CONFLICT (team_id, season_id)
DO UPDATE SET
    conference_id = EXCLUDED.conference_id,
    wins = EXCLUDED.wins,
    losses = EXCLUDED.losses,
    conference_wins = EXCLUDED.conference_wins,
    conference_losses = EXCLUDED.conference_losses,
    points_for = EXCLUDED.points_for,
    points_against = EXCLUDED.points_against,
    offense_ppg = EXCLUDED.offense_ppg,
    defense_ppg = EXCLUDED.defense_ppg,
    prestige = EXCLUDED.prestige,
    team_rating = EXCLUDED.team_rating,
    final_rank = EXCLUDED.final_rank,
    recruiting_rank = EXCLUDED.recruiting_rank`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	const query = `
SELECT id, name, abbreviation, primary_conference_id, is_user_controlled
FROM teams
ORDER BY id`

	var rows []teamRowModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	const query = `
SELECT id, name, abbreviation, primary_conference_id, is_user_controlled
FROM teams
WHERE id = $1`

	var row teamRowModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetUserControlled(ctx context.Context) (team.Team, bool, error) {
	const query = `
SELECT id, name, abbreviation, primary_conference_id, is_user_controlled
FROM teams
WHERE is_user_controlled
ORDER BY id
LIMIT 1`

	var row teamRowModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get user-controlled team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListConferences(ctx context.Context) ([]team.Conference, error) {
	const query = `
SELECT id, name, tier
FROM conferences
ORDER BY id`

	var rows []conferenceRowModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	out := make([]team.Conference, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) ListSeasonRows(ctx context.Context, seasonID int64) ([]team.TeamSeason, error) {
	query := `
SELECT ` + teamSeasonColumns + `
FROM team_seasons
WHERE season_id = $1
ORDER BY team_id`

	var rows []teamSeasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	out := make([]team.TeamSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) RankedBySeason(ctx context.Context, seasonID int64, limit int) ([]team.TeamSeason, error) {
	query := `
SELECT ` + teamSeasonColumns + `
FROM team_seasons
WHERE season_id = $1
  AND final_rank IS NOT NULL
ORDER BY final_rank
LIMIT $2`

	var rows []teamSeasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, limit); err != nil {
		return nil, fmt.Errorf("list ranked team seasons: %w", err)
	}
	out := make([]team.TeamSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) UpsertSeasonRow(ctx context.Context, row team.TeamSeason) (team.TeamSeason, error) {
	query := upsertTeamSeasonQuery + `
RETURNING ` + teamSeasonColumns

	boundSQL, args, err := sqlx.Named(query, teamSeasonArgs(row))
	if err != nil {
		return team.TeamSeason{}, fmt.Errorf("bind upsert team season query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var saved teamSeasonRowModel
	if err := r.db.GetContext(ctx, &saved, boundSQL, args...); err != nil {
		return team.TeamSeason{}, fmt.Errorf("upsert team season: %w", err)
	}
	return saved.toDomain(), nil
}

func (r *TeamRepository) SaveSeasonRows(ctx context.Context, rows []team.TeamSeason) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team season save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		boundSQL, args, err := sqlx.Named(upsertTeamSeasonQuery, teamSeasonArgs(row))
		if err != nil {
			return fmt.Errorf("bind save team season team=%d query: %w", row.TeamID, err)
		}
		boundSQL = tx.Rebind(boundSQL)
		if _, err := tx.ExecContext(ctx, boundSQL, args...); err != nil {
			return fmt.Errorf("save team season team=%d: %w", row.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team season save tx: %w", err)
	}
	return nil
}
