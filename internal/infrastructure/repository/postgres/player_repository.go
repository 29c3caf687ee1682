package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
)

const playerColumns = `
id, name, position, team_id, recruit_stars, recruit_rank_nat, home_state, redshirt_used`

const playerSeasonColumns = `
id, player_id, season_id, team_id, class, redshirted, ovr_rating, speed,
dev_trait, height, weight, games_played, pass_yards, pass_tds, rush_yards,
rush_tds, rec_yards, rec_tds, tackles, sacks, interceptions`

const upsertPlayerSeasonQuery = `
INSERT INTO player_seasons (
    player_id, season_id, team_id, class, redshirted, ovr_rating, speed,
    dev_trait, height, weight, games_played, pass_yards, pass_tds, rush_yards,
    rush_tds, rec_yards, rec_tds, tackles, sacks, interceptions
) VALUES (
    :player_id, :season_id, :team_id, :class, :redshirted, :ovr_rating, :speed,
    :dev_trait, :height, :weight, :games_played, :pass_yards, :pass_tds, :rush_yards,
    :rush_tds, :rec_yards, :rec_tds, :tackles, :sacks, :interceptions
)
ON CONFLICT (player_id, season_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    class = EXCLUDED.class,
    redshirted = EXCLUDED.redshirted,
    ovr_rating = EXCLUDED.ovr_rating,
    speed = EXCLUDED.speed,
    dev_trait = EXCLUDED.dev_trait,
    height = EXCLUDED.height,
    weight = EXCLUDED.weight,
    games_played = EXCLUDED.games_played,
    pass_yards = EXCLUDED.pass_yards,
    pass_tds = EXCLUDED.pass_tds,
    rush_yards = EXCLUDED.rush_yards,
    rush_tds = EXCLUDED.rush_tds,
    rec_yards = EXCLUDED.rec_yards,
    rec_tds = EXCLUDED.rec_tds,
    tackles = EXCLUDED.tackles,
    sacks = EXCLUDED.sacks,
    interceptions = EXCLUDED.interceptions`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query := `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	var row playerRowModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListRostered(ctx context.Context) ([]player.Player, error) {
	query := `
SELECT ` + playerColumns + `
FROM players
WHERE team_id IS NOT NULL
ORDER BY id`

	var rows []playerRowModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list rostered players: %w", err)
	}
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Save(ctx context.Context, p player.Player) error {
	const query = `
UPDATE players
SET name = :name,
    position = :position,
    team_id = :team_id,
    recruit_stars = :recruit_stars,
    recruit_rank_nat = :recruit_rank_nat,
    home_state = :home_state,
    redshirt_used = :redshirt_used
WHERE id = :id`

	boundSQL, args, err := sqlx.Named(query, playerArgs(p))
	if err != nil {
		return fmt.Errorf("bind save player query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, args...); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetSeasonRecord(ctx context.Context, playerID, seasonID int64) (player.SeasonRecord, bool, error) {
	query := `
SELECT ` + playerSeasonColumns + `
FROM player_seasons
WHERE player_id = $1
  AND season_id = $2`

	var row playerSeasonRowModel
	if err := r.db.GetContext(ctx, &row, query, playerID, seasonID); err != nil {
		if isNotFound(err) {
			return player.SeasonRecord{}, false, nil
		}
		return player.SeasonRecord{}, false, fmt.Errorf("get player season record: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListSeasonRecords(ctx context.Context, seasonID int64) ([]player.SeasonRecord, error) {
	query := `
SELECT ` + playerSeasonColumns + `
FROM player_seasons
WHERE season_id = $1
ORDER BY player_id`

	var rows []playerSeasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("list player season records: %w", err)
	}
	out := make([]player.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) ListRoster(ctx context.Context, seasonID, teamID int64) ([]player.SeasonRecord, error) {
	query := `
SELECT ` + playerSeasonColumns + `
FROM player_seasons
WHERE season_id = $1
  AND team_id = $2
ORDER BY player_id`

	var rows []playerSeasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, teamID); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	out := make([]player.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) ListCareer(ctx context.Context, playerID int64) ([]player.SeasonRecord, error) {
	query := `
SELECT ` + playerSeasonColumns + `
FROM player_seasons
WHERE player_id = $1
ORDER BY season_id`

	var rows []playerSeasonRowModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("list career records: %w", err)
	}
	out := make([]player.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) SaveSeasonRecord(ctx context.Context, rec player.SeasonRecord) (player.SeasonRecord, error) {
	query := upsertPlayerSeasonQuery + `
RETURNING ` + playerSeasonColumns

	boundSQL, args, err := sqlx.Named(query, playerSeasonArgs(rec))
	if err != nil {
		return player.SeasonRecord{}, fmt.Errorf("bind upsert player season query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var saved playerSeasonRowModel
	if err := r.db.GetContext(ctx, &saved, boundSQL, args...); err != nil {
		return player.SeasonRecord{}, fmt.Errorf("upsert player season: %w", err)
	}
	return saved.toDomain(), nil
}
