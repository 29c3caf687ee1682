package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
)

const gameColumns = `
id, season_id, week, home_team_id, away_team_id, home_score, away_score,
home_seed, away_seed, game_type, playoff_round`

type gameRowModel struct {
	ID           int64  `db:"id"`
	SeasonID     int64  `db:"season_id"`
	Week         int    `db:"week"`
	HomeTeamID   *int64 `db:"home_team_id"`
	AwayTeamID   *int64 `db:"away_team_id"`
	HomeScore    *int   `db:"home_score"`
	AwayScore    *int   `db:"away_score"`
	HomeSeed     *int   `db:"home_seed"`
	AwaySeed     *int   `db:"away_seed"`
	GameType     string `db:"game_type"`
	PlayoffRound string `db:"playoff_round"`
}

func (m gameRowModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		SeasonID:     m.SeasonID,
		Week:         m.Week,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		HomeSeed:     m.HomeSeed,
		AwaySeed:     m.AwaySeed,
		GameType:     m.GameType,
		PlayoffRound: m.PlayoffRound,
	}
}

func gameArgs(g game.Game) map[string]any {
	return map[string]any{
		"id":            g.ID,
		"season_id":     g.SeasonID,
		"week":          g.Week,
		"home_team_id":  g.HomeTeamID,
		"away_team_id":  g.AwayTeamID,
		"home_score":    g.HomeScore,
		"away_score":    g.AwayScore,
		"home_seed":     g.HomeSeed,
		"away_seed":     g.AwaySeed,
		"game_type":     g.GameType,
		"playoff_round": g.PlayoffRound,
	}
}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	query := `
SELECT ` + gameColumns + `
FROM games
WHERE id = $1`

	var row gameRowModel
	if err := r.db.GetContext(ctx, &row, query, gameID); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) (game.Game, error) {
	const query = `
INSERT INTO games (
    season_id, week, home_team_id, away_team_id, home_score, away_score,
    home_seed, away_seed, game_type, playoff_round
) VALUES (
    :season_id, :week, :home_team_id, :away_team_id, :home_score, :away_score,
    :home_seed, :away_seed, :game_type, :playoff_round
)
RETURNING ` + gameColumns

	boundSQL, args, err := sqlx.Named(query, gameArgs(g))
	if err != nil {
		return game.Game{}, fmt.Errorf("bind insert game query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var row gameRowModel
	if err := r.db.GetContext(ctx, &row, boundSQL, args...); err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) (game.Game, error) {
	const query = `
UPDATE games
SET week = :week,
    home_team_id = :home_team_id,
    away_team_id = :away_team_id,
    home_score = :home_score,
    away_score = :away_score,
    game_type = :game_type,
    playoff_round = :playoff_round
WHERE id = :id
RETURNING ` + gameColumns

	boundSQL, args, err := sqlx.Named(query, gameArgs(g))
	if err != nil {
		return game.Game{}, fmt.Errorf("bind update game query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)

	var row gameRowModel
	if err := r.db.GetContext(ctx, &row, boundSQL, args...); err != nil {
		return game.Game{}, fmt.Errorf("update game id=%d: %w", g.ID, err)
	}
	return row.toDomain(), nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID int64) ([]game.Game, error) {
	query := `
SELECT ` + gameColumns + `
FROM games
WHERE season_id = $1
ORDER BY week, id`

	var rows []gameRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) ListPlayoffGames(ctx context.Context, seasonID int64) ([]game.Game, error) {
	query := `
SELECT ` + gameColumns + `
FROM games
WHERE season_id = $1
  AND game_type = $2
ORDER BY week, id`

	var rows []gameRowModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, game.TypePlayoff); err != nil {
		return nil, fmt.Errorf("list playoff games: %w", err)
	}
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceBracket drops the season's playoff games and inserts the given
// set in one transaction.
func (r *GameRepository) ReplaceBracket(ctx context.Context, seasonID int64, games []game.Game) ([]game.Game, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for bracket replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteQuery = `
DELETE FROM games
WHERE season_id = $1
  AND game_type = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, seasonID, game.TypePlayoff); err != nil {
		return nil, fmt.Errorf("delete playoff games: %w", err)
	}

	const insertQuery = `
INSERT INTO games (
    season_id, week, home_team_id, away_team_id, home_score, away_score,
    home_seed, away_seed, game_type, playoff_round
) VALUES (
    :season_id, :week, :home_team_id, :away_team_id, :home_score, :away_score,
    :home_seed, :away_seed, :game_type, :playoff_round
)
RETURNING ` + gameColumns

	inserted := make([]game.Game, 0, len(games))
	for _, g := range games {
		g.SeasonID = seasonID
		boundSQL, args, err := sqlx.Named(insertQuery, gameArgs(g))
		if err != nil {
			return nil, fmt.Errorf("bind insert playoff game week=%d query: %w", g.Week, err)
		}
		boundSQL = tx.Rebind(boundSQL)

		var row gameRowModel
		if err := tx.GetContext(ctx, &row, boundSQL, args...); err != nil {
			return nil, fmt.Errorf("insert playoff game week=%d: %w", g.Week, err)
		}
		inserted = append(inserted, row.toDomain())
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bracket replace tx: %w", err)
	}
	return inserted, nil
}

// UpdatePlayoffGames persists in-place mutations of existing playoff
// rows in one transaction.
func (r *GameRepository) UpdatePlayoffGames(ctx context.Context, seasonID int64, games []game.Game) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for bracket update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE games
SET home_team_id = :home_team_id,
    away_team_id = :away_team_id,
    home_score = :home_score,
    away_score = :away_score,
    home_seed = :home_seed,
    away_seed = :away_seed,
    playoff_round = :playoff_round
WHERE id = :id
  AND season_id = :season_id
  AND game_type = :game_type`

	for _, g := range games {
		g.SeasonID = seasonID
		boundSQL, args, err := sqlx.Named(updateQuery, gameArgs(g))
		if err != nil {
			return fmt.Errorf("bind update playoff game id=%d query: %w", g.ID, err)
		}
		boundSQL = tx.Rebind(boundSQL)
		if _, err := tx.ExecContext(ctx, boundSQL, args...); err != nil {
			return fmt.Errorf("update playoff game id=%d: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bracket update tx: %w", err)
	}
	return nil
}
