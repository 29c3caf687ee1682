package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

// ProgressionStore applies a whole season rollover in one transaction:
// backfilled rows, next-season rows, graduations, redshirt consumption
// and staged-roster activations all commit or roll back together.
type ProgressionStore struct {
	db *sqlx.DB
}

func NewProgressionStore(db *sqlx.DB) *ProgressionStore {
	return &ProgressionStore{db: db}
}

func (s *ProgressionStore) ApplyProgression(ctx context.Context, plan usecase.ProgressionPlan) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for progression: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, rec := range plan.Backfill {
		if err := upsertPlayerSeasonTx(ctx, tx, playerSeasonArgs(rec)); err != nil {
			return fmt.Errorf("backfill player=%d season row: %w", rec.PlayerID, err)
		}
	}
	for _, rec := range plan.NextRecords {
		if err := upsertPlayerSeasonTx(ctx, tx, playerSeasonArgs(rec)); err != nil {
			return fmt.Errorf("insert next season row player=%d: %w", rec.PlayerID, err)
		}
	}

	if len(plan.Graduated) > 0 {
		const graduateQuery = `
UPDATE players
SET team_id = NULL
WHERE id = ANY($1)`
		if _, err := tx.ExecContext(ctx, graduateQuery, pq.Array(plan.Graduated)); err != nil {
			return fmt.Errorf("graduate players: %w", err)
		}
	}

	if len(plan.RedshirtConsumed) > 0 {
		const redshirtQuery = `
UPDATE players
SET redshirt_used = TRUE
WHERE id = ANY($1)`
		if _, err := tx.ExecContext(ctx, redshirtQuery, pq.Array(plan.RedshirtConsumed)); err != nil {
			return fmt.Errorf("consume redshirts: %w", err)
		}
	}

	const insertPlayerQuery = `
INSERT INTO players (name, position, team_id, recruit_stars, recruit_rank_nat, home_state, redshirt_used)
VALUES (:name, :position, :team_id, :recruit_stars, :recruit_rank_nat, :home_state, :redshirt_used)
RETURNING id`

	for _, act := range plan.Activations {
		args := playerArgs(act.Player)
		delete(args, "id")
		boundSQL, boundArgs, err := sqlx.Named(insertPlayerQuery, args)
		if err != nil {
			return fmt.Errorf("bind insert activated player query: %w", err)
		}
		boundSQL = tx.Rebind(boundSQL)

		var playerID int64
		if err := tx.GetContext(ctx, &playerID, boundSQL, boundArgs...); err != nil {
			return fmt.Errorf("insert activated player %q: %w", act.Player.Name, err)
		}

		season := act.Season
		season.PlayerID = playerID
		if err := upsertPlayerSeasonTx(ctx, tx, playerSeasonArgs(season)); err != nil {
			return fmt.Errorf("insert activated player %q season row: %w", act.Player.Name, err)
		}
	}

	if len(plan.ActivatedRecruitIDs) > 0 {
		const activateRecruitsQuery = `
UPDATE recruits
SET status = 'activated'
WHERE id = ANY($1)`
		if _, err := tx.ExecContext(ctx, activateRecruitsQuery, pq.Array(plan.ActivatedRecruitIDs)); err != nil {
			return fmt.Errorf("activate recruits: %w", err)
		}
	}
	if len(plan.ActivatedTransferIDs) > 0 {
		const activateTransfersQuery = `
UPDATE transfers
SET status = 'activated'
WHERE id = ANY($1)`
		if _, err := tx.ExecContext(ctx, activateTransfersQuery, pq.Array(plan.ActivatedTransferIDs)); err != nil {
			return fmt.Errorf("activate transfers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progression tx: %w", err)
	}
	return nil
}

func upsertPlayerSeasonTx(ctx context.Context, tx *sqlx.Tx, args map[string]any) error {
	boundSQL, boundArgs, err := sqlx.Named(upsertPlayerSeasonQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert player season query: %w", err)
	}
	boundSQL = tx.Rebind(boundSQL)
	if _, err := tx.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return err
	}
	return nil
}
