package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
)

func TestProgressionService_Run_AdvancesClassesAndActivatesStaging(t *testing.T) {
	t.Parallel()

	teamID := int64(1)
	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}, {ID: 2, Year: 2026}}}
	players := &stubPlayerRepository{
		players: []player.Player{
			{ID: 1, Name: "Avery Johnson", Position: "QB", TeamID: &teamID},
			{ID: 2, Name: "Jacob Parrish", Position: "CB", TeamID: &teamID},
			{ID: 3, Name: "Jayce Brown", Position: "WR", TeamID: &teamID},
			{ID: 4, Name: "Easton Kilty", Position: "OT", TeamID: &teamID},
		},
		records: []player.SeasonRecord{
			{ID: 10, PlayerID: 1, SeasonID: 1, TeamID: 1, Class: player.ClassJunior},
			{ID: 11, PlayerID: 2, SeasonID: 1, TeamID: 1, Class: player.ClassSenior},
			{ID: 12, PlayerID: 3, SeasonID: 1, TeamID: 1, Class: player.ClassSophomore, Redshirted: true},
			// player 4 has no row for season 1 and gets backfilled
		},
	}
	stars := 4
	rosterRepo := &stubRosterRepository{
		recruits: []roster.Recruit{
			{ID: 7, Name: "Linkon Cure", Position: "TE", Stars: &stars, TeamID: 1, SeasonID: 1, Status: roster.StatusCommitted},
		},
		transfers: []roster.Transfer{
			{ID: 8, Name: "Desmond Purnell", Position: "RB", CurrentClass: player.ClassSophomore, TeamID: 1, SeasonID: 1, Status: roster.StatusCommitted},
		},
	}
	store := &captureProgressionStore{}

	service := NewProgressionService(seasons, players, rosterRepo, store)

	result, err := service.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.NextSeasonID != 2 {
		t.Fatalf("unexpected next season id: %d", result.NextSeasonID)
	}

	plan := store.plan
	if len(plan.Backfill) != 1 || plan.Backfill[0].PlayerID != 4 || plan.Backfill[0].Class != player.ClassFreshman {
		t.Fatalf("expected FR backfill for player 4, got %+v", plan.Backfill)
	}

	nextClassByPlayer := map[int64]player.Class{}
	for _, rec := range plan.NextRecords {
		if rec.SeasonID != 2 {
			t.Fatalf("next record for player %d has season %d", rec.PlayerID, rec.SeasonID)
		}
		nextClassByPlayer[rec.PlayerID] = rec.Class
	}
	if nextClassByPlayer[1] != player.ClassSenior {
		t.Fatalf("expected JR to advance to SR, got %s", nextClassByPlayer[1])
	}
	if nextClassByPlayer[3] != player.ClassSophomore {
		t.Fatalf("expected redshirted SO to stay SO, got %s", nextClassByPlayer[3])
	}
	if nextClassByPlayer[4] != player.ClassSophomore {
		t.Fatalf("expected backfilled FR to advance to SO, got %s", nextClassByPlayer[4])
	}
	if _, ok := nextClassByPlayer[2]; ok {
		t.Fatalf("graduating SR must not get a next-season row")
	}

	if len(plan.Graduated) != 1 || plan.Graduated[0] != 2 {
		t.Fatalf("expected player 2 to graduate, got %+v", plan.Graduated)
	}
	if len(plan.RedshirtConsumed) != 1 || plan.RedshirtConsumed[0] != 3 {
		t.Fatalf("expected player 3 to consume the redshirt, got %+v", plan.RedshirtConsumed)
	}

	if len(plan.Activations) != 2 {
		t.Fatalf("expected 2 activations, got %d", len(plan.Activations))
	}
	recruitAct := plan.Activations[0]
	if recruitAct.Player.Name != "Linkon Cure" || recruitAct.Season.Class != player.ClassFreshman || recruitAct.Season.SeasonID != 2 {
		t.Fatalf("unexpected recruit activation: %+v", recruitAct)
	}
	transferAct := plan.Activations[1]
	if transferAct.Season.Class != player.ClassJunior {
		t.Fatalf("expected SO transfer to arrive as JR, got %s", transferAct.Season.Class)
	}
	if len(plan.ActivatedRecruitIDs) != 1 || plan.ActivatedRecruitIDs[0] != 7 {
		t.Fatalf("unexpected activated recruit ids: %+v", plan.ActivatedRecruitIDs)
	}
	if len(plan.ActivatedTransferIDs) != 1 || plan.ActivatedTransferIDs[0] != 8 {
		t.Fatalf("unexpected activated transfer ids: %+v", plan.ActivatedTransferIDs)
	}

	if len(result.GraduatedPlayerIDs) != 1 || result.GraduatedPlayerIDs[0] != 2 {
		t.Fatalf("unexpected graduated ids: %+v", result.GraduatedPlayerIDs)
	}
	if len(result.RedshirtedPlayerIDs) != 1 || result.RedshirtedPlayerIDs[0] != 3 {
		t.Fatalf("unexpected redshirted ids: %+v", result.RedshirtedPlayerIDs)
	}
}

func TestProgressionService_Run_SkipsPlayersAlreadyProgressed(t *testing.T) {
	t.Parallel()

	teamID := int64(1)
	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}, {ID: 2, Year: 2026}}}
	players := &stubPlayerRepository{
		players: []player.Player{
			{ID: 1, Name: "Avery Johnson", Position: "QB", TeamID: &teamID},
		},
		records: []player.SeasonRecord{
			{ID: 10, PlayerID: 1, SeasonID: 1, TeamID: 1, Class: player.ClassJunior},
			{ID: 20, PlayerID: 1, SeasonID: 2, TeamID: 1, Class: player.ClassSenior},
		},
	}
	store := &captureProgressionStore{}

	service := NewProgressionService(seasons, players, &stubRosterRepository{}, store)

	result, err := service.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(store.plan.NextRecords) != 0 || len(store.plan.Graduated) != 0 || len(store.plan.RedshirtConsumed) != 0 {
		t.Fatalf("rerun must be a no-op for already progressed players, got %+v", store.plan)
	}
	if len(result.ProgressedPlayerIDs) != 0 {
		t.Fatalf("unexpected progressed ids: %+v", result.ProgressedPlayerIDs)
	}
}

func TestProgressionService_Run_RequiresNextSeason(t *testing.T) {
	t.Parallel()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	service := NewProgressionService(seasons, &stubPlayerRepository{}, &stubRosterRepository{}, &captureProgressionStore{})

	_, err := service.Run(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProgressionService_Run_Validation(t *testing.T) {
	t.Parallel()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}, {ID: 2, Year: 2026}}}
	service := NewProgressionService(seasons, &stubPlayerRepository{}, &stubRosterRepository{}, &captureProgressionStore{})

	if _, err := service.Run(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero season id, got %v", err)
	}
	if _, err := service.Run(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown season, got %v", err)
	}
}

func TestProgressionService_Run_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	teamID := int64(1)
	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}, {ID: 2, Year: 2026}}}
	players := &stubPlayerRepository{
		players: []player.Player{{ID: 1, Name: "Avery Johnson", Position: "QB", TeamID: &teamID}},
		records: []player.SeasonRecord{{ID: 10, PlayerID: 1, SeasonID: 1, TeamID: 1, Class: player.ClassJunior}},
	}
	store := &captureProgressionStore{err: errors.New("tx aborted")}

	service := NewProgressionService(seasons, players, &stubRosterRepository{}, store)

	if _, err := service.Run(context.Background(), 1); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

type stubSeasonRepository struct {
	seasons []season.Season
}

func (s *stubSeasonRepository) List(_ context.Context) ([]season.Season, error) {
	out := make([]season.Season, len(s.seasons))
	copy(out, s.seasons)
	return out, nil
}

func (s *stubSeasonRepository) GetByID(_ context.Context, seasonID int64) (season.Season, bool, error) {
	for _, item := range s.seasons {
		if item.ID == seasonID {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (s *stubSeasonRepository) GetByYear(_ context.Context, year int) (season.Season, bool, error) {
	for _, item := range s.seasons {
		if item.Year == year {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (s *stubSeasonRepository) Latest(_ context.Context) (season.Season, bool, error) {
	if len(s.seasons) == 0 {
		return season.Season{}, false, nil
	}
	latest := s.seasons[0]
	for _, item := range s.seasons[1:] {
		if item.Year > latest.Year {
			latest = item
		}
	}
	return latest, true, nil
}

func (s *stubSeasonRepository) Create(_ context.Context, year int) (season.Season, error) {
	item := season.Season{ID: int64(len(s.seasons) + 1), Year: year}
	s.seasons = append(s.seasons, item)
	return item, nil
}

type stubPlayerRepository struct {
	players []player.Player
	records []player.SeasonRecord
}

func (s *stubPlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	for _, p := range s.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (s *stubPlayerRepository) ListRostered(_ context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		if p.TeamID != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) Save(_ context.Context, p player.Player) error {
	for i := range s.players {
		if s.players[i].ID == p.ID {
			s.players[i] = p
			return nil
		}
	}
	s.players = append(s.players, p)
	return nil
}

func (s *stubPlayerRepository) GetSeasonRecord(_ context.Context, playerID, seasonID int64) (player.SeasonRecord, bool, error) {
	for _, rec := range s.records {
		if rec.PlayerID == playerID && rec.SeasonID == seasonID {
			return rec, true, nil
		}
	}
	return player.SeasonRecord{}, false, nil
}

func (s *stubPlayerRepository) ListSeasonRecords(_ context.Context, seasonID int64) ([]player.SeasonRecord, error) {
	out := make([]player.SeasonRecord, 0)
	for _, rec := range s.records {
		if rec.SeasonID == seasonID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) ListRoster(_ context.Context, seasonID, teamID int64) ([]player.SeasonRecord, error) {
	out := make([]player.SeasonRecord, 0)
	for _, rec := range s.records {
		if rec.SeasonID == seasonID && rec.TeamID == teamID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) ListCareer(_ context.Context, playerID int64) ([]player.SeasonRecord, error) {
	out := make([]player.SeasonRecord, 0)
	for _, rec := range s.records {
		if rec.PlayerID == playerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) SaveSeasonRecord(_ context.Context, rec player.SeasonRecord) (player.SeasonRecord, error) {
	for i := range s.records {
		if s.records[i].PlayerID == rec.PlayerID && s.records[i].SeasonID == rec.SeasonID {
			rec.ID = s.records[i].ID
			s.records[i] = rec
			return rec, nil
		}
	}
	rec.ID = int64(len(s.records) + 1)
	s.records = append(s.records, rec)
	return rec, nil
}

type stubRosterRepository struct {
	recruits  []roster.Recruit
	transfers []roster.Transfer
}

func (s *stubRosterRepository) CreateRecruits(_ context.Context, recruits []roster.Recruit) ([]int64, error) {
	ids := make([]int64, 0, len(recruits))
	for _, r := range recruits {
		r.ID = int64(len(s.recruits) + 1)
		s.recruits = append(s.recruits, r)
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (s *stubRosterRepository) ListRecruits(_ context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Recruit, error) {
	out := make([]roster.Recruit, 0)
	for _, r := range s.recruits {
		if r.TeamID == teamID && r.SeasonID == seasonID && (status == "" || r.Status == status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRosterRepository) ListCommittedRecruitsBySeason(_ context.Context, seasonID int64) ([]roster.Recruit, error) {
	out := make([]roster.Recruit, 0)
	for _, r := range s.recruits {
		if r.SeasonID == seasonID && r.Status == roster.StatusCommitted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRosterRepository) CreateTransfers(_ context.Context, transfers []roster.Transfer) ([]int64, error) {
	ids := make([]int64, 0, len(transfers))
	for _, tr := range transfers {
		tr.ID = int64(len(s.transfers) + 1)
		s.transfers = append(s.transfers, tr)
		ids = append(ids, tr.ID)
	}
	return ids, nil
}

func (s *stubRosterRepository) ListTransfers(_ context.Context, teamID, seasonID int64, status roster.CommitStatus) ([]roster.Transfer, error) {
	out := make([]roster.Transfer, 0)
	for _, tr := range s.transfers {
		if tr.TeamID == teamID && tr.SeasonID == seasonID && (status == "" || tr.Status == status) {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (s *stubRosterRepository) ListCommittedTransfersBySeason(_ context.Context, seasonID int64) ([]roster.Transfer, error) {
	out := make([]roster.Transfer, 0)
	for _, tr := range s.transfers {
		if tr.SeasonID == seasonID && tr.Status == roster.StatusCommitted {
			out = append(out, tr)
		}
	}
	return out, nil
}

type captureProgressionStore struct {
	plan ProgressionPlan
	err  error
}

func (s *captureProgressionStore) ApplyProgression(_ context.Context, plan ProgressionPlan) error {
	if s.err != nil {
		return s.err
	}
	s.plan = plan
	return nil
}
