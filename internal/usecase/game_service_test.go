package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

func newGameFixture() *GameService {
	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	teams := &stubTeamRepository{teams: []team.Team{
		{ID: 101, Name: "Kansas State", Abbreviation: "KSU"},
		{ID: 102, Name: "Georgia", Abbreviation: "UGA"},
	}}
	return NewGameService(seasons, teams, &stubGameRepository{nextID: 1})
}

func TestGameService_Create_SchedulesRegularSeasonGame(t *testing.T) {
	t.Parallel()

	service := newGameFixture()

	created, err := service.Create(context.Background(), 1, 5, 101, 102)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned game id")
	}
	if created.GameType != game.TypeRegular {
		t.Fatalf("unexpected game type: got=%q want=%q", created.GameType, game.TypeRegular)
	}
	if created.HomeScore != nil || created.AwayScore != nil {
		t.Fatalf("new game must start unplayed: %+v", created)
	}

	games, err := service.ListSeasonGames(context.Background(), 1)
	if err != nil {
		t.Fatalf("list season games: %v", err)
	}
	if len(games) != 1 || games[0].ID != created.ID {
		t.Fatalf("unexpected season games: %+v", games)
	}
}

func TestGameService_Create_Validation(t *testing.T) {
	t.Parallel()

	service := newGameFixture()
	ctx := context.Background()

	if _, err := service.Create(ctx, 1, 0, 101, 102); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 0, got %v", err)
	}
	if _, err := service.Create(ctx, 1, 3, 101, 101); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a team playing itself, got %v", err)
	}
	if _, err := service.Create(ctx, 1, 3, 101, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown away team, got %v", err)
	}
	if _, err := service.Create(ctx, 99, 3, 101, 102); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown season, got %v", err)
	}
}

func TestGameService_UpdateScore_RecordsFinal(t *testing.T) {
	t.Parallel()

	service := newGameFixture()
	ctx := context.Background()

	created, err := service.Create(ctx, 1, 5, 101, 102)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	home, away := 31, 24
	updated, err := service.UpdateScore(ctx, created.ID, ScoreUpdate{HomeScore: &home, AwayScore: &away})
	if err != nil {
		t.Fatalf("update score: %v", err)
	}
	if updated.HomeScore == nil || *updated.HomeScore != home {
		t.Fatalf("unexpected home score: %+v", updated.HomeScore)
	}
	if updated.AwayScore == nil || *updated.AwayScore != away {
		t.Fatalf("unexpected away score: %+v", updated.AwayScore)
	}

	fetched, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !fetched.Complete() {
		t.Fatalf("expected a complete game after score entry: %+v", fetched)
	}
}

func TestGameService_UpdateScore_RejectsPlayoffGames(t *testing.T) {
	t.Parallel()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	games := &stubGameRepository{
		games:  []game.Game{{ID: 7, SeasonID: 1, Week: 17, GameType: game.TypePlayoff}},
		nextID: 8,
	}
	service := NewGameService(seasons, &stubTeamRepository{}, games)

	score := 21
	_, err := service.UpdateScore(context.Background(), 7, ScoreUpdate{HomeScore: &score, AwayScore: &score})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a playoff game, got %v", err)
	}
}

func TestGameService_Get_NotFound(t *testing.T) {
	t.Parallel()

	service := newGameFixture()

	if _, err := service.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
