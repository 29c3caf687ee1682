package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/bracket"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
)

func newPlayoffFixture(t *testing.T) *PlayoffService {
	t.Helper()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	rows := make([]team.TeamSeason, 0, 12)
	for seed := 1; seed <= 12; seed++ {
		rank := seed
		rows = append(rows, team.TeamSeason{
			TeamID:       int64(100 + seed),
			SeasonID:     1,
			ConferenceID: 1,
			FinalRank:    &rank,
		})
	}
	teams := &stubTeamRepository{rows: rows}
	games := &stubGameRepository{nextID: 1}
	return NewPlayoffService(seasons, teams, games)
}

func seedTeamIDs() []int64 {
	ids := make([]int64, 0, 12)
	for seed := 1; seed <= 12; seed++ {
		ids = append(ids, int64(100+seed))
	}
	return ids
}

func gamesForWeek(games []game.Game, week int) []game.Game {
	out := make([]game.Game, 0)
	for _, g := range games {
		if g.Week == week {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func TestPlayoffService_CreateShell(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)

	games, err := service.CreateShell(context.Background(), 1)
	if err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}
	if len(games) != bracket.TotalGames {
		t.Fatalf("expected %d games, got %d", bracket.TotalGames, len(games))
	}
	wantPerWeek := map[int]int{17: 4, 18: 4, 19: 2, 20: 1}
	for week, want := range wantPerWeek {
		if got := len(gamesForWeek(games, week)); got != want {
			t.Fatalf("week %d: expected %d games, got %d", week, want, got)
		}
	}
	for _, g := range games {
		if g.HomeTeamID != nil || g.AwayTeamID != nil || g.HomeScore != nil || g.AwayScore != nil {
			t.Fatalf("shell game %d must be empty, got %+v", g.ID, g)
		}
		if g.GameType != game.TypePlayoff {
			t.Fatalf("shell game %d has type %q", g.ID, g.GameType)
		}
	}
}

func TestPlayoffService_SeedManual_PairingsAndByes(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)
	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}

	games, err := service.SeedManual(context.Background(), 1, seedTeamIDs())
	if err != nil {
		t.Fatalf("SeedManual error: %v", err)
	}

	firstRound := gamesForWeek(games, 17)
	wantPairs := [][2]int{{5, 12}, {6, 11}, {7, 10}, {8, 9}}
	for i, g := range firstRound {
		if g.HomeSeed == nil || g.AwaySeed == nil || *g.HomeSeed != wantPairs[i][0] || *g.AwaySeed != wantPairs[i][1] {
			t.Fatalf("first-round game %d: expected %dv%d, got %+v", i, wantPairs[i][0], wantPairs[i][1], g)
		}
		if *g.HomeTeamID != int64(100+wantPairs[i][0]) || *g.AwayTeamID != int64(100+wantPairs[i][1]) {
			t.Fatalf("first-round game %d has wrong teams: %+v", i, g)
		}
	}

	quarterfinals := gamesForWeek(games, 18)
	for i, g := range quarterfinals {
		if g.HomeSeed == nil || *g.HomeSeed != i+1 || *g.HomeTeamID != int64(100+i+1) {
			t.Fatalf("quarterfinal %d: expected home seed %d, got %+v", i, i+1, g)
		}
		if g.AwayTeamID != nil || g.AwaySeed != nil {
			t.Fatalf("quarterfinal %d away slot must be empty until first round completes", i)
		}
	}
}

func TestPlayoffService_SeedFromRankings(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)
	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}

	games, err := service.SeedFromRankings(context.Background(), 1)
	if err != nil {
		t.Fatalf("SeedFromRankings error: %v", err)
	}
	quarterfinals := gamesForWeek(games, 18)
	if *quarterfinals[0].HomeTeamID != 101 {
		t.Fatalf("expected rank 1 team in the first quarterfinal home slot, got %+v", quarterfinals[0])
	}
}

func TestPlayoffService_SeedFromRankings_RequiresTwelveRankedTeams(t *testing.T) {
	t.Parallel()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	rank := 1
	teams := &stubTeamRepository{rows: []team.TeamSeason{{TeamID: 101, SeasonID: 1, FinalRank: &rank}}}
	games := &stubGameRepository{nextID: 1}
	service := NewPlayoffService(seasons, teams, games)

	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}
	if _, err := service.SeedFromRankings(context.Background(), 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayoffService_SeedManual_Validation(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)
	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}

	if _, err := service.SeedManual(context.Background(), 1, []int64{1, 2, 3}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short list, got %v", err)
	}
}

func TestPlayoffService_Seed_RequiresShell(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)

	if _, err := service.SeedManual(context.Background(), 1, seedTeamIDs()); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed without a shell, got %v", err)
	}
}

func TestPlayoffService_SubmitResult_UnknownGame(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)
	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}
	if _, err := service.SeedManual(context.Background(), 1, seedTeamIDs()); err != nil {
		t.Fatalf("SeedManual error: %v", err)
	}

	_, err := service.SubmitResult(context.Background(), 1, bracket.Result{GameID: 999, HomeScore: 21, AwayScore: 14})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayoffService_SubmitResults_PropagatesFirstRoundWinners(t *testing.T) {
	t.Parallel()

	service := newPlayoffFixture(t)
	if _, err := service.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("CreateShell error: %v", err)
	}
	seeded, err := service.SeedManual(context.Background(), 1, seedTeamIDs())
	if err != nil {
		t.Fatalf("SeedManual error: %v", err)
	}

	results := make([]bracket.Result, 0, 4)
	for _, g := range gamesForWeek(seeded, 17) {
		// the better seed (home) wins every first-round game
		results = append(results, bracket.Result{GameID: g.ID, HomeScore: 28, AwayScore: 14})
	}

	games, err := service.SubmitResults(context.Background(), 1, results)
	if err != nil {
		t.Fatalf("SubmitResults error: %v", err)
	}

	quarterfinals := gamesForWeek(games, 18)
	// the 1 seed hosts the worst surviving seed
	wantAway := []int{8, 7, 6, 5}
	for i, g := range quarterfinals {
		if g.AwaySeed == nil || *g.AwaySeed != wantAway[i] {
			t.Fatalf("quarterfinal %d: expected away seed %d, got %+v", i, wantAway[i], g)
		}
		if *g.AwayTeamID != int64(100+wantAway[i]) {
			t.Fatalf("quarterfinal %d: wrong away team %+v", i, g)
		}
	}

	// resubmitting the same batch converges to the same bracket
	again, err := service.SubmitResults(context.Background(), 1, results)
	if err != nil {
		t.Fatalf("resubmit error: %v", err)
	}
	for i := range games {
		if !sameSlot(games[i].AwayTeamID, again[i].AwayTeamID) || !sameSlot(games[i].HomeTeamID, again[i].HomeTeamID) {
			t.Fatalf("resubmission diverged at game %d: %+v vs %+v", games[i].ID, games[i], again[i])
		}
	}
}

func TestPlayoffService_EligibleTeams_MarksConferenceChampions(t *testing.T) {
	t.Parallel()

	seasons := &stubSeasonRepository{seasons: []season.Season{{ID: 1, Year: 2025}}}
	teams := &stubTeamRepository{
		teams: []team.Team{
			{ID: 1, Name: "Kansas State"},
			{ID: 2, Name: "Texas Tech"},
			{ID: 3, Name: "Georgia"},
		},
		conferences: []team.Conference{
			{ID: 1, Name: "Big 12"},
			{ID: 2, Name: "SEC"},
		},
		rows: []team.TeamSeason{
			{TeamID: 1, SeasonID: 1, ConferenceID: 1, Wins: 11, Losses: 1},
			{TeamID: 2, SeasonID: 1, ConferenceID: 1, Wins: 9, Losses: 3},
			{TeamID: 3, SeasonID: 1, ConferenceID: 2, Wins: 12, Losses: 0},
		},
	}
	service := NewPlayoffService(seasons, teams, &stubGameRepository{nextID: 1})

	out, err := service.EligibleTeams(context.Background(), 1)
	if err != nil {
		t.Fatalf("EligibleTeams error: %v", err)
	}
	champions := map[int64]bool{}
	for _, et := range out {
		champions[et.TeamID] = et.IsConferenceChampion
	}
	if !champions[1] || champions[2] || !champions[3] {
		t.Fatalf("unexpected champion flags: %+v", champions)
	}
}

func sameSlot(a, b *int64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

type stubTeamRepository struct {
	teams       []team.Team
	conferences []team.Conference
	rows        []team.TeamSeason
}

func (s *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	out := make([]team.Team, len(s.teams))
	copy(out, s.teams)
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) GetUserControlled(_ context.Context) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.IsUserControlled {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepository) ListConferences(_ context.Context) ([]team.Conference, error) {
	out := make([]team.Conference, len(s.conferences))
	copy(out, s.conferences)
	return out, nil
}

func (s *stubTeamRepository) ListSeasonRows(_ context.Context, seasonID int64) ([]team.TeamSeason, error) {
	out := make([]team.TeamSeason, 0)
	for _, row := range s.rows {
		if row.SeasonID == seasonID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubTeamRepository) RankedBySeason(_ context.Context, seasonID int64, limit int) ([]team.TeamSeason, error) {
	out := make([]team.TeamSeason, 0)
	for _, row := range s.rows {
		if row.SeasonID == seasonID && row.FinalRank != nil {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].FinalRank < *out[j].FinalRank })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubTeamRepository) UpsertSeasonRow(_ context.Context, row team.TeamSeason) (team.TeamSeason, error) {
	for i := range s.rows {
		if s.rows[i].TeamID == row.TeamID && s.rows[i].SeasonID == row.SeasonID {
			row.ID = s.rows[i].ID
			s.rows[i] = row
			return row, nil
		}
	}
	row.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *stubTeamRepository) SaveSeasonRows(_ context.Context, rows []team.TeamSeason) error {
	for _, row := range rows {
		if _, err := s.UpsertSeasonRow(context.Background(), row); err != nil {
			return err
		}
	}
	return nil
}

type stubGameRepository struct {
	games  []game.Game
	nextID int64
}

func (s *stubGameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	for _, g := range s.games {
		if g.ID == gameID {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (s *stubGameRepository) Create(_ context.Context, g game.Game) (game.Game, error) {
	if s.nextID == 0 {
		s.nextID = 1
	}
	g.ID = s.nextID
	s.nextID++
	s.games = append(s.games, g)
	return g, nil
}

func (s *stubGameRepository) Update(_ context.Context, g game.Game) (game.Game, error) {
	for i := range s.games {
		if s.games[i].ID == g.ID {
			s.games[i] = g
			return g, nil
		}
	}
	return game.Game{}, errors.New("game does not exist")
}

func (s *stubGameRepository) ListBySeason(_ context.Context, seasonID int64) ([]game.Game, error) {
	out := make([]game.Game, 0)
	for _, g := range s.games {
		if g.SeasonID == seasonID {
			out = append(out, g)
		}
	}
	s.sort(out)
	return out, nil
}

func (s *stubGameRepository) ListPlayoffGames(_ context.Context, seasonID int64) ([]game.Game, error) {
	out := make([]game.Game, 0)
	for _, g := range s.games {
		if g.SeasonID == seasonID && g.GameType == game.TypePlayoff {
			out = append(out, g)
		}
	}
	s.sort(out)
	return out, nil
}

func (s *stubGameRepository) ReplaceBracket(_ context.Context, seasonID int64, games []game.Game) ([]game.Game, error) {
	kept := make([]game.Game, 0, len(s.games))
	for _, g := range s.games {
		if g.SeasonID == seasonID && g.GameType == game.TypePlayoff {
			continue
		}
		kept = append(kept, g)
	}
	s.games = kept

	inserted := make([]game.Game, 0, len(games))
	for _, g := range games {
		g.SeasonID = seasonID
		g.ID = s.nextID
		s.nextID++
		s.games = append(s.games, g)
		inserted = append(inserted, g)
	}
	s.sort(inserted)
	return inserted, nil
}

func (s *stubGameRepository) UpdatePlayoffGames(_ context.Context, seasonID int64, games []game.Game) error {
	for _, g := range games {
		for i := range s.games {
			if s.games[i].ID == g.ID && s.games[i].SeasonID == seasonID {
				s.games[i] = g
			}
		}
	}
	return nil
}

func (s *stubGameRepository) sort(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		return games[i].ID < games[j].ID
	})
}
