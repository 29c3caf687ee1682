package bracket

import (
	"errors"
	"testing"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
)

// teamForSeed makes seeds readable in assertions: seed n is team 100+n.
func teamForSeed(seed int) int64 { return int64(100 + seed) }

func newShellGames(t *testing.T) []game.Game {
	t.Helper()
	games := NewShell(1)
	for i := range games {
		games[i].ID = int64(i + 1)
	}
	return games
}

func newSeededBracket(t *testing.T) *Bracket {
	t.Helper()
	b, err := Load(newShellGames(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	teamIDs := make([]int64, 12)
	for i := range teamIDs {
		teamIDs[i] = teamForSeed(i + 1)
	}
	if err := b.Seed(teamIDs); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return b
}

// result builds a Result for the i-th game of a round.
func result(t *testing.T, b *Bracket, r Round, i, homeScore, awayScore int) Result {
	t.Helper()
	games := b.Round(r)
	if i >= len(games) {
		t.Fatalf("round %s has no game %d", r, i)
	}
	return Result{GameID: games[i].ID, HomeScore: homeScore, AwayScore: awayScore}
}

func wantSlot(t *testing.T, g *game.Game, slot string, teamID *int64, seed *int) {
	t.Helper()
	gotTeam, gotSeed := g.HomeTeamID, g.HomeSeed
	if slot == "away" {
		gotTeam, gotSeed = g.AwayTeamID, g.AwaySeed
	}
	switch {
	case teamID == nil && gotTeam != nil:
		t.Fatalf("game %d %s slot: got team %d, want empty", g.ID, slot, *gotTeam)
	case teamID != nil && gotTeam == nil:
		t.Fatalf("game %d %s slot: got empty, want team %d", g.ID, slot, *teamID)
	case teamID != nil && *gotTeam != *teamID:
		t.Fatalf("game %d %s slot: got team %d, want %d", g.ID, slot, *gotTeam, *teamID)
	}
	switch {
	case seed == nil && gotSeed != nil:
		t.Fatalf("game %d %s seed: got %d, want none", g.ID, slot, *gotSeed)
	case seed != nil && (gotSeed == nil || *gotSeed != *seed):
		t.Fatalf("game %d %s seed: got %v, want %d", g.ID, slot, gotSeed, *seed)
	}
}

func seeded(seed int) (*int64, *int) {
	teamID := teamForSeed(seed)
	return &teamID, &seed
}

func TestNewShellShape(t *testing.T) {
	t.Parallel()

	games := NewShell(7)
	if len(games) != TotalGames {
		t.Fatalf("shell has %d games, want %d", len(games), TotalGames)
	}
	counts := map[Round]int{}
	for _, g := range games {
		if g.GameType != game.TypePlayoff {
			t.Fatalf("game in week %d has type %q", g.Week, g.GameType)
		}
		r, ok := RoundForWeek(g.Week)
		if !ok {
			t.Fatalf("week %d is outside the playoff window", g.Week)
		}
		if g.PlayoffRound != r.String() {
			t.Fatalf("week %d labeled %q, want %q", g.Week, g.PlayoffRound, r)
		}
		counts[r]++
	}
	for r, want := range map[Round]int{FirstRound: 4, Quarterfinals: 4, Semifinals: 2, Championship: 1} {
		if counts[r] != want {
			t.Fatalf("%s has %d games, want %d", r, counts[r], want)
		}
	}
}

func TestLoadRejectsWrongGameCount(t *testing.T) {
	t.Parallel()

	games := newShellGames(t)
	if _, err := Load(games[:10]); !errors.Is(err, ErrIncompleteShell) {
		t.Fatalf("Load(10 games) = %v, want ErrIncompleteShell", err)
	}
}

func TestSeedAssignsPairings(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)

	fr := b.Round(FirstRound)
	for i, pair := range [][2]int{{5, 12}, {6, 11}, {7, 10}, {8, 9}} {
		homeTeam, homeSeed := seeded(pair[0])
		awayTeam, awaySeed := seeded(pair[1])
		wantSlot(t, fr[i], "home", homeTeam, homeSeed)
		wantSlot(t, fr[i], "away", awayTeam, awaySeed)
	}
	for i, g := range b.Round(Quarterfinals) {
		homeTeam, homeSeed := seeded(i + 1)
		wantSlot(t, g, "home", homeTeam, homeSeed)
		wantSlot(t, g, "away", nil, nil)
	}
	for _, r := range []Round{Semifinals, Championship} {
		for _, g := range b.Round(r) {
			wantSlot(t, g, "home", nil, nil)
			wantSlot(t, g, "away", nil, nil)
		}
	}
}

func TestSeedRejectsWrongCount(t *testing.T) {
	t.Parallel()

	b, err := Load(newShellGames(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := b.Seed([]int64{1, 2, 3}); !errors.Is(err, ErrSeedCount) {
		t.Fatalf("Seed(3 teams) = %v, want ErrSeedCount", err)
	}
}

func TestFirstRoundWinnersFillQuarterfinalAwaySlots(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)

	// All home seeds (5-8) win.
	err := b.ApplyResults([]Result{
		result(t, b, FirstRound, 0, 28, 10),
		result(t, b, FirstRound, 1, 21, 14),
		result(t, b, FirstRound, 2, 35, 31),
		result(t, b, FirstRound, 3, 17, 3),
	})
	if err != nil {
		t.Fatalf("ApplyResults: %v", err)
	}

	// The 1 seed hosts the worst surviving seed.
	for i, opp := range []int{8, 7, 6, 5} {
		awayTeam, awaySeed := seeded(opp)
		wantSlot(t, b.Round(Quarterfinals)[i], "away", awayTeam, awaySeed)
	}
}

func TestUpsetsReorderQuarterfinalOpponents(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)

	// 12 over 5 and 11 over 6; 7 and 8 hold.
	err := b.ApplyResults([]Result{
		result(t, b, FirstRound, 0, 10, 13),
		result(t, b, FirstRound, 1, 20, 24),
		result(t, b, FirstRound, 2, 30, 7),
		result(t, b, FirstRound, 3, 42, 41),
	})
	if err != nil {
		t.Fatalf("ApplyResults: %v", err)
	}

	// Surviving seeds 7, 8, 11, 12 pair against homes 1-4 worst first.
	for i, opp := range []int{12, 11, 8, 7} {
		awayTeam, awaySeed := seeded(opp)
		wantSlot(t, b.Round(Quarterfinals)[i], "away", awayTeam, awaySeed)
	}
}

func TestPartialRoundLeavesDownstreamEmpty(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)

	err := b.ApplyResults([]Result{
		result(t, b, FirstRound, 0, 28, 10),
		result(t, b, FirstRound, 1, 21, 14),
		result(t, b, FirstRound, 2, 35, 31),
	})
	if err != nil {
		t.Fatalf("ApplyResults: %v", err)
	}

	for i, g := range b.Round(Quarterfinals) {
		homeTeam, homeSeed := seeded(i + 1)
		wantSlot(t, g, "home", homeTeam, homeSeed)
		wantSlot(t, g, "away", nil, nil)
	}
}

// playThrough completes the first three rounds with every better seed
// winning, leaving the championship seeded but unplayed.
func playThrough(t *testing.T, b *Bracket) {
	t.Helper()
	rounds := []struct {
		r Round
		n int
	}{{FirstRound, 4}, {Quarterfinals, 4}, {Semifinals, 2}}
	for _, step := range rounds {
		results := make([]Result, 0, step.n)
		for i := 0; i < step.n; i++ {
			results = append(results, result(t, b, step.r, i, 24, 10))
		}
		if err := b.ApplyResults(results); err != nil {
			t.Fatalf("ApplyResults(%s): %v", step.r, err)
		}
	}
}

func TestFullRunSeedsChampionshipBestVsWorst(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)
	playThrough(t, b)

	// Chalk: quarterfinal winners 1-4 pair 1v4 and 2v3, semifinal
	// winners 1 and 2 meet for the title with the 1 seed at home.
	sf := b.Round(Semifinals)
	for i, pair := range [][2]int{{1, 4}, {2, 3}} {
		homeTeam, homeSeed := seeded(pair[0])
		awayTeam, awaySeed := seeded(pair[1])
		wantSlot(t, sf[i], "home", homeTeam, homeSeed)
		wantSlot(t, sf[i], "away", awayTeam, awaySeed)
	}
	title := b.Round(Championship)[0]
	homeTeam, homeSeed := seeded(1)
	awayTeam, awaySeed := seeded(2)
	wantSlot(t, title, "home", homeTeam, homeSeed)
	wantSlot(t, title, "away", awayTeam, awaySeed)
	if title.Started() {
		t.Fatal("championship has scores before any result was entered")
	}
}

func TestChangedQuarterfinalResultReseedsSemifinals(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)
	playThrough(t, b)
	if err := b.ApplyResults([]Result{result(t, b, Championship, 0, 31, 28)}); err != nil {
		t.Fatalf("ApplyResults(championship): %v", err)
	}

	// Flip the 2v7 quarterfinal to the 7 seed.
	if err := b.ApplyResults([]Result{result(t, b, Quarterfinals, 1, 13, 20)}); err != nil {
		t.Fatalf("ApplyResults(flip): %v", err)
	}

	// Winners 1, 3, 4, 7 repair: 1v7 and 3v4.
	sf := b.Round(Semifinals)
	for i, pair := range [][2]int{{1, 7}, {3, 4}} {
		homeTeam, homeSeed := seeded(pair[0])
		awayTeam, awaySeed := seeded(pair[1])
		wantSlot(t, sf[i], "home", homeTeam, homeSeed)
		wantSlot(t, sf[i], "away", awayTeam, awaySeed)
		if sf[i].Started() {
			t.Fatalf("semifinal %d kept stale scores after reseed", i)
		}
	}
	title := b.Round(Championship)[0]
	wantSlot(t, title, "home", nil, nil)
	wantSlot(t, title, "away", nil, nil)
	if title.Started() {
		t.Fatal("championship kept stale scores after upstream change")
	}
}

func TestBatchMatchesSequentialSubmission(t *testing.T) {
	t.Parallel()

	scores := [][2]int{{28, 10}, {14, 17}, {35, 31}, {3, 9}}

	sequential := newSeededBracket(t)
	batch := newSeededBracket(t)

	for _, r := range []Round{FirstRound, Quarterfinals, Semifinals} {
		n := r.Size()
		results := make([]Result, 0, n)
		for i := 0; i < n; i++ {
			hs, as := scores[i][0], scores[i][1]
			single := result(t, sequential, r, i, hs, as)
			if err := sequential.ApplyResults([]Result{single}); err != nil {
				t.Fatalf("sequential %s game %d: %v", r, i, err)
			}
			results = append(results, result(t, batch, r, i, hs, as))
		}
		if err := batch.ApplyResults(results); err != nil {
			t.Fatalf("batch %s: %v", r, err)
		}
	}

	got, want := batch.Games(), sequential.Games()
	for i := range want {
		wantSlot(t, &got[i], "home", want[i].HomeTeamID, want[i].HomeSeed)
		wantSlot(t, &got[i], "away", want[i].AwayTeamID, want[i].AwaySeed)
	}
}

func TestUnknownGameRejected(t *testing.T) {
	t.Parallel()

	b := newSeededBracket(t)
	err := b.ApplyResults([]Result{{GameID: 9999, HomeScore: 1, AwayScore: 0}})
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("ApplyResults(unknown game) = %v, want ErrGameNotFound", err)
	}
}
