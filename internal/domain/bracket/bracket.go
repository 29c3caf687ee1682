package bracket

import (
	"errors"
	"fmt"
	"sort"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
)

var (
	// ErrIncompleteShell is returned when a season's playoff games do not
	// form the fixed 11-game 4/4/2/1 structure.
	ErrIncompleteShell = errors.New("bracket structure is incomplete")
	// ErrSeedCount is returned when seeding is attempted with a team list
	// that is not exactly 12 entries.
	ErrSeedCount = errors.New("seeding requires exactly 12 teams in seed order")
	// ErrGameNotFound is returned when a submitted result references a
	// game that is not part of this bracket.
	ErrGameNotFound = errors.New("game not found in bracket")
	// ErrNoResults is returned for an empty result batch.
	ErrNoResults = errors.New("results must be a non-empty list")
)

// unknown seed sorts after every real seed (1-12)
const unseeded = 999

// Result is one submitted game score.
type Result struct {
	GameID    int64
	HomeScore int
	AwayScore int
}

// Bracket is the working state of one season's playoff games grouped by
// round. All operations mutate in memory only; the caller persists the
// final game set in one transaction.
type Bracket struct {
	games  []game.Game
	rounds [Championship + 1][]*game.Game
}

// NewShell returns the 11 empty playoff games for a season in canonical
// order: weeks 17-20, four first-round games, four quarterfinals, two
// semifinals, one championship.
func NewShell(seasonID int64) []game.Game {
	games := make([]game.Game, 0, TotalGames)
	for r := FirstRound; r <= Championship; r++ {
		for i := 0; i < r.Size(); i++ {
			games = append(games, game.Game{
				SeasonID:     seasonID,
				Week:         r.Week(),
				GameType:     game.TypePlayoff,
				PlayoffRound: r.String(),
			})
		}
	}
	return games
}

// Load builds a Bracket from a season's playoff games, which must
// already be in week-then-id order. The round is derived from the week;
// stored round names are normalized to the canonical spelling.
func Load(games []game.Game) (*Bracket, error) {
	if len(games) != TotalGames {
		return nil, fmt.Errorf("%w: have %d games, want %d", ErrIncompleteShell, len(games), TotalGames)
	}
	b := &Bracket{games: games}
	for i := range b.games {
		g := &b.games[i]
		r, ok := RoundForWeek(g.Week)
		if !ok {
			return nil, fmt.Errorf("%w: game %d has week %d outside the playoff window", ErrIncompleteShell, g.ID, g.Week)
		}
		g.PlayoffRound = r.String()
		b.rounds[r] = append(b.rounds[r], g)
	}
	for r := FirstRound; r <= Championship; r++ {
		if len(b.rounds[r]) != r.Size() {
			return nil, fmt.Errorf("%w: %s has %d games, want %d", ErrIncompleteShell, r, len(b.rounds[r]), r.Size())
		}
	}
	return b, nil
}

// Games returns the bracket's games in canonical order.
func (b *Bracket) Games() []game.Game { return b.games }

// Round returns the games of one round in canonical order.
func (b *Bracket) Round(r Round) []*game.Game { return b.rounds[r] }

// Seed assigns twelve teams, best seed first, and wipes every result.
// First-round games pair 5v12, 6v11, 7v10, 8v9; seeds 1-4 take the
// quarterfinal home slots; later rounds start empty. Seeds are stored
// on the slots they occupy and travel with the team from then on.
func (b *Bracket) Seed(teamIDs []int64) error {
	if len(teamIDs) != 12 {
		return fmt.Errorf("%w: got %d", ErrSeedCount, len(teamIDs))
	}
	for i, g := range b.rounds[FirstRound] {
		setSlot(&g.HomeTeamID, &g.HomeSeed, teamIDs[firstRoundHomeSeeds[i]-1], firstRoundHomeSeeds[i])
		setSlot(&g.AwayTeamID, &g.AwaySeed, teamIDs[firstRoundAwaySeeds[i]-1], firstRoundAwaySeeds[i])
		g.HomeScore, g.AwayScore = nil, nil
	}
	for i, g := range b.rounds[Quarterfinals] {
		setSlot(&g.HomeTeamID, &g.HomeSeed, teamIDs[i], i+1)
		clearSlot(&g.AwayTeamID, &g.AwaySeed)
		g.HomeScore, g.AwayScore = nil, nil
	}
	for _, r := range []Round{Semifinals, Championship} {
		for _, g := range b.rounds[r] {
			clearSlot(&g.HomeTeamID, &g.HomeSeed)
			clearSlot(&g.AwayTeamID, &g.AwaySeed)
			g.HomeScore, g.AwayScore = nil, nil
		}
	}
	return nil
}

// ApplyResults records the submitted scores and reconciles the bracket:
// each modified round is checked in round order, an incomplete modified
// round clears everything downstream of it, and a complete modified
// round reseeds the next round (clearing it first if it had already
// started). Quarterfinal home slots are bye seeds and survive every
// clear. Submitting the same results again converges to the same state.
func (b *Bracket) ApplyResults(results []Result) error {
	if len(results) == 0 {
		return ErrNoResults
	}
	var modified [Championship + 1]bool
	for _, res := range results {
		g := b.find(res.GameID)
		if g == nil {
			return fmt.Errorf("%w: game %d", ErrGameNotFound, res.GameID)
		}
		hs, as := res.HomeScore, res.AwayScore
		g.HomeScore, g.AwayScore = &hs, &as
		r, _ := RoundForWeek(g.Week)
		modified[r] = true
	}

	// One pass in round order is the whole worklist: reseeding round r+1
	// never completes it, so nothing upstream ever needs revisiting.
	for r := FirstRound; r < Championship; r++ {
		if !modified[r] {
			continue
		}
		if !b.roundComplete(r) {
			b.clearDownstream(r)
			continue
		}
		if b.roundStarted(r + 1) {
			b.clearDownstream(r)
		}
		b.reseed(r)
	}
	return nil
}

func (b *Bracket) find(gameID int64) *game.Game {
	for i := range b.games {
		if b.games[i].ID == gameID {
			return &b.games[i]
		}
	}
	return nil
}

func (b *Bracket) roundComplete(r Round) bool {
	for _, g := range b.rounds[r] {
		if !g.Complete() {
			return false
		}
	}
	return true
}

func (b *Bracket) roundStarted(r Round) bool {
	for _, g := range b.rounds[r] {
		if g.Started() {
			return true
		}
	}
	return false
}

// clearDownstream wipes every round after r. Quarterfinal home slots
// hold the bye seeds and are kept; everything else loses teams, seeds
// and scores.
func (b *Bracket) clearDownstream(r Round) {
	for rr := r + 1; rr <= Championship; rr++ {
		for _, g := range b.rounds[rr] {
			if rr != Quarterfinals {
				clearSlot(&g.HomeTeamID, &g.HomeSeed)
			}
			clearSlot(&g.AwayTeamID, &g.AwaySeed)
			g.HomeScore, g.AwayScore = nil, nil
		}
	}
}

type seededWinner struct {
	teamID int64
	seed   int
}

// winners returns the completed round's winners ordered best seed first.
func (b *Bracket) winners(r Round) []seededWinner {
	ws := make([]seededWinner, 0, r.Size())
	for _, g := range b.rounds[r] {
		teamID, seed, ok := g.Winner()
		if !ok {
			continue
		}
		s := unseeded
		if seed != nil {
			s = *seed
		}
		ws = append(ws, seededWinner{teamID: teamID, seed: s})
	}
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].seed < ws[j].seed })
	return ws
}

// reseed fills round r+1 from the winners of the completed round r.
// First-round winners slot into the pre-assigned quarterfinal away
// slots worst seed first (the 1 seed hosts the worst survivor); later
// transitions pair best remaining seed against worst remaining seed
// with the better seed at home.
func (b *Bracket) reseed(r Round) {
	winners := b.winners(r)
	next := b.rounds[r+1]
	switch r {
	case FirstRound:
		if len(winners) < len(next) {
			return
		}
		for i, g := range next {
			w := winners[len(winners)-1-i]
			setSlot(&g.AwayTeamID, &g.AwaySeed, w.teamID, w.seed)
		}
	case Semifinals:
		if len(winners) < 2 {
			return
		}
		g := next[0]
		setSlot(&g.HomeTeamID, &g.HomeSeed, winners[0].teamID, winners[0].seed)
		setSlot(&g.AwayTeamID, &g.AwaySeed, winners[1].teamID, winners[1].seed)
		g.HomeScore, g.AwayScore = nil, nil
	default:
		for i := 0; i < len(next) && i < len(winners)/2; i++ {
			g := next[i]
			best, worst := winners[i], winners[len(winners)-1-i]
			setSlot(&g.HomeTeamID, &g.HomeSeed, best.teamID, best.seed)
			setSlot(&g.AwayTeamID, &g.AwaySeed, worst.teamID, worst.seed)
			g.HomeScore, g.AwayScore = nil, nil
		}
	}
}

func setSlot(teamID **int64, seed **int, t int64, s int) {
	tc, sc := t, s
	*teamID, *seed = &tc, &sc
}

func clearSlot(teamID **int64, seed **int) {
	*teamID, *seed = nil, nil
}
