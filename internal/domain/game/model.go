package game

// Game types.
const (
	TypeRegular = "Regular"
	TypePlayoff = "Playoff"
)

// Game is a scheduled or played matchup. Playoff games additionally
// carry the round name and the tournament seed of each slot; seeds are
// assigned when the bracket is seeded and travel with the team on
// propagation, so they are never re-derived from game ordering.
type Game struct {
	ID           int64
	SeasonID     int64
	Week         int
	HomeTeamID   *int64
	AwayTeamID   *int64
	HomeScore    *int
	AwayScore    *int
	HomeSeed     *int
	AwaySeed     *int
	GameType     string
	PlayoffRound string
}

// Complete reports whether both slots are filled and both scores are in.
func (g Game) Complete() bool {
	return g.HomeTeamID != nil && g.AwayTeamID != nil &&
		g.HomeScore != nil && g.AwayScore != nil
}

// Started reports whether any score has been recorded.
func (g Game) Started() bool {
	return g.HomeScore != nil || g.AwayScore != nil
}

// Winner returns the winning team id and its seed for a complete game.
// Ties go to the away team, matching score-entry semantics elsewhere.
func (g Game) Winner() (teamID int64, seed *int, ok bool) {
	if !g.Complete() {
		return 0, nil, false
	}
	if *g.HomeScore > *g.AwayScore {
		return *g.HomeTeamID, g.HomeSeed, true
	}
	return *g.AwayTeamID, g.AwaySeed, true
}
