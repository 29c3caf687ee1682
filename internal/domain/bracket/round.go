package bracket

// Round identifies one stage of the 12-team single-elimination playoff.
// Seeds 1-4 receive a bye and enter at the quarterfinals as the home
// slots of their games.
type Round int

const (
	FirstRound Round = iota
	Quarterfinals
	Semifinals
	Championship
)

// TotalGames is the fixed size of a bracket shell.
const TotalGames = 11

const firstWeek = 17

var roundNames = [...]string{"First Round", "Quarterfinals", "Semifinals", "Championship"}

var roundSizes = [...]int{4, 4, 2, 1}

func (r Round) String() string {
	if r < FirstRound || r > Championship {
		return "Unknown"
	}
	return roundNames[r]
}

// Week returns the schedule week the round is played in (17 through 20).
func (r Round) Week() int { return firstWeek + int(r) }

// Size returns the number of games in the round.
func (r Round) Size() int { return roundSizes[r] }

// ParseRound resolves a canonical round name.
func ParseRound(name string) (Round, bool) {
	for i, n := range roundNames {
		if n == name {
			return Round(i), true
		}
	}
	return 0, false
}

// RoundForWeek resolves a schedule week to its playoff round.
func RoundForWeek(week int) (Round, bool) {
	if week < FirstRound.Week() || week > Championship.Week() {
		return 0, false
	}
	return Round(week - firstWeek), true
}

// First-round pairings by seed: game i is homeSeeds[i] vs awaySeeds[i].
var (
	firstRoundHomeSeeds = [4]int{5, 6, 7, 8}
	firstRoundAwaySeeds = [4]int{12, 11, 10, 9}
)
