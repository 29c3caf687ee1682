package player

import "fmt"

// Class is a player's eligibility year. GR is terminal: a player who
// progresses out of SR graduates and leaves the roster.
type Class string

const (
	ClassFreshman  Class = "FR"
	ClassSophomore Class = "SO"
	ClassJunior    Class = "JR"
	ClassSenior    Class = "SR"
	ClassGraduate  Class = "GR"
)

var progression = map[Class]Class{
	ClassFreshman:  ClassSophomore,
	ClassSophomore: ClassJunior,
	ClassJunior:    ClassSenior,
	ClassSenior:    ClassGraduate,
	ClassGraduate:  ClassGraduate,
}

// Next returns the class after one season of consumed eligibility.
func (c Class) Next() Class {
	next, ok := progression[c]
	if !ok {
		return c
	}
	return next
}

func (c Class) Valid() bool {
	_, ok := progression[c]
	return ok
}

func ParseClass(v string) (Class, error) {
	c := Class(v)
	if !c.Valid() {
		return "", fmt.Errorf("unknown player class %q", v)
	}
	return c, nil
}

// Player is the identity record. TeamID is nil once the player is no
// longer rostered (graduated). RedshirtUsed tracks the one career
// redshirt so it cannot be granted twice.
type Player struct {
	ID              int64
	Name            string
	Position        string
	TeamID          *int64
	RecruitStars    *int
	RecruitRankNat  *int
	HomeState       string
	RedshirtUsed    bool
}

// SeasonRecord is the mutable per-year state for a player. At most one
// row exists per (player, season).
type SeasonRecord struct {
	ID         int64
	PlayerID   int64
	SeasonID   int64
	TeamID     int64
	Class      Class
	Redshirted bool
	OvrRating  *int
	Speed      *int
	DevTrait   string
	Height     string
	Weight     *int

	GamesPlayed   *int
	PassYards     *int
	PassTDs       *int
	RushYards     *int
	RushTDs       *int
	RecYards      *int
	RecTDs        *int
	Tackles       *int
	Sacks         *int
	Interceptions *int
}
