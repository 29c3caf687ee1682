package roster

import (
	"fmt"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
)

// CommitStatus is the staging lifecycle for recruits and transfers.
// A row is Committed exactly until the progression engine materializes
// it into a Player, at which point it becomes Activated and is never
// reprocessed.
type CommitStatus string

const (
	StatusCommitted CommitStatus = "committed"
	StatusActivated CommitStatus = "activated"
)

func (s CommitStatus) Valid() bool {
	return s == StatusCommitted || s == StatusActivated
}

// Recruit is a committed-but-not-yet-active roster addition for the
// class arriving after the given season. Activation creates an FR player.
type Recruit struct {
	ID             int64
	Name           string
	Position       string
	Stars          *int
	NationalRank   *int
	HomeState      string
	TeamID         int64
	SeasonID       int64
	Status         CommitStatus
}

// Transfer is a portal commitment. CurrentClass is the class the player
// held at their previous school; they advance one class on arrival.
type Transfer struct {
	ID             int64
	Name           string
	Position       string
	PreviousSchool string
	OvrRating      *int
	Stars          *int
	PositionRank   *int
	DevTrait       string
	Height         string
	Weight         *int
	HomeState      string
	CurrentClass   player.Class
	TeamID         int64
	SeasonID       int64
	Status         CommitStatus
}

func (r Recruit) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recruit name is required")
	}
	if r.Position == "" {
		return fmt.Errorf("recruit position is required")
	}
	if r.TeamID <= 0 {
		return fmt.Errorf("recruit team id is required")
	}
	if r.SeasonID <= 0 {
		return fmt.Errorf("recruit season id is required")
	}

	return nil
}

func (t Transfer) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("transfer name is required")
	}
	if t.Position == "" {
		return fmt.Errorf("transfer position is required")
	}
	if !t.CurrentClass.Valid() {
		return fmt.Errorf("transfer class %q is not valid", t.CurrentClass)
	}
	if t.TeamID <= 0 {
		return fmt.Errorf("transfer team id is required")
	}
	if t.SeasonID <= 0 {
		return fmt.Errorf("transfer season id is required")
	}

	return nil
}
