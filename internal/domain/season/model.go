package season

import "fmt"

// Season is one dynasty year. Years are unique and totally ordered; the
// season after year Y is the season with year Y+1.
type Season struct {
	ID   int64
	Year int
}

func (s Season) Validate() error {
	if s.Year < 1900 {
		return fmt.Errorf("season year %d is not plausible", s.Year)
	}

	return nil
}
