package team

// Team is a program identity; per-year performance lives on TeamSeason.
type Team struct {
	ID                  int64
	Name                string
	Abbreviation        string
	PrimaryConferenceID int64
	IsUserControlled    bool
}

// TeamSeason is the per-year record/stat row for a team.
type TeamSeason struct {
	ID                int64
	TeamID            int64
	SeasonID          int64
	ConferenceID      int64
	Wins              int
	Losses            int
	ConferenceWins    int
	ConferenceLosses  int
	PointsFor         *int
	PointsAgainst     *int
	OffensePPG        *float64
	DefensePPG        *float64
	Prestige          string
	TeamRating        string
	FinalRank         *int
	RecruitingRank    *int
}

// Conference groups teams; tier distinguishes power and group-of-five
// leagues for promotion/relegation style views.
type Conference struct {
	ID   int64
	Name string
	Tier int
}
