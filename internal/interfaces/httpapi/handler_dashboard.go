package httpapi

import "net/http"

type dashboardDTO struct {
	TeamID             int64  `json:"team_id"`
	TeamName           string `json:"team_name"`
	SeasonID           int64  `json:"season_id"`
	Year               int    `json:"year"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	ConferenceWins     int    `json:"conference_wins"`
	ConferenceLosses   int    `json:"conference_losses"`
	FinalRank          *int   `json:"final_rank"`
	RecruitingRank     *int   `json:"recruiting_rank"`
	RosterSize         int    `json:"roster_size"`
	CommittedRecruits  int    `json:"committed_recruits"`
	CommittedTransfers int    `json:"committed_transfers"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardDTO{
		TeamID:             dashboard.TeamID,
		TeamName:           dashboard.TeamName,
		SeasonID:           dashboard.SeasonID,
		Year:               dashboard.Year,
		Wins:               dashboard.Wins,
		Losses:             dashboard.Losses,
		ConferenceWins:     dashboard.ConferenceWins,
		ConferenceLosses:   dashboard.ConferenceLosses,
		FinalRank:          dashboard.FinalRank,
		RecruitingRank:     dashboard.RecruitingRank,
		RosterSize:         dashboard.RosterSize,
		CommittedRecruits:  dashboard.CommittedRecruits,
		CommittedTransfers: dashboard.CommittedTransfers,
	})
}
