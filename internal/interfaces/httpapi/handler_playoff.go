package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/bracket"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type playoffGameDTO struct {
	ID           int64  `json:"id"`
	SeasonID     int64  `json:"season_id"`
	Week         int    `json:"week"`
	PlayoffRound string `json:"playoff_round"`
	HomeTeamID   *int64 `json:"home_team_id"`
	AwayTeamID   *int64 `json:"away_team_id"`
	HomeSeed     *int   `json:"home_seed"`
	AwaySeed     *int   `json:"away_seed"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
}

func playoffGameToDTO(g game.Game) playoffGameDTO {
	return playoffGameDTO{
		ID:           g.ID,
		SeasonID:     g.SeasonID,
		Week:         g.Week,
		PlayoffRound: g.PlayoffRound,
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		HomeSeed:     g.HomeSeed,
		AwaySeed:     g.AwaySeed,
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
	}
}

func playoffGamesToDTO(games []game.Game) []playoffGameDTO {
	items := make([]playoffGameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, playoffGameToDTO(g))
	}
	return items
}

// bracketByRound groups games under their round name, the shape clients
// render round by round. Games keep their canonical week/id order inside
// each round.
func bracketByRound(games []game.Game) map[string][]playoffGameDTO {
	grouped := make(map[string][]playoffGameDTO, 4)
	for _, g := range games {
		grouped[g.PlayoffRound] = append(grouped[g.PlayoffRound], playoffGameToDTO(g))
	}
	return grouped
}

type manualSeedRequest struct {
	TeamIDs []int64 `json:"team_ids" validate:"required,len=12,dive,gt=0"`
}

type playoffResultRequest struct {
	GameID    int64 `json:"game_id" validate:"required,gt=0"`
	HomeScore int   `json:"home_score" validate:"gte=0"`
	AwayScore int   `json:"away_score" validate:"gte=0"`
}

type batchPlayoffResultRequest struct {
	Results []playoffResultRequest `json:"results" validate:"required,min=1,dive"`
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.playoffService.Bracket(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketByRound(games))
}

func (h *Handler) CreateBracketShell(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBracketShell")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.playoffService.CreateShell(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "create bracket shell failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playoffGamesToDTO(games))
}

func (h *Handler) SeedBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedBracket")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.playoffService.SeedFromRankings(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "seed bracket failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playoffGamesToDTO(games))
}

func (h *Handler) ManualSeedBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ManualSeedBracket")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req manualSeedRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.playoffService.SeedManual(ctx, seasonID, req.TeamIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "manual seed bracket failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playoffGamesToDTO(games))
}

func (h *Handler) SubmitPlayoffResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPlayoffResult")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playoffResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.playoffService.SubmitResult(ctx, seasonID, bracket.Result{
		GameID:    req.GameID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit playoff result failed", "season_id", seasonID, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playoffGamesToDTO(games))
}

func (h *Handler) SubmitPlayoffResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPlayoffResults")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req batchPlayoffResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	results := make([]bracket.Result, 0, len(req.Results))
	for _, item := range req.Results {
		results = append(results, bracket.Result{
			GameID:    item.GameID,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		})
	}

	games, err := h.playoffService.SubmitResults(ctx, seasonID, results)
	if err != nil {
		h.logger.WarnContext(ctx, "submit playoff results failed", "season_id", seasonID, "count", len(results), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playoffGamesToDTO(games))
}

func (h *Handler) ListEligibleTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEligibleTeams")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.playoffService.EligibleTeams(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list eligible teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	type eligibleTeamDTO struct {
		TeamID               int64  `json:"team_id"`
		TeamName             string `json:"team_name"`
		FinalRank            *int   `json:"final_rank"`
		ConferenceID         int64  `json:"conference_id"`
		ConferenceName       string `json:"conference_name"`
		IsConferenceChampion bool   `json:"is_conference_champion"`
		Wins                 int    `json:"wins"`
		Losses               int    `json:"losses"`
	}
	items := make([]eligibleTeamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, eligibleTeamDTO{
			TeamID:               t.TeamID,
			TeamName:             t.TeamName,
			FinalRank:            t.FinalRank,
			ConferenceID:         t.ConferenceID,
			ConferenceName:       t.ConferenceName,
			IsConferenceChampion: t.IsConferenceChampion,
			Wins:                 t.Wins,
			Losses:               t.Losses,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
