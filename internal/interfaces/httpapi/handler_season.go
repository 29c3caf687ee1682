package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type seasonDTO struct {
	ID   int64 `json:"id"`
	Year int   `json:"year"`
}

func seasonToDTO(item season.Season) seasonDTO {
	return seasonDTO{ID: item.ID, Year: item.Year}
}

type teamSeasonDTO struct {
	TeamID           int64    `json:"team_id"`
	TeamName         string   `json:"team_name"`
	SeasonID         int64    `json:"season_id"`
	ConferenceID     int64    `json:"conference_id"`
	ConferenceName   string   `json:"conference_name"`
	Wins             int      `json:"wins"`
	Losses           int      `json:"losses"`
	ConferenceWins   int      `json:"conference_wins"`
	ConferenceLosses int      `json:"conference_losses"`
	PointsFor        *int     `json:"points_for"`
	PointsAgainst    *int     `json:"points_against"`
	OffensePPG       *float64 `json:"offense_ppg"`
	DefensePPG       *float64 `json:"defense_ppg"`
	Prestige         string   `json:"prestige,omitempty"`
	TeamRating       string   `json:"team_rating,omitempty"`
	FinalRank        *int     `json:"final_rank"`
	RecruitingRank   *int     `json:"recruiting_rank"`
	NationalRank     *int     `json:"national_rank,omitempty"`
}

func teamSeasonToDTO(v usecase.TeamSeasonView) teamSeasonDTO {
	return teamSeasonDTO{
		TeamID:           v.TeamID,
		TeamName:         v.TeamName,
		SeasonID:         v.SeasonID,
		ConferenceID:     v.ConferenceID,
		ConferenceName:   v.ConferenceName,
		Wins:             v.Wins,
		Losses:           v.Losses,
		ConferenceWins:   v.ConferenceWins,
		ConferenceLosses: v.ConferenceLosses,
		PointsFor:        v.PointsFor,
		PointsAgainst:    v.PointsAgainst,
		OffensePPG:       v.OffensePPG,
		DefensePPG:       v.DefensePPG,
		Prestige:         v.Prestige,
		TeamRating:       v.TeamRating,
		FinalRank:        v.FinalRank,
		RecruitingRank:   v.RecruitingRank,
		NationalRank:     v.NationalRank,
	}
}

type createSeasonRequest struct {
	Year *int `json:"year" validate:"omitempty,gte=1900"`
}

type upsertTeamSeasonRequest struct {
	Wins             *int    `json:"wins" validate:"omitempty,gte=0"`
	Losses           *int    `json:"losses" validate:"omitempty,gte=0"`
	ConferenceWins   *int    `json:"conference_wins" validate:"omitempty,gte=0"`
	ConferenceLosses *int    `json:"conference_losses" validate:"omitempty,gte=0"`
	PointsFor        *int    `json:"points_for" validate:"omitempty,gte=0"`
	PointsAgainst    *int    `json:"points_against" validate:"omitempty,gte=0"`
	Prestige         *string `json:"prestige" validate:"omitempty,max=20"`
	TeamRating       *string `json:"team_rating" validate:"omitempty,max=20"`
	FinalRank        *int    `json:"final_rank" validate:"omitempty,gte=1,lte=134"`
	RecruitingRank   *int    `json:"recruiting_rank" validate:"omitempty,gte=1"`
	ConferenceID     *int64  `json:"conference_id" validate:"omitempty,gt=0"`
}

type recomputeStatsRequest struct {
	MaxWorkers int `json:"max_workers" validate:"omitempty,gte=0,lte=64"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.seasonService.Create(ctx, req.Year)
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(created))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ListTeamSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamSeasons")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.seasonService.TeamSeasons(ctx, seasonID, queryBool(r, "all"))
	if err != nil {
		h.logger.WarnContext(ctx, "list team seasons failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSeasonDTO, 0, len(views))
	for _, v := range views {
		items = append(items, teamSeasonToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertTeamSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertTeamSeason")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertTeamSeasonRequest
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

	saved, err := h.seasonService.UpsertTeamSeason(ctx, seasonID, teamID, usecase.TeamSeasonUpdate{
		Wins:             req.Wins,
		Losses:           req.Losses,
		ConferenceWins:   req.ConferenceWins,
		ConferenceLosses: req.ConferenceLosses,
		PointsFor:        req.PointsFor,
		PointsAgainst:    req.PointsAgainst,
		Prestige:         req.Prestige,
		TeamRating:       req.TeamRating,
		FinalRank:        req.FinalRank,
		RecruitingRank:   req.RecruitingRank,
		ConferenceID:     req.ConferenceID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert team season failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSeasonToDTO(usecase.TeamSeasonView{TeamSeason: saved}))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.seasonService.Standings(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	type standingDTO struct {
		ConferenceID   int64           `json:"conference_id"`
		ConferenceName string          `json:"conference_name"`
		Teams          []teamSeasonDTO `json:"teams"`
	}
	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		teams := make([]teamSeasonDTO, 0, len(s.Teams))
		for _, v := range s.Teams {
			teams = append(teams, teamSeasonToDTO(v))
		}
		items = append(items, standingDTO{
			ConferenceID:   s.ConferenceID,
			ConferenceName: s.ConferenceName,
			Teams:          teams,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AssignTop25(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignTop25")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	assigned, err := h.seasonService.AssignTop25(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign top25 failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"season_id":        seasonID,
		"ranked_team_ids":  assigned,
		"ranked_positions": len(assigned),
	})
}

func (h *Handler) RecomputeSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeSeasonStats")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recomputeStatsRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statsService.RecomputeSeason(ctx, seasonID, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute season stats failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	type teamRecomputeDTO struct {
		TeamID     int64  `json:"team_id"`
		Status     string `json:"status"`
		Games      int    `json:"games"`
		DurationMs int64  `json:"duration_ms"`
	}
	teams := make([]teamRecomputeDTO, 0, len(result.Teams))
	for _, t := range result.Teams {
		teams = append(teams, teamRecomputeDTO{
			TeamID:     t.TeamID,
			Status:     t.Status,
			Games:      t.Games,
			DurationMs: t.DurationMs,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"team_count":    result.TeamCount,
		"success_count": result.SuccessCount,
		"skipped_count": result.SkippedCount,
		"worker_count":  result.WorkerCount,
		"teams":         teams,
	})
}

func (h *Handler) GetWeeklyPoll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyPoll")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week := queryInt(r, "week")

	type pollView struct {
		Poll      usecase.Poll
		Available bool
	}
	load := func(ctx context.Context) (any, error) {
		poll, available, err := h.rankingsService.WeeklyPoll(ctx, seasonID, week)
		if err != nil {
			return nil, err
		}
		return pollView{Poll: poll, Available: available}, nil
	}

	var view pollView
	if h.pollCache != nil {
		cached, err := h.pollCache.GetOrLoad(ctx, fmt.Sprintf("polls:%d:%d", seasonID, week), load)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		view = cached.(pollView)
	} else {
		loaded, err := load(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		view = loaded.(pollView)
	}

	type pollEntryDTO struct {
		Rank   int    `json:"rank"`
		Team   string `json:"team"`
		Record string `json:"record,omitempty"`
		Points int    `json:"points,omitempty"`
	}
	entries := make([]pollEntryDTO, 0, len(view.Poll.Entries))
	for _, e := range view.Poll.Entries {
		entries = append(entries, pollEntryDTO{Rank: e.Rank, Team: e.Team, Record: e.Record, Points: e.Points})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"available": view.Available,
		"year":      view.Poll.Year,
		"week":      view.Poll.Week,
		"entries":   entries,
	})
}
