package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type gameDTO struct {
	ID           int64  `json:"id"`
	SeasonID     int64  `json:"season_id"`
	Week         int    `json:"week"`
	HomeTeamID   *int64 `json:"home_team_id"`
	AwayTeamID   *int64 `json:"away_team_id"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	GameType     string `json:"game_type"`
	PlayoffRound string `json:"playoff_round,omitempty"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		ID:           g.ID,
		SeasonID:     g.SeasonID,
		Week:         g.Week,
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
		GameType:     g.GameType,
		PlayoffRound: g.PlayoffRound,
	}
}

type createGameRequest struct {
	Week       int   `json:"week" validate:"required,gte=1"`
	HomeTeamID int64 `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID int64 `json:"away_team_id" validate:"required,gt=0"`
}

type updateScoreRequest struct {
	HomeScore *int `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore *int `json:"away_score" validate:"omitempty,gte=0"`
}

func (h *Handler) ListSeasonGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonGames")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListSeasonGames(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season games failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID, err := pathID(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createGameRequest
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

	created, err := h.gameService.Create(ctx, seasonID, req.Week, req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(created))
}

func (h *Handler) UpdateGameScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameScore")
	defer span.End()

	gameID, err := pathID(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateScoreRequest
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

	updated, err := h.gameService.UpdateScore(ctx, gameID, usecase.ScoreUpdate{
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update game score failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(updated))
}
