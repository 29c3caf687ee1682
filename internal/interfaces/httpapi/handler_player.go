package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type playerDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	TeamID         *int64 `json:"team_id"`
	RecruitStars   *int   `json:"recruit_stars,omitempty"`
	RecruitRankNat *int   `json:"recruit_rank_nat,omitempty"`
	HomeState      string `json:"home_state,omitempty"`
	RedshirtUsed   bool   `json:"redshirt_used"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:             p.ID,
		Name:           p.Name,
		Position:       p.Position,
		TeamID:         p.TeamID,
		RecruitStars:   p.RecruitStars,
		RecruitRankNat: p.RecruitRankNat,
		HomeState:      p.HomeState,
		RedshirtUsed:   p.RedshirtUsed,
	}
}

type seasonRecordDTO struct {
	ID         int64  `json:"id"`
	PlayerID   int64  `json:"player_id"`
	SeasonID   int64  `json:"season_id"`
	TeamID     int64  `json:"team_id"`
	Class      string `json:"class"`
	Redshirted bool   `json:"redshirted"`
	OvrRating  *int   `json:"ovr_rating"`
	Speed      *int   `json:"speed"`
	DevTrait   string `json:"dev_trait,omitempty"`
	Height     string `json:"height,omitempty"`
	Weight     *int   `json:"weight"`

	GamesPlayed   *int `json:"games_played"`
	PassYards     *int `json:"pass_yards"`
	PassTDs       *int `json:"pass_tds"`
	RushYards     *int `json:"rush_yards"`
	RushTDs       *int `json:"rush_tds"`
	RecYards      *int `json:"rec_yards"`
	RecTDs        *int `json:"rec_tds"`
	Tackles       *int `json:"tackles"`
	Sacks         *int `json:"sacks"`
	Interceptions *int `json:"interceptions"`
}

func seasonRecordToDTO(rec player.SeasonRecord) seasonRecordDTO {
	return seasonRecordDTO{
		ID:         rec.ID,
		PlayerID:   rec.PlayerID,
		SeasonID:   rec.SeasonID,
		TeamID:     rec.TeamID,
		Class:      string(rec.Class),
		Redshirted: rec.Redshirted,
		OvrRating:  rec.OvrRating,
		Speed:      rec.Speed,
		DevTrait:   rec.DevTrait,
		Height:     rec.Height,
		Weight:     rec.Weight,

		GamesPlayed:   rec.GamesPlayed,
		PassYards:     rec.PassYards,
		PassTDs:       rec.PassTDs,
		RushYards:     rec.RushYards,
		RushTDs:       rec.RushTDs,
		RecYards:      rec.RecYards,
		RecTDs:        rec.RecTDs,
		Tackles:       rec.Tackles,
		Sacks:         rec.Sacks,
		Interceptions: rec.Interceptions,
	}
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := map[string]any{"player": playerToDTO(detail.Player)}
	if detail.CurrentSeason != nil {
		out["current_season"] = seasonRecordToDTO(*detail.CurrentSeason)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayerCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerCareer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.playerService.Career(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player career failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, seasonRecordToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
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

	records, err := h.playerService.Roster(ctx, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, seasonRecordToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type toggleRedshirtRequest struct {
	SeasonID int64 `json:"season_id" validate:"required,gt=0"`
}

func (h *Handler) ToggleRedshirt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleRedshirt")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req toggleRedshirtRequest
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

	saved, err := h.playerService.ToggleRedshirt(ctx, playerID, req.SeasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle redshirt failed", "player_id", playerID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonRecordToDTO(saved))
}

func (h *Handler) RunProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProgression")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.progressionService.Run(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "season progression failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"next_season_id":         result.NextSeasonID,
		"progressed_player_ids":  result.ProgressedPlayerIDs,
		"redshirted_player_ids":  result.RedshirtedPlayerIDs,
		"graduated_player_ids":   result.GraduatedPlayerIDs,
		"activated_recruit_ids":  result.ActivatedRecruitIDs,
		"activated_transfer_ids": result.ActivatedTransferIDs,
	})
}
