package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type recruitRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Position     string `json:"position" validate:"required,max=10"`
	Stars        *int   `json:"stars" validate:"omitempty,gte=1,lte=5"`
	NationalRank *int   `json:"national_rank" validate:"omitempty,gte=1"`
	HomeState    string `json:"home_state" validate:"omitempty,max=30"`
}

type addRecruitingClassRequest struct {
	TeamID   int64            `json:"team_id" validate:"required,gt=0"`
	SeasonID int64            `json:"season_id" validate:"required,gt=0"`
	Recruits []recruitRequest `json:"recruits" validate:"required,min=1,dive"`
}

type transferRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Position       string `json:"position" validate:"required,max=10"`
	PreviousSchool string `json:"previous_school" validate:"omitempty,max=100"`
	OvrRating      *int   `json:"ovr_rating" validate:"omitempty,gte=0,lte=99"`
	Stars          *int   `json:"stars" validate:"omitempty,gte=1,lte=5"`
	PositionRank   *int   `json:"position_rank" validate:"omitempty,gte=1"`
	DevTrait       string `json:"dev_trait" validate:"omitempty,max=20"`
	Height         string `json:"height" validate:"omitempty,max=10"`
	Weight         *int   `json:"weight" validate:"omitempty,gte=0"`
	HomeState      string `json:"home_state" validate:"omitempty,max=30"`
	CurrentClass   string `json:"current_class" validate:"omitempty,oneof=FR SO JR SR"`
}

type addTransferPortalRequest struct {
	TeamID    int64             `json:"team_id" validate:"required,gt=0"`
	SeasonID  int64             `json:"season_id" validate:"required,gt=0"`
	Transfers []transferRequest `json:"transfers" validate:"required,min=1,dive"`
}

type recruitDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Stars        *int   `json:"stars"`
	NationalRank *int   `json:"national_rank"`
	HomeState    string `json:"home_state,omitempty"`
	TeamID       int64  `json:"team_id"`
	SeasonID     int64  `json:"season_id"`
	Status       string `json:"status"`
}

func recruitToDTO(r roster.Recruit) recruitDTO {
	return recruitDTO{
		ID:           r.ID,
		Name:         r.Name,
		Position:     r.Position,
		Stars:        r.Stars,
		NationalRank: r.NationalRank,
		HomeState:    r.HomeState,
		TeamID:       r.TeamID,
		SeasonID:     r.SeasonID,
		Status:       string(r.Status),
	}
}

type transferDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	PreviousSchool string `json:"previous_school,omitempty"`
	OvrRating      *int   `json:"ovr_rating"`
	Stars          *int   `json:"stars"`
	PositionRank   *int   `json:"position_rank"`
	DevTrait       string `json:"dev_trait,omitempty"`
	Height         string `json:"height,omitempty"`
	Weight         *int   `json:"weight"`
	HomeState      string `json:"home_state,omitempty"`
	CurrentClass   string `json:"current_class"`
	TeamID         int64  `json:"team_id"`
	SeasonID       int64  `json:"season_id"`
	Status         string `json:"status"`
}

func transferToDTO(t roster.Transfer) transferDTO {
	return transferDTO{
		ID:             t.ID,
		Name:           t.Name,
		Position:       t.Position,
		PreviousSchool: t.PreviousSchool,
		OvrRating:      t.OvrRating,
		Stars:          t.Stars,
		PositionRank:   t.PositionRank,
		DevTrait:       t.DevTrait,
		Height:         t.Height,
		Weight:         t.Weight,
		HomeState:      t.HomeState,
		CurrentClass:   string(t.CurrentClass),
		TeamID:         t.TeamID,
		SeasonID:       t.SeasonID,
		Status:         string(t.Status),
	}
}

func (h *Handler) AddRecruitingClass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRecruitingClass")
	defer span.End()

	var req addRecruitingClassRequest
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

	inputs := make([]usecase.RecruitInput, 0, len(req.Recruits))
	for _, item := range req.Recruits {
		inputs = append(inputs, usecase.RecruitInput{
			Name:         item.Name,
			Position:     item.Position,
			Stars:        item.Stars,
			NationalRank: item.NationalRank,
			HomeState:    item.HomeState,
		})
	}

	ids, err := h.rosterService.AddRecruitingClass(ctx, req.TeamID, req.SeasonID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "add recruiting class failed", "team_id", req.TeamID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"recruit_ids": ids})
}

func (h *Handler) ListRecruitingClass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecruitingClass")
	defer span.End()

	teamID, err := queryID(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := queryID(r, "season_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	recruits, err := h.rosterService.RecruitingClass(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list recruiting class failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]recruitDTO, 0, len(recruits))
	for _, rec := range recruits {
		items = append(items, recruitToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddTransferPortal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTransferPortal")
	defer span.End()

	var req addTransferPortalRequest
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

	inputs := make([]usecase.TransferInput, 0, len(req.Transfers))
	for _, item := range req.Transfers {
		inputs = append(inputs, usecase.TransferInput{
			Name:           item.Name,
			Position:       item.Position,
			PreviousSchool: item.PreviousSchool,
			OvrRating:      item.OvrRating,
			Stars:          item.Stars,
			PositionRank:   item.PositionRank,
			DevTrait:       item.DevTrait,
			Height:         item.Height,
			Weight:         item.Weight,
			HomeState:      item.HomeState,
			CurrentClass:   item.CurrentClass,
		})
	}

	ids, err := h.rosterService.AddTransferPortal(ctx, req.TeamID, req.SeasonID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "add transfer portal failed", "team_id", req.TeamID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"transfer_ids": ids})
}

func (h *Handler) ListTransferPortal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransferPortal")
	defer span.End()

	teamID, err := queryID(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := queryID(r, "season_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transfers, err := h.rosterService.TransferPortal(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list transfer portal failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transferDTO, 0, len(transfers))
	for _, tr := range transfers {
		items = append(items, transferToDTO(tr))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type teamRankRequest struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
	Rank   *int  `json:"rank" validate:"omitempty,gte=1"`
}

type importRecruitingRanksRequest struct {
	SeasonID int64             `json:"season_id" validate:"required,gt=0"`
	Rankings []teamRankRequest `json:"rankings" validate:"required,min=1,dive"`
}

func (h *Handler) ImportRecruitingRanks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRecruitingRanks")
	defer span.End()

	var req importRecruitingRanksRequest
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

	ranks := make([]usecase.TeamRankInput, 0, len(req.Rankings))
	for _, item := range req.Rankings {
		ranks = append(ranks, usecase.TeamRankInput{TeamID: item.TeamID, Rank: item.Rank})
	}

	changed, err := h.rankingsService.ImportRecruitingRanks(ctx, req.SeasonID, ranks)
	if err != nil {
		h.logger.WarnContext(ctx, "import recruiting ranks failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"updated": changed})
}
