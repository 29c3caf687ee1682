package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/cache"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/logging"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

type Handler struct {
	seasonService      *usecase.SeasonService
	playerService      *usecase.PlayerService
	playoffService     *usecase.PlayoffService
	gameService        *usecase.GameService
	progressionService *usecase.ProgressionService
	statsService       *usecase.StatsService
	rosterService      *usecase.RosterService
	rankingsService    *usecase.RankingsService
	dashboardService   *usecase.DashboardService
	pollCache          *cache.Store
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	playerService *usecase.PlayerService,
	playoffService *usecase.PlayoffService,
	gameService *usecase.GameService,
	progressionService *usecase.ProgressionService,
	statsService *usecase.StatsService,
	rosterService *usecase.RosterService,
	rankingsService *usecase.RankingsService,
	dashboardService *usecase.DashboardService,
	pollCache *cache.Store,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:      seasonService,
		playerService:      playerService,
		playoffService:     playoffService,
		gameService:        gameService,
		progressionService: progressionService,
		statsService:       statsService,
		rosterService:      rosterService,
		rankingsService:    rankingsService,
		dashboardService:   dashboardService,
		pollCache:          pollCache,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s query parameter must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func queryBool(r *http.Request, name string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
