package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/infrastructure/repository/memory"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/logging"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

func TestHandler_GetBracket_GroupsGamesByRound(t *testing.T) {
	t.Parallel()

	seasons := memory.NewSeasonRepository([]season.Season{{ID: 1, Year: 2025}})
	teams := memory.NewTeamRepository(nil, nil, nil)
	games := memory.NewGameRepository(nil)
	playoffService := usecase.NewPlayoffService(seasons, teams, games)

	if _, err := playoffService.CreateShell(context.Background(), 1); err != nil {
		t.Fatalf("create bracket shell: %v", err)
	}

	handler := NewHandler(nil, nil, playoffService, nil, nil, nil, nil, nil, nil, nil, logging.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/playoff/1/bracket", nil)
	req.SetPathValue("seasonID", "1")
	rec := httptest.NewRecorder()

	handler.GetBracket(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data map[string][]struct {
			ID   int64 `json:"id"`
			Week int   `json:"week"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode bracket response: %v", err)
	}

	want := map[string]int{
		"First Round":   4,
		"Quarterfinals": 4,
		"Semifinals":    2,
		"Championship":  1,
	}
	if len(envelope.Data) != len(want) {
		t.Fatalf("unexpected round count: got=%d want=%d (%v)", len(envelope.Data), len(want), envelope.Data)
	}
	for round, count := range want {
		if got := len(envelope.Data[round]); got != count {
			t.Fatalf("round %q has %d games, want %d", round, got, count)
		}
	}
}
