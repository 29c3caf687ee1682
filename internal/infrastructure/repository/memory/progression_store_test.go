package memory

import (
	"context"
	"testing"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

func TestProgressionStore_ApplyProgression(t *testing.T) {
	t.Parallel()

	teamID := int64(1)
	players := NewPlayerRepository([]player.Player{
		{ID: 1, Name: "Senior Back", Position: "RB", TeamID: &teamID},
		{ID: 2, Name: "Redshirt End", Position: "DE", TeamID: &teamID},
	}, nil)
	store := NewProgressionStore(players, NewRosterRepository())

	plan := usecase.ProgressionPlan{
		SeasonID:     1,
		NextSeasonID: 2,
		// id 99 has no identity row; the store must skip it and still
		// apply the rest of the plan.
		Graduated:        []int64{1, 99},
		RedshirtConsumed: []int64{2, 99},
		NextRecords: []player.SeasonRecord{
			{PlayerID: 2, SeasonID: 2, TeamID: teamID, Class: player.ClassFreshman},
		},
	}
	if err := store.ApplyProgression(context.Background(), plan); err != nil {
		t.Fatalf("apply progression: %v", err)
	}

	graduated, ok, err := players.GetByID(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("get graduated player: ok=%t err=%v", ok, err)
	}
	if graduated.TeamID != nil {
		t.Fatalf("graduated player must leave the roster, got team %d", *graduated.TeamID)
	}

	redshirted, ok, err := players.GetByID(context.Background(), 2)
	if err != nil || !ok {
		t.Fatalf("get redshirted player: ok=%t err=%v", ok, err)
	}
	if !redshirted.RedshirtUsed {
		t.Fatal("career redshirt flag must be set after the redshirt year")
	}

	records, err := players.ListSeasonRecords(context.Background(), 2)
	if err != nil {
		t.Fatalf("list next-season records: %v", err)
	}
	if len(records) != 1 || records[0].PlayerID != 2 {
		t.Fatalf("unexpected next-season records: %+v", records)
	}
}
