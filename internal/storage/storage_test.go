package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/pable/footstats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch() model.Match {
	return model.Match{
		ID: "m1", Date: "2025-03-01", Result: model.ResultWin,
		Goals: 2, Assists: 1, GoalDiff: 3, Notes: "rainy", Tournament: "Sunday League",
		Teammates: []model.PlayerPerformance{{Name: "Ana", Goals: 1}, {Name: "Beto", Assists: 2}},
		Opponents: []model.PlayerPerformance{{Name: "Rival", Goals: 1}},
	}
}

func TestMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.InsertMatches([]model.Match{sampleMatch()}); err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}

	got, err := db.GetMatch("m1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got == nil {
		t.Fatal("expected match m1")
	}
	if diff := cmp.Diff(sampleMatch(), *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	missing, err := db.GetMatch("nope")
	if err != nil {
		t.Fatalf("GetMatch missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestListMatches_OrderedAndIDsAssigned(t *testing.T) {
	db := openMemDB(t)
	stored, err := db.InsertMatches([]model.Match{
		{Date: "2025-02-01", Result: model.ResultDraw},
		{ID: "old", Date: "2024-12-01", Result: model.ResultLoss, GoalDiff: -1},
	})
	if err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}
	if stored[0].ID == "" {
		t.Fatal("expected a generated id")
	}

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	if list[0].ID != "old" || list[1].ID != stored[0].ID {
		t.Errorf("expected oldest first, got %s, %s", list[0].ID, list[1].ID)
	}
}

func TestInsertIdempotency(t *testing.T) {
	db := openMemDB(t)
	m := sampleMatch()
	if _, err := db.InsertMatches([]model.Match{m}); err != nil {
		t.Fatal(err)
	}
	m.Teammates = m.Teammates[:1]
	if _, err := db.InsertMatches([]model.Match{m}); err != nil {
		t.Errorf("second insert should succeed (replace): %v", err)
	}
	list, _ := db.ListMatches()
	if len(list) != 1 || len(list[0].Teammates) != 1 {
		t.Errorf("replace should keep one match with one teammate, got %+v", list)
	}
}

func TestVersionBumps(t *testing.T) {
	db := openMemDB(t)
	v0, err := db.Version()
	if err != nil || v0 != 0 {
		t.Fatalf("fresh version: want 0, got %d (%v)", v0, err)
	}
	db.InsertMatches([]model.Match{sampleMatch()})
	if ok, err := db.DeleteMatch("m1"); err != nil || !ok {
		t.Fatalf("DeleteMatch: %v %v", ok, err)
	}
	if ok, _ := db.DeleteMatch("m1"); ok {
		t.Error("second delete should report nothing deleted")
	}
	v, _ := db.Version()
	if v != 2 {
		t.Errorf("want version 2 after insert and delete, got %d", v)
	}
	list, _ := db.ListMatches()
	if len(list) != 0 {
		t.Errorf("expected empty store, got %d", len(list))
	}
}

func TestGoals(t *testing.T) {
	db := openMemDB(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	g, err := db.InsertGoal(model.Goal{Title: "Fifty", Metric: model.MetricTotalGoals, Target: 50, Year: 2025, CreatedAt: created})
	if err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	if g.ID == "" {
		t.Fatal("expected generated goal id")
	}

	list, err := db.ListGoals()
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if diff := cmp.Diff([]model.Goal{g}, list); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}

	if ok, _ := db.DeleteGoal(g.ID); !ok {
		t.Error("expected goal to be deleted")
	}
	if ok, _ := db.DeleteGoal(g.ID); ok {
		t.Error("second delete should find nothing")
	}
}

func TestAchievements(t *testing.T) {
	db := openMemDB(t)
	a, err := db.InsertAchievement(model.CustomAchievement{
		Name: "Scorer", Metric: model.MetricTotalGoals,
		Tiers: []model.AchievementTier{{Name: "bronze", Target: 10}, {Name: "silver", Target: 25}},
	})
	if err != nil {
		t.Fatalf("InsertAchievement: %v", err)
	}
	if ok, err := db.SetAchievementUnlocked(a.ID, true); err != nil || !ok {
		t.Fatalf("SetAchievementUnlocked: %v %v", ok, err)
	}
	if ok, _ := db.SetAchievementUnlocked("missing", true); ok {
		t.Error("unknown achievement should not be updated")
	}

	list, err := db.ListAchievements()
	if err != nil {
		t.Fatalf("ListAchievements: %v", err)
	}
	a.Unlocked = true
	if diff := cmp.Diff([]model.CustomAchievement{a}, list); diff != "" {
		t.Errorf("achievements mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileName(t *testing.T) {
	db := openMemDB(t)
	if name, _ := db.ProfileName(); name != "" {
		t.Errorf("expected empty profile, got %q", name)
	}
	if err := db.SetProfileName("Pablo"); err != nil {
		t.Fatal(err)
	}
	if name, _ := db.ProfileName(); name != "Pablo" {
		t.Errorf("want Pablo, got %q", name)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.InsertMatches([]model.Match{sampleMatch()})
	cols, rows, err := db.QueryRaw("SELECT name, goals FROM match_players WHERE side = 'teammate' ORDER BY position")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "goals"}, cols); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	want := [][]string{{"Ana", "1"}, {"Beto", "0"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
