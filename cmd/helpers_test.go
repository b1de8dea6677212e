package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/pable/footstats/internal/config"
	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/model"
)

func TestResolvePrefix(t *testing.T) {
	ids := []string{"abc123", "abd456", "x"}
	cases := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc", "abc123", false},
		{"ab", "", true},
		{"zz", "", true},
		{"x", "x", false},
	}
	for _, tc := range cases {
		got, err := resolvePrefix(tc.prefix, ids)
		if (err != nil) != tc.wantErr {
			t.Errorf("resolvePrefix(%q): err = %v, wantErr %v", tc.prefix, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("resolvePrefix(%q): want %q, got %q", tc.prefix, tc.want, got)
		}
	}
}

func TestParseTiers(t *testing.T) {
	got, err := parseTiers([]string{"bronze=10", "silver=25.5"})
	if err != nil {
		t.Fatalf("parseTiers: %v", err)
	}
	want := []model.AchievementTier{{Name: "bronze", Target: 10}, {Name: "silver", Target: 25.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tiers mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseTiers([]string{"gold", "=3", "x=abc"}); err == nil {
		t.Error("expected an error for malformed tiers")
	}
}

func TestParseSide(t *testing.T) {
	both, err := parseSide("")
	if err != nil || len(both) != 2 {
		t.Fatalf("empty side should mean both, got %v %v", both, err)
	}
	opp, err := parseSide("opponents")
	if err != nil || len(opp) != 1 || opp[0] != model.SideOpponent {
		t.Errorf("want opponents only, got %v %v", opp, err)
	}
	if _, err := parseSide("referees"); err == nil {
		t.Error("expected an error for an unknown side")
	}
}

func TestReadMatchesAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")
	data := `[
		{"date": "2024-03-09", "result": "WIN", "myGoals": 2, "myAssists": 1, "goalDiff": 3,
		 "myTeamPlayers": [{"name": "Ana", "goals": 1, "assists": 0}]},
		{"id": "bad", "date": "09/03/2024", "result": "DRAW", "goalDiff": 1}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ms, err := readMatches(path)
	if err != nil {
		t.Fatalf("readMatches: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("want 2 matches, got %d", len(ms))
	}
	if ms[0].Goals != 2 || len(ms[0].Teammates) != 1 || ms[0].Teammates[0].Name != "Ana" {
		t.Errorf("first match decoded wrong: %+v", ms[0])
	}
	if err := validateImported(ms[0], 0); err != nil {
		t.Errorf("a match without id should validate, got %v", err)
	}
	if ms[0].ID != "" {
		t.Error("validation must not assign the id")
	}
	if err := validateImported(ms[1], 1); err == nil {
		t.Error("malformed date and inconsistent goal difference should fail")
	}
}

func TestSharedMatches(t *testing.T) {
	ms := []model.Match{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "2024-02-01"},
		{ID: "c", Date: "2024-03-01"},
	}
	got := sharedMatches(ms, []string{"a", "c"})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Errorf("want [c a], got %+v", got)
	}
}

func TestNewAnalyzer_WeightsFromConfig(t *testing.T) {
	prevCfg, prevLog := cfg, log
	t.Cleanup(func() { cfg, log = prevCfg, prevLog })
	log = zerolog.Nop()

	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultWin, Goals: 1, GoalDiff: 1,
		Teammates: []model.PlayerPerformance{{Name: "Ana"}},
	}}
	w := duel.DefaultWeights()
	w.ConfidenceFactor = 0
	want := duel.Score(ms, "Me", w)

	// an unreachable Redis falls back to the memory store and still needs a close func
	for _, addr := range []string{"", "127.0.0.1:1"} {
		cfg = &config.Config{RedisAddr: addr, DuelConfidenceFactor: 0}
		an, closeCache := newAnalyzer(context.Background())
		got := an.Duels(context.Background(), ms, engine.Filter{}, "Me")
		closeCache()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("redis %q: duels (-want +got):\n%s", addr, diff)
		}
	}
}
