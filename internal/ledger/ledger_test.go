package ledger

import (
	"testing"
	"time"

	"github.com/pable/footstats/internal/model"
)

func ids(ms []model.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func equalIDs(t *testing.T, got []model.Match, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("want %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("want %v, got %v", want, g)
		}
	}
}

func TestParseDay_LocalMidnight(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC-5", -5*3600)
	defer func() { time.Local = orig }()

	d := ParseDay("2024-01-01")
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("day shifted: got %v", d)
	}
	if d.Hour() != 0 {
		t.Errorf("expected local midnight, got %v", d)
	}
	if _, off := d.Zone(); off != -5*3600 {
		t.Errorf("expected local offset, got %d", off)
	}
}

func TestParseDay_Malformed(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "01/02/2024", "garbage"} {
		if !ParseDay(s).IsZero() {
			t.Errorf("ParseDay(%q): expected zero time", s)
		}
	}
}

func TestSorted_StableOnSameDay(t *testing.T) {
	ms := []model.Match{
		{ID: "b", Date: "2024-02-01"},
		{ID: "a1", Date: "2024-01-01"},
		{ID: "c", Date: "2024-03-01"},
		{ID: "a2", Date: "2024-01-01"},
	}
	equalIDs(t, SortedAscending(ms), "a1", "a2", "b", "c")
	equalIDs(t, SortedDescending(ms), "c", "b", "a1", "a2")
	// Input untouched.
	equalIDs(t, ms, "b", "a1", "c", "a2")
}

func TestFilterByYear(t *testing.T) {
	ms := []model.Match{
		{ID: "1", Date: "2023-05-01"},
		{ID: "2", Date: "2024-05-01"},
		{ID: "3", Date: "2024-12-31"},
	}
	equalIDs(t, FilterByYear(ms, 2024), "2", "3")
	equalIDs(t, FilterByYear(ms, AllYears), "1", "2", "3")
	if got := FilterByYear(ms, 2020); len(got) != 0 {
		t.Errorf("expected no matches for 2020, got %d", len(got))
	}
}

func TestFilterByPlayerInvolved_CaseSensitive(t *testing.T) {
	ms := []model.Match{
		{ID: "1", Teammates: []model.PlayerPerformance{{Name: "Ana"}}},
		{ID: "2", Opponents: []model.PlayerPerformance{{Name: "Ana"}}},
		{ID: "3", Teammates: []model.PlayerPerformance{{Name: "ana"}}},
		{ID: "4"},
	}
	equalIDs(t, FilterByPlayerInvolved(ms, "Ana"), "1", "2")
}

func TestAsOf(t *testing.T) {
	ms := []model.Match{
		{ID: "1", Date: "2023-12-31"},
		{ID: "2", Date: "2024-01-01"},
	}
	equalIDs(t, AsOf(ms, YearEnd(2023)), "1")
	equalIDs(t, AsOf(ms, YearEnd(2024)), "1", "2")
}

func TestYears(t *testing.T) {
	ms := []model.Match{
		{Date: "2022-01-01"}, {Date: "2024-01-01"}, {Date: "2022-06-01"}, {Date: "bad"},
	}
	got := Years(ms)
	if len(got) != 2 || got[0] != 2024 || got[1] != 2022 {
		t.Errorf("want [2024 2022], got %v", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := []model.Match{{ID: "1", Date: "2024-01-01", Result: model.ResultWin, Goals: 1, GoalDiff: 1}}
	b := []model.Match{{ID: "1", Date: "2024-01-01", Result: model.ResultWin, Goals: 2, GoalDiff: 1}}
	if Fingerprint(a) != Fingerprint(a) {
		t.Error("fingerprint not deterministic")
	}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fingerprint ignores goals")
	}
	if Fingerprint(nil) == Fingerprint(a) {
		t.Error("empty and non-empty collections collide")
	}
}
