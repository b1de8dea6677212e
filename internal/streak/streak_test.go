package streak

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
)

// build creates chronological matches from short codes: "W1" = win with 1 goal,
// "L0" = loss without scoring. Dates advance one day per match.
func build(specs ...string) []model.Match {
	out := make([]model.Match, len(specs))
	for i, s := range specs {
		m := model.Match{
			ID:   fmt.Sprintf("m%d", i+1),
			Date: fmt.Sprintf("2024-01-%02d", i+1),
		}
		switch s[0] {
		case 'W':
			m.Result, m.GoalDiff = model.ResultWin, 1
		case 'L':
			m.Result, m.GoalDiff = model.ResultLoss, -1
		default:
			m.Result = model.ResultDraw
		}
		m.Goals = int(s[1] - '0')
		out[i] = m
	}
	return out
}

func TestScenarioA(t *testing.T) {
	// win 2-0 scoring once, win 3-1 without scoring, loss 0-1.
	asc := []model.Match{
		{ID: "1", Date: "2024-01-01", Result: model.ResultWin, Goals: 1, GoalDiff: 2},
		{ID: "2", Date: "2024-01-08", Result: model.ResultWin, Goals: 0, GoalDiff: 2},
		{ID: "3", Date: "2024-01-15", Result: model.ResultLoss, Goals: 0, GoalDiff: -1},
	}
	desc := ledger.SortedDescending(asc)

	if got := Current(desc, Loss); got != 1 {
		t.Errorf("current loss streak: want 1, got %d", got)
	}
	if got := Longest(asc, Win); got != (model.Record{Value: 2, Count: 1}) {
		t.Errorf("longest win streak: want {2 1}, got %+v", got)
	}
	if got := Current(desc, Scoring); got != 0 {
		t.Errorf("current scoring streak: want 0, got %d", got)
	}
}

func TestScenarioB_Empty(t *testing.T) {
	recs := Historical(nil)
	if len(recs) != len(model.RecordKinds) {
		t.Fatalf("want %d record kinds, got %d", len(model.RecordKinds), len(recs))
	}
	for kind, rec := range recs {
		if rec != (model.Record{}) {
			t.Errorf("%s: want {0 0}, got %+v", kind, rec)
		}
	}
	for _, c := range Conditions {
		if Current(nil, c) != 0 {
			t.Errorf("%s: expected 0 current streak on empty ledger", c)
		}
	}
}

func TestLongest_CountsRunsReachingExactMax(t *testing.T) {
	cases := []struct {
		name  string
		specs []string
		want  model.Record
	}{
		{"two equal runs", []string{"W0", "W0", "L0", "W0", "W0"}, model.Record{Value: 2, Count: 2}},
		{"longer run resets count", []string{"W0", "W0", "L0", "W0", "W0", "W0"}, model.Record{Value: 3, Count: 1}},
		{"shorter runs ignored", []string{"W0", "W0", "W0", "L0", "W0", "D0", "W0", "W0"}, model.Record{Value: 3, Count: 1}},
		{"no wins", []string{"L0", "D0"}, model.Record{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Longest(build(tc.specs...), Win); got != tc.want {
				t.Errorf("want %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestConditions(t *testing.T) {
	desc := ledger.SortedDescending(build("L1", "D0", "W0", "D0"))
	// desc order: D0, W0, D0, L1
	want := Streaks{
		Win: 0, Unbeaten: 3, Loss: 0, Winless: 1,
		Scoring: 0, Assisting: 0, Goalless: 3, Assistless: 4,
	}
	if diff := cmp.Diff(want, CurrentAll(desc)); diff != "" {
		t.Errorf("CurrentAll mismatch (-want +got):\n%s", diff)
	}
	if CurrentAll(desc).Active(Winless) {
		t.Error("a run of 1 must not be active")
	}
	if !CurrentAll(desc).Active(Unbeaten) {
		t.Error("a run of 3 should be active")
	}
}

// TestLongestAtLeastCurrent: the record is never below the current run.
func TestLongestAtLeastCurrent(t *testing.T) {
	asc := build("W0", "L0", "W1", "W2", "W0", "D0", "W0", "W0", "W0", "W1")
	for i := 1; i <= len(asc); i++ {
		prefix := asc[:i]
		desc := ledger.SortedDescending(prefix)
		for _, c := range Conditions {
			rec := Longest(prefix, c)
			cur := Current(desc, c)
			if rec.Value < cur {
				t.Fatalf("prefix %d %s: record %d < current %d", i, c, rec.Value, cur)
			}
		}
	}
}

// TestLongestMonotonic: appending a later match never decreases the record.
func TestLongestMonotonic(t *testing.T) {
	asc := build("W0", "W0", "L0", "D1", "W0", "W0", "W0", "L0")
	prev := 0
	for i := 1; i <= len(asc); i++ {
		v := Longest(asc[:i], Win).Value
		if v < prev {
			t.Fatalf("prefix %d: record dropped from %d to %d", i, prev, v)
		}
		prev = v
	}
}

func TestBestSingleMatch(t *testing.T) {
	ms := build("W3", "L1", "W3", "D0")
	rec := BestSingleMatch(ms, func(m *model.Match) int { return m.Goals })
	if rec != (model.Record{Value: 3, Count: 2}) {
		t.Errorf("want {3 2}, got %+v", rec)
	}
	none := BestSingleMatch(build("L0", "D0"), func(m *model.Match) int { return m.Goals })
	if none != (model.Record{}) {
		t.Errorf("all-zero values should give {0 0}, got %+v", none)
	}
}

func TestHistorical_Margins(t *testing.T) {
	ms := []model.Match{
		{ID: "1", Date: "2024-02-01", Result: model.ResultWin, GoalDiff: 4},
		{ID: "2", Date: "2024-01-01", Result: model.ResultLoss, GoalDiff: -3},
		{ID: "3", Date: "2024-03-01", Result: model.ResultWin, GoalDiff: 4},
	}
	recs := Historical(ms)
	if got := recs[model.RecordBiggestWin]; got != (model.Record{Value: 4, Count: 2}) {
		t.Errorf("biggest win: want {4 2}, got %+v", got)
	}
	if got := recs[model.RecordHeaviestDefeat]; got != (model.Record{Value: 3, Count: 1}) {
		t.Errorf("heaviest defeat: want {3 1}, got %+v", got)
	}
	// Historical sorts by date itself: the loss is first, then two wins.
	if got := recs[model.RecordLongestWinStreak]; got != (model.Record{Value: 2, Count: 1}) {
		t.Errorf("longest win streak: want {2 1}, got %+v", got)
	}
}

func TestOngoing(t *testing.T) {
	if Ongoing(0, model.Record{}) {
		t.Error("zero record must not be ongoing")
	}
	if !Ongoing(3, model.Record{Value: 3, Count: 1}) {
		t.Error("current == record should be ongoing")
	}
	if Ongoing(2, model.Record{Value: 3, Count: 1}) {
		t.Error("current < record must not be ongoing")
	}
}

func TestHistorical_Idempotent(t *testing.T) {
	ms := build("W1", "W2", "L0", "D1", "W0")
	if diff := cmp.Diff(Historical(ms), Historical(ms)); diff != "" {
		t.Errorf("repeated call differs:\n%s", diff)
	}
}
