package milestone

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/progress"
)

// history builds chronological 2024 matches, one per day, with the given goals.
// Results are wins unless overridden through results.
func history(goals []int, results string) []model.Match {
	out := make([]model.Match, len(goals))
	for i, g := range goals {
		r := model.ResultWin
		if i < len(results) {
			r, _ = model.ParseResult(results[i : i+1])
		}
		out[i] = model.Match{
			ID:     fmt.Sprintf("m%d", i+1),
			Date:   fmt.Sprintf("2024-02-%02d", i+1),
			Result: r,
			Goals:  g,
		}
	}
	return out
}

func TestForGoal_ScenarioD(t *testing.T) {
	asc := history([]int{1, 2, 1, 2, 1, 1, 2, 3, 3}, "")
	g := model.Goal{ID: "ten", Title: "Ten goals", Metric: model.MetricTotalGoals, Target: 10}

	m, ok := ForGoal(g, asc)
	if !ok {
		t.Fatal("goal should be completed")
	}
	if m.MatchNumber != 7 || m.CompletedOn != "2024-02-07" || m.MatchID != "m7" {
		t.Errorf("want completion at the 7th match, got %+v", m)
	}
	if m.ID != "goal:ten" || m.Year != 2024 {
		t.Errorf("unexpected id/year: %s %d", m.ID, m.Year)
	}
	// earliest: the completing prefix meets the target, no shorter one does.
	if progress.Value(g.Metric, asc[:m.MatchNumber]) < g.Target {
		t.Error("completing prefix does not meet target")
	}
	for k := 1; k < m.MatchNumber; k++ {
		if progress.Value(g.Metric, asc[:k]) >= g.Target {
			t.Errorf("prefix %d already met the target", k)
		}
	}
}

func TestForGoal_NeverReached(t *testing.T) {
	asc := history([]int{1, 1}, "")
	if _, ok := ForGoal(model.Goal{ID: "x", Metric: model.MetricTotalGoals, Target: 10}, asc); ok {
		t.Error("unreached goal must be omitted")
	}
	if _, ok := ForGoal(model.Goal{ID: "x", Metric: model.MetricTotalGoals, Target: 1}, nil); ok {
		t.Error("empty history must not complete anything")
	}
}

func TestForGoal_RatioUsesFinalSatisfiedRun(t *testing.T) {
	// win rate by prefix: 100 50 67 75 60 50 57 62.5 66.7
	asc := history(make([]int, 9), "WLWWLLWWW")
	g := model.Goal{ID: "wr", Metric: model.MetricWinRate, Target: 60}

	m, ok := ForGoal(g, asc)
	if !ok {
		t.Fatal("win rate goal is satisfied on the full history")
	}
	if m.MatchNumber != 8 {
		t.Errorf("want completion at match 8, got %d", m.MatchNumber)
	}

	if _, ok := ForGoal(g, history(make([]int, 2), "WL")); ok {
		t.Error("a ratio goal not met on the full history must be omitted")
	}
}

func TestForGoal_YearBound(t *testing.T) {
	asc := []model.Match{
		{ID: "a", Date: "2023-12-30", Result: model.ResultWin, Goals: 5},
		{ID: "b", Date: "2024-01-06", Result: model.ResultWin, Goals: 1},
		{ID: "c", Date: "2024-01-13", Result: model.ResultWin, Goals: 1},
	}
	m, ok := ForGoal(model.Goal{ID: "y", Metric: model.MetricTotalGoals, Target: 2, Year: 2024}, asc)
	if !ok {
		t.Fatal("2024 goal should complete")
	}
	if m.MatchID != "c" || m.MatchNumber != 3 {
		t.Errorf("want completion at c (3rd overall), got %s #%d", m.MatchID, m.MatchNumber)
	}
}

func TestForAchievement_HighestTierOnly(t *testing.T) {
	a := model.CustomAchievement{
		ID: "scorer", Name: "Scorer", Metric: model.MetricTotalGoals,
		Tiers: []model.AchievementTier{{Name: "bronze", Target: 2}, {Name: "silver", Target: 5}, {Name: "gold", Target: 50}},
	}
	m, ok := ForAchievement(a, history([]int{1, 1, 1, 3}, ""))
	if !ok {
		t.Fatal("achievement should be reached")
	}
	if m.Tier != "silver" || m.TierIndex != 1 || m.MatchNumber != 4 {
		t.Errorf("want silver at match 4, got %+v", m)
	}
	if m.ID != "achievement:scorer:silver" {
		t.Errorf("unexpected id %s", m.ID)
	}

	if _, ok := ForAchievement(a, history([]int{1}, "")); ok {
		t.Error("no tier reached must give no milestone")
	}
}

func TestBuild_DedupAndOrder(t *testing.T) {
	ms := history([]int{2, 0, 1, 3}, "")
	// shuffled input: Build sorts itself.
	ms[0], ms[3] = ms[3], ms[0]
	goals := []model.Goal{
		{ID: "five", Metric: model.MetricTotalGoals, Target: 5},
		{ID: "two", Metric: model.MetricTotalGoals, Target: 2},
		{ID: "two", Metric: model.MetricTotalGoals, Target: 2},
	}
	got := Build(goals, nil, ms)

	var ids []string
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	if diff := cmp.Diff([]string{"goal:two", "goal:five"}, ids); diff != "" {
		t.Errorf("milestones (-want +got):\n%s", diff)
	}
}

func TestGroupByYear(t *testing.T) {
	ms := []model.Milestone{
		{ID: "a", Year: 2022}, {ID: "b", Year: 2024}, {ID: "c", Year: 2022}, {ID: "d", Year: 2023},
	}
	got := GroupByYear(ms)
	var years []int
	for _, g := range got {
		years = append(years, g.Year)
	}
	if diff := cmp.Diff([]int{2024, 2023, 2022}, years); diff != "" {
		t.Errorf("years (-want +got):\n%s", diff)
	}
	if len(got[2].Milestones) != 2 || got[2].Milestones[0].ID != "a" {
		t.Errorf("2022 group should keep order a, c: %+v", got[2].Milestones)
	}
	if len(GroupByYear(nil)) != 0 {
		t.Error("no milestones should give no groups")
	}
}

func TestDefaultAchievements(t *testing.T) {
	for _, a := range DefaultAchievements() {
		if err := a.Validate(); err != nil {
			t.Errorf("%s: %v", a.ID, err)
		}
	}
}
