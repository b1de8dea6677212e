// Package milestone replays the match history to find when each goal target and
// achievement tier was first met.
package milestone

import (
	"fmt"
	"sort"

	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/progress"
)

// GoalID and AchievementID build the composite ids milestones are deduplicated by.
func GoalID(goalID string) string { return "goal:" + goalID }

func AchievementID(achievementID, tier string) string {
	return fmt.Sprintf("achievement:%s:%s", achievementID, tier)
}

// earliest returns the prefix length (1-based) at which ok first holds. When the metric
// can fall, ok must hold on the full history and the start of its final unbroken run is
// returned instead.
func earliest(n int, monotonic bool, ok func(k int) bool) (int, bool) {
	if monotonic {
		for k := 1; k <= n; k++ {
			if ok(k) {
				return k, true
			}
		}
		return 0, false
	}
	if n == 0 || !ok(n) {
		return 0, false
	}
	k := n
	for k > 1 && ok(k-1) {
		k--
	}
	return k, true
}

// ForGoal finds when g was completed. asc must be oldest first. Year-bound goals replay
// only that year's matches.
func ForGoal(g model.Goal, asc []model.Match) (model.Milestone, bool) {
	idx := indexes(asc, g.Year)
	hist := pick(asc, idx)
	k, ok := earliest(len(hist), g.Metric.Monotonic(), func(k int) bool {
		return progress.ForGoal(model.Goal{Metric: g.Metric, Target: g.Target}, hist[:k]).Completed
	})
	if !ok {
		return model.Milestone{}, false
	}
	m := &hist[k-1]
	return model.Milestone{
		ID:          GoalID(g.ID),
		Source:      model.SourceGoal,
		SourceID:    g.ID,
		Title:       g.Title,
		TierIndex:   -1,
		Target:      g.Target,
		CompletedOn: m.Date,
		MatchID:     m.ID,
		MatchNumber: idx[k-1] + 1,
		Year:        m.Year(),
	}, true
}

// ForAchievement finds when the highest tier a currently holds was first reached.
// Tiers are tried from that one downward and only the first found is reported.
func ForAchievement(a model.CustomAchievement, asc []model.Match) (model.Milestone, bool) {
	top, ok := progress.AchievementTier(a, asc)
	if !ok {
		return model.Milestone{}, false
	}
	for ti := top; ti >= 0; ti-- {
		tier := a.Tiers[ti]
		k, found := earliest(len(asc), a.Metric.Monotonic(), func(k int) bool {
			return progress.Value(a.Metric, asc[:k]) >= tier.Target
		})
		if !found {
			continue
		}
		m := &asc[k-1]
		return model.Milestone{
			ID:          AchievementID(a.ID, tier.Name),
			Source:      model.SourceAchievement,
			SourceID:    a.ID,
			Title:       a.Name,
			Tier:        tier.Name,
			TierIndex:   ti,
			Target:      tier.Target,
			CompletedOn: m.Date,
			MatchID:     m.ID,
			MatchNumber: k,
			Year:        m.Year(),
		}, true
	}
	return model.Milestone{}, false
}

// Build computes every milestone over ms (any order), deduplicated by id and ordered by
// completion date.
func Build(goals []model.Goal, achievements []model.CustomAchievement, ms []model.Match) []model.Milestone {
	asc := ledger.SortedAscending(ms)
	seen := make(map[string]struct{})
	var out []model.Milestone
	add := func(m model.Milestone, ok bool) {
		if !ok {
			return
		}
		if _, dup := seen[m.ID]; dup {
			return
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, g := range goals {
		add(ForGoal(g, asc))
	}
	for _, a := range achievements {
		add(ForAchievement(a, asc))
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := ledger.ParseDay(out[i].CompletedOn), ledger.ParseDay(out[j].CompletedOn)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].MatchNumber < out[j].MatchNumber
	})
	return out
}

// GroupByYear groups milestones by completion year, most recent year first. Order within
// a year is preserved.
func GroupByYear(ms []model.Milestone) []model.MilestoneYear {
	byYear := make(map[int][]model.Milestone)
	var years []int
	for _, m := range ms {
		if _, ok := byYear[m.Year]; !ok {
			years = append(years, m.Year)
		}
		byYear[m.Year] = append(byYear[m.Year], m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	out := make([]model.MilestoneYear, len(years))
	for i, y := range years {
		out[i] = model.MilestoneYear{Year: y, Milestones: byYear[y]}
	}
	return out
}

func indexes(asc []model.Match, year int) []int {
	out := make([]int, 0, len(asc))
	for i := range asc {
		if year == ledger.AllYears || asc[i].Year() == year {
			out = append(out, i)
		}
	}
	return out
}

func pick(asc []model.Match, idx []int) []model.Match {
	out := make([]model.Match, len(idx))
	for i, j := range idx {
		out[i] = asc[j]
	}
	return out
}
