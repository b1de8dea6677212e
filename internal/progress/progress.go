// Package progress evaluates goals and achievements against a subset of matches.
package progress

import (
	"math"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/streak"
)

// Value computes metric over ms, which may be in any order.
func Value(metric model.Metric, ms []model.Match) float64 {
	switch metric {
	case model.MetricTotalGoals:
		return float64(sum(ms, func(m *model.Match) int { return m.Goals }))
	case model.MetricTotalAssists:
		return float64(sum(ms, func(m *model.Match) int { return m.Assists }))
	case model.MetricTotalContributions:
		return float64(sum(ms, func(m *model.Match) int { return m.Contributions() }))
	case model.MetricWins:
		return float64(count(ms, func(m *model.Match) bool { return m.IsWin() }))
	case model.MetricMatchesPlayed:
		return float64(len(ms))
	case model.MetricUnbeatenMatches:
		return float64(count(ms, func(m *model.Match) bool { return !m.IsLoss() }))
	case model.MetricHatTricks:
		return float64(count(ms, func(m *model.Match) bool { return m.Goals >= 3 }))
	case model.MetricBraces:
		return float64(count(ms, func(m *model.Match) bool { return m.Goals >= 2 }))
	case model.MetricLongestWinStreak:
		return float64(streak.Longest(ledger.SortedAscending(ms), streak.Win).Value)
	case model.MetricLongestUnbeatenStreak:
		return float64(streak.Longest(ledger.SortedAscending(ms), streak.Unbeaten).Value)
	case model.MetricLongestScoringStreak:
		return float64(streak.Longest(ledger.SortedAscending(ms), streak.Scoring).Value)
	case model.MetricMaxGoalsInMatch:
		return float64(streak.BestSingleMatch(ms, func(m *model.Match) int { return m.Goals }).Value)
	case model.MetricWinRate:
		a := aggregator.Aggregate(ms)
		return round2(100 * a.WinRate())
	case model.MetricGoalsPerMatch:
		a := aggregator.Aggregate(ms)
		return round2(a.GoalsPerMatch())
	default:
		return 0
	}
}

// ForGoal evaluates g. Goals bound to a year only see that year's matches.
func ForGoal(g model.Goal, ms []model.Match) model.Progress {
	if g.Year != ledger.AllYears {
		ms = ledger.FilterByYear(ms, g.Year)
	}
	cur := Value(g.Metric, ms)
	p := model.Progress{Current: cur, Target: g.Target}
	if g.Target <= 0 {
		p.Percent = 100
		p.Completed = true
		return p
	}
	p.Percent = round2(math.Min(100, 100*cur/g.Target))
	p.Completed = cur >= g.Target
	return p
}

// AchievementTier returns the index of the highest tier met by ms.
func AchievementTier(a model.CustomAchievement, ms []model.Match) (int, bool) {
	return tierFor(a, Value(a.Metric, ms))
}

func tierFor(a model.CustomAchievement, v float64) (int, bool) {
	idx := -1
	for i, t := range a.Tiers {
		if v >= t.Target {
			idx = i
		}
	}
	return idx, idx >= 0
}

// Satisfies reports whether ms meets the achievement's first tier.
func Satisfies(a model.CustomAchievement, ms []model.Match) bool {
	_, ok := AchievementTier(a, ms)
	return ok
}

// ForAchievement evaluates a and reports the next tier's target, if any.
func ForAchievement(a model.CustomAchievement, ms []model.Match) model.AchievementProgress {
	v := Value(a.Metric, ms)
	idx, _ := tierFor(a, v)
	p := model.AchievementProgress{Achievement: a, Current: v, TierIndex: idx}
	if idx+1 < len(a.Tiers) {
		p.NextTarget = a.Tiers[idx+1].Target
	}
	return p
}

func sum(ms []model.Match, f func(*model.Match) int) int {
	n := 0
	for i := range ms {
		n += f(&ms[i])
	}
	return n
}

func count(ms []model.Match, f func(*model.Match) bool) int {
	n := 0
	for i := range ms {
		if f(&ms[i]) {
			n++
		}
	}
	return n
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
