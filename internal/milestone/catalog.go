package milestone

import "github.com/pable/footstats/internal/model"

func tiers(targets ...float64) []model.AchievementTier {
	names := []string{"bronze", "silver", "gold", "diamond"}
	out := make([]model.AchievementTier, len(targets))
	for i, t := range targets {
		out[i] = model.AchievementTier{Name: names[i], Target: t}
	}
	return out
}

// DefaultAchievements is the built-in catalog used when the user has defined none.
func DefaultAchievements() []model.CustomAchievement {
	return []model.CustomAchievement{
		{ID: "scorer", Name: "Scorer", Description: "Goals scored.", Metric: model.MetricTotalGoals, Tiers: tiers(10, 25, 50, 100)},
		{ID: "playmaker", Name: "Playmaker", Description: "Assists given.", Metric: model.MetricTotalAssists, Tiers: tiers(10, 25, 50)},
		{ID: "winner", Name: "Winner", Description: "Matches won.", Metric: model.MetricWins, Tiers: tiers(10, 25, 50, 100)},
		{ID: "veteran", Name: "Veteran", Description: "Matches played.", Metric: model.MetricMatchesPlayed, Tiers: tiers(25, 50, 100, 200)},
		{ID: "hat-trick-hero", Name: "Hat-trick hero", Description: "Matches with three or more goals.", Metric: model.MetricHatTricks, Tiers: tiers(1, 3, 5)},
		{ID: "unstoppable", Name: "Unstoppable", Description: "Longest winning run.", Metric: model.MetricLongestWinStreak, Tiers: tiers(3, 5, 10)},
	}
}
