// Package rating classifies a closed season into a named tier.
package rating

import (
	"math"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/model"
)

// Unrated is reported for a season without matches.
const Unrated = "Unrated"

// tier is one rule of the classifier. Zero thresholds are ignored.
type tier struct {
	name        string
	minEff      float64
	minGPM      float64
	minMatches  int
	description string
	similarTo   string
}

// tiers is evaluated top-down; the first rule that matches wins.
var tiers = []tier{
	{"GOAT", 0.80, 1.0, 10, "A season for the ages: winning almost everything and scoring every match.", "Messi 2012"},
	{"Legend", 0.70, 0.70, 10, "Dominant results backed by a steady stream of goals.", "Cristiano Ronaldo 2014"},
	{"Elite", 0.60, 0.50, 8, "Consistently decisive at both ends of the pitch.", "Luka Modrić 2018"},
	{"Star", 0.55, 0, 5, "The team wins more often than not with you on the pitch.", ""},
	{"Solid", 0.45, 0, 0, "A reliable season with more good days than bad.", ""},
	{"Regular", 0.35, 0, 0, "An even season, results came and went.", ""},
	{"Developing", 0.20, 0, 0, "Results were hard to come by, but there is a base to build on.", ""},
	{"Struggling", 0, 0, 0, "A tough season. Next one can only be better.", ""},
}

func (t tier) matches(eff, gpm float64, n int) bool {
	return eff >= t.minEff && gpm >= t.minGPM && n >= t.minMatches
}

// Score blends efficiency with scoring and assisting rates into 0–100.
func Score(a model.Aggregate) int {
	eff := a.Efficiency()
	gpm := math.Min(a.GoalsPerMatch()/1.5, 1)
	apm := math.Min(a.AssistsPerMatch(), 1)
	return int(math.Round(100 * (0.7*eff + 0.2*gpm + 0.1*apm)))
}

// Classify rates one season's matches. The caller filters to a single year.
func Classify(ms []model.Match) model.SeasonRating {
	a := aggregator.Aggregate(ms)
	r := model.SeasonRating{Totals: a}
	if len(ms) > 0 {
		r.Year = ms[0].Year()
	}
	if a.Matches == 0 {
		r.TierName = Unrated
		r.Description = "No matches played."
		return r
	}

	eff, gpm := a.Efficiency(), a.GoalsPerMatch()
	r.Efficiency = int(math.Round(100 * eff))
	r.Score = Score(a)
	for _, t := range tiers {
		if t.matches(eff, gpm, a.Matches) {
			r.TierName = t.name
			r.Description = t.description
			r.SimilarTo = t.similarTo
			break
		}
	}
	return r
}
