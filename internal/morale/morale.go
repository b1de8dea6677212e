// Package morale estimates a player's short-window form from recent matches.
package morale

import (
	"math"

	"github.com/pable/footstats/internal/model"
)

const (
	// WindowSize is the number of most recent matches scored.
	WindowSize = 5
	// ComparisonSize is the trailing window the form window is normalized against.
	ComparisonSize = 20
	// MinMatches is the least history that yields a live score.
	MinMatches = 3
	// NeutralScore is reported when history is insufficient.
	NeutralScore = 50
)

// Blend weights of the three score components.
const (
	weightForm   = 0.5
	weightOutput = 0.3
	weightMargin = 0.2
)

// marginSpan is the per-match goal-difference swing that moves the margin component
// from neutral to an extreme.
const marginSpan = 6.0

type level struct {
	min         int
	level       model.MoraleLevel
	description string
}

// levels is ordered by descending lower bound.
var levels = []level{
	{90, model.MoralePeak, "Peak form: everything is coming off."},
	{75, model.MoraleExcellent, "Excellent run of form."},
	{60, model.MoraleGood, "Good form, contributing regularly."},
	{40, model.MoraleRegular, "Regular: performing at the usual level."},
	{20, model.MoraleLow, "Low form, results and output have dipped."},
	{0, model.MoraleCrisis, "Crisis: a difficult spell."},
}

const unknownDescription = "Not enough matches to judge form."

// Level maps a 0–100 score to its qualitative level and description.
func Level(score int) (model.MoraleLevel, string) {
	for _, l := range levels {
		if score >= l.min {
			return l.level, l.description
		}
	}
	return model.MoraleUnknown, unknownDescription
}

type windowStats struct {
	pointsPerMatch  float64
	contribPerMatch float64
	gdPerMatch      float64
}

func stats(ms []model.Match) windowStats {
	if len(ms) == 0 {
		return windowStats{}
	}
	var pts, contrib, gd int
	for i := range ms {
		pts += ms[i].Result.Points()
		contrib += ms[i].Contributions()
		gd += ms[i].GoalDiff
	}
	n := float64(len(ms))
	return windowStats{
		pointsPerMatch:  float64(pts) / n,
		contribPerMatch: float64(contrib) / n,
		gdPerMatch:      float64(gd) / n,
	}
}

// score computes the 0–100 form score of desc. ok is false when history is too short.
func score(desc []model.Match) (int, bool) {
	if len(desc) < MinMatches {
		return NeutralScore, false
	}
	window := desc[:min(WindowSize, len(desc))]
	comparison := desc[:min(ComparisonSize, len(desc))]
	w, c := stats(window), stats(comparison)

	form := w.pointsPerMatch / 3

	var output float64
	switch {
	case c.contribPerMatch > 0:
		output = clamp01(0.5 * w.contribPerMatch / c.contribPerMatch)
	case w.contribPerMatch == 0:
		output = 0.5
	default:
		output = 1
	}

	margin := clamp01(0.5 + (w.gdPerMatch-c.gdPerMatch)/marginSpan)

	s := 100 * (weightForm*form + weightOutput*output + weightMargin*margin)
	return int(math.Round(s)), true
}

// Estimate returns the morale snapshot for desc, the player's matches most recent
// first, already cut off at the "as of" date.
func Estimate(desc []model.Match) model.PlayerMorale {
	s, ok := score(desc)
	if !ok {
		return model.PlayerMorale{
			Score:        NeutralScore,
			Level:        model.MoraleUnknown,
			Trend:        model.TrendNone,
			Description:  unknownDescription,
			Insufficient: true,
			Window:       results(desc),
		}
	}

	lvl, description := Level(s)
	trend, streak := trendOf(desc, s)
	return model.PlayerMorale{
		Score:       s,
		Level:       lvl,
		Trend:       trend,
		TrendStreak: streak,
		Description: description,
		Window:      results(desc),
	}
}

// trendOf compares s with the score one match earlier and counts how many consecutive
// earlier shifts moved the same way.
func trendOf(desc []model.Match, s int) (model.Trend, int) {
	if len(desc) < 2 {
		return model.TrendNone, 0
	}
	prev, ok := score(desc[1:])
	if !ok {
		return model.TrendNone, 0
	}
	dir := direction(s, prev)
	if dir == model.TrendNone {
		return model.TrendNone, 0
	}
	streak := 1
	cur := prev
	for k := 2; k < len(desc); k++ {
		earlier, ok := score(desc[k:])
		if !ok || direction(cur, earlier) != dir {
			break
		}
		streak++
		cur = earlier
	}
	return dir, streak
}

func direction(now, before int) model.Trend {
	switch {
	case now > before:
		return model.TrendUp
	case now < before:
		return model.TrendDown
	default:
		return model.TrendNone
	}
}

func results(desc []model.Match) []model.Result {
	n := min(WindowSize, len(desc))
	if n == 0 {
		return nil
	}
	out := make([]model.Result, n)
	for i := 0; i < n; i++ {
		out[i] = desc[i].Result
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
