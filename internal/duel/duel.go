// Package duel scores how each co-listed player's presence relates to the viewer's
// results and output.
package duel

import (
	"sort"

	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
)

// Weights are the per-match impact constants. Co-player goal and assist weights are
// added for teammates and subtracted for opponents.
type Weights struct {
	TeammateWin  float64
	TeammateDraw float64
	TeammateLoss float64
	OpponentWin  float64
	OpponentDraw float64
	OpponentLoss float64

	OwnGoal   float64
	OwnAssist float64
	GoalDiff  float64

	CoPlayerGoal   float64
	CoPlayerAssist float64

	// ConfidenceFactor is added to the shared-match count in the impact denominator.
	ConfidenceFactor float64
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		TeammateWin:      3,
		TeammateDraw:     1,
		TeammateLoss:     -1,
		OpponentWin:      3,
		OpponentDraw:     1,
		OpponentLoss:     -2,
		OwnGoal:          1.5,
		OwnAssist:        1.0,
		GoalDiff:         0.25,
		CoPlayerGoal:     0.75,
		CoPlayerAssist:   0.5,
		ConfidenceFactor: constants.DuelConfidenceFactor,
	}
}

func (w Weights) result(side model.Side, r model.Result) float64 {
	switch {
	case side == model.SideTeammate && r == model.ResultWin:
		return w.TeammateWin
	case side == model.SideTeammate && r == model.ResultDraw:
		return w.TeammateDraw
	case side == model.SideTeammate && r == model.ResultLoss:
		return w.TeammateLoss
	case side == model.SideOpponent && r == model.ResultWin:
		return w.OpponentWin
	case side == model.SideOpponent && r == model.ResultDraw:
		return w.OpponentDraw
	case side == model.SideOpponent && r == model.ResultLoss:
		return w.OpponentLoss
	}
	return 0
}

// impact is the contribution of one shared match with p on side.
func (w Weights) impact(m *model.Match, p model.PlayerPerformance, side model.Side) float64 {
	sign := 1.0
	if side == model.SideOpponent {
		sign = -1
	}
	return w.result(side, m.Result) +
		w.OwnGoal*float64(m.Goals) +
		w.OwnAssist*float64(m.Assists) +
		w.GoalDiff*float64(m.GoalDiff) +
		sign*w.CoPlayerGoal*float64(p.Goals) +
		sign*w.CoPlayerAssist*float64(p.Assists)
}

// Result holds both rankings, each ordered by impact descending then name ascending.
type Result struct {
	Teammates []model.CoPlayerStats `json:"teammates"`
	Opponents []model.CoPlayerStats `json:"opponents"`
}

// Side returns the ranking for side.
func (r Result) Side(side model.Side) []model.CoPlayerStats {
	if side == model.SideOpponent {
		return r.Opponents
	}
	return r.Teammates
}

// Score ranks every co-player in ms. viewer is left out of the teammate ranking.
// RankChange compares against the same ledger without its most recent match.
func Score(ms []model.Match, viewer string, w Weights) Result {
	asc := ledger.SortedAscending(ms)
	cur := rank(asc, viewer, w)
	if len(asc) == 0 {
		return cur
	}
	prev := rank(asc[:len(asc)-1], viewer, w)
	markChanges(cur.Teammates, prev.Teammates)
	markChanges(cur.Opponents, prev.Opponents)
	return cur
}

func rank(asc []model.Match, viewer string, w Weights) Result {
	mates := make(map[string]*model.CoPlayerStats)
	opps := make(map[string]*model.CoPlayerStats)
	for i := range asc {
		m := &asc[i]
		collect(mates, m, m.Teammates, model.SideTeammate, viewer, w)
		collect(opps, m, m.Opponents, model.SideOpponent, "", w)
	}
	return Result{
		Teammates: finalize(mates, w),
		Opponents: finalize(opps, w),
	}
}

func collect(into map[string]*model.CoPlayerStats, m *model.Match, ps []model.PlayerPerformance, side model.Side, skip string, w Weights) {
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if p.Name == "" || (skip != "" && p.Name == skip) {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}

		s, ok := into[p.Name]
		if !ok {
			s = &model.CoPlayerStats{Name: p.Name, Side: side}
			into[p.Name] = s
		}
		s.Matches++
		switch m.Result {
		case model.ResultWin:
			s.Wins++
		case model.ResultDraw:
			s.Draws++
		case model.ResultLoss:
			s.Losses++
		}
		s.MyGoals += m.Goals
		s.MyAssists += m.Assists
		s.TheirGoals += p.Goals
		s.TheirAssists += p.Assists
		s.TotalImpactScore += w.impact(m, p, side)
		s.MatchIDs = append(s.MatchIDs, m.ID)
	}
}

func finalize(byName map[string]*model.CoPlayerStats, w Weights) []model.CoPlayerStats {
	out := make([]model.CoPlayerStats, 0, len(byName))
	for _, s := range byName {
		s.ImpactScore = s.TotalImpactScore / (float64(s.Matches) + w.ConfidenceFactor)
		s.RankChange = model.RankNew
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ImpactScore != out[j].ImpactScore {
			return out[i].ImpactScore > out[j].ImpactScore
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func markChanges(cur, prev []model.CoPlayerStats) {
	before := make(map[string]int, len(prev))
	for i, s := range prev {
		before[s.Name] = i
	}
	for i := range cur {
		was, ok := before[cur[i].Name]
		switch {
		case !ok:
			cur[i].RankChange = model.RankNew
		case i < was:
			cur[i].RankChange = model.RankUp
		case i > was:
			cur[i].RankChange = model.RankDown
		default:
			cur[i].RankChange = model.RankSame
		}
	}
}

// Find returns the entry for name.
func Find(stats []model.CoPlayerStats, name string) (model.CoPlayerStats, bool) {
	for _, s := range stats {
		if s.Name == name {
			return s, true
		}
	}
	return model.CoPlayerStats{}, false
}
