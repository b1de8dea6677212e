package aggregator

import (
	"sort"

	"github.com/pable/footstats/internal/model"
)

// Aggregate sums results, goals and assists over ms.
func Aggregate(ms []model.Match) model.Aggregate {
	var a model.Aggregate
	for _, m := range ms {
		a.Matches++
		switch m.Result {
		case model.ResultWin:
			a.Wins++
		case model.ResultDraw:
			a.Draws++
		case model.ResultLoss:
			a.Losses++
		}
		a.Goals += m.Goals
		a.Assists += m.Assists
		a.GoalDiff += m.GoalDiff
	}
	return a
}

// YearTotals is the aggregate for one calendar year.
type YearTotals struct {
	Year int
	model.Aggregate
}

// ByYear groups matches by calendar year, most recent year first.
// Matches with a malformed date are skipped.
func ByYear(ms []model.Match) []YearTotals {
	byYear := make(map[int][]model.Match)
	for _, m := range ms {
		y := m.Year()
		if y == 0 {
			continue
		}
		byYear[y] = append(byYear[y], m)
	}
	out := make([]YearTotals, 0, len(byYear))
	for y, group := range byYear {
		out = append(out, YearTotals{Year: y, Aggregate: Aggregate(group)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// TournamentTotals is the aggregate for one tournament label.
type TournamentTotals struct {
	Tournament string
	model.Aggregate
}

// ByTournament groups labelled matches by tournament, ordered by matches played desc
// then name. Matches without a tournament label are skipped.
func ByTournament(ms []model.Match) []TournamentTotals {
	groups := make(map[string][]model.Match)
	for _, m := range ms {
		if m.Tournament == "" {
			continue
		}
		groups[m.Tournament] = append(groups[m.Tournament], m)
	}
	out := make([]TournamentTotals, 0, len(groups))
	for name, group := range groups {
		out = append(out, TournamentTotals{Tournament: name, Aggregate: Aggregate(group)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].Tournament < out[j].Tournament
	})
	return out
}

// FormGuide returns up to n one-letter results from a most-recent-first list.
func FormGuide(desc []model.Match, n int) string {
	if n > len(desc) {
		n = len(desc)
	}
	b := make([]byte, 0, n)
	for _, m := range desc[:n] {
		b = append(b, m.Result.Short()...)
	}
	return string(b)
}
