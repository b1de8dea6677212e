// Package streak finds current runs and historical records over a match ledger.
package streak

import (
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
)

// MinActiveStreak is the shortest current run the report layer calls "active".
const MinActiveStreak = 2

// Condition is a per-match predicate whose consecutive runs are tracked.
type Condition int

const (
	Win Condition = iota
	Unbeaten
	Loss
	Winless
	Scoring
	Assisting
	Goalless
	Assistless
)

// Conditions lists every tracked condition in display order.
var Conditions = []Condition{Win, Unbeaten, Loss, Winless, Scoring, Assisting, Goalless, Assistless}

func (c Condition) String() string {
	switch c {
	case Win:
		return "wins"
	case Unbeaten:
		return "unbeaten"
	case Loss:
		return "losses"
	case Winless:
		return "winless"
	case Scoring:
		return "scoring"
	case Assisting:
		return "assisting"
	case Goalless:
		return "goal drought"
	case Assistless:
		return "assist drought"
	default:
		return "?"
	}
}

// Holds reports whether m satisfies c.
func (c Condition) Holds(m *model.Match) bool {
	switch c {
	case Win:
		return m.Result == model.ResultWin
	case Unbeaten:
		return m.Result != model.ResultLoss
	case Loss:
		return m.Result == model.ResultLoss
	case Winless:
		return m.Result != model.ResultWin
	case Scoring:
		return m.Goals > 0
	case Assisting:
		return m.Assists > 0
	case Goalless:
		return m.Goals == 0
	case Assistless:
		return m.Assists == 0
	default:
		return false
	}
}

// Positive reports whether a run of c is good news for the player.
func (c Condition) Positive() bool {
	switch c {
	case Win, Unbeaten, Scoring, Assisting:
		return true
	default:
		return false
	}
}

// recordKind maps each condition to its longest-run record.
var recordKind = map[Condition]model.RecordKind{
	Win:        model.RecordLongestWinStreak,
	Unbeaten:   model.RecordLongestUnbeatenStreak,
	Loss:       model.RecordLongestLossStreak,
	Winless:    model.RecordLongestWinlessStreak,
	Scoring:    model.RecordLongestScoringStreak,
	Assisting:  model.RecordLongestAssistStreak,
	Goalless:   model.RecordLongestGoalDrought,
	Assistless: model.RecordLongestAssistDrought,
}

// RecordKind returns the HistoricalRecords key for the longest run of c.
func (c Condition) RecordKind() model.RecordKind { return recordKind[c] }

// Current counts consecutive matches satisfying c starting from desc[0], the most
// recent match, and stops at the first failure.
func Current(desc []model.Match, c Condition) int {
	n := 0
	for i := range desc {
		if !c.Holds(&desc[i]) {
			break
		}
		n++
	}
	return n
}

// Streaks holds the current run of every condition.
type Streaks map[Condition]int

// Active reports whether the run of c is long enough to surface.
func (s Streaks) Active(c Condition) bool { return s[c] >= MinActiveStreak }

// CurrentAll computes Current for every condition.
func CurrentAll(desc []model.Match) Streaks {
	out := make(Streaks, len(Conditions))
	for _, c := range Conditions {
		out[c] = Current(desc, c)
	}
	return out
}

// Longest scans asc oldest first and returns the longest run of c together with the
// number of distinct runs that reached exactly that length.
func Longest(asc []model.Match, c Condition) model.Record {
	var rec model.Record
	run := 0
	for i := range asc {
		if !c.Holds(&asc[i]) {
			run = 0
			continue
		}
		run++
		switch {
		case run > rec.Value:
			rec.Value = run
			rec.Count = 1
		case run == rec.Value:
			rec.Count++
		}
	}
	return rec
}

// BestSingleMatch returns the highest per-match value of f and how many matches hit it.
// A best of zero or less is reported as {0, 0}.
func BestSingleMatch(ms []model.Match, f func(*model.Match) int) model.Record {
	var rec model.Record
	for i := range ms {
		v := f(&ms[i])
		switch {
		case v > rec.Value:
			rec.Value = v
			rec.Count = 1
		case v == rec.Value && v > 0:
			rec.Count++
		}
	}
	return rec
}

// Historical computes every record kind. ms may be in any order.
func Historical(ms []model.Match) model.HistoricalRecords {
	asc := ledger.SortedAscending(ms)
	out := make(model.HistoricalRecords, len(model.RecordKinds))
	for _, c := range Conditions {
		out[c.RecordKind()] = Longest(asc, c)
	}
	out[model.RecordMostGoalsInMatch] = BestSingleMatch(asc, func(m *model.Match) int { return m.Goals })
	out[model.RecordMostAssistsInMatch] = BestSingleMatch(asc, func(m *model.Match) int { return m.Assists })
	out[model.RecordMostContributions] = BestSingleMatch(asc, func(m *model.Match) int { return m.Contributions() })
	out[model.RecordBiggestWin] = BestSingleMatch(asc, func(m *model.Match) int {
		if m.Result != model.ResultWin {
			return 0
		}
		return m.GoalDiff
	})
	out[model.RecordHeaviestDefeat] = BestSingleMatch(asc, func(m *model.Match) int {
		if m.Result != model.ResultLoss {
			return 0
		}
		return -m.GoalDiff
	})
	return out
}

// Ongoing reports whether the current run equals or beats the record.
func Ongoing(current int, rec model.Record) bool {
	return rec.Value > 0 && current >= rec.Value
}
