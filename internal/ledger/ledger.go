// Package ledger provides read-only projections of a match collection: chronological
// ordering, year and player filters, and the collection fingerprint used for caching.
package ledger

import (
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/pable/footstats/internal/model"
)

// AllYears disables the year filter.
const AllYears = 0

// SortedAscending returns a copy ordered oldest first. Matches on the same day keep
// their original relative order.
func SortedAscending(ms []model.Match) []model.Match {
	out := clone(ms)
	sort.SliceStable(out, func(i, j int) bool {
		return ParseDay(out[i].Date).Before(ParseDay(out[j].Date))
	})
	return out
}

// SortedDescending returns a copy ordered most recent first, stable on equal days.
func SortedDescending(ms []model.Match) []model.Match {
	out := clone(ms)
	sort.SliceStable(out, func(i, j int) bool {
		return ParseDay(out[i].Date).After(ParseDay(out[j].Date))
	})
	return out
}

// FilterByYear keeps matches played in year. AllYears returns a copy of everything.
func FilterByYear(ms []model.Match, year int) []model.Match {
	if year == AllYears {
		return clone(ms)
	}
	var out []model.Match
	for _, m := range ms {
		if m.Year() == year {
			out = append(out, m)
		}
	}
	return out
}

// FilterByPlayerInvolved keeps matches where name appears, exactly as stored, in either
// the teammate or the opponent list.
func FilterByPlayerInvolved(ms []model.Match, name string) []model.Match {
	var out []model.Match
	for _, m := range ms {
		if involves(m, name) {
			out = append(out, m)
		}
	}
	return out
}

func involves(m model.Match, name string) bool {
	for _, p := range m.Teammates {
		if p.Name == name {
			return true
		}
	}
	for _, p := range m.Opponents {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AsOf keeps matches played on or before the calendar day of t.
func AsOf(ms []model.Match, t time.Time) []model.Match {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	var out []model.Match
	for _, m := range ms {
		if !ParseDay(m.Date).After(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

// Years returns the distinct years present, most recent first.
func Years(ms []model.Match) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, m := range ms {
		y := m.Year()
		if y == 0 {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Fingerprint hashes every field the analytics read. Two collections with the same
// fingerprint produce identical analytics; the order of ms matters.
func Fingerprint(ms []model.Match) uint64 {
	d := xxhash.New()
	field := func(s string) {
		d.WriteString(s)
		d.Write([]byte{0})
	}
	num := func(n int) { field(strconv.Itoa(n)) }
	players := func(ps []model.PlayerPerformance) {
		num(len(ps))
		for _, p := range ps {
			field(p.Name)
			num(p.Goals)
			num(p.Assists)
		}
	}
	num(len(ms))
	for _, m := range ms {
		field(m.ID)
		field(m.Date)
		field(string(m.Result))
		num(m.Goals)
		num(m.Assists)
		num(m.GoalDiff)
		field(m.Tournament)
		players(m.Teammates)
		players(m.Opponents)
	}
	return d.Sum64()
}

func clone(ms []model.Match) []model.Match {
	if ms == nil {
		return nil
	}
	out := make([]model.Match, len(ms))
	copy(out, ms)
	return out
}
