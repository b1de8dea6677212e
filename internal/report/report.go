package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/streak"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func pct(v float64) string { return fmt.Sprintf("%.0f%%", 100*v) }

// PrintMatchList prints matches in the given order.
func PrintMatchList(w io.Writer, ms []model.Match) {
	table := newTable(w)
	table.Header("DATE", "RESULT", "G", "A", "GD", "TOURNAMENT", "WITH", "VS", "ID")
	for _, m := range ms {
		tournament := m.Tournament
		if tournament == "" {
			tournament = "—"
		}
		table.Append(
			m.Date,
			m.Result.String(),
			strconv.Itoa(m.Goals),
			strconv.Itoa(m.Assists),
			signed(m.GoalDiff),
			tournament,
			strconv.Itoa(len(m.Teammates)),
			strconv.Itoa(len(m.Opponents)),
			m.ID,
		)
	}
	table.Render()
}

// PrintMatchDetail prints one match header followed by both line-ups.
func PrintMatchDetail(w io.Writer, m model.Match) {
	fmt.Fprintf(w, "\nDate: %s  |  Result: %s (%s)  |  Goals: %d  |  Assists: %d  |  ID: %s\n",
		m.Date, m.Result, signed(m.GoalDiff), m.Goals, m.Assists, m.ID)
	if m.Tournament != "" {
		fmt.Fprintf(w, "Tournament: %s\n", m.Tournament)
	}
	if m.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", m.Notes)
	}
	fmt.Fprintln(w)

	table := newTable(w)
	table.Header("SIDE", "PLAYER", "G", "A")
	for _, p := range m.Teammates {
		table.Append("with", p.Name, strconv.Itoa(p.Goals), strconv.Itoa(p.Assists))
	}
	for _, p := range m.Opponents {
		table.Append("vs", p.Name, strconv.Itoa(p.Goals), strconv.Itoa(p.Assists))
	}
	table.Render()
}

// PrintTotals prints a one-line aggregate and the recent form guide.
func PrintTotals(w io.Writer, a model.Aggregate, form string) {
	if form == "" {
		form = "—"
	}
	fmt.Fprintf(w, "\nMatches: %d  |  W-D-L: %d-%d-%d  |  Points: %d  |  Goals: %d  |  Assists: %d  |  GD: %s  |  Form: %s\n\n",
		a.Matches, a.Wins, a.Draws, a.Losses, a.Points(), a.Goals, a.Assists, signed(a.GoalDiff), form)
}

// PrintYearTotals prints one row per calendar year.
func PrintYearTotals(w io.Writer, years []aggregator.YearTotals) {
	table := newTable(w)
	table.Header("YEAR", "MP", "W", "D", "L", "PTS", "WIN%", "G", "A", "G/M", "GD")
	for _, y := range years {
		table.Append(
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Matches),
			strconv.Itoa(y.Wins),
			strconv.Itoa(y.Draws),
			strconv.Itoa(y.Losses),
			strconv.Itoa(y.Points()),
			pct(y.WinRate()),
			strconv.Itoa(y.Goals),
			strconv.Itoa(y.Assists),
			fmt.Sprintf("%.2f", y.GoalsPerMatch()),
			signed(y.GoalDiff),
		)
	}
	table.Render()
}

// PrintTournamentTotals prints one row per tournament label.
func PrintTournamentTotals(w io.Writer, ts []aggregator.TournamentTotals) {
	if len(ts) == 0 {
		return
	}
	table := newTable(w)
	table.Header("TOURNAMENT", "MP", "W", "D", "L", "WIN%", "G", "A")
	for _, t := range ts {
		table.Append(
			t.Tournament,
			strconv.Itoa(t.Matches),
			strconv.Itoa(t.Wins),
			strconv.Itoa(t.Draws),
			strconv.Itoa(t.Losses),
			pct(t.WinRate()),
			strconv.Itoa(t.Goals),
			strconv.Itoa(t.Assists),
		)
	}
	table.Render()
}

var recordLabels = map[model.RecordKind]string{
	model.RecordLongestWinStreak:      "Longest win streak",
	model.RecordLongestUnbeatenStreak: "Longest unbeaten run",
	model.RecordLongestLossStreak:     "Longest losing streak",
	model.RecordLongestWinlessStreak:  "Longest winless run",
	model.RecordLongestScoringStreak:  "Longest scoring streak",
	model.RecordLongestAssistStreak:   "Longest assisting streak",
	model.RecordLongestGoalDrought:    "Longest goal drought",
	model.RecordLongestAssistDrought:  "Longest assist drought",
	model.RecordMostGoalsInMatch:      "Most goals in a match",
	model.RecordMostAssistsInMatch:    "Most assists in a match",
	model.RecordMostContributions:     "Most goals+assists in a match",
	model.RecordBiggestWin:            "Biggest win margin",
	model.RecordHeaviestDefeat:        "Heaviest defeat margin",
}

// RecordLabel is the display name of a record kind.
func RecordLabel(k model.RecordKind) string {
	if l, ok := recordLabels[k]; ok {
		return l
	}
	return string(k)
}

// PrintRecords prints every historical record. Streak records whose current run equals
// or beats them are marked as ongoing.
func PrintRecords(w io.Writer, recs model.HistoricalRecords, current streak.Streaks) {
	ongoing := make(map[model.RecordKind]bool)
	for _, c := range streak.Conditions {
		ongoing[c.RecordKind()] = streak.Ongoing(current[c], recs[c.RecordKind()])
	}

	table := newTable(w)
	table.Header("RECORD", "BEST", "TIMES", "ONGOING")
	for _, k := range model.RecordKinds {
		r := recs[k]
		best, times := "—", "—"
		if r.Value > 0 {
			best, times = strconv.Itoa(r.Value), strconv.Itoa(r.Count)
		}
		mark := ""
		if ongoing[k] {
			mark = "*"
		}
		table.Append(RecordLabel(k), best, times, mark)
	}
	table.Render()
}

// PrintStreaks prints the current run of every condition; runs long enough to count as
// active are marked.
func PrintStreaks(w io.Writer, s streak.Streaks) {
	table := newTable(w)
	table.Header(" ", "STREAK", "CURRENT")
	for _, c := range streak.Conditions {
		marker := " "
		if s.Active(c) {
			marker = "+"
			if !c.Positive() {
				marker = "-"
			}
		}
		table.Append(marker, c.String(), strconv.Itoa(s[c]))
	}
	table.Render()
}

func trendArrow(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return "↑"
	case model.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func formString(rs []model.Result) string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.Short())
	}
	return b.String()
}

// PrintMorale prints the form snapshot.
func PrintMorale(w io.Writer, m model.PlayerMorale) {
	if m.Insufficient {
		fmt.Fprintf(w, "\nMorale: average performance (not enough matches)  |  Form: %s\n%s\n\n",
			orDash(formString(m.Window)), m.Description)
		return
	}
	trend := trendArrow(m.Trend)
	if m.TrendStreak > 1 {
		trend = fmt.Sprintf("%s x%d", trend, m.TrendStreak)
	}
	fmt.Fprintf(w, "\nMorale: %d/100 (%s)  |  Trend: %s  |  Form: %s\n%s\n\n",
		m.Score, m.Level, trend, formString(m.Window), m.Description)
}

// PrintSeasons prints one row per rated season.
func PrintSeasons(w io.Writer, rs []model.SeasonRating) {
	table := newTable(w)
	table.Header("YEAR", "TIER", "SCORE", "EFF", "MP", "W", "D", "L", "G", "A", "SIMILAR TO")
	for _, r := range rs {
		table.Append(
			strconv.Itoa(r.Year),
			r.TierName,
			strconv.Itoa(r.Score),
			fmt.Sprintf("%d%%", r.Efficiency),
			strconv.Itoa(r.Totals.Matches),
			strconv.Itoa(r.Totals.Wins),
			strconv.Itoa(r.Totals.Draws),
			strconv.Itoa(r.Totals.Losses),
			strconv.Itoa(r.Totals.Goals),
			strconv.Itoa(r.Totals.Assists),
			orDash(r.SimilarTo),
		)
	}
	table.Render()
}

// PrintSeasonDetail prints the verdict for one season.
func PrintSeasonDetail(w io.Writer, r model.SeasonRating) {
	fmt.Fprintf(w, "\n%d: %s (%d/100, efficiency %d%%)\n%s\n", r.Year, r.TierName, r.Score, r.Efficiency, r.Description)
	if r.SimilarTo != "" {
		fmt.Fprintf(w, "Similar to: %s\n", r.SimilarTo)
	}
	if r.InProgress {
		fmt.Fprintln(w, "(season in progress, the rating may still change)")
	}
	fmt.Fprintln(w)
}

// PrintQueryResult prints raw query rows under their column names.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func rankMarker(rc model.RankChange) string {
	switch rc {
	case model.RankUp:
		return "▲"
	case model.RankDown:
		return "▼"
	case model.RankNew:
		return "new"
	default:
		return "="
	}
}

// PrintDuels prints a co-player ranking; limit <= 0 prints everyone.
func PrintDuels(w io.Writer, stats []model.CoPlayerStats, limit int) {
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	table := newTable(w)
	table.Header("#", "PLAYER", "MP", "W", "D", "L", "WIN%", "MY G+A/M", "THEIR G", "THEIR A", "IMPACT", "RANK")
	for i, s := range stats {
		table.Append(
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Matches),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			pct(s.WinRate()),
			fmt.Sprintf("%.2f", s.ContributionsPerMatch()),
			strconv.Itoa(s.TheirGoals),
			strconv.Itoa(s.TheirAssists),
			fmt.Sprintf("%.2f", s.ImpactScore),
			rankMarker(s.RankChange),
		)
	}
	table.Render()
}

// PrintCoPlayerDetail prints one co-player's figures and the shared matches.
func PrintCoPlayerDetail(w io.Writer, s model.CoPlayerStats, shared []model.Match) {
	fmt.Fprintf(w, "\n%s (%s)  |  Matches: %d  |  W-D-L: %d-%d-%d  |  Points: %d  |  Impact: %.2f (total %.2f)\n",
		s.Name, s.Side, s.Matches, s.Wins, s.Draws, s.Losses, s.Points(), s.ImpactScore, s.TotalImpactScore)
	fmt.Fprintf(w, "My G/M: %.2f  |  My A/M: %.2f  |  Their G/M: %.2f  |  Their A/M: %.2f\n\n",
		s.MyGoalsPerMatch(), s.MyAssistsPerMatch(), s.TheirGoalsPerMatch(), s.TheirAssistsPerMatch())
	PrintMatchList(w, shared)
}

// PrintMilestones prints the timeline grouped by year.
func PrintMilestones(w io.Writer, years []model.MilestoneYear) {
	if len(years) == 0 {
		fmt.Fprintln(w, "No milestones reached yet.")
		return
	}
	for _, y := range years {
		fmt.Fprintf(w, "\n%d\n", y.Year)
		table := newTable(w)
		table.Header("DATE", "MILESTONE", "TIER", "TARGET", "MATCH #")
		for _, m := range y.Milestones {
			table.Append(
				m.CompletedOn,
				m.Title,
				orDash(m.Tier),
				strconv.FormatFloat(m.Target, 'f', -1, 64),
				strconv.Itoa(m.MatchNumber),
			)
		}
		table.Render()
	}
}

// PrintGoalProgress prints every goal against its target.
func PrintGoalProgress(w io.Writer, gs []engine.GoalStatus) {
	table := newTable(w)
	table.Header("ID", "GOAL", "METRIC", "SCOPE", "CURRENT", "TARGET", "PROGRESS", "DONE")
	for _, g := range gs {
		scope := "all-time"
		if g.Goal.Year != 0 {
			scope = strconv.Itoa(g.Goal.Year)
		}
		done := ""
		if g.Progress.Completed {
			done = "✓"
		}
		table.Append(
			shortID(g.Goal.ID),
			g.Goal.Title,
			string(g.Goal.Metric),
			scope,
			strconv.FormatFloat(g.Progress.Current, 'f', -1, 64),
			strconv.FormatFloat(g.Progress.Target, 'f', -1, 64),
			fmt.Sprintf("%.0f%%", g.Progress.Percent),
			done,
		)
	}
	table.Render()
}

// PrintAchievements prints the reached tier and next target of every achievement.
func PrintAchievements(w io.Writer, ps []model.AchievementProgress) {
	table := newTable(w)
	table.Header("ID", "ACHIEVEMENT", "METRIC", "CURRENT", "TIER", "NEXT", "UNLOCKED")
	for _, p := range ps {
		next := "—"
		if p.NextTarget > 0 {
			next = strconv.FormatFloat(p.NextTarget, 'f', -1, 64)
		}
		unlocked := ""
		if p.Achievement.Unlocked {
			unlocked = "✓"
		}
		table.Append(
			shortID(p.Achievement.ID),
			p.Achievement.Name,
			string(p.Achievement.Metric),
			strconv.FormatFloat(p.Current, 'f', -1, 64),
			orDash(p.TierName()),
			next,
			unlocked,
		)
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
