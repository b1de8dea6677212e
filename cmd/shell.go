package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/report"
	"github.com/pable/footstats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgGreen, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgGreen, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession keeps the database and the analyzer cache open between commands.
type shellSession struct {
	ctx context.Context
	db  *storage.DB
	an  *engine.Analyzer
}

// matches reloads the ledger so imports from another terminal show up.
func (s *shellSession) matches() ([]model.Match, bool) {
	ms, err := loadMatches(s.db)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	if len(ms) == 0 {
		cMuted.Println("No matches stored yet.")
		return nil, false
	}
	return ms, true
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	s := &shellSession{ctx: ctx, db: db, an: an}

	greeting := "footstats shell"
	if name := viewer(db); name != "" {
		greeting += ", hi " + name
	}
	cGreeting.Println(greeting)
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("footstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		verb, args := tokens[0], tokens[1:]

		switch verb {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			s.list(args)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <match-id>")
				continue
			}
			s.show(args[0])
		case "summary":
			s.summary()
		case "records":
			s.records(args)
		case "streaks":
			s.streaks()
		case "morale":
			s.morale(args)
		case "season", "seasons":
			s.seasons(args)
		case "duels":
			s.duels(args)
		case "milestones":
			s.milestones()
		case "goals":
			s.goals()
		case "achievements":
			s.achievements()
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", verb)
		}
	}
	return scanner.Err()
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list [year]", "list matches, most recent first"},
		{"show <match-id>", "show one match with both line-ups"},
		{"summary", "overall, per-year and per-tournament totals"},
		{"records [year]", "personal records (* = current run matches it)"},
		{"streaks", "current runs"},
		{"morale [year]", "current form, or form at the end of a year"},
		{"season [year]", "season ratings, or one season's verdict"},
		{"duels [teammates|opponents] [name]", "co-player impact ranking or drill-down"},
		{"milestones", "when goals and achievement tiers were reached"},
		{"goals", "goal progress"},
		{"achievements", "achievement tiers reached"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

// yearArg parses an optional leading year argument.
func yearArg(args []string) (int, bool) {
	if len(args) == 0 {
		return ledger.AllYears, true
	}
	y, err := strconv.Atoi(args[0])
	if err != nil {
		cError.Fprintf(os.Stderr, "invalid year %q\n", args[0])
		return 0, false
	}
	return y, true
}

func (s *shellSession) list(args []string) {
	year, ok := yearArg(args)
	if !ok {
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	desc := ledger.SortedDescending(ledger.FilterByYear(ms, year))
	report.PrintTotals(os.Stdout, aggregator.Aggregate(desc), aggregator.FormGuide(desc, constants.FormGuideLength))
	if len(desc) > constants.DefaultListLimit {
		desc = desc[:constants.DefaultListLimit]
	}
	report.PrintMatchList(os.Stdout, desc)
}

func (s *shellSession) show(id string) {
	m, err := s.db.GetMatch(id)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if m == nil {
		cWarn.Fprintf(os.Stderr, "no match found with id %q\n", id)
		return
	}
	report.PrintMatchDetail(os.Stdout, *m)
}

func (s *shellSession) summary() {
	ms, ok := s.matches()
	if !ok {
		return
	}
	desc := ledger.SortedDescending(ms)
	report.PrintTotals(os.Stdout, aggregator.Aggregate(ms), aggregator.FormGuide(desc, constants.FormGuideLength))
	cHeader.Println("By year")
	report.PrintYearTotals(os.Stdout, aggregator.ByYear(ms))
	if ts := aggregator.ByTournament(ms); len(ts) > 0 {
		cHeader.Println("\nBy tournament")
		report.PrintTournamentTotals(os.Stdout, ts)
	}
}

func (s *shellSession) records(args []string) {
	year, ok := yearArg(args)
	if !ok {
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	f := engine.Filter{Year: year}
	report.PrintRecords(os.Stdout, s.an.Records(s.ctx, ms, f), s.an.Streaks(s.ctx, ms, f))
}

func (s *shellSession) streaks() {
	ms, ok := s.matches()
	if !ok {
		return
	}
	report.PrintStreaks(os.Stdout, s.an.Streaks(s.ctx, ms, engine.Filter{}))
}

func (s *shellSession) morale(args []string) {
	year, ok := yearArg(args)
	if !ok {
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	report.PrintMorale(os.Stdout, s.an.Morale(s.ctx, ms, engine.Filter{Year: year}))
}

func (s *shellSession) seasons(args []string) {
	year, ok := yearArg(args)
	if !ok {
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	if year != ledger.AllYears {
		report.PrintSeasonDetail(os.Stdout, s.an.Season(s.ctx, ms, year))
		return
	}
	rs, err := s.an.Seasons(s.ctx, ms)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintSeasons(os.Stdout, rs)
}

func (s *shellSession) duels(args []string) {
	sides := []model.Side{model.SideTeammate, model.SideOpponent}
	if len(args) > 0 {
		if parsed, err := parseSide(args[0]); err == nil {
			sides, args = parsed, args[1:]
		}
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	res := s.an.Duels(s.ctx, ms, engine.Filter{}, viewer(s.db))

	if len(args) > 0 {
		name := strings.Join(args, " ")
		found := false
		for _, side := range sides {
			if st, ok := duel.Find(res.Side(side), name); ok {
				found = true
				report.PrintCoPlayerDetail(os.Stdout, st, sharedMatches(ms, st.MatchIDs))
			}
		}
		if !found {
			cWarn.Fprintf(os.Stderr, "no shared matches with %q\n", name)
		}
		return
	}
	for _, side := range sides {
		cHeader.Printf("\n%ss\n", side)
		report.PrintDuels(os.Stdout, res.Side(side), constants.DefaultListLimit)
	}
}

func (s *shellSession) milestones() {
	ms, ok := s.matches()
	if !ok {
		return
	}
	goals, err := s.db.ListGoals()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	achievements, err := s.db.ListAchievements()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintMilestones(os.Stdout, s.an.Milestones(s.ctx, ms, goals, achievements))
}

func (s *shellSession) goals() {
	goals, err := s.db.ListGoals()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(goals) == 0 {
		cMuted.Println("No goals yet.")
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	report.PrintGoalProgress(os.Stdout, s.an.GoalProgress(s.ctx, ms, goals))
}

func (s *shellSession) achievements() {
	achievements, err := s.db.ListAchievements()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	ms, ok := s.matches()
	if !ok {
		return
	}
	report.PrintAchievements(os.Stdout, s.an.AchievementProgress(s.ctx, ms, achievements))
}
