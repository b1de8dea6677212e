package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level overview of the ledger.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of every stored match",
	Long: `Display aggregate statistics over all stored matches: overall record, date range,
a per-year breakdown and a per-tournament breakdown.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'footstats import <matches.json>' to add one.")
		return nil
	}
	asc := ledger.SortedAscending(ms)
	desc := ledger.SortedDescending(ms)

	profile, err := db.ProfileName()
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	version, err := db.Version()
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== Summary ===\n\n")
	if profile != "" {
		fmt.Fprintf(os.Stdout, "  Player        : %s\n", profile)
	}
	fmt.Fprintf(os.Stdout, "  Matches stored: %d\n", len(ms))
	fmt.Fprintf(os.Stdout, "  Date range    : %s → %s\n", asc[0].Date, asc[len(asc)-1].Date)
	fmt.Fprintf(os.Stdout, "  Seasons       : %d\n", len(ledger.Years(ms)))
	fmt.Fprintf(os.Stdout, "  Revision      : %d\n", version)
	report.PrintTotals(os.Stdout, aggregator.Aggregate(ms), aggregator.FormGuide(desc, constants.FormGuideLength))

	fmt.Fprintf(os.Stdout, "--- By year ---\n\n")
	report.PrintYearTotals(os.Stdout, aggregator.ByYear(ms))

	if ts := aggregator.ByTournament(ms); len(ts) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- By tournament ---\n\n")
		report.PrintTournamentTotals(os.Stdout, ts)
	}
	return nil
}
