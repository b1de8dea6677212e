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

var (
	listYear  int
	listWith  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listYear, "year", ledger.AllYears, "only matches played in this year")
	listCmd.Flags().StringVar(&listWith, "with", "", "only matches this player took part in (exact name)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", constants.DefaultListLimit, "maximum rows to print (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	all, err := loadMatches(db)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'footstats import <matches.json>' to add some.")
		return nil
	}

	ms := ledger.FilterByYear(all, listYear)
	if listWith != "" {
		ms = ledger.FilterByPlayerInvolved(ms, listWith)
	}
	desc := ledger.SortedDescending(ms)

	report.PrintTotals(os.Stdout, aggregator.Aggregate(desc), aggregator.FormGuide(desc, constants.FormGuideLength))
	if listLimit > 0 && len(desc) > listLimit {
		desc = desc[:listLimit]
	}
	report.PrintMatchList(os.Stdout, desc)
	return nil
}
