package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/report"
)

var (
	recordsYear int
	recordsWith string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show personal records (longest runs, best single matches, margins)",
	Long: `Show historical records. Records marked with * are being matched or beaten by the
current run.`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&recordsYear, "year", ledger.AllYears, "restrict to one year")
	recordsCmd.Flags().StringVar(&recordsWith, "with", "", "restrict to matches this player took part in")
}

func runRecords(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	f := engine.Filter{Year: recordsYear, Player: recordsWith}

	recs := an.Records(ctx, ms, f)
	current := an.Streaks(ctx, ms, f)
	if recordsYear != ledger.AllYears {
		fmt.Fprintf(os.Stdout, "\nRecords for %d\n", recordsYear)
	}
	report.PrintRecords(os.Stdout, recs, current)
	return nil
}
