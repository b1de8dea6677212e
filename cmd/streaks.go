package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/report"
)

var streaksYear int

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show the current run of every streak condition",
	Args:  cobra.NoArgs,
	RunE:  runStreaks,
}

func init() {
	streaksCmd.Flags().IntVar(&streaksYear, "year", ledger.AllYears, "restrict to one year")
}

func runStreaks(cmd *cobra.Command, args []string) error {
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
	report.PrintStreaks(os.Stdout, an.Streaks(ctx, ms, engine.Filter{Year: streaksYear}))
	return nil
}
