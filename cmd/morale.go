package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/report"
)

var (
	moraleYear int
	moraleWith string
)

var moraleCmd = &cobra.Command{
	Use:   "morale",
	Short: "Estimate current form from the most recent matches",
	Long: `Estimate form (0-100) from the last five matches compared with the last twenty.
With --year the estimate is taken as of the end of that year.`,
	Args: cobra.NoArgs,
	RunE: runMorale,
}

func init() {
	moraleCmd.Flags().IntVar(&moraleYear, "year", ledger.AllYears, "estimate as of the end of this year")
	moraleCmd.Flags().StringVar(&moraleWith, "with", "", "only matches this player took part in")
}

func runMorale(cmd *cobra.Command, args []string) error {
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
	m := an.Morale(ctx, ms, engine.Filter{Year: moraleYear, Player: moraleWith})
	report.PrintMorale(os.Stdout, m)
	return nil
}
