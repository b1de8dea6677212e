package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/report"
)

var seasonAll bool

var seasonCmd = &cobra.Command{
	Use:   "season [year]",
	Short: "Rate closed seasons against the tier table",
	Long: `Rate seasons from GOAT down to Struggling by points efficiency and output.

Without a year every closed season is listed; --all also rates the season in progress.
With a year that season's verdict is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeason,
}

func init() {
	seasonCmd.Flags().BoolVar(&seasonAll, "all", false, "include the season in progress")
}

func runSeason(cmd *cobra.Command, args []string) error {
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

	if len(args) == 1 {
		year, err := strconv.Atoi(args[0])
		if err != nil || year < 1000 || year > 9999 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		r := an.Season(ctx, ms, year)
		report.PrintSeasonDetail(os.Stdout, r)
		return nil
	}

	all, err := an.Seasons(ctx, ms)
	if err != nil {
		return fmt.Errorf("rate seasons: %w", err)
	}
	rs := make([]model.SeasonRating, 0, len(all))
	for _, r := range all {
		if seasonAll || !r.InProgress {
			rs = append(rs, r)
		}
	}
	if len(rs) == 0 {
		fmt.Fprintln(os.Stdout, "No closed seasons yet. Use --all to rate the season in progress.")
		return nil
	}
	report.PrintSeasons(os.Stdout, rs)
	return nil
}
