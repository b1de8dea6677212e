package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/report"
)

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Show when each goal and achievement tier was first reached",
	Long: `Replay the match history to find the match on which every goal target and
achievement tier was reached, grouped by year. The built-in achievement catalog
is used until you define your own with 'footstats achievement add'.`,
	Args: cobra.NoArgs,
	RunE: runMilestones,
}

func runMilestones(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	goals, err := db.ListGoals()
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	achievements, err := db.ListAchievements()
	if err != nil {
		return fmt.Errorf("list achievements: %w", err)
	}
	ctx := cmd.Context()
	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	report.PrintMilestones(os.Stdout, an.Milestones(ctx, ms, goals, achievements))
	return nil
}
