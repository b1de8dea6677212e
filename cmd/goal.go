package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/report"
)

var (
	goalTitle  string
	goalMetric string
	goalTarget float64
	goalYear   int
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage personal goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a goal",
	Long: fmt.Sprintf(`Add a numeric goal evaluated over all matches, or one year's with --year.

Metrics: %s`, metricList()),
	Example: `  footstats goal add --title "20 goals this year" --metric total_goals --target 20 --year 2025`,
	Args:    cobra.NoArgs,
	RunE:    runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with their progress",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var goalRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRm,
}

func init() {
	goalAddCmd.Flags().StringVar(&goalTitle, "title", "", "goal title")
	goalAddCmd.Flags().StringVar(&goalMetric, "metric", "", "metric to track")
	goalAddCmd.Flags().Float64Var(&goalTarget, "target", 0, "target value")
	goalAddCmd.Flags().IntVar(&goalYear, "year", 0, "only count matches from this year (default all-time)")
	goalAddCmd.MarkFlagRequired("title")
	goalAddCmd.MarkFlagRequired("metric")
	goalAddCmd.MarkFlagRequired("target")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalRmCmd)
}

func metricList() string {
	names := make([]string, len(model.Metrics))
	for i, m := range model.Metrics {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	g := model.Goal{
		Title:  goalTitle,
		Metric: model.Metric(goalMetric),
		Target: goalTarget,
		Year:   goalYear,
	}
	if err := g.Validate(); err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err = db.InsertGoal(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added goal %s (%s)\n", g.ID, g.Title)
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.ListGoals()
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	if len(goals) == 0 {
		fmt.Fprintln(os.Stdout, "No goals yet. Run 'footstats goal add --help' to create one.")
		return nil
	}
	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	report.PrintGoalProgress(os.Stdout, an.GoalProgress(ctx, ms, goals))
	return nil
}

func runGoalRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := db.ListGoals()
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	id, err := resolvePrefix(args[0], ids)
	if err != nil {
		return err
	}
	if _, err := db.DeleteGoal(id); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed goal %s\n", id)
	return nil
}

// resolvePrefix finds the single id starting with prefix.
func resolvePrefix(prefix string, ids []string) (string, error) {
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no id starts with %q", prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("prefix %q is ambiguous (%d matches)", prefix, len(found))
	}
}
