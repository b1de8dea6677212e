package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/progress"
	"github.com/pable/footstats/internal/report"
	"github.com/pable/footstats/internal/storage"
)

var (
	achName        string
	achDescription string
	achMetric      string
	achTiers       []string
	achLock        bool
)

var achievementCmd = &cobra.Command{
	Use:     "achievement",
	Aliases: []string{"ach"},
	Short:   "Manage tiered achievements",
}

var achievementAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tiered achievement",
	Long: fmt.Sprintf(`Add an achievement with one or more tiers, lowest first. Each --tier is name=target.

Metrics: %s`, metricList()),
	Example: `  footstats achievement add --name "Sniper" --metric total_goals --tier bronze=10 --tier silver=25 --tier gold=50`,
	Args:    cobra.NoArgs,
	RunE:    runAchievementAdd,
}

var achievementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List achievements with the tier reached",
	Args:  cobra.NoArgs,
	RunE:  runAchievementList,
}

var achievementUnlockCmd = &cobra.Command{
	Use:   "unlock [id-prefix]",
	Short: "Mark achievements as unlocked",
	Long: `Without an id every achievement whose first tier is reached is marked unlocked.
With an id that achievement is marked regardless of progress (--lock clears it).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAchievementUnlock,
}

func init() {
	achievementAddCmd.Flags().StringVar(&achName, "name", "", "achievement name")
	achievementAddCmd.Flags().StringVar(&achDescription, "description", "", "optional description")
	achievementAddCmd.Flags().StringVar(&achMetric, "metric", "", "metric to track")
	achievementAddCmd.Flags().StringArrayVar(&achTiers, "tier", nil, "tier as name=target (repeatable, ascending)")
	achievementAddCmd.MarkFlagRequired("name")
	achievementAddCmd.MarkFlagRequired("metric")
	achievementAddCmd.MarkFlagRequired("tier")

	achievementUnlockCmd.Flags().BoolVar(&achLock, "lock", false, "clear the unlocked flag instead")

	achievementCmd.AddCommand(achievementAddCmd)
	achievementCmd.AddCommand(achievementListCmd)
	achievementCmd.AddCommand(achievementUnlockCmd)
}

func parseTiers(specs []string) ([]model.AchievementTier, error) {
	var (
		out  []model.AchievementTier
		errs []error
	)
	for _, s := range specs {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			errs = append(errs, fmt.Errorf("tier %q: want name=target", s))
			continue
		}
		target, err := strconv.ParseFloat(value, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("tier %q: %w", s, err))
			continue
		}
		out = append(out, model.AchievementTier{Name: name, Target: target})
	}
	return out, errors.Join(errs...)
}

func runAchievementAdd(cmd *cobra.Command, args []string) error {
	tiers, err := parseTiers(achTiers)
	if err != nil {
		return err
	}
	a := model.CustomAchievement{
		Name:        achName,
		Description: achDescription,
		Metric:      model.Metric(achMetric),
		Tiers:       tiers,
	}
	if err := a.Validate(); err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err = db.InsertAchievement(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added achievement %s (%s, %d tiers)\n", a.ID, a.Name, len(a.Tiers))
	return nil
}

func runAchievementList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	achievements, err := db.ListAchievements()
	if err != nil {
		return fmt.Errorf("list achievements: %w", err)
	}
	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	if len(achievements) == 0 {
		fmt.Fprintln(os.Stdout, "No achievements defined, showing the built-in catalog.")
	}
	ctx := cmd.Context()
	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	report.PrintAchievements(os.Stdout, an.AchievementProgress(ctx, ms, achievements))
	return nil
}

func runAchievementUnlock(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	achievements, err := db.ListAchievements()
	if err != nil {
		return fmt.Errorf("list achievements: %w", err)
	}

	if len(args) == 1 {
		ids := make([]string, len(achievements))
		for i, a := range achievements {
			ids[i] = a.ID
		}
		id, err := resolvePrefix(args[0], ids)
		if err != nil {
			return err
		}
		if _, err := db.SetAchievementUnlocked(id, !achLock); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Achievement %s unlocked: %t\n", id, !achLock)
		return nil
	}

	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	n, err := unlockSatisfied(db, achievements, ms)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d achievement(s) newly unlocked.\n", n)
	return nil
}

// unlockSatisfied flags every locked achievement whose first tier is reached.
func unlockSatisfied(db *storage.DB, achievements []model.CustomAchievement, ms []model.Match) (int, error) {
	n := 0
	for _, a := range achievements {
		if a.Unlocked || !progress.Satisfies(a, ms) {
			continue
		}
		if _, err := db.SetAchievementUnlocked(a.ID, true); err != nil {
			return n, err
		}
		fmt.Fprintf(os.Stdout, "Unlocked: %s\n", a.Name)
		n++
	}
	return n, nil
}
