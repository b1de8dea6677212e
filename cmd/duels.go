package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/report"
)

var (
	duelsYear  int
	duelsSide  string
	duelsWith  string
	duelsLimit int
)

var duelsCmd = &cobra.Command{
	Use:   "duels",
	Short: "Rank teammates and opponents by their impact on your results",
	Long: `Rank every co-player by impact score: results and contributions in the matches you
shared, damped by a confidence factor so a single match cannot top the table.
RANK compares each position with the ranking before the most recent match.

Your own name (--player, $FOOTSTATS_PLAYER or the stored profile) is left out of
the teammate table.`,
	Args: cobra.NoArgs,
	RunE: runDuels,
}

func init() {
	duelsCmd.Flags().IntVar(&duelsYear, "year", ledger.AllYears, "restrict to one year")
	duelsCmd.Flags().StringVar(&duelsSide, "side", "", "teammates or opponents (default both)")
	duelsCmd.Flags().StringVar(&duelsWith, "with", "", "drill into one co-player (exact name)")
	duelsCmd.Flags().IntVarP(&duelsLimit, "limit", "n", constants.DefaultListLimit, "maximum rows per table (0 = all)")
}

func parseSide(s string) ([]model.Side, error) {
	switch s {
	case "":
		return []model.Side{model.SideTeammate, model.SideOpponent}, nil
	case "teammates", "teammate", "with":
		return []model.Side{model.SideTeammate}, nil
	case "opponents", "opponent", "vs":
		return []model.Side{model.SideOpponent}, nil
	}
	return nil, fmt.Errorf("invalid --side %q: want teammates or opponents", s)
}

func runDuels(cmd *cobra.Command, args []string) error {
	sides, err := parseSide(duelsSide)
	if err != nil {
		return err
	}

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
	res := an.Duels(ctx, ms, engine.Filter{Year: duelsYear}, viewer(db))

	if duelsWith != "" {
		found := false
		for _, side := range sides {
			s, ok := duel.Find(res.Side(side), duelsWith)
			if !ok {
				continue
			}
			found = true
			report.PrintCoPlayerDetail(os.Stdout, s, sharedMatches(ms, s.MatchIDs))
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No shared matches with %q\n", duelsWith)
		}
		return nil
	}

	for _, side := range sides {
		stats := res.Side(side)
		if side == model.SideTeammate {
			fmt.Fprintf(os.Stdout, "\n--- Teammates (%d) ---\n\n", len(stats))
		} else {
			fmt.Fprintf(os.Stdout, "\n--- Opponents (%d) ---\n\n", len(stats))
		}
		if len(stats) == 0 {
			fmt.Fprintln(os.Stdout, "—")
			continue
		}
		report.PrintDuels(os.Stdout, stats, duelsLimit)
	}
	return nil
}

// sharedMatches returns the matches whose ids are listed, most recent first.
func sharedMatches(ms []model.Match, ids []string) []model.Match {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	var out []model.Match
	for _, m := range ms {
		if _, ok := keep[m.ID]; ok {
			out = append(out, m)
		}
	}
	return ledger.SortedDescending(out)
}
