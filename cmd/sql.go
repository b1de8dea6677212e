package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print the rows.

Tables:
  matches(id, match_date, result, goals, assists, goal_diff, notes, tournament)
  match_players(match_id, side, position, name, goals, assists)
    side is 'teammate' or 'opponent'
  goals(id, title, metric, target, year, created_at)
  achievements(id, name, description, metric, tiers, unlocked, created_at)
    tiers is a JSON array of {"name", "target"}
  meta(key, value)

Example: footstats sql "SELECT name, COUNT(*) FROM match_players WHERE side = 'teammate' GROUP BY name ORDER BY 2 DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		log.Debug().Err(err).Msg("raw query failed")
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
