package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/model"
)

var importSkipInvalid bool

var importCmd = &cobra.Command{
	Use:   "import <file.json> [file.json...]",
	Short: "Import matches from JSON files",
	Long: `Import one or more JSON files, each holding an array of matches ("-" reads stdin).

A match looks like:
  {"id": "optional", "date": "2024-03-09", "result": "WIN", "myGoals": 2, "myAssists": 1,
   "goalDiff": 3, "tournament": "Sunday League", "notes": "",
   "myTeamPlayers": [{"name": "Ana", "goals": 1, "assists": 0}],
   "opponentPlayers": [{"name": "Bruno", "goals": 0, "assists": 0}]}

The result may be WIN, LOSS or DRAW, or a shorthand such as "w" or "draw".
Matches without an id get one generated. Re-importing an id replaces the stored match.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importSkipInvalid, "skip-invalid", false, "store the valid matches even if some fail validation")
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		valid []model.Match
		errs  []error
	)
	for _, path := range args {
		ms, err := readMatches(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		for i, m := range ms {
			if err := validateImported(m, i); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			valid = append(valid, m)
		}
	}

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		if !importSkipInvalid || len(valid) == 0 {
			return fmt.Errorf("nothing imported:\n%w", joined)
		}
		fmt.Fprintf(os.Stderr, "skipping %d invalid record(s):\n%v\n", len(errs), joined)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stored, err := db.InsertMatches(valid)
	if err != nil {
		return fmt.Errorf("store matches: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Imported %d match(es).\n", len(stored))
	return nil
}

func readMatches(path string) ([]model.Match, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var ms []model.Match
	if err := json.NewDecoder(r).Decode(&ms); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ms, nil
}

// validateImported checks m; a missing id is allowed since storage assigns one.
func validateImported(m model.Match, i int) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("#%d", i+1)
	}
	return m.Validate()
}
