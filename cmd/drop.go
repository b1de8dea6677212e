package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the match database",
	Long: `Delete the SQLite database holding matches, goals, achievements and the profile.

Without --force only the path that would be removed is printed.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking twice")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if cfg.DBPath == ":memory:" {
		fmt.Fprintln(os.Stdout, "In-memory database, nothing to drop.")
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "Would delete %s. Pass --force to go ahead.\n", cfg.DBPath)
		return nil
	}
	// SQLite may leave write-ahead files next to the database.
	for _, path := range []string{cfg.DBPath, cfg.DBPath + "-wal", cfg.DBPath + "-shm"} {
		err := os.Remove(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if path == cfg.DBPath {
				fmt.Fprintln(os.Stdout, "No database found, nothing to drop.")
				return nil
			}
		case err != nil:
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	log.Info().Str("path", cfg.DBPath).Msg("database dropped")
	fmt.Fprintf(os.Stdout, "Dropped %s\n", cfg.DBPath)
	return nil
}
