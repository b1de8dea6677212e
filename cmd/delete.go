package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm <match-id>",
	Aliases: []string{"delete"},
	Short:   "Delete one stored match",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.DeleteMatch(args[0])
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "No match found with id %q\n", args[0])
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted match %s\n", args[0])
	return nil
}
