package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Show or set your player name",
	Long: `The profile name is how you appear in team sheets. It keeps you out of your own
teammate ranking when neither --player nor $FOOTSTATS_PLAYER is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 0 {
		name, err := db.ProfileName()
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		if name == "" {
			fmt.Fprintln(os.Stdout, "No profile name set. Run 'footstats profile <name>'.")
			return nil
		}
		fmt.Fprintln(os.Stdout, name)
		return nil
	}
	if err := db.SetProfileName(args[0]); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Profile name set to %q\n", args[0])
	return nil
}
