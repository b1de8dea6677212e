package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics as a read-only JSON API",
	Long: `Serve records, streaks, morale, seasons, duels, milestones, goals and achievements
under /api/v1. Every endpoint accepts ?year= and ?player= filters where they apply.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $SERVER_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	srv := server.New(db, an, log, cfg.Player)
	return srv.Run(ctx, cfg.ServerAddr)
}
