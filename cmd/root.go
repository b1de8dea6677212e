package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/config"
	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/logger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/storage"
)

var (
	dbPath     string
	viewerName string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "footstats",
	Short: "Amateur football performance analytics",
	Long: `Track the matches you play and get records, streaks, form, season ratings,
teammate/opponent impact and goal milestones computed from them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default $FOOTSTATS_DB or ~/.footstats/footstats.db)")
	rootCmd.PersistentFlags().StringVar(&viewerName, "player", "", "your name as it appears in team sheets (default $FOOTSTATS_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(moraleCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(duelsCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(achievementCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration and lets explicit flags win over the environment.
func setup(_ *cobra.Command, _ []string) error {
	cfg = config.Load(logger.New(os.Getenv("LOG_LEVEL"), os.Stderr))
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if viewerName != "" {
		cfg.Player = viewerName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log = logger.New(cfg.LogLevel, os.Stderr)
	return nil
}

// openDB opens the configured database, creating its directory on first use.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newAnalyzer returns an analyzer cached in Redis when REDIS_ADDR is set, in memory
// otherwise. An unreachable Redis degrades to the memory store. The returned func
// releases the Redis connection.
func newAnalyzer(ctx context.Context) (*engine.Analyzer, func()) {
	weights := duel.DefaultWeights()
	weights.ConfidenceFactor = cfg.DuelConfidenceFactor
	opts := []engine.Option{engine.WithWeights(weights)}

	if cfg.RedisAddr == "" {
		return engine.New(engine.NewMemoryStore(), log, opts...), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: constants.RedisDialTimeout,
	})
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis client")
		}
	}
	pingCtx, cancel := context.WithTimeout(ctx, constants.RedisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		closeClient()
		return engine.New(engine.NewMemoryStore(), log, opts...), func() {}
	}
	log.Debug().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	return engine.New(engine.NewRedisStore(client, cfg.CacheTTL), log, opts...), closeClient
}

// loadMatches reads every stored match.
func loadMatches(db *storage.DB) ([]model.Match, error) {
	ms, err := db.ListMatches()
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return ms, nil
}

// viewer resolves the name the duel scorer should treat as "me": the --player flag or
// FOOTSTATS_PLAYER, falling back to the stored profile name.
func viewer(db *storage.DB) string {
	if cfg.Player != "" {
		return cfg.Player
	}
	name, err := db.ProfileName()
	if err != nil {
		log.Warn().Err(err).Msg("read profile name")
		return ""
	}
	return name
}
