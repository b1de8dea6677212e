package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/footstats/internal/aggregator"
	"github.com/pable/footstats/internal/constants"
	"github.com/pable/footstats/internal/engine"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/report"
	"github.com/pable/footstats/internal/storage"
	"github.com/pable/footstats/internal/streak"
)

const analyzeSystemPrompt = `You are a performance coach for an amateur footballer. You are given structured
statistics computed from the player's own match log and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and encouraging, and focus on patterns the player can act on.

Glossary:
- Points: 3 per win, 1 per draw. Efficiency: points won / points available.
- Contributions: goals + assists.
- Morale: 0-100 form score from the last 5 matches against the last 20. Trend compares
  with the score one match earlier.
- Season tiers, best first: GOAT, Legend, Elite, Star, Solid, Regular, Developing, Struggling.
- Impact score: per co-player, results and contributions in shared matches divided by
  (matches + 5). Teammates with a high score are good partnerships; opponents with a high
  score are the ones the player does well against.
- Records marked ongoing are being equalled or beaten by the current run.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeYear   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI commentary on your computed stats (requires ANTHROPIC_API_KEY)",
	Long: `Ask a question about your performance. The computed analytics (totals, records,
streaks, morale, season ratings, top co-players and goal progress) are sent as
context; raw match notes are not.`,
	Example: `  footstats analyze "Who should I try to play with more often?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeYear, "year", ledger.AllYears, "restrict the context to one year")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ms, err := loadMatches(db)
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		return fmt.Errorf("no matches stored yet")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.AnalyzeTimeout)
	defer cancel()

	an, closeCache := newAnalyzer(ctx)
	defer closeCache()
	contextJSON, err := buildAnalyzeContext(ctx, an, db, ms, analyzeYear)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	log.Debug().Int("bytes", len(contextJSON)).Msg("analysis context built")

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = cfg.AnthropicAPIKey
	}
	return callAnthropic(ctx, apiKey, analyzeModel, contextJSON, question)
}

// buildAnalyzeContext serialises the computed analytics into compact JSON.
func buildAnalyzeContext(ctx context.Context, an *engine.Analyzer, db *storage.DB, ms []model.Match, year int) (string, error) {
	f := engine.Filter{Year: year}
	scoped := ledger.FilterByYear(ms, year)
	desc := ledger.SortedDescending(scoped)
	agg := aggregator.Aggregate(scoped)

	recs := an.Records(ctx, ms, f)
	current := an.Streaks(ctx, ms, f)
	records := make(map[string]any, len(recs))
	for _, k := range model.RecordKinds {
		records[report.RecordLabel(k)] = map[string]int{"value": recs[k].Value, "times": recs[k].Count}
	}
	streaks := make(map[string]int)
	for _, c := range streak.Conditions {
		if current.Active(c) {
			streaks[c.String()] = current[c]
		}
	}

	seasons, err := an.Seasons(ctx, ms)
	if err != nil {
		return "", err
	}

	duels := an.Duels(ctx, ms, f, viewer(db))
	top := func(ss []model.CoPlayerStats) []map[string]any {
		n := min(5, len(ss))
		out := make([]map[string]any, 0, n)
		for _, s := range ss[:n] {
			out = append(out, map[string]any{
				"name":        s.Name,
				"matches":     s.Matches,
				"w_d_l":       fmt.Sprintf("%d-%d-%d", s.Wins, s.Draws, s.Losses),
				"impact":      round2(s.ImpactScore),
				"my_ga_per_m": round2(s.ContributionsPerMatch()),
				"rank_change": s.RankChange,
			})
		}
		return out
	}

	goals, err := db.ListGoals()
	if err != nil {
		return "", err
	}
	goalDoc := make([]map[string]any, 0, len(goals))
	for _, g := range an.GoalProgress(ctx, ms, goals) {
		goalDoc = append(goalDoc, map[string]any{
			"title":     g.Goal.Title,
			"metric":    g.Goal.Metric,
			"current":   g.Progress.Current,
			"target":    g.Progress.Target,
			"completed": g.Progress.Completed,
		})
	}

	scope := "all-time"
	if year != ledger.AllYears {
		scope = fmt.Sprint(year)
	}
	doc := map[string]any{
		"scope": scope,
		"totals": map[string]any{
			"matches":         agg.Matches,
			"w_d_l":           fmt.Sprintf("%d-%d-%d", agg.Wins, agg.Draws, agg.Losses),
			"points":          agg.Points(),
			"efficiency_pct":  round2(100 * agg.Efficiency()),
			"goals":           agg.Goals,
			"assists":         agg.Assists,
			"goals_per_match": round2(agg.GoalsPerMatch()),
			"goal_diff":       agg.GoalDiff,
			"form":            aggregator.FormGuide(desc, constants.FormGuideLength),
		},
		"records":        records,
		"active_streaks": streaks,
		"morale":         an.Morale(ctx, ms, f),
		"seasons":        seasons,
		"top_teammates":  top(duels.Teammates),
		"top_opponents":  top(duels.Opponents),
		"goals":          goalDoc,
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: constants.AnalyzeMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
