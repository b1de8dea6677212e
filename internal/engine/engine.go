// Package engine memoizes the analytics packages behind one facade. Results are cached
// by collection fingerprint, operation and filters; the analytics themselves stay pure.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pable/footstats/internal/duel"
	"github.com/pable/footstats/internal/ledger"
	"github.com/pable/footstats/internal/milestone"
	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/morale"
	"github.com/pable/footstats/internal/progress"
	"github.com/pable/footstats/internal/rating"
	"github.com/pable/footstats/internal/streak"
)

// Filter narrows the collection before an operation runs.
type Filter struct {
	Year   int    `json:"year"`   // ledger.AllYears for no filter
	Player string `json:"player"` // only matches this co-player appears in
}

func (f Filter) apply(ms []model.Match) []model.Match {
	out := ledger.FilterByYear(ms, f.Year)
	if f.Player != "" {
		out = ledger.FilterByPlayerInvolved(out, f.Player)
	}
	return out
}

// GoalStatus pairs a goal with its evaluated progress.
type GoalStatus struct {
	Goal     model.Goal     `json:"goal"`
	Progress model.Progress `json:"progress"`
}

// Analyzer is safe for concurrent use.
type Analyzer struct {
	store   Store
	log     zerolog.Logger
	weights duel.Weights
	now     func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWeights replaces the duel scoring constants.
func WithWeights(w duel.Weights) Option { return func(a *Analyzer) { a.weights = w } }

// WithClock sets the clock used to tell the running year from closed ones.
func WithClock(now func() time.Time) Option { return func(a *Analyzer) { a.now = now } }

func New(store Store, log zerolog.Logger, opts ...Option) *Analyzer {
	if store == nil {
		store = NewMemoryStore()
	}
	a := &Analyzer{store: store, log: log, weights: duel.DefaultWeights(), now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Analyzer) key(ms []model.Match, op string, parts ...any) Key {
	d := xxhash.New()
	d.WriteString(op)
	for _, p := range parts {
		b, _ := json.Marshal(p)
		d.Write([]byte{0})
		d.Write(b)
	}
	return Key{Version: ledger.Fingerprint(ms), Op: d.Sum64()}
}

// memo returns the cached value for k or computes and stores it. Cache failures are
// logged and never surface to the caller.
func memo[T any](ctx context.Context, a *Analyzer, k Key, op string, compute func() T) T {
	if data, err := a.store.Get(ctx, k); err != nil {
		a.log.Warn().Err(err).Str("op", op).Msg("cache get failed")
	} else if data != nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			a.log.Debug().Str("op", op).Str("key", k.String()).Msg("cache hit")
			return v
		}
		a.log.Warn().Str("op", op).Msg("discarding undecodable cache entry")
	}

	a.log.Debug().Str("op", op).Str("key", k.String()).Msg("cache miss")
	v := compute()
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Warn().Err(err).Str("op", op).Msg("encode cache entry")
		return v
	}
	if err := a.store.Set(ctx, k, data); err != nil {
		a.log.Warn().Err(err).Str("op", op).Msg("cache set failed")
	}
	return v
}

// Records computes historical records over the filtered collection.
func (a *Analyzer) Records(ctx context.Context, ms []model.Match, f Filter) model.HistoricalRecords {
	return memo(ctx, a, a.key(ms, "records", f), "records", func() model.HistoricalRecords {
		return streak.Historical(f.apply(ms))
	})
}

// Streaks computes the current run of every condition.
func (a *Analyzer) Streaks(ctx context.Context, ms []model.Match, f Filter) streak.Streaks {
	return memo(ctx, a, a.key(ms, "streaks", f), "streaks", func() streak.Streaks {
		return streak.CurrentAll(ledger.SortedDescending(f.apply(ms)))
	})
}

// Morale estimates form. With a year set the snapshot is taken as of that year's end,
// so earlier seasons see the form they had at the time.
func (a *Analyzer) Morale(ctx context.Context, ms []model.Match, f Filter) model.PlayerMorale {
	return memo(ctx, a, a.key(ms, "morale", f), "morale", func() model.PlayerMorale {
		hist := ms
		if f.Year != ledger.AllYears {
			hist = ledger.AsOf(ms, ledger.YearEnd(f.Year))
		}
		if f.Player != "" {
			hist = ledger.FilterByPlayerInvolved(hist, f.Player)
		}
		return morale.Estimate(ledger.SortedDescending(hist))
	})
}

// Season rates one year. A year that has not ended is flagged InProgress.
func (a *Analyzer) Season(ctx context.Context, ms []model.Match, year int) model.SeasonRating {
	r := memo(ctx, a, a.key(ms, "season", year), "season", func() model.SeasonRating {
		r := rating.Classify(ledger.FilterByYear(ms, year))
		r.Year = year
		return r
	})
	r.InProgress = !a.Closed(year)
	return r
}

// Closed reports whether year has ended.
func (a *Analyzer) Closed(year int) bool { return year < a.now().Year() }

// Seasons rates every year present, most recent first, one goroutine per year.
func (a *Analyzer) Seasons(ctx context.Context, ms []model.Match) ([]model.SeasonRating, error) {
	years := ledger.Years(ms)
	out := make([]model.SeasonRating, len(years))
	g, ctx := errgroup.WithContext(ctx)
	for i, y := range years {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.Season(ctx, ms, y)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Duels ranks co-players. viewer is excluded from the teammate ranking.
func (a *Analyzer) Duels(ctx context.Context, ms []model.Match, f Filter, viewer string) duel.Result {
	return memo(ctx, a, a.key(ms, "duels", f, viewer, a.weights), "duels", func() duel.Result {
		return duel.Score(f.apply(ms), viewer, a.weights)
	})
}

// Milestones builds the timeline grouped by completion year. With no achievements
// defined the built-in catalog is used.
func (a *Analyzer) Milestones(ctx context.Context, ms []model.Match, goals []model.Goal, achievements []model.CustomAchievement) []model.MilestoneYear {
	if len(achievements) == 0 {
		achievements = milestone.DefaultAchievements()
	}
	return memo(ctx, a, a.key(ms, "milestones", goals, achievements), "milestones", func() []model.MilestoneYear {
		return milestone.GroupByYear(milestone.Build(goals, achievements, ms))
	})
}

// GoalProgress evaluates every goal over the full collection.
func (a *Analyzer) GoalProgress(ctx context.Context, ms []model.Match, goals []model.Goal) []GoalStatus {
	return memo(ctx, a, a.key(ms, "goals", goals), "goals", func() []GoalStatus {
		out := make([]GoalStatus, len(goals))
		for i, g := range goals {
			out[i] = GoalStatus{Goal: g, Progress: progress.ForGoal(g, ms)}
		}
		return out
	})
}

// AchievementProgress evaluates every achievement over the full collection.
func (a *Analyzer) AchievementProgress(ctx context.Context, ms []model.Match, achievements []model.CustomAchievement) []model.AchievementProgress {
	if len(achievements) == 0 {
		achievements = milestone.DefaultAchievements()
	}
	return memo(ctx, a, a.key(ms, "achievements", achievements), "achievements", func() []model.AchievementProgress {
		out := make([]model.AchievementProgress, len(achievements))
		for i, ach := range achievements {
			out[i] = progress.ForAchievement(ach, ms)
		}
		return out
	})
}
