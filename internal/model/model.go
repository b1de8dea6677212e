package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Result is the outcome of a match from the viewing player's side.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultDraw Result = "DRAW"
)

func (r Result) String() string {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return string(r)
	default:
		return "?"
	}
}

// Points returns league points for the result (3 for a win, 1 for a draw).
func (r Result) Points() int {
	switch r {
	case ResultWin:
		return 3
	case ResultDraw:
		return 1
	default:
		return 0
	}
}

// Short returns the one-letter form used in form guides ("W", "D", "L").
func (r Result) Short() string {
	switch r {
	case ResultWin:
		return "W"
	case ResultDraw:
		return "D"
	case ResultLoss:
		return "L"
	default:
		return "?"
	}
}

// ParseResult accepts the stored upper-case form as well as w/d/l shorthands.
func ParseResult(s string) (Result, bool) {
	switch s {
	case "WIN", "win", "W", "w":
		return ResultWin, true
	case "LOSS", "loss", "L", "l":
		return ResultLoss, true
	case "DRAW", "draw", "D", "d":
		return ResultDraw, true
	}
	return "", false
}

// UnmarshalJSON normalises shorthands through ParseResult. Unknown values are kept as
// given so Validate can report them.
func (r *Result) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, ok := ParseResult(s); ok {
		*r = parsed
		return nil
	}
	*r = Result(s)
	return nil
}

// ---- Match records ----

// PlayerPerformance is one co-listed player's line in a match.
type PlayerPerformance struct {
	Name    string `json:"name"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

// Match is one played game. Matches are read-only inputs to every analytics package.
type Match struct {
	ID         string              `json:"id"`
	Date       string              `json:"date"` // YYYY-MM-DD, local calendar day
	Result     Result              `json:"result"`
	Goals      int                 `json:"myGoals"`
	Assists    int                 `json:"myAssists"`
	GoalDiff   int                 `json:"goalDiff"` // caller supplied, not derived
	Notes      string              `json:"notes,omitempty"`
	Tournament string              `json:"tournament,omitempty"`
	Teammates  []PlayerPerformance `json:"myTeamPlayers,omitempty"`
	Opponents  []PlayerPerformance `json:"opponentPlayers,omitempty"`
}

func (m *Match) IsWin() bool  { return m.Result == ResultWin }
func (m *Match) IsLoss() bool { return m.Result == ResultLoss }
func (m *Match) IsDraw() bool { return m.Result == ResultDraw }

// Contributions is goals plus assists.
func (m *Match) Contributions() int { return m.Goals + m.Assists }

// Year returns the calendar year of the match date, or 0 if the date is malformed.
func (m *Match) Year() int {
	if len(m.Date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.Date[:4])
	if err != nil {
		return 0
	}
	return y
}

// ---- User-defined targets ----

// Metric names the statistic a goal or achievement is evaluated on.
type Metric string

const (
	MetricTotalGoals            Metric = "total_goals"
	MetricTotalAssists          Metric = "total_assists"
	MetricTotalContributions    Metric = "total_contributions"
	MetricWins                  Metric = "wins"
	MetricMatchesPlayed         Metric = "matches_played"
	MetricUnbeatenMatches       Metric = "draws_or_wins"
	MetricHatTricks             Metric = "hat_tricks"
	MetricBraces                Metric = "braces"
	MetricLongestWinStreak      Metric = "longest_win_streak"
	MetricLongestUnbeatenStreak Metric = "longest_unbeaten_streak"
	MetricLongestScoringStreak  Metric = "longest_scoring_streak"
	MetricMaxGoalsInMatch       Metric = "max_goals_in_match"
	MetricWinRate               Metric = "win_rate"
	MetricGoalsPerMatch         Metric = "goals_per_match"
)

// Metrics lists every supported metric in display order.
var Metrics = []Metric{
	MetricTotalGoals, MetricTotalAssists, MetricTotalContributions,
	MetricWins, MetricMatchesPlayed, MetricUnbeatenMatches,
	MetricHatTricks, MetricBraces,
	MetricLongestWinStreak, MetricLongestUnbeatenStreak, MetricLongestScoringStreak,
	MetricMaxGoalsInMatch, MetricWinRate, MetricGoalsPerMatch,
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	for _, k := range Metrics {
		if k == m {
			return true
		}
	}
	return false
}

// Monotonic reports whether the metric can only grow as matches are appended in
// chronological order. Ratio metrics can fall.
func (m Metric) Monotonic() bool {
	switch m {
	case MetricWinRate, MetricGoalsPerMatch:
		return false
	default:
		return true
	}
}

// Goal is a user-defined numeric target.
type Goal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Metric    Metric    `json:"metric"`
	Target    float64   `json:"target"`
	Year      int       `json:"year,omitempty"` // 0 = all-time
	CreatedAt time.Time `json:"createdAt"`
}

// AchievementTier is one level of a tiered achievement, e.g. bronze at 10 goals.
type AchievementTier struct {
	Name   string  `json:"name"`
	Target float64 `json:"target"`
}

// CustomAchievement is a user-defined condition with one or more ascending tiers.
// Unlocked is maintained by the caller.
type CustomAchievement struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Metric      Metric            `json:"metric"`
	Tiers       []AchievementTier `json:"tiers"`
	Unlocked    bool              `json:"unlocked"`
}

// Progress is a goal's current value against its target.
type Progress struct {
	Current   float64 `json:"current"`
	Target    float64 `json:"target"`
	Percent   float64 `json:"percent"` // capped at 100
	Completed bool    `json:"completed"`
}

// AchievementProgress is the evaluated state of a tiered achievement.
type AchievementProgress struct {
	Achievement CustomAchievement `json:"achievement"`
	Current     float64           `json:"current"`
	TierIndex   int               `json:"tierIndex"` // -1 when no tier is reached
	NextTarget  float64           `json:"nextTarget,omitempty"`
}

// Satisfied reports whether at least the first tier is reached.
func (p AchievementProgress) Satisfied() bool { return p.TierIndex >= 0 }

// TierName returns the reached tier's name, or "" if none.
func (p AchievementProgress) TierName() string {
	if p.TierIndex < 0 || p.TierIndex >= len(p.Achievement.Tiers) {
		return ""
	}
	return p.Achievement.Tiers[p.TierIndex].Name
}

// ---- Records ----

// Record is a historical best and how many distinct times it was achieved.
type Record struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// RecordKind names an entry in HistoricalRecords.
type RecordKind string

const (
	RecordLongestWinStreak      RecordKind = "longest_win_streak"
	RecordLongestUnbeatenStreak RecordKind = "longest_unbeaten_streak"
	RecordLongestLossStreak     RecordKind = "longest_loss_streak"
	RecordLongestWinlessStreak  RecordKind = "longest_winless_streak"
	RecordLongestScoringStreak  RecordKind = "longest_scoring_streak"
	RecordLongestAssistStreak   RecordKind = "longest_assisting_streak"
	RecordLongestGoalDrought    RecordKind = "longest_goal_drought"
	RecordLongestAssistDrought  RecordKind = "longest_assist_drought"
	RecordMostGoalsInMatch      RecordKind = "most_goals_in_match"
	RecordMostAssistsInMatch    RecordKind = "most_assists_in_match"
	RecordMostContributions     RecordKind = "most_contributions_in_match"
	RecordBiggestWin            RecordKind = "biggest_win_margin"
	RecordHeaviestDefeat        RecordKind = "heaviest_defeat_margin"
)

// RecordKinds lists every record kind in display order.
var RecordKinds = []RecordKind{
	RecordLongestWinStreak, RecordLongestUnbeatenStreak,
	RecordLongestLossStreak, RecordLongestWinlessStreak,
	RecordLongestScoringStreak, RecordLongestAssistStreak,
	RecordLongestGoalDrought, RecordLongestAssistDrought,
	RecordMostGoalsInMatch, RecordMostAssistsInMatch, RecordMostContributions,
	RecordBiggestWin, RecordHeaviestDefeat,
}

// HistoricalRecords maps each record kind to its best value.
type HistoricalRecords map[RecordKind]Record

// ---- Aggregates ----

// Aggregate holds totals over a subset of matches.
type Aggregate struct {
	Matches  int `json:"matches"`
	Wins     int `json:"wins"`
	Draws    int `json:"draws"`
	Losses   int `json:"losses"`
	Goals    int `json:"goals"`
	Assists  int `json:"assists"`
	GoalDiff int `json:"goalDiff"`
}

func (a *Aggregate) Points() int { return 3*a.Wins + a.Draws }

func (a *Aggregate) WinRate() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Matches)
}

// Efficiency is points won over points available.
func (a *Aggregate) Efficiency() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Points()) / float64(a.Matches*3)
}

func (a *Aggregate) GoalsPerMatch() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Goals) / float64(a.Matches)
}

func (a *Aggregate) AssistsPerMatch() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Assists) / float64(a.Matches)
}

func (a *Aggregate) ContributionsPerMatch() float64 {
	if a.Matches == 0 {
		return 0
	}
	return float64(a.Goals+a.Assists) / float64(a.Matches)
}

// ---- Morale and ratings ----

// MoraleLevel is a qualitative bucket over the 0–100 form score.
type MoraleLevel string

const (
	MoraleUnknown   MoraleLevel = "unknown"
	MoraleCrisis    MoraleLevel = "crisis"
	MoraleLow       MoraleLevel = "low"
	MoraleRegular   MoraleLevel = "regular"
	MoraleGood      MoraleLevel = "good"
	MoraleExcellent MoraleLevel = "excellent"
	MoralePeak      MoraleLevel = "peak"
)

// Trend is the direction of the form score relative to one match earlier.
type Trend string

const (
	TrendNone Trend = "none"
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// PlayerMorale is a recomputed snapshot; it is never persisted.
type PlayerMorale struct {
	Score        int         `json:"score"`
	Level        MoraleLevel `json:"level"`
	Trend        Trend       `json:"trend"`
	TrendStreak  int         `json:"trendStreak"`
	Description  string      `json:"description"`
	Insufficient bool        `json:"insufficient"`
	Window       []Result    `json:"window,omitempty"` // most recent first
}

// SeasonRating classifies one closed season.
type SeasonRating struct {
	Year        int       `json:"year"`
	TierName    string    `json:"tierName"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
	SimilarTo   string    `json:"similarTo,omitempty"`
	Efficiency  int       `json:"efficiency"` // whole-number percent
	Totals      Aggregate `json:"totals"`
	InProgress  bool      `json:"inProgress"` // the year has not ended yet
}

// ---- Duels ----

// RankChange compares a co-player's impact rank with the previous period.
type RankChange string

const (
	RankNew  RankChange = "new"
	RankUp   RankChange = "up"
	RankDown RankChange = "down"
	RankSame RankChange = "same"
)

// Side says whether a co-player shared the pitch as a teammate or an opponent.
type Side string

const (
	SideTeammate Side = "teammate"
	SideOpponent Side = "opponent"
)

// CoPlayerStats aggregates every match the viewer shared with one co-player on one side.
type CoPlayerStats struct {
	Name             string     `json:"name"`
	Side             Side       `json:"side"`
	Matches          int        `json:"matches"`
	Wins             int        `json:"wins"`
	Draws            int        `json:"draws"`
	Losses           int        `json:"losses"`
	MyGoals          int        `json:"myGoals"`
	MyAssists        int        `json:"myAssists"`
	TheirGoals       int        `json:"theirGoals"`
	TheirAssists     int        `json:"theirAssists"`
	TotalImpactScore float64    `json:"totalImpactScore"`
	ImpactScore      float64    `json:"impactScore"`
	RankChange       RankChange `json:"rankChange"`
	MatchIDs         []string   `json:"matchIds"`
}

func (s *CoPlayerStats) Points() int { return 3*s.Wins + s.Draws }

func (s *CoPlayerStats) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches)
}

func (s *CoPlayerStats) MyGoalsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.MyGoals) / float64(s.Matches)
}

func (s *CoPlayerStats) MyAssistsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.MyAssists) / float64(s.Matches)
}

func (s *CoPlayerStats) TheirGoalsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TheirGoals) / float64(s.Matches)
}

func (s *CoPlayerStats) TheirAssistsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TheirAssists) / float64(s.Matches)
}

// ContributionsPerMatch is the viewer's goals plus assists per shared match.
func (s *CoPlayerStats) ContributionsPerMatch() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.MyGoals+s.MyAssists) / float64(s.Matches)
}

// ---- Milestones ----

// MilestoneSource says whether a milestone came from a goal or an achievement.
type MilestoneSource string

const (
	SourceGoal        MilestoneSource = "goal"
	SourceAchievement MilestoneSource = "achievement"
)

// Milestone is the earliest point at which a goal target or achievement tier was met.
type Milestone struct {
	ID          string          `json:"id"` // composite: source:id[:tier]
	Source      MilestoneSource `json:"source"`
	SourceID    string          `json:"sourceId"`
	Title       string          `json:"title"`
	Tier        string          `json:"tier,omitempty"`
	TierIndex   int             `json:"tierIndex"`
	Target      float64         `json:"target"`
	CompletedOn string          `json:"completedOn"` // date of the completing match
	MatchID     string          `json:"matchId"`
	MatchNumber int             `json:"matchNumber"` // 1-based prefix length
	Year        int             `json:"year"`
}

// MilestoneYear groups milestones completed in one calendar year.
type MilestoneYear struct {
	Year       int         `json:"year"`
	Milestones []Milestone `json:"milestones"`
}
