package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/footstats/internal/model"
	"github.com/pable/footstats/internal/streak"
)

func TestPrintRecords_MarksOngoing(t *testing.T) {
	recs := model.HistoricalRecords{
		model.RecordLongestWinStreak: {Value: 3, Count: 2},
	}
	var buf bytes.Buffer
	PrintRecords(&buf, recs, streak.Streaks{streak.Win: 3})

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "Longest win streak") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("win streak row missing:\n%s", buf.String())
	}
	if !strings.Contains(line, "*") || !strings.Contains(line, "3") {
		t.Errorf("expected ongoing record 3 marked with *, got %q", line)
	}
}

func TestPrintMorale_Insufficient(t *testing.T) {
	var buf bytes.Buffer
	PrintMorale(&buf, model.PlayerMorale{Score: 50, Level: model.MoraleUnknown, Insufficient: true,
		Window: []model.Result{model.ResultWin}, Description: "Not enough matches to judge form."})
	out := buf.String()
	if !strings.Contains(out, "average performance") || !strings.Contains(out, "Form: W") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPrintMilestones_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintMilestones(&buf, nil)
	if !strings.Contains(buf.String(), "No milestones") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrintDuels_Limit(t *testing.T) {
	stats := []model.CoPlayerStats{
		{Name: "Ana", Matches: 2, Wins: 2, ImpactScore: 1.5, RankChange: model.RankUp},
		{Name: "Beto", Matches: 1, ImpactScore: 0.2, RankChange: model.RankNew},
	}
	var buf bytes.Buffer
	PrintDuels(&buf, stats, 1)
	out := buf.String()
	if !strings.Contains(out, "Ana") || strings.Contains(out, "Beto") {
		t.Errorf("limit not applied:\n%s", out)
	}
	if !strings.Contains(out, "1.50") {
		t.Errorf("impact missing:\n%s", out)
	}
}

func TestSigned(t *testing.T) {
	if signed(2) != "+2" || signed(-1) != "-1" || signed(0) != "0" {
		t.Error("signed formatting wrong")
	}
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"name", "goals"}, [][]string{{"Ana", "3"}, {"Beto", "1"}})
	out := buf.String()
	for _, want := range []string{"Ana", "Beto", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintQueryResult(&buf, []string{"name"}, nil)
	if got := strings.TrimSpace(buf.String()); got != "(no rows)" {
		t.Errorf("empty result: got %q", got)
	}
}

func TestPrintSeasonDetail_InProgress(t *testing.T) {
	r := model.SeasonRating{Year: 2026, TierName: "Solid", Score: 60, Efficiency: 70}

	var buf bytes.Buffer
	PrintSeasonDetail(&buf, r)
	if strings.Contains(buf.String(), "in progress") {
		t.Errorf("closed season marked in progress:\n%s", buf.String())
	}

	r.InProgress = true
	buf.Reset()
	PrintSeasonDetail(&buf, r)
	if !strings.Contains(buf.String(), "in progress") {
		t.Errorf("in-progress note missing:\n%s", buf.String())
	}
}
