package duel

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/footstats/internal/model"
)

func mate(name string, goals int) model.PlayerPerformance {
	return model.PlayerPerformance{Name: name, Goals: goals}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// The fixture leaves GoalDiff at zero so only the result and own-goal terms count.
// Validate would reject it as a win; TestScore_ValidWin covers a storable match.
func TestScore_ScenarioC(t *testing.T) {
	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultWin, Goals: 2,
		Teammates: []model.PlayerPerformance{mate("Ana", 0)},
	}}
	res := Score(ms, "Me", DefaultWeights())
	if len(res.Teammates) != 1 {
		t.Fatalf("want 1 teammate, got %d", len(res.Teammates))
	}
	got := res.Teammates[0]
	if !approx(got.TotalImpactScore, 6) || !approx(got.ImpactScore, 1.0) {
		t.Errorf("want total 6 impact 1.0, got %v / %v", got.TotalImpactScore, got.ImpactScore)
	}
	if got.RankChange != model.RankNew {
		t.Errorf("first appearance should be new, got %s", got.RankChange)
	}
	if diff := cmp.Diff([]string{"m1"}, got.MatchIDs); diff != "" {
		t.Errorf("match ids (-want +got):\n%s", diff)
	}
}

func TestScore_ValidWin(t *testing.T) {
	m := model.Match{
		ID: "m1", Date: "2024-05-01", Result: model.ResultWin, Goals: 2, GoalDiff: 2,
		Teammates: []model.PlayerPerformance{mate("Ana", 0)},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("fixture should be a valid match: %v", err)
	}
	res := Score([]model.Match{m}, "Me", DefaultWeights())
	ana, ok := Find(res.Teammates, "Ana")
	if !ok {
		t.Fatal("Ana not found")
	}
	// 3 (win) + 3 (two own goals) + 0.5 (goal diff 2), over 1 + 5.
	if !approx(ana.TotalImpactScore, 6.5) || !approx(ana.ImpactScore, 6.5/6) {
		t.Errorf("want 6.5 / %.4f, got %v / %v", 6.5/6, ana.TotalImpactScore, ana.ImpactScore)
	}
}

func TestScore_Empty(t *testing.T) {
	res := Score(nil, "Me", DefaultWeights())
	if len(res.Teammates) != 0 || len(res.Opponents) != 0 {
		t.Errorf("empty ledger should give empty rankings, got %+v", res)
	}
}

func TestScore_ViewerAndDuplicatesSkipped(t *testing.T) {
	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultDraw,
		Teammates: []model.PlayerPerformance{mate("Me", 1), mate("Ana", 1), mate("Ana", 1), mate("", 0)},
	}}
	res := Score(ms, "Me", DefaultWeights())
	if len(res.Teammates) != 1 || res.Teammates[0].Name != "Ana" {
		t.Fatalf("want only Ana, got %+v", res.Teammates)
	}
	ana := res.Teammates[0]
	if ana.Matches != 1 || ana.TheirGoals != 1 || ana.Draws != 1 {
		t.Errorf("duplicate entry counted twice: %+v", ana)
	}
}

func TestScore_OpponentPenalties(t *testing.T) {
	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultLoss, GoalDiff: -1,
		Opponents: []model.PlayerPerformance{mate("Rival", 2)},
	}}
	res := Score(ms, "Me", DefaultWeights())
	r, ok := Find(res.Opponents, "Rival")
	if !ok {
		t.Fatal("Rival not found")
	}
	// -2 (loss) - 0.25 (goal diff) - 1.5 (their two goals)
	if !approx(r.TotalImpactScore, -3.75) || !approx(r.ImpactScore, -0.625) {
		t.Errorf("want -3.75 / -0.625, got %v / %v", r.TotalImpactScore, r.ImpactScore)
	}
	if r.Losses != 1 || r.Side != model.SideOpponent {
		t.Errorf("unexpected stats: %+v", r)
	}
}

func TestScore_TieBreakByName(t *testing.T) {
	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultWin,
		Teammates: []model.PlayerPerformance{mate("Zoe", 0), mate("Bea", 0), mate("Max", 0)},
	}}
	for i := 0; i < 5; i++ {
		res := Score(ms, "", DefaultWeights())
		var names []string
		for _, s := range res.Teammates {
			names = append(names, s.Name)
		}
		if diff := cmp.Diff([]string{"Bea", "Max", "Zoe"}, names); diff != "" {
			t.Fatalf("tie order (-want +got):\n%s", diff)
		}
	}
}

func TestScore_RankChange(t *testing.T) {
	ms := []model.Match{
		{
			ID: "m2", Date: "2024-05-08", Result: model.ResultWin,
			Teammates: []model.PlayerPerformance{mate("A", 3), mate("C", 0)},
			Opponents: []model.PlayerPerformance{mate("X", 0)},
		},
		{
			ID: "m1", Date: "2024-05-01", Result: model.ResultWin,
			Teammates: []model.PlayerPerformance{mate("A", 0), mate("B", 1)},
			Opponents: []model.PlayerPerformance{mate("X", 0)},
		},
	}
	res := Score(ms, "Me", DefaultWeights())

	// before m2: B 0.625, A 0.5. after: A 1.18, B 0.625, C 0.5.
	want := map[string]model.RankChange{"A": model.RankUp, "B": model.RankDown, "C": model.RankNew}
	for name, rc := range want {
		s, ok := Find(res.Teammates, name)
		if !ok {
			t.Fatalf("%s missing", name)
		}
		if s.RankChange != rc {
			t.Errorf("%s: want %s, got %s", name, rc, s.RankChange)
		}
	}
	if res.Teammates[0].Name != "A" {
		t.Errorf("A should lead, got %s", res.Teammates[0].Name)
	}
	x, _ := Find(res.Opponents, "X")
	if x.RankChange != model.RankSame {
		t.Errorf("X: want same, got %s", x.RankChange)
	}
	if diff := cmp.Diff([]string{"m1", "m2"}, x.MatchIDs); diff != "" {
		t.Errorf("match ids should be chronological (-want +got):\n%s", diff)
	}
}

func TestScore_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.ConfidenceFactor = 0
	ms := []model.Match{{
		ID: "m1", Date: "2024-05-01", Result: model.ResultWin,
		Teammates: []model.PlayerPerformance{mate("Ana", 0)},
	}}
	if got := Score(ms, "", w).Teammates[0].ImpactScore; !approx(got, 3) {
		t.Errorf("without shrinkage impact should equal the single match, got %v", got)
	}
}

func TestFind_Missing(t *testing.T) {
	if _, ok := Find(nil, "nobody"); ok {
		t.Error("expected not found")
	}
}
