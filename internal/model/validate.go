package model

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks the fields the analytics rely on. It runs at the ingestion boundary
// (import, storage writes); the analytics packages assume already-valid records.
func (m *Match) Validate() error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if _, err := time.Parse("2006-01-02", m.Date); err != nil {
		errs = append(errs, fmt.Errorf("date %q: want YYYY-MM-DD", m.Date))
	}
	switch m.Result {
	case ResultWin:
		if m.GoalDiff <= 0 {
			errs = append(errs, fmt.Errorf("win with goal difference %d", m.GoalDiff))
		}
	case ResultLoss:
		if m.GoalDiff >= 0 {
			errs = append(errs, fmt.Errorf("loss with goal difference %d", m.GoalDiff))
		}
	case ResultDraw:
		if m.GoalDiff != 0 {
			errs = append(errs, fmt.Errorf("draw with goal difference %d", m.GoalDiff))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown result %q", string(m.Result)))
	}
	if m.Goals < 0 || m.Assists < 0 {
		errs = append(errs, errors.New("negative goals or assists"))
	}
	for i, p := range m.Teammates {
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("teammate %d: %w", i, err))
		}
	}
	for i, p := range m.Opponents {
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("opponent %d: %w", i, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("match %s: %w", m.ID, errors.Join(errs...))
}

func (p PlayerPerformance) validate() error {
	if p.Name == "" {
		return errors.New("empty name")
	}
	if p.Goals < 0 || p.Assists < 0 {
		return fmt.Errorf("%s: negative goals or assists", p.Name)
	}
	return nil
}

// Validate checks a goal definition.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return errors.New("goal: empty title")
	}
	if !g.Metric.Valid() {
		return fmt.Errorf("goal %q: unknown metric %q", g.Title, string(g.Metric))
	}
	if g.Target <= 0 {
		return fmt.Errorf("goal %q: target must be positive", g.Title)
	}
	return nil
}

// Validate checks an achievement definition. Tiers must have strictly ascending targets.
func (a *CustomAchievement) Validate() error {
	if a.Name == "" {
		return errors.New("achievement: empty name")
	}
	if !a.Metric.Valid() {
		return fmt.Errorf("achievement %q: unknown metric %q", a.Name, string(a.Metric))
	}
	if len(a.Tiers) == 0 {
		return fmt.Errorf("achievement %q: no tiers", a.Name)
	}
	for i, t := range a.Tiers {
		if t.Target <= 0 {
			return fmt.Errorf("achievement %q: tier %d target must be positive", a.Name, i)
		}
		if i > 0 && t.Target <= a.Tiers[i-1].Target {
			return fmt.Errorf("achievement %q: tier targets must ascend", a.Name)
		}
	}
	return nil
}
