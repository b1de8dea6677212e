package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/footstats/internal/model"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// InsertGoal stores g, assigning an id and creation time when missing.
func (db *DB) InsertGoal(g model.Goal) (model.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO goals(id, title, metric, target, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, string(g.Metric), g.Target, g.Year, g.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return model.Goal{}, fmt.Errorf("insert goal %q: %w", g.Title, err)
	}
	return g, nil
}

// ListGoals returns goals in creation order.
func (db *DB) ListGoals() ([]model.Goal, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, metric, target, year, created_at
		FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		var metric, created string
		if err := rows.Scan(&g.ID, &g.Title, &metric, &g.Target, &g.Year, &created); err != nil {
			return nil, err
		}
		g.Metric = model.Metric(metric)
		g.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeleteGoal reports whether a goal with id existed.
func (db *DB) DeleteGoal(id string) (bool, error) {
	return db.deleteByID("goals", id)
}

// InsertAchievement stores a, assigning an id when missing. Tiers are kept as JSON.
func (db *DB) InsertAchievement(a model.CustomAchievement) (model.CustomAchievement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	tiers, err := json.Marshal(a.Tiers)
	if err != nil {
		return model.CustomAchievement{}, fmt.Errorf("encode tiers: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO achievements(id, name, description, metric, tiers, unlocked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Description, string(a.Metric), string(tiers), boolInt(a.Unlocked),
		time.Now().UTC().Format(timeLayout))
	if err != nil {
		return model.CustomAchievement{}, fmt.Errorf("insert achievement %q: %w", a.Name, err)
	}
	return a, nil
}

// ListAchievements returns achievements in creation order.
func (db *DB) ListAchievements() ([]model.CustomAchievement, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, metric, tiers, unlocked
		FROM achievements ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CustomAchievement
	for rows.Next() {
		var a model.CustomAchievement
		var metric, tiers string
		var unlocked int
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &metric, &tiers, &unlocked); err != nil {
			return nil, err
		}
		a.Metric = model.Metric(metric)
		a.Unlocked = unlocked != 0
		if err := json.Unmarshal([]byte(tiers), &a.Tiers); err != nil {
			return nil, fmt.Errorf("decode tiers of %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetAchievementUnlocked records the caller-owned unlocked flag. It reports whether the
// achievement exists.
func (db *DB) SetAchievementUnlocked(id string, unlocked bool) (bool, error) {
	res, err := db.conn.Exec(`UPDATE achievements SET unlocked = ? WHERE id = ?`, boolInt(unlocked), id)
	if err != nil {
		return false, fmt.Errorf("update achievement %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (db *DB) deleteByID(table, id string) (bool, error) {
	res, err := db.conn.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
