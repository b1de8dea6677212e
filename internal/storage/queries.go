package storage

import (
	"database/sql"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pable/footstats/internal/model"
)

// InsertMatches stores ms in one transaction and bumps the collection version.
// Matches without an id get a generated one; re-inserting an id replaces the match.
// The stored matches are returned with their ids.
func (db *DB) InsertMatches(ms []model.Match) ([]model.Match, error) {
	out := make([]model.Match, len(ms))
	copy(out, ms)
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		out[i].ID = id
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	matchStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(id, match_date, result, goals, assists, goal_diff, notes, tournament)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer matchStmt.Close()

	clearStmt, err := tx.Prepare(`DELETE FROM match_players WHERE match_id = ?`)
	if err != nil {
		return nil, err
	}
	defer clearStmt.Close()

	playerStmt, err := tx.Prepare(`
		INSERT INTO match_players(match_id, side, position, name, goals, assists)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer playerStmt.Close()

	for _, m := range out {
		if _, err := matchStmt.Exec(m.ID, m.Date, string(m.Result), m.Goals, m.Assists, m.GoalDiff, m.Notes, m.Tournament); err != nil {
			return nil, fmt.Errorf("insert match %s: %w", m.ID, err)
		}
		if _, err := clearStmt.Exec(m.ID); err != nil {
			return nil, fmt.Errorf("clear players of %s: %w", m.ID, err)
		}
		for side, ps := range map[model.Side][]model.PlayerPerformance{
			model.SideTeammate: m.Teammates,
			model.SideOpponent: m.Opponents,
		} {
			for pos, p := range ps {
				if _, err := playerStmt.Exec(m.ID, string(side), pos, p.Name, p.Goals, p.Assists); err != nil {
					return nil, fmt.Errorf("insert %s %q of %s: %w", side, p.Name, m.ID, err)
				}
			}
		}
	}
	if err := bumpVersion(tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	db.log.Info().Int("matches", len(out)).Msg("matches stored")
	return out, nil
}

// ListMatches returns every stored match ordered by date, oldest first.
func (db *DB) ListMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_date, result, goals, assists, goal_diff, notes, tournament
		FROM matches ORDER BY match_date, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := db.conn.Query(`
		SELECT match_id, side, name, goals, assists
		FROM match_players ORDER BY match_id, side, position`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var matchID, side string
		var p model.PlayerPerformance
		if err := prows.Scan(&matchID, &side, &p.Name, &p.Goals, &p.Assists); err != nil {
			return nil, err
		}
		i, ok := index[matchID]
		if !ok {
			continue
		}
		attach(&out[i], model.Side(side), p)
	}
	return out, prows.Err()
}

// GetMatch returns the match with the given id, or nil if there is none.
func (db *DB) GetMatch(id string) (*model.Match, error) {
	row := db.conn.QueryRow(`
		SELECT id, match_date, result, goals, assists, goal_diff, notes, tournament
		FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT side, name, goals, assists
		FROM match_players WHERE match_id = ? ORDER BY side, position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var side string
		var p model.PlayerPerformance
		if err := rows.Scan(&side, &p.Name, &p.Goals, &p.Assists); err != nil {
			return nil, err
		}
		attach(&m, model.Side(side), p)
	}
	return &m, rows.Err()
}

// DeleteMatch removes a match and its players. It reports whether a match was deleted.
func (db *DB) DeleteMatch(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM match_players WHERE match_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete players of %s: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete match %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if err := bumpVersion(tx); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(s scanner) (model.Match, error) {
	var m model.Match
	var result string
	err := s.Scan(&m.ID, &m.Date, &result, &m.Goals, &m.Assists, &m.GoalDiff, &m.Notes, &m.Tournament)
	m.Result = model.Result(result)
	return m, err
}

func attach(m *model.Match, side model.Side, p model.PlayerPerformance) {
	if side == model.SideOpponent {
		m.Opponents = append(m.Opponents, p)
		return
	}
	m.Teammates = append(m.Teammates, p)
}
