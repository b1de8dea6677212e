package storage

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Version is the collection version, bumped by every match write.
func (db *DB) Version() (int64, error) {
	v, err := db.meta("version")
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", v, err)
	}
	return n, nil
}

// ProfileName is the viewing player's name, "" when unset.
func (db *DB) ProfileName() (string, error) {
	return db.meta("profile_name")
}

func (db *DB) SetProfileName(name string) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO meta(key, value) VALUES ('profile_name', ?)`, name)
	if err != nil {
		return fmt.Errorf("set profile name: %w", err)
	}
	return nil
}

func (db *DB) meta(key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func bumpVersion(tx *sql.Tx) error {
	_, err := tx.Exec(`UPDATE meta SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT) WHERE key = 'version'`)
	if err != nil {
		return fmt.Errorf("bump version: %w", err)
	}
	return nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
