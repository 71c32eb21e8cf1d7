// Package botstore persists the registered bot accounts, one set per
// wiki language, in a local SQLite database.
package botstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"wikibot/internal/mediawiki"
)

// Bot is one stored bot account. At most one bot per language is the
// default.
type Bot struct {
	Lang     string
	Name     string
	Password string
	Default  bool
}

// Credential converts the stored account into a session credential.
func (b Bot) Credential() mediawiki.Credential {
	return mediawiki.Credential{Name: b.Name, Password: b.Password}
}

// Store wraps the SQLite credential database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the credential database at dbPath and
// ensures the schema exists. Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	stmt := `CREATE TABLE IF NOT EXISTS bots (
		lang       TEXT NOT NULL,
		name       TEXT NOT NULL,
		password   TEXT NOT NULL,
		is_default INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (lang, name)
	)`
	if _, err := db.Exec(stmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores a bot account. An existing account with the same language
// and name is replaced.
func (s *Store) Add(b Bot) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO bots (lang, name, password, is_default)
		 VALUES (?, ?, ?, ?)`,
		b.Lang, b.Name, b.Password, boolToInt(b.Default),
	)
	if err != nil {
		return fmt.Errorf("add bot: %w", err)
	}
	if b.Default {
		return s.SetDefault(b.Lang, b.Name)
	}
	return nil
}

// Remove deletes a bot account.
func (s *Store) Remove(lang, name string) error {
	_, err := s.db.Exec(`DELETE FROM bots WHERE lang = ? AND name = ?`, lang, name)
	if err != nil {
		return fmt.Errorf("remove bot: %w", err)
	}
	return nil
}

// List returns all bot accounts for a language, sorted by name.
func (s *Store) List(lang string) ([]Bot, error) {
	rows, err := s.db.Query(
		`SELECT lang, name, password, is_default FROM bots
		 WHERE lang = ? ORDER BY name`, lang,
	)
	if err != nil {
		return nil, fmt.Errorf("list bots: %w", err)
	}
	defer rows.Close()

	var bots []Bot
	for rows.Next() {
		var b Bot
		var def int
		if err := rows.Scan(&b.Lang, &b.Name, &b.Password, &def); err != nil {
			return nil, fmt.Errorf("scan bot: %w", err)
		}
		b.Default = def != 0
		bots = append(bots, b)
	}
	return bots, rows.Err()
}

// Get retrieves one bot account by language and name. Returns nil if
// the account is not stored.
func (s *Store) Get(lang, name string) (*Bot, error) {
	var b Bot
	var def int
	err := s.db.QueryRow(
		`SELECT lang, name, password, is_default FROM bots
		 WHERE lang = ? AND name = ?`, lang, name,
	).Scan(&b.Lang, &b.Name, &b.Password, &def)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bot: %w", err)
	}
	b.Default = def != 0
	return &b, nil
}

// Default retrieves the default bot account for a language. Returns
// nil if none is marked default.
func (s *Store) Default(lang string) (*Bot, error) {
	var b Bot
	var def int
	err := s.db.QueryRow(
		`SELECT lang, name, password, is_default FROM bots
		 WHERE lang = ? AND is_default = 1`, lang,
	).Scan(&b.Lang, &b.Name, &b.Password, &def)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("default bot: %w", err)
	}
	b.Default = true
	return &b, nil
}

// SetDefault marks one account as the language's default and clears
// the flag on every other account of that language in the same
// transaction, so the single-default invariant holds at all times.
func (s *Store) SetDefault(lang, name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE bots SET is_default = 0 WHERE lang = ?`, lang); err != nil {
		return fmt.Errorf("clear defaults: %w", err)
	}
	res, err := tx.Exec(
		`UPDATE bots SET is_default = 1 WHERE lang = ? AND name = ?`, lang, name,
	)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set default: no bot %q for lang %q", name, lang)
	}
	return tx.Commit()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
