// Package user implements account, preference, and article-list
// persistence.
package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/storage"
)

// Schema is the SQLite schema for the user subsystem. Read and favorite
// marks are article URLs; (user_id, url) uniqueness makes marking
// idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    preferences   TEXT NOT NULL DEFAULT '[]',
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS read_articles (
    user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    url      TEXT NOT NULL,
    marked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(user_id, url)
);

CREATE TABLE IF NOT EXISTS favorite_articles (
    user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    url      TEXT NOT NULL,
    marked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(user_id, url)
);

CREATE INDEX IF NOT EXISTS idx_read_articles_user ON read_articles(user_id);
CREATE INDEX IF NOT EXISTS idx_favorite_articles_user ON favorite_articles(user_id);
`

// User is an account in the system.
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Preferences  []string
}

// Store provides persistence for Users and their article lists.
type Store struct {
	db *storage.DB
}

// NewStore creates a new user store.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the user tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.Migrate(ctx, Schema)
}

// CreateUser inserts a new user with an empty preference set.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (int, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		strings.TrimSpace(name), email, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// GetUserByEmail finds a user by their email address. Returns (nil, nil)
// when no such user exists.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, preferences FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID finds a user by ID. Returns (nil, nil) when no such user
// exists.
func (s *Store) GetUserByID(ctx context.Context, id int) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, preferences FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	var prefsJSON string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &prefsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(prefsJSON), &u.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return u, nil
}

// UpdatePreferences replaces a user's topic preferences. Returns false when
// the user does not exist.
func (s *Store) UpdatePreferences(ctx context.Context, userID int, preferences []string) (bool, error) {
	if preferences == nil {
		preferences = []string{}
	}
	encoded, err := json.Marshal(preferences)
	if err != nil {
		return false, fmt.Errorf("encode preferences: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET preferences = ? WHERE id = ?`, string(encoded), userID)
	if err != nil {
		return false, fmt.Errorf("update preferences: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// MarkRead records an article URL as read for the user. Re-marking is a
// no-op.
func (s *Store) MarkRead(ctx context.Context, userID int, url string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO read_articles (user_id, url) VALUES (?, ?)`, userID, url)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkFavorite records an article URL as a favorite for the user.
func (s *Store) MarkFavorite(ctx context.Context, userID int, url string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorite_articles (user_id, url) VALUES (?, ?)`, userID, url)
	if err != nil {
		return fmt.Errorf("mark favorite: %w", err)
	}
	return nil
}

// UnmarkFavorite removes an article URL from the user's favorites.
func (s *Store) UnmarkFavorite(ctx context.Context, userID int, url string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorite_articles WHERE user_id = ? AND url = ?`, userID, url)
	if err != nil {
		return fmt.Errorf("unmark favorite: %w", err)
	}
	return nil
}

// ReadArticles lists the article URLs the user marked as read, oldest
// first.
func (s *Store) ReadArticles(ctx context.Context, userID int) ([]string, error) {
	return s.listURLs(ctx, `SELECT url FROM read_articles WHERE user_id = ? ORDER BY marked_at, url`, userID)
}

// FavoriteArticles lists the user's favorite article URLs, oldest first.
func (s *Store) FavoriteArticles(ctx context.Context, userID int) ([]string, error) {
	return s.listURLs(ctx, `SELECT url FROM favorite_articles WHERE user_id = ? ORDER BY marked_at, url`, userID)
}

func (s *Store) listURLs(ctx context.Context, query string, userID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// DeleteUser removes a user and, via cascade, their article lists.
func (s *Store) DeleteUser(ctx context.Context, userID int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}
