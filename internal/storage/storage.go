// Package storage persists accounts, the advisor roster, and review history
// in a local sqlite database under the data directory.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
)

type Storage struct {
	db   *sql.DB
	path string
}

func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tesis.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Storage{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		avatar_ref TEXT,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS advisors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		rating REAL NOT NULL DEFAULT 0,
		reviews INTEGER NOT NULL DEFAULT 0,
		available INTEGER NOT NULL DEFAULT 1,
		location TEXT NOT NULL,
		price TEXT NOT NULL,
		avatar_ref TEXT,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		status TEXT NOT NULL,
		reason TEXT,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user domain.User, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, avatar_ref, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.AvatarRef, passwordHash, time.Now().UTC())
	return err
}

func (s *Storage) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, email, name, avatar_ref FROM users WHERE id = ?
	`, id))
}

// GetUserByEmail also returns the stored password hash for credential checks.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (domain.User, string, error) {
	var user domain.User
	var avatar sql.NullString
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, avatar_ref, password_hash FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Email, &user.Name, &avatar, &hash)
	if err == sql.ErrNoRows {
		return domain.User{}, "", domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, "", err
	}
	user.AvatarRef = avatar.String
	return user, hash, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, avatar_ref = ? WHERE id = ?
	`, user.Name, user.Email, user.AvatarRef, user.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var avatar sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.Name, &avatar)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	user.AvatarRef = avatar.String
	return user, nil
}

// Advisor operations

// SeedAdvisors inserts the roster if the table is empty. Existing rows win so
// local edits survive restarts.
func (s *Storage) SeedAdvisors(ctx context.Context, advisors []domain.Advisor) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM advisors`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range advisors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO advisors (id, name, specialty, rating, reviews, available, location, price, avatar_ref, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.Name, a.Specialty, a.Rating, a.Reviews, a.Available, a.Location, a.Price, a.AvatarRef, a.Description)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) ListAdvisors(ctx context.Context) ([]domain.Advisor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, specialty, rating, reviews, available, location, price, avatar_ref, description
		FROM advisors ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advisors []domain.Advisor
	for rows.Next() {
		var a domain.Advisor
		var avatar, desc sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Specialty, &a.Rating, &a.Reviews, &a.Available,
			&a.Location, &a.Price, &avatar, &desc); err != nil {
			return nil, err
		}
		a.AvatarRef = avatar.String
		a.Description = desc.String
		advisors = append(advisors, a)
	}
	return advisors, rows.Err()
}

// Review operations

func (s *Storage) SaveReview(ctx context.Context, rev domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, file_name, mime_type, size_bytes, status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rev.ID, rev.UserID, rev.FileName, rev.MimeType, rev.SizeBytes, rev.Status, rev.Reason, rev.CreatedAt)
	return err
}

func (s *Storage) ListReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, file_name, mime_type, size_bytes, status, reason, created_at
		FROM reviews WHERE user_id = ? ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		var reason sql.NullString
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.FileName, &rev.MimeType, &rev.SizeBytes,
			&rev.Status, &reason, &rev.CreatedAt); err != nil {
			return nil, err
		}
		rev.Reason = reason.String
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
