package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
)

// Repository handles user data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		u.ID, u.Name, u.Email, u.PasswordHash, database.Millis(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by their email address
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`
	return r.getOne(ctx, query, email)
}

// ListByIDs retrieves the users with the given IDs, ordered by name
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id IN (` + database.In(len(ids)) + `)
		ORDER BY name, id
	`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// List retrieves a page of users, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

// Update saves the user's name, email and password hash
func (r *Repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), u.Name, u.Email, u.PasswordHash, u.ID); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// HasHistory reports whether the user created a group, belongs to one or
// appears in any expense
func (r *Repository) HasHistory(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM groups WHERE created_by = ?)
			OR EXISTS (SELECT 1 FROM group_members WHERE user_id = ?)
			OR EXISTS (SELECT 1 FROM expenses WHERE paid_by = ?)
			OR EXISTS (SELECT 1 FROM expense_splits WHERE user_id = ?)
	`

	var found bool
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id, id, id, id).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check user history: %w", err)
	}
	return found, nil
}

// Delete removes a user and their notifications
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM notifications WHERE recipient_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.db.Rebind(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	u := &User{}
	var createdAt int64
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = database.FromMillis(createdAt)
	return u, nil
}
