package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
)

// Repository handles group data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new group repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group together with its creator's membership
func (r *Repository) Create(ctx context.Context, g *Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO groups (id, name, created_by, settled_at, created_at)
		VALUES (?, ?, ?, NULL, ?)
	`), g.ID, g.Name, g.CreatedBy, database.Millis(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	for _, memberID := range g.Members {
		_, err = tx.ExecContext(ctx, r.db.Rebind(`
			INSERT INTO group_members (group_id, user_id, joined_at)
			VALUES (?, ?, ?)
		`), g.ID, memberID, database.Millis(g.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to add group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group: %w", err)
	}
	return nil
}

// GetByID retrieves a group and its member IDs
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	query := `
		SELECT id, name, created_by, settled_at, created_at
		FROM groups
		WHERE id = ?
	`

	g, err := scanGroup(r.db.QueryRowContext(ctx, r.db.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := r.attachMembers(ctx, []*Group{g}); err != nil {
		return nil, err
	}
	return g, nil
}

// ListByUserID retrieves a page of the groups a user belongs to, newest first
func (r *Repository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM group_members
		WHERE user_id = ?
	`
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(countQuery), userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT g.id, g.name, g.created_by, g.settled_at, g.created_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = ?
		ORDER BY g.created_at DESC, g.id
		LIMIT ? OFFSET ?
	`
	groups, err := r.list(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListAllByUserID retrieves every group a user belongs to, newest first
func (r *Repository) ListAllByUserID(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.created_by, g.settled_at, g.created_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = ?
		ORDER BY g.created_at DESC, g.id
	`
	return r.list(ctx, query, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Group, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	if err := r.attachMembers(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// attachMembers fills in member IDs, ordered by join time
func (r *Repository) attachMembers(ctx context.Context, groups []*Group) error {
	if len(groups) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Group, len(groups))
	args := make([]any, len(groups))
	for i, g := range groups {
		byID[g.ID] = g
		g.Members = []uuid.UUID{}
		args[i] = g.ID
	}

	query := `
		SELECT group_id, user_id
		FROM group_members
		WHERE group_id IN (` + database.In(len(groups)) + `)
		ORDER BY joined_at, user_id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, userID uuid.UUID
		if err := rows.Scan(&groupID, &userID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Members = append(g.Members, userID)
		}
	}
	return rows.Err()
}

// UpdateName renames a group
func (r *Repository) UpdateName(ctx context.Context, groupID uuid.UUID, name string) error {
	query := `UPDATE groups SET name = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), name, groupID); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes a group with its members and expense history
func (r *Repository) Delete(ctx context.Context, groupID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)`,
		`DELETE FROM expenses WHERE group_id = ?`,
		`DELETE FROM group_members WHERE group_id = ?`,
		`DELETE FROM groups WHERE id = ?`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, r.db.Rebind(stmt), groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group deletion: %w", err)
	}
	return nil
}

// AddMember adds a user to a group
func (r *Repository) AddMember(ctx context.Context, groupID, userID uuid.UUID, joinedAt time.Time) error {
	query := `
		INSERT INTO group_members (group_id, user_id, joined_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), groupID, userID, database.Millis(joinedAt)); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a group
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `DELETE FROM group_members WHERE group_id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// GetMembers retrieves the members of a group with their profiles
func (r *Repository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]*Member, error) {
	query := `
		SELECT u.id, u.name, u.email, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ?
		ORDER BY gm.joined_at, u.name
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		var joinedAt int64
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.JoinedAt = database.FromMillis(joinedAt)
		members = append(members, m)
	}

	return members, rows.Err()
}

// SetSettledAt records when the group became fully settled; nil clears it
func (r *Repository) SetSettledAt(ctx context.Context, groupID uuid.UUID, at *time.Time) error {
	var value sql.NullInt64
	if at != nil {
		value = sql.NullInt64{Int64: database.Millis(*at), Valid: true}
	}

	query := `UPDATE groups SET settled_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), value, groupID); err != nil {
		return fmt.Errorf("failed to update settled_at: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(s scanner) (*Group, error) {
	g := &Group{}
	var (
		settledAt sql.NullInt64
		createdAt int64
	)
	if err := s.Scan(&g.ID, &g.Name, &g.CreatedBy, &settledAt, &createdAt); err != nil {
		return nil, err
	}
	if settledAt.Valid {
		t := database.FromMillis(settledAt.Int64)
		g.SettledAt = &t
	}
	g.CreatedAt = database.FromMillis(createdAt)
	return g, nil
}
