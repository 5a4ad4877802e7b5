package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
)

// Repository handles notification data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification into the database
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, message, entity_type, entity_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var entityType sql.NullString
	if n.EntityType != nil {
		entityType = sql.NullString{String: string(*n.EntityType), Valid: true}
	}
	var entityID uuid.NullUUID
	if n.EntityID != nil {
		entityID = uuid.NullUUID{UUID: *n.EntityID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		n.ID, n.RecipientID, n.Message, entityType, entityID, n.IsRead, database.Millis(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	query := `
		SELECT id, recipient_id, message, is_read, entity_type, entity_id, created_at
		FROM notifications
		WHERE id = ?
	`

	n, err := scanNotification(r.db.QueryRowContext(ctx, r.db.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListByRecipientID retrieves a page of a user's notifications, newest first
func (r *Repository) ListByRecipientID(ctx context.Context, recipientID uuid.UUID, limit, offset int, unreadOnly bool) ([]*Notification, int, error) {
	where := ` WHERE recipient_id = ?`
	args := []any{recipientID}
	if unreadOnly {
		where += ` AND is_read = ?`
		args = append(args, false)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications` + where
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(countQuery), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, recipient_id, message, is_read, entity_type, entity_id, created_at
		FROM notifications` + where + `
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}

// MarkAsRead marks a notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), true, id); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a user
func (r *Repository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = ? WHERE recipient_id = ? AND is_read = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), true, recipientID, false); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread notifications for a user
func (r *Repository) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = ?`
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), recipientID, false).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (*Notification, error) {
	n := &Notification{}
	var (
		entityType sql.NullString
		entityID   uuid.NullUUID
		createdAt  int64
	)
	if err := s.Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &entityType, &entityID, &createdAt); err != nil {
		return nil, err
	}
	if entityType.Valid {
		t := EntityType(entityType.String)
		n.EntityType = &t
	}
	if entityID.Valid {
		id := entityID.UUID
		n.EntityID = &id
	}
	n.CreatedAt = database.FromMillis(createdAt)
	return n, nil
}
