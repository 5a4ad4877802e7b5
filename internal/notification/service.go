package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Common errors
var (
	ErrNotificationNotFound = apperr.NotFound("Notification not found")
	ErrNotRecipient         = apperr.Authorization("You are not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create creates a new notification
func (s *Service) Create(ctx context.Context, recipientID uuid.UUID, message string, entityType EntityType, entityID uuid.UUID) (*Notification, error) {
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Message:     message,
		EntityType:  &entityType,
		EntityID:    &entityID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByRecipientID retrieves a page of a user's notifications
func (s *Service) ListByRecipientID(ctx context.Context, recipientID uuid.UUID, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks one of the user's notifications as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for creating specific notification types

// NotifyMemberAdded tells a user they were added to a group
func (s *Service) NotifyMemberAdded(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error {
	_, err := s.Create(ctx, recipientID, "You have been added to the group "+groupName, EntityTypeGroup, groupID)
	return err
}

// NotifyMemberRemoved tells a user the group creator removed them
func (s *Service) NotifyMemberRemoved(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error {
	_, err := s.Create(ctx, recipientID, "You have been removed from the group "+groupName, EntityTypeGroup, groupID)
	return err
}

// NotifyExpenseAdded tells a split member their share of a new expense
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID uuid.UUID, description string, share money.Amount, expenseID uuid.UUID) error {
	message := fmt.Sprintf("You owe %s for %q", share, description)
	_, err := s.Create(ctx, recipientID, message, EntityTypeExpense, expenseID)
	return err
}

// NotifySettlementRecorded tells a creditor they were paid
func (s *Service) NotifySettlementRecorded(ctx context.Context, recipientID uuid.UUID, amount money.Amount, groupName string, expenseID uuid.UUID) error {
	message := fmt.Sprintf("You received a settlement of %s in %s", amount, groupName)
	_, err := s.Create(ctx, recipientID, message, EntityTypeSettlement, expenseID)
	return err
}

// NotifyGroupSettled tells a member that every balance in a group is zero
func (s *Service) NotifyGroupSettled(ctx context.Context, recipientID uuid.UUID, groupName string, groupID uuid.UUID) error {
	_, err := s.Create(ctx, recipientID, groupName+" is fully settled", EntityTypeGroup, groupID)
	return err
}
