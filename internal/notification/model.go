package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a notification in the system
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Message     string
	IsRead      bool
	EntityType  *EntityType // what the notification is about, if anything
	EntityID    *uuid.UUID
	CreatedAt   time.Time
}

// EntityType names the kind of record a notification links to
type EntityType string

const (
	EntityTypeGroup      EntityType = "GROUP"
	EntityTypeExpense    EntityType = "EXPENSE"
	EntityTypeSettlement EntityType = "SETTLEMENT"
)

// NotificationResponse represents the response for a notification
type NotificationResponse struct {
	ID         uuid.UUID   `json:"id"`
	Message    string      `json:"message"`
	IsRead     bool        `json:"isRead"`
	EntityType *EntityType `json:"entityType,omitempty"`
	EntityID   *uuid.UUID  `json:"entityId,omitempty"`
	CreatedAt  string      `json:"createdAt"`
}

// ToResponse converts a Notification to a NotificationResponse
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:         n.ID,
		Message:    n.Message,
		IsRead:     n.IsRead,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
}
