package group

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Group represents a group of users sharing expenses
type Group struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	Members   []uuid.UUID
	SettledAt *time.Time // set once every balance reached zero
	CreatedAt time.Time
}

// HasMember reports whether userID belongs to the group
func (g *Group) HasMember(userID uuid.UUID) bool {
	return slices.Contains(g.Members, userID)
}

// Member is a group member joined with their user profile
type Member struct {
	UserID   uuid.UUID
	Name     string
	Email    string
	JoinedAt time.Time
}
