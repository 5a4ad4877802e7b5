package group

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/pkg/money"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// UpdateGroupRequest represents the request to rename a group
type UpdateGroupRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	Email string `json:"email"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	CreatedBy uuid.UUID         `json:"createdBy"`
	MemberIDs []uuid.UUID       `json:"memberIds"`
	SettledAt *string           `json:"settledAt"`
	CreatedAt string            `json:"createdAt"`
	Members   []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt string    `json:"joinedAt"`
}

// SummaryResponse is one row of the caller's groups overview
type SummaryResponse struct {
	GroupID     uuid.UUID    `json:"groupId"`
	Name        string       `json:"name"`
	MemberCount int          `json:"memberCount"`
	Balance     money.Amount `json:"balance"`
	SettledAt   *string      `json:"settledAt"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		MemberIDs: g.Members,
		SettledAt: formatOptional(g.SettledAt),
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:   m.UserID,
		Name:     m.Name,
		Email:    m.Email,
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
}

// ToResponse converts a Summary to a SummaryResponse DTO
func (s *Summary) ToResponse() *SummaryResponse {
	return &SummaryResponse{
		GroupID:     s.Group.ID,
		Name:        s.Group.Name,
		MemberCount: len(s.Group.Members),
		Balance:     s.Balance,
		SettledAt:   formatOptional(s.Group.SettledAt),
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
