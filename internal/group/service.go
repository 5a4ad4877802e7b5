package group

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/grouplock"
	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Common errors
var (
	ErrGroupNotFound       = apperr.NotFound("Group not found")
	ErrUserNotFound        = apperr.NotFound("No user found with that email")
	ErrNotMember           = apperr.Authorization("You are not a member of this group")
	ErrMemberAlreadyExists = apperr.Conflict("User is already a member of this group")
	ErrCreatorCannotLeave  = apperr.Conflict("The group creator cannot leave the group")
	ErrOutstandingBalance  = apperr.Conflict("You cannot leave the group with an outstanding balance")
	ErrNameRequired        = apperr.Validation("Group name is required")
	ErrEmailRequired       = apperr.Validation("Email is required")
	ErrNotCreator          = apperr.Authorization("Only the group creator can do this")
	ErrMemberNotFound      = apperr.NotFound("User is not a member of this group")
	ErrGroupHasBalances    = apperr.Conflict("The group still has outstanding balances")
)

// Summary pairs a group with the caller's net balance in it
type Summary struct {
	Group   *Group
	Balance money.Amount
}

// Service handles group business logic
type Service struct {
	repo     *Repository
	users    UserFinder
	balances BalanceSource
	notifier Notifier
	locks    *grouplock.Locker
}

// NewService creates a new group service
func NewService(repo *Repository, users UserFinder, balances BalanceSource, notifier Notifier, locks *grouplock.Locker) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		balances: balances,
		notifier: notifier,
		locks:    locks,
	}
}

// Create creates a new group with the creator as its first member
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateGroupRequest) (*Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	g := &Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creatorID,
		Members:   []uuid.UUID{creatorID},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "group created", "group_id", g.ID, "created_by", creatorID)
	return g, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// GetForMember retrieves a group the caller belongs to
func (s *Service) GetForMember(ctx context.Context, id, userID uuid.UUID) (*Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.HasMember(userID) {
		return nil, ErrNotMember
	}
	return g, nil
}

// GetByIDWithMembers retrieves a group with all its member profiles
func (s *Service) GetByIDWithMembers(ctx context.Context, id, userID uuid.UUID) (*Group, []*Member, error) {
	g, err := s.GetForMember(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return g, members, nil
}

// ListByUserID retrieves a page of the groups a user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID uuid.UUID, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID, userID uuid.UUID) ([]*Member, error) {
	if _, err := s.GetForMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(ctx, groupID)
}

// AddMember adds the user with the given email to a group the caller belongs to
func (s *Service) AddMember(ctx context.Context, groupID, callerID uuid.UUID, req *AddMemberRequest) (*Member, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	g, err := s.GetForMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if g.HasMember(u.ID) {
		return nil, ErrMemberAlreadyExists
	}

	joinedAt := time.Now().UTC()
	if err := s.repo.AddMember(ctx, groupID, u.ID, joinedAt); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyMemberAdded(ctx, u.ID, g.Name, g.ID); err != nil {
		slog.WarnContext(ctx, "failed to notify new member", "group_id", g.ID, "user_id", u.ID, "error", err)
	}

	slog.InfoContext(ctx, "member added", "group_id", g.ID, "user_id", u.ID, "added_by", callerID)
	return &Member{UserID: u.ID, Name: u.Name, Email: u.Email, JoinedAt: joinedAt}, nil
}

// Update renames a group the caller belongs to
func (s *Service) Update(ctx context.Context, groupID, callerID uuid.UUID, req *UpdateGroupRequest) (*Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	g, err := s.GetForMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, groupID, name); err != nil {
		return nil, err
	}
	g.Name = name

	slog.InfoContext(ctx, "group renamed", "group_id", groupID, "renamed_by", callerID)
	return g, nil
}

// Delete removes a group and its history. Only the creator may delete it and
// only while every balance is zero.
func (s *Service) Delete(ctx context.Context, groupID, callerID uuid.UUID) error {
	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := s.GetForMember(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if g.CreatedBy != callerID {
		return ErrNotCreator
	}

	balances, err := s.balances.MemberBalances(ctx, g)
	if err != nil {
		return err
	}
	for _, balance := range balances {
		if balance != 0 {
			return ErrGroupHasBalances
		}
	}

	if err := s.repo.Delete(ctx, groupID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "group deleted", "group_id", groupID, "deleted_by", callerID)
	return nil
}

// Leave removes the caller from a group. Only members whose net balance is
// exactly zero may leave, and the creator never leaves.
func (s *Service) Leave(ctx context.Context, groupID, userID uuid.UUID) error {
	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := s.GetForMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if err := s.removeMember(ctx, g, userID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "member left group", "group_id", groupID, "user_id", userID)
	return nil
}

// RemoveMember lets the creator remove another member. The same zero-balance
// rule as Leave applies to the removed member.
func (s *Service) RemoveMember(ctx context.Context, groupID, callerID, userID uuid.UUID) error {
	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := s.GetForMember(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if g.CreatedBy != callerID {
		return ErrNotCreator
	}
	if !g.HasMember(userID) {
		return ErrMemberNotFound
	}
	if err := s.removeMember(ctx, g, userID); err != nil {
		return err
	}

	if err := s.notifier.NotifyMemberRemoved(ctx, userID, g.Name, g.ID); err != nil {
		slog.WarnContext(ctx, "failed to notify removed member", "group_id", g.ID, "user_id", userID, "error", err)
	}

	slog.InfoContext(ctx, "member removed", "group_id", groupID, "user_id", userID, "removed_by", callerID)
	return nil
}

func (s *Service) removeMember(ctx context.Context, g *Group, userID uuid.UUID) error {
	if g.CreatedBy == userID {
		return ErrCreatorCannotLeave
	}

	balances, err := s.balances.MemberBalances(ctx, g)
	if err != nil {
		return err
	}
	if balance := balances[userID]; balance != 0 {
		return ErrOutstandingBalance.WithDetails(map[string]any{"balance": balance})
	}

	return s.repo.RemoveMember(ctx, g.ID, userID)
}

// Summary lists every group of the user with their own net balance
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) ([]*Summary, error) {
	groups, err := s.repo.ListAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*Summary, 0, len(groups))
	for _, g := range groups {
		balances, err := s.balances.MemberBalances(ctx, g)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &Summary{Group: g, Balance: balances[userID]})
	}

	return summaries, nil
}
