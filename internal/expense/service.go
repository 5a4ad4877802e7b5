package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/grouplock"
	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/metrics"
)

// Common errors
var (
	ErrExpenseNotFound        = apperr.NotFound("Expense not found")
	ErrNotPayer               = apperr.Authorization("Only the payer can delete an expense")
	ErrCannotDeleteSettlement = apperr.Conflict("Settlements cannot be deleted")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	groups       GroupReader
	splitFactory *split.Factory
	notifier     Notifier
	locks        *grouplock.Locker
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groups GroupReader, splitFactory *split.Factory, notifier Notifier, locks *grouplock.Locker) *Service {
	return &Service{
		repo:         repo,
		groups:       groups,
		splitFactory: splitFactory,
		notifier:     notifier,
		locks:        locks,
	}
}

// Create validates the request, calculates the splits with the strategy for
// its split type and records the expense in the group.
func (s *Service) Create(ctx context.Context, groupID, callerID uuid.UUID, req *CreateExpenseRequest) (*Expense, error) {
	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	g, err := s.memberGroup(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}

	paidBy := callerID
	if req.PaidBy != nil {
		paidBy = *req.PaidBy
	}

	if err := Validate(g, paidBy, req); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.Create(req.SplitType)
	if err != nil {
		return nil, err
	}
	shares, err := strategy.Calculate(req.Amount, req.Splits)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		ID:          uuid.New(),
		GroupID:     g.ID,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		PaidBy:      paidBy,
		SplitType:   strategy.Type(),
		Splits:      make([]Split, len(shares)),
		CreatedAt:   time.Now().UTC(),
	}
	for i, share := range shares {
		e.Splits[i] = Split{UserID: share.UserID, Amount: share.Amount}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	// A new expense reopens a settled group. Settlements are recorded by the
	// settlement service and never pass through here.
	if g.SettledAt != nil && !e.IsSettlement() {
		if err := s.groups.SetSettledAt(ctx, g.ID, nil); err != nil {
			return nil, err
		}
	}

	metrics.ExpensesCreated.WithLabelValues(string(e.SplitType)).Inc()
	slog.InfoContext(ctx, "expense created",
		"expense_id", e.ID,
		"group_id", g.ID,
		"paid_by", paidBy,
		"amount", e.Amount.String(),
		"split_type", e.SplitType,
	)

	s.notifySplitMembers(ctx, e)
	return e, nil
}

// GetByID retrieves one expense of a group the caller belongs to
func (s *Service) GetByID(ctx context.Context, groupID, expenseID, callerID uuid.UUID) (*Expense, error) {
	if _, err := s.memberGroup(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil || e.GroupID != groupID {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// Delete removes an expense the caller paid for. Deleting changes the group's
// balances, so a settled group is reopened.
func (s *Service) Delete(ctx context.Context, groupID, expenseID, callerID uuid.UUID) error {
	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return err
	}
	defer unlock()

	g, err := s.memberGroup(ctx, groupID, callerID)
	if err != nil {
		return err
	}

	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil || e.GroupID != groupID {
		return ErrExpenseNotFound
	}
	if e.IsSettlement() {
		return ErrCannotDeleteSettlement
	}
	if e.PaidBy != callerID {
		return ErrNotPayer
	}

	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return err
	}

	if g.SettledAt != nil {
		if err := s.groups.SetSettledAt(ctx, g.ID, nil); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "expense deleted", "expense_id", e.ID, "group_id", groupID, "deleted_by", callerID)
	return nil
}

// ListByGroupID retrieves a page of a group's expenses, newest first
func (s *Service) ListByGroupID(ctx context.Context, groupID, callerID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if _, err := s.memberGroup(ctx, groupID, callerID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

func (s *Service) memberGroup(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if !g.HasMember(userID) {
		return nil, group.ErrNotMember
	}
	return g, nil
}

func (s *Service) notifySplitMembers(ctx context.Context, e *Expense) {
	for _, sp := range e.Splits {
		if sp.UserID == e.PaidBy {
			continue
		}
		if err := s.notifier.NotifyExpenseAdded(ctx, sp.UserID, e.Description, sp.Amount, e.ID); err != nil {
			slog.WarnContext(ctx, "failed to notify split member", "expense_id", e.ID, "user_id", sp.UserID, "error", err)
		}
	}
}
