package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/internal/group"
	"github.com/fkhayef/splitledger/internal/grouplock"
	"github.com/fkhayef/splitledger/pkg/apperr"
	"github.com/fkhayef/splitledger/pkg/metrics"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Common errors
var (
	ErrInvalidAmount    = apperr.Validation("Invalid settlement amount")
	ErrCannotSettleSelf = apperr.Conflict("You cannot settle with yourself")
	ErrNotGroupMembers  = apperr.Authorization("Users must be group members")
	ErrAlreadySettled   = apperr.Conflict("This group is already fully settled")
	ErrNoDebt           = apperr.Conflict("You do not owe any money in this group")
	ErrNotOwed          = apperr.Conflict("Selected user is not owed any money")
	ErrExceedsDebt      = apperr.Conflict("Settlement amount exceeds outstanding balance")
)

// Service computes balances and records settlements
type Service struct {
	repo     *Repository
	groups   GroupStore
	expenses ExpenseStore
	cache    BalanceCache
	notifier Notifier
	locks    *grouplock.Locker
}

// NewService creates a new settlement service
func NewService(repo *Repository, groups GroupStore, expenses ExpenseStore, cache BalanceCache, notifier Notifier, locks *grouplock.Locker) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		expenses: expenses,
		cache:    cache,
		notifier: notifier,
		locks:    locks,
	}
}

// MemberBalances returns the net balance of every current member of g
func (s *Service) MemberBalances(ctx context.Context, g *group.Group) (map[uuid.UUID]money.Amount, error) {
	return s.balances(ctx, g)
}

// Report returns the balances of a group the caller belongs to, together with
// the transfers that would settle it
func (s *Service) Report(ctx context.Context, groupID, callerID uuid.UUID) (*Report, error) {
	g, err := s.memberGroup(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}

	b, err := s.balances(ctx, g)
	if err != nil {
		return nil, err
	}

	return &Report{
		Balances:    b.Sorted(),
		Settlements: balance.Simplify(b),
	}, nil
}

// SettleUp records a payment from the caller to another member. The caller
// must owe money, the receiver must be owed money and the amount may not
// exceed the caller's debt.
func (s *Service) SettleUp(ctx context.Context, groupID, callerID uuid.UUID, req *SettleUpRequest) (*Result, error) {
	if req.Amount <= 0 || req.ToUser == uuid.Nil {
		return nil, ErrInvalidAmount
	}
	if req.ToUser == callerID {
		return nil, ErrCannotSettleSelf
	}

	unlock, err := s.locks.Lock(ctx, groupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if !g.HasMember(callerID) || !g.HasMember(req.ToUser) {
		return nil, ErrNotGroupMembers
	}

	b, err := s.balances(ctx, g)
	if err != nil {
		return nil, err
	}
	if b.AllZero() {
		return nil, ErrAlreadySettled
	}
	if b[callerID] >= 0 {
		return nil, ErrNoDebt
	}
	if b[req.ToUser] <= 0 {
		return nil, ErrNotOwed
	}

	debt := -b[callerID]
	if req.Amount > debt {
		return nil, ErrExceedsDebt.
			WithMessage("Settlement amount exceeds outstanding balance (%s)", debt.Short()).
			WithDetails(map[string]any{"outstanding": debt})
	}

	e := &expense.Expense{
		ID:          uuid.New(),
		GroupID:     g.ID,
		Description: expense.SettlementDescription,
		Amount:      req.Amount,
		PaidBy:      callerID,
		SplitType:   split.SplitTypeExact,
		Splits:      []expense.Split{{UserID: req.ToUser, Amount: req.Amount}},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	metrics.SettlementsRecorded.Inc()
	slog.InfoContext(ctx, "settlement recorded",
		"expense_id", e.ID,
		"group_id", g.ID,
		"from", callerID,
		"to", req.ToUser,
		"amount", e.Amount.String(),
	)

	if err := s.notifier.NotifySettlementRecorded(ctx, req.ToUser, e.Amount, g.Name, e.ID); err != nil {
		slog.WarnContext(ctx, "failed to notify settlement receiver", "expense_id", e.ID, "user_id", req.ToUser, "error", err)
	}

	b[callerID] += req.Amount
	b[req.ToUser] -= req.Amount

	settled := b.AllZero()
	if settled {
		if err := s.markSettled(ctx, g); err != nil {
			return nil, err
		}
	}

	return &Result{Expense: e, GroupSettled: settled}, nil
}

// ListByGroupID retrieves a page of the settlements recorded in a group
func (s *Service) ListByGroupID(ctx context.Context, groupID, callerID uuid.UUID, page, perPage int) ([]*Settlement, int, error) {
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

func (s *Service) markSettled(ctx context.Context, g *group.Group) error {
	now := time.Now().UTC()
	if err := s.groups.SetSettledAt(ctx, g.ID, &now); err != nil {
		return err
	}

	slog.InfoContext(ctx, "group settled", "group_id", g.ID)
	for _, memberID := range g.Members {
		if err := s.notifier.NotifyGroupSettled(ctx, memberID, g.Name, g.ID); err != nil {
			slog.WarnContext(ctx, "failed to notify group settled", "group_id", g.ID, "user_id", memberID, "error", err)
		}
	}
	return nil
}

// balances folds the group's expense history, reusing a cached result while
// no expense has been added since it was stored
func (s *Service) balances(ctx context.Context, g *group.Group) (balance.Balances, error) {
	stamp, err := s.expenses.Stamp(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	key := cacheKey(g.ID, stamp)

	cached, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.BalanceCacheLookups.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "balance cache read failed", "group_id", g.ID, "error", err)
	case ok:
		metrics.BalanceCacheLookups.WithLabelValues("hit").Inc()
		return forMembers(cached, g.Members), nil
	default:
		metrics.BalanceCacheLookups.WithLabelValues("miss").Inc()
	}

	expenses, err := s.expenses.ListAllByGroupID(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	b := balance.Compute(g.Members, expenses)

	if err := s.cache.Set(ctx, key, b); err != nil {
		slog.WarnContext(ctx, "balance cache write failed", "group_id", g.ID, "error", err)
	}
	return forMembers(b, g.Members), nil
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

// forMembers returns a copy of b holding every current member. Former
// members only stay in while their balance is non-zero.
func forMembers(b balance.Balances, members []uuid.UUID) balance.Balances {
	out := make(balance.Balances, len(members))
	for _, m := range members {
		out[m] = b[m]
	}
	for id, net := range b {
		if net != 0 {
			out[id] = net
		}
	}
	return out
}

func cacheKey(groupID uuid.UUID, stamp expense.Stamp) string {
	return fmt.Sprintf("balances:%s:%d:%d", groupID, stamp.Count, stamp.LastCreatedAt)
}
