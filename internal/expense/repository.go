package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Repository handles expense data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense and its splits in one transaction
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO expenses (id, group_id, description, amount, paid_by, split_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), e.ID, e.GroupID, e.Description, e.Amount.Cents(), e.PaidBy, string(e.SplitType), database.Millis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	for i, s := range e.Splits {
		_, err = tx.ExecContext(ctx, r.db.Rebind(`
			INSERT INTO expense_splits (expense_id, position, user_id, amount)
			VALUES (?, ?, ?, ?)
		`), e.ID, i, s.UserID, s.Amount.Cents())
		if err != nil {
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// Delete removes an expense and its splits
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM expense_splits WHERE expense_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM expenses WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense deletion: %w", err)
	}
	return nil
}

// GetByID retrieves an expense with its splits
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT id, group_id, description, amount, paid_by, split_type, created_at
		FROM expenses
		WHERE id = ?
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, r.db.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := r.attachSplits(ctx, []*Expense{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByGroupID retrieves a page of a group's expenses, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = ?`
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(countQuery), groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, group_id, description, amount, paid_by, split_type, created_at
		FROM expenses
		WHERE group_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`
	expenses, err := r.list(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListAllByGroupID retrieves a group's full expense history, oldest first
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID uuid.UUID) ([]*Expense, error) {
	query := `
		SELECT id, group_id, description, amount, paid_by, split_type, created_at
		FROM expenses
		WHERE group_id = ?
		ORDER BY created_at, id
	`
	return r.list(ctx, query, groupID)
}

// Stamp returns the number of expenses in a group and when the newest was created
func (r *Repository) Stamp(ctx context.Context, groupID uuid.UUID) (Stamp, error) {
	query := `
		SELECT COUNT(*), COALESCE(MAX(created_at), 0)
		FROM expenses
		WHERE group_id = ?
	`

	var s Stamp
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), groupID).Scan(&s.Count, &s.LastCreatedAt); err != nil {
		return Stamp{}, fmt.Errorf("failed to stamp expenses: %w", err)
	}
	return s, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	if err := r.attachSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachSplits loads the splits of all given expenses in one query
func (r *Repository) attachSplits(ctx context.Context, expenses []*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Expense, len(expenses))
	args := make([]any, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		e.Splits = nil
		args[i] = e.ID
	}

	query := `
		SELECT expense_id, user_id, amount
		FROM expense_splits
		WHERE expense_id IN (` + database.In(len(expenses)) + `)
		ORDER BY expense_id, position
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			expenseID uuid.UUID
			s         Split
			cents     int64
		)
		if err := rows.Scan(&expenseID, &s.UserID, &cents); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		s.Amount = money.Amount(cents)
		if e, ok := byID[expenseID]; ok {
			e.Splits = append(e.Splits, s)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*Expense, error) {
	e := &Expense{}
	var (
		amount    int64
		splitType string
		createdAt int64
	)
	if err := s.Scan(&e.ID, &e.GroupID, &e.Description, &amount, &e.PaidBy, &splitType, &createdAt); err != nil {
		return nil, err
	}
	e.Amount = money.Amount(amount)
	e.SplitType = split.SplitType(splitType)
	e.CreatedAt = database.FromMillis(createdAt)
	return e, nil
}
