package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Repository reads recorded settlements out of the expense tables
type Repository struct {
	db *database.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// settlementFilter matches expenses recorded by settle up
const settlementFilter = `
	e.group_id = ? AND e.description = ?
	AND (SELECT COUNT(*) FROM expense_splits x WHERE x.expense_id = e.id) = 1
`

// ListByGroupID retrieves a page of a group's settlements, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses e WHERE ` + settlementFilter
	err := r.db.QueryRowContext(ctx, r.db.Rebind(countQuery), groupID, expense.SettlementDescription).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.paid_by, p.name, s.user_id, recv.name, e.amount, e.created_at
		FROM expenses e
		JOIN expense_splits s ON s.expense_id = e.id
		JOIN users p ON e.paid_by = p.id
		JOIN users recv ON s.user_id = recv.id
		WHERE ` + settlementFilter + `
		ORDER BY e.created_at DESC, e.id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), groupID, expense.SettlementDescription, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		var amount, createdAt int64
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.PayerID,
			&s.PayerName,
			&s.ReceiverID,
			&s.ReceiverName,
			&amount,
			&createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		s.Amount = money.Amount(amount)
		s.CreatedAt = database.FromMillis(createdAt)
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}

	return settlements, total, nil
}
