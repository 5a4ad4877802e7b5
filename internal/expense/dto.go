package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	Description string             `json:"description"`
	Amount      money.Amount       `json:"amount"`
	PaidBy      *uuid.UUID         `json:"paidBy,omitempty"` // defaults to the caller
	SplitType   split.SplitType    `json:"splitType"`
	Splits      []split.SplitInput `json:"splits"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID           uuid.UUID        `json:"id"`
	Group        uuid.UUID        `json:"group"`
	Description  string           `json:"description"`
	Amount       money.Amount     `json:"amount"`
	PaidBy       uuid.UUID        `json:"paidBy"`
	SplitType    split.SplitType  `json:"splitType"`
	Splits       []*SplitResponse `json:"splits"`
	IsSettlement bool             `json:"isSettlement"`
	CreatedAt    string           `json:"createdAt"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	User   uuid.UUID    `json:"user"`
	Amount money.Amount `json:"amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	splits := make([]*SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &SplitResponse{User: s.UserID, Amount: s.Amount}
	}

	return &ExpenseResponse{
		ID:           e.ID,
		Group:        e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		SplitType:    e.SplitType,
		Splits:       splits,
		IsSettlement: e.IsSettlement(),
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
