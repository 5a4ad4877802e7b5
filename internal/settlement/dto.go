package settlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/pkg/money"
)

// SettleUpRequest represents a payment from the caller to another member
type SettleUpRequest struct {
	ToUser uuid.UUID    `json:"toUser"`
	Amount money.Amount `json:"amount"`
}

// BalanceResponse is one member's net balance
type BalanceResponse struct {
	UserID uuid.UUID    `json:"userId"`
	Net    money.Amount `json:"net"`
}

// TransferResponse is a suggested payment
type TransferResponse struct {
	From   uuid.UUID    `json:"from"`
	To     uuid.UUID    `json:"to"`
	Amount money.Amount `json:"amount"`
}

// ReportResponse represents the balance report of a group
type ReportResponse struct {
	Balances    []*BalanceResponse  `json:"balances"`
	Settlements []*TransferResponse `json:"settlements"`
}

// SettleUpResponse represents the recorded settlement
type SettleUpResponse struct {
	Settlement   *expense.ExpenseResponse `json:"settlement"`
	GroupSettled bool                     `json:"groupSettled"`
}

// SettlementResponse represents a settlement in the group history
type SettlementResponse struct {
	ID           uuid.UUID    `json:"id"`
	PayerID      uuid.UUID    `json:"payerId"`
	PayerName    string       `json:"payerName,omitempty"`
	ReceiverID   uuid.UUID    `json:"receiverId"`
	ReceiverName string       `json:"receiverName,omitempty"`
	Amount       money.Amount `json:"amount"`
	CreatedAt    string       `json:"createdAt"`
}

// ToResponse converts a Report to a ReportResponse DTO
func (r *Report) ToResponse() *ReportResponse {
	resp := &ReportResponse{
		Balances:    make([]*BalanceResponse, len(r.Balances)),
		Settlements: make([]*TransferResponse, len(r.Settlements)),
	}
	for i, b := range r.Balances {
		resp.Balances[i] = &BalanceResponse{UserID: b.UserID, Net: b.Net}
	}
	for i, t := range r.Settlements {
		resp.Settlements[i] = &TransferResponse{From: t.From, To: t.To, Amount: t.Amount}
	}
	return resp
}

// ToResponse converts a Result to a SettleUpResponse DTO
func (r *Result) ToResponse() *SettleUpResponse {
	return &SettleUpResponse{
		Settlement:   r.Expense.ToResponse(),
		GroupSettled: r.GroupSettled,
	}
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		PayerID:      s.PayerID,
		PayerName:    s.PayerName,
		ReceiverID:   s.ReceiverID,
		ReceiverName: s.ReceiverName,
		Amount:       s.Amount,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}
