package domain

import (
	"context"
	"time"
)

type TransactionType string

const (
	TransactionTopUp            TransactionType = "top_up"
	TransactionTransferToJob    TransactionType = "transfer_to_job"
	TransactionTransferToWorker TransactionType = "transfer_to_worker"
)

type Transaction struct {
	ID        string          `json:"id"`
	Amount    float64         `json:"amount"`
	Type      TransactionType `json:"transactionType"`
	FromID    string          `json:"fromId"`
	ToIDs     []string        `json:"toId"`
	JobID     *string         `json:"jobId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BalanceSummary is derived from a user's transaction history.
type BalanceSummary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

type TransactionRepository interface {
	// FetchByUser returns transactions the user sent or received, newest first.
	FetchByUser(ctx context.Context, userID string) ([]Transaction, error)
}

type WalletUsecase interface {
	History(ctx context.Context, userID string) ([]Transaction, error)
	Summary(ctx context.Context, userID string) (*BalanceSummary, error)
	Export(ctx context.Context, userID string) ([]byte, string, error)
}
