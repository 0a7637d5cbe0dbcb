package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ergasia-marketplace/internal/domain"
)

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) domain.TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) FetchByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `
		SELECT t.id::text, t.amount, t.type, t.from_id, t.job_id::text, t.created_at,
		       COALESCE(array_agg(tr.to_id) FILTER (WHERE tr.to_id IS NOT NULL), '{}') AS to_ids
		FROM transactions t
		LEFT JOIN transaction_recipients tr ON tr.transaction_id = t.id
		WHERE t.from_id = $1
		   OR EXISTS (SELECT 1 FROM transaction_recipients x WHERE x.transaction_id = t.id AND x.to_id = $1)
		GROUP BY t.id
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var txType string
		if err := rows.Scan(&t.ID, &t.Amount, &txType, &t.FromID, &t.JobID, &t.CreatedAt, &t.ToIDs); err != nil {
			return nil, err
		}
		t.Type = domain.TransactionType(txType)
		out = append(out, t)
	}
	return out, rows.Err()
}
