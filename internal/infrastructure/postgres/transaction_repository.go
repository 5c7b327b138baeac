package postgres

import (
	"context"
	"fmt"

	"finsim/internal/domain/simulation"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByUserID returns every transaction for a user, ascending by date.
// The simulation pipeline depends on this ordering and tolerates an empty
// result (new users have no history yet).
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string) ([]simulation.Transaction, error) {
	query := `
		SELECT date, amount
		FROM transactions
		WHERE user_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []simulation.Transaction
	for rows.Next() {
		var tx simulation.Transaction
		if err := rows.Scan(&tx.Date, &tx.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
