package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetBalance(ctx context.Context, userID int32) (int32, error) {
	var balance int32
	query := `SELECT credits FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return balance, err
}

// Debit subtracts amount from the user's balance and records the ledger entry
// in one database transaction. The conditional UPDATE is the concurrency
// guard: two settlements racing on the same user cannot both pass it, so a
// committed balance never goes negative.
func (r *ledgerRepository) Debit(ctx context.Context, userID, amount int32, relatedMessageID *int32, description string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET credits = credits - $1, updated_on = $2 WHERE id = $3 AND credits >= $1`,
		amount, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		available, balErr := r.GetBalance(ctx, userID)
		if balErr != nil {
			return balErr
		}
		return &domain.InsufficientCreditsError{UserID: userID, Required: amount, Available: available}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (user_id, amount, type, related_message_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, -amount, domain.EntryTypeExchangeDebit, relatedMessageID, description, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ledgerRepository) Credit(ctx context.Context, userID, amount int32, entryType domain.EntryType, relatedMessageID *int32, description string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET credits = credits + $1, updated_on = $2 WHERE id = $3`,
		amount, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (user_id, amount, type, related_message_id, description, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, amount, entryType, relatedMessageID, description, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ledgerRepository) ListEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, amount, type, related_message_id, COALESCE(description, ''), created_on
	          FROM ledger_entries WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM ledger_entries WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Type, &e.RelatedMessageID, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
