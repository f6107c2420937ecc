package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── Payment Transactions ───────────────────────────────────────────────────

// InsertTransaction records a pending checkout session.
func (d *DB) InsertTransaction(ctx context.Context, tx domain.PaymentTransaction) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO payment_transactions (id, session_id, user_id, plan_id, amount, currency, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.SessionID, tx.UserID, tx.PlanID, tx.Amount, tx.Currency,
		string(tx.Status), tx.CreatedAt.Unix(),
	)
	return err
}

// GetTransaction retrieves a transaction by checkout session ID.
func (d *DB) GetTransaction(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	var tx domain.PaymentTransaction
	var createdAt int64
	var updatedAt sql.NullInt64

	err := d.db.QueryRowContext(ctx,
		`SELECT id, session_id, user_id, plan_id, amount, currency, status, created_at, updated_at
		 FROM payment_transactions WHERE session_id = ?`, sessionID,
	).Scan(&tx.ID, &tx.SessionID, &tx.UserID, &tx.PlanID, &tx.Amount,
		&tx.Currency, &tx.Status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	tx.CreatedAt = time.Unix(createdAt, 0).UTC()
	tx.UpdatedAt = unixPtr(updatedAt)
	return &tx, nil
}

// MarkTransactionStatus updates a transaction's payment status.
func (d *DB) MarkTransactionStatus(ctx context.Context, sessionID string, status domain.PaymentStatus, at time.Time) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE payment_transactions SET status = ?, updated_at = ? WHERE session_id = ?`,
		string(status), at.Unix(), sessionID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
