package sqlite

import (
	"context"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── Trigger Log ────────────────────────────────────────────────────────────

// AppendTrigger inserts one trigger row.
func (d *DB) AppendTrigger(ctx context.Context, t domain.Trigger) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO triggers (id, user_id, type, description, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, string(t.Type), t.Description, t.Location, t.CreatedAt.Unix(),
	)
	return err
}

// TriggersSince returns a user's triggers at or after since, oldest
// first. A zero since returns the whole log.
func (d *DB) TriggersSince(ctx context.Context, userID string, since time.Time) ([]domain.Trigger, error) {
	sinceUnix := since.Unix()
	if since.IsZero() {
		sinceUnix = 0
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, user_id, type, description, location, created_at
		 FROM triggers WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at, rowid`,
		userID, sinceUnix,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triggers []domain.Trigger
	for rows.Next() {
		var t domain.Trigger
		var ts int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Description, &t.Location, &ts); err != nil {
			return nil, err
		}
		t.CreatedAt = time.Unix(ts, 0).UTC()
		triggers = append(triggers, t)
	}
	return triggers, rows.Err()
}

// CountTriggers returns the total number of triggers a user has logged.
func (d *DB) CountTriggers(ctx context.Context, userID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM triggers WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
