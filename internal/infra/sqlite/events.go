package sqlite

import (
	"context"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── Event Log ──────────────────────────────────────────────────────────────
// Append-only: the only write is a single INSERT, so there is no
// read-modify-write race between concurrent appends.

// AppendEvent inserts one event row.
func (d *DB) AppendEvent(ctx context.Context, e domain.Event) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO events (id, user_id, type, context, intensity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, string(e.Type), e.Context, e.Intensity, e.CreatedAt.Unix(),
	)
	return err
}

// EventsSince returns a user's events at or after since, oldest first.
// A zero since returns the whole log. Ties on created_at keep insertion
// order via rowid. typeFilter narrows to one event type when non-empty.
func (d *DB) EventsSince(ctx context.Context, userID string, since time.Time, typeFilter domain.EventType) ([]domain.Event, error) {
	query := `SELECT id, user_id, type, context, intensity, created_at
		FROM events WHERE user_id = ? AND created_at >= ?`
	args := []interface{}{userID, since.Unix()}
	if since.IsZero() {
		args[1] = int64(0)
	}
	if typeFilter != "" {
		query += ` AND type = ?`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Context, &e.Intensity, &ts); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(ts, 0).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the total number of events a user has logged.
func (d *DB) CountEvents(ctx context.Context, userID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
