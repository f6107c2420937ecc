package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── User Profiles ──────────────────────────────────────────────────────────

// InsertUser creates a new user row.
func (d *DB) InsertUser(u domain.UserProfile) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, email, telegram_id, name, password_hash,
			cigarettes_per_day, cost_per_pack, cigarettes_per_pack,
			quit_date, subscription, subscription_end, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, nullStr(u.Email), nullInt64(u.TelegramID), u.Name, u.PasswordHash,
		u.CigarettesPerDay, u.CostPerPack, u.CigarettesPerPack,
		nullableUnix(u.QuitDate), string(u.Subscription), nullableUnix(u.SubscriptionEnd),
		u.CreatedAt.Unix(),
	)
	return err
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(id string) (*domain.UserProfile, error) {
	return scanUser(d.db.QueryRow(selectUser+` WHERE id = ?`, id))
}

// GetUserByEmail retrieves a user by email.
func (d *DB) GetUserByEmail(email string) (*domain.UserProfile, error) {
	return scanUser(d.db.QueryRow(selectUser+` WHERE email = ?`, email))
}

// GetUserByTelegramID retrieves a user by Telegram ID.
func (d *DB) GetUserByTelegramID(telegramID int64) (*domain.UserProfile, error) {
	return scanUser(d.db.QueryRow(selectUser+` WHERE telegram_id = ?`, telegramID))
}

// UpdateProfile overwrites the mutable profile fields.
func (d *DB) UpdateProfile(u domain.UserProfile) error {
	res, err := d.db.Exec(
		`UPDATE users SET name = ?, cigarettes_per_day = ?, cost_per_pack = ?,
			cigarettes_per_pack = ?, quit_date = ? WHERE id = ?`,
		u.Name, u.CigarettesPerDay, u.CostPerPack,
		u.CigarettesPerPack, nullableUnix(u.QuitDate), u.ID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// SetSubscription updates a user's subscription tier and expiry.
func (d *DB) SetSubscription(userID string, tier domain.SubscriptionTier, end *time.Time) error {
	res, err := d.db.Exec(
		`UPDATE users SET subscription = ?, subscription_end = ? WHERE id = ?`,
		string(tier), nullableUnix(end), userID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

const selectUser = `SELECT id, email, telegram_id, name, password_hash,
	cigarettes_per_day, cost_per_pack, cigarettes_per_pack,
	quit_date, subscription, subscription_end, created_at FROM users`

func scanUser(row *sql.Row) (*domain.UserProfile, error) {
	var u domain.UserProfile
	var email sql.NullString
	var telegramID, quitDate, subEnd sql.NullInt64
	var createdAt int64

	err := row.Scan(&u.ID, &email, &telegramID, &u.Name, &u.PasswordHash,
		&u.CigarettesPerDay, &u.CostPerPack, &u.CigarettesPerPack,
		&quitDate, &u.Subscription, &subEnd, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Email = email.String
	u.TelegramID = telegramID.Int64
	u.QuitDate = unixPtr(quitDate)
	u.SubscriptionEnd = unixPtr(subEnd)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ─── Scan helpers ───────────────────────────────────────────────────────────

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(n int64) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func nullableUnix(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func unixPtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0).UTC()
	return &t
}
