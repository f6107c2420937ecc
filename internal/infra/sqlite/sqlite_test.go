package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertTestUser(t *testing.T, db *DB, id string) domain.UserProfile {
	t.Helper()
	user := domain.UserProfile{
		ID:                id,
		Email:             id + "@example.com",
		Name:              "Test User",
		CigarettesPerDay:  10,
		CostPerPack:       10.0,
		CigarettesPerPack: 20,
		Subscription:      domain.TierFree,
		CreatedAt:         time.Now().UTC(),
	}
	if err := db.InsertUser(user); err != nil {
		t.Fatalf("InsertUser() error: %v", err)
	}
	return user
}

// ─── Database Lifecycle ─────────────────────────────────────────────────────

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "nosmoke.db")); os.IsNotExist(err) {
		t.Error("nosmoke.db should exist")
	}
}

func TestOpen_Ping(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
}

// ─── Users ──────────────────────────────────────────────────────────────────

func TestGetUser_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	quit := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	want := insertTestUser(t, db, "u1")
	want.QuitDate = &quit
	if err := db.UpdateProfile(want); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}

	got, err := db.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if got.Email != want.Email || got.CigarettesPerDay != 10 {
		t.Errorf("user mismatch: %+v", got)
	}
	if got.QuitDate == nil || !got.QuitDate.Equal(quit) {
		t.Errorf("quit date: expected %v, got %v", quit, got.QuitDate)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetUser("missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserByTelegramID(t *testing.T) {
	db := newTestDB(t)
	user := domain.UserProfile{
		ID:                "tg1",
		TelegramID:        42,
		Name:              "TG User",
		CigarettesPerDay:  10,
		CostPerPack:       10,
		CigarettesPerPack: 20,
		Subscription:      domain.TierFree,
		CreatedAt:         time.Now().UTC(),
	}
	if err := db.InsertUser(user); err != nil {
		t.Fatalf("InsertUser() error: %v", err)
	}

	got, err := db.GetUserByTelegramID(42)
	if err != nil {
		t.Fatalf("GetUserByTelegramID() error: %v", err)
	}
	if got.ID != "tg1" {
		t.Errorf("expected tg1, got %s", got.ID)
	}
}

func TestSetSubscription(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")

	end := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Second)
	if err := db.SetSubscription("u1", domain.TierPremium, &end); err != nil {
		t.Fatalf("SetSubscription() error: %v", err)
	}

	got, _ := db.GetUser("u1")
	if got.Subscription != domain.TierPremium {
		t.Errorf("tier: expected premium, got %s", got.Subscription)
	}
	if got.SubscriptionEnd == nil || !got.SubscriptionEnd.Equal(end) {
		t.Errorf("subscription end: expected %v, got %v", end, got.SubscriptionEnd)
	}
}

// ─── Event Log ──────────────────────────────────────────────────────────────

func TestAppendEvent_OrderedReads(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of chronological order; same-timestamp rows keep
	// insertion order via rowid.
	rows := []domain.Event{
		{ID: "e2", UserID: "u1", Type: domain.EventResisted, CreatedAt: base.Add(time.Hour)},
		{ID: "e1", UserID: "u1", Type: domain.EventCigarette, CreatedAt: base},
		{ID: "e3", UserID: "u1", Type: domain.EventResisted, CreatedAt: base.Add(time.Hour)},
	}
	for _, e := range rows {
		if err := db.AppendEvent(ctx, e); err != nil {
			t.Fatalf("AppendEvent(%s) error: %v", e.ID, err)
		}
	}

	events, err := db.EventsSince(ctx, "u1", time.Time{}, "")
	if err != nil {
		t.Fatalf("EventsSince() error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].ID != "e1" || events[1].ID != "e2" || events[2].ID != "e3" {
		t.Errorf("order wrong: %s %s %s", events[0].ID, events[1].ID, events[2].ID)
	}
}

func TestEventsSince_WindowAndFilter(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, typ := range []domain.EventType{domain.EventCigarette, domain.EventResisted, domain.EventCigarette} {
		e := domain.Event{ID: string(rune('a' + i)), UserID: "u1", Type: typ,
			CreatedAt: base.AddDate(0, 0, i)}
		if err := db.AppendEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := db.EventsSince(ctx, "u1", base.AddDate(0, 0, 1), "")
	if err != nil {
		t.Fatalf("EventsSince() error: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("window: expected 2, got %d", len(recent))
	}

	cigs, err := db.EventsSince(ctx, "u1", time.Time{}, domain.EventCigarette)
	if err != nil {
		t.Fatalf("EventsSince(filter) error: %v", err)
	}
	if len(cigs) != 2 {
		t.Errorf("filter: expected 2 cigarettes, got %d", len(cigs))
	}
}

func TestEvents_PerUserIsolation(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")
	insertTestUser(t, db, "u2")
	ctx := context.Background()

	e := domain.Event{ID: "e1", UserID: "u1", Type: domain.EventCigarette, CreatedAt: time.Now().UTC()}
	if err := db.AppendEvent(ctx, e); err != nil {
		t.Fatalf("append: %v", err)
	}

	other, err := db.EventsSince(ctx, "u2", time.Time{}, "")
	if err != nil {
		t.Fatalf("EventsSince() error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("u2 sees u1's events: %v", other)
	}

	n, err := db.CountEvents(ctx, "u1")
	if err != nil || n != 1 {
		t.Errorf("CountEvents: expected 1, got %d (%v)", n, err)
	}
}

// ─── Trigger Log ────────────────────────────────────────────────────────────

func TestAppendTrigger_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")
	ctx := context.Background()

	tr := domain.Trigger{
		ID: "t1", UserID: "u1", Type: domain.TriggerStress,
		Description: "deadline", Location: "office",
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := db.AppendTrigger(ctx, tr); err != nil {
		t.Fatalf("AppendTrigger() error: %v", err)
	}

	triggers, err := db.TriggersSince(ctx, "u1", time.Time{})
	if err != nil {
		t.Fatalf("TriggersSince() error: %v", err)
	}
	if len(triggers) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(triggers))
	}
	got := triggers[0]
	if got.Type != domain.TriggerStress || got.Description != "deadline" || got.Location != "office" {
		t.Errorf("trigger mismatch: %+v", got)
	}

	n, err := db.CountTriggers(ctx, "u1")
	if err != nil || n != 1 {
		t.Errorf("CountTriggers: expected 1, got %d (%v)", n, err)
	}
}

// ─── Payment Transactions ───────────────────────────────────────────────────

func TestTransactions_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	insertTestUser(t, db, "u1")
	ctx := context.Background()

	tx := domain.PaymentTransaction{
		ID: "p1", SessionID: "cs_123", UserID: "u1", PlanID: "premium_monthly",
		Amount: 4.99, Currency: "usd", Status: domain.PaymentPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.InsertTransaction(ctx, tx); err != nil {
		t.Fatalf("InsertTransaction() error: %v", err)
	}

	got, err := db.GetTransaction(ctx, "cs_123")
	if err != nil {
		t.Fatalf("GetTransaction() error: %v", err)
	}
	if got.Status != domain.PaymentPending || got.PlanID != "premium_monthly" {
		t.Errorf("transaction mismatch: %+v", got)
	}

	if err := db.MarkTransactionStatus(ctx, "cs_123", domain.PaymentPaid, time.Now().UTC()); err != nil {
		t.Fatalf("MarkTransactionStatus() error: %v", err)
	}
	got, _ = db.GetTransaction(ctx, "cs_123")
	if got.Status != domain.PaymentPaid || got.UpdatedAt == nil {
		t.Errorf("expected paid with updated_at, got %+v", got)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetTransaction(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
