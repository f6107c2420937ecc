// Package progress implements the cessation metrics engine: today counters,
// lifetime summary, and weekly/monthly series. Every function is a pure
// function of (event snapshot, profile, evaluation instant) — no retained
// state, so results are idempotent for a fixed log and instant.
//
// Day boundaries are UTC calendar days everywhere. The choice is fixed
// across today/streak/weekly/monthly so midnight edge cases agree.
package progress

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// TodayStats are the live counters for the current UTC day.
type TodayStats struct {
	CigarettesToday int        `json:"cigarettes_today"`
	ResistedToday   int        `json:"resisted_today"`
	LastCigarette   *time.Time `json:"last_cigarette"`
}

// Summary is the lifetime progress snapshot.
type Summary struct {
	DaysSmokeFree     int        `json:"days_smoke_free"`
	CurrentStreak     int        `json:"current_streak"`
	CigarettesAvoided int        `json:"cigarettes_avoided"`
	MoneySaved        float64    `json:"money_saved"`
	QuitDate          *time.Time `json:"quit_date"`
}

// DayBucket is one calendar day in the weekly series.
type DayBucket struct {
	Date       string `json:"date"`
	DayName    string `json:"day_name"`
	Cigarettes int    `json:"cigarettes"`
	Resisted   int    `json:"resisted"`
}

// WeekBucket is one trailing 7-day window in the monthly series.
type WeekBucket struct {
	Week       string `json:"week"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Cigarettes int    `json:"cigarettes"`
	Resisted   int    `json:"resisted"`
}

// DayStart truncates t to its UTC calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole UTC days from a to b (both midnights).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// Today computes the counters for the UTC day containing now.
// LastCigarette scans the whole log, not just today; nil if the user
// has never logged a cigarette.
func Today(events []domain.Event, now time.Time) TodayStats {
	dayStart := DayStart(now)

	var stats TodayStats
	for _, e := range events {
		ts := e.CreatedAt.UTC()
		if !ts.Before(dayStart) && ts.Before(now.UTC()) {
			switch e.Type {
			case domain.EventCigarette:
				stats.CigarettesToday++
			case domain.EventResisted:
				stats.ResistedToday++
			}
		}
		if e.Type == domain.EventCigarette {
			// Ties (equal timestamps) resolve to the later insertion.
			if stats.LastCigarette == nil || !ts.Before(*stats.LastCigarette) {
				t := ts
				stats.LastCigarette = &t
			}
		}
	}
	return stats
}

// Summarize derives the lifetime summary as of now.
//
// CurrentStreak counts consecutive whole UTC days with zero cigarette
// events, anchored at the most recent cigarette (or the quit date if the
// log has none). A cigarette logged today yields 0 — no partial-day
// rounding up. DaysSmokeFree counts from the quit date regardless of
// lapses, so the two diverge after a slip.
func Summarize(events []domain.Event, profile domain.UserProfile, now time.Time) (Summary, error) {
	if profile.CigarettesPerPack <= 0 {
		return Summary{}, domain.ErrPackSizeZero
	}

	now = now.UTC()
	summary := Summary{QuitDate: profile.QuitDate}

	var lastCigarette *time.Time
	smokedSinceQuit := 0
	for _, e := range events {
		if e.Type != domain.EventCigarette {
			continue
		}
		ts := e.CreatedAt.UTC()
		if lastCigarette == nil || !ts.Before(*lastCigarette) {
			t := ts
			lastCigarette = &t
		}
		if profile.QuitDate != nil && !ts.Before(profile.QuitDate.UTC()) {
			smokedSinceQuit++
		}
	}

	if profile.QuitDate != nil {
		elapsed := now.Sub(profile.QuitDate.UTC())
		if elapsed > 0 {
			summary.DaysSmokeFree = int(elapsed / (24 * time.Hour))
		}
	}

	switch {
	case lastCigarette != nil:
		summary.CurrentStreak = daysBetween(DayStart(*lastCigarette), DayStart(now))
	case profile.QuitDate != nil:
		summary.CurrentStreak = daysBetween(DayStart(profile.QuitDate.UTC()), DayStart(now))
	}
	if summary.CurrentStreak < 0 {
		summary.CurrentStreak = 0
	}

	perDay := profile.CigarettesPerDay
	if perDay < 0 {
		perDay = 0
	}
	expected := perDay * summary.DaysSmokeFree
	if avoided := expected - smokedSinceQuit; avoided > 0 {
		summary.CigarettesAvoided = avoided
	}

	// Exact money arithmetic; rounded to cents at the edge.
	saved := decimal.NewFromInt(int64(summary.CigarettesAvoided)).
		Div(decimal.NewFromInt(int64(profile.CigarettesPerPack))).
		Mul(decimal.NewFromFloat(profile.CostPerPack))
	if saved.IsNegative() {
		saved = decimal.Zero
	}
	summary.MoneySaved = saved.Round(2).InexactFloat64()

	return summary, nil
}

// Weekly buckets the last 7 UTC calendar days ending today, oldest first.
// Days with no events score 0 rather than being absent.
func Weekly(events []domain.Event, now time.Time) []DayBucket {
	today := DayStart(now)
	buckets := make([]DayBucket, 0, 7)

	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)
		b := DayBucket{
			Date:    day.Format("2006-01-02"),
			DayName: day.Format("Mon"),
		}
		for _, e := range events {
			ts := e.CreatedAt.UTC()
			if ts.Before(day) || !ts.Before(next) {
				continue
			}
			switch e.Type {
			case domain.EventCigarette:
				b.Cigarettes++
			case domain.EventResisted:
				b.Resisted++
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// Monthly buckets the trailing 4 weeks into 7-day windows ending today,
// oldest first. Windows share the UTC day-boundary convention with Weekly.
func Monthly(events []domain.Event, now time.Time) []WeekBucket {
	end := DayStart(now).AddDate(0, 0, 1) // exclusive end of today
	buckets := make([]WeekBucket, 0, 4)

	for i := 3; i >= 0; i-- {
		weekEnd := end.AddDate(0, 0, -7*i)
		weekStart := weekEnd.AddDate(0, 0, -7)
		b := WeekBucket{
			Week:      fmt.Sprintf("Week %d", 4-i),
			StartDate: weekStart.Format("01/02"),
			EndDate:   weekEnd.AddDate(0, 0, -1).Format("01/02"),
		}
		for _, e := range events {
			ts := e.CreatedAt.UTC()
			if ts.Before(weekStart) || !ts.Before(weekEnd) {
				continue
			}
			switch e.Type {
			case domain.EventCigarette:
				b.Cigarettes++
			case domain.EventResisted:
				b.Resisted++
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}
