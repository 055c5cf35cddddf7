package model

import "time"

// DateLayout is the calendar-day format used for progress dates in storage,
// JSON and query parameters.
const DateLayout = "2006-01-02"

// ProgressEntry is one daily log line.
//
// Entries are append-only. Nothing stops two entries for the same Date; both
// are kept and returned in insertion order within that day. WeightKg and
// CaloriesConsumed are optional, so they are pointers and stored as NULL.
type ProgressEntry struct {
	ID               int64     `json:"id"                         db:"id"`
	UserID           int64     `json:"userId"                     db:"user_id"`
	Date             time.Time `json:"date"                       db:"date"`
	WeightKg         *float64  `json:"weightKg,omitempty"         db:"weight_kg"`
	CaloriesConsumed *int      `json:"caloriesConsumed,omitempty" db:"calories_consumed"`
	Completed        bool      `json:"completed"                  db:"completed"`
	Notes            string    `json:"notes"                      db:"notes"`
	CreatedAt        time.Time `json:"createdAt"                  db:"created_at"`
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
