package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/repository"
)

var _ repository.ProgressRepository = (*ProgressDB)(nil)

// ProgressDB is the progress table. Rows are only ever inserted.
type ProgressDB struct {
	conn *sql.DB
}

// Append inserts e and sets its ID and CreatedAt. Date is stored as a
// calendar day; the time of day is dropped.
func (r *ProgressDB) Append(ctx context.Context, e *model.ProgressEntry) error {
	e.Date = model.Day(e.Date)
	e.CreatedAt = time.Now().UTC()

	var weight sql.NullFloat64
	if e.WeightKg != nil {
		weight = sql.NullFloat64{Float64: *e.WeightKg, Valid: true}
	}
	var calories sql.NullInt64
	if e.CaloriesConsumed != nil {
		calories = sql.NullInt64{Int64: int64(*e.CaloriesConsumed), Valid: true}
	}

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO progress (user_id, date, weight_kg, calories_consumed, completed, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID,
		e.Date.Format(model.DateLayout),
		weight,
		calories,
		e.Completed,
		e.Notes,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return apperror.NotFound("user", strconv.FormatInt(e.UserID, 10))
		}
		return fmt.Errorf("sqlite: appending progress for user %d: %w", e.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new progress id: %w", err)
	}
	e.ID = id
	return nil
}

// ListByUser returns the user's entries by date ascending, ties in insertion
// order. A user with no entries gets an empty, non-nil slice.
func (r *ProgressDB) ListByUser(ctx context.Context, userID int64) ([]model.ProgressEntry, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, user_id, date, weight_kg, calories_consumed, completed, notes, created_at
		 FROM progress
		 WHERE user_id = ?
		 ORDER BY date ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing progress for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := []model.ProgressEntry{}
	for rows.Next() {
		var (
			e        model.ProgressEntry
			date     string
			created  string
			weight   sql.NullFloat64
			calories sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &date, &weight, &calories, &e.Completed, &e.Notes, &created); err != nil {
			return nil, fmt.Errorf("sqlite: scanning progress row: %w", err)
		}

		if e.Date, err = time.Parse(model.DateLayout, date); err != nil {
			return nil, fmt.Errorf("sqlite: parsing progress date %q: %w", date, err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		if weight.Valid {
			w := weight.Float64
			e.WeightKg = &w
		}
		if calories.Valid {
			c := int(calories.Int64)
			e.CaloriesConsumed = &c
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating progress rows: %w", err)
	}
	return entries, nil
}
