package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/repository"
)

var _ repository.ProfileRepository = (*ProfileDB)(nil)

// ProfileDB is the profiles table, keyed by user_id.
type ProfileDB struct {
	conn *sql.DB
}

// Upsert writes every field of p in a single statement, replacing any
// existing row for p.UserID. CreatedAt is set on first insert and kept on
// later saves; p is updated with the stored value.
func (r *ProfileDB) Upsert(ctx context.Context, p *model.Profile) error {
	now := formatTime(time.Now())

	var created string
	err := r.conn.QueryRowContext(ctx,
		`INSERT INTO profiles
			(user_id, age, sex, height_cm, weight_kg, activity_level, goal, diet_pref, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			age            = excluded.age,
			sex            = excluded.sex,
			height_cm      = excluded.height_cm,
			weight_kg      = excluded.weight_kg,
			activity_level = excluded.activity_level,
			goal           = excluded.goal,
			diet_pref      = excluded.diet_pref
		 RETURNING created_at`,
		p.UserID,
		p.Age,
		p.Sex,
		p.HeightCm,
		p.WeightKg,
		p.ActivityLevel,
		p.Goal,
		p.DietPreference,
		now,
	).Scan(&created)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return apperror.NotFound("user", strconv.FormatInt(p.UserID, 10))
		}
		return fmt.Errorf("sqlite: saving profile for user %d: %w", p.UserID, err)
	}

	t, err := parseTime(created)
	if err != nil {
		return fmt.Errorf("sqlite: saving profile for user %d: %w", p.UserID, err)
	}
	p.CreatedAt = t
	return nil
}

// Get returns the profile for userID, or found=false if none was saved.
func (r *ProfileDB) Get(ctx context.Context, userID int64) (*model.Profile, bool, error) {
	var (
		p       model.Profile
		created string
	)
	err := r.conn.QueryRowContext(ctx,
		`SELECT user_id, age, sex, height_cm, weight_kg, activity_level, goal, diet_pref, created_at
		 FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(
		&p.UserID,
		&p.Age,
		&p.Sex,
		&p.HeightCm,
		&p.WeightKg,
		&p.ActivityLevel,
		&p.Goal,
		&p.DietPreference,
		&created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite: getting profile for user %d: %w", userID, err)
	}

	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, false, fmt.Errorf("sqlite: getting profile for user %d: %w", userID, err)
	}
	return &p, true, nil
}
