package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/repository"
)

var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users table.
//
// ERROR MAPPING:
// Callers above this package never see sqlite error codes. A UNIQUE
// violation on username becomes apperror.DuplicateUsername and a missing
// row becomes apperror.NotFound, so the service and HTTP layers branch with
// errors.Is on the apperror sentinels. Anything else is wrapped with the
// operation that failed and surfaces as a 500.
type UserDB struct {
	conn *sql.DB
}

// Create inserts user and sets its ID and CreatedAt. There is no lookup
// before the insert: a taken username is detected from the UNIQUE
// constraint and returned as apperror.DuplicateUsername.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_digest, full_name, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.Username,
		user.PasswordDigest,
		user.FullName,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
			return apperror.DuplicateUsername(user.Username)
		}
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID returns the user with the given ID.
func (u *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT id, username, password_digest, full_name, created_at
		 FROM users WHERE id = ?`,
		id,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername returns the user with exactly this username (case-sensitive).
func (u *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT id, username, password_digest, full_name, created_at
		 FROM users WHERE username = ?`,
		username,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		user    model.User
		created string
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordDigest, &user.FullName, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = t
	return &user, nil
}

// isConstraint reports whether err is a SQLite error with one of the given
// extended result codes.
func isConstraint(err error, codes ...int) bool {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	for _, c := range codes {
		if liteErr.Code() == c {
			return true
		}
	}
	return false
}
