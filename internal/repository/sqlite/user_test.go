package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
)

// newTestDB opens a fresh database file under the test's temp dir.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, u *UserDB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordDigest: "digest-" + username, FullName: "Test " + username}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestNew_InMemory(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	defer db.Close()

	createTestUser(t, db.Users(), "mem")
	if _, err := db.Users().GetByUsername(context.Background(), "mem"); err != nil {
		t.Fatalf("single-connection in-memory db lost data: %v", err)
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	createTestUser(t, db.Users(), "persisted")
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer db.Close()

	if _, err := db.Users().GetByUsername(context.Background(), "persisted"); err != nil {
		t.Fatalf("GetByUsername() after reopen: %v", err)
	}
}

func TestUserCreate(t *testing.T) {
	u := newTestDB(t).Users()

	user := &model.User{Username: "ana", PasswordDigest: "abc123", FullName: "Ana Lima"}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}

	second := createTestUser(t, u, "ben")
	if second.ID <= user.ID {
		t.Errorf("second ID = %d, want > %d", second.ID, user.ID)
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "taken")

	err := u.Create(context.Background(), &model.User{Username: "taken", PasswordDigest: "other"})

	if err == nil {
		t.Fatal("Create() should fail for a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Field != "username" {
		t.Errorf("Create() error = %#v, want DuplicateUsername", err)
	}
}

func TestUserCreate_UsernameIsCaseSensitive(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "Ana")

	if err := u.Create(context.Background(), &model.User{Username: "ana", PasswordDigest: "x"}); err != nil {
		t.Fatalf("Create() for differently-cased username: %v", err)
	}
}

func TestUserGetByID(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "lookup")

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Username != "lookup" {
		t.Errorf("Username = %q, want %q", found.Username, "lookup")
	}
	if found.PasswordDigest != "digest-lookup" {
		t.Errorf("PasswordDigest = %q, want %q", found.PasswordDigest, "digest-lookup")
	}
	if found.FullName != "Test lookup" {
		t.Errorf("FullName = %q, want %q", found.FullName, "Test lookup")
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", found.CreatedAt, created.CreatedAt)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	_, err := u.GetByID(context.Background(), 404)

	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	u := newTestDB(t).Users()
	created := createTestUser(t, u, "carla")

	found, err := u.GetByUsername(context.Background(), "carla")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}

	if _, err := u.GetByUsername(context.Background(), "CARLA"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername(CARLA) error = %v, want ErrNotFound", err)
	}
}
