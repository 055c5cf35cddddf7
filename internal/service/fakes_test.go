package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/sakif/health-planner/internal/apperror"
	"github.com/sakif/health-planner/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory stand-in for all three repositories. Username
// uniqueness is enforced here the way the database enforces it: at insert.
type fakeStore struct {
	mu       sync.Mutex
	users    map[int64]model.User
	profiles map[int64]model.Profile
	progress []model.ProgressEntry
	nextID   int64

	// set to simulate a database failure
	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]model.User),
		profiles: make(map[int64]model.Profile),
	}
}

type fakeUsers struct{ *fakeStore }
type fakeProfiles struct{ *fakeStore }
type fakeProgress struct{ *fakeStore }

func (f fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return apperror.DuplicateUsername(u.Username)
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
	}
	return &u, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (f fakeProfiles) Upsert(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[p.UserID]; !ok {
		return apperror.NotFound("user", strconv.FormatInt(p.UserID, 10))
	}
	if old, ok := f.profiles[p.UserID]; ok {
		p.CreatedAt = old.CreatedAt
	} else {
		p.CreatedAt = time.Now()
	}
	f.profiles[p.UserID] = *p
	return nil
}

func (f fakeProfiles) Get(_ context.Context, userID int64) (*model.Profile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (f fakeProgress) Append(_ context.Context, e *model.ProgressEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	f.progress = append(f.progress, *e)
	return nil
}

func (f fakeProgress) ListByUser(_ context.Context, userID int64) ([]model.ProgressEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.ProgressEntry
	for _, e := range f.progress {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ProgressEntry) int { return a.Date.Compare(b.Date) })
	return out, nil
}
