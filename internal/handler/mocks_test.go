package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cvforge/cvforge-go/internal/identity"
	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/repository"
)

// mockUserStore implements service.UserStore and middleware.UserResolver in
// memory with a unique-email guard.
type mockUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int64]model.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := u
	return &found, nil
}

// mockVerifier implements identity.Verifier with canned claims.
type mockVerifier struct {
	claims *identity.Claims
	err    error
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*identity.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	claims := *m.claims
	return &claims, nil
}

// mockCVStore implements service.CVStore in memory.
type mockCVStore struct {
	mu  sync.Mutex
	cvs map[string]model.CV
	now time.Time
}

func newMockCVStore() *mockCVStore {
	return &mockCVStore{
		cvs: make(map[string]model.CV),
		now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (m *mockCVStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *mockCVStore) Create(ctx context.Context, cv *model.CV) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.tick()
	cv.CreatedAt = now
	cv.UpdatedAt = now
	m.cvs[cv.ID] = *cv
	return nil
}

func (m *mockCVStore) GetByID(ctx context.Context, id string) (*model.CV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cv, ok := m.cvs[id]
	if !ok {
		return nil, repository.ErrCVNotFound
	}
	found := cv
	return &found, nil
}

func (m *mockCVStore) ListByUser(ctx context.Context, userID int64) ([]model.CV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cvs []model.CV
	for _, cv := range m.cvs {
		if cv.UserID == userID {
			cvs = append(cvs, cv)
		}
	}
	sort.Slice(cvs, func(i, j int) bool {
		return cvs[i].UpdatedAt.After(cvs[j].UpdatedAt)
	})
	return cvs, nil
}

func (m *mockCVStore) Update(ctx context.Context, cv *model.CV) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.cvs[cv.ID]
	if !ok {
		return repository.ErrCVNotFound
	}

	updated := *cv
	updated.UserID = stored.UserID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = m.tick()
	m.cvs[cv.ID] = updated
	return nil
}

func (m *mockCVStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cvs[id]; !ok {
		return repository.ErrCVNotFound
	}
	delete(m.cvs, id)
	return nil
}
