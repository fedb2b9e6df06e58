package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobtracker/internal/models"
)

// In-memory implementations backing tests and local development. They mirror
// the transactional semantics of the postgres repositories under a mutex.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) setPasswordHash(id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// MemoryResetTokenRepository is an in-memory ResetTokenRepository. Consuming
// a token updates the password hash in the linked user repository, matching
// the postgres implementation's single transaction.
type MemoryResetTokenRepository struct {
	mu     sync.Mutex
	tokens []*models.PasswordResetToken
	users  *MemoryUserRepository
}

// NewMemoryResetTokenRepository creates an empty in-memory token store bound
// to the given user store.
func NewMemoryResetTokenRepository(users *MemoryUserRepository) *MemoryResetTokenRepository {
	return &MemoryResetTokenRepository{users: users}
}

func (r *MemoryResetTokenRepository) Issue(_ context.Context, t *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tokens {
		if existing.UserID == t.UserID && !existing.Used {
			existing.Used = true
		}
	}
	cp := *t
	r.tokens = append(r.tokens, &cp)
	return nil
}

func (r *MemoryResetTokenRepository) GetByToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryResetTokenRepository) Consume(_ context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.ID != tokenID {
			continue
		}
		if !t.Valid(time.Now()) {
			return models.ErrInvalidResetToken
		}
		t.Used = true
		return r.users.setPasswordHash(userID, passwordHash)
	}
	return models.ErrInvalidResetToken
}

// MemoryApplicationRepository is an in-memory ApplicationRepository. The
// backing slice preserves insertion order, which breaks ties in ListByUser.
type MemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps []*models.Application
}

// NewMemoryApplicationRepository creates an empty in-memory application store.
func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{}
}

func (r *MemoryApplicationRepository) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *app
	r.apps = append(r.apps, &cp)
	return nil
}

func (r *MemoryApplicationRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.apps {
		if app.ID == id && app.UserID == userID {
			cp := *app
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryApplicationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := []models.Application{}
	for _, app := range r.apps {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].DateApplied.After(apps[j].DateApplied)
	})
	return apps, nil
}

func (r *MemoryApplicationRepository) Update(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.apps {
		if existing.ID == app.ID && existing.UserID == app.UserID {
			cp := *app
			r.apps[i] = &cp
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *MemoryApplicationRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, app := range r.apps {
		if app.ID == id && app.UserID == userID {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
