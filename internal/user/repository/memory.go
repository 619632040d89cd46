package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

// MemoryRepository keeps users in process. Usernames are unique the same way
// the users table enforces it.
type MemoryRepository struct {
	mu         sync.RWMutex
	clock      clock.Clock
	nextID     domain.ID
	byID       map[domain.ID]domain.User
	byUsername map[string]domain.ID
}

func NewMemoryRepository(clk clock.Clock) *MemoryRepository {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &MemoryRepository{
		clock:      clk,
		byID:       make(map[domain.ID]domain.User),
		byUsername: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[username]; exists {
		return domain.User{}, ErrUsernameAlreadyExists
	}

	r.nextID++
	user := domain.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    r.clock.Now().UTC(),
	}
	r.byID[user.ID] = user
	r.byUsername[username] = user.ID
	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}
