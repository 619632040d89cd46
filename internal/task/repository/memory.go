package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

// MemoryRepository keeps tasks in process. Each call is atomic on its own;
// concurrent updates of one task are last-write-wins.
type MemoryRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	nextID domain.ID
	tasks  map[domain.ID]domain.Task
}

func NewMemoryRepository(clk clock.Clock) *MemoryRepository {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &MemoryRepository{
		clock: clk,
		tasks: make(map[domain.ID]domain.Task),
	}
}

func copyTask(t domain.Task) domain.Task {
	if t.Description != nil {
		desc := *t.Description
		t.Description = &desc
	}
	return t
}

func (r *MemoryRepository) Find(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	tasks := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, copyTask(t))
		}
	}
	r.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *MemoryRepository) FindOne(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Task{}, ErrTaskNotFound
	}
	return copyTask(t), nil
}

func (r *MemoryRepository) Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	r.nextID++
	t := copyTask(domain.Task{
		ID:          r.nextID,
		OwnerID:     ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	r.tasks[t.ID] = t
	return copyTask(t), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, db.ErrNotFound
	}
	t = fields.Apply(t, r.clock.Now().UTC())
	r.tasks[id] = t
	return copyTask(t), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id domain.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
