package repository

import (
	"context"

	"github.com/AlibekovAA/task-manager/internal/common/resilience"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

// GuardedRepository short-circuits store calls while the breaker is open.
type GuardedRepository struct {
	next    Repository
	breaker *resilience.CircuitBreaker
}

func NewGuardedRepository(next Repository, breaker *resilience.CircuitBreaker) *GuardedRepository {
	return &GuardedRepository{next: next, breaker: breaker}
}

func (r *GuardedRepository) Find(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = r.next.Find(ctx, ownerID)
		return err
	})
	return tasks, err
}

func (r *GuardedRepository) FindOne(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error) {
	var task domain.Task
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		task, err = r.next.FindOne(ctx, id, ownerID)
		return err
	})
	return task, err
}

func (r *GuardedRepository) Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error) {
	var task domain.Task
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		task, err = r.next.Create(ctx, ownerID, fields)
		return err
	})
	return task, err
}

func (r *GuardedRepository) Update(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error) {
	var task domain.Task
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		task, err = r.next.Update(ctx, id, fields)
		return err
	})
	return task, err
}

func (r *GuardedRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.next.Delete(ctx, id)
	})
}
