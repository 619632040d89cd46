package repository

import (
	"context"

	"github.com/AlibekovAA/task-manager/internal/common/resilience"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

// GuardedRepository short-circuits store calls while the breaker is open.
type GuardedRepository struct {
	next    Repository
	breaker *resilience.CircuitBreaker
}

func NewGuardedRepository(next Repository, breaker *resilience.CircuitBreaker) *GuardedRepository {
	return &GuardedRepository{next: next, breaker: breaker}
}

func (r *GuardedRepository) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	return r.call(ctx, func(ctx context.Context) (domain.User, error) {
		return r.next.Create(ctx, username, passwordHash)
	})
}

func (r *GuardedRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.call(ctx, func(ctx context.Context) (domain.User, error) {
		return r.next.FindByUsername(ctx, username)
	})
}

func (r *GuardedRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.call(ctx, func(ctx context.Context) (domain.User, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *GuardedRepository) call(ctx context.Context, fn func(context.Context) (domain.User, error)) (domain.User, error) {
	var user domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		user, err = fn(ctx)
		return err
	})
	return user, err
}
