package service

import (
	"context"

	"github.com/AlibekovAA/task-manager/internal/task/domain"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type mockTaskRepo struct {
	findFunc    func(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error)
	findOneFunc func(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error)
	createFunc  func(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error)
	updateFunc  func(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error)
	deleteFunc  func(ctx context.Context, id domain.ID) error
}

func (m *mockTaskRepo) Find(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTaskRepo) FindOne(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error) {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, id, ownerID)
	}
	return domain.Task{}, taskrepo.ErrTaskNotFound
}

func (m *mockTaskRepo) Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ownerID, fields)
	}
	return domain.Task{}, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fields)
	}
	return domain.Task{}, nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
