package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type TaskService struct {
	repo taskrepo.Repository
	log  *logger.Logger
}

func NewTaskService(repo taskrepo.Repository, log *logger.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) FindAll(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	tasks, err := s.repo.Find(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID resolves a task by id and owner. A task owned by someone else is
// reported exactly like a missing one.
func (s *TaskService) FindByID(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error) {
	task, err := s.repo.FindOne(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, taskrepo.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error) {
	task, err := s.repo.Create(ctx, ownerID, fields)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksMutatedTotal.WithLabelValues("create").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"task_id": int64(task.ID),
		"user_id": int64(ownerID),
		"action":  "task_created",
	}).Info("task created")
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id domain.ID, ownerID userdomain.ID, fields domain.UpdateFields) (domain.Task, error) {
	current, err := s.FindByID(ctx, id, ownerID)
	if err != nil {
		return domain.Task{}, err
	}
	if fields.IsEmpty() {
		return current, nil
	}

	task, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}

	metrics.TasksMutatedTotal.WithLabelValues("update").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"task_id": int64(id),
		"user_id": int64(ownerID),
		"action":  "task_updated",
	}).Debug("task updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id domain.ID, ownerID userdomain.ID) error {
	if _, err := s.FindByID(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	metrics.TasksMutatedTotal.WithLabelValues("delete").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"task_id": int64(id),
		"user_id": int64(ownerID),
		"action":  "task_deleted",
	}).Info("task deleted")
	return nil
}
