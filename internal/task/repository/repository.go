package repository

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

// ErrTaskNotFound is returned by FindOne when the task does not exist or is
// owned by someone else.
var ErrTaskNotFound = fmt.Errorf("task not found: %w", db.ErrNotFound)

// Repository reads are always scoped by owner. Update and Delete act on an id
// the caller has already resolved through FindOne.
type Repository interface {
	Find(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error)
	FindOne(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error)
	Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error)
	Update(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error)
	Delete(ctx context.Context, id domain.ID) error
}

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PgRepository) Find(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	const operation = "find tasks"
	var tasks []domain.Task

	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, operation, func() error {
		start := time.Now()
		rows, err := r.pool.Query(
			ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
			int64(ownerID),
		)
		if err != nil {
			return db.HandleExecError(err, operation, start)
		}
		defer rows.Close()

		tasks = tasks[:0]
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return fmt.Errorf("failed to scan task: %w", err)
			}
			tasks = append(tasks, t)
		}
		return db.HandleExecError(rows.Err(), operation, start)
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *PgRepository) FindOne(ctx context.Context, id domain.ID, ownerID userdomain.ID) (domain.Task, error) {
	const operation = "find task"
	var task domain.Task

	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, operation, func() error {
		start := time.Now()
		t, err := scanTask(r.pool.QueryRow(
			ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
			int64(id),
			int64(ownerID),
		))
		if err := db.HandleQueryError(err, ErrTaskNotFound, operation, start); err != nil {
			return err
		}
		task = t
		return nil
	})
	return task, err
}

func (r *PgRepository) Create(ctx context.Context, ownerID userdomain.ID, fields domain.CreateFields) (domain.Task, error) {
	start := time.Now()
	t, err := scanTask(r.pool.QueryRow(
		ctx,
		`INSERT INTO tasks (user_id, title, description) VALUES ($1, $2, $3) RETURNING `+taskColumns,
		int64(ownerID),
		fields.Title,
		fields.Description,
	))
	if err := db.HandleExecError(err, "create task", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, fields domain.UpdateFields) (domain.Task, error) {
	start := time.Now()
	t, err := scanTask(r.pool.QueryRow(
		ctx,
		`UPDATE tasks SET
			title = COALESCE($2::varchar, title),
			description = CASE WHEN $3::boolean THEN NULL ELSE COALESCE($4::varchar, description) END,
			completed = COALESCE($5::boolean, completed),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+taskColumns,
		int64(id),
		fields.Title,
		fields.ClearDescription,
		fields.Description,
		fields.Completed,
	))
	if err := db.HandleQueryError(err, db.ErrNotFound, "update task", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, int64(id))
	if err := db.HandleExecError(err, "delete task", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
