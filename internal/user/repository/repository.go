package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

var ErrUserNotFound = fmt.Errorf("user not found: %w", db.ErrNotFound)

var ErrUsernameAlreadyExists = fmt.Errorf("username already exists: %w", db.ErrUniqueViolation)

type Repository interface {
	Create(ctx context.Context, username, passwordHash string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

func (r *PgRepository) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 RETURNING id, username, password_hash, created_at`,
		username,
		passwordHash,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err = db.HandleExecError(err, "create user", start); err != nil {
		if db.IsUniqueViolation(err) {
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find user by username", `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find user by id", `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`, int64(id))
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg any) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, operation, func() error {
		start := time.Now()
		scanErr := r.pool.QueryRow(ctx, query, arg).
			Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
		return db.HandleQueryError(scanErr, ErrUserNotFound, operation, start)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
