package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

const uniqueViolationCode = "23505"

var (
	ErrNotFound        = errors.New("record not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

// IsStoreFailure reports whether err indicates the store itself misbehaved,
// as opposed to an expected miss or constraint hit.
func IsStoreFailure(err error) bool {
	if err == nil || IsNotFound(err) || IsUniqueViolation(err) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "task") {
		return "tasks"
	}
	if strings.Contains(operation, "user") {
		return "users"
	}
	return "unknown"
}

func errorKind(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return fmt.Sprintf("%T", err)
}

// HandleQueryError records the duration of a read and maps pgx.ErrNoRows to
// notFoundErr.
func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(operation, extractTableFromOperation(operation), errorKind(err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleExecError records the duration of a write. Unique violations are
// wrapped with ErrUniqueViolation.
func HandleExecError(err error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	metrics.DBQueryErrors.WithLabelValues(operation, extractTableFromOperation(operation), errorKind(err)).Inc()
	if IsUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w: %w", operation, ErrUniqueViolation, err)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func MeasureQueryDuration(operation string, startTime time.Time) {
	metrics.DBQueryDurationSeconds.
		WithLabelValues(operation, extractTableFromOperation(operation)).
		Observe(time.Since(startTime).Seconds())
}
