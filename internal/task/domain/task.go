package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type ID int64

type Task struct {
	ID          ID
	OwnerID     userdomain.ID
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateFields struct {
	Title       string
	Description *string
}

// UpdateFields is a partial update. Nil pointers leave the field untouched;
// ClearDescription sets the description to null.
type UpdateFields struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

func (f UpdateFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && !f.ClearDescription && f.Completed == nil
}

// Apply merges f into t. UpdatedAt is always moved to now.
func (f UpdateFields) Apply(t Task, now time.Time) Task {
	if f.Title != nil {
		t.Title = *f.Title
	}
	switch {
	case f.ClearDescription:
		t.Description = nil
	case f.Description != nil:
		desc := *f.Description
		t.Description = &desc
	}
	if f.Completed != nil {
		t.Completed = *f.Completed
	}
	t.UpdatedAt = now
	return t
}
