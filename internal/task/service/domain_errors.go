package service

import (
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

var ErrTaskNotFound = commonerrors.NotFound("Task")
