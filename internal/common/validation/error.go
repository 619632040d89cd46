package validation

import (
	"errors"
	"strings"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

// Error reports every violation found in one Validate call.
type Error struct {
	issues *commonerrors.Issues
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.issues.Fields(), ", ")
}

func (e *Error) Issues() *commonerrors.Issues {
	return e.issues
}

func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
