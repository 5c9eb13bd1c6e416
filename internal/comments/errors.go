package comments

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	// ErrTaskNotFound and ErrTaskState are returned through TaskRecorder when
	// the commented task is missing or cannot take the comment.
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskState    = errors.New("task cannot accept comment")
)
