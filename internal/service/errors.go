package service

import (
	"errors"
	"fmt"
)

// Domain errors. Callers match them with errors.Is; messages may carry extra context.
var (
	ErrValidation          = errors.New("validation error")
	ErrPhaseClosed         = errors.New("phase closed")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateSubmission = errors.New("already submitted for this word")
	ErrAlreadyVoted        = errors.New("already voted this round")
	ErrSelfVote            = errors.New("cannot vote for own submission")
	ErrNotFound            = errors.New("not found")
	ErrNoSubmissions       = errors.New("no submissions for the current word")
	ErrAuthFailed          = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
