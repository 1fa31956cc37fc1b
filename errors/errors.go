package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrNotConnected  = fmt.Errorf("room is not connected")
	ErrEmptyContent  = fmt.Errorf("message content is empty")
	ErrLastTab       = fmt.Errorf("cannot close the last remaining tab")
	ErrUnknownTab    = fmt.Errorf("unknown tab")
	ErrAlreadyClosed = fmt.Errorf("subscription already closed")
	ErrBadSnapshot   = fmt.Errorf("malformed presence snapshot")
)
