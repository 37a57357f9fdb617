package editor

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrCommandActive    = errors.New("a command is already running")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrEditorClosed     = errors.New("editor closed")
	ErrInvalidInput     = errors.New("invalid input")
)

// CommandError reports a command that returned an error or panicked.
type CommandError struct {
	Command string
	Err     error
	Panic   any
	Stack   []byte
}

func (e *CommandError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("command %s panicked: %v", e.Command, e.Panic)
	}
	return fmt.Sprintf("command %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
