package command

import (
	"fmt"
)

// Error marks a failure of the command itself, as opposed to a usage error.
type Error struct {
	Inner error
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Inner)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func WrapError(err error) error {
	return Wrap("command failed", err)
}

func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{
		Inner: err,
		Msg:   msg,
	}
}
