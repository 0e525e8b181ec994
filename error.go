package scrutiny

import (
	"errors"
	"fmt"
	"strings"
)

type CommandError struct {
	message string
	cause   error
}

func (e *CommandError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

func newCommandError(message string, cause error) *CommandError {
	return &CommandError{message: message, cause: cause}
}

// NilSubjectError marks top-level calls that received nothing to work on.
var NilSubjectError = errors.New("subject is nil")

// TypeMismatchError marks compare calls whose arguments' runtime types differ.
var TypeMismatchError = errors.New("subjects have different runtime types")

// DegradedOutputError marks a dump that completed but could not read every
// member; the produced output is complete except for the failed members.
var DegradedOutputError = errors.New("some members could not be read")
