package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeMessageInvalid = "COURSESITE_COMMAND_INVALID"
	codeCancelled      = "COURSESITE_COMMAND_CANCELLED"
	codeTimedOut       = "COURSESITE_COMMAND_TIMED_OUT"
	codeFailed         = "COURSESITE_COMMAND_FAILED"
)

// classify maps an execution error onto an outcome status. userErrs lists
// sentinels that describe bad input rather than a failed run.
func classify(err error, userErrs []error) Status {
	switch {
	case err == nil:
		return StatusSucceeded
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimedOut
	case errors.Is(err, context.Canceled):
		return StatusCancelled
	}
	for _, target := range userErrs {
		if errors.Is(err, target) {
			return StatusRejected
		}
	}
	return StatusFailed
}

// wrapOutcome attaches a go-errors category and text code for status. Errors
// that already carry a category are returned untouched.
func wrapOutcome(status Status, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch status {
	case StatusRejected:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command rejected").
			WithTextCode(codeMessageInvalid)
	case StatusCancelled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(codeCancelled)
	case StatusTimedOut:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(codeTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
			WithTextCode(codeFailed)
	}
}
