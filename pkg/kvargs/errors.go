package kvargs

import (
	"errors"
	"fmt"

	"github.com/aatifsyed/dpdk/pkg/log"
)

// Sentinel errors. Detailed errors wrap one of these and can be tested
// with errors.Is.
var (
	// ErrSyntax is returned when the input does not match the grammar.
	ErrSyntax = errors.New("kvargs: syntax error")

	// ErrCapacityExceeded is returned when the input holds more entries
	// than a store can keep.
	ErrCapacityExceeded = errors.New("kvargs: too many entries")

	// ErrAllocation is returned when the arena cannot be allocated.
	ErrAllocation = errors.New("kvargs: arena allocation failed")

	// ErrKeyNotAllowed is returned when a parsed key is not in the allow-list.
	ErrKeyNotAllowed = errors.New("kvargs: key not allowed")

	// ErrHandlerAbort is returned when a handler stops processing.
	ErrHandlerAbort = errors.New("kvargs: handler aborted")

	// ErrMissingValue is returned by strict processing for only-key entries.
	ErrMissingValue = errors.New("kvargs: key has no value")

	// ErrInvalidArgument is returned for a nil or released store or a nil handler.
	ErrInvalidArgument = errors.New("kvargs: invalid argument")
)

// SyntaxError describes where the input stopped matching the grammar.
type SyntaxError struct {
	// Offset is the byte offset into the (possibly truncated) input.
	Offset int
	// Reason is a short description of what was expected.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("kvargs: syntax error at offset %d: %s", e.Offset, e.Reason)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ParseError records a failed store construction.
type ParseError struct {
	// Input is the argument string that failed to parse.
	Input string
	// Key is the offending key, if the failure is tied to one.
	Key string
	// Err is the underlying error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("parse %q: key %q: %v", e.Input, e.Key, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProcessError records where processing stopped.
type ProcessError struct {
	// Index is the entry index, or -1 if processing never started.
	Index int
	// Key is the key of the entry at Index.
	Key string
	// Err is one of ErrHandlerAbort, ErrMissingValue or ErrInvalidArgument.
	Err error
	// Cause is the error returned by the handler, if any.
	Cause error
}

func (e *ProcessError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("process: %v", e.Err)
	case e.Cause != nil:
		return fmt.Sprintf("process entry %d (%q): %v: %v", e.Index, e.Key, e.Err, e.Cause)
	default:
		return fmt.Sprintf("process entry %d (%q): %v", e.Index, e.Key, e.Err)
	}
}

// Unwrap exposes both the sentinel and the handler's own error.
func (e *ProcessError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// errorKind maps an error onto the diagnostic event classification.
func errorKind(err error) log.ErrorKind {
	switch {
	case errors.Is(err, ErrSyntax):
		return log.ErrorKindSyntax
	case errors.Is(err, ErrCapacityExceeded):
		return log.ErrorKindCapacity
	case errors.Is(err, ErrAllocation):
		return log.ErrorKindAllocation
	case errors.Is(err, ErrKeyNotAllowed):
		return log.ErrorKindKeyNotAllowed
	case errors.Is(err, ErrHandlerAbort):
		return log.ErrorKindHandlerAbort
	case errors.Is(err, ErrMissingValue):
		return log.ErrorKindMissingValue
	case errors.Is(err, ErrInvalidArgument):
		return log.ErrorKindInvalidArgument
	default:
		return log.ErrorKindUnknown
	}
}

// errorEventData builds the event payload for err.
func errorEventData(err error) *log.ErrorEventData {
	data := &log.ErrorEventData{
		Kind:    errorKind(err),
		Message: err.Error(),
	}

	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		offset := synErr.Offset
		data.Offset = &offset
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		data.Key = parseErr.Key
	}
	var procErr *ProcessError
	if errors.As(err, &procErr) && procErr.Index >= 0 {
		index := procErr.Index
		data.Index = &index
		data.Key = procErr.Key
	}
	return data
}
