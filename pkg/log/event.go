package log

import (
	"time"
)

// Event represents a single kvargs operation captured for diagnostics.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ParseID identifies the store the event belongs to (UUID).
	// Failed parses still get an ID so their events can be correlated.
	ParseID string `cbor:"2,keyasint"`

	// Op is the operation that produced the event.
	Op Op `cbor:"3,keyasint"`

	// Input is the argument string as seen by the parser, after any
	// terminator truncation. Only set for OpParse.
	Input string `cbor:"4,keyasint,omitempty"`

	// Count is the number of entries in the store (parse) or the number
	// of entries visited before returning (process).
	Count uint32 `cbor:"5,keyasint,omitempty"`

	// KeyMatch is the key filter passed to a process call, if any.
	KeyMatch string `cbor:"6,keyasint,omitempty"`

	// Error is set when the operation failed.
	Error *ErrorEventData `cbor:"7,keyasint,omitempty"`
}

// Failed reports whether the event records a failure.
func (e Event) Failed() bool {
	return e.Error != nil
}

// Op identifies the kvargs operation that produced an event.
type Op uint8

const (
	// OpParse is store construction (parse and parse with terminators).
	OpParse Op = 0
	// OpProcess is strict processing.
	OpProcess Op = 1
	// OpProcessOpt is permissive processing.
	OpProcessOpt Op = 2
	// OpRelease is store release.
	OpRelease Op = 3
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpParse:
		return "PARSE"
	case OpProcess:
		return "PROCESS"
	case OpProcessOpt:
		return "PROCESS_OPT"
	case OpRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// ParseOp returns the Op named by s, as printed by Op.String.
func ParseOp(s string) (Op, bool) {
	for _, o := range []Op{OpParse, OpProcess, OpProcessOpt, OpRelease} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// ErrorKind classifies a failure.
type ErrorKind uint8

const (
	// ErrorKindUnknown is a failure that could not be classified.
	ErrorKindUnknown ErrorKind = 0
	// ErrorKindSyntax is malformed input or unconsumed trailing bytes.
	ErrorKindSyntax ErrorKind = 1
	// ErrorKindCapacity means the input held more entries than a store can.
	ErrorKindCapacity ErrorKind = 2
	// ErrorKindAllocation means the arena could not be allocated.
	ErrorKindAllocation ErrorKind = 3
	// ErrorKindKeyNotAllowed means a key was absent from the allow-list.
	ErrorKindKeyNotAllowed ErrorKind = 4
	// ErrorKindHandlerAbort means a handler asked to stop processing.
	ErrorKindHandlerAbort ErrorKind = 5
	// ErrorKindMissingValue means strict processing matched an only-key entry.
	ErrorKindMissingValue ErrorKind = 6
	// ErrorKindInvalidArgument means a nil store or handler was supplied.
	ErrorKindInvalidArgument ErrorKind = 7
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindSyntax:
		return "SYNTAX"
	case ErrorKindCapacity:
		return "CAPACITY"
	case ErrorKindAllocation:
		return "ALLOCATION"
	case ErrorKindKeyNotAllowed:
		return "KEY_NOT_ALLOWED"
	case ErrorKindHandlerAbort:
		return "HANDLER_ABORT"
	case ErrorKindMissingValue:
		return "MISSING_VALUE"
	case ErrorKindInvalidArgument:
		return "INVALID_ARGUMENT"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures the cause of a failed operation.
type ErrorEventData struct {
	// Kind classifies the failure.
	Kind ErrorKind `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Key is the offending key (allow-list and process failures).
	Key string `cbor:"3,keyasint,omitempty"`

	// Offset is the byte offset into the input (syntax failures).
	Offset *int `cbor:"4,keyasint,omitempty"`

	// Index is the entry index where processing stopped.
	Index *int `cbor:"5,keyasint,omitempty"`
}
