package log

// Logger receives kvargs events. A Parser with a nil Logger records nothing.
type Logger interface {
	// Log records an event. It is called on the goroutine performing the
	// operation, so implementations must be safe for concurrent use and
	// should not block.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// FailuresOnly returns a Logger that forwards only failed events to next.
// Successful parses and releases are dropped, so a store that never fails
// leaves no trace.
func FailuresOnly(next Logger) Logger {
	if next == nil {
		return NoopLogger{}
	}
	return failureFilter{next: next}
}

type failureFilter struct {
	next Logger
}

func (f failureFilter) Log(event Event) {
	if event.Failed() {
		f.next.Log(event)
	}
}

var (
	_ Logger = NoopLogger{}
	_ Logger = failureFilter{}
)
