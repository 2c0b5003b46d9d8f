package kvargs

import "github.com/aatifsyed/dpdk/pkg/log"

//go:generate go run github.com/vektra/mockery/v2 --config ../../.mockery.yaml

// Handler receives entries during Process and ProcessOpt.
//
// value is nil for only-key entries (ProcessOpt only). Returning an error
// stops processing immediately; side effects of earlier calls are not
// undone.
type Handler interface {
	HandleArg(key string, value *string) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(key string, value *string) error

// HandleArg calls f(key, value).
func (f HandlerFunc) HandleArg(key string, value *string) error {
	return f(key, value)
}

// Process calls h for every entry whose key equals key (every entry if key
// is empty), in order. A matched only-key entry fails with ErrMissingValue
// before h sees it. A handler error fails with ErrHandlerAbort.
func (s *Store) Process(key string, h Handler) error {
	return s.process(log.OpProcess, key, h)
}

// ProcessOpt is like Process but passes only-key entries to h with a nil value.
func (s *Store) ProcessOpt(key string, h Handler) error {
	return s.process(log.OpProcessOpt, key, h)
}

func (s *Store) process(op log.Op, key string, h Handler) error {
	if !s.valid() || isNilHandler(h) {
		err := &ProcessError{Index: -1, Err: ErrInvalidArgument}
		if s != nil {
			s.logProcess(op, key, 0, err)
		}
		return err
	}

	var visited uint32
	for i, sp := range s.spans {
		k := s.key(sp)
		if key != "" && k != key {
			continue
		}

		v := s.value(sp)
		if v == nil && op == log.OpProcess {
			err := &ProcessError{Index: i, Key: k, Err: ErrMissingValue}
			s.logProcess(op, key, visited, err)
			return err
		}

		if herr := h.HandleArg(k, v); herr != nil {
			err := &ProcessError{Index: i, Key: k, Err: ErrHandlerAbort, Cause: herr}
			s.logProcess(op, key, visited, err)
			return err
		}
		visited++
	}
	return nil
}

func isNilHandler(h Handler) bool {
	if h == nil {
		return true
	}
	f, ok := h.(HandlerFunc)
	return ok && f == nil
}

// logProcess records a failed process call. Only failures are logged.
func (s *Store) logProcess(op log.Op, key string, visited uint32, err error) {
	s.emit(log.Event{
		Timestamp: now(),
		ParseID:   s.id,
		Op:        op,
		Count:     visited,
		KeyMatch:  key,
		Error:     errorEventData(err),
	})
}
