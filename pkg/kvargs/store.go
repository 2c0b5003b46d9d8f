package kvargs

import (
	"iter"
	"strings"
	"unsafe"

	"github.com/aatifsyed/dpdk/pkg/log"
)

// MaxEntries is the default maximum number of entries in a Store.
const MaxEntries = 32

// Pair is a key with its optional value.
type Pair struct {
	Key string
	// Value is nil for only-key entries.
	Value *string
}

// HasValue reports whether the pair carries a value (possibly empty).
func (p Pair) HasValue() bool {
	return p.Value != nil
}

// String formats the pair as it would appear in an argument string.
func (p Pair) String() string {
	if p.Value == nil {
		return p.Key
	}
	return p.Key + string(KVDelim) + *p.Value
}

// span locates one entry inside the arena.
type span struct {
	keyOff, keyLen int
	valOff, valLen int
	hasValue       bool
}

// Store is an ordered, fixed-capacity list of key/value entries parsed from
// an argument string.
//
// Every key and value is copied into a single arena owned by the store and
// followed by a nul byte. The arena is nil iff the store is empty. A Store is
// never modified after construction; Release is the only state change.
type Store struct {
	arena    []byte
	spans    []span
	id       string
	logger   log.Logger
	released bool
}

// newStore allocates a store able to hold limit entries in an arena of
// arenaSize bytes.
func newStore(arenaSize, limit int, id string, logger log.Logger) *Store {
	s := &Store{
		spans:  make([]span, 0, limit),
		id:     id,
		logger: logger,
	}
	if arenaSize > 0 {
		s.arena = make([]byte, 0, arenaSize)
	}
	return s
}

// push copies tok out of input into the arena. It reports false when the
// store is already full.
func (s *Store) push(input []byte, tok token) bool {
	if len(s.spans) == cap(s.spans) {
		return false
	}

	sp := span{hasValue: tok.hasValue}
	sp.keyOff, sp.keyLen = s.copyIn(input[tok.keyOff : tok.keyOff+tok.keyLen])
	if tok.hasValue {
		sp.valOff, sp.valLen = s.copyIn(input[tok.valOff : tok.valOff+tok.valLen])
	}
	s.spans = append(s.spans, sp)
	return true
}

// copyIn appends b and its terminator to the arena. The arena is sized up
// front so appends never reallocate.
func (s *Store) copyIn(b []byte) (off, n int) {
	off = len(s.arena)
	s.arena = append(s.arena, b...)
	s.arena = append(s.arena, 0)
	return off, len(b)
}

// str returns an arena region as a string without copying. The arena is
// never written after construction, so the string stays immutable.
func (s *Store) str(off, n int) string {
	if n == 0 {
		return ""
	}
	return unsafe.String(&s.arena[off], n)
}

func (s *Store) key(sp span) string {
	return s.str(sp.keyOff, sp.keyLen)
}

func (s *Store) value(sp span) *string {
	if !sp.hasValue {
		return nil
	}
	v := s.str(sp.valOff, sp.valLen)
	return &v
}

// valid reports whether the store can be read.
func (s *Store) valid() bool {
	return s != nil && !s.released
}

// entries returns the live spans; nil for nil or released stores.
func (s *Store) entries() []span {
	if !s.valid() {
		return nil
	}
	return s.spans
}

// ID returns the identifier shared by all diagnostic events of this store.
func (s *Store) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries())
}

// Cap returns the maximum number of entries this store could have held.
func (s *Store) Cap() int {
	if s == nil {
		return 0
	}
	return cap(s.spans)
}

// Pair returns the entry at index i. It panics if i is out of range.
func (s *Store) Pair(i int) Pair {
	sp := s.entries()[i]
	return Pair{Key: s.key(sp), Value: s.value(sp)}
}

// Pairs returns a copy of all entries in order.
func (s *Store) Pairs() []Pair {
	spans := s.entries()
	pairs := make([]Pair, 0, len(spans))
	for _, sp := range spans {
		pairs = append(pairs, Pair{Key: s.key(sp), Value: s.value(sp)})
	}
	return pairs
}

// All iterates over the entries in order, yielding each key and its value
// (nil for only-key entries).
func (s *Store) All() iter.Seq2[string, *string] {
	return func(yield func(string, *string) bool) {
		for _, sp := range s.entries() {
			if !yield(s.key(sp), s.value(sp)) {
				return
			}
		}
	}
}

// Keys returns the keys in order, including duplicates.
func (s *Store) Keys() []string {
	spans := s.entries()
	keys := make([]string, 0, len(spans))
	for _, sp := range spans {
		keys = append(keys, s.key(sp))
	}
	return keys
}

// String rejoins the entries into an argument string. Parsing the result
// yields an equal store, though not necessarily the original bytes.
func (s *Store) String() string {
	var sb strings.Builder
	for i, sp := range s.entries() {
		if i > 0 {
			sb.WriteByte(PairsDelim)
		}
		sb.WriteString(s.key(sp))
		if sp.hasValue {
			sb.WriteByte(KVDelim)
			sb.WriteString(s.str(sp.valOff, sp.valLen))
		}
	}
	return sb.String()
}

// Release drops the arena. Afterwards the store reads as empty and
// processing it fails. Callers must not keep using keys or values obtained
// before Release. Release on a nil store is a no-op.
func (s *Store) Release() {
	if !s.valid() {
		return
	}
	count := len(s.spans)
	s.released = true
	s.arena = nil
	s.spans = s.spans[:0]

	s.emit(log.Event{
		Timestamp: now(),
		ParseID:   s.id,
		Op:        log.OpRelease,
		Count:     uint32(count),
	})
}

func (s *Store) emit(event log.Event) {
	if s.logger != nil {
		s.logger.Log(event)
	}
}

// Released reports whether Release has been called.
func (s *Store) Released() bool {
	return s != nil && s.released
}
