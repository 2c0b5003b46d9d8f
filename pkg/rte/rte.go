package rte

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
	"github.com/aatifsyed/dpdk/pkg/log"
)

// MaxArgs is the number of pair slots in a Layout.
const MaxArgs = 32

// Delimiters as exposed to C callers.
const (
	PairsDelim = ","
	KVDelim    = "="
)

// MaxArgs must equal kvargs.MaxEntries; either array length goes negative
// otherwise.
var (
	_ [MaxArgs - kvargs.MaxEntries]struct{}
	_ [kvargs.MaxEntries - MaxArgs]struct{}
)

// errHandler is the cause recorded when an ArgHandler returns a negative
// status.
var errHandler = errors.New("handler returned a negative status")

// ArgHandler is called for each matching entry. value is nil for only-key
// entries. A negative return aborts processing.
type ArgHandler func(key string, value *string, opaque any) int

// KVArgs is a parsed argument list.
type KVArgs struct {
	store *kvargs.Store
}

// Pair is one slot of a Layout.
type Pair struct {
	Key   string
	Value *string
}

// Layout is the fixed-size view of a KVArgs. Slots at and beyond Count are
// zero.
type Layout struct {
	Count uint32
	Pairs [MaxArgs]Pair
}

var parser atomic.Pointer[kvargs.Parser]

func init() {
	parser.Store(kvargs.NewParser())
}

// SetLogger routes diagnostic events for subsequent parses to l. Stores
// already built keep the logger they were created with. A nil l disables
// event capture.
func SetLogger(l log.Logger) {
	p := kvargs.NewParser()
	p.Logger = l
	parser.Store(p)
}

// Parse parses args. validKeys is the allow-list; nil accepts every key.
// It returns nil on any error.
func Parse(args string, validKeys []string) *KVArgs {
	return ParseDelim(args, validKeys, "")
}

// ParseDelim is like Parse but ignores everything from the first byte that
// appears in validEnds. An empty validEnds behaves like Parse.
func ParseDelim(args string, validKeys []string, validEnds string) *KVArgs {
	store, err := parser.Load().Parse(cString(args), kvargs.ParseOptions{
		ValidKeys: cStrings(validKeys),
		ValidEnds: cString(validEnds),
	})
	if err != nil {
		return nil
	}
	return &KVArgs{store: store}
}

// cString cuts s at its first NUL, where a C caller's string ends.
func cString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func cStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = cString(s)
	}
	return out
}

// Free releases kv. It is a no-op on nil.
func Free(kv *KVArgs) {
	if kv == nil || kv.store == nil {
		return
	}
	kv.store.Release()
	kv.store = nil
}

func (kv *KVArgs) live() *kvargs.Store {
	if kv == nil {
		return nil
	}
	return kv.store
}

// Get returns the value of the first entry with the given key, or nil if
// there is none or that entry is only-key.
func Get(kv *KVArgs, key string) *string {
	v, ok := kv.live().Get(key)
	if !ok {
		return nil
	}
	return &v
}

// GetWithValue returns the value of the first entry with a value that
// matches key and value. A nil key or value matches anything.
func GetWithValue(kv *KVArgs, key, value *string) *string {
	f := kvargs.Filter{Value: value}
	if key != nil {
		if *key == "" {
			return nil
		}
		f.Key = *key
	}
	v, ok := kv.live().GetWithValue(f)
	if !ok {
		return nil
	}
	return &v
}

// Count returns the number of entries matching keyMatch, or all entries if
// keyMatch is nil.
func Count(kv *KVArgs, keyMatch *string) uint32 {
	if keyMatch == nil {
		return kv.live().Count("")
	}
	if *keyMatch == "" {
		return 0
	}
	return kv.live().Count(*keyMatch)
}

// Process calls h for every entry matching keyMatch (all entries if nil),
// passing opaque unchanged. It returns -1 if kv or h is nil, if a matched
// entry has no value, or if h returns a negative status; 0 otherwise.
func Process(kv *KVArgs, keyMatch *string, h ArgHandler, opaque any) int {
	return process(kv, keyMatch, h, opaque, (*kvargs.Store).Process)
}

// ProcessOpt is like Process but passes only-key entries to h with a nil
// value.
func ProcessOpt(kv *KVArgs, keyMatch *string, h ArgHandler, opaque any) int {
	return process(kv, keyMatch, h, opaque, (*kvargs.Store).ProcessOpt)
}

func process(kv *KVArgs, keyMatch *string, h ArgHandler, opaque any,
	run func(*kvargs.Store, string, kvargs.Handler) error,
) int {
	store := kv.live()
	if store == nil || h == nil {
		return -1
	}

	key := ""
	if keyMatch != nil {
		if *keyMatch == "" {
			return 0
		}
		key = *keyMatch
	}

	err := run(store, key, kvargs.HandlerFunc(func(k string, v *string) error {
		if h(k, v, opaque) < 0 {
			return errHandler
		}
		return nil
	}))
	if err != nil {
		return -1
	}
	return 0
}

// Layout returns the fixed-size view of kv. A nil or freed kv yields a zero
// Layout.
func (kv *KVArgs) Layout() Layout {
	var l Layout
	for i, p := range kv.live().Pairs() {
		l.Pairs[i] = Pair{Key: p.Key, Value: p.Value}
	}
	l.Count = Count(kv, nil)
	return l
}

// Store returns the underlying store, or nil after Free.
func (kv *KVArgs) Store() *kvargs.Store {
	return kv.live()
}
