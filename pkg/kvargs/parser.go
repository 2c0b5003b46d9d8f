package kvargs

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aatifsyed/dpdk/pkg/log"
)

// now is replaced in tests.
var now = time.Now

// ParseOptions configures a single parse.
type ParseOptions struct {
	// ValidKeys is the allow-list. A nil slice accepts every key; a non-nil
	// empty slice accepts none.
	ValidKeys []string

	// ValidEnds lists terminator bytes. Parsing stops at the first of them,
	// as if the input ended there. Empty means no truncation.
	ValidEnds string
}

// Parser builds stores from argument strings.
// The zero value is usable and applies the defaults.
type Parser struct {
	// MaxEntries caps the number of entries per store. Zero means MaxEntries.
	MaxEntries int

	// MaxArenaSize caps the arena in bytes. Zero means unlimited.
	MaxArenaSize int

	// Logger receives an event for every parse, failed process and release.
	// Nil disables event capture.
	Logger log.Logger
}

// NewParser creates a parser with the default limits.
func NewParser() *Parser {
	return &Parser{
		MaxEntries: MaxEntries,
	}
}

func (p *Parser) limit() int {
	if p.MaxEntries > 0 {
		return p.MaxEntries
	}
	return MaxEntries
}

func (p *Parser) logger() log.Logger {
	if p.Logger == nil {
		return log.NoopLogger{}
	}
	return p.Logger
}

// Parse builds a store from args. Construction is all-or-nothing: on error
// no store is returned.
func (p *Parser) Parse(args string, opts ParseOptions) (*Store, error) {
	input := truncateAtEnds([]byte(args), opts.ValidEnds)
	id := uuid.New().String()
	logger := p.logger()

	store, key, err := p.build(input, opts.ValidKeys, id, logger)

	event := log.Event{
		Timestamp: now(),
		ParseID:   id,
		Op:        log.OpParse,
		Input:     string(input),
	}
	if err != nil {
		err = &ParseError{Input: string(input), Key: key, Err: err}
		event.Error = errorEventData(err)
		logger.Log(event)
		return nil, err
	}
	event.Count = uint32(store.Len())
	logger.Log(event)
	return store, nil
}

// build constructs the store. On an allow-list failure it also returns the
// rejected key.
func (p *Parser) build(input []byte, validKeys []string, id string, logger log.Logger) (*Store, string, error) {
	if len(input) == 0 {
		return newStore(0, p.limit(), id, logger), "", nil
	}

	// Keys and values never take more room than the input: every separator
	// they lose becomes a terminator, plus one for the last copy.
	arenaSize := len(input) + 1
	if arenaSize <= 0 || (p.MaxArenaSize > 0 && arenaSize > p.MaxArenaSize) {
		return nil, "", fmt.Errorf("%w: need %d bytes", ErrAllocation, arenaSize)
	}

	store := newStore(arenaSize, p.limit(), id, logger)
	err := tokenize(input, func(tok token) error {
		if !store.push(input, tok) {
			return fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, p.limit())
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	if validKeys != nil {
		for _, sp := range store.spans {
			if k := store.key(sp); !slices.Contains(validKeys, k) {
				return nil, k, ErrKeyNotAllowed
			}
		}
	}
	return store, "", nil
}

// defaultParser backs the package-level helpers.
var defaultParser = NewParser()

// Parse builds a store from args using the default parser. validKeys is
// the optional allow-list (nil accepts every key).
func Parse(args string, validKeys []string) (*Store, error) {
	return defaultParser.Parse(args, ParseOptions{ValidKeys: validKeys})
}

// ParseDelim is like Parse but stops at the first byte found in validEnds.
// An empty validEnds behaves exactly like Parse.
func ParseDelim(args string, validKeys []string, validEnds string) (*Store, error) {
	return defaultParser.Parse(args, ParseOptions{ValidKeys: validKeys, ValidEnds: validEnds})
}
