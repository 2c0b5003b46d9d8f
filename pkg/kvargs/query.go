package kvargs

import "math"

// Filter selects entries for GetWithValue. Empty Key and nil Value match
// any entry.
type Filter struct {
	Key   string
	Value *string
}

func (f Filter) matches(key string, value *string) bool {
	if f.Key != "" && key != f.Key {
		return false
	}
	if f.Value != nil && (value == nil || *value != *f.Value) {
		return false
	}
	return true
}

// Get returns the value of the first entry whose key equals key. It reports
// false if there is no such entry or if that entry is only-key; later
// entries with the same key are not consulted.
func (s *Store) Get(key string) (string, bool) {
	for _, sp := range s.entries() {
		if s.key(sp) != key {
			continue
		}
		if !sp.hasValue {
			return "", false
		}
		return s.str(sp.valOff, sp.valLen), true
	}
	return "", false
}

// GetWithValue returns the value of the first entry matching f that has a
// value. Only-key entries are skipped even when f matches everything.
func (s *Store) GetWithValue(f Filter) (string, bool) {
	for _, sp := range s.entries() {
		v := s.value(sp)
		if v == nil || !f.matches(s.key(sp), v) {
			continue
		}
		return *v, true
	}
	return "", false
}

// Count returns the number of entries with the given key, or of all entries
// if key is empty. The result saturates at math.MaxUint32.
func (s *Store) Count(key string) uint32 {
	var n uint32
	for _, sp := range s.entries() {
		if key != "" && s.key(sp) != key {
			continue
		}
		if n < math.MaxUint32 {
			n++
		}
	}
	return n
}

// Has reports whether any entry has the given key.
func (s *Store) Has(key string) bool {
	for _, sp := range s.entries() {
		if s.key(sp) == key {
			return true
		}
	}
	return false
}
