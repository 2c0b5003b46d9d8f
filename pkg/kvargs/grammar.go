package kvargs

import "bytes"

// Grammar delimiters.
const (
	PairsDelim = ','
	KVDelim    = '='
	ListOpen   = '['
	ListClose  = ']'
)

// token is one parsed item. Offsets point into the tokenized input and are
// only valid until the store copies them into its arena.
type token struct {
	keyOff, keyLen int
	valOff, valLen int
	hasValue       bool
}

// tokenize matches the whole input against the grammar
//
//	input        := item ("," item)*
//	item         := key ("=" value)?
//	key          := byte+ excluding {',', '='}
//	value        := (bracket-list | bare-run)*
//	bracket-list := "[" byte+ excluding "]" "]"
//	bare-run     := byte+ up to the nearer of "," and "["
//
// calling emit for every item in order. Emit errors stop tokenizing and are
// returned unchanged. The caller handles the empty input.
func tokenize(input []byte, emit func(token) error) error {
	pos := 0
	for {
		tok, next, err := scanItem(input, pos)
		if err != nil {
			return err
		}
		if err := emit(tok); err != nil {
			return err
		}

		if next == len(input) {
			return nil
		}
		if input[next] != PairsDelim {
			return &SyntaxError{Offset: next, Reason: trailingReason(input[next:])}
		}
		pos = next + 1
	}
}

// scanItem scans a single item starting at pos and returns it together
// with the offset just past it.
func scanItem(input []byte, pos int) (token, int, error) {
	end := pos
	for end < len(input) && input[end] != PairsDelim && input[end] != KVDelim {
		end++
	}
	if end == pos {
		return token{}, pos, &SyntaxError{Offset: pos, Reason: "empty key"}
	}

	tok := token{keyOff: pos, keyLen: end - pos}
	if end == len(input) || input[end] != KVDelim {
		return tok, end, nil
	}

	valStart := end + 1
	valEnd := scanValue(input, valStart)
	tok.valOff = valStart
	tok.valLen = valEnd - valStart
	tok.hasValue = true
	return tok, valEnd, nil
}

// scanValue returns the end of the longest value starting at pos. A value
// may be empty; it stops at an item separator or at a bracket that does
// not open a well-formed list.
func scanValue(input []byte, pos int) int {
	for pos < len(input) {
		if input[pos] == ListOpen {
			end, ok := scanList(input, pos)
			if !ok {
				return pos
			}
			pos = end
			continue
		}

		end := scanBare(input, pos)
		if end == pos {
			return pos
		}
		pos = end
	}
	return pos
}

// scanList matches "[" contents "]" at pos, with non-empty contents.
func scanList(input []byte, pos int) (int, bool) {
	closeIdx := bytes.IndexByte(input[pos+1:], ListClose)
	if closeIdx <= 0 {
		return pos, false
	}
	return pos + 1 + closeIdx + 1, true
}

// scanBare returns the end of the bare run at pos: the nearer of the next
// item separator and the next list opener, or the end of input.
func scanBare(input []byte, pos int) int {
	rest := input[pos:]
	end := len(rest)
	if i := bytes.IndexByte(rest, PairsDelim); i >= 0 {
		end = i
	}
	if i := bytes.IndexByte(rest[:end], ListOpen); i >= 0 {
		end = i
	}
	return pos + end
}

// trailingReason explains why tokenizing stopped before a separator.
func trailingReason(rest []byte) string {
	if len(rest) > 0 && rest[0] == ListOpen {
		if len(rest) > 1 && rest[1] == ListClose {
			return "empty list"
		}
		return "unterminated list"
	}
	return "unexpected trailing input"
}

// truncateAtEnds cuts input at the first byte that appears in ends.
// An empty ends set leaves input untouched.
func truncateAtEnds(input []byte, ends string) []byte {
	if ends == "" {
		return input
	}
	var set [256]bool
	for i := 0; i < len(ends); i++ {
		set[ends[i]] = true
	}
	for i, b := range input {
		if set[b] {
			return input[:i]
		}
	}
	return input
}
