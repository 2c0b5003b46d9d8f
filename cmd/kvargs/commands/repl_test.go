package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)

func newTestSession() *session {
	return &session{parser: kvargs.NewParser()}
}

func execLines(t *testing.T, s *session, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, line := range lines {
		require.True(t, s.exec(line, &buf), "unexpected exit on %q", line)
	}
	return buf.String()
}

func TestSessionParseAndQuery(t *testing.T) {
	s := newTestSession()
	out := execLines(t, s,
		"parse a=1,b,a=2,list=[x,y]",
		"list",
		"get a",
		"get b",
		"count a",
		"count",
		"find * 2",
		"find list",
		"string",
	)

	assert.Contains(t, out, "Parsed 4 entries")
	assert.Contains(t, out, "[1] b\n")
	assert.Contains(t, out, "[3] list=[x,y]\n")
	assert.Contains(t, out, "1\n(no value)\n2\n4\n2\n[x,y]\n")
	assert.Contains(t, out, "a=1,b,a=2,list=[x,y]\n")
}

func TestSessionProcess(t *testing.T) {
	s := newTestSession()
	out := execLines(t, s, "parse a=1,b,c=3", "processopt", "process")

	assert.Contains(t, out, "  a=1\n  b\n  c=3\n")
	assert.Contains(t, out, "key has no value")
}

func TestSessionAllowListAndEnds(t *testing.T) {
	s := newTestSession()
	out := execLines(t, s,
		"allow a,b",
		"parse a=1,c=2",
		"allow",
		"ends ;",
		"parse a=1,c=2;junk=[",
		"count",
	)

	assert.Contains(t, out, "Allow-list: a, b")
	assert.Contains(t, out, `key "c"`)
	assert.Contains(t, out, "Allow-list cleared")
	assert.True(t, strings.HasSuffix(out, "2\n"), "output: %s", out)
}

func TestSessionRelease(t *testing.T) {
	s := newTestSession()
	execLines(t, s, "parse a=1")
	store := s.store
	require.NotNil(t, store)

	out := execLines(t, s, "release", "get a")
	assert.Contains(t, out, "Released")
	assert.Contains(t, out, "No store")
	assert.True(t, store.Released())

	// Parsing again releases the previous store.
	execLines(t, s, "parse x")
	prev := s.store
	execLines(t, s, "parse y")
	assert.True(t, prev.Released())
}

func TestSessionMisc(t *testing.T) {
	s := newTestSession()
	out := execLines(t, s, "", "bogus", "help", "count")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "No store")

	var buf bytes.Buffer
	assert.False(t, s.exec("quit", &buf))
	assert.False(t, s.exec("exit", &buf))
}

func TestParseFindFilter(t *testing.T) {
	assert.Equal(t, kvargs.Filter{}, parseFindFilter(""))
	assert.Equal(t, kvargs.Filter{Key: "a"}, parseFindFilter("a"))

	f := parseFindFilter("* v")
	assert.Empty(t, f.Key)
	require.NotNil(t, f.Value)
	assert.Equal(t, "v", *f.Value)
}
