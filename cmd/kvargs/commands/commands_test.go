package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
	"github.com/aatifsyed/dpdk/pkg/log"
)

func run(t *testing.T, fn func([]string, *bytes.Buffer, *bytes.Buffer) int, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := fn(args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func parseCmd(args []string, stdout, stderr *bytes.Buffer) int { return RunParse(args, stdout, stderr) }
func getCmd(args []string, stdout, stderr *bytes.Buffer) int   { return RunGet(args, stdout, stderr) }
func countCmd(args []string, stdout, stderr *bytes.Buffer) int { return RunCount(args, stdout, stderr) }
func checkCmd(args []string, stdout, stderr *bytes.Buffer) int { return RunCheck(args, stdout, stderr) }
func logCmd(args []string, stdout, stderr *bytes.Buffer) int   { return RunLog(args, stdout, stderr) }

func TestRunParse_Text(t *testing.T) {
	code, stdout, stderr := run(t, parseCmd, "iface=eth0,queues=[0,1],promisc")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	for _, want := range []string{"iface = eth0", "queues = [0,1]", "promisc\n", "Total: 3 entries"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got:\n%s", want, stdout)
		}
	}
}

func TestRunParse_JSON(t *testing.T) {
	code, stdout, stderr := run(t, parseCmd, "-format", "json", "a=1,b,c=")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}

	var out ParseOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if out.Count != 3 || len(out.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", out)
	}
	if out.Entries[1].Value != nil {
		t.Errorf("only-key entry should have no value, got %q", *out.Entries[1].Value)
	}
	if out.Entries[2].Value == nil || *out.Entries[2].Value != "" {
		t.Errorf("empty value should be present, got %v", out.Entries[2].Value)
	}
	if out.ID == "" {
		t.Error("expected a parse ID")
	}
}

func TestRunParse_YAML(t *testing.T) {
	code, stdout, _ := run(t, parseCmd, "-f", "yaml", "k=v")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	var out ParseOutput
	if err := yaml.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid YAML output: %v\n%s", err, stdout)
	}
	if len(out.Entries) != 1 || out.Entries[0].Key != "k" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestRunParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"syntax", []string{"a=[x"}, exitValidation, "syntax error"},
		{"key not allowed", []string{"-keys", "a", "a=1,b=2"}, exitValidation, `key "b"`},
		{"no args", []string{}, exitCommandError, "expected exactly one"},
		{"bad format", []string{"-format", "xml", "a"}, exitCommandError, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, parseCmd, tt.args...)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q in stderr, got: %s", tt.want, stderr)
			}
		})
	}
}

func TestRunParse_JSONFailure(t *testing.T) {
	code, stdout, _ := run(t, parseCmd, "-format", "json", "a=1,=2")
	if code != exitValidation {
		t.Fatalf("expected exit code %d, got %d", exitValidation, code)
	}
	var out ParseErrorOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if out.Offset == nil || *out.Offset != 4 {
		t.Errorf("expected offset 4, got %v", out.Offset)
	}
}

func TestRunParse_Ends(t *testing.T) {
	code, stdout, _ := run(t, parseCmd, "-ends", "/", "a=1/b=[")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	if !strings.Contains(stdout, "Total: 1 entries") {
		t.Errorf("expected one entry, got:\n%s", stdout)
	}
}

func TestRunGet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"first", []string{"a=1,a=2", "a"}, exitSuccess, "1\n"},
		{"by value", []string{"-value", "2", "a=1,a=2", "a"}, exitSuccess, "2\n"},
		{"any key", []string{"-value", "2", "a=1,b=2"}, exitSuccess, "2\n"},
		{"first valued", []string{"x,a=1"}, exitSuccess, "1\n"},
		{"only-key", []string{"a,a=1", "a"}, exitValidation, ""},
		{"missing", []string{"a=1", "b"}, exitValidation, ""},
		{"parse error", []string{"=", "a"}, exitValidation, ""},
		{"usage", []string{}, exitCommandError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, getCmd, tt.args...)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d (stderr: %s)", tt.code, code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("expected stdout %q, got %q", tt.want, stdout)
			}
		})
	}
}

func TestRunCount(t *testing.T) {
	code, stdout, _ := run(t, countCmd, "a=1,b,a=2")
	if code != exitSuccess || stdout != "3\n" {
		t.Errorf("count all: code %d, stdout %q", code, stdout)
	}
	code, stdout, _ = run(t, countCmd, "-key", "a", "a=1,b,a=2")
	if code != exitSuccess || stdout != "2\n" {
		t.Errorf("count a: code %d, stdout %q", code, stdout)
	}
	code, _, _ = run(t, countCmd, strings.Repeat("k,", kvargs.MaxEntries)+"k")
	if code != exitValidation {
		t.Errorf("expected exit code %d for too many entries, got %d", exitValidation, code)
	}
}

func TestRunCheck(t *testing.T) {
	code, stdout, stderr := run(t, checkCmd, "testdata/ports.yaml")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if !strings.Contains(stdout, "testdata/ports.yaml: OK (3 devices)") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestRunCheck_Failures(t *testing.T) {
	code, stdout, _ := run(t, checkCmd, "-format", "json", "testdata/broken.toml", "testdata/missing.yaml")
	if code != exitValidation {
		t.Fatalf("expected exit code %d, got %d", exitValidation, code)
	}

	var out []CheckOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(out))
	}
	if out[0].Valid || len(out[0].Devices) != 2 || !out[0].Devices[0].Valid || out[0].Devices[1].Valid {
		t.Errorf("unexpected result for broken.toml: %+v", out[0])
	}
	if out[1].Valid || out[1].Error == "" {
		t.Errorf("missing file should fail with an error: %+v", out[1])
	}
}

func TestRunCheck_NoFiles(t *testing.T) {
	code, _, stderr := run(t, checkCmd)
	if code != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, code)
	}
	if !strings.Contains(stderr, "no files specified") {
		t.Errorf("expected 'no files specified' in stderr, got: %s", stderr)
	}
}

func TestEventLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.klog")

	if code, _, stderr := run(t, parseCmd, "-event-log", path, "a=1,b"); code != exitSuccess {
		t.Fatalf("parse failed: %s", stderr)
	}
	if code, _, _ := run(t, parseCmd, "-event-log", path, "a=[1"); code != exitValidation {
		t.Fatalf("expected parse failure, got %d", code)
	}
	if code, _, stderr := run(t, checkCmd, "-event-log", path, "testdata/broken.toml"); code != exitValidation {
		t.Fatalf("expected check failure, got %d (stderr: %s)", code, stderr)
	}

	code, stdout, stderr := run(t, logCmd, "-format", "json", path)
	if code != exitSuccess {
		t.Fatalf("log failed: %s", stderr)
	}
	var events []EventOutput
	if err := json.Unmarshal([]byte(stdout), &events); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	// parse and release, failed parse, then for broken.toml a parse, a
	// release and a failed parse.
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d: %+v", len(events), events)
	}

	code, stdout, _ = run(t, logCmd, "-failed", path)
	if code != exitSuccess {
		t.Fatalf("log -failed exited %d", code)
	}
	if !strings.Contains(stdout, "Total: 2 events") || !strings.Contains(stdout, "SYNTAX") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	code, stdout, _ = run(t, logCmd, "-op", "release", "-format", "yaml", path)
	if code != exitSuccess {
		t.Fatalf("log -op exited %d", code)
	}
	var released []EventOutput
	if err := yaml.Unmarshal([]byte(stdout), &released); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if len(released) != 2 {
		t.Errorf("expected 2 release events, got %d", len(released))
	}
	for _, e := range released {
		if e.Op != log.OpRelease.String() {
			t.Errorf("unexpected op %s", e.Op)
		}
	}
}

func TestEventLogFailuresOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.klog")

	if code, _, stderr := run(t, parseCmd, "-event-log", path, "-failures-only", "a=1,b"); code != exitSuccess {
		t.Fatalf("parse failed: %s", stderr)
	}
	if code, _, _ := run(t, parseCmd, "-event-log", path, "-failures-only", "a=[1"); code != exitValidation {
		t.Fatalf("expected parse failure, got %d", code)
	}

	code, stdout, stderr := run(t, logCmd, "-format", "json", path)
	if code != exitSuccess {
		t.Fatalf("log failed: %s", stderr)
	}
	var events []EventOutput
	if err := json.Unmarshal([]byte(stdout), &events); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(events), events)
	}
	if events[0].Op != log.OpParse.String() || events[0].Error == "" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestRunLog_BadArgs(t *testing.T) {
	tests := [][]string{
		{},
		{"-op", "bogus", "x.klog"},
		{"-kind", "bogus", "x.klog"},
	}
	for _, args := range tests {
		if code, _, _ := run(t, logCmd, args...); code != exitCommandError {
			t.Errorf("args %v: expected exit code %d, got %d", args, exitCommandError, code)
		}
	}
	if code, _, _ := run(t, logCmd, filepath.Join(t.TempDir(), "missing.klog")); code != exitCommandError {
		t.Errorf("missing file: expected exit code %d, got %d", exitCommandError, code)
	}
}

func TestParseErrorKind(t *testing.T) {
	k, ok := parseErrorKind("KEY_NOT_ALLOWED")
	if !ok || k != log.ErrorKindKeyNotAllowed {
		t.Errorf("parseErrorKind = %v, %v", k, ok)
	}
	if _, ok := parseErrorKind("UNKNOWN"); ok {
		t.Error("UNKNOWN should not parse")
	}
}
