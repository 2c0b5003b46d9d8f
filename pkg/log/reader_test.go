package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.klog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), ParseID: "p-1", Op: OpParse},
		{Timestamp: time.Now(), ParseID: "p-2", Op: OpProcess},
		{Timestamp: time.Now(), ParseID: "p-3", Op: OpRelease},
	}

	reader, err := NewReader(createTestLogFile(t, events))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].ParseID != "p-1" {
		t.Errorf("first event ParseID = %q, want %q", read[0].ParseID, "p-1")
	}
	if read[2].ParseID != "p-3" {
		t.Errorf("last event ParseID = %q, want %q", read[2].ParseID, "p-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.klog")
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedFile(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), ParseID: "p-1", Op: OpParse, Input: "a=b,c=d"},
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err == nil || err == io.EOF {
		t.Errorf("expected decode error for truncated file, got %v", err)
	}
}

func TestReaderNonexistentFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.klog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, ParseID: "p-1", Op: OpParse, Count: 2},
		{Timestamp: base.Add(time.Second), ParseID: "p-2", Op: OpParse,
			Error: &ErrorEventData{Kind: ErrorKindCapacity, Message: "too many"}},
		{Timestamp: base.Add(2 * time.Second), ParseID: "p-1", Op: OpProcess,
			Error: &ErrorEventData{Kind: ErrorKindMissingValue, Message: "no value", Key: "k"}},
		{Timestamp: base.Add(3 * time.Second), ParseID: "p-1", Op: OpRelease},
	}
	path := createTestLogFile(t, events)

	opParse := OpParse
	kindMissing := ErrorKindMissingValue
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by parse id", Filter{ParseID: "p-1"}, 3},
		{"by op", Filter{Op: &opParse}, 2},
		{"failed only", Filter{FailedOnly: true}, 2},
		{"by kind", Filter{Kind: &kindMissing}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{ParseID: "p-1", Op: &opParse}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}
