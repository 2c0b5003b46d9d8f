// Package commands implements the kvargs CLI commands.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
	"github.com/aatifsyed/dpdk/pkg/log"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// parserFlags are the flags shared by every command that builds a store.
type parserFlags struct {
	Keys     string
	Ends     string
	EventLog string
	Failures bool
	Verbose  bool
}

func (pf *parserFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&pf.Keys, "keys", "", "Comma-separated allow-list of keys")
	fs.StringVar(&pf.Ends, "ends", "", "Terminator bytes; input is cut at the first one")
	pf.registerLogging(fs)
}

func (pf *parserFlags) registerLogging(fs *flag.FlagSet) {
	fs.StringVar(&pf.EventLog, "event-log", "", "Append diagnostic events to this CBOR file")
	fs.BoolVar(&pf.Failures, "failures-only", false, "Record only failed operations")
	fs.BoolVar(&pf.Verbose, "v", false, "Log diagnostic events to stderr")
}

// validKeys returns the allow-list, or nil if none was given.
func (pf *parserFlags) validKeys() []string {
	if pf.Keys == "" {
		return nil
	}
	return strings.Split(pf.Keys, ",")
}

func (pf *parserFlags) options() kvargs.ParseOptions {
	return kvargs.ParseOptions{ValidKeys: pf.validKeys(), ValidEnds: pf.Ends}
}

// newParser builds a parser wired to the requested event sinks. The returned
// closer must be called once the parser is no longer used.
func (pf *parserFlags) newParser(stderr io.Writer) (*kvargs.Parser, func() error, error) {
	var loggers []log.Logger
	closer := func() error { return nil }

	if pf.EventLog != "" {
		fl, err := log.NewFileLogger(pf.EventLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open event log: %w", err)
		}
		loggers = append(loggers, fl)
		closer = fl.Close
	}
	if pf.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(handler)))
	}

	p := kvargs.NewParser()
	if len(loggers) > 0 {
		p.Logger = log.NewMultiLogger(loggers...)
		if pf.Failures {
			p.Logger = log.FailuresOnly(p.Logger)
		}
	}
	return p, closer, nil
}

// EntryOutput is one store entry as printed by the CLI.
type EntryOutput struct {
	Key   string  `json:"key" yaml:"key"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty"`
}

func entriesOf(s *kvargs.Store) []EntryOutput {
	entries := make([]EntryOutput, 0, s.Len())
	for key, value := range s.All() {
		entries = append(entries, EntryOutput{Key: key, Value: value})
	}
	return entries
}

// writeStructured writes v as indented JSON or YAML. It reports false for
// any other format so the caller can fall back to text.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		data, err := json.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = w.Write(pretty.Pretty(data))
		return true, err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = w.Write(data)
		return true, err
	default:
		return false, nil
	}
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}
