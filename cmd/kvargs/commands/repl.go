package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/aatifsyed/dpdk/pkg/kvargs"
)

// session holds the state of an interactive shell: the current parse
// options and the most recently parsed store.
type session struct {
	parser *kvargs.Parser
	opts   kvargs.ParseOptions
	store  *kvargs.Store
}

// RunRepl runs the interactive shell.
func RunRepl(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	var pf parserFlags
	pf.register(fs)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	p, closeLog, err := pf.newParser(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer closeLog()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "kvargs> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create readline: %v\n", err)
		return exitCommandError
	}
	defer rl.Close()

	s := &session{parser: p, opts: pf.options()}
	defer s.release()

	s.printHelp(rl.Stdout())
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return exitSuccess
		}
		if !s.exec(line, rl.Stdout()) {
			return exitSuccess
		}
	}
}

// exec runs one command line. It reports false when the shell should exit.
func (s *session) exec(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "parse", "p":
		s.release()
		store, err := s.parser.Parse(rest, s.opts)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return true
		}
		s.store = store
		fmt.Fprintf(w, "Parsed %d entries [%s]\n", store.Len(), shortenID(store.ID()))

	case "allow":
		if rest == "" {
			s.opts.ValidKeys = nil
			fmt.Fprintln(w, "Allow-list cleared")
			return true
		}
		s.opts.ValidKeys = strings.Split(rest, ",")
		fmt.Fprintf(w, "Allow-list: %s\n", strings.Join(s.opts.ValidKeys, ", "))

	case "ends":
		s.opts.ValidEnds = rest
		fmt.Fprintf(w, "Terminators: %q\n", rest)

	case "list", "ls":
		if !s.requireStore(w) {
			return true
		}
		for i, p := range s.store.Pairs() {
			fmt.Fprintf(w, "  [%d] %s\n", i, p)
		}

	case "get":
		if !s.requireStore(w) {
			return true
		}
		if v, ok := s.store.Get(rest); ok {
			fmt.Fprintf(w, "%s\n", v)
		} else {
			fmt.Fprintln(w, "(no value)")
		}

	case "find":
		if !s.requireStore(w) {
			return true
		}
		if v, ok := s.store.GetWithValue(parseFindFilter(rest)); ok {
			fmt.Fprintf(w, "%s\n", v)
		} else {
			fmt.Fprintln(w, "(no match)")
		}

	case "count":
		if !s.requireStore(w) {
			return true
		}
		fmt.Fprintln(w, s.store.Count(rest))

	case "process", "processopt":
		if !s.requireStore(w) {
			return true
		}
		run := s.store.Process
		if cmd == "processopt" {
			run = s.store.ProcessOpt
		}
		err := run(rest, kvargs.HandlerFunc(func(key string, value *string) error {
			fmt.Fprintf(w, "  %s\n", kvargs.Pair{Key: key, Value: value})
			return nil
		}))
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}

	case "string":
		if !s.requireStore(w) {
			return true
		}
		fmt.Fprintln(w, s.store.String())

	case "release":
		if !s.requireStore(w) {
			return true
		}
		s.release()
		fmt.Fprintln(w, "Released")

	case "help", "?":
		s.printHelp(w)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help')\n", cmd)
	}
	return true
}

// parseFindFilter reads "[key [value]]"; "*" matches anything.
func parseFindFilter(rest string) kvargs.Filter {
	var f kvargs.Filter
	fields := strings.Fields(rest)
	if len(fields) > 0 && fields[0] != "*" {
		f.Key = fields[0]
	}
	if len(fields) > 1 && fields[1] != "*" {
		v := fields[1]
		f.Value = &v
	}
	return f
}

func (s *session) requireStore(w io.Writer) bool {
	if s.store == nil {
		fmt.Fprintln(w, "No store; use 'parse <args>' first")
		return false
	}
	return true
}

func (s *session) release() {
	if s.store != nil {
		s.store.Release()
		s.store = nil
	}
}

func (s *session) printHelp(w io.Writer) {
	fmt.Fprintln(w, `Commands:
  parse <args>          Parse an argument string (replaces the current store)
  allow [k1,k2,...]     Set the allow-list; no argument accepts every key
  ends [chars]          Set terminator bytes
  list                  List entries
  get <key>             Value of the first entry with key
  find [key [value]]    First valued entry matching; * matches anything
  count [key]           Count entries
  process [key]         Visit entries, failing on only-key entries
  processopt [key]      Visit entries, including only-key entries
  string                Print the store as an argument string
  release               Release the current store
  help                  Show this help
  quit                  Exit`)
}
