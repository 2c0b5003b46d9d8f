package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/aatifsyed/dpdk/pkg/devargs"
)

// CheckOptions configures the check command.
type CheckOptions struct {
	parserFlags
	Format string
	Files  []string
}

// CheckOutput is the result for one device-argument file.
type CheckOutput struct {
	File    string         `json:"file" yaml:"file"`
	Format  string         `json:"format,omitempty" yaml:"format,omitempty"`
	Valid   bool           `json:"valid" yaml:"valid"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Devices []DeviceOutput `json:"devices,omitempty" yaml:"devices,omitempty"`
}

// DeviceOutput is the result for one device.
type DeviceOutput struct {
	Name    string        `json:"name" yaml:"name"`
	Line    int           `json:"line,omitempty" yaml:"line,omitempty"`
	Valid   bool          `json:"valid" yaml:"valid"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
	Entries []EntryOutput `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// RunCheck runs the check command over one or more device-argument files.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	opts, err := parseCheckArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printCheckUsage(stderr)
		return exitCommandError
	}

	p, closeLog, err := opts.newParser(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer closeLog()

	outputs := make([]CheckOutput, 0, len(opts.Files))
	allValid := true
	for _, path := range opts.Files {
		out := CheckOutput{File: path, Valid: true}

		f, err := devargs.ParseFile(path)
		if err != nil {
			out.Valid = false
			out.Error = err.Error()
			allValid = false
			outputs = append(outputs, out)
			continue
		}
		out.Format = f.Format.String()

		for _, r := range f.Check(p) {
			dev := DeviceOutput{Name: r.Device.Name, Line: r.Device.LineNumber, Valid: r.OK()}
			if r.OK() {
				dev.Entries = entriesOf(r.Store)
				r.Store.Release()
			} else {
				dev.Error = r.Err.Error()
				out.Valid = false
				allValid = false
			}
			out.Devices = append(out.Devices, dev)
		}
		outputs = append(outputs, out)
	}

	if ok, err := writeStructured(stdout, opts.Format, outputs); ok {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
	} else {
		printCheckText(stdout, outputs)
	}

	if !allValid {
		return exitValidation
	}
	return exitSuccess
}

func printCheckText(w io.Writer, outputs []CheckOutput) {
	for _, out := range outputs {
		if out.Error != "" {
			fmt.Fprintf(w, "%s: FAIL\n  %s\n", out.File, out.Error)
			continue
		}
		status := "OK"
		if !out.Valid {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s: %s (%d devices)\n", out.File, status, len(out.Devices))
		for _, d := range out.Devices {
			if d.Valid {
				fmt.Fprintf(w, "  %-20s ok, %d entries\n", d.Name, len(d.Entries))
				continue
			}
			fmt.Fprintf(w, "  %-20s %s\n", d.Name, d.Error)
		}
	}
}

func parseCheckArgs(args []string) (CheckOptions, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	opts := CheckOptions{}

	opts.registerLogging(fs)
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")

	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !validFormat(opts.Format) {
		return opts, fmt.Errorf("unknown format %q", opts.Format)
	}

	opts.Files = fs.Args()
	if len(opts.Files) == 0 {
		return opts, fmt.Errorf("no files specified")
	}
	return opts, nil
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: kvargs check [options] <file>...

Checks that every device in a YAML or TOML device-argument file parses.

Options:
  -f, -format   Output format (text, json, yaml) [default: text]
  -event-log    Append diagnostic events to a CBOR file
  -v            Log diagnostic events to stderr

Examples:
  kvargs check ports.yaml
  kvargs check -format json ports.toml`)
}
