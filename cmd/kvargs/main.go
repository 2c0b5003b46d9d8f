// kvargs is a CLI tool for parsing and inspecting kvargs argument strings.
package main

import (
	"fmt"
	"os"

	"github.com/aatifsyed/dpdk/cmd/kvargs/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "parse":
		exitCode = commands.RunParse(args, os.Stdout, os.Stderr)
	case "get":
		exitCode = commands.RunGet(args, os.Stdout, os.Stderr)
	case "count":
		exitCode = commands.RunCount(args, os.Stdout, os.Stderr)
	case "check":
		exitCode = commands.RunCheck(args, os.Stdout, os.Stderr)
	case "log":
		exitCode = commands.RunLog(args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = commands.RunRepl(args, os.Stdin, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("kvargs version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`kvargs - key/value argument string tool

Usage:
  kvargs <command> [options] [args...]

Commands:
  parse   Parse an argument string and print its entries
  get     Print the value of a key
  count   Count entries
  check   Check every device in a YAML or TOML device-argument file
  log     Show a diagnostic event log written with -event-log
  repl    Interactive shell

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  kvargs parse 'iface=eth0,queues=[0,1,2],promisc'
  kvargs get 'iface=eth0,promisc' iface
  kvargs check -event-log events.klog ports.yaml
  kvargs log -failed events.klog

Exit codes:
  0  success
  1  usage or I/O error
  2  the input did not parse or had no match

For command-specific help, run:
  kvargs <command> -help`)
}
