// Command lqvalidate is a thin demonstration CLI over pkg/schema and
// pkg/metaschema.
//
// Usage:
//
//	lqvalidate meta [options] <data-file>...
//	lqvalidate selfcheck
//	lqvalidate version
//
// Meta Command:
//
//	Validate one or more raw LQ-encoded files against the built-in
//	schema-of-schemas (pkg/metaschema), the one schema this CLI ships
//	without requiring a separately-compiled user schema.
//
//	Options:
//	  -strict   Reject schema-forward-compatible extensions
//
// Selfcheck Command:
//
//	Build the schema-of-schemas and report its size; exits non-zero if
//	construction fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blockberries/liquesco/pkg/metaschema"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "meta", "validate", "v":
		cmdMeta(os.Args[2:])
	case "selfcheck":
		cmdSelfcheck()
	case "version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lqvalidate - LQ schema-of-schemas demonstration CLI

Usage:
  lqvalidate <command> [options] <files>...

Commands:
  meta        Validate raw LQ-encoded files against the schema-of-schemas
  selfcheck   Build the schema-of-schemas and report its size
  version     Print version information
  help        Print this help message

Run 'lqvalidate <command> -h' for command-specific help.`)
}

func cmdMeta(args []string) {
	fs := flag.NewFlagSet("meta", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Reject schema-forward-compatible extensions")

	fs.Usage = func() {
		fmt.Println(`Usage: lqvalidate meta [options] <data-file>...

Validate raw LQ-encoded files against the built-in schema-of-schemas.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input files")
		fs.Usage()
		os.Exit(1)
	}

	c := metaschema.BuildSchema()
	hasErrors := false
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if err := c.Validate(data, *strict); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			hasErrors = true
			continue
		}
		fmt.Printf("Valid: %s\n", path)
	}

	if hasErrors {
		os.Exit(1)
	}
}

func cmdSelfcheck() {
	c := metaschema.BuildSchema()
	fmt.Printf("schema-of-schemas: %d types, root=%d\n", c.Len(), c.Root())
}

func cmdVersion() {
	fmt.Println("lqvalidate version 0.1.0")
}
