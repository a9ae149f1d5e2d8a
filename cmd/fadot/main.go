/*
Fadot loads finite automata from the bespoke tagged text format and
writes Graphviz DOT and synthesized-regex output for each.

Usage:

	fadot [flags] FILE...

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-t, --type TYPE
		Override the <TYPE> tag found in each input file, forcing it to
		be parsed as the given automaton kind (dfa, nfa, or enfa).

	-o, --out DIR
		Write output files to DIR instead of beside the binary. DIR is
		created if it does not exist.

	-i, --interactive
		After processing any FILE arguments, load the first FILE and
		start an interactive session against it: a readline-backed
		prompt accepting "delta STATE SYMBOL", "word STATE SYMBOLS",
		"closure STATE", "describe", and "quit"/"exit".

For each input file, fadot writes a "<name>.gv" file with its DOT
rendering. A DFA additionally gets a "<name>.regex" file with its
synthesized regular expression. An NFA or ENFA is also converted to an
equivalent DFA, which gets its own "<name>.dfa.gv" and
"<name>.dfa.regex" files.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rstenholt/finautom/internal/automaton"
	"github.com/rstenholt/finautom/internal/input"
	"github.com/rstenholt/finautom/internal/loader"
	"github.com/rstenholt/finautom/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitProcessingError
	ExitInitError
)

var (
	returnCode       int     = ExitSuccess
	flagVersion      *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagTypeOverride *string = pflag.StringP("type", "t", "", "Force all input files to be parsed as this automaton type (dfa, nfa, enfa)")
	flagOutDir       *string = pflag.StringP("out", "o", "", "Directory to write .gv and .regex output files to (default: the directory holding the fadot binary)")
	flagInteractive  *bool   = pflag.BoolP("interactive", "i", false, "Load the first input file and start an interactive delta/closure session against it")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	outDir := *flagOutDir
	if outDir == "" {
		exe, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: locate binary: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		outDir = filepath.Dir(exe)
	}

	if err := os.MkdirAll(outDir, 0770); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create output dir: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	args := pflag.Args()
	for _, path := range args {
		if err := processFile(path, *flagTypeOverride, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", path, err.Error())
			returnCode = ExitProcessingError
		}
	}

	if *flagInteractive {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "ERROR: -i requires at least one input file to load into the session")
			returnCode = ExitInitError
			return
		}
		runInteractive(args[0], *flagTypeOverride)
	}
}

// runInteractive loads the automaton at path and opens a readline-backed
// REPL against it, exercising Delta/DeltaWord/EpsilonClosure directly
// rather than the load-convert-write pipeline processFile drives.
func runInteractive(path, typeOverride string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", path, err.Error())
		returnCode = ExitProcessingError
		return
	}

	src := string(data)
	if typeOverride != "" {
		src = forceType(src, typeOverride)
	}

	a, diags := loader.Load(src)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "WARNING: %s: %s\n", path, d.Error())
	}

	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: start interactive session: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()
	reader.SetPrompt(fmt.Sprintf("%s> ", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))))

	fmt.Printf("Loaded %s: %s\n", path, a.DescribeSummary())
	fmt.Println(`Commands: delta STATE SYMBOL | word STATE SYMBOLS | closure STATE | describe | quit`)

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			return
		}
		done, cmdErr := runREPLCommand(a, line)
		if cmdErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", cmdErr.Error())
		}
		if done {
			return
		}
	}
}

// runREPLCommand executes one line of REPL input against a, reporting
// whether the session should end.
func runREPLCommand(a *automaton.Automaton, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil

	case "describe":
		fmt.Println(a.DescribeTransitions())
		return false, nil

	case "delta":
		if len(fields) != 3 || len(fields[2]) != 1 {
			return false, fmt.Errorf("usage: delta STATE SYMBOL")
		}
		targets, diag := a.Delta(fields[1], fields[2][0])
		if diag != nil {
			return false, diag
		}
		fmt.Printf("-> %s\n", strings.Join(targets, ", "))
		return false, nil

	case "word":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: word STATE SYMBOLS")
		}
		targets, diag := a.DeltaWord(fields[1], []byte(fields[2]))
		if diag != nil {
			return false, diag
		}
		fmt.Printf("-> %s\n", strings.Join(targets, ", "))
		return false, nil

	case "closure":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: closure STATE")
		}
		closure := a.EpsilonClosure(fields[1])
		fmt.Printf("-> %s\n", strings.Join(closure.Elements(), ", "))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q (try delta, word, closure, describe, quit)", fields[0])
	}
}

func processFile(path, typeOverride, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	src := string(data)
	if typeOverride != "" {
		src = forceType(src, typeOverride)
	}

	a, diags := loader.Load(src)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "WARNING: %s: %s\n", path, d.Error())
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if err := writeFile(outDir, base+".gv", a.DOT()); err != nil {
		return err
	}

	target := a
	if a.Variant() != automaton.DFA {
		dfa, derr := a.ToDFA()
		if derr != nil {
			return fmt.Errorf("convert to DFA: %w", derr)
		}
		if err := writeFile(outDir, base+".dfa.gv", dfa.DOT()); err != nil {
			return err
		}
		target = dfa
	}

	regex, rerr := target.ToRegex()
	if rerr != nil {
		return fmt.Errorf("synthesize regex: %w", rerr)
	}
	suffix := ".regex"
	if target != a {
		suffix = ".dfa.regex"
	}
	if err := writeFile(outDir, base+suffix, regex+"\n"); err != nil {
		return err
	}

	return nil
}

func writeFile(dir, name, contents string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0660); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// forceType replaces the body of the first <TYPE>...</TYPE> tag found in
// src with override, or prepends a <TYPE> tag if none is present.
func forceType(src, override string) string {
	const open, close = "<TYPE>", "</TYPE>"
	start := strings.Index(src, open)
	if start < 0 {
		return open + override + close + src
	}
	start += len(open)
	end := strings.Index(src[start:], close)
	if end < 0 {
		return src
	}
	return src[:start] + override + src[start+end:]
}
