// Command nsgenbind generates JSAPI bindings to libdom from a binding
// description and the WebIDL it references.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/internal/config"
	"github.com/netsurf-plan9/nsgenbind/jsapi"
	"github.com/netsurf-plan9/nsgenbind/parser"
	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
)

// Exit statuses for failures before the generator runs. Generator
// failures exit with the status of the failing stage.
const (
	exitUsage  = 1
	exitParse  = 1
	exitStdout = 2
	exitDep    = 3
	exitWrite  = 18
)

func main() {
	// util.Exit runs the exit hooks that close the log file.
	util.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, status := parseCommandLine(args, stderr)
	if opts == nil {
		return status
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrVerboseStdout) {
			return exitStdout
		}
		return exitDep
	}

	configureLog(opts)
	log := commonlog.GetLogger("nsgenbind")

	name, data, err := readInput(opts, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitParse
	}
	doc, err := parser.ParseBinding(name, string(data))
	if err != nil {
		fmt.Fprintf(stderr, "Error: parse failed:\n%v\n", err)
		return exitParse
	}

	if opts.Verbose {
		if err := ast.Dump(stdout, doc.Tree, doc.Root); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitWrite
		}
	}

	var buf bytes.Buffer
	report, err := jsapi.Output(&buf, doc, idlFS{opts}, jsapi.Options{
		Verbose: opts.Verbose,
		Log:     log,
	})
	if err != nil {
		var serr *jsapi.StageError
		errors.As(err, &serr)
		fmt.Fprintf(stderr, "Error: output failed with code %d: %v\n", serr.Stage.Status(), err)
		// the output is invalid, make must not see an up to date target
		if opts.Output != "" {
			os.Remove(opts.Output)
		}
		return serr.Stage.Status()
	}
	if n := len(report.Diagnostics); n > 0 {
		log.Noticef("%s: %d diagnostics", name, n)
	}

	if opts.Output == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitWrite
		}
	} else if err := writeResult(opts.Output, buf.Bytes()); err != nil {
		fmt.Fprintf(stderr, "Error: writing %s: %v\n", opts.Output, err)
		return exitWrite
	}

	if opts.DepFile != "" {
		if err := writeResult(opts.DepFile, depFile(opts, report.Files)); err != nil {
			fmt.Fprintf(stderr, "Error: unable to write dep file: %v\n", err)
			return exitDep
		}
	}
	return 0
}

// parseCommandLine builds the options of the run: the configuration file
// first, then the flags given on the command line. It returns nil options
// with the exit status on failure.
func parseCommandLine(args []string, stderr io.Writer) (*config.Options, int) {
	var (
		flags      config.Options
		configPath string
	)
	fset := flag.NewFlagSet("nsgenbind", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&flags.IDLPath, "I", "", "directory to read WebIDL files from")
	fset.StringVar(&flags.Output, "o", "", "output file, standard output when not given")
	fset.StringVar(&flags.DepFile, "d", "", "write a make dependency file")
	fset.StringVar(&configPath, "c", "", "configuration file (default "+config.FileName+" next to the input)")
	fset.BoolVar(&flags.Verbose, "v", false, "verbose output, dumps the ASTs")
	fset.BoolVar(&flags.Debug, "D", false, "debug logging")
	fset.BoolVar(&flags.Warnings, "W", false, "log a summary of the diagnostics")
	fset.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [-d depfilename] [-I idlpath] [-o filename] inputfile\n", fset.Name())
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return nil, exitUsage
	}
	if fset.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: expected input filename")
		return nil, exitUsage
	}
	flags.Input = fset.Arg(0)

	var (
		opts *config.Options
		err  error
	)
	switch {
	case configPath != "":
		opts, err = config.Load(configPath)
	case flags.Stdin():
		opts, err = config.Find(".")
	default:
		opts, err = config.Find(filepath.Dir(flags.Input))
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, exitUsage
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "I":
			opts.IDLPath = flags.IDLPath
		case "o":
			opts.Output = flags.Output
		case "d":
			opts.DepFile = flags.DepFile
		case "v":
			opts.Verbose = flags.Verbose
		case "D":
			opts.Debug = flags.Debug
		case "W":
			opts.Warnings = flags.Warnings
		}
	})
	opts.Input = flags.Input
	return opts, 0
}

// configureLog installs an unbuffered simple backend. Diagnostics must be
// written before the process exits, whichever way it exits.
func configureLog(opts *config.Options) {
	backend := simple.NewBackend()
	backend.Buffered = false
	commonlog.SetBackend(backend)

	var path *string
	if opts.LogFile != "" {
		path = &opts.LogFile
	}
	commonlog.Configure(opts.Verbosity(), path)
}

func readInput(opts *config.Options, stdin io.Reader) (string, []byte, error) {
	if opts.Stdin() {
		data, err := io.ReadAll(stdin)
		return "<stdin>", data, err
	}
	data, err := os.ReadFile(opts.Input)
	return opts.Input, data, err
}
