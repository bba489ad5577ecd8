// Package jsapi generates SpiderMonkey JSAPI bindings to libdom from a
// binding description and the WebIDL it references.
package jsapi

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/genbind"
	"github.com/netsurf-plan9/nsgenbind/parser"
	"github.com/netsurf-plan9/nsgenbind/webidl"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("nsgenbind.jsapi")

// Stage identifies one step of the output. Stages run in declaration order
// and a failing stage stops the run.
type Stage int

const (
	StageWebIDL Stage = iota + 4
	StageBinding
	StageResolve
	StageHeader
	StagePreamble
	StagePrivate
	StageClass
	StageOperationBody
	StagePropertyBody
	StageFunctionSpec
	StagePropertySpec
	StageAPI
	StageClassInit
	StageClassNew
)

var stageNames = map[Stage]string{
	StageWebIDL:        "webidl",
	StageBinding:       "binding",
	StageResolve:       "resolve",
	StageHeader:        "header",
	StagePreamble:      "preamble",
	StagePrivate:       "private",
	StageClass:         "class",
	StageOperationBody: "operation body",
	StagePropertyBody:  "property body",
	StageFunctionSpec:  "function spec",
	StagePropertySpec:  "property spec",
	StageAPI:           "api",
	StageClassInit:     "class init",
	StageClassNew:      "class new",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Status is the process exit status reported for a failure in s.
func (s Stage) Status() int { return int(s) }

// StageError is returned by Output when a stage fails.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// DiagnosticKind classifies a recoverable condition.
type DiagnosticKind int

const (
	UnsupportedType DiagnosticKind = iota
	MissingImplementation
	UserType
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnsupportedType:
		return "UnsupportedType"
	case MissingImplementation:
		return "MissingImplementation"
	case UserType:
		return "UserType"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a recoverable condition met while generating output. It
// never fails the run.
type Diagnostic struct {
	Kind      DiagnosticKind
	Interface string
	Member    string
	Message   string
}

func (d Diagnostic) String() string {
	return d.Message
}

// Report describes a run.
type Report struct {
	// Files lists the WebIDL files read, in load order.
	Files       []string
	Diagnostics []Diagnostic
}

// Options configures Output.
type Options struct {
	// Verbose dumps the WebIDL AST and reports user type arguments.
	Verbose bool

	// Log receives diagnostics. The package logger is used when nil.
	Log commonlog.Logger
}

// Output writes the C binding described by doc to w. WebIDL files named by
// the binding are read from fsys.
//
// A non-nil error is always a *StageError; whatever was written to w
// before it must be discarded.
func Output(w io.Writer, doc *genbind.Document, fsys fs.FS, opts Options) (*Report, error) {
	g := &generator{
		emitter: emitter{w: w},
		doc:     doc,
		opts:    opts,
		log:     opts.Log,
		report:  &Report{},
	}
	if g.log == nil {
		g.log = log
	}

	stages := []struct {
		stage Stage
		run   func() error
	}{
		{StageWebIDL, func() error { return g.readWebIDL(fsys) }},
		{StageBinding, g.newBinding},
		{StageResolve, g.resolve},
		{StageHeader, g.outputHeaderComments},
		{StagePreamble, g.outputPreamble},
		{StagePrivate, g.outputPrivateDeclaration},
		{StageClass, g.outputJSClass},
		{StageOperationBody, g.outputOperatorBody},
		{StagePropertyBody, g.outputPropertyBody},
		{StageFunctionSpec, g.outputFunctionSpec},
		{StagePropertySpec, g.outputPropertySpec},
		{StageAPI, g.outputAPIOperations},
		{StageClassInit, g.outputClassInit},
		{StageClassNew, g.outputClassNew},
	}
	for _, s := range stages {
		if err := s.run(); err != nil {
			return g.report, &StageError{Stage: s.stage, Err: err}
		}
		if g.err != nil {
			return g.report, &StageError{Stage: s.stage, Err: g.err}
		}
		g.log.Debugf("stage %s done", s.stage)
	}
	return g.report, nil
}

// emitter writes formatted output and keeps the first write error.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *emitter) print(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

type generator struct {
	emitter

	doc     *genbind.Document
	idl     *webidl.Document
	binding *genbind.Binding
	chain   []webidl.InterfaceMembers

	opts   Options
	log    commonlog.Logger
	report *Report
}

func (g *generator) readWebIDL(fsys fs.FS) error {
	g.idl = webidl.NewDocument()
	for _, name := range g.doc.WebIDLFiles() {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading WebIDL: %w", err)
		}
		g.report.Files = append(g.report.Files, name)
		if err := parser.ParseWebIDL(g.idl, name, string(data)); err != nil {
			return err
		}
		g.log.Infof("loaded %s", name)
	}
	if g.opts.Verbose {
		g.log.Debugf("WebIDL AST:\n%s", ast.DumpString(g.idl.Tree, g.idl.Root))
	}
	return nil
}

func (g *generator) newBinding() error {
	b, err := genbind.NewBinding(g.doc, g.idl)
	if err != nil {
		return err
	}
	g.binding = b
	return nil
}

// resolve linearizes the target interface before anything is written, so
// an unknown interface produces no output.
func (g *generator) resolve() error {
	chain, err := webidl.ResolveMembers(g.idl, g.binding.Interface)
	if err != nil {
		return err
	}
	g.chain = chain
	return nil
}

// diag records a recoverable condition and logs it.
func (g *generator) diag(kind DiagnosticKind, member, format string, args ...interface{}) {
	d := Diagnostic{
		Kind:      kind,
		Interface: g.binding.Interface,
		Member:    member,
		Message:   fmt.Sprintf(format, args...),
	}
	g.report.Diagnostics = append(g.report.Diagnostics, d)
	switch kind {
	case UserType:
		g.log.Infof("%s", d.Message)
	default:
		g.log.Warningf("%s", d.Message)
	}
}

// outputCodeBlock copies the code block of a binding node followed by a
// newline. It reports whether there was one.
func (g *generator) outputCodeBlock(node ast.NodeID) bool {
	code, ok := g.doc.CodeBlock(node)
	if ok {
		g.printf("%s\n", code)
	}
	return ok
}
