// Package mdtest extracts generator test cases from Markdown documents.
//
// A test case starts at a heading "Test: <name>". Inside it, fenced code
// blocks carry the inputs and assertions, selected by the fence info:
//
//	genbind          the binding description (exactly one)
//	webidl <file>    a WebIDL file the binding can reference
//	expect           text that must appear in the output
//	reject           text that must not appear in the output
//	diag             a diagnostic kind, optionally followed by its message
//	error            the name of the stage expected to fail
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// AssertionType is the fence info of an assertion.
type AssertionType string

const (
	AssertExpect AssertionType = "expect"
	AssertReject AssertionType = "reject"
	AssertDiag   AssertionType = "diag"
	AssertError  AssertionType = "error"
)

const (
	fenceBinding = "genbind"
	fenceWebIDL  = "webidl"
)

// Assertion is one check against the generated output.
type Assertion struct {
	Type    AssertionType
	Content string // fence content without the trailing newline
	Line    int    // line of the fence content in the Markdown source
}

// TestCase is a binding with its WebIDL files and the checks to run on the
// output.
type TestCase struct {
	Name       string
	Binding    string
	WebIDL     map[string]string // file name to source
	Assertions []Assertion
}

// Extract parses a Markdown document and returns its test cases in
// document order.
func Extract(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{
				Name:   strings.TrimPrefix(heading, "Test: "),
				WebIDL: map[string]string{},
			}

		case *ast.FencedCodeBlock:
			info := fenceInfo(n, source)
			line := lineNumber(n, source)
			if len(info) == 0 {
				// plain code blocks are commentary
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, info[0])
			}
			if err := current.add(info, blockContent(n, source), line); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func (tc *TestCase) add(info []string, content string, line int) error {
	switch kind := info[0]; kind {
	case fenceBinding:
		if tc.Binding != "" {
			return fmt.Errorf("line %d: multiple genbind fences found in test '%s'", line, tc.Name)
		}
		tc.Binding = content
	case fenceWebIDL:
		if len(info) != 2 {
			return fmt.Errorf("line %d: webidl fence needs a file name in test '%s'", line, tc.Name)
		}
		if _, dup := tc.WebIDL[info[1]]; dup {
			return fmt.Errorf("line %d: duplicate webidl file %s in test '%s'", line, info[1], tc.Name)
		}
		tc.WebIDL[info[1]] = content
	case string(AssertExpect), string(AssertReject), string(AssertDiag), string(AssertError):
		tc.Assertions = append(tc.Assertions, Assertion{
			Type:    AssertionType(kind),
			Content: strings.TrimRight(content, "\n"),
			Line:    line,
		})
	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, kind, tc.Name)
	}
	return nil
}

// validate ensures a test case has a binding and at least one assertion.
func validate(tc *TestCase) error {
	if tc.Binding == "" {
		return fmt.Errorf("test '%s' has no genbind fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

// nodeText extracts the plain text of a node.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// fenceInfo splits the info string of a fence into words.
func fenceInfo(block *ast.FencedCodeBlock, source []byte) []string {
	if block.Info == nil {
		return nil
	}
	return strings.Fields(string(block.Info.Segment.Value(source)))
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineNumber returns the 1-based line of the first content line of node.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
