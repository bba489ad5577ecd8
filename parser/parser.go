// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// parser package defines the parsers and lexers for translating binding
// descriptions and a *supported subset* of WebIDL (http://www.w3.org/TR/WebIDL/)
// into the shared AST.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/netsurf-plan9/nsgenbind/ast"
)

// ErrSyntax matches every error reported by the parsers.
var ErrSyntax = errors.New("syntax error")

// SyntaxError is a parse failure at a position in a named input.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
	Context string // the declarations being parsed, outermost first
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	if e.Context != "" {
		msg += " (in " + e.Context + ")"
	}
	return msg
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// sourceParser holds the state of the parser.
type sourceParser struct {
	name          string         // name of the input, used in errors
	input         string         // the source, used to compute line and column
	lex           *peekableLexer // a reference to the lexer used for tokenization
	nodes         nodeStack      // the stack of the open constructs
	currentToken  lexeme         // the current token
	previousToken lexeme         // the previous token
	errs          []error
	errorPos      bytePosition // position of the last reported error
}

// buildParser returns a new sourceParser instance positioned on the first
// significant token.
func buildParser(name, input string, lexer *lexer) *sourceParser {
	p := &sourceParser{
		name:          name,
		input:         input,
		lex:           peekableLex(lexer, tokenTypeWhitespace, tokenTypeComment),
		currentToken:  lexeme{tokenTypeEOF, 0, ""},
		previousToken: lexeme{tokenTypeEOF, 0, ""},
	}
	p.consumeToken()
	return p
}

// err returns every error reported so far, or nil.
func (p *sourceParser) err() error {
	return errors.Join(p.errs...)
}

// failed reports whether any error has been reported.
func (p *sourceParser) failed() bool {
	return len(p.errs) > 0
}

// node pushes a construct onto the stack and returns the function popping
// it. The construct is returned so the name can be filled in once known.
func (p *sourceParser) node(what string) (*construct, func()) {
	c := &construct{what: what}
	p.nodes.push(c)
	return c, func() {
		if p.nodes.topValue() != c {
			panic(fmt.Sprintf("Construct %v is not on top of the stack. Token: %s", c, p.currentToken.value))
		}
		p.nodes.pop()
	}
}

// lineColumn converts a byte position to a 1-based line and column.
func (p *sourceParser) lineColumn(pos bytePosition) (int, int) {
	if pos < 0 || int(pos) > len(p.input) {
		pos = bytePosition(len(p.input))
	}
	before := p.input[:pos]
	line := strings.Count(before, "\n") + 1
	col := int(pos) - (strings.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}

// emitError records an error at the current token. Only the first error
// at a token is kept, later ones are consequences of it.
func (p *sourceParser) emitError(format string, args ...interface{}) {
	if p.failed() && p.errorPos == p.currentToken.position {
		return
	}
	p.errorPos = p.currentToken.position
	line, col := p.lineColumn(p.currentToken.position)
	p.errs = append(p.errs, &SyntaxError{
		File:    p.name,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
		Context: p.nodes.path(),
	})
}

// consumeToken advances the lexer forward, returning the next token. Lexer
// errors are reported once, when their token becomes current.
func (p *sourceParser) consumeToken() lexeme {
	p.previousToken = p.currentToken
	p.currentToken = p.lex.nextToken()
	if p.currentToken.kind == tokenTypeError {
		p.emitError("%s", p.currentToken.value)
	}
	return p.currentToken
}

// describe renders the current token for error messages.
func (p *sourceParser) describe() string {
	switch p.currentToken.kind {
	case tokenTypeEOF:
		return "end of input"
	case tokenTypeCodeBlock:
		return "code block"
	}
	return fmt.Sprintf("%v %q", p.currentToken.kind, p.currentToken.value)
}

// isToken returns true if the current token matches one of the types given.
func (p *sourceParser) isToken(types ...tokenType) bool {
	for _, kind := range types {
		if p.currentToken.kind == kind {
			return true
		}
	}

	return false
}

// nextToken returns the next token found, without advancing the parser. Used for
// lookahead.
func (p *sourceParser) nextToken() lexeme {
	return p.lex.peekToken(1)
}

// isNextToken returns true if the *next* token matches one of the types given.
func (p *sourceParser) isNextToken(types ...tokenType) bool {
	token := p.nextToken()

	for _, kind := range types {
		if token.kind == kind {
			return true
		}
	}

	return false
}

// isKeyword returns true if the current token is a keyword matching that given.
// Keywords are lexed as identifiers.
func (p *sourceParser) isKeyword(keyword string) bool {
	return p.isToken(tokenTypeIdentifier) && p.currentToken.value == keyword
}

// isNextKeyword returns true if the next token is a keyword matching that given.
func (p *sourceParser) isNextKeyword(keyword string) bool {
	token := p.nextToken()
	return token.kind == tokenTypeIdentifier && token.value == keyword
}

// tryConsumeIdentifier attempts to consume an expected identifier.
func (p *sourceParser) tryConsumeIdentifier() (string, bool) {
	if !p.isToken(tokenTypeIdentifier) {
		return "", false
	}

	value := p.currentToken.value
	p.consumeToken()
	return value, true
}

// consumeIdentifier consumes an expected identifier token or reports an error.
func (p *sourceParser) consumeIdentifier() string {
	if identifier, ok := p.tryConsumeIdentifier(); ok {
		return identifier
	}

	p.emitError("Expected identifier, found %s", p.describe())
	return ""
}

// consumeKeyword consumes an expected keyword token or reports an error.
func (p *sourceParser) consumeKeyword(keyword string) bool {
	if !p.tryConsumeKeyword(keyword) {
		p.emitError("Expected keyword %s, found %s", keyword, p.describe())
		return false
	}
	return true
}

// tryConsumeKeyword attempts to consume an expected keyword token.
func (p *sourceParser) tryConsumeKeyword(keyword string) bool {
	if !p.isKeyword(keyword) {
		return false
	}

	p.consumeToken()
	return true
}

// consume performs consumption of the next token if it matches any of the given
// types and returns it. If no matching type is found, reports an error.
func (p *sourceParser) consume(types ...tokenType) (lexeme, bool) {
	token, ok := p.tryConsume(types...)
	if !ok {
		p.emitError("Expected one of: %v, found %s", types, p.describe())
	}
	return token, ok
}

// tryConsume performs consumption of the next token if it matches any of the given
// types and returns it.
func (p *sourceParser) tryConsume(types ...tokenType) (lexeme, bool) {
	if p.isToken(types...) {
		token := p.currentToken
		p.consumeToken()
		return token, true
	}

	return lexeme{tokenTypeError, -1, ""}, false
}

// consumeUntil consumes all tokens until one of the given token types is
// found, and consumes that one too. It stops at the end of the input.
func (p *sourceParser) consumeUntil(types ...tokenType) (lexeme, bool) {
	for !p.isToken(tokenTypeEOF, tokenTypeError) {
		if found, ok := p.tryConsume(types...); ok {
			return found, true
		}

		p.consumeToken()
	}
	return p.currentToken, false
}

// chain builds a sibling chain in source order. Each appended node becomes
// the new head, so the chain reads back earliest first.
type chain[K ast.Kind] struct {
	tree *ast.Tree[K]
	head ast.NodeID
}

// add allocates a node at the end of the chain.
func (c *chain[K]) add(kind K, p ast.Payload) ast.NodeID {
	c.head = c.tree.NewNode(kind, c.head, p)
	return c.head
}

// append links an already built node at the end of the chain.
func (c *chain[K]) append(id ast.NodeID) {
	if id.IsNil() {
		return
	}
	c.head = c.tree.Link(id, c.head)
}

// list returns the chain as a list payload.
func (c *chain[K]) list() ast.List {
	return ast.List(c.head)
}
