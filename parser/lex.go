// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EOFRUNE is returned by next once the input is exhausted.
const EOFRUNE = -1

// bytePosition is a byte offset into the lexer input.
type bytePosition int

// lexeme represents a token returned from scanning the contents of a file.
type lexeme struct {
	kind     tokenType    // The type of this lexeme.
	position bytePosition // The starting position of this token in the input string.
	value    string       // The textual value of this token.
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input   string       // the string being scanned
	state   stateFn      // the next lexing function to enter
	pos     bytePosition // current position in the input
	start   bytePosition // start position of this token
	width   bytePosition // width of last rune read from input
	pending []lexeme     // scanned lexemes not yet returned
}

// buildlex creates a new scanner for the input string, starting in the
// given state.
func buildlex(input string, start stateFn) *lexer {
	return &lexer{
		input: input,
		state: start,
	}
}

// nextToken returns the next token from the input, running state functions
// until one is available. Once the input is exhausted it keeps returning EOF.
func (l *lexer) nextToken() lexeme {
	for len(l.pending) == 0 {
		if l.state == nil {
			return lexeme{tokenTypeEOF, l.pos, ""}
		}
		l.state = l.state(l)
	}
	token := l.pending[0]
	l.pending = l.pending[1:]
	return token
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.width = 0
		return EOFRUNE
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = bytePosition(w)
	l.pos += l.width
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// value returns the text of the token being scanned.
func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

// emit passes a token back to the client.
func (l *lexer) emit(t tokenType) {
	l.pending = append(l.pending, lexeme{t, l.start, l.value()})
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// acceptString consumes the given string if the input continues with it.
func (l *lexer) acceptString(value string) bool {
	if strings.HasPrefix(l.input[l.pos:], value) {
		l.pos += bytePosition(len(value))
		return true
	}
	return false
}

// errorf emits an error token and terminates the scan by passing back a nil
// pointer that will be the next state.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.pending = append(l.pending, lexeme{tokenTypeError, l.start, fmt.Sprintf(format, args...)})
	return nil
}

// checkFn returns whether the rune continues the token being scanned.
type checkFn func(r rune) (bool, error)

// buildLexUntil returns a state function that consumes runes while checker
// accepts them and then emits a token of the given type.
func buildLexUntil(findType tokenType, checker checkFn, resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		for {
			r := l.peek()
			ok, err := checker(r)
			if err != nil {
				return l.errorf("%v", err)
			}
			if !ok {
				l.emit(findType)
				return resume
			}
			l.next()
		}
	}
}

// lexMultilineComment scans until the closing "*/".
func lexMultilineComment(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		l.acceptString("/*")
		end := strings.Index(l.input[l.pos:], "*/")
		if end < 0 {
			return l.errorf("unterminated comment")
		}
		l.pos += bytePosition(end + len("*/"))
		l.emit(tokenTypeComment)
		return resume
	}
}

// lexSinglelineComment scans until newline or EOFRUNE.
func lexSinglelineComment(resume stateFn) stateFn {
	checker := func(r rune) (bool, error) {
		result := r == EOFRUNE || isNewline(r)
		return !result, nil
	}

	return func(l *lexer) stateFn {
		l.acceptString("//")
		return buildLexUntil(tokenTypeComment, checker, resume)
	}
}

// lexStringLiteral scans a double quoted string with backslash escapes.
func lexStringLiteral(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		l.accept(`"`)
		esc := false
		for {
			c := l.next()
			if c == EOFRUNE || isNewline(c) {
				return l.errorf("unterminated string literal")
			}
			if c == '"' && !esc {
				break
			}
			esc = c == '\\' && !esc
		}
		l.emit(tokenTypeString)
		return resume
	}
}

// lexNumber scans a decimal, octal, hexadecimal or floating point number.
func lexNumber(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		l.accept("-")
		digits := "0123456789"
		if l.accept("0") && l.accept("xX") {
			digits = "0123456789abcdefABCDEF"
		}
		l.acceptRun(digits)
		if l.accept(".") {
			l.acceptRun(digits)
		}
		if digits != "0123456789abcdefABCDEF" && l.accept("eE") {
			l.accept("+-")
			l.acceptRun("0123456789")
		}
		if isAlphaNumeric(l.peek()) {
			l.next()
			return l.errorf("bad number syntax: %q", l.value())
		}
		l.emit(tokenTypeNumber)
		return resume
	}
}

// lexIdentifier scans an identifier or keyword.
func lexIdentifier(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		l.accept("_-")
		for isAlphaNumeric(l.peek()) || l.peek() == '-' {
			l.next()
		}
		l.emit(tokenTypeIdentifier)
		return resume
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isNewline reports whether r is an end-of-line character.
func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isDigit reports whether r is a decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
