// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"fmt"
	"strings"
)

// lexWebIDL creates a new scanner for WebIDL input.
func lexWebIDL(input string) *lexer {
	return buildlex(input, lexWebIDLSource)
}

// lexBinding creates a new scanner for binding description input.
func lexBinding(input string) *lexer {
	return buildlex(input, lexBindingSource)
}

// tokenType identifies the type of lexer lexemes.
type tokenType int

const (
	tokenTypeError tokenType = iota // error occurred; value is text of error
	tokenTypeEOF
	tokenTypeWhitespace
	tokenTypeComment

	tokenTypeIdentifier // helloworld, interface
	tokenTypeString     // "hello"
	tokenTypeNumber     // 123
	tokenTypeCodeBlock  // %{ ... %}

	tokenTypeLeftBrace    // {
	tokenTypeRightBrace   // }
	tokenTypeLeftParen    // (
	tokenTypeRightParen   // )
	tokenTypeLeftBracket  // [
	tokenTypeRightBracket // ]
	tokenTypeLeftTri      // <
	tokenTypeRightTri     // >

	tokenTypeEquals       // =
	tokenTypeSemicolon    // ;
	tokenTypeComma        // ,
	tokenTypeQuestionMark // ?
	tokenTypeColon        // :
	tokenTypeVariadic     // ...
)

var tokenTypeNames = [...]string{
	tokenTypeError:        "Error",
	tokenTypeEOF:          "EOF",
	tokenTypeWhitespace:   "Whitespace",
	tokenTypeComment:      "Comment",
	tokenTypeIdentifier:   "Identifier",
	tokenTypeString:       "String",
	tokenTypeNumber:       "Number",
	tokenTypeCodeBlock:    "CodeBlock",
	tokenTypeLeftBrace:    "LeftBrace",
	tokenTypeRightBrace:   "RightBrace",
	tokenTypeLeftParen:    "LeftParen",
	tokenTypeRightParen:   "RightParen",
	tokenTypeLeftBracket:  "LeftBracket",
	tokenTypeRightBracket: "RightBracket",
	tokenTypeLeftTri:      "LeftTri",
	tokenTypeRightTri:     "RightTri",
	tokenTypeEquals:       "Equals",
	tokenTypeSemicolon:    "Semicolon",
	tokenTypeComma:        "Comma",
	tokenTypeQuestionMark: "QuestionMark",
	tokenTypeColon:        "Colon",
	tokenTypeVariadic:     "Variadic",
}

func (t tokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("tokenType(%d)", int(t))
}

// lexWebIDLSource scans WebIDL until EOFRUNE.
func lexWebIDLSource(l *lexer) stateFn {
	for {
		switch r := l.next(); {
		case r == EOFRUNE:
			l.emit(tokenTypeEOF)
			return nil

		case r == '{':
			l.emit(tokenTypeLeftBrace)

		case r == '}':
			l.emit(tokenTypeRightBrace)

		case r == '(':
			l.emit(tokenTypeLeftParen)

		case r == ')':
			l.emit(tokenTypeRightParen)

		case r == '[':
			l.emit(tokenTypeLeftBracket)

		case r == ']':
			l.emit(tokenTypeRightBracket)

		case r == '<':
			l.emit(tokenTypeLeftTri)

		case r == '>':
			l.emit(tokenTypeRightTri)

		case r == ';':
			l.emit(tokenTypeSemicolon)

		case r == ',':
			l.emit(tokenTypeComma)

		case r == '.':
			if !l.acceptString("..") {
				return l.errorf("unrecognized character at this location: %#U", r)
			}
			l.emit(tokenTypeVariadic)

		case r == '=':
			l.emit(tokenTypeEquals)

		case r == '?':
			l.emit(tokenTypeQuestionMark)

		case r == ':':
			l.emit(tokenTypeColon)

		case isSpace(r) || isNewline(r):
			l.emit(tokenTypeWhitespace)

		case r == '"':
			l.backup()
			return lexStringLiteral(lexWebIDLSource)

		case isDigit(r) || (r == '-' && isDigit(l.peek())):
			l.backup()
			return lexNumber(lexWebIDLSource)

		case isAlphaNumeric(r) || r == '-':
			l.backup()
			return lexIdentifier(lexWebIDLSource)

		case r == '/':
			l.backup()
			return lexComment(lexWebIDLSource)

		default:
			return l.errorf("unrecognized character at this location: %#U", r)
		}
	}
}

// lexBindingSource scans a binding description until EOFRUNE.
func lexBindingSource(l *lexer) stateFn {
	for {
		switch r := l.next(); {
		case r == EOFRUNE:
			l.emit(tokenTypeEOF)
			return nil

		case r == '{':
			l.emit(tokenTypeLeftBrace)

		case r == '}':
			l.emit(tokenTypeRightBrace)

		case r == ';':
			l.emit(tokenTypeSemicolon)

		case r == ',':
			l.emit(tokenTypeComma)

		case r == ':':
			l.emit(tokenTypeColon)

		case r == '%':
			l.backup()
			return lexCodeBlock(lexBindingSource)

		case isSpace(r) || isNewline(r):
			l.emit(tokenTypeWhitespace)

		case r == '"':
			l.backup()
			return lexStringLiteral(lexBindingSource)

		case isAlphaNumeric(r):
			l.backup()
			return lexIdentifier(lexBindingSource)

		case r == '/':
			l.backup()
			return lexComment(lexBindingSource)

		default:
			return l.errorf("unrecognized character at this location: %#U", r)
		}
	}
}

// lexComment dispatches to the single or multi line comment scanner.
func lexComment(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		rest := l.input[l.pos:]
		switch {
		case strings.HasPrefix(rest, "//"):
			return lexSinglelineComment(resume)
		case strings.HasPrefix(rest, "/*"):
			return lexMultilineComment(resume)
		}
		l.next()
		return l.errorf("unrecognized character at this location: %#U", '/')
	}
}

// lexCodeBlock scans a "%{ ... %}" block. The token value is the text
// between the delimiters.
func lexCodeBlock(resume stateFn) stateFn {
	return func(l *lexer) stateFn {
		if !l.acceptString("%{") {
			l.next()
			return l.errorf("unrecognized character at this location: %#U", '%')
		}
		end := strings.Index(l.input[l.pos:], "%}")
		if end < 0 {
			return l.errorf("unterminated code block")
		}
		l.ignore()
		l.pos += bytePosition(end)
		l.emit(tokenTypeCodeBlock)
		l.acceptString("%}")
		l.ignore()
		return resume
	}
}
