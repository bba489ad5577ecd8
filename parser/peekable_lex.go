// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import "fmt"

// peekableLexer wraps a lexer, drops the token types the grammar ignores and
// provides the ability to peek forward without losing state.
type peekableLexer struct {
	lex     *lexer             // a reference to the lexer used for tokenization
	ignored map[tokenType]bool // token types never handed to the parser
	read    []lexeme           // tokens already read from the lexer during a lookahead
}

// peekableLex returns a new peekableLexer for the given lexer.
func peekableLex(lex *lexer, ignored ...tokenType) *peekableLexer {
	l := &peekableLexer{
		lex:     lex,
		ignored: make(map[tokenType]bool, len(ignored)),
	}
	for _, kind := range ignored {
		l.ignored[kind] = true
	}
	return l
}

// fill reads significant tokens until at least count are buffered.
func (l *peekableLexer) fill(count int) {
	for len(l.read) < count {
		token := l.lex.nextToken()
		if l.ignored[token.kind] {
			continue
		}
		l.read = append(l.read, token)
	}
}

// nextToken returns the next significant token found in the lexer.
func (l *peekableLexer) nextToken() lexeme {
	l.fill(1)
	token := l.read[0]
	l.read = l.read[1:]
	return token
}

// peekToken performs lookahead of the given count on the token stream.
func (l *peekableLexer) peekToken(count int) lexeme {
	if count < 1 {
		panic(fmt.Sprintf("Expected count >= 1, received: %v", count))
	}
	l.fill(count)
	return l.read[count-1]
}
