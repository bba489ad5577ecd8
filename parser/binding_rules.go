// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package parser

import (
	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/genbind"
)

// bindingParser builds a binding description AST.
type bindingParser struct {
	*sourceParser
	doc  *genbind.Document
	tree *ast.Tree[genbind.Kind]
}

// ParseBinding parses a binding description. name is used in errors.
func ParseBinding(name, input string) (*genbind.Document, error) {
	doc := &genbind.Document{Tree: ast.New(genbind.Ident)}
	p := &bindingParser{
		sourceParser: buildParser(name, input, lexBinding(input)),
		doc:          doc,
		tree:         doc.Tree,
	}
	stmts := p.consumeTopLevel()
	if p.failed() {
		return nil, p.err()
	}
	doc.Root = doc.Tree.NewNode(genbind.Root, ast.Nil, stmts)
	return doc, nil
}

// hookStatements are the top-level statements naming a code block.
var hookStatements = map[string]genbind.Kind{
	"api":       genbind.API,
	"operation": genbind.Operation,
	"getter":    genbind.Getter,
	"setter":    genbind.Setter,
}

// consumeTopLevel consumes every top-level statement and returns them as a
// list in source order.
func (p *bindingParser) consumeTopLevel() ast.List {
	stmts := chain[genbind.Kind]{tree: p.tree}

	for !p.isToken(tokenTypeEOF) && !p.failed() {
		keyword := p.currentToken.value
		hook, isHook := hookStatements[keyword]
		switch {
		case p.tryConsumeKeyword("webidlfile"):
			stmts.add(genbind.WebIDLFile, ast.Text(p.consumeString()))
			p.consume(tokenTypeSemicolon)

		case p.tryConsumeKeyword("hdrcomment"):
			strs := chain[genbind.Kind]{tree: p.tree}
			strs.add(genbind.String, ast.Text(p.consumeString()))
			for p.isToken(tokenTypeString) {
				strs.add(genbind.String, ast.Text(p.consumeString()))
			}
			stmts.add(genbind.HdrComment, strs.list())
			p.consume(tokenTypeSemicolon)

		case p.tryConsumeKeyword("preamble"):
			stmts.add(genbind.Preamble, ast.Text(p.consumeCodeBlock()))
			p.tryConsume(tokenTypeSemicolon)

		case p.tryConsumeKeyword("binding"):
			stmts.append(p.consumeBinding())

		case p.isToken(tokenTypeIdentifier) && isHook:
			p.consumeToken()
			stmts.append(p.consumeHook(keyword, hook))

		default:
			p.emitError("Unexpected %s at root level", p.describe())
		}
	}
	return stmts.list()
}

// consumeHook consumes the name and code block of an api, operation,
// getter or setter statement. The code block of an api hook may be replaced
// by a semicolon, declaring the hook without code.
func (p *bindingParser) consumeHook(what string, kind genbind.Kind) ast.NodeID {
	c, done := p.node(what)
	defer done()

	c.name = p.consumeIdentifier()
	kids := chain[genbind.Kind]{tree: p.tree}
	kids.add(genbind.Ident, ast.Text(c.name))

	if kind == genbind.API {
		if _, ok := p.tryConsume(tokenTypeSemicolon); ok {
			return p.tree.NewNode(kind, ast.Nil, kids.list())
		}
	}
	kids.add(genbind.CBlock, ast.Text(p.consumeCodeBlock()))
	p.tryConsume(tokenTypeSemicolon)
	return p.tree.NewNode(kind, ast.Nil, kids.list())
}

// consumeBinding consumes a binding block after the binding keyword.
func (p *bindingParser) consumeBinding() ast.NodeID {
	c, done := p.node("binding")
	defer done()

	c.name = p.consumeIdentifier()
	kids := chain[genbind.Kind]{tree: p.tree}
	kids.add(genbind.Ident, ast.Text(c.name))

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF) && !p.failed() {
		switch {
		case p.tryConsumeKeyword("type"):
			kids.append(p.consumeBindingType())

		case p.tryConsumeKeyword("interface"):
			kids.add(genbind.BindingInterface, ast.Text(p.consumeIdentifier()))

		case p.tryConsumeKeyword("private"):
			kids.append(p.consumeField(genbind.Private))

		case p.tryConsumeKeyword("internal"):
			kids.append(p.consumeField(genbind.Internal))

		default:
			p.emitError("Expected type, interface, private or internal, found %s", p.describe())
			continue
		}
		p.consume(tokenTypeSemicolon)
	}
	// }
	p.consume(tokenTypeRightBrace)
	p.tryConsume(tokenTypeSemicolon)
	return p.tree.NewNode(genbind.BindingBlock, ast.Nil, kids.list())
}

// consumeBindingType consumes "name [: extra, ...]".
func (p *bindingParser) consumeBindingType() ast.NodeID {
	kids := chain[genbind.Kind]{tree: p.tree}
	kids.add(genbind.Ident, ast.Text(p.consumeIdentifier()))
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		extras := chain[genbind.Kind]{tree: p.tree}
		for !p.failed() {
			extras.add(genbind.Ident, ast.Text(p.consumeIdentifier()))
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}
		kids.add(genbind.TypeExtra, extras.list())
	}
	return p.tree.NewNode(genbind.Type, ast.Nil, kids.list())
}

// consumeField consumes the C type string and name of a private or internal
// field.
func (p *bindingParser) consumeField(kind genbind.Kind) ast.NodeID {
	kids := chain[genbind.Kind]{tree: p.tree}
	kids.add(genbind.String, ast.Text(p.consumeString()))
	kids.add(genbind.Ident, ast.Text(p.consumeIdentifier()))
	return p.tree.NewNode(kind, ast.Nil, kids.list())
}

// consumeString consumes a string literal and returns the text between its
// quotes. Escapes are not interpreted, the text ends up in C unchanged.
func (p *bindingParser) consumeString() string {
	token, ok := p.consume(tokenTypeString)
	if !ok {
		return ""
	}
	return token.value[1 : len(token.value)-1]
}

// consumeCodeBlock consumes a code block and returns its text.
func (p *bindingParser) consumeCodeBlock() string {
	token, ok := p.consume(tokenTypeCodeBlock)
	if !ok {
		return ""
	}
	return token.value
}
