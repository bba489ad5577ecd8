// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package parser

import (
	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/webidl"
)

// webidlParser builds WebIDL declarations into a shared document.
type webidlParser struct {
	*sourceParser
	doc   *webidl.Document
	tree  *ast.Tree[webidl.Kind]
	decls chain[webidl.Kind]

	implements []implementsStatement
}

// implementsStatement is an "A implements B;" or "A includes B;" statement,
// applied once the whole input has been parsed.
type implementsStatement struct {
	target string
	source string
}

// ParseWebIDL parses the given WebIDL source and adds its declarations to
// doc, after the declarations already loaded. name is used in errors.
//
// Repeated and partial interface declarations add another member list to
// the first declaration of the interface. Implements statements become an
// Implements child of the implementing interface.
func ParseWebIDL(doc *webidl.Document, name, input string) error {
	p := &webidlParser{
		sourceParser: buildParser(name, input, lexWebIDL(input)),
		doc:          doc,
		tree:         doc.Tree,
		decls:        chain[webidl.Kind]{tree: doc.Tree, head: doc.Root},
	}
	p.consumeTopLevel()
	if p.failed() {
		return p.err()
	}
	p.applyImplements()
	return nil
}

// declare appends a top-level declaration to the document.
func (p *webidlParser) declare(id ast.NodeID) {
	p.decls.append(id)
	p.doc.Root = p.decls.head
}

// consumeTopLevel attempts to consume the top-level constructs of a WebIDL file.
func (p *webidlParser) consumeTopLevel() {
	for !p.isToken(tokenTypeEOF) && !p.failed() {
		switch {
		case p.isToken(tokenTypeLeftBracket) || p.isKeyword("interface") ||
			p.isKeyword("partial") || p.isKeyword("callback") ||
			p.isKeyword("dictionary") || p.isKeyword("enum") ||
			p.isKeyword("typedef"):
			p.consumeDeclaration()

		case p.isToken(tokenTypeIdentifier) &&
			(p.isNextKeyword("implements") || p.isNextKeyword("includes")):
			p.consumeImplementation()

		default:
			p.emitError("Unexpected %s at root level", p.describe())
		}
	}
}

// consumeDeclaration attempts to consume a declaration, with optional
// extended attributes.
func (p *webidlParser) consumeDeclaration() {
	ext := p.tryConsumeExtendedAttributes()
	switch {
	case p.tryConsumeKeyword("partial"):
		if p.isKeyword("dictionary") {
			p.consumeDictionary()
			return
		}
		p.consumeKeyword("interface")
		p.tryConsumeKeyword("mixin")
		p.consumeInterface(ext)

	case p.tryConsumeKeyword("interface"):
		p.tryConsumeKeyword("mixin")
		p.consumeInterface(ext)

	case p.tryConsumeKeyword("callback"):
		if p.tryConsumeKeyword("interface") {
			p.consumeInterface(ext)
			return
		}
		p.consumeCallback()

	case p.isKeyword("dictionary"):
		p.consumeDictionary()

	case p.isKeyword("enum"):
		p.consumeEnum()

	case p.isKeyword("typedef"):
		p.consumeTypedef()

	default:
		p.emitError("Expected interface, dictionary, enum, callback or typedef, found %s", p.describe())
	}
}

// consumeInterface consumes the remainder of an interface declaration, after
// the interface keyword.
func (p *webidlParser) consumeInterface(ext []string) {
	c, done := p.node("interface")
	defer done()

	name := p.consumeIdentifier()
	c.name = name

	var parent string
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		parent = p.consumeIdentifier()
	}

	members := p.consumeMembers(p.consumeInterfaceMember)
	t := p.tree
	list := t.NewNode(webidl.List, ast.Nil, members)

	if existing := p.doc.Interface(name); !existing.IsNil() {
		for _, e := range ext {
			t.Adopt(existing, t.NewNode(webidl.ExtendedAttribute, ast.Nil, ast.Text(e)))
		}
		if parent != "" && t.FindKind(t.Children(existing), ast.Nil, webidl.Inheritance).IsNil() {
			t.Adopt(existing, t.NewNode(webidl.Inheritance, ast.Nil, ast.Text(parent)))
		}
		t.Adopt(existing, list)
		return
	}

	kids := chain[webidl.Kind]{tree: t}
	for _, e := range ext {
		kids.add(webidl.ExtendedAttribute, ast.Text(e))
	}
	kids.add(webidl.Ident, ast.Text(name))
	if parent != "" {
		kids.add(webidl.Inheritance, ast.Text(parent))
	}
	kids.append(list)
	p.declare(t.NewNode(webidl.Interface, ast.Nil, kids.list()))
}

// consumeMembers consumes a braced member block terminated by a semicolon.
func (p *webidlParser) consumeMembers(member func() ast.NodeID) ast.List {
	members := chain[webidl.Kind]{tree: p.tree}

	// {
	if _, ok := p.consume(tokenTypeLeftBrace); !ok {
		return members.list()
	}

	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF) && !p.failed() {
		members.append(member())

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return members.list()
}

// skippedMembers are interface members that carry nothing the generators use.
var skippedMembers = map[string]bool{
	"iterable":   true,
	"maplike":    true,
	"setlike":    true,
	"serializer": true,
	"jsonifier":  true,
}

// memberMods are the keywords qualifying attributes and operations, other
// than the special operation keywords.
var memberMods = map[string]webidl.Mod{
	"static":      webidl.ModStatic,
	"stringifier": webidl.ModStringifier,
	"inherit":     webidl.ModInherit,
	"readonly":    webidl.ModReadonly,
}

// consumeInterfaceMember attempts to consume a member definition in an
// interface. It returns ast.Nil for members that are skipped.
func (p *webidlParser) consumeInterfaceMember() ast.NodeID {
	ext := p.tryConsumeExtendedAttributes()

	if p.tryConsumeKeyword("const") {
		return p.consumeConst(ext)
	}

	var mods []webidl.Mod
	for p.isToken(tokenTypeIdentifier) {
		mod, ok := memberMods[p.currentToken.value]
		if !ok {
			mod, ok = webidl.SpecialMods[p.currentToken.value]
		}
		if !ok {
			break
		}
		mods = append(mods, mod)
		p.consumeToken()
	}

	if p.isToken(tokenTypeIdentifier) && skippedMembers[p.currentToken.value] {
		for !p.isToken(tokenTypeSemicolon, tokenTypeEOF, tokenTypeError) {
			p.consumeToken()
		}
		return ast.Nil
	}

	kids := chain[webidl.Kind]{tree: p.tree}
	for _, e := range ext {
		kids.add(webidl.ExtendedAttribute, ast.Text(e))
	}
	for _, m := range mods {
		kids.add(webidl.Modifier, ast.Scalar(m))
	}

	// stringifier;
	if len(mods) == 1 && mods[0] == webidl.ModStringifier && p.isToken(tokenTypeSemicolon) {
		return p.tree.NewNode(webidl.Operation, ast.Nil, kids.list())
	}

	if p.tryConsumeKeyword("attribute") {
		c, done := p.node("attribute")
		defer done()

		kids.append(p.consumeType())
		c.name = p.consumeIdentifier()
		kids.add(webidl.Ident, ast.Text(c.name))
		return p.tree.NewNode(webidl.Attribute, ast.Nil, kids.list())
	}

	c, done := p.node("operation")
	defer done()

	kids.append(p.consumeType())
	if name, ok := p.tryConsumeIdentifier(); ok {
		c.name = name
		kids.add(webidl.Ident, ast.Text(name))
	}
	kids.append(p.consumeArguments())
	return p.tree.NewNode(webidl.Operation, ast.Nil, kids.list())
}

// consumeConst consumes a constant member after the const keyword.
func (p *webidlParser) consumeConst(ext []string) ast.NodeID {
	c, done := p.node("const")
	defer done()

	kids := chain[webidl.Kind]{tree: p.tree}
	for _, e := range ext {
		kids.add(webidl.ExtendedAttribute, ast.Text(e))
	}
	kids.append(p.consumeType())
	c.name = p.consumeIdentifier()
	kids.add(webidl.Ident, ast.Text(c.name))
	p.consume(tokenTypeEquals)
	kids.add(webidl.Literal, ast.Text(p.consumeLiteral()))
	return p.tree.NewNode(webidl.Const, ast.Nil, kids.list())
}

// consumeDictionary consumes a dictionary declaration. Members are stored as
// attributes, with their default value as a literal.
func (p *webidlParser) consumeDictionary() {
	c, done := p.node("dictionary")
	defer done()

	p.consumeKeyword("dictionary")
	c.name = p.consumeIdentifier()

	kids := chain[webidl.Kind]{tree: p.tree}
	kids.add(webidl.Ident, ast.Text(c.name))
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		kids.add(webidl.Inheritance, ast.Text(p.consumeIdentifier()))
	}

	members := p.consumeMembers(p.consumeDictionaryMember)
	kids.add(webidl.List, members)
	p.declare(p.tree.NewNode(webidl.Dictionary, ast.Nil, kids.list()))
}

func (p *webidlParser) consumeDictionaryMember() ast.NodeID {
	kids := chain[webidl.Kind]{tree: p.tree}
	for _, e := range p.tryConsumeExtendedAttributes() {
		kids.add(webidl.ExtendedAttribute, ast.Text(e))
	}
	required := p.tryConsumeKeyword("required")
	kids.append(p.consumeType())
	kids.add(webidl.Ident, ast.Text(p.consumeIdentifier()))
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		kids.add(webidl.Literal, ast.Text(p.consumeLiteral()))
	} else if !required {
		kids.add(webidl.Modifier, ast.Scalar(webidl.ModOptional))
	}
	return p.tree.NewNode(webidl.Attribute, ast.Nil, kids.list())
}

// consumeEnum consumes an enumeration. Values are stored as literals,
// quotes included.
func (p *webidlParser) consumeEnum() {
	c, done := p.node("enum")
	defer done()

	p.consumeKeyword("enum")
	c.name = p.consumeIdentifier()

	kids := chain[webidl.Kind]{tree: p.tree}
	kids.add(webidl.Ident, ast.Text(c.name))

	// {
	p.consume(tokenTypeLeftBrace)
	for first := true; !p.isToken(tokenTypeRightBrace, tokenTypeEOF) && !p.failed(); first = false {
		if !first {
			if _, ok := p.consume(tokenTypeComma); !ok {
				break
			}
			// trailing comma
			if p.isToken(tokenTypeRightBrace) {
				break
			}
		}
		value, _ := p.consume(tokenTypeString)
		kids.add(webidl.Literal, ast.Text(value.value))
	}
	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	p.declare(p.tree.NewNode(webidl.Enum, ast.Nil, kids.list()))
}

// consumeCallback consumes a callback function after the callback keyword.
func (p *webidlParser) consumeCallback() {
	c, done := p.node("callback")
	defer done()

	c.name = p.consumeIdentifier()
	kids := chain[webidl.Kind]{tree: p.tree}
	kids.add(webidl.Ident, ast.Text(c.name))
	p.consume(tokenTypeEquals)
	kids.append(p.consumeType())
	kids.append(p.consumeArguments())
	p.consume(tokenTypeSemicolon)
	p.declare(p.tree.NewNode(webidl.Callback, ast.Nil, kids.list()))
}

// consumeTypedef consumes a typedef.
func (p *webidlParser) consumeTypedef() {
	c, done := p.node("typedef")
	defer done()

	p.consumeKeyword("typedef")
	kids := chain[webidl.Kind]{tree: p.tree}
	kids.append(p.consumeType())
	c.name = p.consumeIdentifier()
	kids.add(webidl.Ident, ast.Text(c.name))
	p.consume(tokenTypeSemicolon)
	p.declare(p.tree.NewNode(webidl.Typedef, ast.Nil, kids.list()))
}

// consumeImplementation consumes an implements or includes statement.
func (p *webidlParser) consumeImplementation() {
	_, done := p.node("implements")
	defer done()

	target := p.consumeIdentifier()
	if !p.tryConsumeKeyword("implements") && !p.consumeKeyword("includes") {
		return
	}
	source := p.consumeIdentifier()
	p.consume(tokenTypeSemicolon)
	p.implements = append(p.implements, implementsStatement{target: target, source: source})
}

// applyImplements adds an Implements child to every implementing interface,
// declaring an empty interface for targets not seen yet.
func (p *webidlParser) applyImplements() {
	t := p.tree
	for _, impl := range p.implements {
		iface := p.doc.Interface(impl.target)
		if iface.IsNil() {
			kids := chain[webidl.Kind]{tree: t}
			kids.add(webidl.Ident, ast.Text(impl.target))
			iface = t.NewNode(webidl.Interface, ast.Nil, kids.list())
			p.declare(iface)
		}
		t.Adopt(iface, t.NewNode(webidl.Implements, ast.Nil, ast.Text(impl.source)))
	}
}

// tryConsumeExtendedAttributes consumes any extended attribute lists and
// returns the attribute names. Arguments and values are skipped.
func (p *webidlParser) tryConsumeExtendedAttributes() (names []string) {
	for {
		// [
		if _, ok := p.tryConsume(tokenTypeLeftBracket); !ok {
			return
		}

		for !p.failed() {
			names = append(names, p.consumeIdentifier())
			p.skipExtendedAttributeRest()

			// ,
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}

		// ]
		if _, ok := p.consume(tokenTypeRightBracket); !ok {
			return
		}
	}
}

// skipExtendedAttributeRest skips the tokens of an extended attribute up to
// the next top-level comma or closing bracket.
func (p *webidlParser) skipExtendedAttributeRest() {
	depth := 0
	for !p.isToken(tokenTypeEOF, tokenTypeError) {
		switch {
		case depth == 0 && p.isToken(tokenTypeComma, tokenTypeRightBracket):
			return
		case p.isToken(tokenTypeLeftParen, tokenTypeLeftBracket):
			depth++
		case p.isToken(tokenTypeRightParen, tokenTypeRightBracket):
			depth--
		}
		p.consumeToken()
	}
}

// baseTypes maps WebIDL type names to their primitive kind. Names that are
// not listed are user types.
var baseTypes = map[string]webidl.Base{
	"boolean":    webidl.BaseBool,
	"byte":       webidl.BaseByte,
	"octet":      webidl.BaseOctet,
	"short":      webidl.BaseShort,
	"long":       webidl.BaseLong,
	"float":      webidl.BaseFloat,
	"double":     webidl.BaseDouble,
	"DOMString":  webidl.BaseString,
	"ByteString": webidl.BaseString,
	"USVString":  webidl.BaseString,
	"object":     webidl.BaseObject,
	"Date":       webidl.BaseDate,
	"void":       webidl.BaseVoid,
	"undefined":  webidl.BaseVoid,
	"any":        webidl.BaseAny,
}

// genericTypes are the parameterized types other than sequences; they are
// represented as any.
var genericTypes = map[string]bool{
	"Promise": true,
	"record":  true,
}

// consumeType consumes a type and returns its Type node.
func (p *webidlParser) consumeType() ast.NodeID {
	t := p.tree
	kids := chain[webidl.Kind]{tree: t}
	p.tryConsumeExtendedAttributes()

	switch {
	case p.isToken(tokenTypeLeftParen):
		// (A or B)
		p.consumeToken()
		for !p.failed() {
			p.consumeType()
			if !p.tryConsumeKeyword("or") {
				break
			}
		}
		p.consume(tokenTypeRightParen)
		kids.add(webidl.TypeBase, ast.Scalar(webidl.BaseAny))

	case p.isKeyword("sequence") || p.isKeyword("FrozenArray") || p.isKeyword("ObservableArray"):
		p.consumeToken()
		kids.add(webidl.TypeBase, ast.Scalar(webidl.BaseSequence))
		p.consume(tokenTypeLeftTri)
		kids.append(p.consumeType())
		p.consume(tokenTypeRightTri)

	case p.isToken(tokenTypeIdentifier) && genericTypes[p.currentToken.value]:
		p.consumeToken()
		p.consume(tokenTypeLeftTri)
		for !p.failed() {
			p.consumeType()
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}
		p.consume(tokenTypeRightTri)
		kids.add(webidl.TypeBase, ast.Scalar(webidl.BaseAny))

	default:
		name := p.consumeIdentifier()
		if name == "unsigned" {
			kids.add(webidl.Modifier, ast.Scalar(webidl.ModUnsigned))
			name = p.consumeIdentifier()
		} else if name == "unrestricted" {
			kids.add(webidl.Modifier, ast.Scalar(webidl.ModUnrestricted))
			name = p.consumeIdentifier()
		}

		base, ok := baseTypes[name]
		switch {
		case name == "long" && p.tryConsumeKeyword("long"):
			kids.add(webidl.TypeBase, ast.Scalar(webidl.BaseLongLong))
		case ok:
			kids.add(webidl.TypeBase, ast.Scalar(base))
		default:
			kids.add(webidl.TypeBase, ast.Scalar(webidl.BaseUser))
			kids.add(webidl.Ident, ast.Text(name))
		}
	}

	if _, ok := p.tryConsume(tokenTypeQuestionMark); ok {
		kids.add(webidl.Modifier, ast.Scalar(webidl.ModNullable))
	}
	return t.NewNode(webidl.Type, ast.Nil, kids.list())
}

// consumeArguments consumes a parenthesized argument list and returns its
// List node.
func (p *webidlParser) consumeArguments() ast.NodeID {
	args := chain[webidl.Kind]{tree: p.tree}

	// (
	if _, ok := p.consume(tokenTypeLeftParen); ok {
		if _, ok := p.tryConsume(tokenTypeRightParen); !ok {
			for !p.failed() {
				args.append(p.consumeArgument())
				if _, ok := p.tryConsume(tokenTypeRightParen); ok {
					break
				}
				if _, ok := p.consume(tokenTypeComma); !ok {
					break
				}
			}
		}
	}
	return p.tree.NewNode(webidl.List, ast.Nil, args.list())
}

// consumeArgument attempts to consume an argument.
func (p *webidlParser) consumeArgument() ast.NodeID {
	c, done := p.node("argument")
	defer done()

	kids := chain[webidl.Kind]{tree: p.tree}
	for _, e := range p.tryConsumeExtendedAttributes() {
		kids.add(webidl.ExtendedAttribute, ast.Text(e))
	}

	// optional
	if p.tryConsumeKeyword("optional") {
		kids.add(webidl.Modifier, ast.Scalar(webidl.ModOptional))
	}

	// Consume the argument's type.
	kids.append(p.consumeType())
	if _, ok := p.tryConsume(tokenTypeVariadic); ok {
		kids.add(webidl.Modifier, ast.Scalar(webidl.ModVariadic))
	}

	// Consume the argument's name.
	c.name = p.consumeIdentifier()
	kids.add(webidl.Ident, ast.Text(c.name))

	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		kids.add(webidl.Literal, ast.Text(p.consumeLiteral()))
	}
	return p.tree.NewNode(webidl.Argument, ast.Nil, kids.list())
}

// consumeLiteral consumes a constant or default value and returns its text.
func (p *webidlParser) consumeLiteral() string {
	switch {
	case p.isToken(tokenTypeNumber, tokenTypeString, tokenTypeIdentifier):
		value := p.currentToken.value
		p.consumeToken()
		return value
	case p.isToken(tokenTypeLeftBracket) && p.isNextToken(tokenTypeRightBracket):
		p.consumeToken()
		p.consumeToken()
		return "[]"
	case p.isToken(tokenTypeLeftBrace) && p.isNextToken(tokenTypeRightBrace):
		p.consumeToken()
		p.consumeToken()
		return "{}"
	}
	p.emitError("Expected literal value, found %s", p.describe())
	return ""
}
