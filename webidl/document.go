package webidl

import "github.com/netsurf-plan9/nsgenbind/ast"

// Document is the WebIDL AST of every file loaded for one run. Root is the
// head of the top-level declaration chain; files parsed later are linked in
// front of earlier ones so chain order is load order.
type Document struct {
	Tree *ast.Tree[Kind]
	Root ast.NodeID
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Tree: ast.New(Ident)}
}

// Interface returns the first interface declared with the given name.
func (d *Document) Interface(name string) ast.NodeID {
	return d.Tree.FindKindIdent(d.Root, ast.Nil, Interface, name)
}

// Interfaces returns every interface node in declaration order.
func (d *Document) Interfaces() []ast.NodeID {
	return d.Tree.Collect(d.Root, Interface)
}

// Identifier returns the name of an interface, member, argument or user type.
func (d *Document) Identifier(id ast.NodeID) string {
	return d.Tree.Ident(id)
}

// TypeOf returns the Type child of a member or argument.
func (d *Document) TypeOf(id ast.NodeID) ast.NodeID {
	return d.Tree.FindKind(d.Tree.Children(id), ast.Nil, Type)
}

// BaseOf returns the primitive kind of a Type node. ok is false when the
// type carries no TypeBase child.
func (d *Document) BaseOf(typ ast.NodeID) (b Base, ok bool) {
	base := d.Tree.FindKind(d.Tree.Children(typ), ast.Nil, TypeBase)
	if base.IsNil() {
		return 0, false
	}
	return Base(d.Tree.Scalar(base)), true
}

// HasModifier reports whether id has a Modifier child with value m.
func (d *Document) HasModifier(id ast.NodeID, m Mod) bool {
	found := d.Tree.Find(d.Tree.Children(id), ast.Nil, func(n ast.NodeID) bool {
		return d.Tree.Kind(n) == Modifier && Mod(d.Tree.Scalar(n)) == m
	})
	return !found.IsNil()
}

// Arguments returns the Argument nodes of an operation in declaration order.
func (d *Document) Arguments(op ast.NodeID) []ast.NodeID {
	list := d.Tree.FindKind(d.Tree.Children(op), ast.Nil, List)
	if list.IsNil() {
		return nil
	}
	return d.Tree.Collect(d.Tree.Children(list), Argument)
}

// ConstValue returns the literal text of a constant member.
func (d *Document) ConstValue(id ast.NodeID) string {
	return d.Tree.Text(d.Tree.FindKind(d.Tree.Children(id), ast.Nil, Literal))
}
