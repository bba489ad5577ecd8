package genbind

import (
	"errors"
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/webidl"
)

// ErrStructure matches errors for binding ASTs missing a node the grammar
// requires.
var ErrStructure = errors.New("malformed binding")

// Document is a parsed binding description. Root is the Root node; its
// children are the top-level statements.
type Document struct {
	Tree *ast.Tree[Kind]
	Root ast.NodeID
}

// Statements returns the head of the top-level statement chain.
func (d *Document) Statements() ast.NodeID {
	return d.Tree.Children(d.Root)
}

// WebIDLFiles returns the referenced WebIDL file names in order.
func (d *Document) WebIDLFiles() []string {
	var names []string
	for _, id := range d.Tree.Collect(d.Statements(), WebIDLFile) {
		names = append(names, d.Tree.Text(id))
	}
	return names
}

// API returns the api hook block with the given name, or ast.Nil.
func (d *Document) API(name string) ast.NodeID {
	return d.Tree.FindKindIdent(d.Statements(), ast.Nil, API, name)
}

// Operation returns the operation block for a WebIDL operation, or ast.Nil.
func (d *Document) Operation(name string) ast.NodeID {
	return d.Tree.FindKindIdent(d.Statements(), ast.Nil, Operation, name)
}

// Getter returns the getter block for a WebIDL attribute, or ast.Nil.
func (d *Document) Getter(name string) ast.NodeID {
	return d.Tree.FindKindIdent(d.Statements(), ast.Nil, Getter, name)
}

// Setter returns the setter block for a WebIDL attribute, or ast.Nil.
func (d *Document) Setter(name string) ast.NodeID {
	return d.Tree.FindKindIdent(d.Statements(), ast.Nil, Setter, name)
}

// CodeBlock returns the text of the first code block inside a hook,
// operation or accessor node. ok is false when there is none.
func (d *Document) CodeBlock(id ast.NodeID) (code string, ok bool) {
	if id.IsNil() {
		return "", false
	}
	cblock := d.Tree.FindKind(d.Tree.Children(id), ast.Nil, CBlock)
	if cblock.IsNil() {
		return "", false
	}
	return d.Tree.Text(cblock), true
}

// Field is a private or internal member of the per-instance private data.
type Field struct {
	Type     string // C type text, including any trailing "*"
	Name     string
	Internal bool
}

// Binding is the descriptor of one binding, assembled from the binding AST
// once both ASTs are available. It is not modified afterwards.
type Binding struct {
	Name       string
	Interface  string
	Type       string
	TypeExtras []string

	HasPrivate bool
	HasGlobal  bool

	// Hook nodes; ast.Nil when the binding does not define the hook.
	Init     ast.NodeID
	New      ast.NodeID
	Resolve  ast.NodeID
	Finalise ast.NodeID
	Mark     ast.NodeID

	// Fields is the head of the binding block's statement list.
	Fields ast.NodeID

	AST *Document
	IDL *webidl.Document
}

// NewBinding assembles the descriptor of the first binding block in doc.
func NewBinding(doc *Document, idl *webidl.Document) (*Binding, error) {
	t := doc.Tree

	node := t.FindKind(doc.Statements(), ast.Nil, BindingBlock)
	if node.IsNil() {
		return nil, fmt.Errorf("%w: no binding block", ErrStructure)
	}
	list := t.Children(node)
	if list.IsNil() {
		return nil, fmt.Errorf("%w: empty binding block", ErrStructure)
	}
	ident := t.FindKind(list, ast.Nil, Ident)
	if ident.IsNil() {
		return nil, fmt.Errorf("%w: binding has no name", ErrStructure)
	}
	iface := t.FindKind(list, ast.Nil, BindingInterface)
	if iface.IsNil() {
		return nil, fmt.Errorf("%w: binding %s has no interface", ErrStructure, t.Text(ident))
	}

	hasPrivate := !t.FindKind(list, ast.Nil, Private).IsNil() ||
		!t.FindKind(list, ast.Nil, Internal).IsNil()

	b := &Binding{
		Name:       t.Text(ident),
		Interface:  t.Text(iface),
		HasPrivate: hasPrivate,
		HasGlobal:  !doc.API("global").IsNil(),
		Init:       doc.API("init"),
		New:        doc.API("new"),
		Resolve:    doc.API("resolve"),
		Finalise:   doc.API("finalise"),
		Mark:       doc.API("mark"),
		Fields:     list,
		AST:        doc,
		IDL:        idl,
	}

	if typ := t.FindKind(list, ast.Nil, Type); !typ.IsNil() {
		b.Type = t.Ident(typ)
		extra := t.FindKind(t.Children(typ), ast.Nil, TypeExtra)
		for _, id := range t.Collect(t.Children(extra), Ident) {
			b.TypeExtras = append(b.TypeExtras, t.Text(id))
		}
	}
	return b, nil
}

// HasType reports whether the binding block declares a binding type.
func (b *Binding) HasType() bool {
	return !b.AST.Tree.FindKind(b.Fields, ast.Nil, Type).IsNil()
}

// PrivateFields returns the private fields, which are also constructor
// parameters, in declaration order.
func (b *Binding) PrivateFields() ([]Field, error) {
	return b.fields(Private)
}

// InternalFields returns the internal fields in declaration order.
func (b *Binding) InternalFields() ([]Field, error) {
	return b.fields(Internal)
}

func (b *Binding) fields(kind Kind) ([]Field, error) {
	t := b.AST.Tree
	var out []Field
	err := t.ForEach(b.Fields, kind, func(id ast.NodeID) error {
		ident := t.FindKind(t.Children(id), ast.Nil, Ident)
		typ := t.FindKind(t.Children(id), ast.Nil, String)
		if ident.IsNil() || typ.IsNil() {
			return fmt.Errorf("%w: %v field without type or name", ErrStructure, kind)
		}
		out = append(out, Field{
			Type:     t.Text(typ),
			Name:     t.Text(ident),
			Internal: kind == Internal,
		})
		return nil
	})
	if err != nil && !errors.Is(err, ast.ErrEmpty) {
		return nil, err
	}
	return out, nil
}

// HeaderComments returns the header comment strings in order.
func (b *Binding) HeaderComments() []string {
	t := b.AST.Tree
	var out []string
	for _, hdr := range t.Collect(b.AST.Statements(), HdrComment) {
		for _, s := range t.Collect(t.Children(hdr), String) {
			out = append(out, t.Text(s))
		}
	}
	return out
}

// Preambles returns the preamble texts in order.
func (b *Binding) Preambles() []string {
	t := b.AST.Tree
	var out []string
	for _, id := range t.Collect(b.AST.Statements(), Preamble) {
		out = append(out, t.Text(id))
	}
	return out
}
