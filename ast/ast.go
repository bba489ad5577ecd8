// Package ast implements the tree shared by the binding and WebIDL grammars.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID. Each
// node has a kind, a link to its next sibling and exactly one payload. The
// payload variant is fixed by the kind. Nodes are never freed individually;
// the arena lives as long as the tree.
package ast

import "fmt"

// NodeID addresses a node within its Tree. The zero value is Nil.
type NodeID int32

// Nil is the absent node.
const Nil NodeID = 0

// IsNil reports whether id refers to no node.
func (id NodeID) IsNil() bool { return id == Nil }

// PayloadClass identifies which payload variant a kind carries.
type PayloadClass int

const (
	TextPayload PayloadClass = iota
	ListPayload
	ScalarPayload
)

func (c PayloadClass) String() string {
	switch c {
	case TextPayload:
		return "text"
	case ListPayload:
		return "list"
	case ScalarPayload:
		return "scalar"
	}
	return fmt.Sprintf("PayloadClass(%d)", int(c))
}

// Kind is implemented by the node kind enumeration of a grammar.
type Kind interface {
	comparable
	fmt.Stringer
	Payload() PayloadClass
}

// Payload is the value carried by a node: Text, List or Scalar.
type Payload interface {
	class() PayloadClass
}

// Text is opaque text such as an identifier or a code block.
type Text string

// List is the head of a child chain. List(Nil) is an empty list.
type List NodeID

// Scalar is a small tagged integer, e.g. a primitive type code.
type Scalar int

func (Text) class() PayloadClass   { return TextPayload }
func (List) class() PayloadClass   { return ListPayload }
func (Scalar) class() PayloadClass { return ScalarPayload }

type node[K Kind] struct {
	kind    K
	next    NodeID
	payload Payload
}

// Tree is an arena of nodes of one grammar.
type Tree[K Kind] struct {
	ident K
	nodes []node[K]
}

// New returns an empty tree. ident is the kind used for identifier nodes by
// FindKindIdent.
func New[K Kind](ident K) *Tree[K] {
	if ident.Payload() != TextPayload {
		panic(fmt.Sprintf("ast: identifier kind %v must carry text", ident))
	}
	// index 0 is reserved so that Nil never addresses a node
	return &Tree[K]{ident: ident, nodes: make([]node[K], 1, 64)}
}

// Len returns the number of nodes allocated in the tree.
func (t *Tree[K]) Len() int { return len(t.nodes) - 1 }

// NewNode allocates a node of the given kind whose sibling is next.
// It panics if the payload variant is not the one kind carries.
func (t *Tree[K]) NewNode(kind K, next NodeID, p Payload) NodeID {
	if p == nil || p.class() != kind.Payload() {
		panic(fmt.Sprintf("ast: %v node requires %v payload, got %T", kind, kind.Payload(), p))
	}
	t.check(next)
	t.nodes = append(t.nodes, node[K]{kind: kind, next: next, payload: p})
	return NodeID(len(t.nodes) - 1)
}

// Link sets the sibling of target to next and returns target.
func (t *Tree[K]) Link(target, next NodeID) NodeID {
	t.check(next)
	t.at(target).next = next
	return target
}

// Adopt links child in front of the child chain of parent. It is meant for
// parsers that extend an already built list node.
func (t *Tree[K]) Adopt(parent, child NodeID) {
	n := t.at(parent)
	head, ok := n.payload.(List)
	if !ok {
		panic(fmt.Sprintf("ast: cannot adopt into %v node", n.kind))
	}
	t.Link(child, NodeID(head))
	n.payload = List(child)
}

// Kind returns the kind of id.
func (t *Tree[K]) Kind(id NodeID) K { return t.at(id).kind }

// Next returns the sibling linked from id.
func (t *Tree[K]) Next(id NodeID) NodeID { return t.at(id).next }

// Payload returns the payload of id.
func (t *Tree[K]) Payload(id NodeID) Payload { return t.at(id).payload }

// Text returns the text of a text node, or "" for other nodes.
func (t *Tree[K]) Text(id NodeID) string {
	if id.IsNil() {
		return ""
	}
	s, _ := t.at(id).payload.(Text)
	return string(s)
}

// Children returns the head of the child chain of a list node, or Nil.
func (t *Tree[K]) Children(id NodeID) NodeID {
	if id.IsNil() {
		return Nil
	}
	l, _ := t.at(id).payload.(List)
	return NodeID(l)
}

// Scalar returns the value of a scalar node, or 0 for other nodes.
func (t *Tree[K]) Scalar(id NodeID) int {
	if id.IsNil() {
		return 0
	}
	v, _ := t.at(id).payload.(Scalar)
	return int(v)
}

func (t *Tree[K]) at(id NodeID) *node[K] {
	if id <= Nil || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("ast: invalid node %d", id))
	}
	return &t.nodes[id]
}

func (t *Tree[K]) check(id NodeID) {
	if id < Nil || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("ast: invalid node %d", id))
	}
}
