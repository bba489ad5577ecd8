package ast

import "errors"

// ErrEmpty is returned by ForEach when there is no chain to walk.
var ErrEmpty = errors.New("ast: empty chain")

// Predicate selects nodes for Find.
type Predicate func(id NodeID) bool

// chain returns the nodes reachable from root through sibling links, up to
// but excluding stop, in the order they were linked (earliest first).
//
// Lists are built by linking new nodes in front of existing ones, so the
// head of a chain is its most recently linked node.
func (t *Tree[K]) chain(root, stop NodeID) []NodeID {
	var ids []NodeID
	for id := root; !id.IsNil() && id != stop; id = t.at(id).next {
		ids = append(ids, id)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// ForEach calls fn for every node of the given kind in the chain starting at
// root, in chain order. It stops at the first error returned by fn and
// returns it. Children are not visited.
func (t *Tree[K]) ForEach(root NodeID, kind K, fn func(id NodeID) error) error {
	if root.IsNil() {
		return ErrEmpty
	}
	for _, id := range t.chain(root, Nil) {
		if t.at(id).kind != kind {
			continue
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first node in chain order that satisfies pred, skipping
// exclude and every node before it. Passing the previous result as exclude
// yields the next match. Find returns Nil when nothing matches.
func (t *Tree[K]) Find(root, exclude NodeID, pred Predicate) NodeID {
	for _, id := range t.chain(root, exclude) {
		if pred(id) {
			return id
		}
	}
	return Nil
}

// FindKind is Find with a kind equality predicate.
func (t *Tree[K]) FindKind(root, exclude NodeID, kind K) NodeID {
	return t.Find(root, exclude, func(id NodeID) bool {
		return t.at(id).kind == kind
	})
}

// FindKindIdent finds a node of the given kind that has an identifier child
// whose text is ident.
func (t *Tree[K]) FindKindIdent(root, exclude NodeID, kind K, ident string) NodeID {
	return t.Find(root, exclude, func(id NodeID) bool {
		if t.at(id).kind != kind {
			return false
		}
		name := t.FindKind(t.Children(id), Nil, t.ident)
		return !name.IsNil() && t.Text(name) == ident
	})
}

// Ident returns the text of the first identifier child of id.
func (t *Tree[K]) Ident(id NodeID) string {
	return t.Text(t.FindKind(t.Children(id), Nil, t.ident))
}

// Siblings returns every node of the chain at root, in chain order.
func (t *Tree[K]) Siblings(root NodeID) []NodeID {
	return t.chain(root, Nil)
}

// Collect returns every node of the given kind in the chain, in chain order.
func (t *Tree[K]) Collect(root NodeID, kind K) []NodeID {
	var ids []NodeID
	t.ForEach(root, kind, func(id NodeID) error {
		ids = append(ids, id)
		return nil
	})
	return ids
}
