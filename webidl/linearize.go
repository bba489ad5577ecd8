package webidl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/netsurf-plan9/nsgenbind/ast"
)

var (
	// ErrInterfaceNotFound matches errors for interfaces absent from the
	// loaded WebIDL.
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrCycle matches errors for interfaces that inherit from or implement
	// themselves.
	ErrCycle = errors.New("interface cycle")

	// ErrStructure matches errors for WebIDL ASTs missing a node the
	// grammar requires.
	ErrStructure = errors.New("malformed WebIDL")
)

// InterfaceNotFoundError names an interface missing from the loaded WebIDL.
type InterfaceNotFoundError struct {
	Name string
}

func (e *InterfaceNotFoundError) Error() string {
	return fmt.Sprintf("unable to find interface %s in loaded WebIDL", e.Name)
}

func (e *InterfaceNotFoundError) Is(target error) bool {
	return target == ErrInterfaceNotFound
}

// CycleError reports an inheritance or implements cycle. Path lists the
// interfaces on the resolution path, ending with the repeated one.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "interface cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// InterfaceMembers is one entry of a linearized interface: the interface
// node and its direct member lists.
type InterfaceMembers struct {
	Name  string
	Node  ast.NodeID
	Lists []ast.NodeID
}

// Members returns the member nodes of every list, in chain order.
func (m InterfaceMembers) Members(d *Document) []ast.NodeID {
	var ids []ast.NodeID
	for _, list := range m.Lists {
		ids = append(ids, d.Tree.Siblings(d.Tree.Children(list))...)
	}
	return ids
}

// ResolveMembers linearizes the named interface. The result starts with the
// interface itself, followed by the resolution of its parent and then the
// resolution of each implemented interface in declaration order.
func ResolveMembers(d *Document, name string) ([]InterfaceMembers, error) {
	r := resolver{doc: d, onPath: make(map[string]bool)}
	if err := r.resolve(name); err != nil {
		return nil, err
	}
	return r.out, nil
}

type resolver struct {
	doc    *Document
	out    []InterfaceMembers
	path   []string
	onPath map[string]bool
}

func (r *resolver) resolve(name string) error {
	if r.onPath[name] {
		return &CycleError{Path: append(append([]string(nil), r.path...), name)}
	}
	t := r.doc.Tree
	iface := r.doc.Interface(name)
	if iface.IsNil() {
		return &InterfaceNotFoundError{Name: name}
	}

	r.onPath[name] = true
	r.path = append(r.path, name)
	defer func() {
		delete(r.onPath, name)
		r.path = r.path[:len(r.path)-1]
	}()

	r.out = append(r.out, InterfaceMembers{
		Name:  name,
		Node:  iface,
		Lists: t.Collect(t.Children(iface), List),
	})

	inherit := t.FindKind(t.Children(iface), ast.Nil, Inheritance)
	if !inherit.IsNil() {
		if err := r.resolve(t.Text(inherit)); err != nil {
			return err
		}
	}

	for _, impl := range t.Collect(t.Children(iface), Implements) {
		if err := r.resolve(t.Text(impl)); err != nil {
			return err
		}
	}
	return nil
}
