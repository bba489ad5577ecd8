package webidl_test

import (
	"errors"
	"testing"

	"github.com/netsurf-plan9/nsgenbind/parser"
	"github.com/netsurf-plan9/nsgenbind/webidl"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, srcs ...string) *webidl.Document {
	t.Helper()
	doc := webidl.NewDocument()
	for _, src := range srcs {
		require.NoError(t, parser.ParseWebIDL(doc, "test.idl", src))
	}
	return doc
}

func names(entries []webidl.InterfaceMembers) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestResolveMembersOrder(t *testing.T) {
	doc := load(t, `
interface A { attribute long a; };
interface B : A { attribute long b; };
interface D { void d(); };
interface C : B { attribute long c; };
C implements D;
`)
	entries, err := webidl.ResolveMembers(doc, "C")
	require.NoError(t, err)
	require.Equal(t, []string{"C", "B", "A", "D"}, names(entries))

	for _, e := range entries {
		require.False(t, e.Node.IsNil())
		require.Equal(t, e.Name, doc.Identifier(e.Node))
	}

	var members []string
	for _, m := range entries[0].Members(doc) {
		members = append(members, doc.Identifier(m))
	}
	require.Equal(t, []string{"c"}, members)
}

func TestResolveMembersAcrossFiles(t *testing.T) {
	doc := load(t,
		`interface EventTarget { void dispatchEvent(); };`,
		`interface Node : EventTarget { readonly attribute DOMString nodeName; };`,
	)
	entries, err := webidl.ResolveMembers(doc, "Node")
	require.NoError(t, err)
	require.Equal(t, []string{"Node", "EventTarget"}, names(entries))
	require.Len(t, webidl.NewDocument().Interfaces(), 0)
	require.Len(t, doc.Interfaces(), 2)
}

func TestResolveMembersRepeatedImplements(t *testing.T) {
	doc := load(t, `
interface M { void m(); };
interface P { };
interface X : P { };
P implements M;
X implements M;
`)
	entries, err := webidl.ResolveMembers(doc, "X")
	require.NoError(t, err)
	require.Equal(t, []string{"X", "P", "M", "M"}, names(entries))
}

func TestResolveMembersNotFound(t *testing.T) {
	doc := load(t, `interface A : Missing { };`)

	_, err := webidl.ResolveMembers(doc, "Nope")
	require.True(t, errors.Is(err, webidl.ErrInterfaceNotFound))
	require.EqualError(t, err, "unable to find interface Nope in loaded WebIDL")

	_, err = webidl.ResolveMembers(doc, "A")
	var nf *webidl.InterfaceNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "Missing", nf.Name)
}

func TestResolveMembersCycle(t *testing.T) {
	doc := load(t, `
interface A : B { };
interface B : C { };
interface C : A { };
interface S { };
S implements S;
`)
	_, err := webidl.ResolveMembers(doc, "A")
	require.True(t, errors.Is(err, webidl.ErrCycle))
	require.EqualError(t, err, "interface cycle: A -> B -> C -> A")

	_, err = webidl.ResolveMembers(doc, "S")
	var cerr *webidl.CycleError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, []string{"S", "S"}, cerr.Path)
}

func TestBaseOf(t *testing.T) {
	doc := load(t, `interface A { attribute boolean flag; attribute Node owner; };`)
	entries, err := webidl.ResolveMembers(doc, "A")
	require.NoError(t, err)
	members := entries[0].Members(doc)
	require.Len(t, members, 2)

	b, ok := doc.BaseOf(doc.TypeOf(members[0]))
	require.True(t, ok)
	require.Equal(t, webidl.BaseBool, b)

	b, ok = doc.BaseOf(doc.TypeOf(members[1]))
	require.True(t, ok)
	require.Equal(t, webidl.BaseUser, b)
	require.Equal(t, "Node", doc.Identifier(doc.TypeOf(members[1])))
}
