package genbind_test

import (
	"errors"
	"testing"

	"github.com/netsurf-plan9/nsgenbind/genbind"
	"github.com/netsurf-plan9/nsgenbind/parser"
	"github.com/netsurf-plan9/nsgenbind/webidl"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *genbind.Document {
	t.Helper()
	doc, err := parser.ParseBinding("test.bnd", src)
	require.NoError(t, err)
	return doc
}

func TestNewBindingMinimal(t *testing.T) {
	doc := parse(t, `
webidlfile "a.idl";
binding a {
	interface A;
}
operation f %{ return 1; %}
`)
	idl := webidl.NewDocument()
	b, err := genbind.NewBinding(doc, idl)
	require.NoError(t, err)

	require.Equal(t, "a", b.Name)
	require.Equal(t, "A", b.Interface)
	require.False(t, b.HasType())
	require.Empty(t, b.Type)
	require.Nil(t, b.TypeExtras)
	require.False(t, b.HasPrivate)
	require.False(t, b.HasGlobal)
	for _, hook := range []bool{b.Init.IsNil(), b.New.IsNil(), b.Resolve.IsNil(), b.Finalise.IsNil(), b.Mark.IsNil()} {
		require.True(t, hook)
	}
	require.Same(t, doc, b.AST)
	require.Same(t, idl, b.IDL)

	private, err := b.PrivateFields()
	require.NoError(t, err)
	require.Empty(t, private)
	require.Empty(t, b.HeaderComments())
	require.Empty(t, b.Preambles())

	code, ok := doc.CodeBlock(doc.Operation("f"))
	require.True(t, ok)
	require.Equal(t, " return 1; ", code)
	require.True(t, doc.Operation("g").IsNil())
	_, ok = doc.CodeBlock(doc.Operation("g"))
	require.False(t, ok)
}

func TestNewBindingFirstBlockWins(t *testing.T) {
	doc := parse(t, `
binding first {
	type js_libdom;
	interface First;
	internal "int" count;
}
binding second {
	interface Second;
}
`)
	b, err := genbind.NewBinding(doc, nil)
	require.NoError(t, err)
	require.Equal(t, "first", b.Name)
	require.Equal(t, "First", b.Interface)
	require.True(t, b.HasType())
	require.Equal(t, "js_libdom", b.Type)
	require.True(t, b.HasPrivate)

	private, err := b.PrivateFields()
	require.NoError(t, err)
	require.Empty(t, private)
	internal, err := b.InternalFields()
	require.NoError(t, err)
	require.Equal(t, []genbind.Field{{Type: "int", Name: "count", Internal: true}}, internal)
}

func TestPreamblesAndComments(t *testing.T) {
	doc := parse(t, `
hdrcomment "one";
preamble %{a%}
hdrcomment "two" "three";
preamble %{b%}
binding x { interface X; }
`)
	b, err := genbind.NewBinding(doc, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, b.HeaderComments())
	require.Equal(t, []string{"a", "b"}, b.Preambles())
}

func TestNewBindingStructure(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"no binding", `webidlfile "a.idl";`, "malformed binding: no binding block"},
		{"no interface", `binding a { type js_libdom; }`, "malformed binding: binding a has no interface"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := genbind.NewBinding(parse(t, test.src), nil)
			require.True(t, errors.Is(err, genbind.ErrStructure))
			require.EqualError(t, err, test.msg)
		})
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "webidlfile", genbind.WebIDLFile.String())
	require.Equal(t, "Binding", genbind.BindingBlock.String())
	require.Equal(t, "Kind(99)", genbind.Kind(99).String())
}
