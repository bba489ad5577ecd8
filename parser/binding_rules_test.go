package parser

import (
	"errors"
	"testing"

	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/genbind"
	"github.com/stretchr/testify/require"
)

const documentBinding = `/* binding for the document object */
webidlfile "dom.idl";
webidlfile "html.idl";

hdrcomment "Copyright 2012 Vincent Sanders" "Released under the terms of the MIT License";

preamble %{
#include "utils/config.h"
%}

binding document {
	type js_libdom : gc, trace;
	interface Document;

	private "dom_document *" node;
	private "struct html_content *" htmlc;
	internal "void *" gc;
}

api finalise %{
	dom_node_unref(private->node);
%}

api global;

operation write %{
	LOG(("%s", text));
%}

getter title %{ jsretval = JSVAL_NULL; %}
setter title %{ /* ignored */ %}
`

func TestParseBinding(t *testing.T) {
	doc, err := ParseBinding("document.bnd", documentBinding)
	require.NoError(t, err)
	tr := doc.Tree

	require.Equal(t, genbind.Root, tr.Kind(doc.Root))
	require.Equal(t, []string{"dom.idl", "html.idl"}, doc.WebIDLFiles())

	var kinds []genbind.Kind
	for _, id := range tr.Siblings(doc.Statements()) {
		kinds = append(kinds, tr.Kind(id))
	}
	require.Equal(t, []genbind.Kind{
		genbind.WebIDLFile, genbind.WebIDLFile, genbind.HdrComment, genbind.Preamble,
		genbind.BindingBlock, genbind.API, genbind.API, genbind.Operation, genbind.Getter, genbind.Setter,
	}, kinds)

	pre := tr.FindKind(doc.Statements(), ast.Nil, genbind.Preamble)
	require.Equal(t, "\n#include \"utils/config.h\"\n", tr.Text(pre))

	code, ok := doc.CodeBlock(doc.Operation("write"))
	require.True(t, ok)
	require.Equal(t, "\n\tLOG((\"%s\", text));\n", code)

	code, ok = doc.CodeBlock(doc.Getter("title"))
	require.True(t, ok)
	require.Equal(t, " jsretval = JSVAL_NULL; ", code)

	_, ok = doc.CodeBlock(doc.API("global"))
	require.False(t, ok)
	require.False(t, doc.API("global").IsNil())
	require.True(t, doc.API("init").IsNil())
}

func TestParseBindingBlock(t *testing.T) {
	doc, err := ParseBinding("document.bnd", documentBinding)
	require.NoError(t, err)

	b, err := genbind.NewBinding(doc, nil)
	require.NoError(t, err)
	require.Equal(t, "document", b.Name)
	require.Equal(t, "Document", b.Interface)
	require.Equal(t, "js_libdom", b.Type)
	require.Equal(t, []string{"gc", "trace"}, b.TypeExtras)
	require.True(t, b.HasPrivate)
	require.True(t, b.HasGlobal)
	require.False(t, b.Finalise.IsNil())
	require.True(t, b.Init.IsNil())

	private, err := b.PrivateFields()
	require.NoError(t, err)
	require.Equal(t, []genbind.Field{
		{Type: "dom_document *", Name: "node"},
		{Type: "struct html_content *", Name: "htmlc"},
	}, private)

	internal, err := b.InternalFields()
	require.NoError(t, err)
	require.Equal(t, []genbind.Field{{Type: "void *", Name: "gc", Internal: true}}, internal)

	require.Equal(t, []string{
		"Copyright 2012 Vincent Sanders",
		"Released under the terms of the MIT License",
	}, b.HeaderComments())
}

func TestParseBindingStringsVerbatim(t *testing.T) {
	doc, err := ParseBinding("esc.bnd", `
hdrcomment "a\tb" "say \"hi\"";
binding esc {
	interface Esc;
	private "char\n *" text;
}
`)
	require.NoError(t, err)

	b, err := genbind.NewBinding(doc, nil)
	require.NoError(t, err)
	require.Equal(t, []string{`a\tb`, `say \"hi\"`}, b.HeaderComments())

	private, err := b.PrivateFields()
	require.NoError(t, err)
	require.Equal(t, []genbind.Field{{Type: `char\n *`, Name: "text"}}, private)
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"unknown statement", "foo;", `bad.bnd:1:1: Unexpected Identifier "foo" at root level`},
		{"missing code", "operation write;", `bad.bnd:1:16: Expected one of: [CodeBlock], found Semicolon ";" (in operation write)`},
		{"bad binding statement", "binding x {\n\tclass y;\n}", `bad.bnd:2:2: Expected type, interface, private or internal, found Identifier "class" (in binding x)`},
		{"unterminated block", "preamble %{ int x;", "bad.bnd:1:10: unterminated code block"},
		{"webidlfile needs string", "webidlfile dom;", `bad.bnd:1:12: Expected one of: [String], found Identifier "dom"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseBinding("bad.bnd", test.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSyntax))
			require.Equal(t, test.err, err.Error())
		})
	}
}
