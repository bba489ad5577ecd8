package mdtest

import (
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtract(t *testing.T) {
	markdown := `# Bindings

Some prose.

## Test: simple
` + fence + `webidl foo.idl
interface Foo { attribute boolean bar; };
` + fence + `
` + fence + `genbind
webidlfile "foo.idl";
binding foo { interface Foo; }
` + fence + `
` + fence + `expect
JSAPI_PS(bar
` + fence + `
` + fence + `reject
struct jsclass_private
` + fence + `

## Test: failing
` + fence + `genbind
binding foo { interface Missing; }
` + fence + `
` + fence + `error
resolve
` + fence

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	tc := cases[0]
	be.Equal(t, tc.Name, "simple")
	be.Equal(t, tc.Binding, "webidlfile \"foo.idl\";\nbinding foo { interface Foo; }\n")
	be.Equal(t, tc.WebIDL["foo.idl"], "interface Foo { attribute boolean bar; };\n")
	be.Equal(t, len(tc.Assertions), 2)
	be.Equal(t, tc.Assertions[0].Type, AssertExpect)
	be.Equal(t, tc.Assertions[0].Content, "JSAPI_PS(bar")
	be.Equal(t, tc.Assertions[1].Type, AssertReject)

	tc = cases[1]
	be.Equal(t, tc.Name, "failing")
	be.Equal(t, len(tc.WebIDL), 0)
	be.Equal(t, tc.Assertions[0].Type, AssertError)
	be.Equal(t, tc.Assertions[0].Content, "resolve")
}

func TestExtractLineNumbers(t *testing.T) {
	markdown := "## Test: lines\n" +
		fence + "genbind\nbinding x { interface X; }\n" + fence + "\n" +
		fence + "expect\nJSClass_X\n" + fence + "\n"

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, cases[0].Assertions[0].Line, 6)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		err      string
	}{
		{
			"fence outside test",
			fence + "genbind\nbinding x {}\n" + fence,
			"line 2: genbind fence found outside of test case",
		},
		{
			"unknown fence",
			"## Test: x\n" + fence + "c\nint x;\n" + fence,
			"unknown fence language 'c' in test 'x'",
		},
		{
			"no binding",
			"## Test: x\n" + fence + "expect\nfoo\n" + fence,
			"test 'x' has no genbind fence",
		},
		{
			"no assertions",
			"## Test: x\n" + fence + "genbind\nbinding x {}\n" + fence,
			"test 'x' has no assertion fences",
		},
		{
			"webidl without name",
			"## Test: x\n" + fence + "webidl\ninterface A {};\n" + fence,
			"webidl fence needs a file name in test 'x'",
		},
		{
			"two bindings",
			"## Test: x\n" + fence + "genbind\na\n" + fence + "\n" + fence + "genbind\nb\n" + fence,
			"multiple genbind fences found in test 'x'",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Extract(test.markdown)
			be.Err(t, err, test.err)
		})
	}
}

func TestExtractIgnoresPlainBlocks(t *testing.T) {
	markdown := fence + "\nnot a test\n" + fence + "\n\n## Not a test heading\n"

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}
