package jsapi

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/netsurf-plan9/nsgenbind/internal/mdtest"
	"github.com/netsurf-plan9/nsgenbind/parser"
	"github.com/stretchr/testify/require"
)

func TestCorpus(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		cases, err := mdtest.Extract(string(data))
		require.NoError(t, err, file)

		for _, tc := range cases {
			tc := tc
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runCase(t, tc)
			})
		}
	}
}

func runCase(t *testing.T, tc mdtest.TestCase) {
	doc, err := parser.ParseBinding(tc.Name+".bnd", tc.Binding)
	require.NoError(t, err)

	fsys := fstest.MapFS{}
	for name, src := range tc.WebIDL {
		fsys[name] = &fstest.MapFile{Data: []byte(src)}
	}

	var buf bytes.Buffer
	report, err := Output(&buf, doc, fsys, Options{Verbose: true})
	out := buf.String()

	wantError := false
	for _, a := range tc.Assertions {
		switch a.Type {
		case mdtest.AssertExpect:
			require.Contains(t, out, a.Content, "line %d", a.Line)
		case mdtest.AssertReject:
			require.NotContains(t, out, a.Content, "line %d", a.Line)
		case mdtest.AssertDiag:
			require.Contains(t, diagStrings(report), a.Content, "line %d", a.Line)
		case mdtest.AssertError:
			wantError = true
			var serr *StageError
			require.True(t, errors.As(err, &serr), "line %d: expected %s stage to fail", a.Line, a.Content)
			require.Equal(t, a.Content, serr.Stage.String(), "line %d", a.Line)
		}
	}
	if !wantError {
		require.NoError(t, err)
	}
}

// diagStrings renders every diagnostic both as its kind alone and as
// "Kind: message".
func diagStrings(r *Report) []string {
	var out []string
	for _, d := range r.Diagnostics {
		out = append(out, d.Kind.String(), d.Kind.String()+": "+strings.TrimSpace(d.Message))
	}
	return out
}
