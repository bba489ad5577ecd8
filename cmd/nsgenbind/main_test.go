package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/netsurf-plan9/nsgenbind/jsapi"
	"github.com/stretchr/testify/require"
)

const goldenDir = "../../jsapi/testdata/golden"

// fixture copies the foo binding into a fresh directory.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"foo.bnd", "foo.idl"} {
		data, err := os.ReadFile(filepath.Join(goldenDir, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func golden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(goldenDir, "foo.c"))
	require.NoError(t, err)
	return string(data)
}

func runArgs(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	code, _, stderr := runArgs(t, "")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "expected input filename")

	code, _, stderr = runArgs(t, "", "-x", "a.bnd")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Usage:")
}

func TestInvalidCombinations(t *testing.T) {
	dir := fixture(t)
	bnd := filepath.Join(dir, "foo.bnd")

	code, _, stderr := runArgs(t, "", "-v", bnd)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "verbose")

	code, _, _ = runArgs(t, "", "-d", filepath.Join(dir, "foo.d"), bnd)
	require.Equal(t, 3, code)

	code, _, _ = runArgs(t, "", "-d", filepath.Join(dir, "foo.d"), "-o", filepath.Join(dir, "foo.c"), "-")
	require.Equal(t, 3, code)
}

func TestGenerate(t *testing.T) {
	dir := fixture(t)
	out := filepath.Join(dir, "foo.c")
	dep := filepath.Join(dir, "foo.d")

	code, stdout, stderr := runArgs(t, "", "-I", dir, "-o", out, "-d", dep, filepath.Join(dir, "foo.bnd"))
	require.Equal(t, 0, code, stderr)
	require.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, golden(t), string(data))

	data, err = os.ReadFile(dep)
	require.NoError(t, err)
	require.Equal(t, dep+" "+out+" : "+filepath.Join(dir, "foo.idl")+"\n", string(data))
}

func TestGenerateStdin(t *testing.T) {
	dir := fixture(t)
	bnd, err := os.ReadFile(filepath.Join(dir, "foo.bnd"))
	require.NoError(t, err)

	code, stdout, stderr := runArgs(t, string(bnd), "-I", dir, "-")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, golden(t), stdout)
}

func TestVerboseDumpsBinding(t *testing.T) {
	dir := fixture(t)
	code, stdout, stderr := runArgs(t, "", "-v", "-I", dir, "-o", filepath.Join(dir, "foo.c"), filepath.Join(dir, "foo.bnd"))
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "foo.idl")
}

func TestConfigFile(t *testing.T) {
	dir := fixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nsgenbind.toml"), []byte(`
idlpath = "."
output = "gen.c"
`), 0644))

	code, stdout, stderr := runArgs(t, "", filepath.Join(dir, "foo.bnd"))
	require.Equal(t, 0, code, stderr)
	require.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(dir, "gen.c"))
	require.NoError(t, err)
	require.Equal(t, golden(t), string(data))

	// flags win over the file
	out := filepath.Join(dir, "flag.c")
	code, _, stderr = runArgs(t, "", "-o", out, filepath.Join(dir, "foo.bnd"))
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, out)

	code, _, _ = runArgs(t, "", "-c", filepath.Join(dir, "missing.toml"), filepath.Join(dir, "foo.bnd"))
	require.Equal(t, 1, code)
}

func TestParseError(t *testing.T) {
	dir := t.TempDir()
	bnd := filepath.Join(dir, "bad.bnd")
	require.NoError(t, os.WriteFile(bnd, []byte("binding {"), 0644))

	code, _, stderr := runArgs(t, "", bnd)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "parse failed")
}

func TestFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	bnd := filepath.Join(dir, "foo.bnd")
	require.NoError(t, os.WriteFile(bnd, []byte(`webidlfile "missing.idl";
binding foo {
	interface Foo;
}
`), 0644))
	out := filepath.Join(dir, "foo.c")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0644))

	code, _, stderr := runArgs(t, "", "-I", dir, "-o", out, bnd)
	require.Equal(t, 4, code)
	require.Contains(t, stderr, "webidl stage failed")
	require.NoFileExists(t, out)
}

func TestWriteResultUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.c")
	require.NoError(t, writeResult(path, []byte("int x;\n")))

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, writeResult(path, []byte("int x;\n")))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, fi.ModTime().Equal(old))
	require.NoFileExists(t, path+".tmp")

	require.NoError(t, writeResult(path, []byte("int y;\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "int y;\n", string(data))
}

func TestDiagnosticsReachLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.idl"), []byte(`
interface A {
	void take(sequence<long> items);
	attribute boolean b;
};
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bnd"), []byte(`webidlfile "a.idl";
binding a {
	interface A;
}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nsgenbind.toml"), []byte(`
idlpath = "."
logfile = "gen.log"
warnings = true
`), 0644))

	code, _, stderr := runArgs(t, "", "-o", filepath.Join(dir, "a.c"), filepath.Join(dir, "a.bnd"))
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "gen.log"))
	require.NoError(t, err)
	logged := string(data)
	require.Contains(t, logged, "Unsupported")
	require.Contains(t, logged, "A.take has no implementation")
	require.Contains(t, logged, "getter A.b has no implementation")
	require.Contains(t, logged, "setter A.b has no implementation")
	require.Contains(t, logged, "4 diagnostics")
}

func TestExitStatusesDistinct(t *testing.T) {
	seen := map[int]string{
		exitUsage:  "usage",
		exitStdout: "stdout",
		exitDep:    "dep",
		exitWrite:  "write",
	}
	for s := jsapi.StageWebIDL; s <= jsapi.StageClassNew; s++ {
		other, dup := seen[s.Status()]
		require.False(t, dup, "%s stage shares status %d with %s", s, s.Status(), other)
		seen[s.Status()] = s.String()
	}
}
