package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	code, err := Run(append([]string{"diffrefine"}, args...), &RunOptions{Out: &out, Err: &errOut})
	return code, out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Help(t *testing.T) {
	code, out, errOut, err := run(t, "-h")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "diffrefine [flags] <left> <right>")
	assert.Contains(t, out, "--moves-first")
	assert.Empty(t, errOut)
}

func TestRun_Version(t *testing.T) {
	code, out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "diffrefine "+Version+"\n", out)
}

func TestRun_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "a\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{file}},
		{"unknown flag", []string{"--frobnicate", file, file}},
		{"bad format", []string{"--format", "xml", file, file}},
		{"bad color", []string{"--color", "sometimes", file, file}},
		{"bad normalizer", []string{"--normalize", "fancy", file, file}},
		{"file and dir", []string{file, dir}},
		{"version with args", []string{"version", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, code, "err=%v", err)
			assert.Contains(t, errOut, "error: ")
			assert.Contains(t, errOut, "--help")
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "a\n")
	code, _, errOut, err := run(t, file, filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing.txt")
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.go", "package a\n\nvar x = 1\n")
	right := writeFile(t, dir, "right.go", "package a\n\nvar x = 2\n")

	code, out, _, err := run(t, "--color", "never", left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, left+" -> "+right+":\n package a\n \n-var x = 1\n+var x = 2\n", out)

	code, out, _, err = run(t, "--color", "never", "--format", "annotated", left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "*    3    3  var x = 1 => var x = 2")
}

func TestRun_IdenticalFilesPrintNothing(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "a.txt", "same\n")
	right := writeFile(t, dir, "b.txt", "same\n")
	code, out, _, err := run(t, left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRun_WhitespaceOnly(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "a.txt", "f(a,  b)\n")
	right := writeFile(t, dir, "b.txt", "f(a, b)\n")

	_, out, _, err := run(t, left, right)
	require.NoError(t, err)
	assert.Empty(t, out, "whitespace normalization is on by default")

	_, out, _, err = run(t, "--normalize", "none", "--color", "never", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "-f(a,  b)\n+f(a, b)")
}

func TestRun_Directories(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "a.go", "package a\n\nfunc A() int { return 1 }\n")
	writeFile(t, right, "a.go", "package a\n\nfunc A() int { return 2 }\n")
	writeFile(t, left, "gone.go", "package a\n")
	writeFile(t, right, "sub/new.go", "package sub\n")
	writeFile(t, left, "notes.txt", "x\n")
	writeFile(t, right, "notes.txt", "y\n")

	code, out, _, err := run(t, "--color", "never", "--include", "**/*.go", left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "a.go:\n")
	assert.Contains(t, out, "delete gone.go:\n-package a\n")
	assert.Contains(t, out, "add sub/new.go:\n+package sub\n")
	assert.NotContains(t, out, "notes.txt")

	code, out, _, err = run(t, "--format", "markdown", "--exclude", "**/*.txt", left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "# diffrefine report")
	assert.Contains(t, out, "3 of 3 files changed.")
	assert.Contains(t, out, "| `gone.go` | deleted |")
	assert.Contains(t, out, "## sub/new.go")

	code, out, _, err = run(t, "--format", "html", left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "<table>")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cfg.toml", "format = \"annotated\"\ncolor = \"never\"\n")
	left := writeFile(t, dir, "a.txt", "a\n")
	right := writeFile(t, dir, "b.txt", "b\n")

	_, out, _, err := run(t, "--config", cfg, left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "-    1       a\n")

	code, _, _, err := run(t, "--config", filepath.Join(dir, "missing.toml"), left, right)
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestRun_RulesFile(t *testing.T) {
	dir := t.TempDir()
	rulesFile := writeFile(t, dir, "rules.yaml", `
normalize: whitespace
substitution:
  - kind: assert-style
    pattern: 'assertEquals\((\w+), (\w+)\)'
    replacement: 'assertThat($2).isEqualTo($1)'
`)
	left := writeFile(t, dir, "A.java", "assertEquals(want, got);\n")
	right := writeFile(t, dir, "B.java", "assertThat(got).isEqualTo(want);\n")

	_, out, _, err := run(t, "--rules", rulesFile, "--format", "annotated", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "%    1    1  assertEquals(want, got); => assertThat(got).isEqualTo(want);")
}

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "a.txt", "a\n")
	right := writeFile(t, dir, "b.txt", "b\n")

	_, _, errOut, err := run(t, "--dump", left, right)
	require.NoError(t, err)
	assert.Contains(t, errOut, "== "+right)
	assert.Contains(t, errOut, "diff.Edit")
}

func TestRun_RulesCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.toml", "[similarity]\nthreshold = 0.6\n\n[[ignore]]\npattern = '^//'\n")
	bad := writeFile(t, dir, "bad.toml", "[[ignore]]\npattern = '['\n")

	code, out, _, err := run(t, "rules", "check", good)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ok (1 substitution, 1 refactoring strategies)")

	code, _, errOut, err := run(t, "rules", "check", bad)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ignore[0]")

	code, _, _, err = run(t, "rules", "check")
	require.Error(t, err)
	assert.Equal(t, 2, code)
}

func TestRun_RulesDefault(t *testing.T) {
	code, out, _, err := run(t, "rules", "default")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "threshold = 0.5")
	assert.Contains(t, out, "normalize = 'whitespace'")
}
