package dirdiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/diffrefine/internal/diff"
	"github.com/codalotl/diffrefine/internal/report"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestCompare(t *testing.T) {
	left := writeTree(t, map[string]string{
		"same.go":       "package a\n",
		"changed.go":    "package a\n\nvar x = 1\n",
		"gone.go":       "package a\n",
		"sub/spaces.go": "a  b\n",
		".git/HEAD":     "ref: refs/heads/main\n",
	})
	right := writeTree(t, map[string]string{
		"same.go":       "package a\n",
		"changed.go":    "package a\n\nvar x = 2\n",
		"new.go":        "package b\n",
		"sub/spaces.go": "a b\n",
		".git/HEAD":     "ref: refs/heads/dev\n",
	})

	results, err := Compare(context.Background(), left, right, Options{Diff: diff.Options{Normalize: diff.Whitespace}, Workers: 2})
	require.NoError(t, err)

	got := make(map[string]report.Status)
	var paths []string
	for _, r := range results {
		got[r.Path] = r.Status
		paths = append(paths, r.Path)
		require.NotNil(t, r.Diff, r.Path)
	}
	assert.Equal(t, []string{"changed.go", "gone.go", "new.go", "same.go", "sub/spaces.go"}, paths)
	assert.Equal(t, map[string]report.Status{
		"changed.go":    report.StatusModified,
		"gone.go":       report.StatusDeleted,
		"new.go":        report.StatusAdded,
		"same.go":       report.StatusUnchanged,
		"sub/spaces.go": report.StatusUnchanged,
	}, got)

	for _, r := range results {
		if r.Path == "new.go" {
			assert.Equal(t, []diff.DiffType{diff.TypeInsert}, []diff.DiffType{r.Diff.Edits()[0].Type()})
		}
	}
}

func TestCompare_Filters(t *testing.T) {
	left := writeTree(t, map[string]string{
		"a.go":           "x\n",
		"a_test.go":      "x\n",
		"docs/readme.md": "x\n",
		"pkg/b.go":       "x\n",
	})
	right := writeTree(t, map[string]string{
		"a.go":     "y\n",
		"pkg/b.go": "y\n",
	})

	results, err := Compare(context.Background(), left, right, Options{
		Include: []string{"**/*.go"},
		Exclude: []string{"**/*_test.go"},
	})
	require.NoError(t, err)

	var paths []string
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"a.go", "pkg/b.go"}, paths)
}

func TestCompare_BadPattern(t *testing.T) {
	dir := t.TempDir()
	_, err := Compare(context.Background(), dir, dir, Options{Include: []string{"[a-"}})
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestCompare_MissingDir(t *testing.T) {
	dir := t.TempDir()
	_, err := Compare(context.Background(), dir, filepath.Join(dir, "nope"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompare_Canceled(t *testing.T) {
	left := writeTree(t, map[string]string{"a.go": "x\n", "b.go": "x\n"})
	right := writeTree(t, map[string]string{"a.go": "y\n", "b.go": "y\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compare(ctx, left, right, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_Binary(t *testing.T) {
	left := writeTree(t, map[string]string{"img.bin": "\x00\x01\x02"})
	right := writeTree(t, map[string]string{"img.bin": "\x00\x01\x03"})

	results, err := Compare(context.Background(), left, right, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Binary)
	assert.Nil(t, results[0].Diff)
	assert.Equal(t, report.StatusModified, results[0].Status)
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, Lines([]byte("a\r\nb\n\n")))
	assert.Nil(t, Lines(nil))
}

func TestIsBinary(t *testing.T) {
	assert.False(t, IsBinary([]byte("text\n")))
	assert.True(t, IsBinary([]byte("a\x00b")))
}
