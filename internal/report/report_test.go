package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/diffrefine/internal/diff"
)

func TestSummarize(t *testing.T) {
	rename := diff.RefactorType{Kind: "rename", Substitution: true}
	subs := []diff.SubstitutionType{
		diff.SubstitutionFunc(func(left, right *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
			if strings.Contains(texts.Left, "old") {
				return rename, true
			}
			return diff.TypeSubstitute, true
		}),
	}
	ignoreComments := diff.RefactoringFunc(func(side diff.Side, e *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
		if strings.HasPrefix(texts.Side(side), "//") {
			return diff.TypeIgnore, true
		}
		return nil, false
	})

	left := []string{"moved()", "keep", "x = old", "y = 1", "a  b", "gone"}
	right := []string{"keep", "x = new", "y = 2", "a b", "// note", "moved()"}
	d := diff.New(left, right, diff.Options{
		Normalize:     diff.Whitespace,
		Substitutions: subs,
		Refactorings:  []diff.RefactoringType{ignoreComments},
		DetectMoves:   true,
	})

	s := Summarize("f.go", d)
	assert.Equal(t, FileSummary{
		Path:        "f.go",
		Status:      StatusModified,
		Deleted:     1,
		Substituted: 1,
		Refactored:  1,
		Moved:       1,
		Normalized:  1,
		Ignored:     1,
		Unchanged:   1,
	}, s)
}

func TestSummarize_Unchanged(t *testing.T) {
	d := diff.New([]string{"a", "b"}, []string{"a", "b"}, diff.Options{})
	s := Summarize("same.go", d)
	assert.Equal(t, StatusUnchanged, s.Status)
	assert.Equal(t, 2, s.Unchanged)
}

func TestMarkdown(t *testing.T) {
	md := Markdown([]FileSummary{
		{Path: "a.go", Status: StatusModified, Inserted: 2, Deleted: 1, Diff: "-x\n+y"},
		{Path: "b.go", Status: StatusUnchanged, Unchanged: 10},
		{Path: "c.go", Status: StatusAdded, Inserted: 3},
	})

	assert.Contains(t, md, "2 of 3 files changed.")
	assert.Contains(t, md, "| `a.go` | modified | 2 | 1 | 0 | 0 | 0 | 0 | 0 |\n")
	assert.Contains(t, md, "| **total** | | 5 | 1 | 0 | 0 | 0 | 0 | 0 |\n")
	assert.Contains(t, md, "\n## a.go\n\n```diff\n-x\n+y\n```\n")
	assert.NotContains(t, md, "## b.go")
}

func TestFence(t *testing.T) {
	assert.Equal(t, "```", fence("plain"))
	assert.Equal(t, "````", fence("```go"))
	assert.Equal(t, "```", fence("a`b``c"))
}

func TestHTML(t *testing.T) {
	md := Markdown([]FileSummary{{Path: "a.go", Status: StatusModified, Inserted: 1, Diff: "+<b>"}})
	html, err := HTML(md)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<h1>diffrefine report</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<code>a.go</code>")
	assert.Contains(t, html, "+&lt;b&gt;")
}
