// Package report summarizes refined diffs of one or more files as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/codalotl/diffrefine/internal/diff"
)

// Status of a compared file.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusDeleted   Status = "deleted"
)

// FileSummary counts the edits of one file's diff by kind. Moved counts moved lines (each move has a left and a right half; it is counted once).
type FileSummary struct {
	Path   string
	Status Status

	Inserted    int
	Deleted     int
	Substituted int
	Refactored  int
	Moved       int
	Normalized  int
	Ignored     int
	Unchanged   int

	Diff string // optional rendered diff, included in the Markdown report as a code block
}

// Summarize counts the edits of d. Status is StatusModified if d has changes, StatusUnchanged otherwise.
func Summarize(path string, d *diff.Diff) FileSummary {
	s := FileSummary{Path: path, Status: StatusUnchanged}
	if d.HasChanges() {
		s.Status = StatusModified
	}
	for _, tc := range d.Stats() {
		t := tc.Type
		switch {
		case t.ShouldIgnore():
			s.Ignored += tc.Edits
		case t == diff.TypeEqual:
			s.Unchanged += tc.Edits
		case t.ShouldTreatAsNormalizedEqual():
			s.Normalized += tc.Edits
		case t == diff.TypeMoveLeft:
			s.Moved += tc.Edits
		case t.IsMove():
		case t == diff.TypeInsert:
			s.Inserted += tc.Edits
		case t == diff.TypeDelete:
			s.Deleted += tc.Edits
		case t == diff.TypeSubstitute:
			s.Substituted += tc.Edits
		default:
			s.Refactored += tc.Edits
		}
	}
	return s
}

// Markdown returns a report with a table of all summaries, a totals row, and a section with the rendered diff of every summary that has one.
func Markdown(summaries []FileSummary) string {
	var b strings.Builder
	b.WriteString("# diffrefine report\n\n")

	changed := 0
	for _, s := range summaries {
		if s.Status != StatusUnchanged {
			changed++
		}
	}
	fmt.Fprintf(&b, "%d of %d files changed.\n\n", changed, len(summaries))

	b.WriteString("| File | Status | Inserted | Deleted | Substituted | Refactored | Moved | Normalized | Ignored |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|\n")
	var total FileSummary
	for _, s := range summaries {
		fmt.Fprintf(&b, "| `%s` | %s | %d | %d | %d | %d | %d | %d | %d |\n",
			strings.ReplaceAll(s.Path, "|", `\|`), s.Status, s.Inserted, s.Deleted, s.Substituted, s.Refactored, s.Moved, s.Normalized, s.Ignored)
		total.Inserted += s.Inserted
		total.Deleted += s.Deleted
		total.Substituted += s.Substituted
		total.Refactored += s.Refactored
		total.Moved += s.Moved
		total.Normalized += s.Normalized
		total.Ignored += s.Ignored
	}
	fmt.Fprintf(&b, "| **total** | | %d | %d | %d | %d | %d | %d | %d |\n",
		total.Inserted, total.Deleted, total.Substituted, total.Refactored, total.Moved, total.Normalized, total.Ignored)

	for _, s := range summaries {
		if s.Diff == "" {
			continue
		}
		f := fence(s.Diff)
		fmt.Fprintf(&b, "\n## %s\n\n%sdiff\n%s\n%s\n", s.Path, f, s.Diff, f)
	}
	return b.String()
}

// fence returns a backtick fence longer than any backtick run in body.
func fence(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// HTML converts a Markdown report to a standalone HTML page.
func HTML(md string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("failed to convert report: %w", err)
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>diffrefine report</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
