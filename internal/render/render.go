// Package render formats a refined diff for terminals.
//
// Pretty is the default human view: unified-style lines grouped around changes with intra-line highlighting. Annotated lists every edit with its type symbol and both
// line numbers, and is meant for debugging strategies. SideBySide shows the two files in columns.
package render

import (
	"fmt"
	"strings"

	"github.com/codalotl/diffrefine/internal/diff"
)

// Options control rendering.
type Options struct {
	FromName string // left file name for the header; empty with ToName empty means no header
	ToName   string

	Context int  // unchanged lines shown around each change group; negative shows everything
	Color   bool // emit ANSI escape sequences
	Width   int  // total width for SideBySide; <= 0 means DefaultWidth
}

// DefaultWidth is the SideBySide width when Options.Width is unset.
const DefaultWidth = 120

const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	dimFG     = "\x1b[2m"
	pinkLine  = "\x1b[48;5;224m" // deleted lines
	pinkSpan  = "\x1b[48;5;217m" // deleted spans
	greenLine = "\x1b[48;5;194m" // added lines
	greenSpan = "\x1b[48;5;114m" // added spans
	blueLine  = "\x1b[48;5;189m" // moved lines
	cyanBold  = "\x1b[1;36m"
)

// header returns the file header line, or "" if both names are empty.
func header(opts Options) string {
	switch {
	case opts.FromName == "" && opts.ToName == "":
		return ""
	case opts.FromName == "":
		return fmt.Sprintf("add %s:", opts.ToName)
	case opts.ToName == "":
		return fmt.Sprintf("delete %s:", opts.FromName)
	case opts.FromName == opts.ToName:
		return fmt.Sprintf("%s:", opts.FromName)
	default:
		return fmt.Sprintf("%s -> %s:", opts.FromName, opts.ToName)
	}
}

// quiet reports whether e is shown only as context: equal, equal after normalization, or ignored.
func quiet(e *diff.Edit) bool {
	return e.Type().ShouldTreatAsNormalizedEqual() || e.ShouldIgnore()
}

// flatten returns the edits of units in order.
func flatten(units []diff.DiffUnit) []*diff.Edit {
	var out []*diff.Edit
	for _, u := range units {
		out = append(out, u.Edits()...)
	}
	return out
}

// groups returns the [start, end) ranges of edits to show: every non-quiet edit plus up to context quiet edits on either side. Ranges separated by at most 2*context
// quiet edits are merged. With context < 0, one range covers everything.
func groups(edits []*diff.Edit, context int) [][2]int {
	if len(edits) == 0 {
		return nil
	}
	if context < 0 {
		return [][2]int{{0, len(edits)}}
	}
	var out [][2]int
	for i, e := range edits {
		if quiet(e) {
			continue
		}
		start := max(0, i-context)
		end := min(len(edits), i+context+1)
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// showsLeft and showsRight report which sides of e are displayed at e's position. A move half carries both lines but is displayed only on its own side.
func showsLeft(e *diff.Edit) bool {
	return e.HasLeft() && e.Type() != diff.TypeMoveRight
}

func showsRight(e *diff.Edit) bool {
	return e.HasRight() && e.Type() != diff.TypeMoveLeft
}

// changedPair reports whether e is a two-sided edit whose sides are shown as a -/+ pair.
func changedPair(e *diff.Edit) bool {
	return showsLeft(e) && showsRight(e) && !quiet(e)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// Pretty renders d like a unified diff without hunk headers. Each line is prefixed with the symbol of its edit's type (" " equal, "-" delete, "+" insert, "~"
// normalized, "#" ignored, "<"/">" moved, "r" one-sided refactoring). Two-sided changes (substitutions) are shown as a "-" line followed by a "+" line with intra-line
// highlighting, annotated with the type name when it is not a plain substitution. Groups of changes are separated by a "..." line.
//
// If there are no changes and no header, the result is "".
func Pretty(d *diff.Diff, opts Options) string {
	edits := flatten(d.Units())

	paint := func(s string, codes ...string) string {
		if !opts.Color {
			return s
		}
		return strings.Join(codes, "") + s + reset
	}
	highlight := func(line, span string) func(string) string {
		return func(s string) string {
			if !opts.Color {
				return s
			}
			return reset + blackFG + span + s + reset + blackFG + line
		}
	}

	var out []string
	if h := header(opts); h != "" {
		out = append(out, paint(h, cyanBold))
	}

	for gi, g := range groups(edits, opts.Context) {
		if gi > 0 {
			out = append(out, paint("...", dimFG))
		}
		for _, e := range edits[g[0]:g[1]] {
			t := e.Type()
			switch {
			case changedPair(e):
				spans := lineSpans(e.Text(diff.Left), e.Text(diff.Right))
				out = append(out, paint("-"+oldSide(spans, highlight(pinkLine, pinkSpan)), blackFG, pinkLine))
				plus := "+" + newSide(spans, highlight(greenLine, greenSpan))
				out = append(out, paint(plus, blackFG, greenLine)+annotation(t, opts))
			case t == diff.TypeMoveLeft:
				out = append(out, paint(t.Symbol()+e.Text(diff.Left), blackFG, blueLine)+paint(fmt.Sprintf("  (moved to %d)", e.RightNumber()), dimFG))
			case t == diff.TypeMoveRight:
				out = append(out, paint(t.Symbol()+e.Text(diff.Right), blackFG, blueLine)+paint(fmt.Sprintf("  (moved from %d)", e.LeftNumber()), dimFG))
			case quiet(e):
				text := e.Text(diff.Right)
				if !showsRight(e) {
					text = e.Text(diff.Left)
				}
				line := t.Symbol() + text
				if t != diff.TypeEqual {
					line = paint(line, dimFG)
				}
				out = append(out, line)
			case showsLeft(e):
				out = append(out, paint(t.Symbol()+e.Text(diff.Left), blackFG, pinkLine)+annotation(t, opts))
			default:
				out = append(out, paint(t.Symbol()+e.Text(diff.Right), blackFG, greenLine)+annotation(t, opts))
			}
		}
	}
	return strings.Join(out, "\n")
}

// annotation returns a trailing type note for types that are not plain inserts, deletes, or substitutions.
func annotation(t diff.DiffType, opts Options) string {
	if t == diff.TypeInsert || t == diff.TypeDelete || t == diff.TypeSubstitute {
		return ""
	}
	s := "  [" + t.Name() + "]"
	if opts.Color {
		return dimFG + s + reset
	}
	return s
}

// Annotated renders every edit of d, one per line, as "<symbol> <left#> <right#>  <text>", where an absent side's number is blank and a two-sided edit with differing
// texts shows "left => right". Multi-edit blocks are introduced by a "== <type> (<n>)" line. Options.Context, Color and Width are ignored.
func Annotated(d *diff.Diff, opts Options) string {
	var out []string
	if h := header(opts); h != "" {
		out = append(out, h)
	}
	num := func(n int) string {
		if n == diff.NoLine {
			return ""
		}
		return fmt.Sprint(n)
	}
	for _, u := range d.Units() {
		edits := u.Edits()
		if len(edits) > 1 {
			out = append(out, fmt.Sprintf("== %s (%d)", u.Type().Name(), len(edits)))
		}
		for _, e := range edits {
			var text string
			switch {
			case e.HasLeft() && e.HasRight() && e.Text(diff.Left) != e.Text(diff.Right):
				text = e.Text(diff.Left) + " => " + e.Text(diff.Right)
			case e.HasLeft():
				text = e.Text(diff.Left)
			default:
				text = e.Text(diff.Right)
			}
			line := fmt.Sprintf("%s %4s %4s  %s", e.Type().Symbol(), num(e.LeftNumber()), num(e.RightNumber()), text)
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return strings.Join(out, "\n")
}
