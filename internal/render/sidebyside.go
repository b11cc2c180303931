package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/codalotl/diffrefine/internal/diff"
)

// SideBySide renders d in two columns, left file on the left. Each row is "<left> <symbol> <right>", where symbol is the edit's type symbol and a column is blank when
// the edit has no line on that side. Cells are truncated with "…" or padded to fit Options.Width, measured in terminal cells. Tabs are expanded to four spaces.
// Context grouping follows Pretty.
func SideBySide(d *diff.Diff, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	col := max(1, (width-3)/2)

	cell := func(s string) string {
		s = expandTabs(s)
		if runewidth.StringWidth(s) > col {
			s = runewidth.Truncate(s, col, "…")
		}
		return runewidth.FillRight(s, col)
	}
	paint := func(s string, codes ...string) string {
		if !opts.Color {
			return s
		}
		return strings.Join(codes, "") + s + reset
	}

	edits := flatten(d.Units())
	var out []string
	if h := header(opts); h != "" {
		out = append(out, paint(h, cyanBold))
	}
	for gi, g := range groups(edits, opts.Context) {
		if gi > 0 {
			out = append(out, paint(fmt.Sprintf("%s ... %s", cell(""), cell("")), dimFG))
		}
		for _, e := range edits[g[0]:g[1]] {
			left, right := cell(""), cell("")
			if showsLeft(e) {
				left = cell(e.Text(diff.Left))
			}
			if showsRight(e) {
				right = cell(e.Text(diff.Right))
			}
			switch {
			case quiet(e):
			case e.IsMove():
				left = paint(left, blackFG, blueLine)
				right = paint(right, blackFG, blueLine)
			default:
				if showsLeft(e) {
					left = paint(left, blackFG, pinkLine)
				}
				if showsRight(e) {
					right = paint(right, blackFG, greenLine)
				}
			}
			row := left + " " + e.Type().Symbol() + " " + right
			out = append(out, strings.TrimRight(row, " "))
		}
	}
	return strings.Join(out, "\n")
}
