package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// defaultEOL is the line separator used by SplitLines and EditScript.
const defaultEOL = "\n"

// EditScript diffs left against right line by line and returns the raw edit list that the refinement stages consume: TypeEqual for lines that are identical, TypeNormalize
// for lines that are equal only after per-side normalization with fn, and TypeDelete/TypeInsert otherwise. Lines are numbered 1-based per side.
//
// Within each changed region, deletes are emitted before inserts.
func EditScript(left, right []string, fn Normalizer) []*Edit {
	normLeft := make([]string, len(left))
	for i, s := range left {
		normLeft[i] = NormalizeSide(Left, s, fn)
	}
	normRight := make([]string, len(right))
	for i, s := range right {
		normRight[i] = NormalizeSide(Right, s, fn)
	}

	// Diff based on lines: each (normalized) line is encoded as one rune, so the length of a diff's text in runes is its length in lines.
	dmp := diffmatchpatch.New()
	rLeft, rRight, _ := dmp.DiffLinesToRunes(joinLines(normLeft), joinLines(normRight))
	lineDiffs := dmp.DiffMainRunes(rLeft, rRight, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	edits := make([]*Edit, 0, max(len(left), len(right)))
	li, ri := 0, 0
	var dels, ins []*Edit

	flush := func() {
		edits = append(edits, dels...)
		edits = append(edits, ins...)
		dels = nil
		ins = nil
	}

	for _, d := range lineDiffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			for k := 0; k < n; k++ {
				l := Line{Number: li + 1, Text: left[li]}
				r := Line{Number: ri + 1, Text: right[ri]}
				t := TypeEqual
				if l.Text != r.Text {
					t = TypeNormalize
				}
				edits = append(edits, NewEdit(t, l, r))
				li++
				ri++
			}
		case diffmatchpatch.DiffDelete:
			for k := 0; k < n; k++ {
				dels = append(dels, NewDelete(li+1, left[li]))
				li++
			}
		case diffmatchpatch.DiffInsert:
			for k := 0; k < n; k++ {
				ins = append(ins, NewInsert(ri+1, right[ri]))
				ri++
			}
		}
	}
	flush()

	return edits
}

// joinLines joins lines so that DiffLinesToRunes sees exactly len(lines) lines. Every line is EOL-terminated, so a trailing empty line is not lost.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString(defaultEOL)
	}
	return b.String()
}

// SplitLines splits text into lines without their EOLs. A trailing EOL does not produce a final empty line; "" yields no lines.
func SplitLines(text string) []string {
	lines := splitPreserveEOL(text, defaultEOL)
	for i, l := range lines {
		lines[i], _ = trimEOL(l, defaultEOL)
	}
	return lines
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}
