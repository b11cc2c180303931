package render

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type spanOp int

const (
	spanEqual spanOp = iota
	spanDelete
	spanInsert
	spanReplace
)

// span is an intra-line segment of a changed line pair. Equal spans carry the same text on both sides.
type span struct {
	op               spanOp
	oldText, newText string
}

// lineSpans returns the intra-line spans of oldLine against newLine. Every maximal run of non-equal segments between two equal segments is collapsed into one span, so a
// line never alternates between many tiny highlights.
func lineSpans(oldLine, newLine string) []span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []span
	var oldBuf, newBuf strings.Builder
	flush := func() {
		if oldBuf.Len() == 0 && newBuf.Len() == 0 {
			return
		}
		op := spanReplace
		switch {
		case newBuf.Len() == 0:
			op = spanDelete
		case oldBuf.Len() == 0:
			op = spanInsert
		}
		spans = append(spans, span{op: op, oldText: oldBuf.String(), newText: newBuf.String()})
		oldBuf.Reset()
		newBuf.Reset()
	}
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if n := len(spans); n > 0 && spans[n-1].op == spanEqual {
				spans[n-1].oldText += d.Text
				spans[n-1].newText += d.Text
				continue
			}
			spans = append(spans, span{op: spanEqual, oldText: d.Text, newText: d.Text})
		case diffmatchpatch.DiffDelete:
			oldBuf.WriteString(d.Text)
		case diffmatchpatch.DiffInsert:
			newBuf.WriteString(d.Text)
		}
	}
	flush()
	return spans
}

// oldSide and newSide rebuild one side of spans, wrapping changed segments with hl.
func oldSide(spans []span, hl func(string) string) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.op {
		case spanEqual:
			b.WriteString(s.oldText)
		case spanDelete, spanReplace:
			b.WriteString(hl(s.oldText))
		}
	}
	return b.String()
}

func newSide(spans []span, hl func(string) string) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.op {
		case spanEqual:
			b.WriteString(s.newText)
		case spanInsert, spanReplace:
			b.WriteString(hl(s.newText))
		}
	}
	return b.String()
}
