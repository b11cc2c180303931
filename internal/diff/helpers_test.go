package diff

import (
	"strings"
)

// acceptAll is a substitution strategy that pairs any delete with any insert.
var acceptAll = SubstitutionFunc(func(left, right *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool) {
	return TypeSubstitute, true
})

// allowPairs accepts exactly the listed (left line, right line) pairs and counts how often each pair is evaluated.
type allowPairs struct {
	allowed map[[2]int]bool
	calls   map[[2]int]int
}

func newAllowPairs(pairs ...[2]int) *allowPairs {
	a := &allowPairs{allowed: make(map[[2]int]bool), calls: make(map[[2]int]int)}
	for _, p := range pairs {
		a.allowed[p] = true
	}
	return a
}

func (a *allowPairs) Accept(left, right *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool) {
	k := [2]int{left.LeftNumber(), right.RightNumber()}
	a.calls[k]++
	if a.allowed[k] {
		return TypeSubstitute, true
	}
	return nil, false
}

func typesOf(edits []*Edit) []DiffType {
	out := make([]DiffType, len(edits))
	for i, e := range edits {
		out[i] = e.Type()
	}
	return out
}

func countType(edits []*Edit, t DiffType) int {
	n := 0
	for _, e := range edits {
		if e.Type() == t {
			n++
		}
	}
	return n
}

// deletes returns TypeDelete edits numbered from first, one per text.
func deletes(first int, texts ...string) []*Edit {
	out := make([]*Edit, len(texts))
	for i, s := range texts {
		out[i] = NewDelete(first+i, s)
	}
	return out
}

// inserts returns TypeInsert edits numbered from first, one per text.
func inserts(first int, texts ...string) []*Edit {
	out := make([]*Edit, len(texts))
	for i, s := range texts {
		out[i] = NewInsert(first+i, s)
	}
	return out
}

func concat(lists ...[]*Edit) []*Edit {
	var out []*Edit
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
