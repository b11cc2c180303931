package diff

import (
	"fmt"
	"sort"
)

// interleave reorders edits so the result is consistent with both line orders: edits that occupy a left position appear in left-line order, and edits that occupy a
// right position appear in right-line order. Two-sided edits (ex: TypeEqual, substitutions) occupy both and act as synchronization points. Where both a left-only and a
// right-only edit could come next, the left-only edit goes first.
//
// It panics if two different two-sided edits compete for the next slot (their left and right orders cross); that indicates a bookkeeping bug upstream.
func interleave(edits []*Edit) []*Edit {
	var lefts, rights []*Edit
	for _, e := range edits {
		if orderNumber(e, Left) != NoLine {
			lefts = append(lefts, e)
		}
		if orderNumber(e, Right) != NoLine {
			rights = append(rights, e)
		}
	}
	sort.SliceStable(lefts, func(i, j int) bool {
		return orderNumber(lefts[i], Left) < orderNumber(lefts[j], Left)
	})
	sort.SliceStable(rights, func(i, j int) bool {
		return orderNumber(rights[i], Right) < orderNumber(rights[j], Right)
	})

	occupiesBoth := func(e *Edit) bool {
		return orderNumber(e, Left) != NoLine && orderNumber(e, Right) != NoLine
	}

	out := make([]*Edit, 0, len(edits))
	i, j := 0, 0
	for i < len(lefts) || j < len(rights) {
		switch {
		case i == len(lefts):
			out = append(out, rights[j])
			j++
		case j == len(rights):
			out = append(out, lefts[i])
			i++
		case lefts[i] == rights[j]:
			out = append(out, lefts[i])
			i++
			j++
		case !occupiesBoth(lefts[i]):
			out = append(out, lefts[i])
			i++
		case !occupiesBoth(rights[j]):
			out = append(out, rights[j])
			j++
		default:
			panic(fmt.Errorf("interleave: ambiguous order between %v and %v", lefts[i], rights[j]))
		}
	}
	return out
}
