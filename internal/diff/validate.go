package diff

import (
	"fmt"
)

// validateCoverage checks that out accounts for every line of in exactly once per side, and carries no line that in does not. A TypeMoveLeft edit accounts for its
// left line only and a TypeMoveRight edit for its right line only.
func validateCoverage(in, out []*Edit) error {
	want := map[Side]map[int]int{Left: {}, Right: {}}
	for _, e := range in {
		for _, side := range []Side{Left, Right} {
			if n := orderNumber(e, side); n != NoLine {
				want[side][n]++
			}
		}
	}
	got := map[Side]map[int]int{Left: {}, Right: {}}
	for i, e := range out {
		for _, side := range []Side{Left, Right} {
			n := orderNumber(e, side)
			if n == NoLine {
				continue
			}
			got[side][n]++
			if got[side][n] > 1 {
				return fmt.Errorf("edit[%d] %v: %s line %d covered more than once", i, e, side, n)
			}
			if want[side][n] == 0 {
				return fmt.Errorf("edit[%d] %v: %s line %d is not in the input", i, e, side, n)
			}
		}
	}
	for _, side := range []Side{Left, Right} {
		for n := range want[side] {
			if got[side][n] == 0 {
				return fmt.Errorf("%s line %d is not covered by the output", side, n)
			}
		}
	}
	return nil
}

// validateMoves checks that every TypeMoveLeft edit has exactly one TypeMoveRight counterpart carrying the same lines, and vice versa.
func validateMoves(edits []*Edit) error {
	type key struct {
		left, right Line
	}
	lefts := make(map[key]int)
	rights := make(map[key]int)
	for _, e := range edits {
		switch e.Type() {
		case TypeMoveLeft:
			lefts[key{e.left, e.right}]++
		case TypeMoveRight:
			rights[key{e.left, e.right}]++
		}
	}
	for k, n := range lefts {
		if n != 1 || rights[k] != 1 {
			return fmt.Errorf("move %d->%d: %d left halves, %d right halves", k.left.Number, k.right.Number, n, rights[k])
		}
	}
	for k, n := range rights {
		if n != 1 || lefts[k] != 1 {
			return fmt.Errorf("move %d->%d: %d left halves, %d right halves", k.left.Number, k.right.Number, lefts[k], n)
		}
	}
	return nil
}

// validateUnits checks that blocks are non-empty and that their edits are pairwise consecutive under the rule matching the block's type.
func validateUnits(units []DiffUnit) error {
	for ui, u := range units {
		b, ok := u.(*Block)
		if !ok {
			continue
		}
		if len(b.edits) == 0 {
			return fmt.Errorf("unit[%d]: empty block", ui)
		}
		replacement := b.typ.IsSubstitution() || b.typ == TypeNormalize
		for i := 1; i < len(b.edits); i++ {
			prev, next := b.edits[i-1], b.edits[i]
			if !IsConsecutive(prev.LeftNumber(), next.LeftNumber(), replacement) || !IsConsecutive(prev.RightNumber(), next.RightNumber(), replacement) {
				return fmt.Errorf("unit[%d].edit[%d]: %v does not follow %v", ui, i, next, prev)
			}
		}
	}
	return nil
}
