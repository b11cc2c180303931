package diff

import (
	"sort"
)

// frequencyCount records the line numbers, per side, at which a normalized text occurs among movable edits.
type frequencyCount struct {
	left  map[int]struct{}
	right map[int]struct{}
}

// unique reports whether the text occurs exactly once on each side.
func (f *frequencyCount) unique() bool {
	return len(f.left) == 1 && len(f.right) == 1
}

func only(set map[int]struct{}) int {
	for n := range set {
		return n
	}
	return NoLine
}

// HandleMovedLines returns a new edit list in which pure deletes and inserts that represent a moved line are replaced by a TypeMoveLeft edit (at the delete's position)
// and a TypeMoveRight edit (at the insert's position), both carrying the left and the right line. fn nil means Identity.
//
// A line is first recognized as moved only if its normalized text occurs exactly once among the movable deletes and once among the movable inserts. Each move is then
// extended outward, line by line in both directions, over adjacent deletes/inserts whose normalized texts are equal. Recognition repeats until a round extends nothing.
// Extension is unbounded, so long runs of coincidentally identical lines adjacent to a move are treated as part of it.
func HandleMovedLines(edits []*Edit, fn Normalizer) []*Edit {
	if fn == nil {
		fn = Identity
	}
	out := make([]*Edit, len(edits))
	copy(out, edits)

	// Line number -> index in out of the still-movable delete (left) or insert (right).
	movableLeft := make(map[int]int)
	movableRight := make(map[int]int)
	for i, e := range out {
		switch e.Type() {
		case TypeDelete:
			movableLeft[e.LeftNumber()] = i
		case TypeInsert:
			movableRight[e.RightNumber()] = i
		}
	}

	cache := newTextCache(fn)

	// tryMove converts the delete at left line l and the insert at right line r into a move if both are movable and normalized-equal.
	tryMove := func(l, r int) bool {
		li, ok := movableLeft[l]
		if !ok {
			return false
		}
		ri, ok := movableRight[r]
		if !ok {
			return false
		}
		del, ins := out[li], out[ri]
		leftText, rightText := cache.get(del), cache.get(ins)
		if leftText != rightText && !fn(del.Text(Left), ins.Text(Right)).HasEqualText() {
			return false
		}
		leftLine, _ := del.Left()
		rightLine, _ := ins.Right()
		out[li] = NewEdit(TypeMoveLeft, leftLine, rightLine)
		out[ri] = NewEdit(TypeMoveRight, leftLine, rightLine)
		delete(movableLeft, l)
		delete(movableRight, r)
		return true
	}

	for {
		counts := make(map[string]*frequencyCount)
		count := func(text string) *frequencyCount {
			fc, ok := counts[text]
			if !ok {
				fc = &frequencyCount{left: make(map[int]struct{}), right: make(map[int]struct{})}
				counts[text] = fc
			}
			return fc
		}
		for n, i := range movableLeft {
			count(cache.get(out[i])).left[n] = struct{}{}
		}
		for n, i := range movableRight {
			count(cache.get(out[i])).right[n] = struct{}{}
		}

		type move struct{ l, r int }
		var candidates []move
		for _, fc := range counts {
			if fc.unique() {
				candidates = append(candidates, move{l: only(fc.left), r: only(fc.right)})
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].l < candidates[j].l
		})

		var moves []move
		for _, c := range candidates {
			if tryMove(c.l, c.r) {
				moves = append(moves, c)
			}
		}

		extended := false
		for _, mv := range moves {
			for _, dir := range []int{-1, 1} {
				for k := 1; tryMove(mv.l+dir*k, mv.r+dir*k); k++ {
					extended = true
				}
			}
		}
		if !extended {
			break
		}
	}

	return out
}
