package diff

import (
	"fmt"
	"math"
)

// SubstitutionType decides whether a deleted line and an inserted line are the same line, modified.
//
// Accept receives the original delete (left) and insert (right) edits, their normalized texts, and the active normalizer. It returns the substitution type to tag the
// pair with and true, or false to reject. The returned type must report IsSubstitution() == true. Implementations must be pure; a rejection is final for that pair.
type SubstitutionType interface {
	Accept(left, right *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool)
}

// RefactoringType decides whether a single unmatched edit is a known one-sided refactoring (ex: an added annotation, a removed import).
//
// AcceptSingleSide receives the side the edit is on, the edit, and its normalized text (the other side of texts is ""). It returns the type to tag the edit with and true,
// or false to reject.
type RefactoringType interface {
	AcceptSingleSide(side Side, e *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool)
}

// SubstitutionFunc adapts a function to a SubstitutionType.
type SubstitutionFunc func(left, right *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool)

// Accept calls f.
func (f SubstitutionFunc) Accept(left, right *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool) {
	return f(left, right, texts, fn)
}

// RefactoringFunc adapts a function to a RefactoringType.
type RefactoringFunc func(side Side, e *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool)

// AcceptSingleSide calls f.
func (f RefactoringFunc) AcceptSingleSide(side Side, e *Edit, texts NormalizedText, fn Normalizer) (DiffType, bool) {
	return f(side, e, texts, fn)
}

// HandleSubstitution returns a new edit list in which delete/insert pairs accepted by subs are replaced by one two-sided substitution edit, and remaining single-sided
// edits accepted by refs are replaced by a one-sided refactoring edit. Strategies are evaluated in the given order; the first acceptance wins. fn nil means Identity.
//
// Only pure TypeDelete/TypeInsert edits participate. They are considered hunk by hunk, where a hunk is the run of edits between two edits that anchor both sides
// (ex: TypeEqual). Every input edit is accounted for exactly once in the result: unchanged, replaced by its own refactoring edit, or folded with its partner into a
// substitution edit. The result is ordered consistently with both line orders.
func HandleSubstitution(edits []*Edit, subs []SubstitutionType, refs []RefactoringType, fn Normalizer) []*Edit {
	if fn == nil {
		fn = Identity
	}
	m := &matcher{
		subs:         subs,
		fn:           fn,
		cache:        newTextCache(fn),
		checked:      make(map[*Edit]map[*Edit]struct{}),
		replacements: make(map[*Edit]*Edit),
		matched:      make(map[*Edit]bool),
	}

	if len(subs) > 0 {
		for _, hunk := range hunks(edits) {
			m.match(hunk)
		}
	}

	out := make([]*Edit, 0, len(edits))
	for _, e := range edits {
		if !m.matched[e] {
			out = append(out, e)
			continue
		}
		r, ok := m.replacements[e]
		if !ok {
			panic(fmt.Errorf("HandleSubstitution: matched edit %v has no replacement record", e))
		}
		if r != nil {
			out = append(out, r)
		}
	}

	if len(refs) > 0 {
		for i, e := range out {
			if !isPureInsertOrDelete(e) {
				continue
			}
			if r, ok := acceptRefactoring(refs, e, fn); ok {
				out[i] = r
			}
		}
	}

	return interleave(out)
}

// hunks returns, for each run of edits between two-sided anchors, the pure inserts and deletes of that run (in input order). Runs with no such edits are omitted.
func hunks(edits []*Edit) [][]*Edit {
	var out [][]*Edit
	var cur []*Edit
	for _, e := range edits {
		if anchorsBothSides(e) {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		if isPureInsertOrDelete(e) {
			cur = append(cur, e)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// matcher holds the state of one HandleSubstitution invocation, shared by its recursive match calls.
type matcher struct {
	subs  []SubstitutionType
	fn    Normalizer
	cache *textCache

	// checked[left][right] records pairs already shown to the strategies.
	checked map[*Edit]map[*Edit]struct{}

	// replacements maps each matched original edit to its replacement: the substitution edit for the insert, nil (a tombstone) for the delete.
	replacements map[*Edit]*Edit
	matched      map[*Edit]bool
}

// match finds substitutions among edits (single-sided, unmatched), accepts the longest non-crossing subset, and recurses into the gaps between accepted pairs.
func (m *matcher) match(edits []*Edit) {
	var deletes, inserts []*Edit
	for _, e := range edits {
		if e.HasLeft() {
			deletes = append(deletes, e)
		} else {
			inserts = append(inserts, e)
		}
	}
	if len(deletes) == 0 || len(inserts) == 0 {
		return
	}

	consumed := make(map[*Edit]bool)
	var candidates []*patienceMatch
	for _, p := range partition(deletes, inserts, m.cache) {
		if consumed[p.left] || consumed[p.right] {
			continue
		}
		if m.wasChecked(p.left, p.right) {
			continue
		}
		m.markChecked(p.left, p.right)

		texts := NormalizedText{Left: m.cache.get(p.left), Right: m.cache.get(p.right)}
		t, ok := m.accept(p.left, p.right, texts)
		if !ok {
			continue
		}
		leftLine, _ := p.left.Left()
		rightLine, _ := p.right.Right()
		candidates = append(candidates, &patienceMatch{
			leftLine:    leftLine.Number,
			rightLine:   rightLine.Number,
			left:        p.left,
			right:       p.right,
			replacement: NewEdit(t, leftLine, rightLine),
		})
		consumed[p.left] = true
		consumed[p.right] = true
	}
	if len(candidates) == 0 {
		return
	}

	prevLeft, prevRight := 0, 0
	node := patienceChain(candidates)
	for {
		curLeft, curRight := math.MaxInt, math.MaxInt
		if node != nil {
			curLeft, curRight = node.leftLine, node.rightLine
			m.matched[node.left] = true
			m.matched[node.right] = true
			m.replacements[node.left] = nil
			m.replacements[node.right] = node.replacement
		}

		var gap []*Edit
		hasLeft, hasRight := false, false
		for _, e := range deletes {
			if n := e.LeftNumber(); n > prevLeft && n < curLeft && !m.matched[e] {
				gap = append(gap, e)
				hasLeft = true
			}
		}
		for _, e := range inserts {
			if n := e.RightNumber(); n > prevRight && n < curRight && !m.matched[e] {
				gap = append(gap, e)
				hasRight = true
			}
		}
		if hasLeft && hasRight {
			m.match(gap)
		}

		if node == nil {
			break
		}
		prevLeft, prevRight = curLeft, curRight
		node = node.next
	}
}

// accept runs the substitution strategies in order and returns the first acceptance.
func (m *matcher) accept(left, right *Edit, texts NormalizedText) (DiffType, bool) {
	for _, s := range m.subs {
		t, ok := s.Accept(left, right, texts, m.fn)
		if !ok {
			continue
		}
		if t == nil || !t.IsSubstitution() {
			panic(fmt.Errorf("HandleSubstitution: strategy %T accepted %v / %v with non-substitution type %v", s, left, right, t))
		}
		return t, true
	}
	return nil, false
}

func (m *matcher) wasChecked(left, right *Edit) bool {
	_, ok := m.checked[left][right]
	return ok
}

func (m *matcher) markChecked(left, right *Edit) {
	set, ok := m.checked[left]
	if !ok {
		set = make(map[*Edit]struct{})
		m.checked[left] = set
	}
	set[right] = struct{}{}
}

// acceptRefactoring runs the refactoring strategies on a single-sided edit and returns its replacement on the first acceptance.
func acceptRefactoring(refs []RefactoringType, e *Edit, fn Normalizer) (*Edit, bool) {
	side, ok := e.singleSide()
	if !ok {
		return nil, false
	}
	var texts NormalizedText
	if side == Left {
		texts = NormalizedText{Left: NormalizeSide(Left, e.Text(Left), fn)}
	} else {
		texts = NormalizedText{Right: NormalizeSide(Right, e.Text(Right), fn)}
	}
	for _, r := range refs {
		t, ok := r.AcceptSingleSide(side, e, texts, fn)
		if !ok || t == nil {
			continue
		}
		return e.WithType(t), true
	}
	return nil, false
}
