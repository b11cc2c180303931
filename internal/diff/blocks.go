package diff

import (
	"fmt"
	"strings"
)

// DiffUnit is a bare *Edit or a *Block.
type DiffUnit interface {
	Type() DiffType
	Edits() []*Edit
	ShouldIgnore() bool
	IsMove() bool
	IsSubstitution() bool
}

// Block is a non-empty, ordered run of consecutive edits reported as one unit. Blocks are immutable.
type Block struct {
	typ   DiffType
	edits []*Edit
}

// NewBlock returns a block of edits whose type is derived from them: the shared type if all edits have the same type, TypeMoveBlock if all are moves, and
// TypeReplacementBlock otherwise. It panics if edits is empty.
func NewBlock(edits ...*Edit) *Block {
	if len(edits) == 0 {
		panic(fmt.Errorf("NewBlock: empty block"))
	}
	return NewBlockOfType(combinedType(edits), edits...)
}

// NewBlockOfType returns a block of edits with type t. It panics if edits is empty or t is nil.
func NewBlockOfType(t DiffType, edits ...*Edit) *Block {
	if len(edits) == 0 {
		panic(fmt.Errorf("NewBlockOfType: empty block"))
	}
	if t == nil {
		panic(fmt.Errorf("NewBlockOfType: nil DiffType"))
	}
	cp := make([]*Edit, len(edits))
	copy(cp, edits)
	return &Block{typ: t, edits: cp}
}

func combinedType(edits []*Edit) DiffType {
	t := edits[0].Type()
	allMoves := t.IsMove()
	uniform := true
	for _, e := range edits[1:] {
		if e.Type() != t {
			uniform = false
		}
		if !e.Type().IsMove() {
			allMoves = false
		}
	}
	switch {
	case uniform:
		return t
	case allMoves:
		return TypeMoveBlock
	default:
		return TypeReplacementBlock
	}
}

func (b *Block) Type() DiffType { return b.typ }

// Edits returns a copy of the block's edits.
func (b *Block) Edits() []*Edit {
	cp := make([]*Edit, len(b.edits))
	copy(cp, b.edits)
	return cp
}

func (b *Block) Len() int             { return len(b.edits) }
func (b *Block) ShouldIgnore() bool   { return b.typ.ShouldIgnore() }
func (b *Block) IsMove() bool         { return b.typ.IsMove() }
func (b *Block) IsSubstitution() bool { return b.typ.IsSubstitution() }
func (b *Block) String() string       { return fmt.Sprintf("%s%v", b.typ.Name(), b.edits) }

// IsConsecutive reports whether line number b may directly follow line number a on one side of a block: b == a+1, or both are NoLine (two single-sided edits of the
// other side in a row). If replacement, a NoLine on either side also counts as consecutive, since an interleaved delete/insert boundary has no line number that
// contradicts adjacency.
func IsConsecutive(a, b int, replacement bool) bool {
	switch {
	case a != NoLine && b == a+1:
		return true
	case a == NoLine && b == NoLine:
		return true
	case replacement && (a == NoLine || b == NoLine):
		return true
	default:
		return false
	}
}

// canJoin reports whether edit next may extend a block whose last edit is prev.
func canJoin(prev, next *Edit, allowReplacements bool) bool {
	if prev.Type() == next.Type() &&
		IsConsecutive(prev.LeftNumber(), next.LeftNumber(), false) &&
		IsConsecutive(prev.RightNumber(), next.RightNumber(), false) {
		return true
	}
	return allowReplacements &&
		isReplacementEligible(prev.Type()) && isReplacementEligible(next.Type()) &&
		IsConsecutive(prev.LeftNumber(), next.LeftNumber(), true) &&
		IsConsecutive(prev.RightNumber(), next.RightNumber(), true)
}

// CombineToDiffBlocks groups consecutive edits into units in one linear scan. An edit joins the current run when it has the same type as the run's last edit and is
// consecutive with it on both sides, or, if allowReplacements, when both are inserts, deletes, or substitutions and are consecutive under the relaxed replacement rule;
// such mixed runs become TypeReplacementBlock. Runs of one edit are returned as the bare *Edit.
func CombineToDiffBlocks(edits []*Edit, allowReplacements bool) []DiffUnit {
	var units []DiffUnit
	var run []*Edit
	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			units = append(units, run[0])
		default:
			units = append(units, NewBlock(run...))
		}
		run = nil
	}
	for _, e := range edits {
		if len(run) > 0 && !canJoin(run[len(run)-1], e, allowReplacements) {
			flush()
		}
		run = append(run, e)
	}
	flush()
	return units
}

// HandleSplitLines returns units in which every substitution or replacement block whose concatenated normalized left text equals its concatenated normalized right text
// is reclassified as TypeNormalize: the block only re-wraps the same content over a different number of lines. Edits already treated as normalized-equal are skipped
// when concatenating. fn nil means Identity.
func HandleSplitLines(units []DiffUnit, fn Normalizer) []DiffUnit {
	out := make([]DiffUnit, len(units))
	for i, u := range units {
		out[i] = u
		b, ok := u.(*Block)
		if !ok || !b.IsSubstitution() {
			continue
		}
		var left, right strings.Builder
		for _, e := range b.edits {
			if e.Type().ShouldTreatAsNormalizedEqual() {
				continue
			}
			if e.HasLeft() {
				left.WriteString(NormalizeSide(Left, e.Text(Left), fn))
			}
			if e.HasRight() {
				right.WriteString(NormalizeSide(Right, e.Text(Right), fn))
			}
		}
		if left.String() == right.String() {
			out[i] = retype(b.edits, TypeNormalize)
		}
	}
	return out
}

// HandleBlankLines returns units in which every unit that is a real difference (not normalized-equal, not ignored) and whose edits are all blank after normalization on
// every present side is reclassified as a TypeNormalize block. fn nil means Identity.
func HandleBlankLines(units []DiffUnit, fn Normalizer) []DiffUnit {
	out := make([]DiffUnit, len(units))
	for i, u := range units {
		out[i] = u
		t := u.Type()
		if t.ShouldTreatAsNormalizedEqual() || t.ShouldIgnore() || t.IsMove() {
			continue
		}
		edits := u.Edits()
		if allBlank(edits, fn) {
			out[i] = retype(edits, TypeNormalize)
		}
	}
	return out
}

func allBlank(edits []*Edit, fn Normalizer) bool {
	for _, e := range edits {
		if e.HasLeft() && strings.TrimSpace(NormalizeSide(Left, e.Text(Left), fn)) != "" {
			return false
		}
		if e.HasRight() && strings.TrimSpace(NormalizeSide(Right, e.Text(Right), fn)) != "" {
			return false
		}
	}
	return true
}

// retype returns a block of t containing copies of edits retyped to t.
func retype(edits []*Edit, t DiffType) *Block {
	cp := make([]*Edit, len(edits))
	for i, e := range edits {
		cp[i] = e.WithType(t)
	}
	return NewBlockOfType(t, cp...)
}
