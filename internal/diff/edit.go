package diff

import (
	"fmt"
)

// NoLine is the line number of an absent line.
const NoLine = -1

// Side selects the left (old) or right (new) half of a diff.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Line is a numbered source line. Number is 1-based; NoLine means "no line on this side".
type Line struct {
	Number int
	Text   string
}

// Absent reports whether l is the "no line" sentinel.
func (l Line) Absent() bool {
	return l.Number == NoLine
}

var noLine = Line{Number: NoLine}

// Edit is one diff record: zero-or-one left line paired with zero-or-one right line, tagged with a DiffType. At least one side is present.
//
// Edits are immutable and compared by identity (pointer) throughout this package; stages create new edits instead of modifying existing ones.
type Edit struct {
	typ   DiffType
	left  Line
	right Line
}

// NewEdit returns an edit of type t. Pass a Line with Number == NoLine for an absent side. It panics if t is nil or if both sides are absent.
func NewEdit(t DiffType, left, right Line) *Edit {
	if t == nil {
		panic(fmt.Errorf("NewEdit: nil DiffType"))
	}
	if left.Absent() && right.Absent() {
		panic(fmt.Errorf("NewEdit: %s edit has neither a left nor a right line", t.Name()))
	}
	if left.Absent() {
		left = noLine
	}
	if right.Absent() {
		right = noLine
	}
	return &Edit{typ: t, left: left, right: right}
}

// NewInsert returns a TypeInsert edit for the right line (number, text).
func NewInsert(number int, text string) *Edit {
	return NewEdit(TypeInsert, noLine, Line{Number: number, Text: text})
}

// NewDelete returns a TypeDelete edit for the left line (number, text).
func NewDelete(number int, text string) *Edit {
	return NewEdit(TypeDelete, Line{Number: number, Text: text}, noLine)
}

// NewEqual returns a TypeEqual edit pairing left and right.
func NewEqual(left, right Line) *Edit {
	return NewEdit(TypeEqual, left, right)
}

// Type returns the edit's DiffType.
func (e *Edit) Type() DiffType {
	return e.typ
}

// Left returns the left line and whether it is present.
func (e *Edit) Left() (Line, bool) {
	return e.left, !e.left.Absent()
}

// Right returns the right line and whether it is present.
func (e *Edit) Right() (Line, bool) {
	return e.right, !e.right.Absent()
}

// Line returns the line on side and whether it is present.
func (e *Edit) Line(side Side) (Line, bool) {
	if side == Left {
		return e.Left()
	}
	return e.Right()
}

// LeftNumber returns the left line number, or NoLine.
func (e *Edit) LeftNumber() int {
	return e.left.Number
}

// RightNumber returns the right line number, or NoLine.
func (e *Edit) RightNumber() int {
	return e.right.Number
}

// Number returns the line number on side, or NoLine.
func (e *Edit) Number(side Side) int {
	if side == Left {
		return e.left.Number
	}
	return e.right.Number
}

// Text returns the line text on side ("" if absent).
func (e *Edit) Text(side Side) string {
	if side == Left {
		return e.left.Text
	}
	return e.right.Text
}

// HasLeft reports whether the edit carries a left line.
func (e *Edit) HasLeft() bool { return !e.left.Absent() }

// HasRight reports whether the edit carries a right line.
func (e *Edit) HasRight() bool { return !e.right.Absent() }

// singleSide returns the only present side of a single-sided edit. ok is false for two-sided edits.
func (e *Edit) singleSide() (Side, bool) {
	switch {
	case e.HasLeft() && !e.HasRight():
		return Left, true
	case e.HasRight() && !e.HasLeft():
		return Right, true
	default:
		return Left, false
	}
}

// WithType returns a new edit with the same lines and type t.
func (e *Edit) WithType(t DiffType) *Edit {
	return NewEdit(t, e.left, e.right)
}

// Edits implements DiffUnit; an edit is a unit of one.
func (e *Edit) Edits() []*Edit {
	return []*Edit{e}
}

// ShouldIgnore implements DiffUnit.
func (e *Edit) ShouldIgnore() bool { return e.typ.ShouldIgnore() }

// IsMove implements DiffUnit.
func (e *Edit) IsMove() bool { return e.typ.IsMove() }

// IsSubstitution implements DiffUnit.
func (e *Edit) IsSubstitution() bool { return e.typ.IsSubstitution() }

// String is meant for debugging and test failure messages.
func (e *Edit) String() string {
	l, r := "-", "-"
	if e.HasLeft() {
		l = fmt.Sprintf("%d:%q", e.left.Number, e.left.Text)
	}
	if e.HasRight() {
		r = fmt.Sprintf("%d:%q", e.right.Number, e.right.Text)
	}
	return fmt.Sprintf("%s{%s %s}", e.typ.Name(), l, r)
}

// isPureInsertOrDelete reports whether e is a plain TypeInsert or TypeDelete edit (the only edits matching and move detection rewrite).
func isPureInsertOrDelete(e *Edit) bool {
	return e.typ == TypeInsert || e.typ == TypeDelete
}

// anchorsBothSides reports whether e synchronizes the left and right orders (a two-sided, non-move edit).
func anchorsBothSides(e *Edit) bool {
	return e.HasLeft() && e.HasRight() && !e.typ.IsMove()
}

// orderNumber returns the line number e occupies in side's order, or NoLine if e does not occupy a position on side. Moves occupy only their own side: a TypeMoveLeft
// edit sits at its left line, a TypeMoveRight edit at its right line.
func orderNumber(e *Edit, side Side) int {
	switch e.typ {
	case TypeMoveLeft:
		if side == Right {
			return NoLine
		}
	case TypeMoveRight:
		if side == Left {
			return NoLine
		}
	}
	return e.Number(side)
}
