package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMovedLines_UniqueLine(t *testing.T) {
	edits := []*Edit{
		NewDelete(1, "moved()"),
		NewEqual(Line{Number: 2, Text: "mid"}, Line{Number: 1, Text: "mid"}),
		NewInsert(2, "moved()"),
	}

	got := HandleMovedLines(edits, nil)

	require.Len(t, got, 3)
	assert.Equal(t, TypeMoveLeft, got[0].Type())
	assert.Equal(t, TypeEqual, got[1].Type())
	assert.Equal(t, TypeMoveRight, got[2].Type())
	assert.Equal(t, [2]int{1, 2}, [2]int{got[0].LeftNumber(), got[0].RightNumber()})
	assert.Equal(t, [2]int{1, 2}, [2]int{got[2].LeftNumber(), got[2].RightNumber()})
	assert.NoError(t, validateMoves(got))

	// Input is not modified.
	assert.Equal(t, TypeDelete, edits[0].Type())
}

func TestHandleMovedLines_ExtendsOverAmbiguousNeighbours(t *testing.T) {
	edits := []*Edit{
		NewDelete(1, "}"),
		NewDelete(2, "unique()"),
		NewDelete(3, "}"),
		NewEqual(Line{Number: 4, Text: "mid"}, Line{Number: 1, Text: "mid"}),
		NewInsert(2, "}"),
		NewInsert(3, "unique()"),
		NewInsert(4, "}"),
	}

	got := HandleMovedLines(edits, nil)

	assert.Equal(t, []DiffType{TypeMoveLeft, TypeMoveLeft, TypeMoveLeft, TypeEqual, TypeMoveRight, TypeMoveRight, TypeMoveRight}, typesOf(got))
	assert.Equal(t, 2, got[0].RightNumber())
	assert.Equal(t, 4, got[2].RightNumber())
	assert.NoError(t, validateMoves(got))
	assert.NoError(t, validateCoverage(edits, got))
}

func TestHandleMovedLines_AmbiguousTextIsNotMoved(t *testing.T) {
	edits := []*Edit{
		NewDelete(1, "x"),
		NewDelete(2, "x"),
		NewInsert(3, "x"),
	}
	got := HandleMovedLines(edits, nil)
	assert.Equal(t, []DiffType{TypeDelete, TypeDelete, TypeInsert}, typesOf(got))
}

func TestHandleMovedLines_UsesNormalizer(t *testing.T) {
	edits := []*Edit{
		NewDelete(1, "call(a,  b)"),
		NewEqual(Line{Number: 2, Text: "mid"}, Line{Number: 1, Text: "mid"}),
		NewInsert(2, "  call(a, b)"),
	}

	assert.Equal(t, []DiffType{TypeDelete, TypeEqual, TypeInsert}, typesOf(HandleMovedLines(edits, nil)))
	assert.Equal(t, []DiffType{TypeMoveLeft, TypeEqual, TypeMoveRight}, typesOf(HandleMovedLines(edits, Whitespace)))
}

func TestHandleMovedLines_IgnoresNonPureEdits(t *testing.T) {
	sub := NewEdit(TypeSubstitute, Line{Number: 1, Text: "a"}, Line{Number: 2, Text: "a"})
	got := HandleMovedLines([]*Edit{sub}, nil)
	assert.Equal(t, []DiffType{TypeSubstitute}, typesOf(got))
}

func TestHandleMovedLines_ScriptSwap(t *testing.T) {
	raw := EditScript([]string{"x", "y", "z"}, []string{"y", "x", "z"}, nil)
	got := HandleMovedLines(raw, nil)

	assert.Equal(t, 1, countType(got, TypeMoveLeft))
	assert.Equal(t, 1, countType(got, TypeMoveRight))
	last := got[len(got)-1]
	assert.Equal(t, TypeEqual, last.Type())
	assert.Equal(t, [2]int{3, 3}, [2]int{last.LeftNumber(), last.RightNumber()})
	assert.NoError(t, validateMoves(got))
	assert.NoError(t, validateCoverage(raw, got))
}
