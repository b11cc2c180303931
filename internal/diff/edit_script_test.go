package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditScript(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		fn    Normalizer
		want  []DiffType
	}{
		{name: "both empty", left: "", right: "", want: []DiffType{}},
		{name: "add whole file", left: "", right: "a\nb", want: []DiffType{TypeInsert, TypeInsert}},
		{name: "delete whole file", left: "a\nb", right: "", want: []DiffType{TypeDelete, TypeDelete}},
		{name: "equal", left: "a\nb", right: "a\nb", want: []DiffType{TypeEqual, TypeEqual}},
		{name: "change middle line", left: "a\nb\nc", right: "a\nB\nc", want: []DiffType{TypeEqual, TypeDelete, TypeInsert, TypeEqual}},
		{name: "whitespace without normalization", left: "a  b", right: "a b", want: []DiffType{TypeDelete, TypeInsert}},
		{name: "whitespace with normalization", left: "a  b", right: "a b", fn: Whitespace, want: []DiffType{TypeNormalize}},
		{name: "trailing blank line kept", left: "a\n", right: "a", want: []DiffType{TypeEqual, TypeDelete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := EditScript(lines(tt.left), lines(tt.right), tt.fn)
			assert.Equal(t, tt.want, typesOf(edits))
		})
	}
}

func TestEditScript_NumbersLinesPerSide(t *testing.T) {
	edits := EditScript([]string{"a", "b", "c"}, []string{"a", "x", "y", "c"}, nil)
	require.Len(t, edits, 5)

	assert.Equal(t, [2]int{1, 1}, [2]int{edits[0].LeftNumber(), edits[0].RightNumber()})
	assert.Equal(t, TypeDelete, edits[1].Type())
	assert.Equal(t, 2, edits[1].LeftNumber())
	assert.Equal(t, TypeInsert, edits[2].Type())
	assert.Equal(t, 2, edits[2].RightNumber())
	assert.Equal(t, TypeInsert, edits[3].Type())
	assert.Equal(t, 3, edits[3].RightNumber())
	assert.Equal(t, [2]int{3, 4}, [2]int{edits[4].LeftNumber(), edits[4].RightNumber()})
	assert.NoError(t, validateCoverage(edits, edits))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a"}, SplitLines("a"))
	assert.Equal(t, []string{"a"}, SplitLines("a\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb\n"))
	assert.Equal(t, []string{""}, SplitLines("\n"))
}
