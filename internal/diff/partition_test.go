package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pairNumbers(pairs []candidatePair) [][2]int {
	out := make([][2]int, len(pairs))
	for i, p := range pairs {
		out[i] = [2]int{p.left.LeftNumber(), p.right.RightNumber()}
	}
	return out
}

func TestBucketKeys(t *testing.T) {
	assert.Equal(t, []string{""}, bucketKeys(""))
	assert.Equal(t, []string{""}, bucketKeys("} ) ;"))
	assert.Equal(t, []string{"int", "x", "1"}, bucketKeys("int x = 1;"))
	assert.Equal(t, []string{"x"}, bucketKeys("x + x"))
	assert.Equal(t, []string{"foo_bar", "baz9"}, bucketKeys("foo_bar(baz9)"))
}

func TestPartition_SharedTokensOnly(t *testing.T) {
	dels := deletes(1, "int x = 1;", "return y;", "}")
	ins := inserts(1, "int x = 2;", "}", "return z;")

	got := partition(dels, ins, newTextCache(nil))
	assert.Equal(t, [][2]int{{1, 1}, {2, 3}, {3, 2}}, pairNumbers(got))
}

func TestPartition_DeduplicatesAndSorts(t *testing.T) {
	// Both lines share several tokens; the pair must appear once.
	dels := deletes(5, "a b c", "c d")
	ins := inserts(2, "c d", "a b c")

	got := partition(dels, ins, newTextCache(nil))
	assert.Equal(t, [][2]int{{5, 2}, {5, 3}, {6, 2}, {6, 3}}, pairNumbers(got))
}

func TestPartition_UsesNormalizedText(t *testing.T) {
	lower := func(left, right string) NormalizedText {
		return NormalizedText{Left: toLower(left), Right: toLower(right)}
	}
	dels := deletes(1, "FOO")
	ins := inserts(1, "foo")

	assert.Empty(t, partition(dels, ins, newTextCache(nil)))
	assert.Equal(t, [][2]int{{1, 1}}, pairNumbers(partition(dels, ins, newTextCache(lower))))
}

func TestPartition_OneSideEmpty(t *testing.T) {
	assert.Nil(t, partition(deletes(1, "a"), nil, newTextCache(nil)))
	assert.Nil(t, partition(nil, inserts(1, "a"), newTextCache(nil)))
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
