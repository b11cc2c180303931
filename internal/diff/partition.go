package diff

import (
	"regexp"
	"sort"
)

// wordToken matches the word tokens used as similarity buckets. The compiled regexp is immutable and safe for concurrent use.
var wordToken = regexp.MustCompile(`[\p{L}\p{Nd}_]+`)

// candidatePair is a delete/insert pair that shares at least one bucket.
type candidatePair struct {
	left  *Edit // TypeDelete
	right *Edit // TypeInsert
}

// textCache memoizes per-side normalized text by edit identity for one matching invocation.
type textCache struct {
	fn    Normalizer
	texts map[*Edit]string
}

func newTextCache(fn Normalizer) *textCache {
	return &textCache{fn: fn, texts: make(map[*Edit]string)}
}

// get returns e's normalized text on its only side.
func (c *textCache) get(e *Edit) string {
	if s, ok := c.texts[e]; ok {
		return s
	}
	side, _ := e.singleSide()
	s := NormalizeSide(side, e.Text(side), c.fn)
	c.texts[e] = s
	return s
}

// bucketKeys returns the distinct word tokens of text, or the single empty key if text has no tokens.
func bucketKeys(text string) []string {
	tokens := wordToken.FindAllString(text, -1)
	if len(tokens) == 0 {
		return []string{""}
	}
	seen := make(map[string]struct{}, len(tokens))
	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		keys = append(keys, t)
	}
	return keys
}

// partition buckets deletes and inserts by shared word tokens and returns every delete/insert pair that shares a bucket, deduplicated and sorted by (left line, right
// line). The deterministic order matters: matching is first-come-first-served.
func partition(deletes, inserts []*Edit, cache *textCache) []candidatePair {
	if len(deletes) == 0 || len(inserts) == 0 {
		return nil
	}

	leftBuckets := make(map[string][]*Edit)
	for _, e := range deletes {
		for _, k := range bucketKeys(cache.get(e)) {
			leftBuckets[k] = append(leftBuckets[k], e)
		}
	}
	rightBuckets := make(map[string][]*Edit)
	for _, e := range inserts {
		for _, k := range bucketKeys(cache.get(e)) {
			rightBuckets[k] = append(rightBuckets[k], e)
		}
	}

	type pairKey struct{ l, r int }
	pairs := make(map[pairKey]candidatePair)
	for k, lefts := range leftBuckets {
		rights, ok := rightBuckets[k]
		if !ok {
			continue
		}
		for _, l := range lefts {
			for _, r := range rights {
				pairs[pairKey{l.LeftNumber(), r.RightNumber()}] = candidatePair{left: l, right: r}
			}
		}
	}

	out := make([]candidatePair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].left.LeftNumber() != out[j].left.LeftNumber() {
			return out[i].left.LeftNumber() < out[j].left.LeftNumber()
		}
		return out[i].right.RightNumber() < out[j].right.RightNumber()
	})
	return out
}
