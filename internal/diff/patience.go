package diff

import (
	"sort"
)

// patienceMatch is an accepted candidate substitution during one matching call. previous/next link the longest non-crossing chain found by patienceChain.
type patienceMatch struct {
	leftLine  int
	rightLine int

	left        *Edit // the original delete
	right       *Edit // the original insert
	replacement *Edit // the substitution edit that replaces the pair

	previous *patienceMatch
	next     *patienceMatch
}

// patienceChain selects the longest subsequence of matches that is strictly increasing in both left and right line (the longest non-crossing assignment) and returns its
// head, with next links set along the chain. It returns nil for no matches.
//
// Matches are patience-sorted by left line: each one goes on the stack after the rightmost stack top with a smaller right line, and remembers that top as its previous.
// The top of the last stack ends a longest chain.
func patienceChain(matches []*patienceMatch) *patienceMatch {
	if len(matches) == 0 {
		return nil
	}

	sorted := make([]*patienceMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].leftLine != sorted[j].leftLine {
			return sorted[i].leftLine < sorted[j].leftLine
		}
		// Equal left lines can't both be on a chain; placing the larger right line first keeps the smaller one from stacking on top of it.
		return sorted[i].rightLine > sorted[j].rightLine
	})

	var tops []*patienceMatch
	for _, m := range sorted {
		m.previous = nil
		m.next = nil

		// Rightmost top whose right line is less than m's. Tops are increasing in right line.
		i := sort.Search(len(tops), func(k int) bool {
			return tops[k].rightLine >= m.rightLine
		}) - 1
		if i >= 0 {
			m.previous = tops[i]
		}
		if i+1 == len(tops) {
			tops = append(tops, m)
		} else {
			tops[i+1] = m
		}
	}

	head := tops[len(tops)-1]
	for head.previous != nil {
		head.previous.next = head
		head = head.previous
	}
	return head
}
