package rules

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/codalotl/diffrefine/internal/diff"
)

// Similarity pairs a deleted and an inserted line when their normalized texts are close in edit distance: 1 - levenshtein/maxLen >= Threshold. Two empty texts never
// match (blank lines are left to the blank-line pass).
type Similarity struct {
	Threshold float64
}

// Score returns the similarity of a and b in [0, 1].
func Score(a, b string) float64 {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(n)
}

func (s Similarity) Accept(left, right *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
	if texts.Left == "" || texts.Right == "" {
		return nil, false
	}
	if Score(texts.Left, texts.Right) < s.Threshold {
		return nil, false
	}
	return diff.TypeSubstitute, true
}

// Rewrite pairs a deleted and an inserted line when rewriting the normalized left text with a regexp replacement yields the normalized right text. It tags the pair
// with a substitution RefactorType of its Kind.
type Rewrite struct {
	Kind        string
	Replacement string

	re *regexp.Regexp
}

// NewRewrite compiles pattern. Replacement uses regexp.Expand syntax ($1, ${name}).
func NewRewrite(kind, pattern, replacement string) (*Rewrite, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rewrite %q: %w", kind, err)
	}
	return &Rewrite{Kind: kind, Replacement: replacement, re: re}, nil
}

func (r *Rewrite) Accept(left, right *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
	if !r.re.MatchString(texts.Left) {
		return nil, false
	}
	rewritten := r.re.ReplaceAllString(texts.Left, r.Replacement)
	if rewritten != texts.Right && (fn == nil || !fn(rewritten, texts.Right).HasEqualText()) {
		return nil, false
	}
	return diff.RefactorType{Kind: r.Kind, Detail: r.re.String(), Substitution: true}, true
}

// Pattern tags a single unmatched line as a refactoring of its Kind when its normalized text matches. Sides restricts which side it applies to.
type Pattern struct {
	Kind   string
	Sides  Sides
	Ignore bool

	re *regexp.Regexp
}

// Sides selects which side of the diff a Pattern applies to.
type Sides int

const (
	BothSides Sides = iota
	LeftOnly
	RightOnly
)

// ParseSides parses "", "both", "left", or "right".
func ParseSides(s string) (Sides, error) {
	switch s {
	case "", "both":
		return BothSides, nil
	case "left":
		return LeftOnly, nil
	case "right":
		return RightOnly, nil
	}
	return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidRule, s)
}

func (s Sides) includes(side diff.Side) bool {
	switch s {
	case LeftOnly:
		return side == diff.Left
	case RightOnly:
		return side == diff.Right
	default:
		return true
	}
}

// NewPattern compiles pattern.
func NewPattern(kind, pattern string, sides Sides, ignore bool) (*Pattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("refactoring %q: %w", kind, err)
	}
	return &Pattern{Kind: kind, Sides: sides, Ignore: ignore, re: re}, nil
}

func (p *Pattern) AcceptSingleSide(side diff.Side, e *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
	if !p.Sides.includes(side) || !p.re.MatchString(texts.Side(side)) {
		return nil, false
	}
	return diff.RefactorType{Kind: p.Kind, Detail: p.re.String(), Ignored: p.Ignore}, true
}

// IgnoreRule marks unmatched lines whose normalized text matches as TypeIgnore.
type IgnoreRule struct {
	re *regexp.Regexp
}

// NewIgnoreRule compiles pattern.
func NewIgnoreRule(pattern string) (*IgnoreRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	return &IgnoreRule{re: re}, nil
}

func (r *IgnoreRule) AcceptSingleSide(side diff.Side, e *diff.Edit, texts diff.NormalizedText, fn diff.Normalizer) (diff.DiffType, bool) {
	if !r.re.MatchString(texts.Side(side)) {
		return nil, false
	}
	return diff.TypeIgnore, true
}
