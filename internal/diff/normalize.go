package diff

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizedText is the output of a Normalizer for a pair of raw texts.
type NormalizedText struct {
	Left  string
	Right string
}

// HasEqualText reports whether both normalized sides are equal.
func (n NormalizedText) HasEqualText() bool {
	return n.Left == n.Right
}

// Side returns the normalized text of side.
func (n NormalizedText) Side(side Side) string {
	if side == Left {
		return n.Left
	}
	return n.Right
}

// Normalizer maps a left/right raw text pair to normalized forms used only for comparison. A Normalizer must be pure: results are memoized per edit for the duration of
// a matching pass.
type Normalizer func(left, right string) NormalizedText

// Identity performs no normalization.
func Identity(left, right string) NormalizedText {
	return NormalizedText{Left: left, Right: right}
}

// Whitespace trims both texts, collapses whitespace runs to a single space, and removes any space whose neighbours on both sides are non-word characters (so "f( )" and
// "f()" compare equal, while "a b" and "ab" do not).
func Whitespace(left, right string) NormalizedText {
	return NormalizedText{Left: normalizeWhitespace(left), Right: normalizeWhitespace(right)}
}

// Unicode applies NFC composition and then Whitespace.
func Unicode(left, right string) NormalizedText {
	return Whitespace(norm.NFC.String(left), norm.NFC.String(right))
}

// NormalizeSide normalizes a single side's text with fn by holding the other side to "". Single-sided edits are normalized this way so they compare consistently with
// paired edits. A nil fn is Identity.
func NormalizeSide(side Side, text string, fn Normalizer) string {
	if fn == nil {
		return text
	}
	if side == Left {
		return fn(text, "").Left
	}
	return fn("", text).Right
}

// normalizePair applies fn (nil means Identity).
func normalizePair(left, right string, fn Normalizer) NormalizedText {
	if fn == nil {
		return Identity(left, right)
	}
	return fn(left, right)
}

// NormalizerByName returns the built-in normalizer called name: "none" (or "identity" or ""), "whitespace", or "unicode".
func NormalizerByName(name string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "identity":
		return Identity, nil
	case "whitespace":
		return Whitespace, nil
	case "unicode":
		return Unicode, nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q (want none, whitespace, or unicode)", name)
	}
}

// normalizeWhitespace implements Whitespace for one text. It scans runes instead of using a regexp because the space-removal rule needs both neighbours, which RE2 cannot
// express without lookaround.
func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	collapsed := []rune(strings.Join(fields, " "))

	var b strings.Builder
	b.Grow(len(collapsed))
	for i, r := range collapsed {
		if r == ' ' && i > 0 && i+1 < len(collapsed) && !isWordRune(collapsed[i-1]) && !isWordRune(collapsed[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isWordRune matches the \w class used for tokens: ASCII letters, digits, and underscore, extended to Unicode letters and digits.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
