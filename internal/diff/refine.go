package diff

import (
	"fmt"
	"sort"
	"time"

	"github.com/codalotl/diffrefine/internal/simplelogger"
)

// Options configure New.
type Options struct {
	Normalize     Normalizer // nil means Identity
	Substitutions []SubstitutionType
	Refactorings  []RefactoringType

	DetectMoves bool // run HandleMovedLines
	MovesFirst  bool // run HandleMovedLines before HandleSubstitution instead of after

	AllowReplacements bool // let CombineToDiffBlocks merge inserts, deletes, and substitutions into replacement blocks
}

// Diff is the refined diff of two line lists. The final edit list and units are computed once, on first use.
//
// A Diff is not safe for concurrent use.
type Diff struct {
	Left  []string
	Right []string

	opts  Options
	edits []*Edit
	units []DiffUnit
}

// New returns a Diff of left against right. Nothing is computed until Edits or Units is called.
func New(left, right []string, opts Options) *Diff {
	if opts.Normalize == nil {
		opts.Normalize = Identity
	}
	return &Diff{Left: left, Right: right, opts: opts}
}

// NewFromText is New over SplitLines(left) and SplitLines(right).
func NewFromText(left, right string, opts Options) *Diff {
	return New(SplitLines(left), SplitLines(right), opts)
}

// Edits returns the refined edit list: EditScript followed by HandleSubstitution and, if enabled, HandleMovedLines, in the configured order. The returned slice must
// not be modified.
//
// It panics if a stage breaks the coverage or move invariants (see package docs).
func (d *Diff) Edits() []*Edit {
	if d.edits != nil {
		return d.edits
	}

	start := time.Now()
	raw := EditScript(d.Left, d.Right, d.opts.Normalize)
	simplelogger.Log("diff: edit script: %d left, %d right lines -> %d edits (%s)", len(d.Left), len(d.Right), len(raw), time.Since(start))

	edits := raw
	substitute := func() {
		t := time.Now()
		edits = HandleSubstitution(edits, d.opts.Substitutions, d.opts.Refactorings, d.opts.Normalize)
		simplelogger.Log("diff: substitutions: %d edits (%s)", len(edits), time.Since(t))
	}
	moves := func() {
		if !d.opts.DetectMoves {
			return
		}
		t := time.Now()
		edits = HandleMovedLines(edits, d.opts.Normalize)
		simplelogger.Log("diff: moves: %d edits (%s)", len(edits), time.Since(t))
	}
	if d.opts.MovesFirst {
		moves()
		substitute()
	} else {
		substitute()
		moves()
	}

	if err := validateCoverage(raw, edits); err != nil {
		panic(fmt.Errorf("Diff.Edits: coverage check failed: %w", err))
	}
	if err := validateMoves(edits); err != nil {
		panic(fmt.Errorf("Diff.Edits: move check failed: %w", err))
	}

	if edits == nil {
		edits = []*Edit{}
	}
	d.edits = edits
	return d.edits
}

// Units returns the refined edits grouped into units: CombineToDiffBlocks followed by HandleSplitLines and HandleBlankLines. The returned slice must not be modified.
func (d *Diff) Units() []DiffUnit {
	if d.units != nil {
		return d.units
	}
	units := CombineToDiffBlocks(d.Edits(), d.opts.AllowReplacements)
	units = HandleSplitLines(units, d.opts.Normalize)
	units = HandleBlankLines(units, d.opts.Normalize)
	if err := validateUnits(units); err != nil {
		panic(fmt.Errorf("Diff.Units: block check failed: %w", err))
	}
	if units == nil {
		units = []DiffUnit{}
	}
	d.units = units
	return d.units
}

// HasChanges reports whether any unit is a real difference (not normalized-equal and not ignored).
func (d *Diff) HasChanges() bool {
	for _, u := range d.Units() {
		if !u.Type().ShouldTreatAsNormalizedEqual() && !u.ShouldIgnore() {
			return true
		}
	}
	return false
}

// TypeCount is the number of edits of one DiffType.
type TypeCount struct {
	Type  DiffType
	Edits int
}

// Stats counts the edits of each type across Units (after block reclassification), sorted by type name.
func (d *Diff) Stats() []TypeCount {
	counts := make(map[DiffType]int)
	for _, u := range d.Units() {
		for _, e := range u.Edits() {
			counts[e.Type()]++
		}
	}
	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: t, Edits: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Type.Name() < out[j].Type.Name()
	})
	return out
}
