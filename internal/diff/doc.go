// Package diff refines a raw line edit script into a semantically richer diff.
//
// Input: an ordered list of *Edit values (TypeInsert, TypeDelete, TypeEqual, and optionally TypeNormalize) produced by an LCS diff over two line lists. EditScript is one
// such producer; any other producer works as long as it numbers lines 1-based per side and emits edits in an order consistent with both line orders.
//
// Stages (each returns a new value and never mutates its input):
//   - HandleSubstitution pairs deleted and inserted lines that represent "the same line, modified" using registered SubstitutionType strategies, and tags single-sided
//     edits with registered RefactoringType strategies. Candidate pairs come from a token-bucket partition; crossing candidates are resolved with a patience sort and the
//     gaps between accepted pairs are matched recursively.
//   - HandleMovedLines finds lines deleted in one place and inserted in another (unique after normalization), and grows each move outward over adjacent equal lines.
//   - CombineToDiffBlocks groups consecutive edits into Blocks.
//   - HandleSplitLines reclassifies replacement blocks that only re-wrap the same content across a different number of lines.
//   - HandleBlankLines reclassifies units that only touch blank lines.
//
// New composes all stages:
//
//	d := diff.New(leftLines, rightLines, diff.Options{Normalize: diff.Whitespace, Substitutions: subs, DetectMoves: true, AllowReplacements: true})
//	for _, u := range d.Units() {
//		fmt.Println(u.Type().Symbol(), len(u.Edits()))
//	}
//
// Invariants of the result:
//   - Every input line (per side) is carried by exactly one output edit. A move carries both lines on both of its halves, but a TypeMoveLeft edit accounts for the left line
//     and a TypeMoveRight edit for the right line.
//   - Every TypeMoveLeft edit has exactly one TypeMoveRight counterpart with identical lines.
//   - Edits within a Block are pairwise consecutive per IsConsecutive.
//
// Normalization is only used to decide equivalence. Line text is never rewritten for display.
//
// Concurrency: the package has no global mutable state. A single Diff value is not safe for concurrent use; independent diffs may run in parallel.
package diff
