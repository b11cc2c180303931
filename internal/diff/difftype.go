package diff

// DiffType classifies an Edit or Block.
//
// Implementations must be comparable: two units have the same type iff their DiffTypes are ==. The facets drive the algorithms; Name and Symbol are for display.
type DiffType interface {
	Name() string
	Symbol() string // single display symbol (ex: "+", "-", "~")

	IsMove() bool                       // one half of a moved line, or a block of them
	IsSubstitution() bool               // a delete/insert pair judged to be the same line, modified
	ShouldTreatAsNormalizedEqual() bool // equal, possibly after normalization
	ShouldIgnore() bool                 // not a real difference for reporting purposes
}

type basicType struct {
	name         string
	symbol       string
	move         bool
	substitution bool
	normEqual    bool
	ignore       bool
}

func (t basicType) Name() string                       { return t.name }
func (t basicType) Symbol() string                     { return t.symbol }
func (t basicType) IsMove() bool                       { return t.move }
func (t basicType) IsSubstitution() bool               { return t.substitution }
func (t basicType) ShouldTreatAsNormalizedEqual() bool { return t.normEqual }
func (t basicType) ShouldIgnore() bool                 { return t.ignore }
func (t basicType) String() string                     { return t.name }

// Built-in diff types.
var (
	TypeInsert           DiffType = basicType{name: "insert", symbol: "+"}
	TypeDelete           DiffType = basicType{name: "delete", symbol: "-"}
	TypeEqual            DiffType = basicType{name: "equal", symbol: " ", normEqual: true}
	TypeNormalize        DiffType = basicType{name: "normalize", symbol: "~", normEqual: true}
	TypeIgnore           DiffType = basicType{name: "ignore", symbol: "#", ignore: true}
	TypeMoveLeft         DiffType = basicType{name: "move-left", symbol: "<", move: true}
	TypeMoveRight        DiffType = basicType{name: "move-right", symbol: ">", move: true}
	TypeMoveBlock        DiffType = basicType{name: "move-block", symbol: "M", move: true}
	TypeSubstitute       DiffType = basicType{name: "substitute", symbol: "*", substitution: true}
	TypeReplacementBlock DiffType = basicType{name: "replacement", symbol: "R", substitution: true}
)

// RefactorType tags an edit matched by a refactoring or rule-based substitution strategy. Kind and Detail are reporting metadata only.
//
// A RefactorType with Substitution set pairs a left and a right line (it is produced by a SubstitutionType); otherwise it tags a single-sided edit.
type RefactorType struct {
	Kind         string // ex: "rename", "assert-style"
	Detail       string // ex: the rule pattern that matched
	Substitution bool
	Ignored      bool
}

func (t RefactorType) Name() string {
	if t.Detail == "" {
		return "refactor(" + t.Kind + ")"
	}
	return "refactor(" + t.Kind + ": " + t.Detail + ")"
}

func (t RefactorType) Symbol() string {
	if t.Substitution {
		return "%"
	}
	return "r"
}

func (t RefactorType) IsMove() bool                       { return false }
func (t RefactorType) IsSubstitution() bool               { return t.Substitution }
func (t RefactorType) ShouldTreatAsNormalizedEqual() bool { return false }
func (t RefactorType) ShouldIgnore() bool                 { return t.Ignored }
func (t RefactorType) String() string                     { return t.Name() }

// isReplacementEligible reports whether units of type t may be merged into a TypeReplacementBlock.
func isReplacementEligible(t DiffType) bool {
	return t == TypeInsert || t == TypeDelete || t.IsSubstitution()
}
