package model

// NodeKind is the closed set of syntactic kinds the nesting analysis
// distinguishes. Everything that is not a control construct is KindOther.
type NodeKind int

const (
	// KindOther is any node that does not open a control-flow block.
	KindOther NodeKind = iota
	// KindConditional is an if statement.
	KindConditional
	// KindFor is a classic three-clause for loop.
	KindFor
	// KindForEach is an enhanced for loop.
	KindForEach
	// KindWhile is a while loop.
	KindWhile
	// KindDoWhile is a do-while loop.
	KindDoWhile
	// KindTry is the protected block of a try statement.
	KindTry
	// KindCatch is an exception handler of a try statement.
	KindCatch
)

var nodeKindNames = map[NodeKind]string{
	KindOther:       "other",
	KindConditional: "if",
	KindFor:         "for",
	KindForEach:     "for-each",
	KindWhile:       "while",
	KindDoWhile:     "do-while",
	KindTry:         "try",
	KindCatch:       "catch",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsControl reports whether the kind opens a control-flow block.
func (k NodeKind) IsControl() bool {
	return k != KindOther
}

// IsLoop reports whether the kind is one of the loop forms.
func (k NodeKind) IsLoop() bool {
	switch k {
	case KindFor, KindForEach, KindWhile, KindDoWhile:
		return true
	case KindOther, KindConditional, KindTry, KindCatch:
		return false
	}

	return false
}

// Node is a lowered syntax tree node. Handlers is only populated on KindTry
// nodes and holds the catch clauses, which sit beside the try block rather
// than inside it.
type Node struct {
	Kind     NodeKind
	Line     int
	Children []Node
	Handlers []Node
}

// Method is a method declared directly on a type.
type Method struct {
	Name string
	Line int
	Body Node
}

// Type is a parsed class, interface, enum or record declaration.
type Type struct {
	Name    string
	Methods []Method
}

// SourceFile is the parsed form of one Java file handed to the rule. It is
// never mutated after the parser builds it.
type SourceFile struct {
	TypeName    string
	RawText     string
	PrimaryType Type
}
