// Package term implements the uniform, heap-allocated, content-hashed term
// universe: a single tagged-union value type with per-variant payload (no
// inheritance), a bump-allocated arena of stable handles, structural
// hashing and equality, and the two capability predicates built-in
// dispatch guards on. The package has no atomicity predicate.
//
// gitrdm-gokando's core.go Term family (Var/Atom/Pair behind one small
// interface) is restructured here into one Term struct with a Kind tag
// and an opaque payload, since Go has no algebraic sum types and an
// interface hierarchy would scatter the per-variant payload across
// concrete types instead of keeping one uniform handle. See DESIGN.md.
package term

// Kind discriminates a Term's variant, carried in every term's header.
type Kind uint8

const (
	Nil Kind = iota
	Boolean
	Int
	Float
	String
	Symbol
	List
	Record
	Hashmap
	Hashset
	Tree
	Constructor
	Lambda
	Partial
	Variable
	Application
	Builtin
	Effect
	Condition
	Signal
	Iterator

	// pointerKind is the internal redirect sentinel written by Heap.Redirect;
	// it is never produced by a public constructor and carries no semantic
	// weight of its own beyond forwarding reads.
	pointerKind
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "Nil"
	case Boolean:
		return "Boolean"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	case List:
		return "List"
	case Record:
		return "Record"
	case Hashmap:
		return "Hashmap"
	case Hashset:
		return "Hashset"
	case Tree:
		return "Tree"
	case Constructor:
		return "Constructor"
	case Lambda:
		return "Lambda"
	case Partial:
		return "Partial"
	case Variable:
		return "Variable"
	case Application:
		return "Application"
	case Builtin:
		return "Builtin"
	case Effect:
		return "Effect"
	case Condition:
		return "Condition"
	case Signal:
		return "Signal"
	case Iterator:
		return "Iterator"
	case pointerKind:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// ConditionKind discriminates the payload carried by a Condition term.
type ConditionKind uint8

const (
	CondError ConditionKind = iota
	CondPending
	CondCustom
	CondInvalidFunctionArgs
	CondInvalidAccessor
	CondTypeError
	CondInvalidPointer
)

func (k ConditionKind) String() string {
	switch k {
	case CondError:
		return "Error"
	case CondPending:
		return "Pending"
	case CondCustom:
		return "Custom"
	case CondInvalidFunctionArgs:
		return "InvalidFunctionArgs"
	case CondInvalidAccessor:
		return "InvalidAccessor"
	case CondTypeError:
		return "TypeError"
	case CondInvalidPointer:
		return "InvalidPointer"
	default:
		return "UnknownCondition"
	}
}

// IterKind discriminates an Iterator term's variant.
type IterKind uint8

const (
	IterOnce IterKind = iota
	IterRange
	IterEmpty
	IterMap
	IterFilter
	IterChain
	IterZip
	IterFlatten
	IterTake
	IterSkip
	IterEvaluate
	IterHashmapKeys
	IterHashmapValues
	IterIndexedAccessor
)

// Capability is a tag-derived predicate identity used by built-in dispatch
// guards.
type Capability int

const (
	CapApply Capability = iota
	CapIterate
)

// ImplementsApply reports whether a term kind implements the apply
// capability: Lambda, Partial, Builtin, Constructor.
func ImplementsApply(k Kind) bool {
	switch k {
	case Lambda, Partial, Builtin, Constructor:
		return true
	default:
		return false
	}
}

// ImplementsIterate reports whether a term kind implements the iterate
// capability: List, Record, Hashmap, Hashset, Tree, and every Iterator.
func ImplementsIterate(k Kind) bool {
	switch k {
	case List, Record, Hashmap, Hashset, Tree, Iterator:
		return true
	default:
		return false
	}
}
