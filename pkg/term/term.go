package term

// Handle is a stable reference into a Heap's arena: the arena offset of a
// term's header. The zero Handle, Null, is a distinguished
// sentinel denoting absence (an empty Tree branch, a terminated iterator),
// never a real allocated term.
type Handle uint32

// Null denotes absence. It is distinct from the Nil scalar term: Nil is an
// allocated value in the universe, Null is the absence of a handle.
const Null Handle = 0

// Term is the universal heap-allocated value. Every term carries a
// precomputed hash and a Kind tag; the payload shape is variant-dependent
// and held behind an opaque field so no public API outside this package
// pattern-matches on Go types; callers use the Kind tag and the typed
// accessor methods below.
type Term struct {
	hash    uint32
	kind    Kind
	payload any
}

// Hash returns the term's cached 32-bit structural hash.
// Hashes are advisory: equal hashes are necessary but not sufficient for
// structural equality (see Equal).
func (t *Term) Hash() uint32 { return t.hash }

// Kind returns the term's variant tag.
func (t *Term) Kind() Kind { return t.kind }

// HashEntry is one exported (key, value) pair of a Hashmap's backing table,
// used by capability-driven iteration and by built-ins that enumerate a
// Hashmap's contents directly.
type HashEntry struct {
	Key, Value Handle
}

// ConditionDetail is the exported view of a Condition term's fields. Which
// fields are meaningful depends on Kind.
type ConditionDetail struct {
	Kind ConditionKind

	Payload Handle // Error

	EffectType    Handle // Custom
	EffectPayload Handle // Custom
	Token         Handle // Custom, optional (Null if absent)

	Fn   Handle // InvalidFunctionArgs
	Args Handle // InvalidFunctionArgs (a List handle)

	Target Handle // InvalidAccessor
	Key    Handle // InvalidAccessor

	Expected string // TypeError
	Actual   Handle // TypeError
}

// IteratorSpec is the exported view of an Iterator term's fields. Which
// fields are meaningful depends on Variant.
type IteratorSpec struct {
	Variant IterKind
	Src     Handle // primary source (or Once's sole value, or a Hashmap for the *Keys/*Values variants)
	Src2    Handle // secondary source (Chain/Zip's "b" side)
	Fn      Handle // mapping/predicate function (Map/Filter)
	N       int64  // Take/Skip count, or IndexedAccessor's index
	Start   int64  // Range start
	Count   int64  // Range count
}

// --- scalar and container payload types (unexported: external packages use
// the typed accessors below, never the payload field directly) ---

type listPayload struct{ items []Handle }
type recordPayload struct{ keys, values Handle }
type hashmapPayload struct{ table *hashTable }
type hashsetPayload struct{ m Handle }
type treePayload struct{ left, right Handle }
type constructorPayload struct{ keys Handle }
type lambdaPayload struct {
	arity    int
	variadic bool
	body     Handle
}
type partialPayload struct{ target, applied Handle }
type variablePayload struct{ scopeOffset int }
type applicationPayload struct{ target, args Handle }
type builtinPayload struct{ id int }
type effectPayload struct{ condition Handle }
type signalPayload struct{ conditions []Handle }
type pointerPayload struct{ target Handle }

// --- typed accessors ---

func (t *Term) Bool() bool       { return t.payload.(bool) }
func (t *Term) Int64() int64     { return t.payload.(int64) }
func (t *Term) Float64() float64 { return t.payload.(float64) }
func (t *Term) Bytes() []byte    { return t.payload.([]byte) }
func (t *Term) SymbolID() uint32 { return t.payload.(uint32) }

func (t *Term) ListItems() []Handle { return t.payload.(listPayload).items }

func (t *Term) RecordKeys() Handle   { return t.payload.(recordPayload).keys }
func (t *Term) RecordValues() Handle { return t.payload.(recordPayload).values }

func (t *Term) HashmapEntries() []HashEntry {
	raw := t.payload.(hashmapPayload).table.entries()
	out := make([]HashEntry, len(raw))
	for i, s := range raw {
		out[i] = HashEntry{Key: s.key, Value: s.value}
	}
	return out
}

func (t *Term) HashmapLen() int { return t.payload.(hashmapPayload).table.count }

func (t *Term) HashmapGet(h *Heap, key Handle) (Handle, bool) {
	return t.payload.(hashmapPayload).table.get(h, key)
}

func (t *Term) HashsetMap() Handle { return t.payload.(hashsetPayload).m }

func (t *Term) TreeLeft() Handle  { return t.payload.(treePayload).left }
func (t *Term) TreeRight() Handle { return t.payload.(treePayload).right }

func (t *Term) ConstructorKeys() Handle { return t.payload.(constructorPayload).keys }

func (t *Term) LambdaArity() int      { return t.payload.(lambdaPayload).arity }
func (t *Term) LambdaVariadic() bool  { return t.payload.(lambdaPayload).variadic }
func (t *Term) LambdaBody() Handle    { return t.payload.(lambdaPayload).body }

func (t *Term) PartialTarget() Handle  { return t.payload.(partialPayload).target }
func (t *Term) PartialApplied() Handle { return t.payload.(partialPayload).applied }

func (t *Term) VariableScopeOffset() int { return t.payload.(variablePayload).scopeOffset }

func (t *Term) ApplicationTarget() Handle { return t.payload.(applicationPayload).target }
func (t *Term) ApplicationArgs() Handle   { return t.payload.(applicationPayload).args }

func (t *Term) BuiltinID() int { return t.payload.(builtinPayload).id }

func (t *Term) EffectCondition() Handle { return t.payload.(effectPayload).condition }

func (t *Term) Condition() ConditionDetail { return t.payload.(ConditionDetail) }

func (t *Term) SignalConditions() []Handle { return t.payload.(signalPayload).conditions }

func (t *Term) Iterator() IteratorSpec { return t.payload.(IteratorSpec) }

func (t *Term) pointerTarget() Handle { return t.payload.(pointerPayload).target }
