package term

// Equal reports whether a and b are structurally equal.
// The cached hashes are consulted first as a fast rejection: unequal hashes
// prove inequality, but equal hashes only ever license a full structural
// comparison; collisions are possible and never trusted on their own (see
// DESIGN.md's Open Question decision on hash collision resistance).
func Equal(h *Heap, a, b Handle) bool {
	if a == b {
		return true
	}
	if a == Null || b == Null {
		return false
	}
	ta, tb := h.Get(a), h.Get(b)
	if ta.hash != tb.hash {
		return false
	}
	if ta.kind != tb.kind {
		return false
	}
	switch ta.kind {
	case Nil:
		return true
	case Boolean:
		return ta.Bool() == tb.Bool()
	case Int:
		return ta.Int64() == tb.Int64()
	case Float:
		return ta.Float64() == tb.Float64()
	case String:
		return string(ta.Bytes()) == string(tb.Bytes())
	case Symbol:
		return ta.SymbolID() == tb.SymbolID()
	case List:
		return equalList(h, ta, tb)
	case Record:
		return Equal(h, ta.RecordKeys(), tb.RecordKeys()) && Equal(h, ta.RecordValues(), tb.RecordValues())
	case Hashmap:
		return equalHashmap(h, ta, tb)
	case Hashset:
		return Equal(h, ta.HashsetMap(), tb.HashsetMap())
	case Tree:
		return Equal(h, ta.TreeLeft(), tb.TreeLeft()) && Equal(h, ta.TreeRight(), tb.TreeRight())
	case Constructor:
		return Equal(h, ta.ConstructorKeys(), tb.ConstructorKeys())
	case Lambda:
		la, lb := ta.payload.(lambdaPayload), tb.payload.(lambdaPayload)
		return la.arity == lb.arity && la.variadic == lb.variadic && Equal(h, la.body, lb.body)
	case Partial:
		return Equal(h, ta.PartialTarget(), tb.PartialTarget()) && Equal(h, ta.PartialApplied(), tb.PartialApplied())
	case Variable:
		return ta.VariableScopeOffset() == tb.VariableScopeOffset()
	case Application:
		return Equal(h, ta.ApplicationTarget(), tb.ApplicationTarget()) && Equal(h, ta.ApplicationArgs(), tb.ApplicationArgs())
	case Builtin:
		return ta.BuiltinID() == tb.BuiltinID()
	case Effect:
		return Equal(h, ta.EffectCondition(), tb.EffectCondition())
	case Condition:
		return equalCondition(h, ta.Condition(), tb.Condition())
	case Signal:
		return equalSignal(h, ta, tb)
	case Iterator:
		return equalIterator(h, ta.Iterator(), tb.Iterator())
	default:
		return false
	}
}

func equalList(h *Heap, ta, tb *Term) bool {
	ia, ib := ta.ListItems(), tb.ListItems()
	if len(ia) != len(ib) {
		return false
	}
	for i := range ia {
		if !Equal(h, ia[i], ib[i]) {
			return false
		}
	}
	return true
}

// equalHashmap compares two maps as sets of entries, independent of slot
// order (Hashmap has no defined iteration order; see its commutative
// hashing in construct.go's hashHashmap).
func equalHashmap(h *Heap, ta, tb *Term) bool {
	if ta.HashmapLen() != tb.HashmapLen() {
		return false
	}
	for _, e := range ta.HashmapEntries() {
		v, ok := tb.HashmapGet(h, e.Key)
		if !ok || !Equal(h, e.Value, v) {
			return false
		}
	}
	return true
}

func equalCondition(h *Heap, a, b ConditionDetail) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case CondError:
		return Equal(h, a.Payload, b.Payload)
	case CondPending:
		return true
	case CondCustom:
		return Equal(h, a.EffectType, b.EffectType) && Equal(h, a.EffectPayload, b.EffectPayload) && Equal(h, a.Token, b.Token)
	case CondInvalidFunctionArgs:
		return Equal(h, a.Fn, b.Fn) && Equal(h, a.Args, b.Args)
	case CondInvalidAccessor:
		return Equal(h, a.Target, b.Target) && Equal(h, a.Key, b.Key)
	case CondTypeError:
		return a.Expected == b.Expected && Equal(h, a.Actual, b.Actual)
	case CondInvalidPointer:
		return true
	default:
		return false
	}
}

// equalSignal compares the two signals as sets of conditions, independent of
// accumulation order (Union is commutative and idempotent).
func equalSignal(h *Heap, ta, tb *Term) bool {
	ca, cb := ta.SignalConditions(), tb.SignalConditions()
	if len(ca) != len(cb) {
		return false
	}
	used := make([]bool, len(cb))
	for _, x := range ca {
		found := false
		for i, y := range cb {
			if used[i] {
				continue
			}
			if Equal(h, x, y) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalIterator(h *Heap, a, b IteratorSpec) bool {
	if a.Variant != b.Variant || a.N != b.N || a.Start != b.Start || a.Count != b.Count {
		return false
	}
	return Equal(h, a.Src, b.Src) && Equal(h, a.Src2, b.Src2) && Equal(h, a.Fn, b.Fn)
}
