package term

import "github.com/gitrdm/goflex/pkg/hasher"

// Tag values mixed first into every term's hash, fixing the hash space per
// kind. These intentionally mirror the Kind enum order but
// are declared independently so that reordering Kind never silently changes
// the hash of every existing term.
const (
	tagNil uint8 = iota
	tagBoolean
	tagInt
	tagFloat
	tagString
	tagSymbol
	tagList
	tagRecord
	tagHashmap
	tagHashset
	tagTree
	tagConstructor
	tagLambda
	tagPartial
	tagVariable
	tagApplication
	tagBuiltin
	tagEffect
	tagCondition
	tagSignal
	tagIterator
)

var theNil = &Term{kind: Nil, hash: hasher.New().WriteTag(tagNil).Sum32()}

// NewNil allocates (or, conceptually, returns) the unique Nil term. Nil is
// atomic and every Nil is structurally equal to every other.
func (h *Heap) NewNil() Handle { return h.alloc(theNil) }

func (h *Heap) NewBoolean(v bool) Handle {
	var b uint8
	if v {
		b = 1
	}
	return h.alloc(&Term{kind: Boolean, hash: hasher.New().WriteTag(tagBoolean).WriteUint64(uint64(b)).Sum32(), payload: v})
}

func (h *Heap) NewInt(v int64) Handle {
	return h.alloc(&Term{kind: Int, hash: hasher.New().WriteTag(tagInt).WriteInt64(v).Sum32(), payload: v})
}

func (h *Heap) NewFloat(v float64) Handle {
	return h.alloc(&Term{kind: Float, hash: hasher.New().WriteTag(tagFloat).WriteFloat64(v).Sum32(), payload: v})
}

func (h *Heap) NewString(v string) Handle {
	b := []byte(v)
	return h.alloc(&Term{kind: String, hash: hasher.New().WriteTag(tagString).WriteBytes(b).Sum32(), payload: b})
}

// NewSymbol allocates a Symbol term identified by a small interned id; the
// eval package owns the name<->id interning table.
func (h *Heap) NewSymbol(id uint32) Handle {
	return h.alloc(&Term{kind: Symbol, hash: hasher.New().WriteTag(tagSymbol).WriteUint64(uint64(id)).Sum32(), payload: id})
}

// NewList allocates a List from an ordered slice of child handles. Order is
// significant to both equality and hash.
func (h *Heap) NewList(items []Handle) Handle {
	hh := hasher.New().WriteTag(tagList)
	for _, it := range items {
		hh.WriteHash32(h.hashOf(it))
	}
	cp := make([]Handle, len(items))
	copy(cp, items)
	return h.alloc(&Term{kind: List, hash: hh.Sum32(), payload: listPayload{items: cp}})
}

// NewRecord allocates a Record from parallel keys/values Lists: an ordered
// List of keys paired with an ordered List of values.
func (h *Heap) NewRecord(keys, values Handle) Handle {
	hh := hasher.New().WriteTag(tagRecord).WriteHash32(h.hashOf(keys)).WriteHash32(h.hashOf(values))
	return h.alloc(&Term{kind: Record, hash: hh.Sum32(), payload: recordPayload{keys: keys, values: values}})
}

// NewHashmap allocates an empty Hashmap. Populated maps are built by
// successive functional Set calls (see Set below), never by direct mutation.
func (h *Heap) NewHashmap() Handle {
	return h.alloc(&Term{kind: Hashmap, hash: hashHashmap(h, nil), payload: hashmapPayload{table: newHashTable()}})
}

// Set returns a new Hashmap term with key bound to value, leaving the
// receiver's term unmodified (a functional update).
func (t *Term) Set(h *Heap, key, value Handle) Handle {
	tbl := t.payload.(hashmapPayload).table.clone()
	tbl.put(h, key, value)
	return h.alloc(&Term{kind: Hashmap, hash: hashHashmap(h, tbl.entries()), payload: hashmapPayload{table: tbl}})
}

func hashHashmap(h *Heap, entries []hashSlot) uint32 {
	var acc uint64
	for _, e := range entries {
		pair := hasher.New().WriteHash32(h.hashOf(e.key)).WriteHash32(h.hashOf(e.value)).Sum64()
		acc ^= pair
	}
	return hasher.New().WriteTag(tagHashmap).WriteUint64(acc).Sum32()
}

// sharedUnit is the placeholder value every Hashset entry maps to; Hashset
// is implemented as a Hashmap of (element -> sharedUnit) pairs. Cached per
// heap, since a Handle is only meaningful within the arena that produced it.
func (h *Heap) sharedUnit() Handle {
	if h.unit == Null {
		h.unit = h.NewNil()
	}
	return h.unit
}

func (h *Heap) NewHashset() Handle {
	m := h.NewHashmap()
	return h.alloc(&Term{kind: Hashset, hash: hashHashset(h, m), payload: hashsetPayload{m: m}})
}

// Add returns a new Hashset with elem inserted, leaving the receiver intact.
func (t *Term) Add(h *Heap, elem Handle) Handle {
	m := h.Get(t.HashsetMap())
	newM := m.Set(h, elem, h.sharedUnit())
	return h.alloc(&Term{kind: Hashset, hash: hashHashset(h, newM), payload: hashsetPayload{m: newM}})
}

func hashHashset(h *Heap, m Handle) uint32 {
	return hasher.New().WriteTag(tagHashset).WriteHash32(h.hashOf(m)).Sum32()
}

// NewTree allocates a Tree node with the given left and right branches;
// either branch may be Null.
func (h *Heap) NewTree(left, right Handle) Handle {
	hh := hasher.New().WriteTag(tagTree).WriteHash32(h.hashOf(left)).WriteHash32(h.hashOf(right))
	return h.alloc(&Term{kind: Tree, hash: hh.Sum32(), payload: treePayload{left: left, right: right}})
}

// NewConstructor allocates a named-tag constructor function term; keys is a
// List of field-name Symbol handles fixing the arity and field order that
// Apply will bind positional arguments to.
func (h *Heap) NewConstructor(keys Handle) Handle {
	hh := hasher.New().WriteTag(tagConstructor).WriteHash32(h.hashOf(keys))
	return h.alloc(&Term{kind: Constructor, hash: hh.Sum32(), payload: constructorPayload{keys: keys}})
}

func (h *Heap) NewLambda(arity int, variadic bool, body Handle) Handle {
	var v uint8
	if variadic {
		v = 1
	}
	hh := hasher.New().WriteTag(tagLambda).WriteUint64(uint64(arity)).WriteUint64(uint64(v)).WriteHash32(h.hashOf(body))
	return h.alloc(&Term{kind: Lambda, hash: hh.Sum32(), payload: lambdaPayload{arity: arity, variadic: variadic, body: body}})
}

// NewPartial allocates a Partial application of target to the already
// supplied args List.
func (h *Heap) NewPartial(target, applied Handle) Handle {
	hh := hasher.New().WriteTag(tagPartial).WriteHash32(h.hashOf(target)).WriteHash32(h.hashOf(applied))
	return h.alloc(&Term{kind: Partial, hash: hh.Sum32(), payload: partialPayload{target: target, applied: applied}})
}

// NewVariable allocates a De Bruijn-indexed variable reference; scopeOffset
// 0 denotes the innermost enclosing binder.
func (h *Heap) NewVariable(scopeOffset int) Handle {
	hh := hasher.New().WriteTag(tagVariable).WriteUint64(uint64(scopeOffset))
	return h.alloc(&Term{kind: Variable, hash: hh.Sum32(), payload: variablePayload{scopeOffset: scopeOffset}})
}

func (h *Heap) NewApplication(target, args Handle) Handle {
	hh := hasher.New().WriteTag(tagApplication).WriteHash32(h.hashOf(target)).WriteHash32(h.hashOf(args))
	return h.alloc(&Term{kind: Application, hash: hh.Sum32(), payload: applicationPayload{target: target, args: args}})
}

func (h *Heap) NewBuiltin(id int) Handle {
	hh := hasher.New().WriteTag(tagBuiltin).WriteUint64(uint64(id))
	return h.alloc(&Term{kind: Builtin, hash: hh.Sum32(), payload: builtinPayload{id: id}})
}

func (h *Heap) NewEffect(condition Handle) Handle {
	hh := hasher.New().WriteTag(tagEffect).WriteHash32(h.hashOf(condition))
	return h.alloc(&Term{kind: Effect, hash: hh.Sum32(), payload: effectPayload{condition: condition}})
}
