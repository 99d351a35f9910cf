package iterproto

import (
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

func nextIterator(ev Evaluator, h *term.Heap, t *term.Term, tok *Token) (term.Handle, *Token, term.Handle) {
	spec := t.Iterator()
	switch spec.Variant {
	case term.IterOnce:
		return nextOnce(spec, tok)
	case term.IterRange:
		return nextRange(h, spec, tok)
	case term.IterEmpty:
		return term.Null, tok, term.Null
	case term.IterMap:
		return nextMap(ev, h, spec, tok)
	case term.IterFilter:
		return nextFilter(ev, h, spec, tok)
	case term.IterChain:
		return nextChain(ev, h, spec, tok)
	case term.IterZip:
		return nextZip(ev, h, spec, tok)
	case term.IterFlatten:
		return nextFlatten(ev, h, spec, tok)
	case term.IterTake:
		return nextTake(ev, h, spec, tok)
	case term.IterSkip:
		return nextSkip(ev, h, spec, tok)
	case term.IterEvaluate:
		return nextEvaluate(ev, h, spec, tok)
	case term.IterHashmapKeys:
		return nextHashmapKeys(h, spec, tok)
	case term.IterHashmapValues:
		return nextHashmapValues(h, spec, tok)
	case term.IterIndexedAccessor:
		return nextIndexedAccessor(ev, h, spec, tok)
	default:
		return term.Null, tok, term.Null
	}
}

// nextOnce yields Src exactly once (Once).
func nextOnce(spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	if tok.Cursor != 0 {
		return term.Null, tok, term.Null
	}
	return spec.Src, &Token{Cursor: 1}, term.Null
}

// nextRange yields Count consecutive integers starting at Start.
func nextRange(h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	if tok.Cursor >= spec.Count {
		return term.Null, tok, term.Null
	}
	v := h.NewInt(spec.Start + tok.Cursor)
	return v, &Token{Cursor: tok.Cursor + 1}, term.Null
}

// nextMap applies Fn to each value produced by Src (Map).
func nextMap(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	inner := tok.Inner
	if inner == nil {
		inner = &Token{}
	}
	v, nextInner, deps := Next(ev, h, spec.Src, inner)
	if v == term.Null {
		return term.Null, &Token{Inner: nextInner}, deps
	}
	mapped, applyDeps := ev.Apply(h, spec.Fn, []term.Handle{v})
	return mapped, &Token{Inner: nextInner}, signal.Union(h, deps, applyDeps)
}

// nextFilter advances Src until Fn accepts a value or Src is exhausted
// (Filter). A Signal returned by Fn is yielded as the next value, not
// treated as a rejection.
func nextFilter(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	inner := tok.Inner
	if inner == nil {
		inner = &Token{}
	}
	var allDeps []term.Handle
	for {
		v, nextInner, deps := Next(ev, h, spec.Src, inner)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if v == term.Null {
			return term.Null, &Token{Inner: nextInner}, signal.Union(h, allDeps...)
		}
		keep, applyDeps := ev.Apply(h, spec.Fn, []term.Handle{v})
		if applyDeps != term.Null {
			allDeps = append(allDeps, applyDeps)
		}
		inner = nextInner
		if isSignal(h, keep) {
			return keep, &Token{Inner: inner}, signal.Union(h, allDeps...)
		}
		if truthy(h, keep) {
			return v, &Token{Inner: inner}, signal.Union(h, allDeps...)
		}
	}
}

// nextChain drains Src fully, then Src2 (Chain).
func nextChain(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	inner, inner2 := tok.Inner, tok.Inner2
	if inner == nil {
		inner = &Token{}
	}
	if inner2 == nil {
		inner2 = &Token{}
	}
	if !tok.Side {
		v, nextInner, deps := Next(ev, h, spec.Src, inner)
		if v != term.Null {
			return v, &Token{Side: false, Inner: nextInner, Inner2: inner2}, deps
		}
		// Src exhausted, fall through to Src2 on the same call.
		return nextChainSecond(ev, h, spec, inner2)
	}
	return nextChainSecond(ev, h, spec, inner2)
}

func nextChainSecond(ev Evaluator, h *term.Heap, spec term.IteratorSpec, inner2 *Token) (term.Handle, *Token, term.Handle) {
	v, nextInner2, deps := Next(ev, h, spec.Src2, inner2)
	return v, &Token{Side: true, Inner2: nextInner2}, deps
}

// nextZip pairs corresponding elements of Src and Src2, stopping at the
// shorter source (Zip).
func nextZip(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	inner, inner2 := tok.Inner, tok.Inner2
	if inner == nil {
		inner = &Token{}
	}
	if inner2 == nil {
		inner2 = &Token{}
	}
	va, nextInner, depsA := Next(ev, h, spec.Src, inner)
	vb, nextInner2, depsB := Next(ev, h, spec.Src2, inner2)
	deps := signal.Union(h, depsA, depsB)
	if va == term.Null || vb == term.Null {
		return term.Null, &Token{Inner: nextInner, Inner2: nextInner2}, deps
	}
	pair := h.NewList([]term.Handle{va, vb})
	return pair, &Token{Inner: nextInner, Inner2: nextInner2}, deps
}

// nextFlatten yields every element of every iterable Src produces, in order
// (Flatten).
func nextFlatten(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	outer := tok.Inner
	if outer == nil {
		outer = &Token{}
	}
	cur := tok.CurSrc
	curTok := tok.Inner2
	var allDeps []term.Handle
	for {
		if cur != term.Null {
			v, nextCurTok, deps := Next(ev, h, cur, curTok)
			if deps != term.Null {
				allDeps = append(allDeps, deps)
			}
			if v != term.Null {
				return v, &Token{Inner: outer, Inner2: nextCurTok, CurSrc: cur}, signal.Union(h, allDeps...)
			}
		}
		nextOuterVal, nextOuter, deps := Next(ev, h, spec.Src, outer)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if nextOuterVal == term.Null {
			return term.Null, &Token{Inner: nextOuter}, signal.Union(h, allDeps...)
		}
		outer = nextOuter
		cur = nextOuterVal
		curTok = &Token{}
	}
}

// nextTake yields at most N values from Src (Take).
func nextTake(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	if tok.Cursor >= spec.N {
		return term.Null, tok, term.Null
	}
	inner := tok.Inner
	if inner == nil {
		inner = &Token{}
	}
	v, nextInner, deps := Next(ev, h, spec.Src, inner)
	if v == term.Null {
		return term.Null, &Token{Cursor: spec.N, Inner: nextInner}, deps
	}
	return v, &Token{Cursor: tok.Cursor + 1, Inner: nextInner}, deps
}

// nextSkip discards the first N values from Src, then passes the rest
// through unchanged (Skip).
func nextSkip(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	inner := tok.Inner
	if inner == nil {
		inner = &Token{}
	}
	skipped := tok.Cursor
	var allDeps []term.Handle
	for skipped < spec.N {
		_, nextInner, deps := Next(ev, h, spec.Src, inner)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		inner = nextInner
		skipped++
	}
	v, nextInner, deps := Next(ev, h, spec.Src, inner)
	if deps != term.Null {
		allDeps = append(allDeps, deps)
	}
	return v, &Token{Cursor: skipped, Inner: nextInner}, signal.Union(h, allDeps...)
}

// nextEvaluate evaluates Src exactly once and yields its normal form
// (Evaluate: a lazily-forced single value).
func nextEvaluate(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	if tok.Cursor != 0 {
		return term.Null, tok, term.Null
	}
	v, deps := ev.Eval(h, nil, spec.Src)
	return v, &Token{Cursor: 1}, deps
}

// nextHashmapKeys yields a Hashmap's keys (HashmapKeys).
func nextHashmapKeys(h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	m := h.Get(spec.Src)
	entries := m.HashmapEntries()
	if tok.Cursor >= int64(len(entries)) {
		return term.Null, tok, term.Null
	}
	return entries[tok.Cursor].Key, &Token{Cursor: tok.Cursor + 1}, term.Null
}

// nextHashmapValues yields a Hashmap's values (HashmapValues).
func nextHashmapValues(h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	m := h.Get(spec.Src)
	entries := m.HashmapEntries()
	if tok.Cursor >= int64(len(entries)) {
		return term.Null, tok, term.Null
	}
	return entries[tok.Cursor].Value, &Token{Cursor: tok.Cursor + 1}, term.Null
}

// nextIndexedAccessor yields the single element of Src at position N, then
// is exhausted.
func nextIndexedAccessor(ev Evaluator, h *term.Heap, spec term.IteratorSpec, tok *Token) (term.Handle, *Token, term.Handle) {
	if tok.Cursor != 0 {
		return term.Null, tok, term.Null
	}
	inner := &Token{}
	var allDeps []term.Handle
	var v term.Handle
	for i := int64(0); i <= spec.N; i++ {
		var deps term.Handle
		v, inner, deps = Next(ev, h, spec.Src, inner)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if v == term.Null {
			return term.Null, &Token{Cursor: 1}, signal.Union(h, allDeps...)
		}
	}
	return v, &Token{Cursor: 1}, signal.Union(h, allDeps...)
}
