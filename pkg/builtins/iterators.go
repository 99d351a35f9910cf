package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/iterproto"
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// intArgGuard matches when the argument at index is an Int.
func intArgGuard(index int) eval.Guard {
	return func(h *term.Heap, args []term.Handle) bool {
		if index >= len(args) {
			return false
		}
		t := h.Get(args[index])
		return t != nil && t.Kind() == term.Int
	}
}

// registerIterators wires the lazy combinators directly onto Iterator terms
// (Chain/Filter/Flatten/Map/Take/Skip/Zip, one IterKind each) and the
// strict combinators that must fully drain their source to produce an
// answer (Fold/Unzip/Iterate/Merge/Slice/Split/StartsWith/EndsWith/Replace/
// Intersperse).
func registerIterators(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "Map", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterMap, Src: args[0], Fn: args[1]}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Filter", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterFilter, Src: args[0], Fn: args[1]}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Chain", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterChain, Src: args[0], Src2: args[1]}), term.Null
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "Zip", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterZip, Src: args[0], Src2: args[1]}), term.Null
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "Flatten", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterFlatten, Src: args[0]}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Take", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: intArgGuard(1), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterTake, Src: args[0], N: h.Get(args[1]).Int64()}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Skip", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: intArgGuard(1), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewIterator(term.IteratorSpec{Variant: term.IterSkip, Src: args[0], N: h.Get(args[1]).Int64()}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Fold drains src strictly, left to right, applying fn(acc, value) at
	// each step; an acc that becomes a Signal aborts the fold immediately,
	// per the same strict-short-circuit rule Apply uses elsewhere.
	r.Register(&eval.Descriptor{
		Name: "Fold", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: func(h *term.Heap, args []term.Handle) bool {
			return len(args) == 3 && iterableGuard(h, args[:1])
		}, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			src, acc, fn := args[0], args[1], args[2]
			tok := &iterproto.Token{}
			var allDeps []term.Handle
			for {
				v, next, deps := iterproto.Next(ev, h, src, tok)
				if deps != term.Null {
					allDeps = append(allDeps, deps)
				}
				if v == term.Null {
					break
				}
				var applyDeps term.Handle
				acc, applyDeps = ev.Apply(h, fn, []term.Handle{acc, v})
				if applyDeps != term.Null {
					allDeps = append(allDeps, applyDeps)
				}
				if isSignal(h, acc) {
					return acc, signal.Union(h, allDeps...)
				}
				tok = next
			}
			return acc, signal.Union(h, allDeps...)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Unzip splits a List of pairs back into a pair of Lists.
	r.Register(&eval.Descriptor{
		Name: "Unzip", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			as := make([]term.Handle, 0, len(values))
			bs := make([]term.Handle, 0, len(values))
			for _, v := range values {
				pair := h.Get(v)
				if pair == nil || pair.Kind() != term.List || len(pair.ListItems()) != 2 {
					cond := h.NewTypeErrorCondition("List", v)
					return h.NewSignal([]term.Handle{cond}), deps
				}
				items := pair.ListItems()
				as = append(as, items[0])
				bs = append(bs, items[1])
			}
			return h.NewList([]term.Handle{h.NewList(as), h.NewList(bs)}), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Iterate returns a List of n values: seed followed by the successive
	// results fn(seed), fn(fn(seed)), and so on. n is bounded because the term
	// model has no native notion of an unrealized infinite sequence.
	r.Register(&eval.Descriptor{
		Name: "Iterate", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: intArgGuard(2), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			seed, fn, n := args[0], args[1], h.Get(args[2]).Int64()
			out := make([]term.Handle, 0, n)
			cur := seed
			var allDeps []term.Handle
			for i := int64(0); i < n; i++ {
				out = append(out, cur)
				if isSignal(h, cur) {
					break
				}
				var deps term.Handle
				cur, deps = ev.Apply(h, fn, []term.Handle{cur})
				if deps != term.Null {
					allDeps = append(allDeps, deps)
				}
			}
			return h.NewList(out), signal.Union(h, allDeps...)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Merge drains both sources and interleaves them according to cmp,
	// a two-argument predicate true when its first argument should sort
	// before its second (a strict merge of two already-sorted sequences).
	r.Register(&eval.Descriptor{
		Name: "Merge", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			as, abAborted, depsA := drainValues(ev, h, args[0])
			if abAborted != term.Null {
				return abAborted, depsA
			}
			bs, bbAborted, depsB := drainValues(ev, h, args[1])
			if bbAborted != term.Null {
				return bbAborted, signal.Union(h, depsA, depsB)
			}
			cmp := args[2]
			var allDeps []term.Handle
			if depsA != term.Null {
				allDeps = append(allDeps, depsA)
			}
			if depsB != term.Null {
				allDeps = append(allDeps, depsB)
			}
			out := make([]term.Handle, 0, len(as)+len(bs))
			i, j := 0, 0
			for i < len(as) && j < len(bs) {
				lt, applyDeps := ev.Apply(h, cmp, []term.Handle{as[i], bs[j]})
				if applyDeps != term.Null {
					allDeps = append(allDeps, applyDeps)
				}
				if isSignal(h, lt) {
					return lt, signal.Union(h, allDeps...)
				}
				if truthy(h, lt) {
					out = append(out, as[i])
					i++
				} else {
					out = append(out, bs[j])
					j++
				}
			}
			out = append(out, as[i:]...)
			out = append(out, bs[j:]...)
			return h.NewList(out), signal.Union(h, allDeps...)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Slice(src, start, end) composes Skip and Take: iterator combinators
	// are freely composable.
	r.Register(&eval.Descriptor{
		Name: "Slice", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: func(h *term.Heap, args []term.Handle) bool {
			return len(args) == 3 && iterableGuard(h, args[:1]) &&
				h.Get(args[1]).Kind() == term.Int && h.Get(args[2]).Kind() == term.Int
		}, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			start, end := h.Get(args[1]).Int64(), h.Get(args[2]).Int64()
			skipped := h.NewIterator(term.IteratorSpec{Variant: term.IterSkip, Src: args[0], N: start})
			count := end - start
			if count < 0 {
				count = 0
			}
			return h.NewIterator(term.IteratorSpec{Variant: term.IterTake, Src: skipped, N: count}), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Split(src, pred) drains src and returns [before, after], where before
	// holds every value up to (not including) the first element pred
	// accepts, and after holds the remainder including that element.
	r.Register(&eval.Descriptor{
		Name: "Split", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			pred := args[1]
			var allDeps []term.Handle
			if deps != term.Null {
				allDeps = append(allDeps, deps)
			}
			split := len(values)
			for i, v := range values {
				ok, applyDeps := ev.Apply(h, pred, []term.Handle{v})
				if applyDeps != term.Null {
					allDeps = append(allDeps, applyDeps)
				}
				if isSignal(h, ok) {
					return ok, signal.Union(h, allDeps...)
				}
				if truthy(h, ok) {
					split = i
					break
				}
			}
			before := h.NewList(values[:split])
			after := h.NewList(values[split:])
			return h.NewList([]term.Handle{before, after}), signal.Union(h, allDeps...)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "StartsWith", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			prefix, pAborted, pDeps := drainValues(ev, h, args[1])
			if pAborted != term.Null {
				return pAborted, signal.Union(h, deps, pDeps)
			}
			if len(prefix) > len(values) {
				return h.NewBoolean(false), signal.Union(h, deps, pDeps)
			}
			for i, p := range prefix {
				if !term.Equal(h, values[i], p) {
					return h.NewBoolean(false), signal.Union(h, deps, pDeps)
				}
			}
			return h.NewBoolean(true), signal.Union(h, deps, pDeps)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "EndsWith", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			suffix, sAborted, sDeps := drainValues(ev, h, args[1])
			if sAborted != term.Null {
				return sAborted, signal.Union(h, deps, sDeps)
			}
			if len(suffix) > len(values) {
				return h.NewBoolean(false), signal.Union(h, deps, sDeps)
			}
			offset := len(values) - len(suffix)
			for i, s := range suffix {
				if !term.Equal(h, values[offset+i], s) {
					return h.NewBoolean(false), signal.Union(h, deps, sDeps)
				}
			}
			return h.NewBoolean(true), signal.Union(h, deps, sDeps)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Replace drains src and returns a List with every element structurally
	// equal to old swapped for new.
	r.Register(&eval.Descriptor{
		Name: "Replace", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: func(h *term.Heap, args []term.Handle) bool {
			return len(args) == 3 && iterableGuard(h, args[:1])
		}, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			old, newV := args[1], args[2]
			out := make([]term.Handle, len(values))
			for i, v := range values {
				if term.Equal(h, v, old) {
					out[i] = newV
				} else {
					out[i] = v
				}
			}
			return h.NewList(out), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// Intersperse drains src and inserts sep between every pair of adjacent
	// elements.
	r.Register(&eval.Descriptor{
		Name: "Intersperse", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			sep := args[1]
			if len(values) == 0 {
				return h.NewList(nil), deps
			}
			out := make([]term.Handle, 0, len(values)*2-1)
			out = append(out, values[0])
			for _, v := range values[1:] {
				out = append(out, sep, v)
			}
			return h.NewList(out), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}
