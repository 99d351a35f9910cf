package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/iterproto"
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// drainValues pulls every element out of src via the iterator protocol,
// unioning dependency signals as it goes ("collectors consume
// iterators strictly"). aborted is non-Null, short-circuiting the caller,
// only if an element itself evaluated to a Signal term.
func drainValues(ev *eval.Evaluator, h *term.Heap, src term.Handle) (values []term.Handle, aborted term.Handle, deps term.Handle) {
	vals, d := iterproto.Drain(ev, h, src)
	var aborts []term.Handle
	for _, v := range vals {
		if isSignal(h, v) {
			aborts = append(aborts, v)
		}
	}
	if len(aborts) > 0 {
		return nil, signal.Union(h, aborts...), d
	}
	return vals, term.Null, d
}

func registerCollectors(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "CollectList", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			return h.NewList(values), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// CollectRecord consumes flattened key/value pairs; a trailing unpaired
	// key is dropped.
	r.Register(&eval.Descriptor{
		Name: "CollectRecord", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			n := len(values) / 2
			keys := make([]term.Handle, n)
			vals := make([]term.Handle, n)
			for i := 0; i < n; i++ {
				keys[i] = values[2*i]
				vals[i] = values[2*i+1]
			}
			return h.NewRecord(h.NewList(keys), h.NewList(vals)), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// CollectHashmap requires pair elements; every non-pair element emits
	// its own TypeError:List:<value>, unioned into one Signal once the
	// whole iterable has been scanned.
	r.Register(&eval.Descriptor{
		Name: "CollectHashmap", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			m := h.NewHashmap()
			var badConditions []term.Handle
			for _, v := range values {
				pair := h.Get(v)
				if pair == nil || pair.Kind() != term.List || len(pair.ListItems()) != 2 {
					badConditions = append(badConditions, h.NewTypeErrorCondition("List", v))
					continue
				}
				items := pair.ListItems()
				m = h.Get(m).Set(h, items[0], items[1])
			}
			if len(badConditions) > 0 {
				return h.NewSignal(badConditions), deps
			}
			return m, deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "CollectHashset", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			s := h.NewHashset()
			for _, v := range values {
				s = h.Get(s).Add(h, v)
			}
			return s, deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "CollectString", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			var out []byte
			for _, v := range values {
				t := h.Get(v)
				if t == nil || t.Kind() != term.String {
					cond := h.NewTypeErrorCondition("String", v)
					return h.NewSignal([]term.Handle{cond}), deps
				}
				out = append(out, t.Bytes()...)
			}
			return h.NewString(string(out)), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// CollectTree folds the drained elements into a balanced binary Tree
	// whose leaves are the elements and whose internal nodes are pure
	// Tree(left,right) pairs, following gitrdm-gokando's among.go/diffn.go
	// pairwise-merge recursion (see DESIGN.md).
	r.Register(&eval.Descriptor{
		Name: "CollectTree", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[0])
			if aborted != term.Null {
				return aborted, deps
			}
			return buildBalancedTree(h, values), deps
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "CollectConstructor", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: func(h *term.Heap, args []term.Handle) bool {
			return len(args) == 2 && h.Get(args[0]).Kind() == term.Constructor
		}, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			values, aborted, deps := drainValues(ev, h, args[1])
			if aborted != term.Null {
				return aborted, deps
			}
			result, applyDeps := ev.Apply(h, args[0], values)
			return result, signal.Union(h, deps, applyDeps)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	// CollectSignal gathers conditions from an iterable whose elements are
	// either bare Condition terms or nested Signals into one Signal.
	r.Register(&eval.Descriptor{
		Name: "CollectSignal", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: iterableGuard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			vals, d := iterproto.Drain(ev, h, args[0])
			var conditions []term.Handle
			for _, v := range vals {
				t := h.Get(v)
				if t == nil {
					continue
				}
				switch t.Kind() {
				case term.Signal:
					conditions = append(conditions, t.SignalConditions()...)
				case term.Condition:
					conditions = append(conditions, v)
				}
			}
			return h.NewSignal(conditions), d
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}

func iterableGuard(h *term.Heap, args []term.Handle) bool {
	if len(args) < 1 {
		return false
	}
	t := h.Get(args[0])
	return t != nil && term.ImplementsIterate(t.Kind())
}

// buildBalancedTree recursively pairs adjacent elements into Tree nodes
// until one root remains, giving O(log n) depth.
func buildBalancedTree(h *term.Heap, values []term.Handle) term.Handle {
	if len(values) == 0 {
		return h.NewTree(term.Null, term.Null)
	}
	if len(values) == 1 {
		return h.NewTree(values[0], term.Null)
	}
	level := values
	for len(level) > 1 {
		next := make([]term.Handle, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, h.NewTree(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}
