package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

func truthy(h *term.Heap, v term.Handle) bool {
	t := h.Get(v)
	if t == nil {
		return false
	}
	switch t.Kind() {
	case term.Nil:
		return false
	case term.Boolean:
		return t.Bool()
	default:
		return true
	}
}

func registerLogic(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "Eq", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewBoolean(args[0] == args[1]), term.Null
		}}},
	})
	r.Register(&eval.Descriptor{
		Name: "Equal", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewBoolean(term.Equal(h, args[0], args[1])), term.Null
		}}},
	})

	registerOrdering(r, "Gt", func(c int) bool { return c > 0 })
	registerOrdering(r, "Gte", func(c int) bool { return c >= 0 })
	registerOrdering(r, "Lt", func(c int) bool { return c < 0 })
	registerOrdering(r, "Lte", func(c int) bool { return c <= 0 })

	r.Register(&eval.Descriptor{
		Name: "Not", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewBoolean(!truthy(h, args[0])), term.Null
		}}},
	})

	// And is strict-in-first, lazy-in-second: a falsy first argument
	// short-circuits; a truthy one evaluates the unevaluated second
	// argument expression in the caller's scope and returns its value. The
	// second argument is not applied as a thunk.
	andID := r.Register(&eval.Descriptor{
		Name: "And", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeLazy},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			if !truthy(h, args[0]) {
				return args[0], term.Null
			}
			return ev.Eval(h, scope, args[1])
		}}},
	})
	_ = andID
	r.Register(&eval.Descriptor{
		Name: "Or", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeLazy},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			if truthy(h, args[0]) {
				return args[0], term.Null
			}
			return ev.Eval(h, scope, args[1])
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "If", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeLazy, eval.ModeLazy},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			if truthy(h, args[0]) {
				return ev.Eval(h, scope, args[1])
			}
			return ev.Eval(h, scope, args[2])
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "IfError", Arity: 2, Modes: []eval.Mode{eval.ModeEager, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: ifErrorImpl}},
	})
	r.Register(&eval.Descriptor{
		Name: "IfPending", Arity: 2, Modes: []eval.Mode{eval.ModeEager, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: ifPendingImpl}},
	})

	r.Register(&eval.Descriptor{
		Name: "Sequence", Arity: 1, Variadic: true, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[0]).ListItems()
			if len(items) == 0 {
				return h.NewNil(), term.Null
			}
			return items[len(items)-1], term.Null
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "Identity", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return args[0], term.Null
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "Raise", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewSignal([]term.Handle{h.NewErrorCondition(args[0])}), term.Null
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "Effect", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.Condition), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewEffect(args[0]), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Hash", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return h.NewInt(int64(h.Get(args[0]).Hash())), term.Null
		}}},
	})
}

func registerOrdering(r *eval.Registry, name string, accept func(cmp int) bool) {
	r.Register(&eval.Descriptor{
		Name: name, Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: anyNumericPair, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				a, _ := numAsFloat(h, h.Get(args[0]))
				b, _ := numAsFloat(h, h.Get(args[1]))
				cmp := 0
				if a < b {
					cmp = -1
				} else if a > b {
					cmp = 1
				}
				return h.NewBoolean(accept(cmp)), term.Null
			}},
			{Guard: eval.ExactKind(term.String, term.String), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				a, b := string(h.Get(args[0]).Bytes()), string(h.Get(args[1]).Bytes())
				cmp := 0
				switch {
				case a < b:
					cmp = -1
				case a > b:
					cmp = 1
				}
				return h.NewBoolean(accept(cmp)), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}

// ifErrorImpl implements IfError: x is forced eagerly (never
// short-circuits on its own); if x is a Signal, it is partitioned by Error.
// An empty matching set passes x through; an empty remainder applies h to
// the list of Error payloads; otherwise the remainder is returned.
func ifErrorImpl(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	x, handler := args[0], args[1]
	if !isSignal(h, x) {
		return x, term.Null
	}
	matching, remaining := signal.PartitionByKind(h, x, term.CondError)
	if signal.IsEmpty(h, matching) {
		return x, term.Null
	}
	if !signal.IsEmpty(h, remaining) {
		return remaining, term.Null
	}
	payloads := make([]term.Handle, 0)
	for _, c := range h.Get(matching).SignalConditions() {
		payloads = append(payloads, h.Get(c).Condition().Payload)
	}
	return ev.Apply(h, handler, []term.Handle{h.NewList(payloads)})
}

// ifPendingImpl mirrors ifErrorImpl, partitioning by Pending instead of
// Error and applying fallback to no arguments once every condition is a
// Pending (IfPending).
func ifPendingImpl(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	x, fallback := args[0], args[1]
	if !isSignal(h, x) {
		return x, term.Null
	}
	matching, remaining := signal.PartitionByKind(h, x, term.CondPending)
	if signal.IsEmpty(h, matching) {
		return x, term.Null
	}
	if !signal.IsEmpty(h, remaining) {
		return remaining, term.Null
	}
	return ev.Apply(h, fallback, nil)
}

func isSignal(h *term.Heap, v term.Handle) bool {
	t := h.Get(v)
	return t != nil && t.Kind() == term.Signal
}
