package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/term"
)

func registerContainers(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "Get", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.List, term.Int), Fn: getList},
			{Guard: eval.ExactKind(term.Record), Fn: getRecord},
			{Guard: eval.ExactKind(term.Hashmap), Fn: getHashmap},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Has", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Record), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				_, ok := recordIndexOf(h, h.Get(args[0]), args[1])
				return h.NewBoolean(ok), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				_, ok := h.Get(args[0]).HashmapGet(h, args[1])
				return h.NewBoolean(ok), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashset), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				_, ok := h.Get(h.Get(args[0]).HashsetMap()).HashmapGet(h, args[1])
				return h.NewBoolean(ok), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Keys", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Record), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.Get(args[0]).RecordKeys(), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				entries := h.Get(args[0]).HashmapEntries()
				out := make([]term.Handle, len(entries))
				for i, e := range entries {
					out[i] = e.Key
				}
				return h.NewList(out), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Values", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Record), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.Get(args[0]).RecordValues(), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				entries := h.Get(args[0]).HashmapEntries()
				out := make([]term.Handle, len(entries))
				for i, e := range entries {
					out[i] = e.Value
				}
				return h.NewList(out), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Length", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.NewInt(int64(len(h.Get(args[0]).ListItems()))), term.Null
			}},
			{Guard: eval.ExactKind(term.String), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.NewInt(int64(len(h.Get(args[0]).Bytes()))), term.Null
			}},
			{Guard: eval.ExactKind(term.Record), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				t := h.Get(args[0])
				return h.NewInt(int64(len(h.Get(t.RecordKeys()).ListItems()))), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.NewInt(int64(h.Get(args[0]).HashmapLen())), term.Null
			}},
			{Guard: eval.ExactKind(term.Hashset), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				m := h.Get(h.Get(args[0]).HashsetMap())
				return h.NewInt(int64(m.HashmapLen())), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Set", Arity: 3, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.Get(args[0]).Set(h, args[1], args[2]), term.Null
			}},
			{Guard: eval.ExactKind(term.List, term.Int), Fn: setList},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Push", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[0]).ListItems()
			out := append(append([]term.Handle{}, items...), args[1])
			return h.NewList(out), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "PushFront", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[0]).ListItems()
			out := append([]term.Handle{args[1]}, items...)
			return h.NewList(out), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Car", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[0]).ListItems()
			if len(items) == 0 {
				cond := h.NewInvalidAccessorCondition(args[0], h.NewInt(0))
				return h.NewSignal([]term.Handle{cond}), term.Null
			}
			return items[0], term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Cdr", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[0]).ListItems()
			if len(items) == 0 {
				cond := h.NewInvalidAccessorCondition(args[0], h.NewInt(0))
				return h.NewSignal([]term.Handle{cond}), term.Null
			}
			return h.NewList(items[1:]), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "Cons", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: func(h *term.Heap, args []term.Handle) bool {
			return len(args) == 2 && h.Get(args[1]).Kind() == term.List
		}, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			items := h.Get(args[1]).ListItems()
			return h.NewList(append([]term.Handle{args[0]}, items...)), term.Null
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}

func recordIndexOf(h *term.Heap, rec *term.Term, key term.Handle) (int, bool) {
	keys := h.Get(rec.RecordKeys()).ListItems()
	for i, k := range keys {
		if term.Equal(h, k, key) {
			return i, true
		}
	}
	return -1, false
}

func getList(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	items := h.Get(args[0]).ListItems()
	idx := h.Get(args[1]).Int64()
	if idx < 0 || idx >= int64(len(items)) {
		cond := h.NewInvalidAccessorCondition(args[0], args[1])
		return h.NewSignal([]term.Handle{cond}), term.Null
	}
	return items[idx], term.Null
}

func setList(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	items := h.Get(args[0]).ListItems()
	idx := h.Get(args[1]).Int64()
	if idx < 0 || idx >= int64(len(items)) {
		cond := h.NewInvalidAccessorCondition(args[0], args[1])
		return h.NewSignal([]term.Handle{cond}), term.Null
	}
	out := append([]term.Handle{}, items...)
	out[idx] = args[2]
	return h.NewList(out), term.Null
}

func getRecord(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	rec := h.Get(args[0])
	idx, ok := recordIndexOf(h, rec, args[1])
	if !ok {
		cond := h.NewInvalidAccessorCondition(args[0], args[1])
		return h.NewSignal([]term.Handle{cond}), term.Null
	}
	values := h.Get(rec.RecordValues()).ListItems()
	return values[idx], term.Null
}

func getHashmap(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
	v, ok := h.Get(args[0]).HashmapGet(h, args[1])
	if !ok {
		return h.NewNil(), term.Null
	}
	return v, term.Null
}
