package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/iterproto"
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// resolveShallow forces a single step of laziness out of v: an Iterator is
// advanced exactly one Next call and reified as a one- or zero-element
// List holding whatever that step realized; every other kind is already
// shallow (its children are handles, not unevaluated expressions) and is
// returned unchanged. Grounded on the Open Question decision recorded in
// DESIGN.md distinguishing Identity from ResolveShallow on an Iterator.
func resolveShallow(ev *eval.Evaluator, h *term.Heap, v term.Handle) (term.Handle, term.Handle) {
	t := h.Get(v)
	if t == nil || t.Kind() != term.Iterator {
		return v, term.Null
	}
	value, _, deps := iterproto.Next(ev, h, v, &iterproto.Token{})
	if value == term.Null {
		return h.NewList(nil), deps
	}
	return h.NewList([]term.Handle{value}), deps
}

// resolveDeep recursively walks v until every reachable term is atomic:
// Iterators are fully drained, containers have every element resolved in
// turn. A Signal produced at any point short-circuits the walk, with every
// dependency gathered along the way unioned into the returned deps
// (idempotent: resolving an already-fully-resolved term is a no-op).
func resolveDeep(ev *eval.Evaluator, h *term.Heap, v term.Handle) (term.Handle, term.Handle) {
	t := h.Get(v)
	if t == nil {
		return v, term.Null
	}
	switch t.Kind() {
	case term.Iterator:
		values, deps := iterproto.Drain(ev, h, v)
		resolved, rDeps := resolveAll(ev, h, values)
		allDeps := signal.Union(h, deps, rDeps)
		if sig := firstSignal(h, resolved); sig != term.Null {
			return sig, allDeps
		}
		return h.NewList(resolved), allDeps
	case term.List:
		resolved, deps := resolveAll(ev, h, t.ListItems())
		if sig := firstSignal(h, resolved); sig != term.Null {
			return sig, deps
		}
		return h.NewList(resolved), deps
	case term.Record:
		return resolveRecordDeep(ev, h, t)
	case term.Hashmap:
		return resolveHashmapDeep(ev, h, t)
	case term.Hashset:
		return resolveHashsetDeep(ev, h, t)
	case term.Tree:
		return resolveTreeDeep(ev, h, t)
	default:
		return v, term.Null
	}
}

func resolveAll(ev *eval.Evaluator, h *term.Heap, items []term.Handle) ([]term.Handle, term.Handle) {
	out := make([]term.Handle, len(items))
	var allDeps []term.Handle
	for i, it := range items {
		r, deps := resolveDeep(ev, h, it)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		out[i] = r
		if isSignal(h, r) {
			break
		}
	}
	return out, signal.Union(h, allDeps...)
}

func firstSignal(h *term.Heap, items []term.Handle) term.Handle {
	for _, it := range items {
		if isSignal(h, it) {
			return it
		}
	}
	return term.Null
}

func resolveRecordDeep(ev *eval.Evaluator, h *term.Heap, t *term.Term) (term.Handle, term.Handle) {
	keys := h.Get(t.RecordKeys()).ListItems()
	values := h.Get(t.RecordValues()).ListItems()
	resolvedValues, deps := resolveAll(ev, h, values)
	if sig := firstSignal(h, resolvedValues); sig != term.Null {
		return sig, deps
	}
	return h.NewRecord(h.NewList(keys), h.NewList(resolvedValues)), deps
}

func resolveHashmapDeep(ev *eval.Evaluator, h *term.Heap, t *term.Term) (term.Handle, term.Handle) {
	entries := t.HashmapEntries()
	out := h.NewHashmap()
	var allDeps []term.Handle
	for _, e := range entries {
		v, deps := resolveDeep(ev, h, e.Value)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if isSignal(h, v) {
			return v, signal.Union(h, allDeps...)
		}
		out = h.Get(out).Set(h, e.Key, v)
	}
	return out, signal.Union(h, allDeps...)
}

// resolveHashsetDeep resolves every element (the underlying Hashmap's keys,
// since a Hashset's values are always the shared unit) and rebuilds a fresh
// Hashset by re-adding each resolved element.
func resolveHashsetDeep(ev *eval.Evaluator, h *term.Heap, t *term.Term) (term.Handle, term.Handle) {
	m := h.Get(t.HashsetMap())
	entries := m.HashmapEntries()
	out := h.NewHashset()
	var allDeps []term.Handle
	for _, e := range entries {
		v, deps := resolveDeep(ev, h, e.Key)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if isSignal(h, v) {
			return v, signal.Union(h, allDeps...)
		}
		out = h.Get(out).Add(h, v)
	}
	return out, signal.Union(h, allDeps...)
}

func resolveTreeDeep(ev *eval.Evaluator, h *term.Heap, t *term.Term) (term.Handle, term.Handle) {
	left, right := t.TreeLeft(), t.TreeRight()
	var allDeps []term.Handle
	if left != term.Null {
		r, deps := resolveDeep(ev, h, left)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if isSignal(h, r) {
			return r, signal.Union(h, allDeps...)
		}
		left = r
	}
	if right != term.Null {
		r, deps := resolveDeep(ev, h, right)
		if deps != term.Null {
			allDeps = append(allDeps, deps)
		}
		if isSignal(h, r) {
			return r, signal.Union(h, allDeps...)
		}
		right = r
	}
	return h.NewTree(left, right), signal.Union(h, allDeps...)
}

func registerResolvers(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "ResolveShallow", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveShallow(ev, h, args[0])
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveDeep", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.Wildcard, Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveDeep(ev, h, args[0])
		}}},
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveList", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.List), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveDeep(ev, h, args[0])
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveRecord", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.Record), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveRecordDeep(ev, h, h.Get(args[0]))
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveHashmap", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.Hashmap), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveHashmapDeep(ev, h, h.Get(args[0]))
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveHashset", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.Hashset), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveHashsetDeep(ev, h, h.Get(args[0]))
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	r.Register(&eval.Descriptor{
		Name: "ResolveTree", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.ExactKind(term.Tree), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			return resolveTreeDeep(ev, h, h.Get(args[0]))
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}
