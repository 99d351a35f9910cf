package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/term"
)

// Install registers every built-in descriptor against r, grouped the same
// way the built-in catalog groups them: arithmetic, logic, containers,
// collectors, iterator combinators, resolvers, and the Apply meta built-in.
// cmd/goflex calls it on a fresh Registry before each evaluation it runs.
func Install(r *eval.Registry) {
	registerArithmetic(r)
	registerLogic(r)
	registerContainers(r)
	registerCollectors(r)
	registerIterators(r)
	registerResolvers(r)
	registerMeta(r)
}

// Environment builds a name -> Builtin-term-handle table for every
// registered built-in, against h's arena, turning each built-in's registry
// name into the term a program can apply. cmd/goflex does not use it; it
// looks built-ins up with Registry.ID.
func Environment(h *term.Heap, r *eval.Registry) map[string]term.Handle {
	env := make(map[string]term.Handle)
	for id := 0; ; id++ {
		d, ok := r.Lookup(id)
		if !ok {
			break
		}
		env[d.Name] = h.NewBuiltin(id)
	}
	return env
}
