package builtins

import (
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// registerMeta wires Apply, the one built-in that reaches back into the
// evaluator's own apply capability: Apply(target, argsIterable) collects
// argsIterable strictly, then applies target to the realized argument
// list, unioning both call's dependency sets (CapApply).
func registerMeta(r *eval.Registry) {
	r.Register(&eval.Descriptor{
		Name: "Apply", Arity: 2, Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
		Impls: []eval.Impl{{Guard: eval.HasCapability(0, term.CapApply), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
			argValues, aborted, deps := drainValues(ev, h, args[1])
			if aborted != term.Null {
				return aborted, deps
			}
			result, applyDeps := ev.Apply(h, args[0], argValues)
			return result, signal.Union(h, deps, applyDeps)
		}}},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}
