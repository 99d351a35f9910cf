package eval

import (
	"github.com/gitrdm/goflex/pkg/signal"
	"github.com/gitrdm/goflex/pkg/term"
)

// ExternalState is the host-provided bridge an Effect resolves against:
// given a Custom condition's effect type and payload, it returns the
// host's answer, or reports that no answer is available yet via pending.
type ExternalState interface {
	Resolve(h *term.Heap, effectType, effectPayload Handle) (value Handle, pending Handle)
}

// Handle is a local alias so this file reads naturally; it is exactly
// term.Handle.
type Handle = term.Handle

// Tracer receives evaluation events for diagnostics (the ambient logging
// concern carried regardless of explicit non-goals, see
// internal/trace). A nil Tracer is valid; every method becomes a no-op.
type Tracer interface {
	TraceApply(fn Handle, args []Handle)
	TraceSignal(sig Handle)
}

type noopTracer struct{}

func (noopTracer) TraceApply(Handle, []Handle) {}
func (noopTracer) TraceSignal(Handle)          {}

// Evaluator threads the built-in Registry, the host's ExternalState, and a
// Tracer through evaluation. It holds no per-call mutable
// state, so one Evaluator can serve any number of Eval calls provided each
// uses its own Heap.
type Evaluator struct {
	Registry *Registry
	State    ExternalState
	Trace    Tracer
}

// New returns an Evaluator over reg. state may be nil if the program
// resolves no Effects; tracer may be nil to disable tracing.
func New(reg *Registry, state ExternalState, tracer Tracer) *Evaluator {
	if tracer == nil {
		tracer = noopTracer{}
	}
	return &Evaluator{Registry: reg, State: state, Trace: tracer}
}

func isSignal(h *term.Heap, handle Handle) bool {
	t := h.Get(handle)
	return t != nil && t.Kind() == term.Signal
}

// Eval evaluates expr to normal form under scope, a De Bruijn environment
// where index 0 is the innermost binder (Scope). It returns the
// value (which may itself be a Signal term on failure) and the accumulated
// dependency set as a Signal of the Conditions read along the way, on
// distinct channels: a dependency never by itself causes
// short-circuiting, only a Signal-valued strict argument does.
//
// Containers (List, Record, Hashmap, Hashset, Tree) are returned as literal
// data without recursing into their elements: only Variable, Application,
// and Effect nodes are ever forced.
func (ev *Evaluator) Eval(h *term.Heap, scope []Handle, expr Handle) (Handle, Handle) {
	t := h.Get(expr)
	if t == nil {
		return expr, term.Null
	}
	switch t.Kind() {
	case term.Variable:
		off := t.VariableScopeOffset()
		if off < 0 || off >= len(scope) {
			return h.NewSignal([]Handle{h.NewErrorCondition(h.NewString("unbound variable"))}), term.Null
		}
		return scope[off], term.Null
	case term.Application:
		return ev.evalApplication(h, scope, t)
	case term.Effect:
		return ev.resolveEffect(h, t)
	default:
		return expr, term.Null
	}
}

// resolveEffect resolves an Effect against external state: on a hit the
// condition still joins the dependency set ("Effect(c) contributes {c} to the
// dependency set whether or not state resolves it"); on a miss the result
// itself becomes Signal({cond}).
func (ev *Evaluator) resolveEffect(h *term.Heap, t *term.Term) (Handle, Handle) {
	cond := t.EffectCondition()
	deps := h.NewSignal([]Handle{cond})
	if ev.State == nil {
		return h.NewSignal([]Handle{cond}), deps
	}
	condTerm := h.Get(cond)
	detail := condTerm.Condition()
	value, pending := ev.State.Resolve(h, detail.EffectType, detail.EffectPayload)
	if pending != term.Null {
		return h.NewSignal([]Handle{cond}), deps
	}
	return value, deps
}

// evalApplication resolves the Application's target to a callable value,
// then dispatches per the target's kind.
func (ev *Evaluator) evalApplication(h *term.Heap, scope []Handle, t *term.Term) (Handle, Handle) {
	targetVal, targetDeps := ev.Eval(h, scope, t.ApplicationTarget())
	if isSignal(h, targetVal) {
		return targetVal, targetDeps
	}
	targetTerm := h.Get(targetVal)
	if targetTerm == nil || !term.ImplementsApply(targetTerm.Kind()) {
		cond := h.NewTypeErrorCondition("applicable", targetVal)
		return h.NewSignal([]Handle{cond}), targetDeps
	}
	argExprs := h.Get(t.ApplicationArgs()).ListItems()
	ev.Trace.TraceApply(targetVal, argExprs)
	result, applyDeps := ev.applyTarget(h, scope, targetVal, argExprs)
	return result, signal.Union(h, targetDeps, applyDeps)
}

// applyTarget dispatches a resolved callable against its unevaluated
// argument expressions, honoring per-parameter Mode for Builtins and
// call-by-value (every argument Strict) for Lambda/Partial/Constructor;
// see applyLambda on why Lambda application does not capture an enclosing
// scope.
func (ev *Evaluator) applyTarget(h *term.Heap, scope []Handle, target Handle, argExprs []Handle) (Handle, Handle) {
	tt := h.Get(target)
	switch tt.Kind() {
	case term.Builtin:
		return ev.applyBuiltinExprs(h, scope, tt, argExprs)
	case term.Lambda, term.Partial, term.Constructor:
		values, aborted, deps := ev.forceStrictAll(h, scope, argExprs)
		if aborted != term.Null {
			return aborted, deps
		}
		result, applyDeps := ev.Apply(h, target, values)
		return result, signal.Union(h, deps, applyDeps)
	default:
		cond := h.NewTypeErrorCondition("applicable", target)
		return h.NewSignal([]Handle{cond}), term.Null
	}
}

// forceStrictAll evaluates every expression left to right. Every signal
// produced is unioned into the dependency set; if any evaluates to a
// Signal value, evaluation still continues across all positions so that
// every strict signal is
// collected before the call aborts. aborted is term.Null unless at least
// one position produced a Signal value, in which case it is the union of
// those signals and the caller must not proceed to dispatch.
func (ev *Evaluator) forceStrictAll(h *term.Heap, scope []Handle, exprs []Handle) (values []Handle, aborted Handle, deps Handle) {
	values = make([]Handle, len(exprs))
	var aborts []Handle
	var depList []Handle
	for i, e := range exprs {
		v, d := ev.Eval(h, scope, e)
		if d != term.Null {
			depList = append(depList, d)
		}
		if isSignal(h, v) {
			aborts = append(aborts, v)
		}
		values[i] = v
	}
	deps = signal.Union(h, depList...)
	if len(aborts) > 0 {
		aborted = signal.Union(h, aborts...)
	}
	return values, aborted, deps
}

// applyBuiltinExprs resolves each argument expression per the built-in's
// declared Mode before running the first matching Impl.
func (ev *Evaluator) applyBuiltinExprs(h *term.Heap, scope []Handle, builtinTerm *term.Term, argExprs []Handle) (Handle, Handle) {
	d, ok := ev.Registry.Lookup(builtinTerm.BuiltinID())
	if !ok {
		cond := h.NewInvalidFunctionArgsCondition(term.Null, h.NewList(argExprs))
		return h.NewSignal([]Handle{cond}), term.Null
	}
	resolved := make([]Handle, len(argExprs))
	var aborts []Handle
	var depList []Handle
	variadicStart := -1
	if d.Variadic && len(argExprs) >= d.Arity {
		variadicStart = d.Arity - 1
	}
	for i, e := range argExprs {
		mode := d.modeFor(i)
		if variadicStart >= 0 && i >= variadicStart {
			mode = ModeStrict
		}
		if mode == ModeLazy {
			resolved[i] = e
			continue
		}
		v, dep := ev.Eval(h, scope, e)
		if dep != term.Null {
			depList = append(depList, dep)
		}
		if mode == ModeStrict && isSignal(h, v) {
			aborts = append(aborts, v)
		}
		resolved[i] = v
	}
	deps := signal.Union(h, depList...)
	if len(aborts) > 0 {
		return signal.Union(h, aborts...), deps
	}
	if variadicStart >= 0 {
		rest := resolved[variadicStart:]
		resolved = append(append([]Handle{}, resolved[:variadicStart]...), h.NewList(rest))
	}
	result, implDeps := ev.dispatch(h, scope, d, resolved)
	return result, signal.Union(h, deps, implDeps)
}

func (ev *Evaluator) dispatch(h *term.Heap, scope []Handle, d *Descriptor, args []Handle) (Handle, Handle) {
	for _, impl := range d.Impls {
		if impl.Guard(h, args) {
			return impl.Fn(ev, h, scope, args)
		}
	}
	if d.Default != nil {
		return d.Default(ev, h, scope, args)
	}
	cond := h.NewInvalidFunctionArgsCondition(term.Null, h.NewList(args))
	sig := h.NewSignal([]Handle{cond})
	ev.Trace.TraceSignal(sig)
	return sig, term.Null
}

// Apply applies target to already fully-evaluated args; laziness is moot
// once values are in hand, so every Builtin parameter behaves as Strict.
// This is the entry point used by built-ins and the iterator protocol for
// higher-order calls (map, filter, fold, ...).
func (ev *Evaluator) Apply(h *term.Heap, target Handle, args []Handle) (Handle, Handle) {
	tt := h.Get(target)
	if tt == nil {
		cond := h.NewTypeErrorCondition("applicable", target)
		return h.NewSignal([]Handle{cond}), term.Null
	}
	switch tt.Kind() {
	case term.Lambda:
		return ev.applyLambda(h, tt, args)
	case term.Partial:
		applied := h.Get(tt.PartialApplied()).ListItems()
		combined := append(append([]Handle{}, applied...), args...)
		return ev.Apply(h, tt.PartialTarget(), combined)
	case term.Builtin:
		d, ok := ev.Registry.Lookup(tt.BuiltinID())
		if !ok {
			cond := h.NewInvalidFunctionArgsCondition(target, h.NewList(args))
			return h.NewSignal([]Handle{cond}), term.Null
		}
		for _, a := range args {
			if isSignal(h, a) {
				return a, term.Null
			}
		}
		return ev.dispatch(h, nil, d, args)
	case term.Constructor:
		return ev.applyConstructor(h, tt, args)
	default:
		cond := h.NewTypeErrorCondition("applicable", target)
		return h.NewSignal([]Handle{cond}), term.Null
	}
}

// applyLambda binds args into a fresh scope for the body (call-by-value):
// the Lambda term carries no captured environment, so the body's De Bruijn
// indices are only ever resolved against the parameters just bound, never
// against whatever scope the Lambda value happened to be produced in.
func (ev *Evaluator) applyLambda(h *term.Heap, lambda *term.Term, args []Handle) (Handle, Handle) {
	arity := lambda.LambdaArity()
	var bodyScope []Handle
	if lambda.LambdaVariadic() {
		if len(args) < arity-1 {
			return ev.invalidArgs(h, args)
		}
		fixed := args[:arity-1]
		rest := args[arity-1:]
		bodyScope = make([]Handle, arity)
		for i := 0; i < arity-1; i++ {
			bodyScope[arity-1-i] = fixed[i]
		}
		bodyScope[0] = h.NewList(rest)
	} else {
		if len(args) != arity {
			return ev.invalidArgs(h, args)
		}
		bodyScope = make([]Handle, len(args))
		for i := len(args) - 1; i >= 0; i-- {
			bodyScope[len(args)-1-i] = args[i]
		}
	}
	return ev.Eval(h, bodyScope, lambda.LambdaBody())
}

func (ev *Evaluator) invalidArgs(h *term.Heap, args []Handle) (Handle, Handle) {
	cond := h.NewInvalidFunctionArgsCondition(term.Null, h.NewList(args))
	return h.NewSignal([]Handle{cond}), term.Null
}

// applyConstructor binds positional args to the Constructor's declared
// field-name Symbols, producing a Record.
func (ev *Evaluator) applyConstructor(h *term.Heap, ctor *term.Term, args []Handle) (Handle, Handle) {
	keys := h.Get(ctor.ConstructorKeys()).ListItems()
	if len(args) != len(keys) {
		return ev.invalidArgs(h, args)
	}
	return h.NewRecord(h.NewList(keys), h.NewList(args)), term.Null
}
