// Package eval implements the evaluator and built-in dispatch machinery:
// De Bruijn scope resolution, Effect resolution against host-supplied
// external state, Application dispatch over Lambda/Partial/Builtin/
// Constructor targets, and the ordered guard-table built-in registry.
//
// The registry's ordered Impl scan with a terminal Default fallback
// follows gitrdm-gokando's constraint_manager.go dispatch table and
// model.go's scan-for-first-match style (see DESIGN.md).
package eval

import "github.com/gitrdm/goflex/pkg/term"

// Mode controls how a built-in's declared parameter is evaluated before
// dispatch.
type Mode uint8

const (
	// ModeStrict forces the argument to normal form in the caller's scope;
	// if evaluation surfaces a non-empty Signal, the whole application
	// short-circuits to that signal without running the Impl.
	ModeStrict Mode = iota
	// ModeEager forces the argument to normal form like Strict, but a
	// Signal value does not short-circuit: it is passed to the Impl as the
	// argument's value and dispatch proceeds.
	ModeEager
	// ModeLazy passes the argument's term handle to the Impl unevaluated;
	// the Impl is responsible for evaluating it (or not) via the Evaluator
	// it's given, used by control built-ins like and/or/if that must not
	// force a branch they end up discarding.
	ModeLazy
)

// Guard reports whether an Impl applies to the given already-mode-resolved
// arguments, without itself performing any evaluation.
type Guard func(h *term.Heap, args []term.Handle) bool

// ExactKind returns a Guard matching when every argument (up to len(kinds))
// has the given Kind, in order.
func ExactKind(kinds ...term.Kind) Guard {
	return func(h *term.Heap, args []term.Handle) bool {
		if len(args) < len(kinds) {
			return false
		}
		for i, k := range kinds {
			t := h.Get(args[i])
			if t == nil || t.Kind() != k {
				return false
			}
		}
		return true
	}
}

// HasCapability returns a Guard matching when the argument at index has a
// Kind implementing the given Capability.
func HasCapability(index int, cap term.Capability) Guard {
	return func(h *term.Heap, args []term.Handle) bool {
		if index >= len(args) {
			return false
		}
		t := h.Get(args[index])
		if t == nil {
			return false
		}
		switch cap {
		case term.CapApply:
			return term.ImplementsApply(t.Kind())
		case term.CapIterate:
			return term.ImplementsIterate(t.Kind())
		default:
			return false
		}
	}
}

// Wildcard is a Guard that always matches, typically the last Impl before
// Default to give a built-in a catch-all behavior.
func Wildcard(h *term.Heap, args []term.Handle) bool { return true }

// ImplFunc is the function body invoked once an Impl's Guard has matched.
// args holds one entry per declared parameter: for ModeStrict/ModeEager
// parameters, an already fully-evaluated value; for ModeLazy parameters,
// the raw unevaluated expression handle, still relative to scope, which
// the Fn forces on demand via ev.Eval(h, scope, args[i]) (used by control
// built-ins that must not force a branch they end up discarding).
type ImplFunc func(ev *Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle)

// Impl pairs a Guard with the behavior to run when it matches.
type Impl struct {
	Guard Guard
	Fn    ImplFunc
}

// Descriptor fully describes one built-in: its arity and per-parameter
// evaluation Mode, an ordered list of Impls tried in turn, and a Default
// invoked when no Impl matches.
type Descriptor struct {
	Name     string
	Arity    int
	Variadic bool
	Modes    []Mode
	Impls    []Impl
	Default  ImplFunc
}

// modeFor returns the Mode governing the i'th argument; variadic built-ins
// reuse the last declared Mode for every argument past Arity-1.
func (d *Descriptor) modeFor(i int) Mode {
	if i < len(d.Modes) {
		return d.Modes[i]
	}
	if len(d.Modes) == 0 {
		return ModeStrict
	}
	return d.Modes[len(d.Modes)-1]
}

// DefaultInvalidArgs builds the Default most built-ins use: an
// InvalidFunctionArgs condition wrapped in a one-element Signal.
func DefaultInvalidArgs(fn term.Handle) ImplFunc {
	return func(ev *Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
		argList := h.NewList(args)
		cond := h.NewInvalidFunctionArgsCondition(fn, argList)
		return h.NewSignal([]term.Handle{cond}), term.Null
	}
}

// Registry maps built-in ids to their Descriptor and names to ids, built
// once at startup by pkg/builtins.Install and shared by every Evaluator.
type Registry struct {
	byID   map[int]*Descriptor
	byName map[string]int
	nextID int
}

// NewRegistry returns an empty built-in registry.
func NewRegistry() *Registry {
	return &Registry{byID: map[int]*Descriptor{}, byName: map[string]int{}}
}

// Register assigns the next free built-in id to d and records it under
// d.Name, returning the assigned id.
func (r *Registry) Register(d *Descriptor) int {
	id := r.nextID
	r.nextID++
	r.byID[id] = d
	r.byName[d.Name] = id
	return id
}

// Lookup returns a built-in's Descriptor by id.
func (r *Registry) Lookup(id int) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ID returns the built-in id registered under name.
func (r *Registry) ID(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}
