// Package builtins supplies the concrete built-in implementations,
// registered against an eval.Registry by Install.
//
// Dispatch within each built-in follows the registration-ordered guard
// scan gitrdm-gokando's constraint_manager.go/model.go use for
// constraint-type lookup, adapted from "which constraint handler applies"
// to "which typed arithmetic/container overload applies", generalizing
// synnergy-network's concrete_solvers.go switch-by-kind idiom into an
// ordered guard table. See DESIGN.md.
package builtins

import (
	"math"

	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/term"
)

func numAsFloat(h *term.Heap, t *term.Term) (float64, bool) {
	switch t.Kind() {
	case term.Int:
		return float64(t.Int64()), true
	case term.Float:
		return t.Float64(), true
	default:
		return 0, false
	}
}

// binaryNumeric wires one arithmetic built-in's three numeric overloads
// (Int, Int), (Float, Float), and the two mixed-promotion cases, all
// sharing the same underlying int/float operation.
func binaryNumeric(name string, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) *eval.Descriptor {
	d := &eval.Descriptor{
		Name:  name,
		Arity: 2,
		Modes: []eval.Mode{eval.ModeStrict, eval.ModeStrict},
	}
	d.Impls = []eval.Impl{
		{
			Guard: eval.ExactKind(term.Int, term.Int),
			Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				a, b := h.Get(args[0]).Int64(), h.Get(args[1]).Int64()
				r, ok := intOp(a, b)
				if !ok {
					cond := h.NewErrorCondition(h.NewString("arithmetic overflow"))
					return h.NewSignal([]term.Handle{cond}), term.Null
				}
				return h.NewInt(r), term.Null
			},
		},
		{
			Guard: anyNumericPair,
			Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				a, _ := numAsFloat(h, h.Get(args[0]))
				b, _ := numAsFloat(h, h.Get(args[1]))
				return h.NewFloat(floatOp(a, b)), term.Null
			},
		},
	}
	d.Default = eval.DefaultInvalidArgs(term.Null)
	return d
}

func anyNumericPair(h *term.Heap, args []term.Handle) bool {
	if len(args) < 2 {
		return false
	}
	ta, tb := h.Get(args[0]), h.Get(args[1])
	if ta == nil || tb == nil {
		return false
	}
	_, aok := numAsFloat(h, ta)
	_, bok := numAsFloat(h, tb)
	return aok && bok
}

func registerArithmetic(r *eval.Registry) {
	r.Register(binaryNumeric("Add",
		func(a, b int64) (int64, bool) { return a + b, true },
		func(a, b float64) float64 { return a + b }))
	r.Register(binaryNumeric("Subtract",
		func(a, b int64) (int64, bool) { return a - b, true },
		func(a, b float64) float64 { return a - b }))
	r.Register(binaryNumeric("Multiply",
		func(a, b int64) (int64, bool) { return a * b, true },
		func(a, b float64) float64 { return a * b }))
	r.Register(binaryNumeric("Divide",
		func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		},
		func(a, b float64) float64 { return a / b }))
	r.Register(binaryNumeric("Remainder",
		func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a % b, true
		},
		math.Mod))
	r.Register(binaryNumeric("Pow",
		func(a, b int64) (int64, bool) { return int64(math.Pow(float64(a), float64(b))), true },
		math.Pow))
	r.Register(binaryNumeric("Min",
		func(a, b int64) (int64, bool) {
			if a < b {
				return a, true
			}
			return b, true
		},
		math.Min))
	r.Register(binaryNumeric("Max",
		func(a, b int64) (int64, bool) {
			if a > b {
				return a, true
			}
			return b, true
		},
		math.Max))

	r.Register(&eval.Descriptor{
		Name: "Abs", Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Int), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				v := h.Get(args[0]).Int64()
				if v < 0 {
					v = -v
				}
				return h.NewInt(v), term.Null
			}},
			{Guard: eval.ExactKind(term.Float), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.NewFloat(math.Abs(h.Get(args[0]).Float64())), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})

	registerRounding(r, "Floor", math.Floor)
	registerRounding(r, "Ceil", math.Ceil)
	registerRounding(r, "Round", math.Round)
}

func registerRounding(r *eval.Registry, name string, op func(float64) float64) {
	r.Register(&eval.Descriptor{
		Name: name, Arity: 1, Modes: []eval.Mode{eval.ModeStrict},
		Impls: []eval.Impl{
			{Guard: eval.ExactKind(term.Int), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return args[0], term.Null
			}},
			{Guard: eval.ExactKind(term.Float), Fn: func(ev *eval.Evaluator, h *term.Heap, scope []term.Handle, args []term.Handle) (term.Handle, term.Handle) {
				return h.NewFloat(op(h.Get(args[0]).Float64())), term.Null
			}},
		},
		Default: eval.DefaultInvalidArgs(term.Null),
	})
}
