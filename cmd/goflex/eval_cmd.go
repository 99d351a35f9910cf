package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/goflex/internal/trace"
	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/evalstate"
	"github.com/gitrdm/goflex/pkg/term"
)

// scenario builds a demo expression plus the ExternalState it expects, one
// per scenario.
type scenario struct {
	name  string
	build func(h *term.Heap, r *eval.Registry) (expr term.Handle, state eval.ExternalState)
}

var scenarios = []scenario{
	{"add", buildAddScenario},
	{"if", buildIfScenario},
	{"iferror", buildIfErrorScenario},
}

func evalCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [scenario]",
		Short: "evaluate a built-in demo expression and print (term, dependencies)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := "add"
			if len(args) > 0 {
				name = args[0]
			}
			s, ok := lookupScenario(name)
			if !ok {
				fmt.Printf("unknown scenario %q; available: %s\n", name, scenarioNames())
				return
			}

			h := term.NewHeap()
			reg := eval.NewRegistry()
			builtins.Install(reg)

			expr, state := s.build(h, reg)
			tracer := trace.New(log, h)
			ev := eval.New(reg, state, tracer)

			result, deps := ev.Eval(h, nil, expr)
			fmt.Printf("result: %s\n", describe(h, result))
			fmt.Printf("deps:   %s\n", describe(h, deps))
		},
	}
	return cmd
}

func lookupScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

func scenarioNames() string {
	out := ""
	for i, s := range scenarios {
		if i > 0 {
			out += ", "
		}
		out += s.name
	}
	return out
}

// buildAddScenario evaluates Add(Int 3, Int 4) -> Int 7.
func buildAddScenario(h *term.Heap, r *eval.Registry) (term.Handle, eval.ExternalState) {
	id, _ := r.ID("Add")
	expr := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{
		h.NewInt(3), h.NewInt(4),
	}))
	return expr, nil
}

// buildIfScenario evaluates If(true, 3, 4) -> Int 3. The
// branches are passed as raw, unevaluated expression handles: If declares
// both ModeLazy, so its Impl evaluates only the chosen branch itself.
func buildIfScenario(h *term.Heap, r *eval.Registry) (term.Handle, eval.ExternalState) {
	id, _ := r.ID("If")
	expr := h.NewApplication(h.NewBuiltin(id), h.NewList([]term.Handle{
		h.NewBoolean(true), h.NewInt(3), h.NewInt(4),
	}))
	return expr, nil
}

// buildIfErrorScenario evaluates IfError over an Effect
// whose Custom condition the host resolves to Signal(Error(...)). The
// error payload text comes from EXTERNAL_STATE_SEED (optionally loaded
// from .env by main), defaulting to "foo" when unset.
func buildIfErrorScenario(h *term.Heap, r *eval.Registry) (term.Handle, eval.ExternalState) {
	ifErrorID, _ := r.ID("IfError")
	identityID, _ := r.ID("Identity")

	effectType := h.NewSymbol(123)
	effectPayload := h.NewInt(3)
	cond := h.NewCustomCondition(effectType, effectPayload, term.Null)
	effect := h.NewEffect(cond)

	handler := h.NewBuiltin(identityID)
	expr := h.NewApplication(h.NewBuiltin(ifErrorID), h.NewList([]term.Handle{
		effect, handler,
	}))

	seed := os.Getenv("EXTERNAL_STATE_SEED")
	if seed == "" {
		seed = "foo"
	}
	store := evalstate.New()
	errSignal := h.NewSignal([]term.Handle{h.NewErrorCondition(h.NewString(seed))})
	store.Seed(h, effectType, effectPayload, errSignal)
	return expr, store
}
