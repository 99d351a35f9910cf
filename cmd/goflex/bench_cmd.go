package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/goflex/internal/trace"
	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
	"github.com/gitrdm/goflex/pkg/term"
)

// benchCmd repeatedly evaluates each demo scenario against a fresh Heap,
// reporting wall-clock time per scenario. Every run gets its own Heap
// since terms are arena-relative handles, not portable across Heaps.
func benchCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time repeated evaluation of the demo scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			n, _ := cmd.Flags().GetInt("n")
			for _, s := range scenarios {
				elapsed := benchScenario(s, n, log)
				fmt.Printf("%-10s n=%-6d total=%s avg=%s\n", s.name, n, elapsed, elapsed/time.Duration(n))
			}
		},
	}
	cmd.Flags().Int("n", 1000, "iterations per scenario")
	return cmd
}

func benchScenario(s scenario, n int, log *logrus.Logger) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		h := term.NewHeap()
		reg := eval.NewRegistry()
		builtins.Install(reg)
		expr, state := s.build(h, reg)
		ev := eval.New(reg, state, trace.New(log, h))
		ev.Eval(h, nil, expr)
	}
	return time.Since(start)
}
