package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/goflex/pkg/builtins"
	"github.com/gitrdm/goflex/pkg/eval"
)

func builtinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "list every registered built-in name, arity, and implementation count",
		Run: func(cmd *cobra.Command, args []string) {
			reg := eval.NewRegistry()
			builtins.Install(reg)
			for id := 0; ; id++ {
				d, ok := reg.Lookup(id)
				if !ok {
					break
				}
				arity := fmt.Sprintf("%d", d.Arity)
				if d.Variadic {
					arity += "+"
				}
				fmt.Printf("%-20s arity=%s impls=%d\n", d.Name, arity, len(d.Impls))
			}
		},
	}
}
