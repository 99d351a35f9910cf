// Command goflex is a demo host for the term evaluator: it wires up a
// Heap, a built-in Registry, an in-memory ExternalState, and a logrus
// Tracer, then runs one of a few hand-built expressions through
// Evaluator.Eval and prints the resulting (term, dependencies) pair.
//
// Laid out as a root command with subsystem functions returning
// *cobra.Command, in the style of synnergy-network's cmd/synnergy/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	log := logrus.New()

	root := &cobra.Command{Use: "goflex"}
	root.PersistentFlags().String("log-level", "warn", "logrus level: debug, info, warn, error")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.WarnLevel
		}
		log.SetLevel(level)
	}

	root.AddCommand(evalCmd(log))
	root.AddCommand(builtinsCmd())
	root.AddCommand(benchCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
