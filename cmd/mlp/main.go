// mlp trains a perceptron from a YAML config and uses it to recognize new inputs.
//
//	mlp train -c colors.yaml
//	mlp recognize -c colors.yaml
//
// Training samples and snapshots of the network are kept in the SQLite database named by the
// config, so that recognize can pick up where train left off.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "mlp",
		Short:         "Train a multilayer perceptron and recognize inputs with it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "mlp.yaml", "path to the YAML config")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level, in a human-readable format")

	root.AddCommand(trainCmd(), recognizeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
